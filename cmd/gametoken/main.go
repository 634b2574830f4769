package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	commands := map[string]func([]string) error{
		"mint":           mint,
		"show":           show,
		"update":         update,
		"metadata":       metadata,
		"rename":         rename,
		"renderer-reset": rendererReset,
		"games":          games,
		"minters":        minters,
		"events":         eventsCmd,
		"export":         exportCmd,
		"prove":          prove,
		"verify":         verify,
	}

	switch command {
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("gametoken version 1.0.0")
	default:
		run, ok := commands[command]
		if !ok {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
			printUsage()
			os.Exit(1)
		}
		if err := run(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

func printUsage() {
	fmt.Println(`gametoken - game session token registry

Usage:
  gametoken <command> [options]

Commands:
  mint            Mint a new session token
  show            Display a token's record and metadata document
  update          Pull the bound game's state into a token
  metadata        Apply a minter-gated metadata update
  rename          Replace a token's player name (owner only)
  renderer-reset  Clear a token's renderer override (owner only)
  games           List registered games
  minters         List known minters
  events          Show a token's event history
  export          Export the event log to a compressed archive
  prove           Generate a completion proof for a token
  verify          Verify a completion proof
  help            Show this help message
  version         Show version information

Examples:
  # Mint a token bound to a game
  gametoken mint --config config.yaml --caller 0x2a --to 0x2a --game 0xbeef --name alice

  # Pull game state into token 1
  gametoken update --config config.yaml 1

  # Prove token 1 completed all objectives
  gametoken prove --config config.yaml --output proof.json 1

For command-specific help, run:
  gametoken <command> --help`)
}
