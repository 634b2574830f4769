package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/provable-games/gametoken/engine"
	"github.com/provable-games/gametoken/felt"
)

func mint(args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")
	caller := fs.String("caller", "", "Minter address (required)")
	to := fs.String("to", "", "Recipient address (defaults to caller)")
	game := fs.String("game", "", "Game address to bind (omit for a blank token)")
	name := fs.String("name", "", "Player name")
	settings := fs.String("settings", "", "Settings id")
	start := fs.String("start", "", "Playability start (unix seconds, 0 = unbounded)")
	end := fs.String("end", "", "Playability end (unix seconds, 0 = unbounded)")
	objectives := fs.String("objectives", "", "Comma-separated objective ids")
	clientURL := fs.String("client-url", "", "Client URL")
	renderer := fs.String("renderer", "", "Renderer override address")
	hasContext := fs.Bool("context", false, "Mark the token as carrying context")
	soulbound := fs.Bool("soulbound", false, "Lock the token to its owner")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken mint [options]

Mint a new session token. The caller is recorded as the minter.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Blank token (registry mode)
  gametoken mint --config config.yaml --caller 0x2a

  # Bound token with a playability window
  gametoken mint --config config.yaml --caller 0x2a --game 0xbeef --start 1700000000 --end 1700003600
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" {
		fs.Usage()
		return fmt.Errorf("--caller is required")
	}

	callerAddr, err := felt.FromHex(*caller)
	if err != nil {
		return fmt.Errorf("caller: %w", err)
	}
	toAddr := callerAddr
	if *to != "" {
		if toAddr, err = felt.FromHex(*to); err != nil {
			return fmt.Errorf("to: %w", err)
		}
	}

	req := engine.MintRequest{To: toAddr, Soulbound: *soulbound}

	if *game != "" {
		addr, err := felt.FromHex(*game)
		if err != nil {
			return fmt.Errorf("game: %w", err)
		}
		req.GameRef = &addr
	}
	if *name != "" {
		req.PlayerName = name
	}
	if *settings != "" {
		id, err := parseUint32(*settings)
		if err != nil {
			return fmt.Errorf("settings: %w", err)
		}
		req.SettingsID = &id
	}
	if *start != "" {
		v, err := strconv.ParseUint(*start, 10, 64)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		req.Start = &v
	}
	if *end != "" {
		v, err := strconv.ParseUint(*end, 10, 64)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
		req.End = &v
	}
	if *objectives != "" {
		ids, err := parseObjectives(*objectives)
		if err != nil {
			return fmt.Errorf("objectives: %w", err)
		}
		req.ObjectiveIDs = ids
	}
	if *clientURL != "" {
		req.ClientURL = clientURL
	}
	if *renderer != "" {
		addr, err := felt.FromHex(*renderer)
		if err != nil {
			return fmt.Errorf("renderer: %w", err)
		}
		req.Renderer = &addr
	}
	if *hasContext {
		req.Context = hasContext
	}

	a, err := openApp(*cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	tokenID, err := a.eng.Mint(context.Background(), callerAddr, req)
	if err != nil {
		return err
	}

	fmt.Printf("Minted token %d (owner %s)\n", tokenID, toAddr)
	return nil
}

func parseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func parseObjectives(s string) ([]uint32, error) {
	parts := strings.Split(s, ",")
	ids := make([]uint32, 0, len(parts))
	for _, p := range parts {
		id, err := parseUint32(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("objective %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseTokenArg(fs *flag.FlagSet) (uint64, error) {
	if fs.NArg() < 1 {
		fs.Usage()
		return 0, fmt.Errorf("token id required")
	}
	id, err := strconv.ParseUint(fs.Arg(0), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("token id: %w", err)
	}
	return id, nil
}
