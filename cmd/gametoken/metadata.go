package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/provable-games/gametoken/engine"
	"github.com/provable-games/gametoken/felt"
)

func metadata(args []string) error {
	fs := flag.NewFlagSet("metadata", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")
	caller := fs.String("caller", "", "Minter address (required)")
	game := fs.String("game", "", "Bind a blank token to this game address")
	settings := fs.String("settings", "", "Settings id")
	objectives := fs.String("objectives", "", "Comma-separated objective ids (replaces the set)")
	clientURL := fs.String("client-url", "", "Client URL")
	renderer := fs.String("renderer", "", "Renderer override address")
	hasContext := fs.Bool("context", false, "Mark the token as carrying context")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken metadata <token-id> [options]

Apply a partial metadata update. Only the token's original minter may do
this. Omitted options leave the corresponding fields untouched; a token
minted without a game may be bound exactly once with --game.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	tokenID, err := parseTokenArg(fs)
	if err != nil {
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

	var upd engine.MetadataUpdate
	if *game != "" {
		addr, err := felt.FromHex(*game)
		if err != nil {
			return fmt.Errorf("game: %w", err)
		}
		upd.GameRef = &addr
	}
	if *settings != "" {
		id, err := parseUint32(*settings)
		if err != nil {
			return fmt.Errorf("settings: %w", err)
		}
		upd.SettingsID = &id
	}
	if *objectives != "" {
		ids, err := parseObjectives(*objectives)
		if err != nil {
			return fmt.Errorf("objectives: %w", err)
		}
		upd.ObjectiveIDs = ids
	}
	if *clientURL != "" {
		upd.ClientURL = clientURL
	}
	if *renderer != "" {
		addr, err := felt.FromHex(*renderer)
		if err != nil {
			return fmt.Errorf("renderer: %w", err)
		}
		upd.Renderer = &addr
	}
	if *hasContext {
		upd.Context = hasContext
	}

	a, err := openApp(*cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.eng.SetTokenMetadata(context.Background(), callerAddr, tokenID, upd); err != nil {
		return err
	}
	fmt.Printf("Updated metadata for token %d\n", tokenID)
	return nil
}

func rename(args []string) error {
	fs := flag.NewFlagSet("rename", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")
	caller := fs.String("caller", "", "Owner address (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken rename <token-id> <name> [options]

Replace the token's player name. Only the current owner may do this.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	tokenID, err := parseTokenArg(fs)
	if err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("name required")
	}
	if *caller == "" {
		fs.Usage()
		return fmt.Errorf("--caller is required")
	}
	callerAddr, err := felt.FromHex(*caller)
	if err != nil {
		return fmt.Errorf("caller: %w", err)
	}

	a, err := openApp(*cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.eng.UpdatePlayerName(context.Background(), callerAddr, tokenID, fs.Arg(1)); err != nil {
		return err
	}
	fmt.Printf("Renamed token %d to %q\n", tokenID, fs.Arg(1))
	return nil
}

func rendererReset(args []string) error {
	fs := flag.NewFlagSet("renderer-reset", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")
	caller := fs.String("caller", "", "Owner address (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken renderer-reset <token-id> [options]

Clear the token's renderer override. Only the current owner may do this.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	tokenID, err := parseTokenArg(fs)
	if err != nil {
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

	a, err := openApp(*cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.eng.ResetTokenRenderer(context.Background(), callerAddr, tokenID); err != nil {
		return err
	}
	fmt.Printf("Reset renderer for token %d\n", tokenID)
	return nil
}
