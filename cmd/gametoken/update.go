package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func update(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken update <token-id> [options]

Pull the bound game's reported state into the token record. Fields the
game does not report are left untouched. Requires game_state_path in the
configuration.

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

	a, err := openApp(*cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.eng.UpdateGame(context.Background(), tokenID); err != nil {
		return err
	}

	rec, err := a.eng.TokenMetadata(context.Background(), tokenID)
	if err != nil {
		return err
	}
	fmt.Printf("Updated token %d: score=%d game_over=%v completed=%d/%d\n",
		tokenID, rec.Score, rec.GameOver, len(rec.CompletedObjectives), len(rec.ObjectiveIDs))
	return nil
}
