package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/provable-games/gametoken/cache"
	tokenmetadata "github.com/provable-games/gametoken/metadata"
)

func show(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")
	asJSON := fs.Bool("json", false, "Print only the metadata document")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken show <token-id> [options]

Display a token's record and its rendered metadata document.

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

	ctx := context.Background()
	rec, err := a.eng.TokenMetadata(ctx, tokenID)
	if err != nil {
		return err
	}

	now := uint64(time.Now().Unix())
	renderer := cache.NewCachedRenderer(tokenmetadata.Options{
		CollectionName: a.cfg.Name,
		Symbol:         a.cfg.Symbol,
		BaseURI:        a.cfg.BaseURI,
	}, a.cfg.CacheSize)

	doc, err := renderer.Render(rec, now)
	if err != nil {
		return err
	}

	if *asJSON {
		fmt.Println(string(doc))
		return nil
	}

	state, err := a.eng.PlayState(ctx, tokenID)
	if err != nil {
		return err
	}
	owner, ownerErr := a.ledger.OwnerOf(tokenID)

	fmt.Printf("=== Token %d ===\n\n", tokenID)
	fmt.Printf("Game:        id %d at %s\n", rec.GameID, rec.GameAddress)
	fmt.Printf("Minter:      id %d\n", rec.MinterID)
	if ownerErr == nil {
		fmt.Printf("Owner:       %s\n", owner)
	}
	fmt.Printf("Lifecycle:   [%d, %d)\n", rec.Lifecycle.Start, rec.Lifecycle.End)
	fmt.Printf("State:       %s\n", state)
	if rec.PlayerName != "" {
		fmt.Printf("Player:      %s\n", rec.PlayerName)
	}
	if rec.HasSettings {
		fmt.Printf("Settings:    %d\n", rec.SettingsID)
	}
	fmt.Printf("Score:       %d\n", rec.Score)
	fmt.Printf("Game over:   %v\n", rec.GameOver)
	fmt.Printf("Soulbound:   %v\n", rec.Soulbound)
	if len(rec.ObjectiveIDs) > 0 {
		fmt.Printf("Objectives:  %d of %d completed (all: %v)\n",
			len(rec.CompletedObjectives), len(rec.ObjectiveIDs), rec.CompletedAllObjectives)
	}
	if rec.HasCustomRenderer() {
		fmt.Printf("Renderer:    %s\n", rec.Renderer)
	}
	fmt.Printf("URI:         %s\n", tokenmetadata.TokenURI(a.cfg.BaseURI, tokenID))
	fmt.Printf("\n%s\n", string(doc))
	return nil
}
