package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/provable-games/gametoken/events"
)

func eventsCmd(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")
	tokenID := fs.Uint64("token", 0, "Filter by token id (0 = all tokens)")
	typeFilter := fs.String("type", "", "Filter by event type")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken events [options]

Display the recorded event history from the local log.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # All events for token 1
  gametoken events --config config.yaml --token 1

  # Only mints
  gametoken events --config config.yaml --type token_minted
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := openApp(*cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.log == nil {
		return fmt.Errorf("events are relayed to %s; no local log", a.cfg.RelayURL)
	}

	evs, err := a.log.Read(context.Background(), *tokenID, 0)
	if err != nil {
		return err
	}

	if *typeFilter != "" {
		filtered := evs[:0]
		for _, ev := range evs {
			if ev.Type == *typeFilter {
				filtered = append(filtered, ev)
			}
		}
		evs = filtered
	}

	if len(evs) == 0 {
		fmt.Println("No events recorded")
		return nil
	}

	fmt.Printf("=== Events (%d) ===\n\n", len(evs))
	for _, ev := range evs {
		fmt.Printf("#%-6d %s  token %-6d %-22s %s\n",
			ev.Seq, ev.CreatedAt.Format("2006-01-02 15:04:05"), ev.TokenID, ev.Type, ev.Data)
	}
	return nil
}

func exportCmd(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")
	tokenID := fs.Uint64("token", 0, "Export a single token's events (0 = all)")
	output := fs.String("output", "events.jsonl.zst", "Output file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken export [options]

Export the event log as zstd-compressed JSON lines.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	a, err := openApp(*cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.log == nil {
		return fmt.Errorf("events are relayed to %s; no local log", a.cfg.RelayURL)
	}

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := events.Export(context.Background(), a.log, *tokenID, f)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d events to %s\n", n, *output)
	return nil
}
