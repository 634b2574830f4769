package main

import (
	"context"
	"fmt"

	"github.com/provable-games/gametoken/asset"
	"github.com/provable-games/gametoken/config"
	"github.com/provable-games/gametoken/engine"
	"github.com/provable-games/gametoken/events"
	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/gamestate"
	"github.com/provable-games/gametoken/registry"
	"github.com/provable-games/gametoken/relay"
	"github.com/provable-games/gametoken/store"
)

// app wires the engine and its collaborators from a configuration file.
type app struct {
	cfg    config.Config
	eng    *engine.Engine
	ledger *asset.Ledger

	// log is the local event log; nil when a relayer replaces it.
	log events.Log

	closers []func() error
}

// openApp builds the full engine stack from the config at cfgPath.
// Ownership records are rebuilt by replaying mint events from the local
// log, so owner-gated commands work across process restarts.
func openApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, ledger: asset.NewLedger()}

	var st store.Store
	if cfg.DBPath == "" {
		st = store.NewMemoryStore()
	} else {
		s, err := store.NewSQLiteStore(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		st = s
	}
	a.closers = append(a.closers, st.Close)

	opts := []engine.Option{
		engine.WithIdentity(cfg.Name, cfg.Symbol),
		engine.WithStore(st),
		engine.WithAssetModule(a.ledger),
	}

	if cfg.RegistryMode() {
		registryAddr, err := felt.FromHex(cfg.GameRegistryAddress)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("game registry address: %w", err)
		}
		opts = append(opts, engine.WithGameRegistry(registry.NewGames(), registryAddr))
	} else {
		game, err := felt.FromHex(cfg.GameAddress)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("game address: %w", err)
		}
		opts = append(opts, engine.WithDirectGame(game))
	}

	if cfg.RelayURL != "" {
		r, err := relay.Dial(cfg.RelayURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, r.Close)
		opts = append(opts, engine.WithRelayer(r))
	} else {
		if cfg.DBPath == "" {
			a.log = events.NewMemoryLog()
		} else {
			l, err := events.NewSQLiteLog(cfg.DBPath)
			if err != nil {
				a.Close()
				return nil, err
			}
			a.log = l
		}
		a.closers = append(a.closers, a.log.Close)
		opts = append(opts, engine.WithEventLog(a.log))
	}

	if cfg.GameStatePath != "" {
		reader, err := gamestate.FromFile(cfg.GameStatePath)
		if err != nil {
			a.Close()
			return nil, err
		}
		opts = append(opts, engine.WithGameReader(reader))
	}

	eng, err := engine.New(opts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.eng = eng
	a.ledger.SetSoulboundChecker(eng)

	if a.log != nil {
		if err := a.replayOwnership(context.Background()); err != nil {
			a.Close()
			return nil, err
		}
	}

	return a, nil
}

// replayOwnership reissues asset ownership from recorded mint events.
func (a *app) replayOwnership(ctx context.Context) error {
	evs, err := a.log.Read(ctx, 0, 0)
	if err != nil {
		return fmt.Errorf("replay events: %w", err)
	}
	for _, ev := range evs {
		if ev.Type != events.TypeTokenMinted {
			continue
		}
		var minted events.TokenMinted
		if err := ev.Decode(&minted); err != nil {
			return fmt.Errorf("replay event %d: %w", ev.Seq, err)
		}
		to, err := felt.FromHex(minted.To)
		if err != nil {
			return fmt.Errorf("replay event %d: %w", ev.Seq, err)
		}
		if err := a.ledger.Issue(ev.TokenID, to); err != nil {
			return fmt.Errorf("replay event %d: %w", ev.Seq, err)
		}
	}
	return nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}
