package engine

import (
	"errors"

	"github.com/provable-games/gametoken/events"
	"github.com/provable-games/gametoken/extension"
	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/gamestate"
	"github.com/provable-games/gametoken/registry"
	"github.com/provable-games/gametoken/store"
)

// ErrBindingConflict is returned when both binding modes are configured.
var ErrBindingConflict = errors.New("engine: direct and registry game bindings are mutually exclusive")

// Option configures an Engine during construction.
type Option func(*Engine) error

// WithIdentity sets the collection name and symbol.
func WithIdentity(name, symbol string) Option {
	return func(e *Engine) error {
		e.name = name
		e.symbol = symbol
		return nil
	}
}

// WithStore sets the persistence backend. Defaults to an in-memory store.
func WithStore(s store.Store) Option {
	return func(e *Engine) error {
		e.store = s
		return nil
	}
}

// WithDirectGame binds the engine to a single fixed game contract.
func WithDirectGame(game felt.Address) Option {
	return func(e *Engine) error {
		if e.binding != nil {
			return ErrBindingConflict
		}
		b, err := registry.NewDirectBinding(game)
		if err != nil {
			return err
		}
		e.binding = b
		return nil
	}
}

// WithGameRegistry resolves game references through the shared registry,
// auto-registering new addresses on first use. registryAddr is the
// on-chain address of the registry contract, kept for the
// game_registry_address view; pass felt.Zero when there is none.
func WithGameRegistry(games *registry.Games, registryAddr felt.Address) Option {
	return func(e *Engine) error {
		if e.binding != nil {
			return ErrBindingConflict
		}
		e.binding = registry.NewRegistryBinding(games)
		e.registryAddr = registryAddr
		return nil
	}
}

// WithEventLog emits state-change events to a local log.
func WithEventLog(log events.Log) Option {
	return func(e *Engine) error {
		e.emitter = events.NewLogEmitter(log)
		return nil
	}
}

// WithRelayer routes all state-change notifications through an external
// relayer, fully replacing local event emission.
func WithRelayer(r events.Emitter) Option {
	return func(e *Engine) error {
		e.emitter = r
		return nil
	}
}

// WithGameReader sets the external game contract reader used by UpdateGame.
func WithGameReader(r gamestate.Reader) Option {
	return func(e *Engine) error {
		e.games = r
		return nil
	}
}

// WithAssetModule sets the external asset-ownership module. Without one,
// mints do not issue ownership records and owner-gated calls fail.
func WithAssetModule(a AssetModule) Option {
	return func(e *Engine) error {
		e.assets = a
		return nil
	}
}

// WithSettingsProvider sets the external settings-details provider used to
// validate settings references at mint time.
func WithSettingsProvider(p extension.SettingsProvider) Option {
	return func(e *Engine) error {
		e.settings = p
		return nil
	}
}

// WithClock overrides the time source used by playability views. now
// returns unix seconds.
func WithClock(now func() uint64) Option {
	return func(e *Engine) error {
		e.now = now
		return nil
	}
}
