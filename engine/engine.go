// Package engine implements the core token lifecycle engine: minting,
// metadata mutation, game-state synchronization, and all read views.
//
// Every public entry point runs as a single atomic unit. Mutations are
// staged on a cloned record and committed to the store only after every
// precondition for the whole operation has passed; any failure leaves the
// persisted state untouched.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/provable-games/gametoken/events"
	"github.com/provable-games/gametoken/extension"
	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/gamestate"
	"github.com/provable-games/gametoken/registry"
	"github.com/provable-games/gametoken/store"
	"github.com/provable-games/gametoken/token"
)

// ErrNoBinding is returned when constructing an engine without selecting a
// game binding mode.
var ErrNoBinding = errors.New("engine: a game binding mode is required")

// AssetModule is the external asset-ownership collaborator. The engine
// issues the ownership record on mint and reads the current owner for
// authorization; transfers are the module's own business.
type AssetModule interface {
	Issue(tokenID uint64, to felt.Address) error
	OwnerOf(tokenID uint64) (felt.Address, error)
}

// RendererCapability is the renderer-override extension contract.
type RendererCapability interface {
	Get(*token.Record) (felt.Address, bool)
	Set(*token.Record, felt.Address)
	Reset(*token.Record)
}

// ObjectivesCapability is the objectives-tracking extension contract.
type ObjectivesCapability interface {
	Assign(*token.Record, []uint32)
	MergeCompleted(*token.Record, []uint32) bool
	AllCompleted(*token.Record) bool
}

// SoulboundCapability is the soulbound-flag extension contract.
type SoulboundCapability interface {
	Set(*token.Record, bool)
	Is(*token.Record) bool
}

// SettingsCapability is the settings-reference extension contract.
type SettingsCapability interface {
	Assign(ctx context.Context, provider extension.SettingsProvider, r *token.Record, id uint32) error
}

// Engine is the core token engine.
type Engine struct {
	name   string
	symbol string

	store        store.Store
	minters      *registry.Minters
	binding      registry.Binding
	registryAddr felt.Address

	emitter  events.Emitter
	games    gamestate.Reader
	assets   AssetModule
	settings extension.SettingsProvider

	renderer    RendererCapability
	objectives  ObjectivesCapability
	soulbound   SoulboundCapability
	settingsCap SettingsCapability

	now func() uint64

	// mintMu serializes id allocation and the write-through that follows,
	// so token and minter ids are issued exactly once, strictly increasing.
	mintMu    sync.Mutex
	nextToken uint64
}

// New constructs an engine. Exactly one of WithDirectGame or
// WithGameRegistry must be supplied. Persisted registries and the token id
// high-water mark are restored from the store.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		name:        "Game Session Token",
		symbol:      "GST",
		minters:     registry.NewMinters(),
		renderer:    extension.Renderer{},
		objectives:  extension.Objectives{},
		soulbound:   extension.Soulbound{},
		settingsCap: extension.Settings{},
		now:         func() uint64 { return uint64(time.Now().Unix()) },
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if e.binding == nil {
		return nil, ErrNoBinding
	}
	if e.store == nil {
		e.store = store.NewMemoryStore()
	}
	if e.emitter == nil {
		e.emitter = events.NewLogEmitter(events.NewMemoryLog())
	}

	if err := e.restore(); err != nil {
		return nil, err
	}
	return e, nil
}

// restore reloads registries and the token allocator from the store.
func (e *Engine) restore() error {
	ctx := context.Background()

	maxID, err := e.store.MaxTokenID(ctx)
	if err != nil {
		return fmt.Errorf("engine: restore token counter: %w", err)
	}
	e.nextToken = maxID

	minterRows, err := e.store.Minters(ctx)
	if err != nil {
		return fmt.Errorf("engine: restore minters: %w", err)
	}
	for _, row := range minterRows {
		e.minters.Restore(row.ID, row.Address)
	}

	if games := e.binding.Registry(); games != nil {
		gameRows, err := e.store.Games(ctx)
		if err != nil {
			return fmt.Errorf("engine: restore games: %w", err)
		}
		for _, row := range gameRows {
			games.Restore(row.ID, row.Address)
		}
	}
	return nil
}

// Name returns the collection name.
func (e *Engine) Name() string {
	return e.name
}

// Symbol returns the collection symbol.
func (e *Engine) Symbol() string {
	return e.symbol
}

// get loads a record or fails with the given not-found wrapper.
func (e *Engine) get(ctx context.Context, id uint64, notFound func(uint64) error) (*token.Record, error) {
	r, err := e.store.GetToken(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return r, nil
}
