package registry

import (
	"errors"
	"fmt"

	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/token"
)

// ErrWrongGame is returned in direct mode when a mint supplies a game
// address other than the bound one.
var ErrWrongGame = errors.New("registry: game address does not match the bound game")

// Binding resolves a mint's optional game reference to a (game id, game
// address) pair. The mode is selected once at engine construction and never
// re-selected at runtime:
//
//   - Direct: the engine is bound to exactly one fixed game address; mints
//     must pass that address or none.
//   - Registry backed: any non-null address is accepted and auto-registered
//     on first use.
type Binding interface {
	// Resolve maps an optional game reference to its id and address.
	// A nil ref produces a blank binding (id 0, null address).
	Resolve(ref *felt.Address) (uint64, felt.Address, error)

	// Registry returns the backing game registry, or nil in direct mode.
	Registry() *Games
}

// DirectBinding binds the engine to a single fixed game contract. The fixed
// game always resolves to id 1 so bound tokens still carry a non-zero id.
type DirectBinding struct {
	game felt.Address
}

// NewDirectBinding creates a direct-mode binding.
func NewDirectBinding(game felt.Address) (*DirectBinding, error) {
	if game.IsZero() {
		return nil, token.ErrInvalidGameAddress
	}
	return &DirectBinding{game: game}, nil
}

// Resolve implements Binding.
func (b *DirectBinding) Resolve(ref *felt.Address) (uint64, felt.Address, error) {
	if ref == nil {
		return 0, felt.Zero, nil
	}
	if ref.IsZero() {
		return 0, felt.Zero, token.ErrInvalidGameAddress
	}
	if !ref.Equal(b.game) {
		return 0, felt.Zero, fmt.Errorf("%w: got %s, bound to %s", ErrWrongGame, ref, b.game)
	}
	return 1, b.game, nil
}

// Registry implements Binding. Direct mode exposes no shared registry.
func (b *DirectBinding) Registry() *Games {
	return nil
}

// Game returns the fixed game address.
func (b *DirectBinding) Game() felt.Address {
	return b.game
}

// RegistryBinding resolves game references through a shared registry,
// auto-registering unknown addresses on first use.
type RegistryBinding struct {
	games *Games
}

// NewRegistryBinding creates a registry-mode binding over games.
func NewRegistryBinding(games *Games) *RegistryBinding {
	return &RegistryBinding{games: games}
}

// Resolve implements Binding.
func (b *RegistryBinding) Resolve(ref *felt.Address) (uint64, felt.Address, error) {
	if ref == nil {
		return 0, felt.Zero, nil
	}
	if ref.IsZero() {
		return 0, felt.Zero, token.ErrInvalidGameAddress
	}
	id, _ := b.games.Register(*ref)
	return id, *ref, nil
}

// Registry implements Binding.
func (b *RegistryBinding) Registry() *Games {
	return b.games
}
