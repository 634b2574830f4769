// Package gamestate is the read boundary to external game contracts. The
// engine only ever reads from a game: a partial snapshot of score,
// game-over, and objective completion, plus a name identity check used by
// deployment tooling.
package gamestate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/provable-games/gametoken/felt"
)

var (
	// ErrUnknownGame is returned when no game is known at the address.
	ErrUnknownGame = errors.New("gamestate: unknown game")
	// ErrNoState is returned when the game has no state for the token.
	ErrNoState = errors.New("gamestate: no state for token")
)

// Snapshot is a partial view of a game's state for one token. Nil fields
// were not reported by the game and must be left untouched on merge.
type Snapshot struct {
	Score     *uint64  `json:"score,omitempty"`
	GameOver  *bool    `json:"game_over,omitempty"`
	Completed []uint32 `json:"completed,omitempty"`
}

// Reader reads state from an external game contract. Calls are synchronous;
// any failure makes the enclosing engine call fail atomically.
type Reader interface {
	// Snapshot returns the game's current state for tokenID.
	Snapshot(ctx context.Context, game felt.Address, tokenID uint64) (Snapshot, error)

	// Name returns the game's self-reported name.
	Name(ctx context.Context, game felt.Address) (string, error)
}

type stateKey struct {
	game    felt.Address
	tokenID uint64
}

// Memory is an in-memory Reader used by tests and the CLI.
type Memory struct {
	mu    sync.RWMutex
	names map[felt.Address]string
	state map[stateKey]Snapshot
}

// NewMemory creates an empty in-memory reader.
func NewMemory() *Memory {
	return &Memory{
		names: make(map[felt.Address]string),
		state: make(map[stateKey]Snapshot),
	}
}

// AddGame registers a game address with a display name.
func (m *Memory) AddGame(game felt.Address, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names[game] = name
}

// SetState sets the snapshot a game reports for a token.
func (m *Memory) SetState(game felt.Address, tokenID uint64, s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.names[game]; !ok {
		m.names[game] = ""
	}
	m.state[stateKey{game, tokenID}] = s
}

// Snapshot implements Reader.
func (m *Memory) Snapshot(_ context.Context, game felt.Address, tokenID uint64) (Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.names[game]; !ok {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}
	s, ok := m.state[stateKey{game, tokenID}]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: game %s token %d", ErrNoState, game, tokenID)
	}
	return s, nil
}

// Name implements Reader.
func (m *Memory) Name(_ context.Context, game felt.Address) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name, ok := m.names[game]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownGame, game)
	}
	return name, nil
}

var _ Reader = (*Memory)(nil)
