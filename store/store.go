// Package store persists the engine's append-only state: token records,
// registry snapshots, and the high-water token id. Memory and SQLite
// backends implement the same interface and share one test suite.
package store

import (
	"context"
	"errors"

	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/token"
)

// ErrNotFound is returned when reading a token id that was never written.
var ErrNotFound = errors.New("store: token not found")

// Entry is one persisted registry row.
type Entry struct {
	ID      uint64
	Address felt.Address
}

// Store is the persistence boundary of the token engine. Nothing is ever
// deleted; PutToken replaces the full record for a token id.
type Store interface {
	// PutToken inserts or replaces a token record.
	PutToken(ctx context.Context, r *token.Record) error

	// GetToken returns a copy of the record for id, or ErrNotFound.
	GetToken(ctx context.Context, id uint64) (*token.Record, error)

	// HasToken reports whether id was ever written.
	HasToken(ctx context.Context, id uint64) (bool, error)

	// MaxTokenID returns the highest token id ever written (0 if none).
	// The engine resumes its allocator from this value.
	MaxTokenID(ctx context.Context) (uint64, error)

	// PutMinter persists one minter registry row.
	PutMinter(ctx context.Context, id uint64, addr felt.Address) error

	// Minters returns all persisted minter rows, ordered by id.
	Minters(ctx context.Context) ([]Entry, error)

	// PutGame persists one game registry row.
	PutGame(ctx context.Context, id uint64, addr felt.Address) error

	// Games returns all persisted game rows, ordered by id.
	Games(ctx context.Context) ([]Entry, error)

	// Close releases any resources held by the store.
	Close() error
}
