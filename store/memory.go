package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/token"
)

// MemoryStore is an in-memory Store for tests and ephemeral engines.
// Records are cloned on the way in and out so callers never share state
// with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	tokens  map[uint64]*token.Record
	maxID   uint64
	minters map[uint64]felt.Address
	games   map[uint64]felt.Address
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tokens:  make(map[uint64]*token.Record),
		minters: make(map[uint64]felt.Address),
		games:   make(map[uint64]felt.Address),
	}
}

// PutToken implements Store.
func (m *MemoryStore) PutToken(_ context.Context, r *token.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[r.TokenID] = r.Clone()
	if r.TokenID > m.maxID {
		m.maxID = r.TokenID
	}
	return nil
}

// GetToken implements Store.
func (m *MemoryStore) GetToken(_ context.Context, id uint64) (*token.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.tokens[id]
	if !ok {
		return nil, fmt.Errorf("%w: token %d", ErrNotFound, id)
	}
	return r.Clone(), nil
}

// HasToken implements Store.
func (m *MemoryStore) HasToken(_ context.Context, id uint64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tokens[id]
	return ok, nil
}

// MaxTokenID implements Store.
func (m *MemoryStore) MaxTokenID(_ context.Context) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxID, nil
}

// PutMinter implements Store.
func (m *MemoryStore) PutMinter(_ context.Context, id uint64, addr felt.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.minters[id] = addr
	return nil
}

// Minters implements Store.
func (m *MemoryStore) Minters(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedEntries(m.minters), nil
}

// PutGame implements Store.
func (m *MemoryStore) PutGame(_ context.Context, id uint64, addr felt.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[id] = addr
	return nil
}

// Games implements Store.
func (m *MemoryStore) Games(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedEntries(m.games), nil
}

// Close implements Store.
func (m *MemoryStore) Close() error {
	return nil
}

func sortedEntries(rows map[uint64]felt.Address) []Entry {
	out := make([]Entry, 0, len(rows))
	for id, addr := range rows {
		out = append(out, Entry{ID: id, Address: addr})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ Store = (*MemoryStore)(nil)
