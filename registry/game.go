package registry

import (
	"fmt"
	"sync"

	"github.com/provable-games/gametoken/felt"
)

// Games maps game implementation addresses to sequential game ids.
// Ids start at 1. Registering the same address again returns the existing
// id; nothing is ever removed.
type Games struct {
	mu     sync.Mutex
	byAddr map[felt.Address]uint64
	byID   map[uint64]felt.Address
	next   uint64
}

// NewGames creates an empty game registry.
func NewGames() *Games {
	return &Games{
		byAddr: make(map[felt.Address]uint64),
		byID:   make(map[uint64]felt.Address),
		next:   1,
	}
}

// Register returns the id for addr, allocating the next sequential id on
// first registration. The bool result is true when a new id was allocated.
func (g *Games) Register(addr felt.Address) (uint64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if id, ok := g.byAddr[addr]; ok {
		return id, false
	}
	id := g.next
	g.next++
	g.byAddr[addr] = id
	g.byID[id] = addr
	return id, true
}

// Resolve returns the address registered under id.
func (g *Games) Resolve(id uint64) (felt.Address, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	addr, ok := g.byID[id]
	if !ok {
		return felt.Zero, fmt.Errorf("%w: game id %d", ErrNotFound, id)
	}
	return addr, nil
}

// Lookup returns the id registered for addr, if any.
func (g *Games) Lookup(addr felt.Address) (uint64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	id, ok := g.byAddr[addr]
	return id, ok
}

// Count returns the number of registered games.
func (g *Games) Count() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next - 1
}

// Restore seeds an entry, used when reloading a persisted registry.
func (g *Games) Restore(id uint64, addr felt.Address) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.byAddr[addr] = id
	g.byID[id] = addr
	if id >= g.next {
		g.next = id + 1
	}
}
