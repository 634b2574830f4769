// Package registry provides the minter and game registries backing the
// token engine: compact sequential ids allocated exactly once per distinct
// address, never reassigned and never freed.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/provable-games/gametoken/felt"
)

// ErrNotFound is returned when looking up an id or address that was never
// registered.
var ErrNotFound = errors.New("registry: not found")

// Minters maps minter addresses to compact sequential ids with
// get-or-create semantics. Ids start at 1 and increase by one per distinct
// address. Safe for concurrent use; two racing calls for the same address
// observe the first writer's id.
type Minters struct {
	mu     sync.Mutex
	byAddr map[felt.Address]uint64
	byID   map[uint64]felt.Address
	next   uint64
}

// NewMinters creates an empty minter registry.
func NewMinters() *Minters {
	return &Minters{
		byAddr: make(map[felt.Address]uint64),
		byID:   make(map[uint64]felt.Address),
		next:   1,
	}
}

// GetOrCreate returns the id for addr, allocating the next sequential id on
// first sight. The bool result is true when a new id was allocated.
func (m *Minters) GetOrCreate(addr felt.Address) (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.byAddr[addr]; ok {
		return id, false
	}
	id := m.next
	m.next++
	m.byAddr[addr] = id
	m.byID[id] = addr
	return id, true
}

// Exists reports whether addr has ever minted.
func (m *Minters) Exists(addr felt.Address) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byAddr[addr]
	return ok
}

// AddressOf returns the address registered under id.
func (m *Minters) AddressOf(id uint64) (felt.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	addr, ok := m.byID[id]
	if !ok {
		return felt.Zero, fmt.Errorf("%w: minter id %d", ErrNotFound, id)
	}
	return addr, nil
}

// Total returns the count of distinct minters ever seen.
func (m *Minters) Total() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.next - 1
}

// Restore seeds an entry, used when reloading a persisted registry.
// The next id is advanced past the highest restored id.
func (m *Minters) Restore(id uint64, addr felt.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byAddr[addr] = id
	m.byID[id] = addr
	if id >= m.next {
		m.next = id + 1
	}
}
