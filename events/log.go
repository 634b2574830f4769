package events

import (
	"context"
	"sync"
)

// Log is an append-only store of token events. Sequence numbers are
// assigned on append, start at 1, and are global across tokens.
type Log interface {
	// Append records an event and assigns its sequence number.
	Append(ctx context.Context, e *Event) error

	// Read returns the events for a token with Seq > after, in order.
	// Token id 0 reads the whole log.
	Read(ctx context.Context, tokenID uint64, after uint64) ([]*Event, error)

	// Close releases any resources held by the log.
	Close() error
}

// MemoryLog is an in-memory Log for tests and ephemeral engines.
type MemoryLog struct {
	mu     sync.Mutex
	events []*Event
}

// NewMemoryLog creates an empty in-memory log.
func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

// Append implements Log.
func (m *MemoryLog) Append(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Seq = uint64(len(m.events)) + 1
	m.events = append(m.events, e)
	return nil
}

// Read implements Log.
func (m *MemoryLog) Read(_ context.Context, tokenID uint64, after uint64) ([]*Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Event
	for _, e := range m.events {
		if e.Seq <= after {
			continue
		}
		if tokenID != 0 && e.TokenID != tokenID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Close implements Log.
func (m *MemoryLog) Close() error {
	return nil
}

var _ Log = (*MemoryLog)(nil)
