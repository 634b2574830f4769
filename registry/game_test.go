package registry

import (
	"errors"
	"testing"

	"github.com/provable-games/gametoken/felt"
)

func TestGamesRegister(t *testing.T) {
	g := NewGames()

	id1, created := g.Register(felt.FromUint64(100))
	if id1 != 1 || !created {
		t.Errorf("First game should get id 1 (created), got %d (%v)", id1, created)
	}

	id2, created := g.Register(felt.FromUint64(200))
	if id2 != 2 || !created {
		t.Errorf("Second game should get id 2 (created), got %d (%v)", id2, created)
	}

	again, created := g.Register(felt.FromUint64(100))
	if again != 1 || created {
		t.Errorf("Re-registration should return id 1 (not created), got %d (%v)", again, created)
	}

	if g.Count() != 2 {
		t.Errorf("Expected 2 games, got %d", g.Count())
	}
}

func TestGamesResolveAndLookup(t *testing.T) {
	g := NewGames()
	addr := felt.FromUint64(0xbeef)
	id, _ := g.Register(addr)

	got, err := g.Resolve(id)
	if err != nil || !got.Equal(addr) {
		t.Errorf("Resolve(%d) = %s, %v; want %s", id, got, err, addr)
	}

	if _, err := g.Resolve(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("Unknown id should return ErrNotFound, got %v", err)
	}

	if lookedUp, ok := g.Lookup(addr); !ok || lookedUp != id {
		t.Errorf("Lookup = %d, %v; want %d, true", lookedUp, ok, id)
	}
	if _, ok := g.Lookup(felt.FromUint64(1)); ok {
		t.Error("Lookup of unknown address should miss")
	}
}

func TestGamesRestore(t *testing.T) {
	g := NewGames()
	g.Restore(2, felt.FromUint64(20))

	id, created := g.Register(felt.FromUint64(30))
	if id != 3 || !created {
		t.Errorf("Expected id 3 after restoring id 2, got %d (%v)", id, created)
	}
}
