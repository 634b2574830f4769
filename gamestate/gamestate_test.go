package gamestate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/provable-games/gametoken/felt"
)

func TestMemoryReader(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	game := felt.FromUint64(0x100)

	t.Run("unknown game", func(t *testing.T) {
		if _, err := m.Snapshot(ctx, game, 1); !errors.Is(err, ErrUnknownGame) {
			t.Errorf("Expected ErrUnknownGame, got %v", err)
		}
		if _, err := m.Name(ctx, game); !errors.Is(err, ErrUnknownGame) {
			t.Errorf("Expected ErrUnknownGame, got %v", err)
		}
	})

	m.AddGame(game, "dungeon")

	t.Run("name", func(t *testing.T) {
		name, err := m.Name(ctx, game)
		if err != nil || name != "dungeon" {
			t.Errorf("Name = %q, %v", name, err)
		}
	})

	t.Run("no state for token", func(t *testing.T) {
		if _, err := m.Snapshot(ctx, game, 1); !errors.Is(err, ErrNoState) {
			t.Errorf("Expected ErrNoState, got %v", err)
		}
	})

	t.Run("snapshot round trip", func(t *testing.T) {
		score := uint64(40)
		over := true
		m.SetState(game, 1, Snapshot{Score: &score, GameOver: &over, Completed: []uint32{7, 9}})

		snap, err := m.Snapshot(ctx, game, 1)
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		if snap.Score == nil || *snap.Score != 40 {
			t.Error("Score should round trip")
		}
		if snap.GameOver == nil || !*snap.GameOver {
			t.Error("GameOver should round trip")
		}
		if len(snap.Completed) != 2 {
			t.Errorf("Expected 2 completions, got %v", snap.Completed)
		}
	})

	t.Run("partial snapshot keeps nils", func(t *testing.T) {
		m.SetState(game, 2, Snapshot{Completed: []uint32{7}})
		snap, err := m.Snapshot(ctx, game, 2)
		if err != nil {
			t.Fatal(err)
		}
		if snap.Score != nil || snap.GameOver != nil {
			t.Error("Unreported fields should stay nil")
		}
	})
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "games.json")
	doc := []byte(`{
	  "games": [
	    {
	      "address": "0x100",
	      "name": "dungeon",
	      "tokens": {
	        "1": {"score": 40, "game_over": true, "completed": [7, 9]},
	        "2": {"completed": [7]}
	      }
	    }
	  ]
	}`)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile failed: %v", err)
	}

	ctx := context.Background()
	game := felt.MustFromHex("0x100")

	name, err := m.Name(ctx, game)
	if err != nil || name != "dungeon" {
		t.Errorf("Name = %q, %v", name, err)
	}

	snap, err := m.Snapshot(ctx, game, 1)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if snap.Score == nil || *snap.Score != 40 {
		t.Error("Token 1 score should load")
	}

	snap2, err := m.Snapshot(ctx, game, 2)
	if err != nil {
		t.Fatal(err)
	}
	if snap2.Score != nil {
		t.Error("Token 2 score was not in the file and should be nil")
	}
}

func TestFromFileErrors(t *testing.T) {
	if _, err := FromFile("/nonexistent.json"); err == nil {
		t.Error("Missing file should fail")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(bad); err == nil {
		t.Error("Malformed JSON should fail")
	}

	badAddr := filepath.Join(dir, "addr.json")
	if err := os.WriteFile(badAddr, []byte(`{"games":[{"address":"nope"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(badAddr); err == nil {
		t.Error("Malformed address should fail")
	}
}
