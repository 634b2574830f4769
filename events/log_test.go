package events

import (
	"context"
	"path/filepath"
	"testing"
)

// runLogTests exercises the Log contract against any implementation.
func runLogTests(t *testing.T, newLog func(t *testing.T) Log) {
	ctx := context.Background()

	t.Run("append assigns sequence from 1", func(t *testing.T) {
		log := newLog(t)
		defer log.Close()

		for i := 1; i <= 3; i++ {
			ev, err := New(uint64(i), TypeTokenMinted, TokenMinted{TokenID: uint64(i)})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if err := log.Append(ctx, ev); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			if ev.Seq != uint64(i) {
				t.Errorf("Expected seq %d, got %d", i, ev.Seq)
			}
		}
	})

	t.Run("read filters by token", func(t *testing.T) {
		log := newLog(t)
		defer log.Close()

		for _, tokenID := range []uint64{1, 2, 1, 3, 1} {
			ev, _ := New(tokenID, TypeGameUpdated, GameUpdated{TokenID: tokenID})
			if err := log.Append(ctx, ev); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}

		evs, err := log.Read(ctx, 1, 0)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if len(evs) != 3 {
			t.Fatalf("Expected 3 events for token 1, got %d", len(evs))
		}
		for _, ev := range evs {
			if ev.TokenID != 1 {
				t.Errorf("Filtered read returned token %d", ev.TokenID)
			}
		}

		all, err := log.Read(ctx, 0, 0)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if len(all) != 5 {
			t.Errorf("Token id 0 should read the whole log, got %d events", len(all))
		}
	})

	t.Run("read after cursor", func(t *testing.T) {
		log := newLog(t)
		defer log.Close()

		for i := 0; i < 4; i++ {
			ev, _ := New(1, TypeGameUpdated, GameUpdated{TokenID: 1})
			if err := log.Append(ctx, ev); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
		}

		evs, err := log.Read(ctx, 1, 2)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if len(evs) != 2 {
			t.Fatalf("Expected 2 events after seq 2, got %d", len(evs))
		}
		if evs[0].Seq != 3 || evs[1].Seq != 4 {
			t.Errorf("Expected seqs 3,4; got %d,%d", evs[0].Seq, evs[1].Seq)
		}
	})

	t.Run("payload round trip", func(t *testing.T) {
		log := newLog(t)
		defer log.Close()

		in := PlayerNameUpdated{TokenID: 5, PlayerName: "alice"}
		ev, _ := New(5, TypePlayerNameUpdated, in)
		if err := log.Append(ctx, ev); err != nil {
			t.Fatalf("Append failed: %v", err)
		}

		evs, err := log.Read(ctx, 5, 0)
		if err != nil || len(evs) != 1 {
			t.Fatalf("Read failed: %v (%d events)", err, len(evs))
		}
		var out PlayerNameUpdated
		if err := evs[0].Decode(&out); err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if out != in {
			t.Errorf("Payload round trip: got %+v, want %+v", out, in)
		}
		if evs[0].ID != ev.ID {
			t.Errorf("Event id should survive: %s vs %s", evs[0].ID, ev.ID)
		}
	})
}

func TestMemoryLog(t *testing.T) {
	runLogTests(t, func(t *testing.T) Log {
		return NewMemoryLog()
	})
}

func TestSQLiteLog(t *testing.T) {
	runLogTests(t, func(t *testing.T) Log {
		log, err := NewSQLiteLog(filepath.Join(t.TempDir(), "events.db"))
		if err != nil {
			t.Fatalf("NewSQLiteLog failed: %v", err)
		}
		return log
	})
}

func TestLogEmitter(t *testing.T) {
	log := NewMemoryLog()
	em := NewLogEmitter(log)
	ctx := context.Background()

	if err := em.EmitTokenMinted(ctx, TokenMinted{TokenID: 1, MinterID: 1}); err != nil {
		t.Fatalf("EmitTokenMinted failed: %v", err)
	}
	if err := em.EmitRendererUpdated(ctx, RendererUpdated{TokenID: 1, Renderer: "0x0"}); err != nil {
		t.Fatalf("EmitRendererUpdated failed: %v", err)
	}

	evs, err := log.Read(ctx, 1, 0)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(evs) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(evs))
	}
	if evs[0].Type != TypeTokenMinted || evs[1].Type != TypeRendererUpdated {
		t.Errorf("Unexpected event types: %s, %s", evs[0].Type, evs[1].Type)
	}
}
