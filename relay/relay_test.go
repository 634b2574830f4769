package relay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/provable-games/gametoken/events"
)

// collector is a test websocket endpoint that decodes every frame it
// receives into an event channel.
func collector(t *testing.T) (*httptest.Server, <-chan events.Event) {
	t.Helper()

	upgrader := websocket.Upgrader{
		CheckOrigin: func(*http.Request) bool { return true },
	}
	received := make(chan events.Event, 16)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		for {
			var ev events.Event
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			received <- ev
		}
	}))
	t.Cleanup(ts.Close)

	return ts, received
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func waitEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for relayed event")
		return events.Event{}
	}
}

func TestDialBadURL(t *testing.T) {
	if _, err := Dial("ws://127.0.0.1:1/nothing-listens-here"); err == nil {
		t.Fatal("Dial should fail for unreachable endpoint")
	}
}

func TestRelayerEmitsFrames(t *testing.T) {
	ts, received := collector(t)

	r, err := Dial(wsURL(ts))
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer r.Close()

	ctx := context.Background()

	err = r.EmitTokenMinted(ctx, events.TokenMinted{
		TokenID:  1,
		GameID:   1,
		MinterID: 1,
		To:       "0x2a",
	})
	if err != nil {
		t.Fatalf("EmitTokenMinted failed: %v", err)
	}

	ev := waitEvent(t, received)
	if ev.Type != events.TypeTokenMinted {
		t.Errorf("Expected type %q, got %q", events.TypeTokenMinted, ev.Type)
	}
	if ev.TokenID != 1 {
		t.Errorf("Expected token 1, got %d", ev.TokenID)
	}
	if ev.ID == "" {
		t.Error("Event should carry an id")
	}

	var minted events.TokenMinted
	if err := ev.Decode(&minted); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if minted.To != "0x2a" {
		t.Errorf("Expected recipient 0x2a, got %s", minted.To)
	}
}

func TestRelayerAllEventTypes(t *testing.T) {
	ts, received := collector(t)

	r, err := Dial(wsURL(ts))
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer r.Close()

	ctx := context.Background()
	emissions := []struct {
		wantType string
		emit     func() error
	}{
		{events.TypeTokenMinted, func() error {
			return r.EmitTokenMinted(ctx, events.TokenMinted{TokenID: 1})
		}},
		{events.TypeGameUpdated, func() error {
			return r.EmitGameUpdated(ctx, events.GameUpdated{TokenID: 1, Score: 10})
		}},
		{events.TypeMetadataUpdated, func() error {
			return r.EmitMetadataUpdated(ctx, events.MetadataUpdated{TokenID: 1})
		}},
		{events.TypePlayerNameUpdated, func() error {
			return r.EmitPlayerNameUpdated(ctx, events.PlayerNameUpdated{TokenID: 1, PlayerName: "alice"})
		}},
		{events.TypeRendererUpdated, func() error {
			return r.EmitRendererUpdated(ctx, events.RendererUpdated{TokenID: 1, Renderer: "0x0"})
		}},
	}

	for _, em := range emissions {
		if err := em.emit(); err != nil {
			t.Fatalf("emit %s failed: %v", em.wantType, err)
		}
		ev := waitEvent(t, received)
		if ev.Type != em.wantType {
			t.Errorf("Expected type %q, got %q", em.wantType, ev.Type)
		}
	}
}

func TestRelayerEmitAfterClose(t *testing.T) {
	ts, _ := collector(t)

	r, err := Dial(wsURL(ts))
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Close is idempotent.
	if err := r.Close(); err != nil {
		t.Fatalf("Second close failed: %v", err)
	}

	err = r.EmitGameUpdated(context.Background(), events.GameUpdated{TokenID: 1})
	if err == nil {
		t.Fatal("Emit after close should fail")
	}
}
