// Package relay forwards engine events to an external collector over a
// websocket. When a relayer is configured on the engine it is the only
// emitter; nothing is written to the local log.
package relay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/provable-games/gametoken/events"
)

// ErrClosed is returned when emitting on a closed relayer.
var ErrClosed = errors.New("relay: connection closed")

const (
	handshakeTimeout = 5 * time.Second
	writeTimeout     = 5 * time.Second
)

// Relayer is a websocket client that sends each event as one JSON frame.
// Writes are serialized; a write failure closes the connection and fails
// all subsequent emissions.
type Relayer struct {
	url string

	writeMu sync.Mutex
	conn    *websocket.Conn
	closed  bool
}

// Dial connects to a relay collector.
func Dial(url string) (*Relayer, error) {
	d := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, resp, err := d.Dial(url, http.Header{})
	if err != nil {
		return nil, fmt.Errorf("relay: dial %s: %w", url, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	return &Relayer{url: url, conn: conn}, nil
}

// URL returns the collector endpoint this relayer is connected to.
func (r *Relayer) URL() string {
	return r.url
}

func (r *Relayer) send(ctx context.Context, tokenID uint64, eventType string, payload any) error {
	ev, err := events.New(tokenID, eventType, payload)
	if err != nil {
		return err
	}

	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if r.closed {
		return fmt.Errorf("%w: %s", ErrClosed, r.url)
	}

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = r.conn.SetWriteDeadline(deadline)

	if err := r.conn.WriteJSON(ev); err != nil {
		r.closed = true
		_ = r.conn.Close()
		return fmt.Errorf("relay: send %s: %w", eventType, err)
	}
	return nil
}

// Close shuts the connection down. Emissions after Close fail.
func (r *Relayer) Close() error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	_ = r.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	_ = r.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return r.conn.Close()
}

// EmitTokenMinted implements events.Emitter.
func (r *Relayer) EmitTokenMinted(ctx context.Context, e events.TokenMinted) error {
	return r.send(ctx, e.TokenID, events.TypeTokenMinted, e)
}

// EmitGameUpdated implements events.Emitter.
func (r *Relayer) EmitGameUpdated(ctx context.Context, e events.GameUpdated) error {
	return r.send(ctx, e.TokenID, events.TypeGameUpdated, e)
}

// EmitMetadataUpdated implements events.Emitter.
func (r *Relayer) EmitMetadataUpdated(ctx context.Context, e events.MetadataUpdated) error {
	return r.send(ctx, e.TokenID, events.TypeMetadataUpdated, e)
}

// EmitPlayerNameUpdated implements events.Emitter.
func (r *Relayer) EmitPlayerNameUpdated(ctx context.Context, e events.PlayerNameUpdated) error {
	return r.send(ctx, e.TokenID, events.TypePlayerNameUpdated, e)
}

// EmitRendererUpdated implements events.Emitter.
func (r *Relayer) EmitRendererUpdated(ctx context.Context, e events.RendererUpdated) error {
	return r.send(ctx, e.TokenID, events.TypeRendererUpdated, e)
}

var _ events.Emitter = (*Relayer)(nil)
