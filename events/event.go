// Package events defines the token engine's state-change notifications and
// the append-only event log they are recorded in. Exactly one Emitter is
// active on an engine: the local log by default, or an external relayer
// that fully replaces local emission when configured.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the engine.
const (
	TypeTokenMinted       = "token_minted"
	TypeGameUpdated       = "game_updated"
	TypeMetadataUpdated   = "metadata_updated"
	TypePlayerNameUpdated = "player_name_updated"
	TypeRendererUpdated   = "renderer_updated"
)

// Event is one recorded state change for a token.
type Event struct {
	// Seq is the log-assigned position, starting at 1. Zero until appended.
	Seq uint64 `json:"seq"`

	// ID is a unique event identifier.
	ID string `json:"id"`

	// TokenID is the token the event belongs to.
	TokenID uint64 `json:"token_id"`

	// Type is one of the Type* constants.
	Type string `json:"type"`

	// Data is the JSON-encoded payload.
	Data json.RawMessage `json:"data"`

	// CreatedAt is when the event was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// New creates an event with a fresh id and an encoded payload.
func New(tokenID uint64, eventType string, payload any) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: encode %s payload: %w", eventType, err)
	}
	return &Event{
		ID:        uuid.New().String(),
		TokenID:   tokenID,
		Type:      eventType,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the payload into v.
func (e *Event) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}
