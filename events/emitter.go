package events

import "context"

// TokenMinted is emitted once per successful mint.
type TokenMinted struct {
	TokenID     uint64 `json:"token_id"`
	GameID      uint64 `json:"game_id"`
	GameAddress string `json:"game_address"`
	MinterID    uint64 `json:"minter_id"`
	To          string `json:"to"`
	Soulbound   bool   `json:"soulbound"`
}

// GameUpdated is emitted when a game-state merge changed the record.
type GameUpdated struct {
	TokenID                uint64 `json:"token_id"`
	Score                  uint64 `json:"score"`
	GameOver               bool   `json:"game_over"`
	CompletedAllObjectives bool   `json:"completed_all_objectives"`
}

// MetadataUpdated is emitted when token metadata fields change.
type MetadataUpdated struct {
	TokenID uint64 `json:"token_id"`
	GameID  uint64 `json:"game_id"`
}

// PlayerNameUpdated is emitted when the player name is replaced.
type PlayerNameUpdated struct {
	TokenID    uint64 `json:"token_id"`
	PlayerName string `json:"player_name"`
}

// RendererUpdated is emitted when the renderer override changes. A reset
// carries the null address.
type RendererUpdated struct {
	TokenID  uint64 `json:"token_id"`
	Renderer string `json:"renderer"`
}

// Emitter is the notification sink for engine state changes. The local log
// and the external relayer both implement it; the engine holds exactly one.
type Emitter interface {
	EmitTokenMinted(ctx context.Context, e TokenMinted) error
	EmitGameUpdated(ctx context.Context, e GameUpdated) error
	EmitMetadataUpdated(ctx context.Context, e MetadataUpdated) error
	EmitPlayerNameUpdated(ctx context.Context, e PlayerNameUpdated) error
	EmitRendererUpdated(ctx context.Context, e RendererUpdated) error
}

// LogEmitter records events in a local Log.
type LogEmitter struct {
	log Log
}

// NewLogEmitter creates an emitter writing to log.
func NewLogEmitter(log Log) *LogEmitter {
	return &LogEmitter{log: log}
}

func (l *LogEmitter) emit(ctx context.Context, tokenID uint64, eventType string, payload any) error {
	ev, err := New(tokenID, eventType, payload)
	if err != nil {
		return err
	}
	return l.log.Append(ctx, ev)
}

// EmitTokenMinted implements Emitter.
func (l *LogEmitter) EmitTokenMinted(ctx context.Context, e TokenMinted) error {
	return l.emit(ctx, e.TokenID, TypeTokenMinted, e)
}

// EmitGameUpdated implements Emitter.
func (l *LogEmitter) EmitGameUpdated(ctx context.Context, e GameUpdated) error {
	return l.emit(ctx, e.TokenID, TypeGameUpdated, e)
}

// EmitMetadataUpdated implements Emitter.
func (l *LogEmitter) EmitMetadataUpdated(ctx context.Context, e MetadataUpdated) error {
	return l.emit(ctx, e.TokenID, TypeMetadataUpdated, e)
}

// EmitPlayerNameUpdated implements Emitter.
func (l *LogEmitter) EmitPlayerNameUpdated(ctx context.Context, e PlayerNameUpdated) error {
	return l.emit(ctx, e.TokenID, TypePlayerNameUpdated, e)
}

// EmitRendererUpdated implements Emitter.
func (l *LogEmitter) EmitRendererUpdated(ctx context.Context, e RendererUpdated) error {
	return l.emit(ctx, e.TokenID, TypeRendererUpdated, e)
}

var _ Emitter = (*LogEmitter)(nil)
