package engine

import (
	"context"
	"fmt"

	"github.com/provable-games/gametoken/commit"
	"github.com/provable-games/gametoken/events"
	"github.com/provable-games/gametoken/token"
)

// UpdateGame reads the bound game's current state and merges it into the
// token record. Fields the game does not report are left untouched. The
// merge is all-or-nothing: if the game is unreachable the record is not
// modified. Calling twice with unchanged game state is a no-op and emits
// nothing.
func (e *Engine) UpdateGame(ctx context.Context, tokenID uint64) error {
	rec, err := e.get(ctx, tokenID, token.NotFound)
	if err != nil {
		return err
	}
	if rec.Blank() {
		return fmt.Errorf("%w: token %d", token.ErrNoBoundGame, tokenID)
	}
	if e.games == nil {
		return fmt.Errorf("%w: no game reader configured", token.ErrGameUnresponsive)
	}

	snap, err := e.games.Snapshot(ctx, rec.GameAddress, tokenID)
	if err != nil {
		return fmt.Errorf("%w: token %d: %v", token.ErrGameUnresponsive, tokenID, err)
	}

	staged := rec.Clone()
	if snap.Score != nil {
		staged.Score = *snap.Score
	}
	if snap.GameOver != nil {
		staged.GameOver = *snap.GameOver
	}
	if snap.Completed != nil {
		e.objectives.MergeCompleted(staged, snap.Completed)
	}

	// Unchanged state commits nothing and emits nothing.
	if commit.Record(staged) == commit.Record(rec) {
		return nil
	}

	if err := e.store.PutToken(ctx, staged); err != nil {
		return fmt.Errorf("engine: persist token %d: %w", tokenID, err)
	}
	return e.emitter.EmitGameUpdated(ctx, events.GameUpdated{
		TokenID:                tokenID,
		Score:                  staged.Score,
		GameOver:               staged.GameOver,
		CompletedAllObjectives: staged.CompletedAllObjectives,
	})
}
