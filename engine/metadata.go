package engine

import (
	"context"
	"fmt"

	"github.com/provable-games/gametoken/commit"
	"github.com/provable-games/gametoken/events"
	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/token"
)

// MetadataUpdate carries the optional fields of a metadata mutation.
// Nil pointers leave the corresponding record field untouched.
type MetadataUpdate struct {
	// GameRef performs the one-way blank-to-bound transition. Supplying it
	// for an already-bound token fails.
	GameRef *felt.Address

	SettingsID   *uint32
	ObjectiveIDs []uint32
	ClientURL    *string
	Renderer     *felt.Address
	Context      *bool
}

// SetTokenMetadata applies a partial metadata update. Only the recorded
// minter may call it; ownership of the underlying asset is irrelevant here.
func (e *Engine) SetTokenMetadata(ctx context.Context, caller felt.Address, tokenID uint64, upd MetadataUpdate) error {
	rec, err := e.get(ctx, tokenID, token.NotMinted)
	if err != nil {
		return err
	}

	minterAddr, err := e.minters.AddressOf(rec.MinterID)
	if err != nil {
		return err
	}
	if !minterAddr.Equal(caller) {
		return fmt.Errorf("%w: token %d was minted by %s", token.ErrNotMinter, tokenID, minterAddr)
	}

	staged := rec.Clone()

	if upd.GameRef != nil {
		if !staged.Blank() {
			return fmt.Errorf("%w: token %d is bound to game %d", token.ErrGameAlreadyBound, tokenID, staged.GameID)
		}
		gameID, gameAddr, err := e.binding.Resolve(upd.GameRef)
		if err != nil {
			return err
		}
		staged.GameID = gameID
		staged.GameAddress = gameAddr
		if gameID != 0 && e.binding.Registry() != nil {
			if err := e.store.PutGame(ctx, gameID, gameAddr); err != nil {
				return fmt.Errorf("engine: persist game: %w", err)
			}
		}
	}
	if upd.SettingsID != nil {
		if err := e.settingsCap.Assign(ctx, e.settings, staged, *upd.SettingsID); err != nil {
			return err
		}
	}
	if upd.ObjectiveIDs != nil {
		e.objectives.Assign(staged, upd.ObjectiveIDs)
		// Re-derive completion against the new objective set.
		e.objectives.MergeCompleted(staged, nil)
	}
	if upd.ClientURL != nil {
		staged.ClientURL = *upd.ClientURL
	}
	if upd.Renderer != nil {
		e.renderer.Set(staged, *upd.Renderer)
	}
	if upd.Context != nil {
		staged.HasContext = *upd.Context
	}

	if commit.Record(staged) == commit.Record(rec) {
		return nil
	}

	if err := e.store.PutToken(ctx, staged); err != nil {
		return fmt.Errorf("engine: persist token %d: %w", tokenID, err)
	}
	return e.emitter.EmitMetadataUpdated(ctx, events.MetadataUpdated{
		TokenID: tokenID,
		GameID:  staged.GameID,
	})
}

// UpdatePlayerName replaces the token's player name. Only the current
// owner of the underlying asset may call it.
func (e *Engine) UpdatePlayerName(ctx context.Context, caller felt.Address, tokenID uint64, name string) error {
	rec, err := e.get(ctx, tokenID, token.NotFound)
	if err != nil {
		return err
	}
	if err := e.requireOwner(caller, tokenID); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: token %d", token.ErrEmptyName, tokenID)
	}

	staged := rec.Clone()
	staged.PlayerName = name

	if err := e.store.PutToken(ctx, staged); err != nil {
		return fmt.Errorf("engine: persist token %d: %w", tokenID, err)
	}
	return e.emitter.EmitPlayerNameUpdated(ctx, events.PlayerNameUpdated{
		TokenID:    tokenID,
		PlayerName: name,
	})
}

// ResetTokenRenderer clears the renderer override back to the null
// address. Only the current owner may call it. Exactly one renderer-update
// notification carrying the null address is emitted.
func (e *Engine) ResetTokenRenderer(ctx context.Context, caller felt.Address, tokenID uint64) error {
	rec, err := e.get(ctx, tokenID, token.NotFound)
	if err != nil {
		return err
	}
	if err := e.requireOwner(caller, tokenID); err != nil {
		return err
	}

	staged := rec.Clone()
	e.renderer.Reset(staged)

	if err := e.store.PutToken(ctx, staged); err != nil {
		return fmt.Errorf("engine: persist token %d: %w", tokenID, err)
	}
	return e.emitter.EmitRendererUpdated(ctx, events.RendererUpdated{
		TokenID:  tokenID,
		Renderer: felt.Zero.Hex(),
	})
}

// requireOwner checks the caller against the asset module's current owner.
func (e *Engine) requireOwner(caller felt.Address, tokenID uint64) error {
	if e.assets == nil {
		return fmt.Errorf("%w: no asset module configured", token.ErrNotOwner)
	}
	owner, err := e.assets.OwnerOf(tokenID)
	if err != nil {
		return fmt.Errorf("%w: token %d: %v", token.ErrNotOwner, tokenID, err)
	}
	if !owner.Equal(caller) {
		return fmt.Errorf("%w: token %d is owned by %s", token.ErrNotOwner, tokenID, owner)
	}
	return nil
}
