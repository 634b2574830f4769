package engine

import (
	"context"
	"fmt"

	"github.com/provable-games/gametoken/events"
	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/token"
)

// MintRequest carries the optional fields of a mint. Nil pointers mean the
// field was not supplied.
type MintRequest struct {
	// GameRef is the optional game reference. Nil mints a blank token;
	// the null address is rejected.
	GameRef *felt.Address

	PlayerName   *string
	SettingsID   *uint32
	Start        *uint64
	End          *uint64
	ObjectiveIDs []uint32
	Context      *bool
	ClientURL    *string
	Renderer     *felt.Address

	// To receives the underlying asset-ownership record.
	To felt.Address

	// Soulbound permanently locks the token to its owner.
	Soulbound bool
}

// Mint validates the request, allocates the next token id, registers the
// caller as minter, and persists the new record. It returns the new token
// id. Validation runs before any id is allocated so a failed mint leaves
// every counter untouched.
func (e *Engine) Mint(ctx context.Context, caller felt.Address, req MintRequest) (uint64, error) {
	if req.PlayerName != nil && *req.PlayerName == "" {
		return 0, token.ErrEmptyName
	}

	staged := &token.Record{}

	if req.PlayerName != nil {
		staged.PlayerName = *req.PlayerName
	}
	if req.Start != nil {
		staged.Lifecycle.Start = *req.Start
	}
	if req.End != nil {
		staged.Lifecycle.End = *req.End
	}
	if req.Context != nil {
		staged.HasContext = *req.Context
	}
	if req.ClientURL != nil {
		staged.ClientURL = *req.ClientURL
	}
	if req.ObjectiveIDs != nil {
		e.objectives.Assign(staged, req.ObjectiveIDs)
	}
	if req.Renderer != nil {
		e.renderer.Set(staged, *req.Renderer)
	}
	e.soulbound.Set(staged, req.Soulbound)

	// External settings validation happens before any allocation.
	if req.SettingsID != nil {
		if err := e.settingsCap.Assign(ctx, e.settings, staged, *req.SettingsID); err != nil {
			return 0, err
		}
	}

	// Resolve the game reference last among validations: in registry mode
	// this auto-registers a new game, which must not happen for a mint that
	// would fail an earlier check.
	gameID, gameAddr, err := e.binding.Resolve(req.GameRef)
	if err != nil {
		return 0, err
	}
	staged.GameID = gameID
	staged.GameAddress = gameAddr

	e.mintMu.Lock()
	defer e.mintMu.Unlock()

	minterID, created := e.minters.GetOrCreate(caller)
	if created {
		if err := e.store.PutMinter(ctx, minterID, caller); err != nil {
			return 0, fmt.Errorf("engine: persist minter: %w", err)
		}
	}
	if gameID != 0 && e.binding.Registry() != nil {
		if err := e.store.PutGame(ctx, gameID, gameAddr); err != nil {
			return 0, fmt.Errorf("engine: persist game: %w", err)
		}
	}

	e.nextToken++
	staged.TokenID = e.nextToken
	staged.MinterID = minterID

	if err := e.store.PutToken(ctx, staged); err != nil {
		e.nextToken--
		return 0, fmt.Errorf("engine: persist token: %w", err)
	}

	if e.assets != nil {
		if err := e.assets.Issue(staged.TokenID, req.To); err != nil {
			return 0, fmt.Errorf("engine: issue ownership: %w", err)
		}
	}

	err = e.emitter.EmitTokenMinted(ctx, events.TokenMinted{
		TokenID:     staged.TokenID,
		GameID:      staged.GameID,
		GameAddress: staged.GameAddress.Hex(),
		MinterID:    staged.MinterID,
		To:          req.To.Hex(),
		Soulbound:   staged.Soulbound,
	})
	if err != nil {
		return 0, err
	}
	return staged.TokenID, nil
}
