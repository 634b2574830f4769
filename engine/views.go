package engine

import (
	"context"
	"fmt"

	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/registry"
	"github.com/provable-games/gametoken/token"
)

// TokenMetadata returns a copy of the token's full record.
func (e *Engine) TokenMetadata(ctx context.Context, tokenID uint64) (*token.Record, error) {
	return e.get(ctx, tokenID, token.NotFound)
}

// PlayState returns the playability state derived at the current time.
func (e *Engine) PlayState(ctx context.Context, tokenID uint64) (token.PlayState, error) {
	rec, err := e.get(ctx, tokenID, token.NotFound)
	if err != nil {
		return 0, err
	}
	return rec.Lifecycle.StateAt(e.now()), nil
}

// IsPlayable reports whether the token is inside its playability window.
func (e *Engine) IsPlayable(ctx context.Context, tokenID uint64) (bool, error) {
	state, err := e.PlayState(ctx, tokenID)
	if err != nil {
		return false, err
	}
	return state == token.Active, nil
}

// RendererAddress returns the renderer override, or the null address when
// none is set.
func (e *Engine) RendererAddress(ctx context.Context, tokenID uint64) (felt.Address, error) {
	rec, err := e.get(ctx, tokenID, token.NotFound)
	if err != nil {
		return felt.Zero, err
	}
	addr, _ := e.renderer.Get(rec)
	return addr, nil
}

// HasCustomRenderer reports whether a non-null renderer override is set.
func (e *Engine) HasCustomRenderer(ctx context.Context, tokenID uint64) (bool, error) {
	rec, err := e.get(ctx, tokenID, token.NotFound)
	if err != nil {
		return false, err
	}
	_, ok := e.renderer.Get(rec)
	return ok, nil
}

// MintedBy returns the compact minter id of the token's minter.
func (e *Engine) MintedBy(ctx context.Context, tokenID uint64) (uint64, error) {
	rec, err := e.get(ctx, tokenID, token.NotFound)
	if err != nil {
		return 0, err
	}
	return rec.MinterID, nil
}

// MinterExists reports whether addr has ever minted.
func (e *Engine) MinterExists(addr felt.Address) bool {
	return e.minters.Exists(addr)
}

// GetMinterAddress resolves a minter id back to its address.
func (e *Engine) GetMinterAddress(minterID uint64) (felt.Address, error) {
	return e.minters.AddressOf(minterID)
}

// TotalMinters returns the count of distinct minters ever seen.
func (e *Engine) TotalMinters() uint64 {
	return e.minters.Total()
}

// TokenGameAddress returns the address of the token's bound game, or the
// null address for a blank token.
func (e *Engine) TokenGameAddress(ctx context.Context, tokenID uint64) (felt.Address, error) {
	rec, err := e.get(ctx, tokenID, token.NotFound)
	if err != nil {
		return felt.Zero, err
	}
	return rec.GameAddress, nil
}

// GameRegistryAddress returns the configured registry contract address, or
// the null address in direct mode.
func (e *Engine) GameRegistryAddress() felt.Address {
	return e.registryAddr
}

// GameCount returns the number of known games: registry size in registry
// mode, always one in direct mode.
func (e *Engine) GameCount() uint64 {
	if games := e.binding.Registry(); games != nil {
		return games.Count()
	}
	return 1
}

// GameAddressFromID resolves a game id to its address.
func (e *Engine) GameAddressFromID(gameID uint64) (felt.Address, error) {
	if games := e.binding.Registry(); games != nil {
		return games.Resolve(gameID)
	}
	if direct, ok := e.binding.(*registry.DirectBinding); ok && gameID == 1 {
		return direct.Game(), nil
	}
	return felt.Zero, fmt.Errorf("%w: game id %d", registry.ErrNotFound, gameID)
}

// IsSoulbound reports whether the token is locked to its owner. The asset
// module consults this before any transfer.
func (e *Engine) IsSoulbound(ctx context.Context, tokenID uint64) (bool, error) {
	rec, err := e.get(ctx, tokenID, token.NotFound)
	if err != nil {
		return false, err
	}
	return e.soulbound.Is(rec), nil
}

// PlayerName returns the token's player name, empty when unset.
func (e *Engine) PlayerName(ctx context.Context, tokenID uint64) (string, error) {
	rec, err := e.get(ctx, tokenID, token.NotFound)
	if err != nil {
		return "", err
	}
	return rec.PlayerName, nil
}

// ObjectivesCompleted reports whether the token's full objective set has
// been completed.
func (e *Engine) ObjectivesCompleted(ctx context.Context, tokenID uint64) (bool, error) {
	rec, err := e.get(ctx, tokenID, token.NotFound)
	if err != nil {
		return false, err
	}
	return e.objectives.AllCompleted(rec), nil
}
