// Package extension holds the optional per-token capabilities: renderer
// override, objectives tracking, soulbound flag, and settings reference.
// Each is a small logic unit over the token record satisfying a narrow
// interface held by the engine, so the engine depends on the capability
// contract and not on concrete extension types.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/token"
)

// ErrUnknownSettings is returned when a mint references a settings id the
// external settings provider does not know.
var ErrUnknownSettings = errors.New("extension: unknown settings id")

// Renderer manages the per-token rendering-authority override.
type Renderer struct{}

// Get returns the override and whether a non-null one is set.
func (Renderer) Get(r *token.Record) (felt.Address, bool) {
	return r.Renderer, r.HasCustomRenderer()
}

// Set installs an override. Used on the mint path only; post-mint mutation
// goes through Reset under the engine's ownership check.
func (Renderer) Set(r *token.Record, addr felt.Address) {
	r.Renderer = addr
}

// Reset clears the override back to the null address.
func (Renderer) Reset(r *token.Record) {
	r.Renderer = felt.Zero
}

// Objectives tracks the ordered objective set assigned at mint and the
// subset the bound game has reported complete.
type Objectives struct{}

// Assign stores the mint-time objective sequence.
func (Objectives) Assign(r *token.Record, ids []uint32) {
	r.ObjectiveIDs = append([]uint32(nil), ids...)
}

// MergeCompleted folds reported-complete objective ids into the record.
// Only assigned ids are kept, in assigned order, so repeated merges of the
// same report leave the record unchanged. It returns the recomputed
// all-completed flag.
func (o Objectives) MergeCompleted(r *token.Record, reported []uint32) bool {
	done := make(map[uint32]bool, len(r.CompletedObjectives)+len(reported))
	for _, id := range r.CompletedObjectives {
		done[id] = true
	}
	for _, id := range reported {
		done[id] = true
	}

	merged := make([]uint32, 0, len(r.ObjectiveIDs))
	for _, id := range r.ObjectiveIDs {
		if done[id] {
			merged = append(merged, id)
		}
	}
	r.CompletedObjectives = merged
	r.CompletedAllObjectives = o.AllCompleted(r)
	return r.CompletedAllObjectives
}

// AllCompleted reports whether the assigned set is non-empty and every
// assigned id has been reported complete.
func (Objectives) AllCompleted(r *token.Record) bool {
	if len(r.ObjectiveIDs) == 0 {
		return false
	}
	done := make(map[uint32]bool, len(r.CompletedObjectives))
	for _, id := range r.CompletedObjectives {
		done[id] = true
	}
	for _, id := range r.ObjectiveIDs {
		if !done[id] {
			return false
		}
	}
	return true
}

// Soulbound is the non-transferability flag, immutable after mint.
type Soulbound struct{}

// Set marks the record at mint time. There is no clear path.
func (Soulbound) Set(r *token.Record, v bool) {
	r.Soulbound = v
}

// Is reports whether the token is soulbound.
func (Soulbound) Is(r *token.Record) bool {
	return r.Soulbound
}

// SettingsProvider is the external settings-details collaborator consulted
// at mint time only.
type SettingsProvider interface {
	SettingsExist(ctx context.Context, id uint32) (bool, error)
}

// Settings stores a settings reference after validating it against the
// external provider.
type Settings struct{}

// Assign validates id against provider and stores it on the record.
// A nil provider skips validation.
func (Settings) Assign(ctx context.Context, provider SettingsProvider, r *token.Record, id uint32) error {
	if provider != nil {
		ok, err := provider.SettingsExist(ctx, id)
		if err != nil {
			return fmt.Errorf("extension: settings lookup: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownSettings, id)
		}
	}
	r.SettingsID = id
	r.HasSettings = true
	return nil
}
