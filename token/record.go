// Package token defines the game session token record, its playability
// window, and the error taxonomy shared by the engine and its registries.
package token

import (
	"slices"

	"github.com/provable-games/gametoken/felt"
)

// Record is the persisted state of a single game session token.
//
// GameID 0 marks a blank token: minted with no game reference, upgradeable
// exactly once through the engine's metadata path. The asset owner is not
// duplicated here; ownership lives in the external asset module.
type Record struct {
	// Identity
	TokenID uint64 `json:"token_id"`

	// Game binding. Zero means blank.
	GameID      uint64       `json:"game_id"`
	GameAddress felt.Address `json:"game_address"`

	// Minter identity (registry id, never the raw address).
	MinterID uint64 `json:"minter_id"`

	// Playability window.
	Lifecycle Lifecycle `json:"lifecycle"`

	// Optional extensions, all set at mint time.
	PlayerName  string       `json:"player_name,omitempty"`
	HasContext  bool         `json:"has_context"`
	SettingsID  uint32       `json:"settings_id"`
	HasSettings bool         `json:"has_settings"`
	ClientURL   string       `json:"client_url,omitempty"`
	Renderer    felt.Address `json:"renderer"`
	Soulbound   bool         `json:"soulbound"`

	// Objective set assigned at mint, ordered. Empty allowed.
	ObjectiveIDs []uint32 `json:"objective_ids,omitempty"`
	// Objective ids the bound game has reported complete.
	CompletedObjectives []uint32 `json:"completed_objectives,omitempty"`

	// State mirrored from the bound game on update.
	Score                  uint64 `json:"score"`
	GameOver               bool   `json:"game_over"`
	CompletedAllObjectives bool   `json:"completed_all_objectives"`
}

// Blank reports whether the token has no bound game.
func (r *Record) Blank() bool {
	return r.GameID == 0
}

// HasCustomRenderer reports whether a non-null renderer override is set.
func (r *Record) HasCustomRenderer() bool {
	return !r.Renderer.IsZero()
}

// Clone returns a deep copy of the record. The engine stages mutations on a
// clone and commits only after every precondition has passed.
func (r *Record) Clone() *Record {
	c := *r
	c.ObjectiveIDs = slices.Clone(r.ObjectiveIDs)
	c.CompletedObjectives = slices.Clone(r.CompletedObjectives)
	return &c
}

// Equal reports whether two records hold identical state.
func (r *Record) Equal(o *Record) bool {
	if r.TokenID != o.TokenID ||
		r.GameID != o.GameID ||
		!r.GameAddress.Equal(o.GameAddress) ||
		r.MinterID != o.MinterID ||
		r.Lifecycle != o.Lifecycle ||
		r.PlayerName != o.PlayerName ||
		r.HasContext != o.HasContext ||
		r.SettingsID != o.SettingsID ||
		r.HasSettings != o.HasSettings ||
		r.ClientURL != o.ClientURL ||
		!r.Renderer.Equal(o.Renderer) ||
		r.Soulbound != o.Soulbound ||
		r.Score != o.Score ||
		r.GameOver != o.GameOver ||
		r.CompletedAllObjectives != o.CompletedAllObjectives {
		return false
	}
	return slices.Equal(r.ObjectiveIDs, o.ObjectiveIDs) &&
		slices.Equal(r.CompletedObjectives, o.CompletedObjectives)
}
