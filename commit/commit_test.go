package commit

import (
	"strings"
	"testing"

	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/token"
)

func baseRecord() *token.Record {
	return &token.Record{
		TokenID:             1,
		GameID:              2,
		GameAddress:         felt.FromUint64(0xbeef),
		MinterID:            3,
		Lifecycle:           token.Lifecycle{Start: 100, End: 200},
		PlayerName:          "alice",
		SettingsID:          4,
		HasSettings:         true,
		ClientURL:           "https://client.example",
		ObjectiveIDs:        []uint32{1, 2},
		CompletedObjectives: []uint32{1},
		Score:               500,
	}
}

func TestRecordDeterministic(t *testing.T) {
	a := baseRecord()
	b := baseRecord()
	if Record(a) != Record(b) {
		t.Error("Identical records must produce identical commitments")
	}
	if Record(a) != Record(a.Clone()) {
		t.Error("A clone must commit identically")
	}
}

func TestRecordFieldSensitivity(t *testing.T) {
	base := Record(baseRecord())

	mutations := map[string]func(*token.Record){
		"token id":     func(r *token.Record) { r.TokenID = 9 },
		"game id":      func(r *token.Record) { r.GameID = 9 },
		"game address": func(r *token.Record) { r.GameAddress = felt.FromUint64(9) },
		"minter":       func(r *token.Record) { r.MinterID = 9 },
		"start":        func(r *token.Record) { r.Lifecycle.Start = 9 },
		"end":          func(r *token.Record) { r.Lifecycle.End = 9 },
		"name":         func(r *token.Record) { r.PlayerName = "bob" },
		"context":      func(r *token.Record) { r.HasContext = true },
		"settings":     func(r *token.Record) { r.SettingsID = 9 },
		"client url":   func(r *token.Record) { r.ClientURL = "x" },
		"renderer":     func(r *token.Record) { r.Renderer = felt.FromUint64(9) },
		"soulbound":    func(r *token.Record) { r.Soulbound = true },
		"objectives":   func(r *token.Record) { r.ObjectiveIDs = []uint32{1, 2, 3} },
		"completed":    func(r *token.Record) { r.CompletedObjectives = []uint32{1, 2} },
		"score":        func(r *token.Record) { r.Score = 9 },
		"game over":    func(r *token.Record) { r.GameOver = true },
		"all done":     func(r *token.Record) { r.CompletedAllObjectives = true },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			r := baseRecord()
			mutate(r)
			if Record(r) == base {
				t.Errorf("Changing %s must change the commitment", name)
			}
		})
	}
}

func TestObjectiveSequencesDoNotAlias(t *testing.T) {
	a := baseRecord()
	a.ObjectiveIDs = []uint32{1, 2}
	a.CompletedObjectives = nil

	b := baseRecord()
	b.ObjectiveIDs = nil
	b.CompletedObjectives = []uint32{1, 2}

	if Record(a) == Record(b) {
		t.Error("Assigned and completed sequences must not alias")
	}
}

func TestPackFlags(t *testing.T) {
	r := &token.Record{}
	if PackFlags(r) != 0 {
		t.Error("No flags set should pack to 0")
	}

	r.Soulbound = true
	r.GameOver = true
	got := PackFlags(r)
	want := uint64(1<<FlagSoulbound | 1<<FlagGameOver)
	if got != want {
		t.Errorf("PackFlags = %b, want %b", got, want)
	}

	r.HasContext = true
	r.HasSettings = true
	r.CompletedAllObjectives = true
	if PackFlags(r) != 0b11111 {
		t.Errorf("All flags should pack to 0b11111, got %b", PackFlags(r))
	}
}

func TestFieldsCount(t *testing.T) {
	if len(Fields(baseRecord())) != 13 {
		t.Fatalf("Commitment covers 13 field elements, got %d", len(Fields(baseRecord())))
	}
}

func TestDigestHex(t *testing.T) {
	d := Record(baseRecord())
	h := d.Hex()
	if !strings.HasPrefix(h, "0x") || len(h) != 66 {
		t.Errorf("Digest hex should be 0x + 64 chars, got %q", h)
	}
	if d.BigInt().Sign() == 0 {
		t.Error("Commitment of a populated record should be non-zero")
	}
}

func TestEmptyStringsCommit(t *testing.T) {
	a := &token.Record{TokenID: 1}
	b := &token.Record{TokenID: 1, PlayerName: "x"}
	if Record(a) == Record(b) {
		t.Error("Empty and non-empty names must commit differently")
	}
}
