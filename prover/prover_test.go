package prover

import (
	"errors"
	"testing"

	"github.com/provable-games/gametoken/token"
)

func completedRecord() *token.Record {
	return &token.Record{
		TokenID:                1,
		GameID:                 1,
		MinterID:               1,
		Lifecycle:              token.Lifecycle{Start: 1000, End: 2000},
		PlayerName:             "alice",
		SettingsID:             7,
		HasSettings:            true,
		Score:                  4200,
		GameOver:               true,
		ObjectiveIDs:           []uint32{10, 20, 30},
		CompletedObjectives:    []uint32{10, 20, 30},
		CompletedAllObjectives: true,
	}
}

func TestCompletionProver(t *testing.T) {
	dir := t.TempDir()
	p := New(dir)

	rec := completedRecord()

	proof, err := p.ProveCompletion(rec)
	if err != nil {
		t.Fatalf("ProveCompletion failed: %v", err)
	}
	if proof.TokenID != rec.TokenID {
		t.Errorf("Expected token %d, got %d", rec.TokenID, proof.TokenID)
	}
	if len(proof.Proof) == 0 {
		t.Error("Proof bytes should not be empty")
	}

	t.Run("verify", func(t *testing.T) {
		if err := p.VerifyCompletion(proof); err != nil {
			t.Fatalf("VerifyCompletion failed: %v", err)
		}
	})

	t.Run("verify with persisted keys", func(t *testing.T) {
		// A fresh prover pointed at the same directory loads the saved
		// artifacts instead of re-running setup.
		loaded := New(dir)
		if err := loaded.VerifyCompletion(proof); err != nil {
			t.Fatalf("VerifyCompletion with loaded keys failed: %v", err)
		}
	})

	t.Run("wrong token id rejected", func(t *testing.T) {
		tampered := *proof
		tampered.TokenID = 999
		if err := p.VerifyCompletion(&tampered); err == nil {
			t.Fatal("Verification should fail for a different token id")
		}
	})

	t.Run("wrong commitment rejected", func(t *testing.T) {
		tampered := *proof
		tampered.Commitment = "0x01"
		if err := p.VerifyCompletion(&tampered); err == nil {
			t.Fatal("Verification should fail for a different commitment")
		}
	})
}

func TestProveIncompleteObjectives(t *testing.T) {
	rec := completedRecord()
	rec.CompletedObjectives = []uint32{10}
	rec.CompletedAllObjectives = false

	p := New("")
	_, err := p.ProveCompletion(rec)
	if !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("Expected ErrNotCompleted, got %v", err)
	}
}

func TestVerifyMalformedCommitment(t *testing.T) {
	p := New("")
	err := p.VerifyCompletion(&CompletionProof{TokenID: 1, Commitment: "not-hex"})
	if err == nil {
		t.Fatal("Expected error for malformed commitment")
	}
}
