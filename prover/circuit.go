// Package prover generates Groth16 proofs that a token finished its full
// objective set, without revealing the rest of the record. The public
// inputs are the token id and the record commitment; the circuit
// recomputes the commitment in-circuit and checks the completion flag.
package prover

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/provable-games/gametoken/commit"
	"github.com/provable-games/gametoken/token"
)

// CompletionCircuit proves knowledge of a record with the completed-all
// flag set, bound to a public commitment and token id.
//
// The private inputs are the remaining commitment fields in the canonical
// order. Variable-length fields (player name, client url, objectives)
// enter as their pre-folded digests.
type CompletionCircuit struct {
	// Public inputs
	Commitment frontend.Variable `gnark:",public"`
	TokenID    frontend.Variable `gnark:",public"`

	// Private inputs
	GameID           frontend.Variable
	MinterID         frontend.Variable
	Start            frontend.Variable
	End              frontend.Variable
	SettingsID       frontend.Variable
	Score            frontend.Variable
	Flags            frontend.Variable
	GameAddress      frontend.Variable
	Renderer         frontend.Variable
	NameDigest       frontend.Variable
	ClientURLDigest  frontend.Variable
	ObjectivesDigest frontend.Variable
}

func (c *CompletionCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}

	// Same field order as the native commitment.
	h.Write(c.TokenID)
	h.Write(c.GameID)
	h.Write(c.MinterID)
	h.Write(c.Start)
	h.Write(c.End)
	h.Write(c.SettingsID)
	h.Write(c.Score)
	h.Write(c.Flags)
	h.Write(c.GameAddress)
	h.Write(c.Renderer)
	h.Write(c.NameDigest)
	h.Write(c.ClientURLDigest)
	h.Write(c.ObjectivesDigest)

	api.AssertIsEqual(h.Sum(), c.Commitment)

	// The completed-all bit must be set.
	bits := api.ToBinary(c.Flags, commit.FlagBits)
	api.AssertIsEqual(bits[commit.FlagCompletedAll], 1)

	return nil
}

// CompletionAssignment builds a full witness assignment from a record.
func CompletionAssignment(r *token.Record) *CompletionCircuit {
	fields := commit.Fields(r)
	v := func(i int) *big.Int {
		return fields[i].BigInt(new(big.Int))
	}
	return &CompletionCircuit{
		Commitment:       commit.Record(r).BigInt(),
		TokenID:          v(0),
		GameID:           v(1),
		MinterID:         v(2),
		Start:            v(3),
		End:              v(4),
		SettingsID:       v(5),
		Score:            v(6),
		Flags:            v(7),
		GameAddress:      v(8),
		Renderer:         v(9),
		NameDigest:       v(10),
		ClientURLDigest:  v(11),
		ObjectivesDigest: v(12),
	}
}
