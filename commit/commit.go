// Package commit computes canonical MiMC commitments over token records.
//
// A commitment covers every persisted field, so two records are
// byte-identical exactly when their commitments match. The engine uses this
// to detect no-op game updates, the cache uses it as a key, and the prover
// uses it as the public input binding a proof to a record.
package commit

import (
	"encoding/hex"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

	"github.com/provable-games/gametoken/token"
)

// Digest is a BN254 field element, big-endian.
type Digest [32]byte

// Hex returns the 0x-prefixed hex encoding.
func (d Digest) Hex() string {
	return "0x" + hex.EncodeToString(d[:])
}

// BigInt returns the digest as a big integer, for proof witnesses.
func (d Digest) BigInt() *big.Int {
	return new(big.Int).SetBytes(d[:])
}

// Flag bit positions inside the packed flags element.
const (
	FlagSoulbound = iota
	FlagHasContext
	FlagHasSettings
	FlagGameOver
	FlagCompletedAll

	// FlagBits is the width the prover decomposes the flags element into.
	FlagBits = 8
)

// PackFlags packs the record's booleans into a single small integer.
func PackFlags(r *token.Record) uint64 {
	var f uint64
	if r.Soulbound {
		f |= 1 << FlagSoulbound
	}
	if r.HasContext {
		f |= 1 << FlagHasContext
	}
	if r.HasSettings {
		f |= 1 << FlagHasSettings
	}
	if r.GameOver {
		f |= 1 << FlagGameOver
	}
	if r.CompletedAllObjectives {
		f |= 1 << FlagCompletedAll
	}
	return f
}

// Fields returns the ordered field elements a record commitment is computed
// over. The prover's circuit re-computes the same chain in-circuit, so the
// order here is part of the commitment format and must not change.
func Fields(r *token.Record) []fr.Element {
	els := make([]fr.Element, 13)
	els[0].SetUint64(r.TokenID)
	els[1].SetUint64(r.GameID)
	els[2].SetUint64(r.MinterID)
	els[3].SetUint64(r.Lifecycle.Start)
	els[4].SetUint64(r.Lifecycle.End)
	els[5].SetUint64(uint64(r.SettingsID))
	els[6].SetUint64(r.Score)
	els[7].SetUint64(PackFlags(r))
	gameAddr := r.GameAddress.Bytes()
	els[8].SetBytes(gameAddr[:])
	renderer := r.Renderer.Bytes()
	els[9].SetBytes(renderer[:])
	els[10] = stringElement(r.PlayerName)
	els[11] = stringElement(r.ClientURL)
	els[12] = objectivesElement(r)
	return els
}

// Record returns the commitment over all persisted fields of r.
func Record(r *token.Record) Digest {
	h := mimc.NewMiMC()
	for _, el := range Fields(r) {
		b := el.Bytes()
		h.Write(b[:])
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

// stringElement folds an arbitrary string into one field element by hashing
// 31-byte chunks. The empty string maps to the zero element.
func stringElement(s string) fr.Element {
	var el fr.Element
	if s == "" {
		return el
	}
	h := mimc.NewMiMC()
	data := []byte(s)
	for len(data) > 0 {
		n := min(len(data), 31)
		var chunk fr.Element
		chunk.SetBytes(data[:n])
		b := chunk.Bytes()
		h.Write(b[:])
		data = data[n:]
	}
	el.SetBytes(h.Sum(nil))
	return el
}

// objectivesElement folds the assigned and completed objective sequences
// into one field element. Lengths are written before ids so the two
// sequences cannot alias.
func objectivesElement(r *token.Record) fr.Element {
	var el fr.Element
	if len(r.ObjectiveIDs) == 0 && len(r.CompletedObjectives) == 0 {
		return el
	}
	h := mimc.NewMiMC()
	writeUint := func(v uint64) {
		var e fr.Element
		e.SetUint64(v)
		b := e.Bytes()
		h.Write(b[:])
	}
	writeUint(uint64(len(r.ObjectiveIDs)))
	for _, id := range r.ObjectiveIDs {
		writeUint(uint64(id))
	}
	writeUint(uint64(len(r.CompletedObjectives)))
	for _, id := range r.CompletedObjectives {
		writeUint(uint64(id))
	}
	el.SetBytes(h.Sum(nil))
	return el
}
