package prover

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/provable-games/gametoken/commit"
	"github.com/provable-games/gametoken/token"
)

// ErrNotCompleted is returned when proving a record whose objective set is
// not fully completed.
var ErrNotCompleted = errors.New("prover: objectives not completed")

// CompiledCircuit holds the compiled constraint system and keys.
type CompiledCircuit struct {
	CS           constraint.ConstraintSystem
	ProvingKey   groth16.ProvingKey
	VerifyingKey groth16.VerifyingKey
	Constraints  int
	PublicVars   int
	PrivateVars  int
}

// CompletionProof is a serialized proof with its public inputs.
type CompletionProof struct {
	TokenID    uint64 `json:"token_id"`
	Commitment string `json:"commitment"`
	Proof      []byte `json:"proof"`
}

// Prover compiles the completion circuit once and reuses it for every
// proof. If a key directory is configured the compiled artifacts are
// loaded from and saved to it, so setup runs only on first use.
type Prover struct {
	mu  sync.Mutex
	cc  *CompiledCircuit
	dir string
}

// New creates a prover. dir may be empty, in which case keys are kept in
// memory only.
func New(dir string) *Prover {
	return &Prover{dir: dir}
}

// Compile compiles the completion circuit and runs trusted setup.
func Compile() (*CompiledCircuit, error) {
	var circuit CompletionCircuit
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	if err != nil {
		return nil, fmt.Errorf("prover: circuit compilation failed: %w", err)
	}

	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("prover: setup failed: %w", err)
	}

	return &CompiledCircuit{
		CS:           cs,
		ProvingKey:   pk,
		VerifyingKey: vk,
		Constraints:  cs.GetNbConstraints(),
		PublicVars:   cs.GetNbPublicVariables(),
		PrivateVars:  cs.GetNbSecretVariables(),
	}, nil
}

// circuit returns the compiled circuit, loading or compiling on first use.
func (p *Prover) circuit() (*CompiledCircuit, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cc != nil {
		return p.cc, nil
	}

	if p.dir != "" {
		cc, err := LoadFrom(p.dir, ecc.BN254)
		if err == nil {
			p.cc = cc
			return cc, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cc, err := Compile()
	if err != nil {
		return nil, err
	}
	if p.dir != "" {
		if err := cc.SaveTo(p.dir); err != nil {
			return nil, err
		}
	}
	p.cc = cc
	return cc, nil
}

// ProveCompletion generates a proof that r's objective set is fully
// completed. The proof binds to r's commitment and token id.
func (p *Prover) ProveCompletion(r *token.Record) (*CompletionProof, error) {
	if !r.CompletedAllObjectives {
		return nil, fmt.Errorf("%w: token %d", ErrNotCompleted, r.TokenID)
	}

	cc, err := p.circuit()
	if err != nil {
		return nil, err
	}

	w, err := frontend.NewWitness(CompletionAssignment(r), ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("prover: witness creation failed: %w", err)
	}

	proof, err := groth16.Prove(cc.CS, cc.ProvingKey, w)
	if err != nil {
		return nil, fmt.Errorf("prover: proof generation failed: %w", err)
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("prover: serialize proof: %w", err)
	}

	return &CompletionProof{
		TokenID:    r.TokenID,
		Commitment: commit.Record(r).Hex(),
		Proof:      buf.Bytes(),
	}, nil
}

// VerifyCompletion checks a proof against its embedded public inputs.
func (p *Prover) VerifyCompletion(cp *CompletionProof) error {
	commitment, ok := new(big.Int).SetString(cp.Commitment, 0)
	if !ok {
		return fmt.Errorf("prover: malformed commitment %q", cp.Commitment)
	}

	cc, err := p.circuit()
	if err != nil {
		return err
	}

	public := &CompletionCircuit{
		Commitment: commitment,
		TokenID:    cp.TokenID,
	}
	w, err := frontend.NewWitness(public, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("prover: public witness creation failed: %w", err)
	}

	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(cp.Proof)); err != nil {
		return fmt.Errorf("prover: deserialize proof: %w", err)
	}

	return groth16.Verify(proof, cc.VerifyingKey, w)
}
