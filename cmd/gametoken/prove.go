package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/provable-games/gametoken/prover"
)

func prove(args []string) error {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")
	output := fs.String("output", "proof.json", "Output file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken prove <token-id> [options]

Generate a zero-knowledge proof that the token completed its full
objective set. The proof binds to the token id and record commitment.
First use compiles the circuit and caches keys under proof_dir.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	tokenID, err := parseTokenArg(fs)
	if err != nil {
		return err
	}

	a, err := openApp(*cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	rec, err := a.eng.TokenMetadata(context.Background(), tokenID)
	if err != nil {
		return err
	}

	p := prover.New(a.cfg.ProofDir)
	proof, err := p.ProveCompletion(rec)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(proof, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		return err
	}

	fmt.Printf("Proof for token %d written to %s\n", tokenID, *output)
	fmt.Printf("Commitment: %s\n", proof.Commitment)
	return nil
}

func verify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Config file path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gametoken verify <proof.json> [options]

Verify a completion proof against its embedded public inputs.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("proof file required")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	var proof prover.CompletionProof
	if err := json.Unmarshal(data, &proof); err != nil {
		return fmt.Errorf("parse proof: %w", err)
	}

	a, err := openApp(*cfgPath)
	if err != nil {
		return err
	}
	defer a.Close()

	p := prover.New(a.cfg.ProofDir)
	if err := p.VerifyCompletion(&proof); err != nil {
		return fmt.Errorf("proof INVALID: %w", err)
	}

	fmt.Printf("Proof VALID: token %d completed all objectives\n", proof.TokenID)
	return nil
}
