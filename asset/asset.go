// Package asset is the ownership boundary of the token engine. Ownership
// transfer mechanics belong to the external asset module; the engine only
// issues on mint and reads the current owner for authorization checks. The
// in-memory ledger here implements that module's contract, including the
// soulbound transfer gate.
package asset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/provable-games/gametoken/felt"
	"github.com/provable-games/gametoken/token"
)

var (
	// ErrUnknownToken is returned when no ownership record exists.
	ErrUnknownToken = errors.New("asset: unknown token")
	// ErrAlreadyIssued is returned when issuing an id twice.
	ErrAlreadyIssued = errors.New("asset: token already issued")
)

// SoulboundChecker reports whether a token is locked to its owner. The
// ledger consults it before any transfer; the engine satisfies it.
type SoulboundChecker interface {
	IsSoulbound(ctx context.Context, tokenID uint64) (bool, error)
}

// Ledger is an in-memory asset-ownership module.
type Ledger struct {
	mu     sync.RWMutex
	owners map[uint64]felt.Address

	// checker gates transfers; nil disables the soulbound gate.
	checker SoulboundChecker
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{owners: make(map[uint64]felt.Address)}
}

// SetSoulboundChecker installs the transfer gate. Typically called once
// with the engine after both are constructed.
func (l *Ledger) SetSoulboundChecker(c SoulboundChecker) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.checker = c
}

// Issue records initial ownership for a freshly minted token.
func (l *Ledger) Issue(tokenID uint64, to felt.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.owners[tokenID]; ok {
		return fmt.Errorf("%w: token %d", ErrAlreadyIssued, tokenID)
	}
	l.owners[tokenID] = to
	return nil
}

// OwnerOf returns the current owner of tokenID.
func (l *Ledger) OwnerOf(tokenID uint64) (felt.Address, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	owner, ok := l.owners[tokenID]
	if !ok {
		return felt.Zero, fmt.Errorf("%w: token %d", ErrUnknownToken, tokenID)
	}
	return owner, nil
}

// Transfer moves ownership from the current owner to another address.
// Soulbound tokens are rejected.
func (l *Ledger) Transfer(ctx context.Context, tokenID uint64, from, to felt.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	owner, ok := l.owners[tokenID]
	if !ok {
		return fmt.Errorf("%w: token %d", ErrUnknownToken, tokenID)
	}
	if !owner.Equal(from) {
		return fmt.Errorf("%w: token %d is not owned by %s", token.ErrNotOwner, tokenID, from)
	}

	if l.checker != nil {
		soulbound, err := l.checker.IsSoulbound(ctx, tokenID)
		if err != nil {
			return err
		}
		if soulbound {
			return fmt.Errorf("%w: token %d", token.ErrSoulboundTransfer, tokenID)
		}
	}

	l.owners[tokenID] = to
	return nil
}
