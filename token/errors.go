package token

import (
	"errors"
	"fmt"
)

var (
	// Mint errors
	ErrInvalidGameAddress = errors.New("token: game address is the null address")

	// Lookup errors
	ErrTokenNotFound  = errors.New("token: token does not exist")
	ErrTokenNotMinted = errors.New("token: token not minted")

	// Authorization errors
	ErrNotMinter = errors.New("token: caller is not the token minter")
	ErrNotOwner  = errors.New("token: caller is not the token owner")

	// Mutation errors
	ErrEmptyName = errors.New("token: player name is empty")

	// Transfer errors
	ErrSoulboundTransfer = errors.New("token: soulbound token cannot be transferred")

	// External collaborator errors
	ErrGameUnresponsive = errors.New("token: game contract unresponsive")

	// Game binding errors
	ErrGameAlreadyBound = errors.New("token: game reference already bound")
	ErrNoBoundGame      = errors.New("token: token has no bound game")
)

// NotFound wraps ErrTokenNotFound with the offending token id.
func NotFound(id uint64) error {
	return fmt.Errorf("%w: token %d", ErrTokenNotFound, id)
}

// NotMinted wraps ErrTokenNotMinted with the offending token id.
func NotMinted(id uint64) error {
	return fmt.Errorf("%w: token %d", ErrTokenNotMinted, id)
}
