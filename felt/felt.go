// Package felt provides contract addresses represented as 256-bit field
// elements, matching the address space of the chains the token engine
// integrates with. Addresses are comparable values and can be used directly
// as map keys.
package felt

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// ErrInvalidAddress is returned when parsing a malformed address string.
var ErrInvalidAddress = errors.New("felt: invalid address")

// Address is a 256-bit contract address. The zero value is the null address.
type Address struct {
	n uint256.Int
}

// Zero is the null address.
var Zero Address

// FromHex parses an address from a 0x-prefixed hex string.
func FromHex(s string) (Address, error) {
	n, err := uint256.FromHex(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %q: %v", ErrInvalidAddress, s, err)
	}
	return Address{n: *n}, nil
}

// MustFromHex parses an address and panics on error. For tests and constants.
func MustFromHex(s string) Address {
	a, err := FromHex(s)
	if err != nil {
		panic(err)
	}
	return a
}

// FromUint64 builds an address from a small integer. For tests.
func FromUint64(v uint64) Address {
	var a Address
	a.n.SetUint64(v)
	return a
}

// FromBytes interprets b as a big-endian address.
func FromBytes(b []byte) Address {
	var a Address
	a.n.SetBytes(b)
	return a
}

// IsZero reports whether a is the null address.
func (a Address) IsZero() bool {
	return a.n.IsZero()
}

// Equal reports whether two addresses are the same.
func (a Address) Equal(b Address) bool {
	return a.n.Eq(&b.n)
}

// Bytes returns the big-endian 32-byte representation.
func (a Address) Bytes() [32]byte {
	return a.n.Bytes32()
}

// Hex returns the canonical 0x-prefixed hex representation.
func (a Address) Hex() string {
	return a.n.Hex()
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return a.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(b []byte) error {
	parsed, err := FromHex(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
