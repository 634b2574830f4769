package felt

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFromHex(t *testing.T) {
	a, err := FromHex("0x2a")
	if err != nil {
		t.Fatalf("FromHex failed: %v", err)
	}
	if a.Hex() != "0x2a" {
		t.Errorf("Expected 0x2a, got %s", a.Hex())
	}
	if a.IsZero() {
		t.Error("0x2a should not be zero")
	}
}

func TestFromHexInvalid(t *testing.T) {
	cases := []string{"", "2a", "0x", "0xzz", "not an address"}
	for _, s := range cases {
		if _, err := FromHex(s); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("FromHex(%q) should return ErrInvalidAddress, got %v", s, err)
		}
	}
}

func TestZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Error("Zero should be the null address")
	}
	if !Zero.Equal(FromUint64(0)) {
		t.Error("Zero should equal FromUint64(0)")
	}
}

func TestEqual(t *testing.T) {
	a := FromUint64(42)
	b := MustFromHex("0x2a")
	if !a.Equal(b) {
		t.Errorf("FromUint64(42) should equal 0x2a, got %s vs %s", a, b)
	}
	if a.Equal(FromUint64(43)) {
		t.Error("Different addresses should not be equal")
	}
}

func TestComparable(t *testing.T) {
	// Addresses are value types and usable as map keys.
	m := map[Address]int{
		FromUint64(1): 1,
		FromUint64(2): 2,
	}
	if m[MustFromHex("0x1")] != 1 {
		t.Error("Map lookup by equal address should hit")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	a := MustFromHex("0xdeadbeef")
	b := a.Bytes()
	if got := FromBytes(b[:]); !got.Equal(a) {
		t.Errorf("Round trip through bytes changed address: %s vs %s", got, a)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := MustFromHex("0xbeef")
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"0xbeef"` {
		t.Errorf("Expected \"0xbeef\", got %s", data)
	}

	var back Address
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(a) {
		t.Errorf("Round trip changed address: %s vs %s", back, a)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var a Address
	if err := a.UnmarshalText([]byte("bogus")); err == nil {
		t.Error("UnmarshalText should fail for a malformed address")
	}
}
