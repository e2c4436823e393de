package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// AddressLength is the size of an account address in bytes.
const AddressLength = 20

// HashLength is the size of a Keccak-256 digest in bytes.
const HashLength = 32

// Address identifies an account or contract on the ledger.
type Address [AddressLength]byte

// BytesToAddress copies the trailing 20 bytes of b into an Address.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}

// ParseAddress decodes a 0x-prefixed hex address. Mixed-case input must carry
// a valid EIP-55 checksum.
func ParseAddress(s string) (Address, error) {
	raw := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(raw) != 2*AddressLength {
		return Address{}, fmt.Errorf("invalid address %q: want %d hex characters", s, 2*AddressLength)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	a := BytesToAddress(b)
	if raw != strings.ToLower(raw) && raw != strings.ToUpper(raw) && a.Hex()[2:] != raw {
		return Address{}, fmt.Errorf("invalid address %q: bad checksum", s)
	}
	return a, nil
}

// Slice returns the address as a []byte.
func (a Address) Slice() []byte { return a[:] }

// IsZero reports whether a is the zero address.
func (a Address) IsZero() bool { return a == Address{} }

// Hex returns the EIP-55 mixed-case checksum encoding.
func (a Address) Hex() string {
	lower := hex.EncodeToString(a[:])
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	sum := h.Sum(nil)

	out := []byte(lower)
	for i := range out {
		if out[i] < 'a' {
			continue
		}
		nibble := sum[i/2]
		if i%2 == 0 {
			nibble >>= 4
		}
		if nibble&0x0f >= 8 {
			out[i] -= 'a' - 'A'
		}
	}
	return "0x" + string(out)
}

// String returns the checksummed form of the address.
func (a Address) String() string { return a.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) { return []byte(a.Hex()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Hash is a Keccak-256 digest, used for transaction hashes.
type Hash [HashLength]byte

// BytesToHash copies the trailing 32 bytes of b into a Hash.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// ParseHash decodes a 0x-prefixed hex digest.
func ParseHash(s string) (Hash, error) {
	raw := strings.TrimPrefix(s, "0x")
	if len(raw) != 2*HashLength {
		return Hash{}, fmt.Errorf("invalid hash %q", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Hash{}, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	return BytesToHash(b), nil
}

// Slice returns the hash as a []byte.
func (h Hash) Slice() []byte { return h[:] }

// Hex returns the 0x-prefixed lowercase encoding.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// String returns the hex form of the hash.
func (h Hash) String() string { return h.Hex() }

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) { return []byte(h.Hex()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := ParseHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
