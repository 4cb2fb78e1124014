package types

import (
	"encoding/hex"
	"fmt"

	"github.com/spacemeshos/go-scale"
)

// Hash32Length is the length of a digest or a binding key.
const Hash32Length = 32

// Hash32 is a 32-byte blake3 digest.
type Hash32 [Hash32Length]byte

// EmptyHash32 is a zeroed Hash32.
var EmptyHash32 = Hash32{}

// Bytes returns a copy-free view of the underlying bytes.
func (h Hash32) Bytes() []byte { return h[:] }

// Hex returns the hash as a 0x-prefixed hex string.
func (h Hash32) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

// String implements fmt.Stringer.
func (h Hash32) String() string { return h.Hex() }

// ShortString returns the first 5 hex characters of the hash, for logging purposes.
func (h Hash32) ShortString() string { return hex.EncodeToString(h[:])[:5] }

// MarshalText implements encoding.TextMarshaler.
func (h Hash32) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText parses a hash in hex syntax, with or without the 0x prefix.
func (h *Hash32) UnmarshalText(input []byte) error {
	return decodeHex(h[:], input)
}

// EncodeScale implements scale codec interface.
func (h *Hash32) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, h[:])
}

// DecodeScale implements scale codec interface.
func (h *Hash32) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, h[:])
}

func decodeHex(dst, input []byte) error {
	if len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X') {
		input = input[2:]
	}
	if n := hex.DecodedLen(len(input)); n != len(dst) {
		return fmt.Errorf("invalid length %d, expected %d", n, len(dst))
	}
	if _, err := hex.Decode(dst, input); err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}
	return nil
}
