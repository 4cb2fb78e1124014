package types

import (
	"bytes"
	"encoding/hex"

	"github.com/spacemeshos/go-scale"
)

// PublicKeySize is the size of an ed25519 public key.
const PublicKeySize = 32

// PublicKey identifies a signer.
type PublicKey [PublicKeySize]byte

// BytesToPublicKey copies b into a PublicKey. Longer input is cropped from the left.
func BytesToPublicKey(b []byte) PublicKey {
	var key PublicKey
	if len(b) > len(key) {
		b = b[len(b)-PublicKeySize:]
	}
	copy(key[PublicKeySize-len(b):], b)
	return key
}

// Bytes returns the underlying bytes.
func (k PublicKey) Bytes() []byte { return k[:] }

// String implements fmt.Stringer.
func (k PublicKey) String() string { return hex.EncodeToString(k[:]) }

// ShortString returns the first 5 hex characters, for logging purposes.
func (k PublicKey) ShortString() string { return k.String()[:5] }

// Compare orders keys lexicographically.
func (k PublicKey) Compare(other PublicKey) int {
	return bytes.Compare(k[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PublicKey) UnmarshalText(input []byte) error {
	return decodeHex(k[:], input)
}

// EncodeScale implements scale codec interface.
func (k *PublicKey) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, k[:])
}

// DecodeScale implements scale codec interface.
func (k *PublicKey) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, k[:])
}
