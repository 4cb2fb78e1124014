package types

import (
	"encoding/hex"

	"github.com/spacemeshos/go-scale"
)

// EdSignatureSize is the size of an ed25519 signature.
const EdSignatureSize = 64

// EdSignature is an ed25519 signature over a digest.
type EdSignature [EdSignatureSize]byte

// EmptyEdSignature is a zeroed signature. It never verifies.
var EmptyEdSignature = EdSignature{}

// Bytes returns the underlying bytes.
func (s EdSignature) Bytes() []byte { return s[:] }

// String implements fmt.Stringer.
func (s EdSignature) String() string { return hex.EncodeToString(s[:]) }

// MarshalText implements encoding.TextMarshaler.
func (s EdSignature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *EdSignature) UnmarshalText(input []byte) error {
	return decodeHex(s[:], input)
}

// EncodeScale implements scale codec interface.
func (s *EdSignature) EncodeScale(encoder *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(encoder, s[:])
}

// DecodeScale implements scale codec interface.
func (s *EdSignature) DecodeScale(decoder *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(decoder, s[:])
}
