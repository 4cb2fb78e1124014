package types_test

import (
	"bytes"
	"testing"

	"github.com/spacemeshos/go-scale"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-multisig/common/types"
)

func TestHash32Text(t *testing.T) {
	var h types.Hash32
	for i := range h {
		h[i] = byte(i)
	}
	text, err := h.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "0x0001", string(text[:6]))

	var parsed types.Hash32
	require.NoError(t, parsed.UnmarshalText(text))
	require.Equal(t, h, parsed)
	require.NoError(t, parsed.UnmarshalText(text[2:]))
	require.Equal(t, h, parsed)
	require.ErrorContains(t, parsed.UnmarshalText(text[:10]), "invalid length")
}

func TestPublicKeyText(t *testing.T) {
	key := types.BytesToPublicKey(bytes.Repeat([]byte{0xab}, types.PublicKeySize))
	text, err := key.MarshalText()
	require.NoError(t, err)

	var parsed types.PublicKey
	require.NoError(t, parsed.UnmarshalText(text))
	require.Equal(t, key, parsed)
	require.Equal(t, "abab", key.ShortString()[:4])
	require.Zero(t, key.Compare(parsed))
}

func TestFixedSizeScale(t *testing.T) {
	var (
		buf bytes.Buffer
		sig types.EdSignature
	)
	sig[0], sig[63] = 1, 2
	enc := scale.NewEncoder(&buf)
	n, err := sig.EncodeScale(enc)
	require.NoError(t, err)
	require.Equal(t, types.EdSignatureSize, n)

	var decoded types.EdSignature
	_, err = decoded.DecodeScale(scale.NewDecoder(&buf))
	require.NoError(t, err)
	require.Equal(t, sig, decoded)
}
