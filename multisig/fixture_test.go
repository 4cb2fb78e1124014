package multisig

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/signing"
)

type testSigner struct {
	*signing.EdSigner
	weight uint32
}

func newSigners(tb testing.TB, weights ...uint32) []testSigner {
	tb.Helper()
	signers := make([]testSigner, 0, len(weights))
	for _, w := range weights {
		signer, err := signing.NewEdSigner()
		require.NoError(tb, err)
		signers = append(signers, testSigner{EdSigner: signer, weight: w})
	}
	return signers
}

func newRegistry(tb testing.TB, threshold uint32, signers []testSigner) *Registry {
	tb.Helper()
	members := make([]Signer, 0, len(signers))
	for _, s := range signers {
		members = append(members, Signer{PublicKey: s.PublicKey(), Weight: s.weight})
	}
	reg, err := NewRegistry(threshold, members...)
	require.NoError(tb, err)
	return reg
}

func sign(digest types.Hash32, signers ...testSigner) Signatures {
	sigs := Signatures{}
	for _, s := range signers {
		sigs.Add(s.PublicKey(), s.Sign(signing.ACTION, digest[:]))
	}
	return sigs
}

func randomKey(tb testing.TB) types.PublicKey {
	tb.Helper()
	signer, err := signing.NewEdSigner()
	require.NoError(tb, err)
	return signer.PublicKey()
}

func testAddress(seed byte) types.Address {
	return types.GenerateAddress([]byte{seed, seed + 1, seed + 2})
}
