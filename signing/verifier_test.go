package signing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifierPrefix(t *testing.T) {
	prefix := []byte("ms")
	signer, err := NewEdSigner(WithPrefix(prefix))
	require.NoError(t, err)
	msg := []byte("digest")
	sig := signer.Sign(ACTION, msg)

	verifier, err := NewEdVerifier(WithVerifierPrefix(prefix))
	require.NoError(t, err)
	require.True(t, verifier.Verify(ACTION, signer.PublicKey(), msg, sig))
	require.False(t, verifier.Verify(Domain(1), signer.PublicKey(), msg, sig))

	other, err := NewEdVerifier()
	require.NoError(t, err)
	require.False(t, other.Verify(ACTION, signer.PublicKey(), msg, sig))
}

func TestBatchReportsEachSignature(t *testing.T) {
	verifier, err := NewEdVerifier()
	require.NoError(t, err)
	msg := []byte("digest")

	signers := make([]*EdSigner, 3)
	for i := range signers {
		signers[i], err = NewEdSigner()
		require.NoError(t, err)
	}

	batch := verifier.NewBatch(ACTION, msg, len(signers))
	require.Nil(t, batch.Verify())

	batch.Add(signers[0].PublicKey(), signers[0].Sign(ACTION, msg))
	// signature by another key
	batch.Add(signers[1].PublicKey(), signers[2].Sign(ACTION, msg))
	batch.Add(signers[2].PublicKey(), signers[2].Sign(ACTION, msg))
	require.Equal(t, 3, batch.Len())
	require.Equal(t, []bool{true, false, true}, batch.Verify())
}
