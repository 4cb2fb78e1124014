package multisig

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/signing"
)

func TestBuildWitnesses(t *testing.T) {
	signers := newSigners(t, 2, 1, 1)
	reg := newRegistry(t, 3, signers)
	digest := Digest(testAddress(1), &Action{Nonce: 1, Body: &ChangeThreshold{Threshold: 2}})

	stranger := newSigners(t, 5)
	sigs := sign(digest, signers[0], signers[2], stranger[0])

	ws := BuildWitnesses(reg, digest, sigs)
	require.Len(t, ws, 2)
	for _, s := range []testSigner{signers[0], signers[2]} {
		w, exists := ws.Lookup(s.PublicKey(), digest)
		require.True(t, exists)
		require.Equal(t, BindingKey(s.PublicKey(), digest), w.BindingKey)
		require.Equal(t, sigs[s.PublicKey()], w.Signature)
	}
	_, exists := ws.Lookup(signers[1].PublicKey(), digest)
	require.False(t, exists)
	_, exists = ws.Lookup(stranger[0].PublicKey(), digest)
	require.False(t, exists)

	// binding key ties the witness to the digest
	other := Digest(testAddress(1), &Action{Nonce: 2, Body: &ChangeThreshold{Threshold: 2}})
	_, exists = ws.Lookup(signers[0].PublicKey(), other)
	require.False(t, exists)
}

func TestBuildWitnessesFollowsCurrentRegistry(t *testing.T) {
	signers := newSigners(t, 2, 1, 1)
	reg := newRegistry(t, 2, signers)
	digest := types.Hash32{1}
	sigs := sign(digest, signers...)

	reg, err := reg.Apply(&Action{Body: &RemoveSigner{PublicKey: signers[1].PublicKey()}})
	require.NoError(t, err)

	ws := BuildWitnesses(reg, digest, sigs)
	require.Len(t, ws, 2)
	_, exists := ws.Lookup(signers[1].PublicKey(), digest)
	require.False(t, exists)
}

func TestWitnessLookupChecksSigner(t *testing.T) {
	signers := newSigners(t, 1, 1)
	digest := types.Hash32{2}
	key := BindingKey(signers[0].PublicKey(), digest)
	ws := WitnessSet{key: {Signer: signers[1].PublicKey(), BindingKey: key}}
	_, exists := ws.Lookup(signers[0].PublicKey(), digest)
	require.False(t, exists)
}

func TestSignaturesFromIndexed(t *testing.T) {
	signers := newSigners(t, 1, 1, 1)
	reg := newRegistry(t, 2, signers)
	sig := types.EdSignature{1}

	sigs, err := SignaturesFromIndexed(reg, map[int]types.EdSignature{0: sig, 2: sig})
	require.NoError(t, err)
	require.Equal(t, Signatures{signers[0].PublicKey(): sig, signers[2].PublicKey(): sig}, sigs)

	_, err = SignaturesFromIndexed(reg, map[int]types.EdSignature{3: sig})
	require.ErrorContains(t, err, "out of range")
}

func TestTally(t *testing.T) {
	verifier, err := signing.NewEdVerifier()
	require.NoError(t, err)
	signers := newSigners(t, 2, 1, 1)
	a, b, c := signers[0], signers[1], signers[2]
	reg := newRegistry(t, 3, signers)
	digest := Digest(testAddress(1), &Action{Nonce: 1, Body: &Spend{Destination: testAddress(2), Amount: 1}})

	t.Run("A and B reach threshold", func(t *testing.T) {
		collected, discarded := Tally(verifier, reg, digest, BuildWitnesses(reg, digest, sign(digest, a, b)))
		require.EqualValues(t, 3, collected)
		require.Zero(t, discarded)
	})
	t.Run("B and C fall short", func(t *testing.T) {
		collected, _ := Tally(verifier, reg, digest, BuildWitnesses(reg, digest, sign(digest, b, c)))
		require.EqualValues(t, 2, collected)
	})
	t.Run("forged signature adds no weight", func(t *testing.T) {
		sigs := sign(digest, b, c)
		// A's slot filled with a signature produced by B
		sigs.Add(a.PublicKey(), sigs[b.PublicKey()])
		collected, discarded := Tally(verifier, reg, digest, BuildWitnesses(reg, digest, sigs))
		require.EqualValues(t, 2, collected)
		require.Equal(t, 1, discarded)
	})
	t.Run("signature over other digest adds no weight", func(t *testing.T) {
		other := types.Hash32{9}
		sigs := sign(digest, b)
		sigs.Add(a.PublicKey(), a.Sign(signing.ACTION, other[:]))
		collected, discarded := Tally(verifier, reg, digest, BuildWitnesses(reg, digest, sigs))
		require.EqualValues(t, 1, collected)
		require.Equal(t, 1, discarded)
	})
	t.Run("unknown key adds no weight", func(t *testing.T) {
		stranger := newSigners(t, 99)[0]
		ws := BuildWitnesses(reg, digest, sign(digest, b))
		key := BindingKey(stranger.PublicKey(), digest)
		ws[key] = Witness{
			Signer:     stranger.PublicKey(),
			BindingKey: key,
			Signature:  stranger.Sign(signing.ACTION, digest[:]),
		}
		collected, discarded := Tally(verifier, reg, digest, ws)
		require.EqualValues(t, 1, collected)
		require.Equal(t, 1, discarded)
	})
	t.Run("duplicate witnesses count once", func(t *testing.T) {
		ws := BuildWitnesses(reg, digest, sign(digest, a))
		// a second witness for A under a different key can't be looked up
		ws[types.Hash32{7}] = ws[BindingKey(a.PublicKey(), digest)]
		collected, discarded := Tally(verifier, reg, digest, ws)
		require.EqualValues(t, 2, collected)
		require.Equal(t, 1, discarded)
	})
	t.Run("empty", func(t *testing.T) {
		collected, discarded := Tally(verifier, reg, digest, WitnessSet{})
		require.Zero(t, collected)
		require.Zero(t, discarded)
	})
}

func TestRandomSignaturesAddNoWeight(t *testing.T) {
	signers := newSigners(t, 2, 1, 1)
	reg := newRegistry(t, 1, signers)
	verifier, err := signing.NewEdVerifier()
	require.NoError(t, err)

	f := fuzz.NewWithSeed(1001).NilChance(0).NumElements(1, 8)
	for range 20 {
		var digest types.Hash32
		f.Fuzz(&digest)
		sigs := Signatures{}
		f.Fuzz(&sigs)
		for _, s := range signers {
			var sig types.EdSignature
			f.Fuzz(&sig)
			sigs.Add(s.PublicKey(), sig)
		}

		ws := BuildWitnesses(reg, digest, sigs)
		require.Len(t, ws, len(signers))
		collected, discarded := Tally(verifier, reg, digest, ws)
		require.Zero(t, collected)
		require.Equal(t, len(signers), discarded)
	}
}
