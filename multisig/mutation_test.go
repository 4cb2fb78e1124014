package multisig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	signers := newSigners(t, 2, 1, 1)
	a, b, c := signers[0], signers[1], signers[2]
	newcomer := randomKey(t)

	for _, tc := range []struct {
		desc   string
		body   Body
		err    string
		expect func(*testing.T, *Registry)
	}{
		{
			desc: "add signer",
			body: &AddSigner{Signer: Signer{PublicKey: newcomer, Weight: 5}},
			expect: func(t *testing.T, reg *Registry) {
				require.Len(t, reg.Signers, 4)
				require.Equal(t, newcomer, reg.Signers[3].PublicKey)
				require.EqualValues(t, 9, reg.TotalWeight)
			},
		},
		{
			desc: "add duplicate signer",
			body: &AddSigner{Signer: Signer{PublicKey: b.PublicKey(), Weight: 1}},
			err:  "already registered",
		},
		{
			desc: "add zero weight",
			body: &AddSigner{Signer: Signer{PublicKey: newcomer}},
			err:  "weight 0",
		},
		{
			desc: "add weight 100",
			body: &AddSigner{Signer: Signer{PublicKey: newcomer, Weight: 100}},
			err:  "weight 100",
		},
		{
			desc: "remove signer",
			body: &RemoveSigner{PublicKey: b.PublicKey()},
			expect: func(t *testing.T, reg *Registry) {
				require.Len(t, reg.Signers, 2)
				require.Equal(t, a.PublicKey(), reg.Signers[0].PublicKey)
				require.Equal(t, c.PublicKey(), reg.Signers[1].PublicKey)
				require.EqualValues(t, 3, reg.TotalWeight)
			},
		},
		{
			desc: "remove signer that makes threshold unreachable",
			body: &RemoveSigner{PublicKey: a.PublicKey()},
			err:  "threshold 3 unreachable with remaining weight 2",
		},
		{
			desc: "remove unknown signer",
			body: &RemoveSigner{PublicKey: newcomer},
			err:  "is not registered",
		},
		{
			desc: "change threshold",
			body: &ChangeThreshold{Threshold: 4},
			expect: func(t *testing.T, reg *Registry) {
				require.EqualValues(t, 4, reg.Threshold)
				require.EqualValues(t, 4, reg.TotalWeight)
			},
		},
		{
			desc: "change threshold to the same value",
			body: &ChangeThreshold{Threshold: 3},
			err:  "threshold is already 3",
		},
		{
			desc: "change threshold to zero",
			body: &ChangeThreshold{Threshold: 0},
			err:  "outside of (0, 4]",
		},
		{
			desc: "change threshold above total",
			body: &ChangeThreshold{Threshold: 100},
			err:  "outside of (0, 4]",
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			reg := newRegistry(t, 3, signers)
			next, err := reg.Apply(&Action{Body: tc.body})
			if tc.err != "" {
				require.ErrorIs(t, err, ErrMalformedMutation)
				require.ErrorContains(t, err, tc.err)
				require.Nil(t, next)
				return
			}
			require.NoError(t, err)
			require.NoError(t, next.Validate())
			tc.expect(t, next)
			// original registry is never modified in place
			require.Len(t, reg.Signers, 3)
			require.EqualValues(t, 3, reg.Threshold)
			require.EqualValues(t, 4, reg.TotalWeight)
		})
	}
}

func TestApplyNotMutation(t *testing.T) {
	reg := newRegistry(t, 1, newSigners(t, 1))
	next, err := reg.Apply(&Action{Body: &Spend{Destination: testAddress(1), Amount: 10}})
	require.NoError(t, err)
	require.Same(t, reg, next)
}

func TestApplyTotalWeightInvariant(t *testing.T) {
	signers := newSigners(t, 3, 7, 11)
	reg := newRegistry(t, 5, signers)
	added := newSigners(t, 13, 17)
	var err error
	for _, s := range added {
		reg, err = reg.Apply(&Action{Body: &AddSigner{Signer: Signer{PublicKey: s.PublicKey(), Weight: s.weight}}})
		require.NoError(t, err)
		require.NoError(t, reg.Validate())
	}
	require.EqualValues(t, 51, reg.TotalWeight)
	for _, s := range append(signers, added[0]) {
		reg, err = reg.Apply(&Action{Body: &RemoveSigner{PublicKey: s.PublicKey()}})
		require.NoError(t, err)
		require.NoError(t, reg.Validate())
	}
	require.Len(t, reg.Signers, 1)
	require.EqualValues(t, 17, reg.TotalWeight)

	// the last signer can't be removed as threshold would become unreachable
	_, err = reg.Apply(&Action{Body: &RemoveSigner{PublicKey: added[1].PublicKey()}})
	require.ErrorIs(t, err, ErrMalformedMutation)
}

func TestApplySignersLimit(t *testing.T) {
	weights := make([]uint32, MaxSigners)
	for i := range weights {
		weights[i] = 1
	}
	reg := newRegistry(t, 1, newSigners(t, weights...))
	_, err := reg.Apply(&Action{Body: &AddSigner{Signer: Signer{PublicKey: randomKey(t), Weight: 1}}})
	require.ErrorIs(t, err, ErrMalformedMutation)
	require.ErrorContains(t, err, "already has 64 signers")
}
