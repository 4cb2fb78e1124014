package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeebo/blake3"
)

func TestSumMatchesBlake3(t *testing.T) {
	expected := blake3.Sum256([]byte("multisig/action"))
	require.Equal(t, expected, Sum([]byte("multisig/"), []byte("action")))
}

func TestSumReusesHashers(t *testing.T) {
	first := Sum([]byte("a"), []byte("b"))
	// a dirty hasher returned to the pool must not leak state into the next sum
	require.Equal(t, first, Sum([]byte("ab")))
	require.NotEqual(t, first, Sum([]byte("ba")))
}
