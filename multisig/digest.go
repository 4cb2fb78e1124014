package multisig

import (
	"encoding/binary"

	"github.com/spacemeshos/go-multisig/codec"
	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/hash"
)

var (
	actionDomain  = []byte("multisig/action")
	accountDomain = []byte("multisig/account")
)

// Digest commits to the action executed by the account at address.
// Nonce and expiry are part of the action, so the digest goes stale once the account
// nonce moves.
func Digest(address types.Address, action *Action) types.Hash32 {
	return types.Hash32(hash.Sum(actionDomain, address[:], codec.MustEncode(action)))
}

// BindingKey is the lookup key of a witness by signer pk over digest.
func BindingKey(pk types.PublicKey, digest types.Hash32) types.Hash32 {
	return types.Hash32(hash.Sum(pk[:], digest[:]))
}

// ComputeAddress derives an account address from the initial registry and salt.
func ComputeAddress(registry *Registry, salt uint64) types.Address {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], salt)
	sum := hash.Sum(accountDomain, codec.MustEncode(registry), buf[:])
	return types.GenerateAddress(sum[:])
}
