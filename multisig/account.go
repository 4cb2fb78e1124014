package multisig

import "github.com/spacemeshos/go-multisig/common/types"

// Account is the state of a multisig account.
type Account struct {
	Address  types.Address
	Nonce    uint64
	Balance  uint64
	Registry *Registry
}

// Proposal pairs an action with the digest signers must sign.
// It is never persisted by the client.
type Proposal struct {
	Address types.Address
	Digest  types.Hash32
	Action  *Action
}
