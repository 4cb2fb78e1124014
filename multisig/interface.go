package multisig

import (
	"context"

	"github.com/spacemeshos/go-multisig/common/types"
)

//go:generate mockgen -typed -package=multisig -destination=./mocks.go -source=./interface.go

// DryRunStatus is the result of a trial execution.
type DryRunStatus uint8

const (
	// RequiresSignature means that the action must be authorized with Digest.
	RequiresSignature DryRunStatus = iota
	// Executed means that the action does not need authorization.
	Executed
)

func (s DryRunStatus) String() string {
	switch s {
	case RequiresSignature:
		return "requires_signature"
	case Executed:
		return "executed"
	default:
		return "unknown"
	}
}

// DryRunResult of an action executed without committing.
type DryRunResult struct {
	Status DryRunStatus
	Digest types.Hash32
}

// CommitResult of an action admitted by the engine.
type CommitResult struct {
	Address types.Address
	// Nonce the action was executed with.
	Nonce     uint64
	Digest    types.Hash32
	Kind      Kind
	Collected uint64
	// Discarded is the number of witnesses that contributed no weight.
	Discarded int
}

// Engine executes actions against account state.
type Engine interface {
	// DryRun executes action against a snapshot of account state and never persists anything.
	DryRun(ctx context.Context, address types.Address, action *Action) (DryRunResult, error)
	// Execute independently verifies witnesses against the current registry and commits
	// the action atomically if valid weight reaches the threshold.
	Execute(ctx context.Context, address types.Address, action *Action, ws WitnessSet) (CommitResult, error)
}

// RegistryReader provides read access to the signer registry of an account.
type RegistryReader interface {
	SignerWeight(ctx context.Context, address types.Address, pk types.PublicKey) (uint32, bool, error)
	ThresholdAndTotal(ctx context.Context, address types.Address) (uint32, uint32, error)
	Registry(ctx context.Context, address types.Address) (*Registry, error)
}
