package multisig

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed is returned when an action fails structural validation.
	ErrMalformed = errors.New("malformed action")
	// ErrMalformedMutation is returned when a registry mutation violates registry invariants.
	// It is reported before any signature is accounted.
	ErrMalformedMutation = errors.New("malformed mutation")
	// ErrInsufficientWeight is returned when valid signatures do not reach the threshold.
	ErrInsufficientWeight = errors.New("insufficient weight")
	// ErrInvalidWitness marks a witness that does not verify. Such witness contributes
	// zero weight and never fails the whole round on its own.
	ErrInvalidWitness = errors.New("invalid witness")
	// ErrStaleProposal is returned when the digest no longer describes the action
	// against current account state.
	ErrStaleProposal = errors.New("stale proposal")
	// ErrNoAuthorizationRequired is returned by Propose for actions that execute without signatures.
	ErrNoAuthorizationRequired = errors.New("no authorization required")
	// ErrExpired is returned when the action expiry is in the past.
	ErrExpired = errors.New("action expired")
	// ErrInsufficientFunds is returned when a spend exceeds the account balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrNotFound is returned for unknown accounts.
	ErrNotFound = errors.New("account not found")
)

// InsufficientWeightError carries the weight that was collected from valid witnesses.
type InsufficientWeightError struct {
	Collected uint64
	Threshold uint32
}

func (e *InsufficientWeightError) Error() string {
	return fmt.Sprintf("%s: collected %d out of %d", ErrInsufficientWeight, e.Collected, e.Threshold)
}

func (e *InsufficientWeightError) Unwrap() error { return ErrInsufficientWeight }
