package multisig

import (
	"fmt"
	"slices"

	"github.com/spacemeshos/go-multisig/common/types"
)

// Apply returns the registry that results from action.
// Actions that are not mutations return the registry unchanged.
// Every rejection wraps ErrMalformedMutation.
func (r *Registry) Apply(action *Action) (*Registry, error) {
	if !action.Kind().IsMutation() {
		return r, nil
	}
	if err := checkMutation(action.Body, r.Weight, r.Threshold, r.TotalWeight); err != nil {
		return nil, err
	}
	next := r.Clone()
	switch body := action.Body.(type) {
	case *AddSigner:
		if len(r.Signers) >= MaxSigners {
			return nil, fmt.Errorf("%w: registry already has %d signers", ErrMalformedMutation, len(r.Signers))
		}
		next.Signers = append(next.Signers, body.Signer)
		next.TotalWeight += body.Signer.Weight
	case *RemoveSigner:
		i := r.Index(body.PublicKey)
		next.TotalWeight -= r.Signers[i].Weight
		next.Signers = slices.Delete(next.Signers, i, i+1)
	case *ChangeThreshold:
		next.Threshold = body.Threshold
	}
	return next, nil
}

// checkMutation validates a mutation against registry state exposed through
// weight lookup and threshold and total. It does not check the signers limit.
func checkMutation(
	body Body,
	weight func(types.PublicKey) (uint32, bool),
	threshold, total uint32,
) error {
	switch body := body.(type) {
	case *AddSigner:
		if err := validWeight(body.Signer.Weight); err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedMutation, err)
		}
		if _, exists := weight(body.Signer.PublicKey); exists {
			return fmt.Errorf("%w: signer %s already registered", ErrMalformedMutation, body.Signer.PublicKey)
		}
	case *RemoveSigner:
		w, exists := weight(body.PublicKey)
		if !exists {
			return fmt.Errorf("%w: signer %s is not registered", ErrMalformedMutation, body.PublicKey)
		}
		// reachability is checked against the total after removal
		if after := total - w; threshold > after {
			return fmt.Errorf("%w: threshold %d unreachable with remaining weight %d",
				ErrMalformedMutation, threshold, after)
		}
	case *ChangeThreshold:
		if body.Threshold == threshold {
			return fmt.Errorf("%w: threshold is already %d", ErrMalformedMutation, threshold)
		}
		if body.Threshold == 0 || body.Threshold > total {
			return fmt.Errorf("%w: threshold %d outside of (0, %d]", ErrMalformedMutation, body.Threshold, total)
		}
	default:
		return fmt.Errorf("%w: %T is not a mutation", ErrMalformedMutation, body)
	}
	return nil
}
