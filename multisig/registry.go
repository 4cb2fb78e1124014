package multisig

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-multisig/common/types"
)

const (
	// MaxSignerWeight is the largest weight a single signer may have.
	MaxSignerWeight = 99
	// MaxSigners is the largest number of signers in a registry.
	// MaxSigners * MaxSignerWeight fits into uint32.
	MaxSigners = 64
)

// Signer is a registered public key with its weight.
type Signer struct {
	PublicKey types.PublicKey
	Weight    uint32
}

// EncodeScale implements scale codec interface.
func (s *Signer) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByteArray(enc, s.PublicKey[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact32(enc, s.Weight)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (s *Signer) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := scale.DecodeByteArray(dec, s.PublicKey[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeCompact32(dec)
		if err != nil {
			return total, err
		}
		total += n
		s.Weight = field
	}
	return total, nil
}

// Registry is the set of signers that control an account.
//
// Signers keep insertion order. TotalWeight is always the sum of signer weights and
// 0 < Threshold <= TotalWeight.
type Registry struct {
	Signers     []Signer
	Threshold   uint32
	TotalWeight uint32
}

// NewRegistry validates signers and threshold and computes total weight.
func NewRegistry(threshold uint32, signers ...Signer) (*Registry, error) {
	reg := &Registry{
		Signers:   slices.Clone(signers),
		Threshold: threshold,
	}
	for _, signer := range signers {
		reg.TotalWeight += signer.Weight
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return reg, nil
}

// Validate checks all registry invariants.
func (r *Registry) Validate() error {
	if len(r.Signers) == 0 {
		return fmt.Errorf("%w: registry without signers", ErrMalformed)
	}
	if len(r.Signers) > MaxSigners {
		return fmt.Errorf("%w: %d signers exceed limit of %d", ErrMalformed, len(r.Signers), MaxSigners)
	}
	seen := make(map[types.PublicKey]struct{}, len(r.Signers))
	var total uint64
	for _, signer := range r.Signers {
		if err := validWeight(signer.Weight); err != nil {
			return fmt.Errorf("%w: signer %s: %w", ErrMalformed, signer.PublicKey.ShortString(), err)
		}
		if _, exists := seen[signer.PublicKey]; exists {
			return fmt.Errorf("%w: duplicate signer %s", ErrMalformed, signer.PublicKey)
		}
		seen[signer.PublicKey] = struct{}{}
		total += uint64(signer.Weight)
	}
	if total != uint64(r.TotalWeight) {
		return fmt.Errorf("%w: total weight %d does not match sum of weights %d", ErrMalformed, r.TotalWeight, total)
	}
	if r.Threshold == 0 || r.Threshold > r.TotalWeight {
		return fmt.Errorf("%w: threshold %d outside of (0, %d]", ErrMalformed, r.Threshold, r.TotalWeight)
	}
	return nil
}

func validWeight(weight uint32) error {
	if weight == 0 || weight > MaxSignerWeight {
		return fmt.Errorf("weight %d outside of [1, %d]", weight, MaxSignerWeight)
	}
	return nil
}

// Index of the signer with pk. -1 if pk is not registered.
func (r *Registry) Index(pk types.PublicKey) int {
	return slices.IndexFunc(r.Signers, func(s Signer) bool {
		return s.PublicKey == pk
	})
}

// Weight of the signer with pk.
func (r *Registry) Weight(pk types.PublicKey) (uint32, bool) {
	if i := r.Index(pk); i >= 0 {
		return r.Signers[i].Weight, true
	}
	return 0, false
}

// Clone returns a deep copy.
func (r *Registry) Clone() *Registry {
	return &Registry{
		Signers:     slices.Clone(r.Signers),
		Threshold:   r.Threshold,
		TotalWeight: r.TotalWeight,
	}
}

func (r *Registry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "threshold=%d total=%d\n", r.Threshold, r.TotalWeight)
	for i, signer := range r.Signers {
		fmt.Fprintf(&b, "%d : %s weight=%d\n", i, signer.PublicKey, signer.Weight)
	}
	return b.String()
}

// EncodeScale implements scale codec interface.
// TotalWeight is not encoded as it is derived from signers.
func (r *Registry) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeCompact32(enc, r.Threshold)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeStructSliceWithLimit(enc, r.Signers, MaxSigners)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
