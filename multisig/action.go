package multisig

import (
	"fmt"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-multisig/common/types"
)

// Kind selects the body of an action.
type Kind uint8

const (
	// KindNoop does not touch protected state.
	KindNoop Kind = iota
	// KindSpend transfers balance out of the account.
	KindSpend
	// KindAddSigner registers a new signer.
	KindAddSigner
	// KindRemoveSigner unregisters a signer.
	KindRemoveSigner
	// KindChangeThreshold updates the threshold.
	KindChangeThreshold
)

func (k Kind) String() string {
	switch k {
	case KindNoop:
		return "noop"
	case KindSpend:
		return "spend"
	case KindAddSigner:
		return "add_signer"
	case KindRemoveSigner:
		return "remove_signer"
	case KindChangeThreshold:
		return "change_threshold"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := KindNoop; k <= KindChangeThreshold; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrMalformed, s)
}

// IsMutation is true for kinds that change the signer registry.
func (k Kind) IsMutation() bool {
	return k == KindAddSigner || k == KindRemoveSigner || k == KindChangeThreshold
}

// Body is a kind specific payload of an action.
type Body interface {
	scale.Encodable
	scale.Decodable
	Kind() Kind
}

// Action is a candidate state change of the multisig account.
// Nonce and Expiry are committed to by the digest.
type Action struct {
	Nonce uint64
	// Expiry in unix seconds. Zero means the action never expires.
	Expiry uint64
	// Body is nil for noop actions.
	Body Body
}

// Kind of the action body.
func (a *Action) Kind() Kind {
	if a.Body == nil {
		return KindNoop
	}
	return a.Body.Kind()
}

// Validate checks the action in isolation from account state.
func (a *Action) Validate() error {
	switch body := a.Body.(type) {
	case nil:
	case *Spend:
		if body.Amount == 0 {
			return fmt.Errorf("%w: spend of zero amount", ErrMalformed)
		}
		if body.Destination.IsEmpty() {
			return fmt.Errorf("%w: empty destination", ErrMalformed)
		}
	case *AddSigner, *RemoveSigner, *ChangeThreshold:
	default:
		return fmt.Errorf("%w: unsupported body %T", ErrMalformed, body)
	}
	return nil
}

// EncodeScale implements scale codec interface.
func (a *Action) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeCompact64(enc, a.Nonce)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, a.Expiry)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact8(enc, uint8(a.Kind()))
		if err != nil {
			return total, err
		}
		total += n
	}
	if a.Body != nil {
		n, err := a.Body.EncodeScale(enc)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (a *Action) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		a.Nonce = field
	}
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		a.Expiry = field
	}
	kind, n, err := scale.DecodeCompact8(dec)
	if err != nil {
		return total, err
	}
	total += n
	switch Kind(kind) {
	case KindNoop:
		a.Body = nil
		return total, nil
	case KindSpend:
		a.Body = &Spend{}
	case KindAddSigner:
		a.Body = &AddSigner{}
	case KindRemoveSigner:
		a.Body = &RemoveSigner{}
	case KindChangeThreshold:
		a.Body = &ChangeThreshold{}
	default:
		return total, fmt.Errorf("%w: unknown kind %d", ErrMalformed, kind)
	}
	n, err = a.Body.DecodeScale(dec)
	if err != nil {
		return total, err
	}
	return total + n, nil
}

// Spend moves Amount from the account balance to Destination.
type Spend struct {
	Destination types.Address
	Amount      uint64
}

func (*Spend) Kind() Kind { return KindSpend }

// EncodeScale implements scale codec interface.
func (s *Spend) EncodeScale(enc *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeByteArray(enc, s.Destination[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact64(enc, s.Amount)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (s *Spend) DecodeScale(dec *scale.Decoder) (total int, err error) {
	{
		n, err := scale.DecodeByteArray(dec, s.Destination[:])
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		field, n, err := scale.DecodeCompact64(dec)
		if err != nil {
			return total, err
		}
		total += n
		s.Amount = field
	}
	return total, nil
}

// AddSigner registers Signer.
type AddSigner struct {
	Signer Signer
}

func (*AddSigner) Kind() Kind { return KindAddSigner }

// EncodeScale implements scale codec interface.
func (a *AddSigner) EncodeScale(enc *scale.Encoder) (int, error) {
	return a.Signer.EncodeScale(enc)
}

// DecodeScale implements scale codec interface.
func (a *AddSigner) DecodeScale(dec *scale.Decoder) (int, error) {
	return a.Signer.DecodeScale(dec)
}

// RemoveSigner unregisters the signer with PublicKey.
type RemoveSigner struct {
	PublicKey types.PublicKey
}

func (*RemoveSigner) Kind() Kind { return KindRemoveSigner }

// EncodeScale implements scale codec interface.
func (r *RemoveSigner) EncodeScale(enc *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(enc, r.PublicKey[:])
}

// DecodeScale implements scale codec interface.
func (r *RemoveSigner) DecodeScale(dec *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(dec, r.PublicKey[:])
}

// ChangeThreshold sets a new threshold.
type ChangeThreshold struct {
	Threshold uint32
}

func (*ChangeThreshold) Kind() Kind { return KindChangeThreshold }

// EncodeScale implements scale codec interface.
func (c *ChangeThreshold) EncodeScale(enc *scale.Encoder) (int, error) {
	return scale.EncodeCompact32(enc, c.Threshold)
}

// DecodeScale implements scale codec interface.
func (c *ChangeThreshold) DecodeScale(dec *scale.Decoder) (int, error) {
	field, n, err := scale.DecodeCompact32(dec)
	if err != nil {
		return n, err
	}
	c.Threshold = field
	return n, nil
}
