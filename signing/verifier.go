package signing

import (
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/spacemeshos/go-multisig/common/types"
)

type edVerifierOption struct {
	prefix []byte
}

// VerifierOptionFunc to modify verifier.
type VerifierOptionFunc func(*edVerifierOption) error

// WithVerifierPrefix sets the prefix used by EdVerifier. This usually is the network HRP.
func WithVerifierPrefix(prefix []byte) VerifierOptionFunc {
	return func(opts *edVerifierOption) error {
		opts.prefix = prefix
		return nil
	}
}

// EdVerifier verifies ed25519 signatures within a domain.
type EdVerifier struct {
	prefix []byte
}

func NewEdVerifier(opts ...VerifierOptionFunc) (*EdVerifier, error) {
	cfg := &edVerifierOption{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return &EdVerifier{prefix: cfg.prefix}, nil
}

// Verify verifies that a signature matches public key and message.
func (es *EdVerifier) Verify(d Domain, pub types.PublicKey, m []byte, sig types.EdSignature) bool {
	return ed25519.Verify(pub[:], message(es.prefix, d, m), sig[:])
}

// Batch collects signatures over a single message and verifies them together.
type Batch struct {
	verifier *ed25519.BatchVerifier
	msg      []byte
	n        int
}

// NewBatch returns a batch for signatures over m.
func (es *EdVerifier) NewBatch(d Domain, m []byte, capacity int) *Batch {
	return &Batch{
		verifier: ed25519.NewBatchVerifierWithCapacity(capacity),
		msg:      message(es.prefix, d, m),
	}
}

// Add queues a signature for verification.
func (b *Batch) Add(pub types.PublicKey, sig types.EdSignature) {
	b.verifier.Add(pub[:], b.msg, sig[:])
	b.n++
}

// Len returns the number of queued signatures.
func (b *Batch) Len() int {
	return b.n
}

// Verify returns validity of every queued signature in the order they were added.
// Unlike the aggregate result, a single invalid signature does not affect the others.
func (b *Batch) Verify() []bool {
	if b.n == 0 {
		return nil
	}
	ok, valid := b.verifier.Verify(nil)
	if ok {
		valid = make([]bool, b.n)
		for i := range valid {
			valid[i] = true
		}
	}
	return valid
}
