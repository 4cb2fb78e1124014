package multisig

import (
	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/signing"
)

// Tally sums the weights of current signers that have a valid witness over digest.
// Invalid witnesses and witnesses of unknown keys are both counted as discarded
// and contribute zero weight.
func Tally(
	verifier *signing.EdVerifier,
	registry *Registry,
	digest types.Hash32,
	ws WitnessSet,
) (collected uint64, discarded int) {
	batch := verifier.NewBatch(signing.ACTION, digest[:], len(registry.Signers))
	weights := make([]uint32, 0, len(registry.Signers))
	for _, signer := range registry.Signers {
		w, exists := ws.Lookup(signer.PublicKey, digest)
		if !exists {
			continue
		}
		batch.Add(signer.PublicKey, w.Signature)
		weights = append(weights, signer.Weight)
	}
	for i, valid := range batch.Verify() {
		if valid {
			collected += uint64(weights[i])
		} else {
			discarded++
		}
	}
	discarded += len(ws) - batch.Len()
	return collected, discarded
}
