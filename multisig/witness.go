package multisig

import (
	"fmt"

	"github.com/spacemeshos/go-multisig/common/types"
)

// Witness is the evidence that Signer approved a digest.
type Witness struct {
	Signer     types.PublicKey
	BindingKey types.Hash32
	Signature  types.EdSignature
}

// WitnessSet holds at most one witness per binding key.
type WitnessSet map[types.Hash32]Witness

// Lookup the witness for pk over digest.
func (ws WitnessSet) Lookup(pk types.PublicKey, digest types.Hash32) (Witness, bool) {
	w, exists := ws[BindingKey(pk, digest)]
	if !exists || w.Signer != pk {
		return Witness{}, false
	}
	return w, true
}

// Signatures collected out of band, by signer public key.
type Signatures map[types.PublicKey]types.EdSignature

// Add records sig for pk, replacing previous signature.
func (s Signatures) Add(pk types.PublicKey, sig types.EdSignature) {
	s[pk] = sig
}

// SignaturesFromIndexed converts signatures referenced by position in the registry.
func SignaturesFromIndexed(registry *Registry, indexed map[int]types.EdSignature) (Signatures, error) {
	rst := make(Signatures, len(indexed))
	for i, sig := range indexed {
		if i < 0 || i >= len(registry.Signers) {
			return nil, fmt.Errorf("signer index %d out of range [0, %d)", i, len(registry.Signers))
		}
		rst.Add(registry.Signers[i].PublicKey, sig)
	}
	return rst, nil
}

// BuildWitnesses creates a witness for every signer of the current registry
// that has a collected signature. Absent signers and keys that are not registered are skipped.
func BuildWitnesses(registry *Registry, digest types.Hash32, collected Signatures) WitnessSet {
	ws := make(WitnessSet, len(collected))
	for _, signer := range registry.Signers {
		sig, exists := collected[signer.PublicKey]
		if !exists {
			continue
		}
		key := BindingKey(signer.PublicKey, digest)
		ws[key] = Witness{
			Signer:     signer.PublicKey,
			BindingKey: key,
			Signature:  sig,
		}
	}
	return ws
}
