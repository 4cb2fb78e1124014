package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"

	"github.com/spacemeshos/go-multisig/codec"
	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/engine"
	"github.com/spacemeshos/go-multisig/filesystem"
	"github.com/spacemeshos/go-multisig/multisig"
	"github.com/spacemeshos/go-multisig/signing"
)

const definitionSchemaFile = "definition.schema.json"

const definitionSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "required": ["threshold", "signers"],
  "properties": {
    "balance": {"type": "integer", "minimum": 0},
    "salt": {"type": "integer", "minimum": 0},
    "threshold": {"type": "integer", "minimum": 1},
    "signers": {
      "type": "array",
      "minItems": 1,
      "maxItems": 64,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["public_key", "weight"],
        "properties": {
          "public_key": {"type": "string", "pattern": "^(0x)?[0-9a-fA-F]{64}$"},
          "weight": {"type": "integer", "minimum": 1, "maximum": 99}
        }
      }
    }
  }
}`

// definitionFile is the json input of the create command.
type definitionFile struct {
	Balance   uint64 `json:"balance"`
	Salt      uint64 `json:"salt"`
	Threshold uint32 `json:"threshold"`
	Signers   []struct {
		PublicKey types.PublicKey `json:"public_key"`
		Weight    uint32          `json:"weight"`
	} `json:"signers"`
}

// proposalFile is handed to signers out of band.
type proposalFile struct {
	Address types.Address `json:"address"`
	Digest  types.Hash32  `json:"digest"`
	Kind    string        `json:"kind"`
	Nonce   uint64        `json:"nonce"`
	Expiry  uint64        `json:"expiry,omitempty"`
	// Action is hex encoded scale action.
	Action string `json:"action"`
}

// signatureFile is produced by a single signer for a single digest.
type signatureFile struct {
	Digest    types.Hash32      `json:"digest"`
	PublicKey types.PublicKey   `json:"public_key"`
	Signature types.EdSignature `json:"signature"`
}

func validateDefinition(data []byte) error {
	sch, err := jsonschema.CompileString(definitionSchemaFile, definitionSchema)
	if err != nil {
		return fmt.Errorf("compile definition json schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal definition: %w", err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("validate definition: %w", err)
	}
	return nil
}

func readDefinition(fs afero.Fs, path string) (engine.Definition, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return engine.Definition{}, fmt.Errorf("read definition %s: %w", path, err)
	}
	if err := validateDefinition(data); err != nil {
		return engine.Definition{}, err
	}
	var def definitionFile
	if err := json.Unmarshal(data, &def); err != nil {
		return engine.Definition{}, fmt.Errorf("decode definition %s: %w", path, err)
	}
	signers := make([]multisig.Signer, 0, len(def.Signers))
	for _, s := range def.Signers {
		signers = append(signers, multisig.Signer{PublicKey: s.PublicKey, Weight: s.Weight})
	}
	reg, err := multisig.NewRegistry(def.Threshold, signers...)
	if err != nil {
		return engine.Definition{}, err
	}
	return engine.Definition{Balance: def.Balance, Salt: def.Salt, Registry: reg}, nil
}

func newProposalFile(proposal *multisig.Proposal) (*proposalFile, error) {
	action, err := codec.Encode(proposal.Action)
	if err != nil {
		return nil, err
	}
	return &proposalFile{
		Address: proposal.Address,
		Digest:  proposal.Digest,
		Kind:    proposal.Action.Kind().String(),
		Nonce:   proposal.Action.Nonce,
		Expiry:  proposal.Action.Expiry,
		Action:  hex.EncodeToString(action),
	}, nil
}

// proposal decodes the action and checks that it matches the advertised digest.
func (f *proposalFile) proposal() (*multisig.Proposal, error) {
	data, err := hex.DecodeString(f.Action)
	if err != nil {
		return nil, fmt.Errorf("decode action hex: %w", err)
	}
	var action multisig.Action
	if err := codec.Decode(data, &action); err != nil {
		return nil, fmt.Errorf("%w: decode action: %w", multisig.ErrMalformed, err)
	}
	if digest := multisig.Digest(f.Address, &action); digest != f.Digest {
		return nil, fmt.Errorf("%w: proposal digest %s doesn't match action digest %s",
			multisig.ErrStaleProposal, f.Digest.ShortString(), digest.ShortString())
	}
	return &multisig.Proposal{Address: f.Address, Digest: f.Digest, Action: &action}, nil
}

func readJSON(fs afero.Fs, path string, v any) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// writeFile replaces the file at path by renaming a synced temporary file from the same directory.
func writeFile(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, filesystem.OwnerReadWriteExec); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := afero.TempFile(fs, dir, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("create tmp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		return errors.Join(fmt.Errorf("write tmp file: %w", err), tmp.Close(), fs.Remove(tmp.Name()))
	}
	if err := tmp.Sync(); err != nil {
		return errors.Join(fmt.Errorf("sync tmp file: %w", err), tmp.Close(), fs.Remove(tmp.Name()))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(fmt.Errorf("close tmp file: %w", err), fs.Remove(tmp.Name()))
	}
	if err := fs.Rename(tmp.Name(), path); err != nil {
		return errors.Join(fmt.Errorf("rename tmp file %s to %s: %w", tmp.Name(), path, err), fs.Remove(tmp.Name()))
	}
	return nil
}

func writeJSON(fs afero.Fs, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := writeFile(fs, path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func readSigner(fs afero.Fs, path string, prefix []byte) (*signing.EdSigner, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read key %s: %w", path, err)
	}
	key, err := signing.ParsePrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("parse key %s: %w", path, err)
	}
	return signing.NewEdSigner(signing.WithPrivateKey(key), signing.WithPrefix(prefix))
}

func writeSigner(fs afero.Fs, path string, signer *signing.EdSigner) error {
	if err := writeFile(fs, path, signing.EncodePrivateKey(signer.PrivateKey())); err != nil {
		return fmt.Errorf("write key %s: %w", path, err)
	}
	return nil
}
