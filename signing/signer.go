package signing

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"

	"github.com/spacemeshos/go-multisig/common/types"
)

type Domain byte

const (
	// ACTION domain is used to sign multisig action digests.
	ACTION Domain = 0
)

// String returns the string representation of a domain.
func (d Domain) String() string {
	switch d {
	case ACTION:
		return "ACTION"
	default:
		return "UNKNOWN"
	}
}

type edSignerOption struct {
	priv   PrivateKey
	prefix []byte
}

// EdSignerOptionFunc modifies EdSigner.
type EdSignerOptionFunc func(*edSignerOption) error

// WithPrefix sets the prefix used by EdSigner. This usually is the network HRP.
func WithPrefix(prefix []byte) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		opt.prefix = prefix
		return nil
	}
}

// WithPrivateKey sets the private key used by EdSigner.
func WithPrivateKey(priv PrivateKey) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		if opt.priv != nil {
			return errors.New("invalid option WithPrivateKey: private key already set")
		}
		if err := checkPrivateKey(priv); err != nil {
			return err
		}
		opt.priv = priv
		return nil
	}
}

// WithKeyFromRand sets the private key used by EdSigner using predictable randomness source.
func WithKeyFromRand(rand io.Reader) EdSignerOptionFunc {
	return func(opt *edSignerOption) error {
		_, priv, err := ed25519.GenerateKey(rand)
		if err != nil {
			return fmt.Errorf("could not generate key pair: %w", err)
		}
		opt.priv = priv
		return nil
	}
}

func checkPrivateKey(priv PrivateKey) error {
	if len(priv) != PrivateKeySize {
		return fmt.Errorf("invalid key length %d/%d: key too small or too large", len(priv), PrivateKeySize)
	}
	keyPair := ed25519.NewKeyFromSeed(priv[:32])
	if !bytes.Equal(keyPair[32:], priv[32:]) {
		return errors.New("private and public do not match")
	}
	return nil
}

// ParsePrivateKey decodes a hex encoded private key, as written by EncodePrivateKey.
func ParsePrivateKey(data []byte) (PrivateKey, error) {
	data = bytes.TrimSpace(data)
	if n := hex.DecodedLen(len(data)); n != PrivateKeySize {
		return nil, fmt.Errorf("invalid key size %d/%d", n, PrivateKeySize)
	}
	dst := make([]byte, PrivateKeySize)
	if _, err := hex.Decode(dst, data); err != nil {
		return nil, fmt.Errorf("decoding private key: %w", err)
	}
	priv := PrivateKey(dst)
	if err := checkPrivateKey(priv); err != nil {
		return nil, err
	}
	return priv, nil
}

// EncodePrivateKey returns hex encoded private key.
func EncodePrivateKey(priv PrivateKey) []byte {
	dst := make([]byte, hex.EncodedLen(len(priv)))
	hex.Encode(dst, priv)
	return dst
}

// EdSigner represents an ED25519 signer.
type EdSigner struct {
	priv   PrivateKey
	prefix []byte
}

// NewEdSigner returns an auto-generated ed signer.
func NewEdSigner(opts ...EdSignerOptionFunc) (*EdSigner, error) {
	cfg := &edSignerOption{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.priv == nil {
		_, priv, err := ed25519.GenerateKey(nil)
		if err != nil {
			return nil, fmt.Errorf("could not generate key pair: %w", err)
		}
		cfg.priv = priv
	}
	return &EdSigner{
		priv:   cfg.priv,
		prefix: cfg.prefix,
	}, nil
}

// Sign signs the provided message.
func (es *EdSigner) Sign(d Domain, m []byte) types.EdSignature {
	return *(*[types.EdSignatureSize]byte)(ed25519.Sign(es.priv, message(es.prefix, d, m)))
}

// PublicKey returns the public key of the signer.
func (es *EdSigner) PublicKey() types.PublicKey {
	return types.BytesToPublicKey(es.priv[32:])
}

// PrivateKey returns private key.
func (es *EdSigner) PrivateKey() PrivateKey {
	return es.priv
}

func (es *EdSigner) String() string {
	return es.PublicKey().ShortString()
}

func message(prefix []byte, d Domain, m []byte) []byte {
	msg := make([]byte, 0, len(prefix)+1+len(m))
	msg = append(msg, prefix...)
	msg = append(msg, byte(d))
	msg = append(msg, m...)
	return msg
}
