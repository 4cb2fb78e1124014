package multisig

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/signing"
)

// Opt for configuring Client.
type Opt func(*Client)

// WithLogger sets logger for the client.
func WithLogger(logger *zap.Logger) Opt {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithVerifier sets verifier used for the local signature check before submission.
func WithVerifier(verifier *signing.EdVerifier) Opt {
	return func(c *Client) {
		c.verifier = verifier
	}
}

// Client drives actions through propose and authorize.
// It holds no locks; serialization of commits is up to the engine.
type Client struct {
	logger   *zap.Logger
	engine   Engine
	registry RegistryReader
	verifier *signing.EdVerifier
}

// New creates a client.
func New(engine Engine, registry RegistryReader, opts ...Opt) (*Client, error) {
	c := &Client{
		logger:   zap.NewNop(),
		engine:   engine,
		registry: registry,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.verifier == nil {
		verifier, err := signing.NewEdVerifier()
		if err != nil {
			return nil, err
		}
		c.verifier = verifier
	}
	return c, nil
}

// Propose returns the digest signers must sign for action.
// ErrNoAuthorizationRequired is returned if the action executes without signatures.
func (c *Client) Propose(ctx context.Context, address types.Address, action *Action) (*Proposal, error) {
	proposal, err := c.propose(ctx, address, action)
	result := "ok"
	switch {
	case errors.Is(err, ErrNoAuthorizationRequired):
		result = "no_authorization"
	case err != nil:
		result = "failed"
	}
	proposals.WithLabelValues(action.Kind().String(), result).Inc()
	return proposal, err
}

func (c *Client) propose(ctx context.Context, address types.Address, action *Action) (*Proposal, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}
	if action.Kind().IsMutation() {
		if err := c.precheck(ctx, address, action); err != nil {
			return nil, err
		}
	}
	rst, err := c.engine.DryRun(ctx, address, action)
	if err != nil {
		return nil, fmt.Errorf("dry run: %w", err)
	}
	if rst.Status == Executed {
		return nil, ErrNoAuthorizationRequired
	}
	digest := Digest(address, action)
	if rst.Digest != digest {
		return nil, fmt.Errorf("%w: engine digest %s doesn't match action digest %s",
			ErrStaleProposal, rst.Digest.ShortString(), digest.ShortString())
	}
	c.logger.Debug("proposed action",
		zap.Stringer("address", address),
		zap.Stringer("kind", action.Kind()),
		zap.Uint64("nonce", action.Nonce),
		zap.Stringer("digest", digest),
	)
	return &Proposal{Address: address, Digest: digest, Action: action}, nil
}

// precheck validates a mutation through registry read accessors, without an engine round trip.
func (c *Client) precheck(ctx context.Context, address types.Address, action *Action) error {
	var (
		threshold, total uint32
		target           types.PublicKey
		weight           uint32
		registered       bool
	)
	switch body := action.Body.(type) {
	case *AddSigner:
		target = body.Signer.PublicKey
	case *RemoveSigner:
		target = body.PublicKey
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		threshold, total, err = c.registry.ThresholdAndTotal(ctx, address)
		return err
	})
	if action.Kind() != KindChangeThreshold {
		eg.Go(func() error {
			var err error
			weight, registered, err = c.registry.SignerWeight(ctx, address, target)
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("read registry %s: %w", address, err)
	}
	lookup := func(pk types.PublicKey) (uint32, bool) {
		return weight, registered && pk == target
	}
	return checkMutation(action.Body, lookup, threshold, total)
}

// Authorize submits proposal with signatures collected out of band.
// Errors returned from Authorize are infrastructure failures. Protocol failures
// are reported through the Outcome.
func (c *Client) Authorize(ctx context.Context, proposal *Proposal, signatures Signatures) (Outcome, error) {
	outcome, err := c.authorize(ctx, proposal, signatures)
	if err != nil {
		return Outcome{}, err
	}
	outcomes.WithLabelValues(proposal.Action.Kind().String(), outcome.Status.String()).Inc()
	c.logger.Info("authorization completed",
		zap.Stringer("address", proposal.Address),
		zap.Stringer("kind", proposal.Action.Kind()),
		zap.Stringer("digest", proposal.Digest),
		zap.Stringer("outcome", outcome),
	)
	return outcome, nil
}

func (c *Client) authorize(ctx context.Context, proposal *Proposal, signatures Signatures) (Outcome, error) {
	action := proposal.Action
	if digest := Digest(proposal.Address, action); digest != proposal.Digest {
		return rejected(fmt.Errorf("%w: proposal digest %s doesn't match action digest %s",
			ErrStaleProposal, proposal.Digest.ShortString(), digest.ShortString())), nil
	}
	if err := action.Validate(); err != nil {
		return rejected(err), nil
	}
	registry, err := c.registry.Registry(ctx, proposal.Address)
	switch {
	case errors.Is(err, ErrNotFound):
		return rejected(err), nil
	case err != nil:
		return Outcome{}, fmt.Errorf("read registry %s: %w", proposal.Address, err)
	}
	if _, err := registry.Apply(action); err != nil {
		return rejected(err), nil
	}

	ws := BuildWitnesses(registry, proposal.Digest, signatures)
	collected, discarded := Tally(c.verifier, registry, proposal.Digest, ws)
	if discarded > 0 {
		c.logger.Warn("discarded signatures before submission",
			zap.Stringer("address", proposal.Address),
			zap.Int("discarded", discarded),
		)
	}
	if collected < uint64(registry.Threshold) {
		return insufficient(collected, registry.Threshold), nil
	}

	result, err := c.engine.Execute(ctx, proposal.Address, action, ws)
	var weightErr *InsufficientWeightError
	switch {
	case err == nil:
		return executed(result), nil
	case errors.As(err, &weightErr):
		return insufficient(weightErr.Collected, weightErr.Threshold), nil
	case errors.Is(err, ErrInsufficientWeight):
		return insufficient(collected, registry.Threshold), nil
	case errors.Is(err, ErrStaleProposal),
		errors.Is(err, ErrExpired),
		errors.Is(err, ErrMalformedMutation),
		errors.Is(err, ErrMalformed),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrNotFound):
		return rejected(err), nil
	default:
		return Outcome{}, fmt.Errorf("execute: %w", err)
	}
}
