package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-multisig/common/types"
	"github.com/spacemeshos/go-multisig/multisig"
	"github.com/spacemeshos/go-multisig/signing"
	"github.com/spacemeshos/go-multisig/sql"
	"github.com/spacemeshos/go-multisig/sql/accounts"
)

// ErrAccountExists is returned by Create if the account address is taken.
var ErrAccountExists = errors.New("account exists")

var (
	_ multisig.Engine         = (*Engine)(nil)
	_ multisig.RegistryReader = (*Engine)(nil)
)

// Opt for configuring Engine.
type Opt func(*Engine)

// WithLogger sets logger for the engine.
func WithLogger(logger *zap.Logger) Opt {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock sets the clock used to check action expiry.
func WithClock(clock clockwork.Clock) Opt {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithVerifier sets signature verifier.
func WithVerifier(verifier *signing.EdVerifier) Opt {
	return func(e *Engine) {
		e.verifier = verifier
	}
}

// WithConfig sets engine config.
func WithConfig(cfg Config) Opt {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// Engine executes multisig actions against accounts persisted in sqlite.
//
// Commits are serialized within the instance by a mutex and across processes by
// immediate transactions.
type Engine struct {
	logger   *zap.Logger
	db       *sql.Database
	clock    clockwork.Clock
	verifier *signing.EdVerifier
	cfg      Config

	mu    sync.Mutex
	cache *lru.Cache[types.Address, *multisig.Registry]
}

// New creates an engine on top of db.
func New(db *sql.Database, opts ...Opt) (*Engine, error) {
	e := &Engine{
		logger: zap.NewNop(),
		db:     db,
		clock:  clockwork.NewRealClock(),
		cfg:    DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.verifier == nil {
		verifier, err := signing.NewEdVerifier()
		if err != nil {
			return nil, err
		}
		e.verifier = verifier
	}
	cache, err := lru.New[types.Address, *multisig.Registry](e.cfg.RegistryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create registry cache: %w", err)
	}
	e.cache = cache
	return e, nil
}

// Definition is the initial state of an account.
type Definition struct {
	Balance  uint64
	Salt     uint64
	Registry *multisig.Registry
}

// Create persists a new account and returns its state.
func (e *Engine) Create(ctx context.Context, def Definition) (*multisig.Account, error) {
	if def.Registry == nil {
		return nil, fmt.Errorf("%w: missing registry", multisig.ErrMalformed)
	}
	if err := def.Registry.Validate(); err != nil {
		return nil, err
	}
	account := &multisig.Account{
		Address:  multisig.ComputeAddress(def.Registry, def.Salt),
		Balance:  def.Balance,
		Registry: def.Registry.Clone(),
	}
	err := e.db.WithTxImmediate(ctx, func(tx *sql.Tx) error {
		return accounts.Create(tx, account, e.clock.Now())
	})
	switch {
	case errors.Is(err, sql.ErrObjectExists):
		return nil, fmt.Errorf("%w: %s", ErrAccountExists, account.Address)
	case err != nil:
		return nil, err
	}
	e.logger.Info("account created",
		zap.Stringer("address", account.Address),
		zap.Uint64("balance", account.Balance),
		zap.Uint32("threshold", account.Registry.Threshold),
		zap.Uint32("total_weight", account.Registry.TotalWeight),
		zap.Int("signers", len(account.Registry.Signers)),
	)
	return account, nil
}

// Account returns current state of the account.
func (e *Engine) Account(ctx context.Context, address types.Address) (*multisig.Account, error) {
	var account *multisig.Account
	if err := e.db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		account, err = load(tx, address)
		return err
	}); err != nil {
		return nil, err
	}
	return account, nil
}

// History returns actions committed by the account.
func (e *Engine) History(ctx context.Context, address types.Address) ([]accounts.Executed, error) {
	if _, err := e.Registry(ctx, address); err != nil {
		return nil, err
	}
	return accounts.History(e.db, address)
}

// Accounts returns addresses of all accounts.
func (e *Engine) Accounts() ([]types.Address, error) {
	return accounts.All(e.db)
}

func load(db sql.Executor, address types.Address) (*multisig.Account, error) {
	account, err := accounts.Get(db, address)
	if errors.Is(err, sql.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", multisig.ErrNotFound, address)
	}
	return account, err
}

// check validates action against account state and returns the registry after the action.
func (e *Engine) check(account *multisig.Account, action *multisig.Action) (*multisig.Registry, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}
	if action.Expiry != 0 && uint64(e.clock.Now().Unix()) > action.Expiry {
		return nil, fmt.Errorf("%w: expired at %s", multisig.ErrExpired,
			time.Unix(int64(action.Expiry), 0).UTC().Format(time.RFC3339))
	}
	if action.Nonce != account.Nonce {
		return nil, fmt.Errorf("%w: action nonce %d, account nonce %d",
			multisig.ErrStaleProposal, action.Nonce, account.Nonce)
	}
	next, err := account.Registry.Apply(action)
	if err != nil {
		return nil, err
	}
	if spend, ok := action.Body.(*multisig.Spend); ok && spend.Amount > account.Balance {
		return nil, fmt.Errorf("%w: spend %d, balance %d", multisig.ErrInsufficientFunds, spend.Amount, account.Balance)
	}
	return next, nil
}

// DryRun executes action against current state without committing.
func (e *Engine) DryRun(
	ctx context.Context,
	address types.Address,
	action *multisig.Action,
) (multisig.DryRunResult, error) {
	account, err := e.Account(ctx, address)
	if err != nil {
		return multisig.DryRunResult{}, err
	}
	if action.Kind() == multisig.KindNoop {
		return multisig.DryRunResult{Status: multisig.Executed}, nil
	}
	if _, err := e.check(account, action); err != nil {
		return multisig.DryRunResult{}, err
	}
	return multisig.DryRunResult{
		Status: multisig.RequiresSignature,
		Digest: multisig.Digest(address, action),
	}, nil
}

// Execute verifies witnesses against the current registry and commits the action
// if their weight reaches the threshold. Noop actions are not persisted.
func (e *Engine) Execute(
	ctx context.Context,
	address types.Address,
	action *multisig.Action,
	ws multisig.WitnessSet,
) (result multisig.CommitResult, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kind := action.Kind()
	start := time.Now()
	defer func() {
		executeDuration.WithLabelValues(kind.String()).Observe(time.Since(start).Seconds())
		label := "ok"
		switch {
		case errors.Is(err, multisig.ErrInsufficientWeight):
			label = "insufficient_weight"
		case err != nil:
			label = "rejected"
		}
		executions.WithLabelValues(kind.String(), label).Inc()
	}()

	err = e.db.WithTxImmediate(ctx, func(tx *sql.Tx) error {
		account, err := load(tx, address)
		if err != nil {
			return err
		}
		if kind == multisig.KindNoop {
			result = multisig.CommitResult{Address: address, Nonce: account.Nonce, Kind: kind}
			return nil
		}
		next, err := e.check(account, action)
		if err != nil {
			return err
		}
		digest := multisig.Digest(address, action)
		collected, discarded := multisig.Tally(e.verifier, account.Registry, digest, ws)
		discardedWitnesses.Add(float64(discarded))
		if collected < uint64(account.Registry.Threshold) {
			return &multisig.InsufficientWeightError{
				Collected: collected,
				Threshold: account.Registry.Threshold,
			}
		}

		result = multisig.CommitResult{
			Address:   address,
			Nonce:     action.Nonce,
			Digest:    digest,
			Kind:      kind,
			Collected: collected,
			Discarded: discarded,
		}
		spend, isSpend := action.Body.(*multisig.Spend)
		if isSpend {
			account.Balance -= spend.Amount
		}
		account.Registry = next
		account.Nonce++
		if err := accounts.Update(tx, account); err != nil {
			return err
		}
		if isSpend {
			if err := e.credit(tx, spend); err != nil {
				return err
			}
		}
		return accounts.AddExecuted(tx, result, e.clock.Now())
	})
	if err != nil {
		e.logger.Debug("action not executed",
			zap.Stringer("address", address),
			zap.Stringer("kind", kind),
			zap.Uint64("nonce", action.Nonce),
			zap.Error(err),
		)
		return multisig.CommitResult{}, err
	}
	if kind.IsMutation() {
		e.cache.Remove(address)
	}
	if kind != multisig.KindNoop {
		e.logger.Info("action executed",
			zap.Stringer("address", address),
			zap.Stringer("kind", kind),
			zap.Uint64("nonce", result.Nonce),
			zap.Uint64("collected", result.Collected),
			zap.Int("discarded", result.Discarded),
		)
	}
	return result, nil
}

func (e *Engine) credit(tx *sql.Tx, spend *multisig.Spend) error {
	exists, err := accounts.Credit(tx, spend.Destination, spend.Amount)
	if err != nil {
		return err
	}
	if !exists {
		e.logger.Debug("spend to external address",
			zap.Stringer("destination", spend.Destination),
			zap.Uint64("amount", spend.Amount),
		)
	}
	return nil
}

// Registry returns a copy of the account registry. Registries are cached until
// the account commits a mutation.
func (e *Engine) Registry(ctx context.Context, address types.Address) (*multisig.Registry, error) {
	if reg, ok := e.cache.Get(address); ok {
		cacheHits.Inc()
		return reg.Clone(), nil
	}
	cacheMisses.Inc()
	// a commit can't invalidate the entry between the read and the insert
	e.mu.Lock()
	defer e.mu.Unlock()
	account, err := e.Account(ctx, address)
	if err != nil {
		return nil, err
	}
	e.cache.Add(address, account.Registry)
	return account.Registry.Clone(), nil
}

// SignerWeight returns weight of pk in the account registry.
func (e *Engine) SignerWeight(ctx context.Context, address types.Address, pk types.PublicKey) (uint32, bool, error) {
	reg, err := e.Registry(ctx, address)
	if err != nil {
		return 0, false, err
	}
	weight, exists := reg.Weight(pk)
	return weight, exists, nil
}

// ThresholdAndTotal returns threshold and total weight of the account registry.
func (e *Engine) ThresholdAndTotal(ctx context.Context, address types.Address) (uint32, uint32, error) {
	reg, err := e.Registry(ctx, address)
	if err != nil {
		return 0, 0, err
	}
	return reg.Threshold, reg.TotalWeight, nil
}
