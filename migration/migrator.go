package migration

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Migrator runs Validate -> Build -> Invoke for one pool at a time.
// It keeps no state between calls and can be shared.
type Migrator struct {
	validator *Validator
	invoker   Invoker
	clock     Clock
	logger    *zap.Logger
}

type Option func(*Migrator)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Migrator) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewMigrator(config Config, invoker Invoker, clock Clock, opts ...Option) *Migrator {
	m := &Migrator{
		validator: NewValidator(config),
		invoker:   invoker,
		clock:     clock,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("migration")
	return m
}

func (m *Migrator) Validator() *Validator {
	return m.validator
}

// Prepare validates the accounts, reads the clock and builds the call without invoking it.
func (m *Migrator) Prepare(ctx context.Context, accounts Accounts, params Params) (solana.Instruction, error) {
	validated, err := m.validator.Validate(accounts, params)
	if err != nil {
		m.logger.Warn("account validation failed",
			zap.Stringer("market", accounts.Market.Address),
			zap.Error(err),
		)
		return nil, err
	}

	openTime, err := OpenTime(ctx, m.clock)
	if err != nil {
		return nil, err
	}

	ix, err := Build(NewRequest(params, openTime), validated)
	if err != nil {
		return nil, errors.Wrap(err, "build initialize2")
	}

	data, err := ix.Data()
	if err != nil {
		return nil, errors.Wrap(err, "encode initialize2")
	}
	m.logger.Debug("built initialize2",
		zap.Stringer("program", ix.ProgramID()),
		zap.Stringer("pool", accounts.Pool.Address),
		zap.Uint8("nonce", params.Nonce),
		zap.Uint64("open_time", openTime),
		zap.Uint64("init_quote_amount", params.InitQuoteAmount),
		zap.Uint64("init_base_amount", params.InitBaseAmount),
		zap.String("data", base58.Encode(data)),
	)
	return ix, nil
}

// CreatePool bootstraps the pool. Nothing is invoked unless every check passes;
// a failed invocation is returned as *ExternalCallError.
func (m *Migrator) CreatePool(ctx context.Context, accounts Accounts, params Params) error {
	ix, err := m.Prepare(ctx, accounts, params)
	if err != nil {
		return err
	}

	if err := m.invoker.Invoke(ctx, ix); err != nil {
		m.logger.Error("initialize2 failed",
			zap.Stringer("market", accounts.Market.Address),
			zap.Stringer("pool", accounts.Pool.Address),
			zap.Error(err),
		)
		return &ExternalCallError{Program: ix.ProgramID(), Err: err}
	}

	m.logger.Info("pool created",
		zap.Stringer("market", accounts.Market.Address),
		zap.Stringer("pool", accounts.Pool.Address),
		zap.Stringer("lp_mint", accounts.LpMint.Address),
	)
	return nil
}
