package migration

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/raydium-go/sandbox"
)

const (
	testNow       int64  = 1_700_000_000
	testCreateFee uint64 = 400_000_000
	testQuote     uint64 = 4_000_000
	testBase      uint64 = 1_000_000
)

var (
	testSelf   = solana.MustPublicKeyFromBase58("6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P")
	testMarket = solana.MustPublicKeyFromBase58("8BnEgHoWFysVcuFFX7QztDmzuH8r5ZFvyP3sYwn1XTh6")
	testWallet = solana.MustPublicKeyFromBase58("CebN5WGQ4jvEPvsVU4EoHEpgzq1VV7AbicfhtW4xC9iM")
)

// env is a funded wallet, two mints and a market on an in-memory ledger running the pool program.
type env struct {
	rt       *sandbox.Runtime
	config   Config
	plan     *Plan
	accounts Accounts
}

func newEnv(t *testing.T) *env {
	t.Helper()
	config := DefaultConfig(testSelf)

	rt := sandbox.NewRuntime(sandbox.WithClock(testNow))
	rt.RegisterProgram(config.AmmProgram, sandbox.NewAmmV4(config.AmmProgram, testCreateFee))
	rt.RegisterProgram(config.MarketProgram, nil)
	rt.RegisterProgram(config.Self, nil)
	rt.SetAccount(testMarket, &sandbox.Account{Lamports: 1, Owner: config.MarketProgram, Data: make([]byte, 388)})
	rt.Fund(testWallet, 10*solana.LAMPORTS_PER_SOL)

	in := PlanInput{
		Market:         testMarket,
		QuoteMint:      solana.NewWallet().PublicKey(),
		BaseMint:       solana.NewWallet().PublicKey(),
		Wallet:         testWallet,
		UserQuoteToken: solana.NewWallet().PublicKey(),
		UserBaseToken:  solana.NewWallet().PublicKey(),
	}
	require.NoError(t, rt.CreateMint(in.QuoteMint, 6, testWallet))
	require.NoError(t, rt.CreateMint(in.BaseMint, 9, testWallet))
	require.NoError(t, rt.CreateTokenAccount(in.UserQuoteToken, in.QuoteMint, testWallet, 10_000_000))
	require.NoError(t, rt.CreateTokenAccount(in.UserBaseToken, in.BaseMint, testWallet, testBase))

	plan, err := NewPlan(config, in)
	require.NoError(t, err)
	accounts, err := plan.Resolve(context.Background(), rt)
	require.NoError(t, err)

	return &env{rt: rt, config: config, plan: plan, accounts: accounts}
}

func (e *env) params() Params {
	return e.plan.Params(testQuote, testBase)
}

// atomic runs fn as one ledger transaction signed by the wallet, with a migrator bound to it.
func (e *env) atomic(t *testing.T, fn func(tx *sandbox.Tx, m *Migrator) error) error {
	t.Helper()
	return e.rt.Atomic(context.Background(), []solana.PublicKey{testWallet}, func(tx *sandbox.Tx) error {
		return fn(tx, NewMigrator(e.config, tx, e.rt))
	})
}

func (e *env) createPool(t *testing.T, params Params) error {
	t.Helper()
	return e.atomic(t, func(_ *sandbox.Tx, m *Migrator) error {
		return m.CreatePool(context.Background(), e.accounts, params)
	})
}

func (e *env) tokenBalance(t *testing.T, address solana.PublicKey) uint64 {
	t.Helper()
	account, err := e.rt.TokenAccount(address)
	require.NoError(t, err)
	return account.Amount
}

type spyInvoker struct {
	calls []solana.Instruction
	err   error
}

func (s *spyInvoker) Invoke(_ context.Context, ix solana.Instruction) error {
	s.calls = append(s.calls, ix)
	return s.err
}

func fixedClock(ts int64) Clock {
	return ClockFunc(func(context.Context) (int64, error) { return ts, nil })
}

func metaKeys(metas []*solana.AccountMeta) []solana.PublicKey {
	keys := make([]solana.PublicKey, len(metas))
	for i, meta := range metas {
		keys[i] = meta.PublicKey
	}
	return keys
}
