package migration

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	raydiumamm "github.com/krazyTry/raydium-go/raydium_amm"
	"github.com/krazyTry/raydium-go/sandbox"
)

func TestCreatePool(t *testing.T) {
	e := newEnv(t)
	assert.Equal(t, "5JU2vL762yonJNXSpWsDje8912Ei8vqAJNh74UsnY6oz", e.accounts.UserLpToken.Address.String())

	require.NoError(t, e.createPool(t, e.params()))

	account, ok := e.rt.Account(e.accounts.Pool.Address)
	require.True(t, ok)
	info, err := raydiumamm.DecodeAmmInfo(account.Data)
	require.NoError(t, err)
	assert.True(t, info.IsInitialized())
	assert.Equal(t, uint64(testNow), info.StateData.PoolOpenTime)
	assert.Equal(t, e.accounts.LpMint.Address, info.LpMint)
	assert.Equal(t, e.accounts.QuoteMint.Address, info.PcVaultMint)
	assert.Equal(t, e.accounts.BaseMint.Address, info.CoinVaultMint)

	assert.Equal(t, uint64(10_000_000)-testQuote, e.tokenBalance(t, e.accounts.UserQuoteToken.Address))
	assert.Equal(t, uint64(0), e.tokenBalance(t, e.accounts.UserBaseToken.Address))
	assert.Equal(t, uint64(2_000_000), e.tokenBalance(t, e.accounts.UserLpToken.Address))
}

func TestCreatePoolRejectsBeforeInvoking(t *testing.T) {
	e := newEnv(t)
	spy := &spyInvoker{}
	m := NewMigrator(e.config, spy, fixedClock(testNow), WithLogger(zaptest.NewLogger(t)))

	forged := e.accounts
	forged.Pool.Address = solana.NewWallet().PublicKey()
	err := m.CreatePool(context.Background(), forged, e.params())
	assert.ErrorIs(t, err, ErrAddressMismatch)

	params := e.params()
	params.Nonce = 255
	err = m.CreatePool(context.Background(), e.accounts, params)
	assert.ErrorIs(t, err, ErrNonceMismatch)

	assert.Empty(t, spy.calls)
}

func TestCreatePoolClock(t *testing.T) {
	e := newEnv(t)
	clockErr := errors.New("rpc down")

	for _, tc := range []struct {
		name  string
		clock Clock
		want  error
	}{
		{"negative", fixedClock(-1), ErrNegativeTimestamp},
		{"unavailable", ClockFunc(func(context.Context) (int64, error) { return 0, clockErr }), clockErr},
		{"missing", nil, ErrClockUnavailable},
	} {
		t.Run(tc.name, func(t *testing.T) {
			spy := &spyInvoker{}
			err := NewMigrator(e.config, spy, tc.clock).CreatePool(context.Background(), e.accounts, e.params())
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, spy.calls)
		})
	}
}

func TestCreatePoolPassesCallToInvoker(t *testing.T) {
	e := newEnv(t)
	spy := &spyInvoker{}
	m := NewMigrator(e.config, spy, fixedClock(1_234), WithLogger(zaptest.NewLogger(t)))

	require.NoError(t, m.CreatePool(context.Background(), e.accounts, e.params()))
	require.Len(t, spy.calls, 1)

	data, err := spy.calls[0].Data()
	require.NoError(t, err)
	args, err := raydiumamm.DecodeInitialize2(data)
	require.NoError(t, err)
	assert.Equal(t, raydiumamm.Initialize2Args{
		Nonce:          254,
		OpenTime:       1_234,
		InitPcAmount:   testQuote,
		InitCoinAmount: testBase,
	}, *args)
}

func TestCreatePoolInvokerFailure(t *testing.T) {
	e := newEnv(t)
	cause := errors.New("boom")
	m := NewMigrator(e.config, &spyInvoker{err: cause}, fixedClock(testNow))

	err := m.CreatePool(context.Background(), e.accounts, e.params())
	assert.ErrorIs(t, err, ErrExternalCallFailure)
	assert.ErrorIs(t, err, cause)

	var callErr *ExternalCallError
	require.True(t, errors.As(err, &callErr))
	assert.Equal(t, e.config.AmmProgram, callErr.Program)
}

func TestCreatePoolTwice(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.createPool(t, e.plan.Params(1_000, 1_000)))
	before, _ := e.rt.Account(e.accounts.Pool.Address)

	err := e.createPool(t, e.plan.Params(1_000, 1_000))
	assert.ErrorIs(t, err, ErrExternalCallFailure)
	assert.ErrorIs(t, err, sandbox.ErrAccountAlreadyInitialized)

	after, _ := e.rt.Account(e.accounts.Pool.Address)
	assert.Equal(t, before, after)
	assert.Equal(t, uint64(10_000_000-1_000), e.tokenBalance(t, e.accounts.UserQuoteToken.Address))
}

func TestCreatePoolFailureAbortsCaller(t *testing.T) {
	e := newEnv(t)
	recipient := solana.NewWallet().PublicKey()
	before, _ := e.rt.Account(testWallet)

	err := e.atomic(t, func(tx *sandbox.Tx, m *Migrator) error {
		// work done by the caller earlier in the same operation
		if err := tx.Invoke(context.Background(), system.NewTransferInstruction(1_000, testWallet, recipient).Build()); err != nil {
			return err
		}
		return m.CreatePool(context.Background(), e.accounts, e.plan.Params(testQuote, testBase+1))
	})
	assert.ErrorIs(t, err, ErrExternalCallFailure)
	assert.ErrorIs(t, err, sandbox.ErrInsufficientFunds)

	_, ok := e.rt.Account(recipient)
	assert.False(t, ok)
	after, _ := e.rt.Account(testWallet)
	assert.Equal(t, before.Lamports, after.Lamports)
	assert.Equal(t, uint64(10_000_000), e.tokenBalance(t, e.accounts.UserQuoteToken.Address))
	_, ok = e.rt.Account(e.accounts.Pool.Address)
	assert.False(t, ok)
}

func TestCreatePoolFailureIgnoredByCaller(t *testing.T) {
	e := newEnv(t)

	err := e.atomic(t, func(_ *sandbox.Tx, m *Migrator) error {
		failed := m.CreatePool(context.Background(), e.accounts, e.plan.Params(testQuote, testBase+1))
		assert.ErrorIs(t, failed, ErrExternalCallFailure)
		return nil
	})
	assert.ErrorIs(t, err, sandbox.ErrInsufficientFunds)

	assert.Equal(t, uint64(10_000_000), e.tokenBalance(t, e.accounts.UserQuoteToken.Address))
	_, ok := e.rt.Account(e.accounts.Pool.Address)
	assert.False(t, ok)
}

func TestPrepareDoesNotInvoke(t *testing.T) {
	e := newEnv(t)
	spy := &spyInvoker{}
	m := NewMigrator(e.config, spy, e.rt)

	ix, err := m.Prepare(context.Background(), e.accounts, e.params())
	require.NoError(t, err)
	assert.Equal(t, e.accounts.Addresses(), metaKeys(ix.Accounts()))
	assert.Empty(t, spy.calls)
	assert.Equal(t, e.config, m.Validator().Config())
}
