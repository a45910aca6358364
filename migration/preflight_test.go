package migration

import (
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestCheckBalances(t *testing.T) {
	e := newEnv(t)
	in := e.plan.Input

	quote, err := e.rt.TokenAccount(in.UserQuoteToken)
	require.NoError(t, err)
	base, err := e.rt.TokenAccount(in.UserBaseToken)
	require.NoError(t, err)

	assert.NoError(t, CheckBalances(in, e.params(), quote, base))

	params := e.params()
	params.InitBaseAmount = testBase + 1
	err = CheckBalances(in, params, quote, base)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// swapped accounts fail on both sides
	err = CheckBalances(in, e.params(), base, quote)
	require.Len(t, multierr.Errors(err), 2)
	assert.ErrorIs(t, err, ErrMintMismatch)

	err = CheckBalances(in, e.params(), nil, base)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestCheckBalancesTokenOwner(t *testing.T) {
	e := newEnv(t)
	in := e.plan.Input

	quote, err := e.rt.TokenAccount(in.UserQuoteToken)
	require.NoError(t, err)
	base, err := e.rt.TokenAccount(in.UserBaseToken)
	require.NoError(t, err)

	stolen := *quote
	stolen.Owner = solana.NewWallet().PublicKey()
	err = CheckBalances(in, e.params(), &stolen, base)

	var accountErr *AccountError
	require.True(t, errors.As(err, &accountErr))
	assert.Equal(t, RoleUserQuoteToken, accountErr.Role)
	assert.ErrorIs(t, err, ErrOwnerMismatch)
}
