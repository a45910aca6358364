package migration

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	solanago "github.com/krazyTry/raydium-go/solana"
)

// Preflight loads the caller's token accounts and checks they can fund the pool.
func Preflight(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType, plan *Plan, params Params) error {
	accounts, err := solanago.GetMultipleTokenAccount(ctx, rpcClient, commitment, plan.Input.UserQuoteToken, plan.Input.UserBaseToken)
	if err != nil {
		return errors.Wrap(err, "load user token accounts")
	}
	return CheckBalances(plan.Input, params, accounts[0], accounts[1])
}

// CheckBalances verifies mint, token owner and balance of both funding accounts.
func CheckBalances(in PlanInput, params Params, quote, base *solanago.TokenAccount) error {
	return multierr.Combine(
		checkFunding(RoleUserQuoteToken, in.UserQuoteToken, quote, in.QuoteMint, in.Wallet, params.InitQuoteAmount),
		checkFunding(RoleUserBaseToken, in.UserBaseToken, base, in.BaseMint, in.Wallet, params.InitBaseAmount),
	)
}

func checkFunding(role Role, address solana.PublicKey, account *solanago.TokenAccount, mint, wallet solana.PublicKey, amount uint64) error {
	if account == nil {
		return &AccountError{Role: role, Actual: address, Err: ErrAccountNotFound}
	}
	if !account.Mint.Equals(mint) {
		return &AccountError{Role: role, Expected: mint, Actual: account.Mint, Err: ErrMintMismatch}
	}
	if !account.Owner.Equals(wallet) {
		return &AccountError{Role: role, Expected: wallet, Actual: account.Owner, Err: ErrOwnerMismatch}
	}
	if account.Amount < amount {
		return errors.Wrapf(&AccountError{Role: role, Actual: address, Err: ErrInsufficientBalance},
			"have %d, need %d", account.Amount, amount)
	}
	return nil
}
