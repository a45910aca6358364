package migration

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	raydiumamm "github.com/krazyTry/raydium-go/raydium_amm"
	solanago "github.com/krazyTry/raydium-go/solana"
)

// ValidatedAccounts can only be obtained from Validator.Validate.
type ValidatedAccounts struct {
	accounts Accounts
}

func (v *ValidatedAccounts) Accounts() Accounts {
	return v.accounts
}

// Validator checks a caller supplied account set before anything is invoked.
// Each check is exposed as its own predicate.
type Validator struct {
	config Config
}

func NewValidator(config Config) *Validator {
	return &Validator{config: config}
}

func (v *Validator) Config() Config {
	return v.config
}

func checkAddress(role Role, ref AccountRef, expected solana.PublicKey) error {
	if !ref.Address.Equals(expected) {
		return &AccountError{Role: role, Expected: expected, Actual: ref.Address, Err: ErrAddressMismatch}
	}
	return nil
}

func checkDerived(role Role, ref AccountRef, derive func() (solanago.ProgramAddress, error)) error {
	pda, err := derive()
	if err != nil {
		return errors.Wrapf(err, "derive %s", role)
	}
	return checkAddress(role, ref, pda.Address)
}

func checkOwner(role Role, ref AccountRef, owner solana.PublicKey) error {
	if !ref.Owner.Equals(owner) {
		return &AccountError{Role: role, Expected: owner, Actual: ref.Owner, Err: ErrOwnerMismatch}
	}
	return nil
}

func CheckWritable(role Role, ref AccountRef) error {
	if !ref.IsWritable {
		return &AccountError{Role: role, Actual: ref.Address, Err: ErrNotWritable}
	}
	return nil
}

func (v *Validator) CheckAmmProgram(ref AccountRef) error {
	return checkAddress(RoleAmmProgram, ref, v.config.AmmProgram)
}

func (v *Validator) CheckTokenProgram(ref AccountRef) error {
	return checkAddress(RoleTokenProgram, ref, v.config.TokenProgram)
}

func (v *Validator) CheckAssociatedTokenProgram(ref AccountRef) error {
	return checkAddress(RoleAssociatedTokenProgram, ref, v.config.AssociatedTokenProgram)
}

func (v *Validator) CheckSystemProgram(ref AccountRef) error {
	return checkAddress(RoleSystemProgram, ref, v.config.SystemProgram)
}

func (v *Validator) CheckRent(ref AccountRef) error {
	return checkAddress(RoleRent, ref, v.config.Rent)
}

func (v *Validator) CheckMarketProgram(ref AccountRef) error {
	return checkAddress(RoleMarketProgram, ref, v.config.MarketProgram)
}

func (v *Validator) CheckPool(ref AccountRef, market solana.PublicKey) error {
	return checkDerived(RolePool, ref, func() (solanago.ProgramAddress, error) {
		return raydiumamm.DeriveAmmPDA(v.config.AmmProgram, market)
	})
}

func (v *Validator) CheckPoolAuthority(ref AccountRef) error {
	return checkDerived(RolePoolAuthority, ref, func() (solanago.ProgramAddress, error) {
		return raydiumamm.DeriveAuthorityPDA(v.config.AmmProgram)
	})
}

func (v *Validator) CheckOpenOrders(ref AccountRef, market solana.PublicKey) error {
	return checkDerived(RoleOpenOrders, ref, func() (solanago.ProgramAddress, error) {
		return raydiumamm.DeriveOpenOrdersPDA(v.config.AmmProgram, market)
	})
}

func (v *Validator) CheckLpMint(ref AccountRef, market solana.PublicKey) error {
	return checkDerived(RoleLpMint, ref, func() (solanago.ProgramAddress, error) {
		return raydiumamm.DeriveLpMintPDA(v.config.AmmProgram, market)
	})
}

func (v *Validator) CheckQuoteMint(ref AccountRef) error {
	return checkOwner(RoleQuoteMint, ref, v.config.TokenProgram)
}

func (v *Validator) CheckBaseMint(ref AccountRef) error {
	return checkOwner(RoleBaseMint, ref, v.config.TokenProgram)
}

func (v *Validator) CheckTargetOrders(ref AccountRef, market solana.PublicKey) error {
	return checkDerived(RoleTargetOrders, ref, func() (solanago.ProgramAddress, error) {
		return raydiumamm.DeriveTargetOrdersPDA(v.config.AmmProgram, market)
	})
}

func (v *Validator) CheckPoolConfig(ref AccountRef) error {
	return checkDerived(RolePoolConfig, ref, func() (solanago.ProgramAddress, error) {
		return raydiumamm.DeriveAmmConfigPDA(v.config.AmmProgram)
	})
}

func (v *Validator) CheckFeeDestination(ref AccountRef) error {
	if !v.config.FeeDestination.IsZero() {
		if err := checkAddress(RoleFeeDestination, ref, v.config.FeeDestination); err != nil {
			return err
		}
	}
	return CheckWritable(RoleFeeDestination, ref)
}

func (v *Validator) CheckMarket(ref AccountRef) error {
	return checkOwner(RoleMarket, ref, v.config.MarketProgram)
}

func (v *Validator) CheckWallet(ref AccountRef) error {
	if !ref.IsSigner {
		return &AccountError{Role: RoleWallet, Actual: ref.Address, Err: ErrSignerMissing}
	}
	return CheckWritable(RoleWallet, ref)
}

func (v *Validator) CheckUserQuoteToken(ref AccountRef) error {
	if err := checkOwner(RoleUserQuoteToken, ref, v.config.TokenProgram); err != nil {
		return err
	}
	return CheckWritable(RoleUserQuoteToken, ref)
}

func (v *Validator) CheckUserBaseToken(ref AccountRef) error {
	if err := checkOwner(RoleUserBaseToken, ref, v.config.TokenProgram); err != nil {
		return err
	}
	return CheckWritable(RoleUserBaseToken, ref)
}

// CheckUserLpToken expects the LP account derived from [wallet, token program, lp mint] under the calling program.
func (v *Validator) CheckUserLpToken(ref AccountRef, wallet, lpMint solana.PublicKey) error {
	return checkDerived(RoleUserLpToken, ref, func() (solanago.ProgramAddress, error) {
		return DeriveUserLpToken(v.config, wallet, lpMint)
	})
}

// CheckNonce requires nonce to be the canonical bump of the amm authority.
func (v *Validator) CheckNonce(nonce uint8) error {
	authority, err := raydiumamm.DeriveAuthorityPDA(v.config.AmmProgram)
	if err != nil {
		return errors.Wrap(err, "derive amm authority")
	}
	if authority.Bump != nonce {
		return errors.Wrapf(ErrNonceMismatch, "expected %d, got %d", authority.Bump, nonce)
	}
	return nil
}

func DeriveUserLpToken(config Config, wallet, lpMint solana.PublicKey) (solanago.ProgramAddress, error) {
	return solanago.DeriveProgramAddress([][]byte{wallet.Bytes(), config.TokenProgram.Bytes(), lpMint.Bytes()}, config.Self)
}

// checks lists every predicate in evaluation order.
func (v *Validator) checks(a *Accounts, params Params) []func() error {
	market := a.Market.Address
	return []func() error{
		func() error { return v.CheckAmmProgram(a.AmmProgram) },
		func() error { return v.CheckTokenProgram(a.TokenProgram) },
		func() error { return v.CheckAssociatedTokenProgram(a.AssociatedTokenProgram) },
		func() error { return v.CheckSystemProgram(a.SystemProgram) },
		func() error { return v.CheckRent(a.Rent) },
		func() error { return v.CheckMarketProgram(a.MarketProgram) },
		func() error { return v.CheckPool(a.Pool, market) },
		func() error { return v.CheckPoolAuthority(a.PoolAuthority) },
		func() error { return v.CheckOpenOrders(a.OpenOrders, market) },
		func() error { return v.CheckLpMint(a.LpMint, market) },
		func() error { return v.CheckQuoteMint(a.QuoteMint) },
		func() error { return v.CheckBaseMint(a.BaseMint) },
		func() error { return v.CheckTargetOrders(a.TargetOrders, market) },
		func() error { return v.CheckPoolConfig(a.PoolConfig) },
		func() error { return v.CheckFeeDestination(a.FeeDestination) },
		func() error { return v.CheckMarket(a.Market) },
		func() error { return v.CheckUserQuoteToken(a.UserQuoteToken) },
		func() error { return v.CheckUserBaseToken(a.UserBaseToken) },
		func() error { return v.CheckUserLpToken(a.UserLpToken, a.Wallet.Address, a.LpMint.Address) },
		func() error { return v.CheckWallet(a.Wallet) },
		func() error { return CheckWritable(RolePool, a.Pool) },
		func() error { return CheckWritable(RoleOpenOrders, a.OpenOrders) },
		func() error { return CheckWritable(RoleLpMint, a.LpMint) },
		func() error { return CheckWritable(RoleTargetOrders, a.TargetOrders) },
		func() error { return CheckWritable(RoleUserLpToken, a.UserLpToken) },
		func() error { return v.CheckNonce(params.Nonce) },
	}
}

// Validate runs every check in order and stops at the first failure.
func (v *Validator) Validate(accounts Accounts, params Params) (*ValidatedAccounts, error) {
	for _, check := range v.checks(&accounts, params) {
		if err := check(); err != nil {
			return nil, err
		}
	}
	return &ValidatedAccounts{accounts: accounts}, nil
}

// ValidateAll runs every check and returns all failures combined.
func (v *Validator) ValidateAll(accounts Accounts, params Params) error {
	var errs error
	for _, check := range v.checks(&accounts, params) {
		errs = multierr.Append(errs, check())
	}
	return errs
}
