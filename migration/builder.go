package migration

import (
	"github.com/gagliardetto/solana-go"

	raydiumamm "github.com/krazyTry/raydium-go/raydium_amm"
)

// Build assembles the initialize2 call from a request and a validated account set.
func Build(request Request, validated *ValidatedAccounts) (solana.Instruction, error) {
	if validated == nil {
		return nil, ErrNotValidated
	}
	a := validated.accounts
	return raydiumamm.NewInitialize2Instruction(a.AmmProgram.Address, request.args(), &raydiumamm.Initialize2Accounts{
		AmmProgram:             a.AmmProgram.Address,
		TokenProgram:           a.TokenProgram.Address,
		AssociatedTokenProgram: a.AssociatedTokenProgram.Address,
		SystemProgram:          a.SystemProgram.Address,
		Rent:                   a.Rent.Address,
		Amm:                    a.Pool.Address,
		Authority:              a.PoolAuthority.Address,
		OpenOrders:             a.OpenOrders.Address,
		LpMint:                 a.LpMint.Address,
		PcMint:                 a.QuoteMint.Address,
		CoinMint:               a.BaseMint.Address,
		TargetOrders:           a.TargetOrders.Address,
		AmmConfig:              a.PoolConfig.Address,
		FeeDestination:         a.FeeDestination.Address,
		MarketProgram:          a.MarketProgram.Address,
		Market:                 a.Market.Address,
		UserWallet:             a.Wallet.Address,
		UserTokenPc:            a.UserQuoteToken.Address,
		UserTokenCoin:          a.UserBaseToken.Address,
		UserTokenLp:            a.UserLpToken.Address,
	})
}
