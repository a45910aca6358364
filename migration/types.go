package migration

import (
	"github.com/gagliardetto/solana-go"
	raydiumamm "github.com/krazyTry/raydium-go/raydium_amm"
)

// Role names an account slot of the pool bootstrap call.
type Role string

const (
	RoleAmmProgram             Role = "amm_program"
	RoleTokenProgram           Role = "token_program"
	RoleAssociatedTokenProgram Role = "associated_token_program"
	RoleSystemProgram          Role = "system_program"
	RoleRent                   Role = "sysvar_rent"
	RolePool                   Role = "amm_pool"
	RolePoolAuthority          Role = "amm_authority"
	RoleOpenOrders             Role = "amm_open_orders"
	RoleLpMint                 Role = "amm_lp_mint"
	RoleQuoteMint              Role = "quote_mint"
	RoleBaseMint               Role = "base_mint"
	RoleTargetOrders           Role = "amm_target_orders"
	RolePoolConfig             Role = "amm_config"
	RoleFeeDestination         Role = "fee_destination"
	RoleMarketProgram          Role = "market_program"
	RoleMarket                 Role = "market"
	RoleWallet                 Role = "wallet"
	RoleUserQuoteToken         Role = "user_quote_token"
	RoleUserBaseToken          Role = "user_base_token"
	RoleUserLpToken            Role = "user_lp_token"
)

// AccountRef is an account as handed in by the caller.
type AccountRef struct {
	Address    solana.PublicKey
	Owner      solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// Accounts is the full account set of one pool bootstrap.
type Accounts struct {
	AmmProgram             AccountRef
	TokenProgram           AccountRef
	AssociatedTokenProgram AccountRef
	SystemProgram          AccountRef
	Rent                   AccountRef
	Pool                   AccountRef
	PoolAuthority          AccountRef
	OpenOrders             AccountRef
	LpMint                 AccountRef
	QuoteMint              AccountRef
	BaseMint               AccountRef
	TargetOrders           AccountRef
	PoolConfig             AccountRef
	FeeDestination         AccountRef
	MarketProgram          AccountRef
	Market                 AccountRef
	Wallet                 AccountRef
	UserQuoteToken         AccountRef
	UserBaseToken          AccountRef
	UserLpToken            AccountRef
}

type roleRef struct {
	role Role
	ref  *AccountRef
}

// refs lists the accounts in call order.
func (a *Accounts) refs() []roleRef {
	return []roleRef{
		{RoleAmmProgram, &a.AmmProgram},
		{RoleTokenProgram, &a.TokenProgram},
		{RoleAssociatedTokenProgram, &a.AssociatedTokenProgram},
		{RoleSystemProgram, &a.SystemProgram},
		{RoleRent, &a.Rent},
		{RolePool, &a.Pool},
		{RolePoolAuthority, &a.PoolAuthority},
		{RoleOpenOrders, &a.OpenOrders},
		{RoleLpMint, &a.LpMint},
		{RoleQuoteMint, &a.QuoteMint},
		{RoleBaseMint, &a.BaseMint},
		{RoleTargetOrders, &a.TargetOrders},
		{RolePoolConfig, &a.PoolConfig},
		{RoleFeeDestination, &a.FeeDestination},
		{RoleMarketProgram, &a.MarketProgram},
		{RoleMarket, &a.Market},
		{RoleWallet, &a.Wallet},
		{RoleUserQuoteToken, &a.UserQuoteToken},
		{RoleUserBaseToken, &a.UserBaseToken},
		{RoleUserLpToken, &a.UserLpToken},
	}
}

// RoleAccount pairs an account with its slot.
type RoleAccount struct {
	Role    Role
	Account AccountRef
}

// Entries returns the accounts with their roles in call order.
func (a *Accounts) Entries() []RoleAccount {
	refs := a.refs()
	out := make([]RoleAccount, len(refs))
	for i, r := range refs {
		out[i] = RoleAccount{Role: r.role, Account: *r.ref}
	}
	return out
}

// Addresses returns the account addresses in call order.
func (a *Accounts) Addresses() []solana.PublicKey {
	refs := a.refs()
	out := make([]solana.PublicKey, len(refs))
	for i, r := range refs {
		out[i] = r.ref.Address
	}
	return out
}

// Params are the caller supplied entry point parameters.
type Params struct {
	Nonce           uint8
	InitQuoteAmount uint64
	InitBaseAmount  uint64
}

// Request is Params completed with the open time read from the clock.
type Request struct {
	Nonce           uint8
	OpenTime        uint64
	InitQuoteAmount uint64
	InitBaseAmount  uint64
}

func NewRequest(params Params, openTime uint64) Request {
	return Request{
		Nonce:           params.Nonce,
		OpenTime:        openTime,
		InitQuoteAmount: params.InitQuoteAmount,
		InitBaseAmount:  params.InitBaseAmount,
	}
}

func (r Request) args() raydiumamm.Initialize2Args {
	return raydiumamm.Initialize2Args{
		Nonce:          r.Nonce,
		OpenTime:       r.OpenTime,
		InitPcAmount:   r.InitQuoteAmount,
		InitCoinAmount: r.InitBaseAmount,
	}
}

// Config holds the fixed identities accounts are checked against.
type Config struct {
	AmmProgram             solana.PublicKey
	TokenProgram           solana.PublicKey
	AssociatedTokenProgram solana.PublicKey
	SystemProgram          solana.PublicKey
	Rent                   solana.PublicKey
	MarketProgram          solana.PublicKey
	// Self is the calling program; the caller's LP token account is derived under it.
	Self solana.PublicKey
	// FeeDestination is checked only when set.
	FeeDestination solana.PublicKey
}

func DefaultConfig(self solana.PublicKey) Config {
	return Config{
		AmmProgram:             raydiumamm.ProgramID,
		TokenProgram:           solana.TokenProgramID,
		AssociatedTokenProgram: solana.SPLAssociatedTokenAccountProgramID,
		SystemProgram:          solana.SystemProgramID,
		Rent:                   solana.SysVarRentPubkey,
		MarketProgram:          raydiumamm.OpenBookProgramID,
		Self:                   self,
		FeeDestination:         raydiumamm.CreatePoolFeeAddress,
	}
}

func DevnetConfig(self solana.PublicKey) Config {
	c := DefaultConfig(self)
	c.AmmProgram = raydiumamm.DevnetProgramID
	c.MarketProgram = raydiumamm.DevnetOpenBookProgramID
	c.FeeDestination = raydiumamm.DevnetCreatePoolFeeAddress
	return c
}
