package migration

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	raydiumamm "github.com/krazyTry/raydium-go/raydium_amm"
	solanago "github.com/krazyTry/raydium-go/solana"
)

// PlanInput are the addresses a caller knows before deriving anything.
type PlanInput struct {
	Market         solana.PublicKey
	QuoteMint      solana.PublicKey
	BaseMint       solana.PublicKey
	Wallet         solana.PublicKey
	UserQuoteToken solana.PublicKey
	UserBaseToken  solana.PublicKey
	// FeeDestination defaults to Config.FeeDestination.
	FeeDestination solana.PublicKey
}

// Plan is the expected account set for a market, derived client side.
type Plan struct {
	Config      Config
	Input       PlanInput
	Keys        *raydiumamm.PoolKeys
	UserLpToken solanago.ProgramAddress
}

func NewPlan(config Config, in PlanInput) (*Plan, error) {
	if in.FeeDestination.IsZero() {
		in.FeeDestination = config.FeeDestination
	}
	if in.FeeDestination.IsZero() {
		return nil, fmt.Errorf("fee destination not set")
	}

	keys, err := raydiumamm.DerivePoolKeys(config.AmmProgram, in.Market)
	if err != nil {
		return nil, errors.Wrap(err, "derive pool keys")
	}
	userLp, err := DeriveUserLpToken(config, in.Wallet, keys.LpMint.Address)
	if err != nil {
		return nil, errors.Wrap(err, "derive user lp token")
	}
	return &Plan{Config: config, Input: in, Keys: keys, UserLpToken: userLp}, nil
}

// Nonce is the bump the amm authority was derived with.
func (p *Plan) Nonce() uint8 {
	return p.Keys.Authority.Bump
}

func (p *Plan) Params(initQuoteAmount, initBaseAmount uint64) Params {
	return Params{
		Nonce:           p.Nonce(),
		InitQuoteAmount: initQuoteAmount,
		InitBaseAmount:  initBaseAmount,
	}
}

// Accounts returns the planned account set with signer and writable flags set
// and owners left empty.
func (p *Plan) Accounts() Accounts {
	ref := func(address solana.PublicKey, writable bool) AccountRef {
		return AccountRef{Address: address, IsWritable: writable}
	}
	a := Accounts{
		AmmProgram:             ref(p.Config.AmmProgram, false),
		TokenProgram:           ref(p.Config.TokenProgram, false),
		AssociatedTokenProgram: ref(p.Config.AssociatedTokenProgram, false),
		SystemProgram:          ref(p.Config.SystemProgram, false),
		Rent:                   ref(p.Config.Rent, false),
		Pool:                   ref(p.Keys.Amm.Address, true),
		PoolAuthority:          ref(p.Keys.Authority.Address, false),
		OpenOrders:             ref(p.Keys.OpenOrders.Address, true),
		LpMint:                 ref(p.Keys.LpMint.Address, true),
		QuoteMint:              ref(p.Input.QuoteMint, false),
		BaseMint:               ref(p.Input.BaseMint, false),
		TargetOrders:           ref(p.Keys.TargetOrders.Address, true),
		PoolConfig:             ref(p.Keys.AmmConfig.Address, false),
		FeeDestination:         ref(p.Input.FeeDestination, true),
		MarketProgram:          ref(p.Config.MarketProgram, false),
		Market:                 ref(p.Input.Market, false),
		Wallet:                 ref(p.Input.Wallet, true),
		UserQuoteToken:         ref(p.Input.UserQuoteToken, true),
		UserBaseToken:          ref(p.Input.UserBaseToken, true),
		UserLpToken:            ref(p.UserLpToken.Address, true),
	}
	a.Wallet.IsSigner = true
	return a
}

// OwnerResolver looks up the owning program of each key; missing accounts resolve to the zero key.
type OwnerResolver interface {
	Owners(ctx context.Context, keys []solana.PublicKey) ([]solana.PublicKey, error)
}

// Resolve returns the planned accounts with owners filled in from resolver.
func (p *Plan) Resolve(ctx context.Context, resolver OwnerResolver) (Accounts, error) {
	accounts := p.Accounts()
	refs := accounts.refs()

	keys := make([]solana.PublicKey, len(refs))
	for i, r := range refs {
		keys[i] = r.ref.Address
	}
	owners, err := resolver.Owners(ctx, keys)
	if err != nil {
		return Accounts{}, errors.Wrap(err, "resolve account owners")
	}
	if len(owners) != len(keys) {
		return Accounts{}, fmt.Errorf("resolve account owners: got %d owners for %d keys", len(owners), len(keys))
	}
	for i, r := range refs {
		r.ref.Owner = owners[i]
	}
	return accounts, nil
}
