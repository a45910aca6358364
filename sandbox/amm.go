package sandbox

import (
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	raydiumamm "github.com/krazyTry/raydium-go/raydium_amm"
)

const (
	OpenOrdersSize   = 3228
	TargetOrdersSize = 2208
)

// AmmV4 stands in for the liquidity pool v4 program. It enforces what the real
// program arbitrates for initialize2 (derived addresses, one pool per market,
// funding) and records the pool state; it does not run pool math or touch the
// order book. Tokens move directly rather than through token program calls.
type AmmV4 struct {
	programID solana.PublicKey
	createFee uint64
}

func NewAmmV4(programID solana.PublicKey, createFee uint64) *AmmV4 {
	return &AmmV4{programID: programID, createFee: createFee}
}

func (p *AmmV4) ProgramID() solana.PublicKey {
	return p.programID
}

func (p *AmmV4) Execute(ctx *InvokeContext, data []byte) error {
	if len(data) == 0 {
		return ErrInvalidInstructionData
	}
	switch data[0] {
	case raydiumamm.Instruction_Initialize2:
		return p.initialize2(ctx, data)
	default:
		return fmt.Errorf("%w: unsupported instruction %d", ErrInvalidInstructionData, data[0])
	}
}

func (p *AmmV4) checkKeys(ctx *InvokeContext, nonce uint8) error {
	authority, err := raydiumamm.AuthorityWithNonce(p.programID, nonce)
	if err != nil || !authority.Equals(ctx.Key(raydiumamm.Initialize2Authority)) {
		return fmt.Errorf("%w: amm authority", ErrInvalidSeeds)
	}

	keys, err := raydiumamm.DerivePoolKeys(p.programID, ctx.Key(raydiumamm.Initialize2Market))
	if err != nil {
		return err
	}
	for _, expect := range []struct {
		index int
		key   solana.PublicKey
		name  string
	}{
		{raydiumamm.Initialize2Amm, keys.Amm.Address, "amm"},
		{raydiumamm.Initialize2OpenOrders, keys.OpenOrders.Address, "open orders"},
		{raydiumamm.Initialize2LpMint, keys.LpMint.Address, "lp mint"},
		{raydiumamm.Initialize2TargetOrders, keys.TargetOrders.Address, "target orders"},
		{raydiumamm.Initialize2AmmConfig, keys.AmmConfig.Address, "amm config"},
	} {
		if !ctx.Key(expect.index).Equals(expect.key) {
			return fmt.Errorf("%w: %s", ErrInvalidSeeds, expect.name)
		}
	}
	return nil
}

// debit moves amount out of the user's token account at index.
func debit(ctx *InvokeContext, index int, mint, wallet solana.PublicKey, amount uint64) error {
	account := ctx.Account(index)
	tokenAccount, err := decodeTokenAccount(account)
	if err != nil {
		return err
	}
	if !tokenAccount.Mint.Equals(mint) || !tokenAccount.Owner.Equals(wallet) {
		return fmt.Errorf("%w: token account %s", ErrInvalidAccountData, ctx.Key(index))
	}
	if tokenAccount.Amount < amount {
		return fmt.Errorf("%w: token account %s has %d, needs %d", ErrInsufficientFunds, ctx.Key(index), tokenAccount.Amount, amount)
	}
	tokenAccount.Amount -= amount

	updated, err := encodeTokenAccount(&tokenAccount.Account)
	if err != nil {
		return err
	}
	updated.Lamports = account.Lamports
	return ctx.Store(index, updated)
}

func (p *AmmV4) initialize2(ctx *InvokeContext, data []byte) error {
	args, err := raydiumamm.DecodeInitialize2(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstructionData, err)
	}
	if ctx.Len() < raydiumamm.Initialize2AccountsLen {
		return ErrNotEnoughAccountKeys
	}
	if args.InitPcAmount == 0 || args.InitCoinAmount == 0 {
		return fmt.Errorf("%w: zero initial amount", ErrInvalidInstructionData)
	}
	if err := p.checkKeys(ctx, args.Nonce); err != nil {
		return err
	}
	if !ctx.IsSigner(raydiumamm.Initialize2UserWallet) {
		return ErrMissingRequiredSignature
	}

	if existing := ctx.Account(raydiumamm.Initialize2Amm); existing != nil && existing.Owner.Equals(p.programID) {
		ctx.Logf("amm %s already initialized", ctx.Key(raydiumamm.Initialize2Amm))
		return ErrAccountAlreadyInitialized
	}

	market := ctx.Account(raydiumamm.Initialize2Market)
	if market == nil || !market.Owner.Equals(ctx.Key(raydiumamm.Initialize2MarketProgram)) {
		return fmt.Errorf("%w: market", ErrIncorrectProgramID)
	}
	pcMint, err := decodeMint(ctx.Account(raydiumamm.Initialize2PcMint))
	if err != nil {
		return fmt.Errorf("pc mint: %w", err)
	}
	coinMint, err := decodeMint(ctx.Account(raydiumamm.Initialize2CoinMint))
	if err != nil {
		return fmt.Errorf("coin mint: %w", err)
	}

	wallet := ctx.Key(raydiumamm.Initialize2UserWallet)
	pcMintKey := ctx.Key(raydiumamm.Initialize2PcMint)
	coinMintKey := ctx.Key(raydiumamm.Initialize2CoinMint)

	if err := debit(ctx, raydiumamm.Initialize2UserTokenPc, pcMintKey, wallet, args.InitPcAmount); err != nil {
		return err
	}
	if err := debit(ctx, raydiumamm.Initialize2UserTokenCoin, coinMintKey, wallet, args.InitCoinAmount); err != nil {
		return err
	}

	rent := MinimumBalance(raydiumamm.AmmInfoSize) +
		MinimumBalance(OpenOrdersSize) +
		MinimumBalance(TargetOrdersSize) +
		MinimumBalance(token.MINT_SIZE) +
		MinimumBalance(165)
	payer := ctx.Account(raydiumamm.Initialize2UserWallet)
	if payer == nil || payer.Lamports < rent+p.createFee {
		return fmt.Errorf("%w: wallet cannot pay rent and create fee", ErrInsufficientFunds)
	}
	payer.Lamports -= rent + p.createFee
	if err := ctx.Store(raydiumamm.Initialize2UserWallet, payer); err != nil {
		return err
	}
	if p.createFee > 0 {
		fee := ctx.Account(raydiumamm.Initialize2FeeDestination)
		if fee == nil {
			fee = &Account{Owner: solana.SystemProgramID}
		}
		fee.Lamports += p.createFee
		if err := ctx.Store(raydiumamm.Initialize2FeeDestination, fee); err != nil {
			return err
		}
	}

	lpAmount := new(big.Int).Sqrt(new(big.Int).Mul(
		new(big.Int).SetUint64(args.InitPcAmount),
		new(big.Int).SetUint64(args.InitCoinAmount),
	)).Uint64()

	now := ctx.Now()
	openTime := args.OpenTime
	status := raydiumamm.AmmStatusWaitingTrade
	if now >= 0 && openTime <= uint64(now) {
		openTime = uint64(now)
		status = raydiumamm.AmmStatusInitialized
	}

	authority := ctx.Key(raydiumamm.Initialize2Authority)
	lpMint := ctx.Key(raydiumamm.Initialize2LpMint)
	keys, err := raydiumamm.DerivePoolKeys(p.programID, ctx.Key(raydiumamm.Initialize2Market))
	if err != nil {
		return err
	}

	info := &raydiumamm.AmmInfo{
		Status:        uint64(status),
		Nonce:         uint64(args.Nonce),
		CoinDecimals:  uint64(coinMint.Decimals),
		PcDecimals:    uint64(pcMint.Decimals),
		Fees:          raydiumamm.DefaultFees,
		StateData:     raydiumamm.StateData{PoolOpenTime: openTime},
		CoinVault:     keys.CoinVault.Address,
		PcVault:       keys.PcVault.Address,
		CoinVaultMint: coinMintKey,
		PcVaultMint:   pcMintKey,
		LpMint:        lpMint,
		OpenOrders:    ctx.Key(raydiumamm.Initialize2OpenOrders),
		Market:        ctx.Key(raydiumamm.Initialize2Market),
		MarketProgram: ctx.Key(raydiumamm.Initialize2MarketProgram),
		TargetOrders:  ctx.Key(raydiumamm.Initialize2TargetOrders),
		LpAmount:      lpAmount,
	}
	infoData, err := info.Encode()
	if err != nil {
		return err
	}
	if err := ctx.Create(raydiumamm.Initialize2Amm, &Account{Lamports: MinimumBalance(len(infoData)), Owner: p.programID, Data: infoData}); err != nil {
		return err
	}
	if err := ctx.Create(raydiumamm.Initialize2OpenOrders, &Account{Lamports: MinimumBalance(OpenOrdersSize), Owner: p.programID, Data: make([]byte, OpenOrdersSize)}); err != nil {
		return err
	}
	if err := ctx.Create(raydiumamm.Initialize2TargetOrders, &Account{Lamports: MinimumBalance(TargetOrdersSize), Owner: p.programID, Data: make([]byte, TargetOrdersSize)}); err != nil {
		return err
	}

	mintAccount, err := encodeMint(&token.Mint{
		MintAuthority: &authority,
		Supply:        lpAmount,
		Decimals:      coinMint.Decimals,
		IsInitialized: true,
	})
	if err != nil {
		return err
	}
	if err := ctx.Create(raydiumamm.Initialize2LpMint, mintAccount); err != nil {
		return err
	}

	lpAccount, err := encodeTokenAccount(&token.Account{
		Mint:   lpMint,
		Owner:  wallet,
		Amount: lpAmount,
		State:  token.Initialized,
	})
	if err != nil {
		return err
	}
	if err := ctx.Create(raydiumamm.Initialize2UserTokenLp, lpAccount); err != nil {
		return err
	}

	ctx.Logf("initialize2: pool %s open_time %d lp %d", ctx.Key(raydiumamm.Initialize2Amm), openTime, lpAmount)
	return nil
}
