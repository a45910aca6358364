package raydiumamm

import (
	"github.com/gagliardetto/solana-go"
)

var (
	// ProgramID is the Raydium liquidity pool v4 program on mainnet-beta.
	ProgramID       = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	DevnetProgramID = solana.MustPublicKeyFromBase58("HWy1jotHpo6UqeQxx49dpYYdQB8wj9Qk9MdxwjLvDHB8")

	// OpenBookProgramID is the order book program markets are created under.
	OpenBookProgramID       = solana.MustPublicKeyFromBase58("srmqPvymJeFKQ4zGQed1GFppgkRHL9kaELCbyksJtPX")
	DevnetOpenBookProgramID = solana.MustPublicKeyFromBase58("EoTcMgcDRTJVZDMZWBoU6rhYHZfkNTVEAfz3uUJRcYGj")

	// CreatePoolFeeAddress receives the pool creation fee.
	CreatePoolFeeAddress       = solana.MustPublicKeyFromBase58("7YttLkHDoNj9wyDur5pM1ejNaAvT9X4eqaYcHQqtj2G5")
	DevnetCreatePoolFeeAddress = solana.MustPublicKeyFromBase58("3XMrhbv989VxAMi3DErLV9eJht1pHppW5LbKxe9fkEFR")
)

const (
	Instruction_Initialize  uint8 = 0
	Instruction_Initialize2 uint8 = 1
)

// Initialize2DataSize is tag + nonce + open time + pc amount + coin amount.
const Initialize2DataSize = 1 + 1 + 8 + 8 + 8

var seed = struct {
	Amm          []byte
	Authority    []byte
	OpenOrders   []byte
	LpMint       []byte
	CoinVault    []byte
	PcVault      []byte
	TargetOrders []byte
	AmmConfig    []byte
}{
	Amm:          []byte("amm_associated_seed"),
	Authority:    []byte("amm authority"),
	OpenOrders:   []byte("open_order_associated_seed"),
	LpMint:       []byte("lp_mint_associated_seed"),
	CoinVault:    []byte("coin_vault_associated_seed"),
	PcVault:      []byte("pc_vault_associated_seed"),
	TargetOrders: []byte("target_associated_seed"),
	AmmConfig:    []byte("amm_config_account_seed"),
}
