package raydiumamm

import (
	"github.com/gagliardetto/solana-go"
	solanago "github.com/krazyTry/raydium-go/solana"
)

func deriveMarketPDA(programID, market solana.PublicKey, s []byte) (solanago.ProgramAddress, error) {
	return solanago.DeriveProgramAddress([][]byte{programID.Bytes(), market.Bytes(), s}, programID)
}

// Derives the amm (pool state) account of a market
func DeriveAmmPDA(programID, market solana.PublicKey) (solanago.ProgramAddress, error) {
	return deriveMarketPDA(programID, market, seed.Amm)
}

// Derives the amm authority; its bump is the nonce passed to initialize2
func DeriveAuthorityPDA(programID solana.PublicKey) (solanago.ProgramAddress, error) {
	return solanago.DeriveProgramAddress([][]byte{seed.Authority}, programID)
}

// AuthorityWithNonce recomputes the amm authority from an explicit nonce, the way the program checks it
func AuthorityWithNonce(programID solana.PublicKey, nonce uint8) (solana.PublicKey, error) {
	return solanago.CreateProgramAddress([][]byte{seed.Authority, {nonce}}, programID)
}

func DeriveOpenOrdersPDA(programID, market solana.PublicKey) (solanago.ProgramAddress, error) {
	return deriveMarketPDA(programID, market, seed.OpenOrders)
}

func DeriveLpMintPDA(programID, market solana.PublicKey) (solanago.ProgramAddress, error) {
	return deriveMarketPDA(programID, market, seed.LpMint)
}

func DeriveCoinVaultPDA(programID, market solana.PublicKey) (solanago.ProgramAddress, error) {
	return deriveMarketPDA(programID, market, seed.CoinVault)
}

func DerivePcVaultPDA(programID, market solana.PublicKey) (solanago.ProgramAddress, error) {
	return deriveMarketPDA(programID, market, seed.PcVault)
}

func DeriveTargetOrdersPDA(programID, market solana.PublicKey) (solanago.ProgramAddress, error) {
	return deriveMarketPDA(programID, market, seed.TargetOrders)
}

// Derives the global amm config account
func DeriveAmmConfigPDA(programID solana.PublicKey) (solanago.ProgramAddress, error) {
	return solanago.DeriveProgramAddress([][]byte{seed.AmmConfig}, programID)
}

// PoolKeys are the program derived accounts of one market's pool.
type PoolKeys struct {
	Amm          solanago.ProgramAddress
	Authority    solanago.ProgramAddress
	OpenOrders   solanago.ProgramAddress
	LpMint       solanago.ProgramAddress
	CoinVault    solanago.ProgramAddress
	PcVault      solanago.ProgramAddress
	TargetOrders solanago.ProgramAddress
	AmmConfig    solanago.ProgramAddress
}

func DerivePoolKeys(programID, market solana.PublicKey) (*PoolKeys, error) {
	var (
		keys PoolKeys
		err  error
	)
	if keys.Amm, err = DeriveAmmPDA(programID, market); err != nil {
		return nil, err
	}
	if keys.Authority, err = DeriveAuthorityPDA(programID); err != nil {
		return nil, err
	}
	if keys.OpenOrders, err = DeriveOpenOrdersPDA(programID, market); err != nil {
		return nil, err
	}
	if keys.LpMint, err = DeriveLpMintPDA(programID, market); err != nil {
		return nil, err
	}
	if keys.CoinVault, err = DeriveCoinVaultPDA(programID, market); err != nil {
		return nil, err
	}
	if keys.PcVault, err = DerivePcVaultPDA(programID, market); err != nil {
		return nil, err
	}
	if keys.TargetOrders, err = DeriveTargetOrdersPDA(programID, market); err != nil {
		return nil, err
	}
	if keys.AmmConfig, err = DeriveAmmConfigPDA(programID); err != nil {
		return nil, err
	}
	return &keys, nil
}
