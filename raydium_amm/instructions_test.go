package raydiumamm

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func le(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

func TestInitialize2ArgsData(t *testing.T) {
	args := Initialize2Args{
		Nonce:          3,
		OpenTime:       1_700_000_000,
		InitPcAmount:   500_000,
		InitCoinAmount: 1_000_000,
	}
	data, err := args.Data()
	require.NoError(t, err)

	want := []byte{Instruction_Initialize2, 0x03}
	want = append(want, le(1_700_000_000)...)
	want = append(want, le(500_000)...)
	want = append(want, le(1_000_000)...)
	assert.Equal(t, want, data)
	assert.Len(t, data, Initialize2DataSize)

	decoded, err := DecodeInitialize2(data)
	require.NoError(t, err)
	assert.Equal(t, args, *decoded)
}

func TestDecodeInitialize2Invalid(t *testing.T) {
	_, err := DecodeInitialize2([]byte{Instruction_Initialize2, 1})
	assert.ErrorIs(t, err, ErrInvalidInstructionData)

	data := make([]byte, Initialize2DataSize)
	data[0] = Instruction_Initialize
	_, err = DecodeInitialize2(data)
	assert.ErrorIs(t, err, ErrInvalidInstructionData)
}

func TestNewInitialize2Instruction(t *testing.T) {
	keys := make([]solana.PublicKey, Initialize2AccountsLen)
	for i := range keys {
		keys[i] = solana.NewWallet().PublicKey()
	}
	accounts := &Initialize2Accounts{
		AmmProgram:             keys[Initialize2AmmProgram],
		TokenProgram:           keys[Initialize2TokenProgram],
		AssociatedTokenProgram: keys[Initialize2AssociatedTokenProgram],
		SystemProgram:          keys[Initialize2SystemProgram],
		Rent:                   keys[Initialize2Rent],
		Amm:                    keys[Initialize2Amm],
		Authority:              keys[Initialize2Authority],
		OpenOrders:             keys[Initialize2OpenOrders],
		LpMint:                 keys[Initialize2LpMint],
		PcMint:                 keys[Initialize2PcMint],
		CoinMint:               keys[Initialize2CoinMint],
		TargetOrders:           keys[Initialize2TargetOrders],
		AmmConfig:              keys[Initialize2AmmConfig],
		FeeDestination:         keys[Initialize2FeeDestination],
		MarketProgram:          keys[Initialize2MarketProgram],
		Market:                 keys[Initialize2Market],
		UserWallet:             keys[Initialize2UserWallet],
		UserTokenPc:            keys[Initialize2UserTokenPc],
		UserTokenCoin:          keys[Initialize2UserTokenCoin],
		UserTokenLp:            keys[Initialize2UserTokenLp],
	}

	ix, err := NewInitialize2Instruction(ProgramID, Initialize2Args{Nonce: 254}, accounts)
	require.NoError(t, err)
	assert.Equal(t, ProgramID, ix.ProgramID())

	writable := map[int]bool{
		Initialize2Amm:            true,
		Initialize2OpenOrders:     true,
		Initialize2LpMint:         true,
		Initialize2TargetOrders:   true,
		Initialize2FeeDestination: true,
		Initialize2UserWallet:     true,
		Initialize2UserTokenPc:    true,
		Initialize2UserTokenCoin:  true,
		Initialize2UserTokenLp:    true,
	}
	metas := ix.Accounts()
	require.Len(t, metas, 20)
	for i, meta := range metas {
		assert.Equal(t, keys[i], meta.PublicKey, "account %d", i)
		assert.Equal(t, writable[i], meta.IsWritable, "account %d writable", i)
		assert.Equal(t, i == Initialize2UserWallet, meta.IsSigner, "account %d signer", i)
	}
}
