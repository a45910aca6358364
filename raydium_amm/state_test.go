package raydiumamm

import (
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmmInfoLayout(t *testing.T) {
	info := &AmmInfo{
		Status:       uint64(AmmStatusWaitingTrade),
		Nonce:        254,
		CoinDecimals: 6,
		PcDecimals:   9,
		Fees:         DefaultFees,
		StateData: StateData{
			PoolOpenTime:     1_700_000_000,
			SwapCoinInAmount: bin.Uint128{Lo: 7, Hi: 1},
		},
		Market:   testMarket,
		LpMint:   solana.NewWallet().PublicKey(),
		LpAmount: 42,
	}

	data, err := info.Encode()
	require.NoError(t, err)
	require.Len(t, data, AmmInfoSize)

	// status and nonce lead the account
	assert.Equal(t, byte(AmmStatusWaitingTrade), data[0])
	assert.Equal(t, byte(254), data[8])

	decoded, err := DecodeAmmInfo(data)
	require.NoError(t, err)
	assert.True(t, decoded.IsInitialized())
	assert.Equal(t, info.Market, decoded.Market)
	assert.Equal(t, info.LpMint, decoded.LpMint)
	assert.Equal(t, uint64(42), decoded.LpAmount)
	assert.Equal(t, uint64(1_700_000_000), decoded.StateData.PoolOpenTime)
	assert.Equal(t, uint64(7), decoded.StateData.SwapCoinInAmount.Lo)
	assert.Equal(t, uint64(1), decoded.StateData.SwapCoinInAmount.Hi)
	assert.Equal(t, DefaultFees, decoded.Fees)

	_, err = DecodeAmmInfo(data[:100])
	assert.Error(t, err)
}
