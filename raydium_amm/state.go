package raydiumamm

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const AmmInfoSize = 752

type AmmStatus uint64

const (
	AmmStatusUninitialized AmmStatus = iota
	AmmStatusInitialized
	AmmStatusDisabled
	AmmStatusWithdrawOnly
	AmmStatusLiquidityOnly
	AmmStatusOrderBookOnly
	AmmStatusSwapOnly
	AmmStatusWaitingTrade
)

type Fees struct {
	MinSeparateNumerator   uint64
	MinSeparateDenominator uint64
	TradeFeeNumerator      uint64
	TradeFeeDenominator    uint64
	PnlNumerator           uint64
	PnlDenominator         uint64
	SwapFeeNumerator       uint64
	SwapFeeDenominator     uint64
}

// DefaultFees are the fees a freshly initialised pool starts with.
var DefaultFees = Fees{
	MinSeparateNumerator:   5,
	MinSeparateDenominator: 10000,
	TradeFeeNumerator:      25,
	TradeFeeDenominator:    10000,
	PnlNumerator:           12,
	PnlDenominator:         100,
	SwapFeeNumerator:       25,
	SwapFeeDenominator:     10000,
}

type StateData struct {
	NeedTakePnlCoin     uint64
	NeedTakePnlPc       uint64
	TotalPnlPc          uint64
	TotalPnlCoin        uint64
	PoolOpenTime        uint64
	Padding             [2]uint64
	OrderbookToInitTime uint64
	SwapCoinInAmount    bin.Uint128
	SwapPcOutAmount     bin.Uint128
	SwapAccPcFee        uint64
	SwapPcInAmount      bin.Uint128
	SwapCoinOutAmount   bin.Uint128
	SwapAccCoinFee      uint64
}

// AmmInfo is the state account of a liquidity pool v4 pool.
type AmmInfo struct {
	Status             uint64
	Nonce              uint64
	OrderNum           uint64
	Depth              uint64
	CoinDecimals       uint64
	PcDecimals         uint64
	State              uint64
	ResetFlag          uint64
	MinSize            uint64
	VolMaxCutRatio     uint64
	AmountWave         uint64
	CoinLotSize        uint64
	PcLotSize          uint64
	MinPriceMultiplier uint64
	MaxPriceMultiplier uint64
	SysDecimalValue    uint64
	Fees               Fees
	StateData          StateData
	CoinVault          solana.PublicKey
	PcVault            solana.PublicKey
	CoinVaultMint      solana.PublicKey
	PcVaultMint        solana.PublicKey
	LpMint             solana.PublicKey
	OpenOrders         solana.PublicKey
	Market             solana.PublicKey
	MarketProgram      solana.PublicKey
	TargetOrders       solana.PublicKey
	Padding1           [8]uint64
	AmmOwner           solana.PublicKey
	LpAmount           uint64
	ClientOrderID      uint64
	RecentEpoch        uint64
	Padding2           uint64
}

func (a *AmmInfo) IsInitialized() bool {
	return AmmStatus(a.Status) != AmmStatusUninitialized
}

func DecodeAmmInfo(data []byte) (*AmmInfo, error) {
	if len(data) != AmmInfoSize {
		return nil, fmt.Errorf("amm info: unexpected data length %d", len(data))
	}
	info := &AmmInfo{}
	if err := bin.NewBinDecoder(data).Decode(info); err != nil {
		return nil, err
	}
	return info, nil
}

func (a *AmmInfo) Encode() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, AmmInfoSize))
	if err := bin.NewBinEncoder(buf).Encode(a); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
