package raydiumamm

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

var ErrInvalidInstructionData = errors.New("invalid initialize2 instruction data")

// Initialize2Args is the payload of initialize2. Pc is the quote side, coin the base side.
type Initialize2Args struct {
	Nonce          uint8
	OpenTime       uint64
	InitPcAmount   uint64
	InitCoinAmount uint64
}

func (args Initialize2Args) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(Instruction_Initialize2); err != nil {
		return err
	}
	if err := encoder.WriteUint8(args.Nonce); err != nil {
		return err
	}
	if err := encoder.WriteUint64(args.OpenTime, bin.LE); err != nil {
		return err
	}
	if err := encoder.WriteUint64(args.InitPcAmount, bin.LE); err != nil {
		return err
	}
	return encoder.WriteUint64(args.InitCoinAmount, bin.LE)
}

func (args *Initialize2Args) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	tag, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	if tag != Instruction_Initialize2 {
		return fmt.Errorf("%w: unexpected tag %d", ErrInvalidInstructionData, tag)
	}
	if args.Nonce, err = decoder.ReadUint8(); err != nil {
		return err
	}
	if args.OpenTime, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	if args.InitPcAmount, err = decoder.ReadUint64(bin.LE); err != nil {
		return err
	}
	args.InitCoinAmount, err = decoder.ReadUint64(bin.LE)
	return err
}

// Data serializes args with the leading instruction tag.
func (args Initialize2Args) Data() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, Initialize2DataSize))
	if err := bin.NewBinEncoder(buf).Encode(args); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeInitialize2(data []byte) (*Initialize2Args, error) {
	if len(data) != Initialize2DataSize {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidInstructionData, len(data))
	}
	args := &Initialize2Args{}
	if err := bin.NewBinDecoder(data).Decode(args); err != nil {
		return nil, err
	}
	return args, nil
}

// Positions of the initialize2 accounts.
const (
	Initialize2AmmProgram = iota
	Initialize2TokenProgram
	Initialize2AssociatedTokenProgram
	Initialize2SystemProgram
	Initialize2Rent
	Initialize2Amm
	Initialize2Authority
	Initialize2OpenOrders
	Initialize2LpMint
	Initialize2PcMint
	Initialize2CoinMint
	Initialize2TargetOrders
	Initialize2AmmConfig
	Initialize2FeeDestination
	Initialize2MarketProgram
	Initialize2Market
	Initialize2UserWallet
	Initialize2UserTokenPc
	Initialize2UserTokenCoin
	Initialize2UserTokenLp

	Initialize2AccountsLen
)

type Initialize2Accounts struct {
	AmmProgram             solana.PublicKey
	TokenProgram           solana.PublicKey
	AssociatedTokenProgram solana.PublicKey
	SystemProgram          solana.PublicKey
	Rent                   solana.PublicKey
	Amm                    solana.PublicKey
	Authority              solana.PublicKey
	OpenOrders             solana.PublicKey
	LpMint                 solana.PublicKey
	PcMint                 solana.PublicKey
	CoinMint               solana.PublicKey
	TargetOrders           solana.PublicKey
	AmmConfig              solana.PublicKey
	FeeDestination         solana.PublicKey
	MarketProgram          solana.PublicKey
	Market                 solana.PublicKey
	UserWallet             solana.PublicKey
	UserTokenPc            solana.PublicKey
	UserTokenCoin          solana.PublicKey
	UserTokenLp            solana.PublicKey
}

func (a *Initialize2Accounts) Metas() solana.AccountMetaSlice {
	return solana.AccountMetaSlice{
		solana.NewAccountMeta(a.AmmProgram, false, false),
		solana.NewAccountMeta(a.TokenProgram, false, false),
		solana.NewAccountMeta(a.AssociatedTokenProgram, false, false),
		solana.NewAccountMeta(a.SystemProgram, false, false),
		solana.NewAccountMeta(a.Rent, false, false),
		solana.NewAccountMeta(a.Amm, true, false),
		solana.NewAccountMeta(a.Authority, false, false),
		solana.NewAccountMeta(a.OpenOrders, true, false),
		solana.NewAccountMeta(a.LpMint, true, false),
		solana.NewAccountMeta(a.PcMint, false, false),
		solana.NewAccountMeta(a.CoinMint, false, false),
		solana.NewAccountMeta(a.TargetOrders, true, false),
		solana.NewAccountMeta(a.AmmConfig, false, false),
		solana.NewAccountMeta(a.FeeDestination, true, false),
		solana.NewAccountMeta(a.MarketProgram, false, false),
		solana.NewAccountMeta(a.Market, false, false),
		solana.NewAccountMeta(a.UserWallet, true, true),
		solana.NewAccountMeta(a.UserTokenPc, true, false),
		solana.NewAccountMeta(a.UserTokenCoin, true, false),
		solana.NewAccountMeta(a.UserTokenLp, true, false),
	}
}

// NewInitialize2Instruction builds initialize2 against programID.
func NewInitialize2Instruction(programID solana.PublicKey, args Initialize2Args, accounts *Initialize2Accounts) (solana.Instruction, error) {
	data, err := args.Data()
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(programID, accounts.Metas(), data), nil
}
