package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	raydiumamm "github.com/krazyTry/raydium-go/raydium_amm"
)

func TestLoadExample(t *testing.T) {
	c, err := Load(filepath.Join("..", "etc", "raydium.yaml"))
	require.NoError(t, err)

	assert.Equal(t, rpc.CommitmentConfirmed, c.Commitment())
	assert.Equal(t, time.Minute, c.ConfirmTimeout())
	assert.Equal(t, uint32(400_000), c.ComputeBudget.UnitLimit)
	assert.True(t, c.Simulate)
	assert.Equal(t, "logs", c.LogConf.ToLogOption().LogDir)

	mc, err := c.MigrationConfig()
	require.NoError(t, err)
	assert.Equal(t, raydiumamm.ProgramID, mc.AmmProgram)
	assert.Equal(t, raydiumamm.OpenBookProgramID, mc.MarketProgram)
	assert.Equal(t, raydiumamm.CreatePoolFeeAddress, mc.FeeDestination)
	assert.Equal(t, "6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P", mc.Self.String())

	wallet := solana.NewWallet().PublicKey()
	in, err := c.PlanInput(wallet)
	require.NoError(t, err)
	assert.Equal(t, wallet, in.Wallet)
	assert.Equal(t, "8BnEgHoWFysVcuFFX7QztDmzuH8r5ZFvyP3sYwn1XTh6", in.Market.String())
	assert.Equal(t, solana.WrappedSol, in.QuoteMint)

	ata, _, err := solana.FindAssociatedTokenAddress(wallet, solana.WrappedSol)
	require.NoError(t, err)
	assert.Equal(t, ata, in.UserQuoteToken)
	assert.Equal(t, "2wmVCSfPxGPjrnMMn7rchp4uaeoTqN39mXFC2zhPdri9", in.UserBaseToken.String())
}

func TestWrapSOLRequiresWrappedMint(t *testing.T) {
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)

	c.Pool.WrapSOL = true
	c.Pool.UserBaseToken = ""
	// base is not wrapped SOL, so its funding account stays required
	assert.Error(t, c.Validate())
	_, err = c.PlanInput(solana.NewWallet().PublicKey())
	assert.Error(t, err)

	c.Pool.UserBaseToken = "2wmVCSfPxGPjrnMMn7rchp4uaeoTqN39mXFC2zhPdri9"
	c.Pool.UserQuoteToken = ""
	assert.NoError(t, c.Validate())
}

const minimal = `
keypair: id.json
programs:
  self: 6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P
pool:
  market: 8BnEgHoWFysVcuFFX7QztDmzuH8r5ZFvyP3sYwn1XTh6
  quote_mint: So11111111111111111111111111111111111111112
  base_mint: EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v
  user_quote_token: 7UX2i7SucgLMQcfZ75s3VXmZZY4YRUyJN9X1RgfMoDUi
  user_base_token: 2wmVCSfPxGPjrnMMn7rchp4uaeoTqN39mXFC2zhPdri9
  init_quote_amount: "0.5"
  init_base_amount: "1000"
`

func TestParseDefaults(t *testing.T) {
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)

	assert.Equal(t, rpc.MainNetBeta_RPC, c.RPC.Endpoint)
	assert.Equal(t, ClusterMainnet, c.Programs.Cluster)
	assert.Equal(t, "info", c.LogConf.Level)
	assert.Equal(t, 60*time.Second, c.ConfirmTimeout())
	assert.False(t, c.Simulate)
}

func TestParseDevnetOverrides(t *testing.T) {
	fee := solana.NewWallet().PublicKey()
	data := `
keypair: id.json
programs:
  cluster: devnet
  self: 6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P
  fee_destination: ` + fee.String() + `
pool:
  market: 8BnEgHoWFysVcuFFX7QztDmzuH8r5ZFvyP3sYwn1XTh6
  quote_mint: So11111111111111111111111111111111111111112
  base_mint: EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v
  user_quote_token: 7UX2i7SucgLMQcfZ75s3VXmZZY4YRUyJN9X1RgfMoDUi
  user_base_token: 2wmVCSfPxGPjrnMMn7rchp4uaeoTqN39mXFC2zhPdri9
  init_quote_amount: "1"
  init_base_amount: "1"
`
	c, err := Parse([]byte(data))
	require.NoError(t, err)

	mc, err := c.MigrationConfig()
	require.NoError(t, err)
	assert.Equal(t, raydiumamm.DevnetProgramID, mc.AmmProgram)
	assert.Equal(t, raydiumamm.DevnetOpenBookProgramID, mc.MarketProgram)
	assert.Equal(t, fee, mc.FeeDestination)
}

func TestParseRejects(t *testing.T) {
	_, err := Parse([]byte("unknown_key: 1\n" + minimal))
	assert.Error(t, err)

	_, err = Parse([]byte(`keypair: ""`))
	require.Error(t, err)
	// keypair, self, five pool keys and two amounts
	assert.Len(t, multierr.Errors(err), 9)
}

func TestValidate(t *testing.T) {
	c, err := Parse([]byte(minimal))
	require.NoError(t, err)

	bad := *c
	bad.RPC.Commitment = "eventually"
	bad.Programs.Cluster = "testnet"
	bad.Pool.Market = "not-a-key"
	bad.Pool.InitBaseAmount = "-3"
	assert.Len(t, multierr.Errors(bad.Validate()), 4)

	_, err = bad.PlanInput(solana.PublicKey{})
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "missing.yaml")) })
}
