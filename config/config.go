package config

import (
	"bytes"
	"os"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/krazyTry/raydium-go/logger"
	"github.com/krazyTry/raydium-go/migration"
)

const (
	ClusterMainnet = "mainnet"
	ClusterDevnet  = "devnet"
)

type LogConfig struct {
	Format   string `yaml:"format"`   // console or json
	LogDir   string `yaml:"log_dir"`  // relative or absolute
	Level    string `yaml:"level"`    // debug / info / warn / error
	Compress bool   `yaml:"compress"` // gzip rotated files
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

type RPCConfig struct {
	Endpoint          string `yaml:"endpoint"`
	WSEndpoint        string `yaml:"ws_endpoint"`
	Commitment        string `yaml:"commitment"`          // processed / confirmed / finalized
	ConfirmTimeoutSec int    `yaml:"confirm_timeout_sec"` // wait for the signature before polling its status
}

// ProgramsConfig picks the cluster defaults; every address may be overridden.
type ProgramsConfig struct {
	Cluster        string `yaml:"cluster"`
	Self           string `yaml:"self"` // program the LP token account is derived under
	AmmProgram     string `yaml:"amm_program"`
	MarketProgram  string `yaml:"market_program"`
	FeeDestination string `yaml:"fee_destination"`
}

// PoolConf describes the pool to bootstrap. Amounts are UI amounts.
type PoolConf struct {
	Market          string `yaml:"market"`
	QuoteMint       string `yaml:"quote_mint"`
	BaseMint        string `yaml:"base_mint"`
	UserQuoteToken  string `yaml:"user_quote_token"`
	UserBaseToken   string `yaml:"user_base_token"`
	InitQuoteAmount string `yaml:"init_quote_amount"`
	InitBaseAmount  string `yaml:"init_base_amount"`
	WrapSOL         bool   `yaml:"wrap_sol"` // top up a wrapped SOL funding account from the wallet
}

type ComputeBudgetConfig struct {
	UnitLimit uint32 `yaml:"unit_limit"`
	UnitPrice uint64 `yaml:"unit_price"` // micro lamports
}

// Config drives cmd/raydium-migrate.
type Config struct {
	LogConf       LogConfig           `yaml:"logger"`
	RPC           RPCConfig           `yaml:"rpc"`
	Keypair       string              `yaml:"keypair"` // solana-keygen JSON file of the wallet
	Programs      ProgramsConfig      `yaml:"programs"`
	Pool          PoolConf            `yaml:"pool"`
	ComputeBudget ComputeBudgetConfig `yaml:"compute_budget"`
	Simulate      bool                `yaml:"simulate"`
}

func Default() Config {
	return Config{
		LogConf: LogConfig{Format: logger.FormatConsole, Level: "info"},
		RPC: RPCConfig{
			Endpoint:          rpc.MainNetBeta_RPC,
			WSEndpoint:        rpc.MainNetBeta_WS,
			Commitment:        string(rpc.CommitmentConfirmed),
			ConfirmTimeoutSec: 60,
		},
		Programs:      ProgramsConfig{Cluster: ClusterMainnet},
		ComputeBudget: ComputeBudgetConfig{UnitLimit: 400_000},
	}
}

// Parse decodes data over Default and validates the result. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	c, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

func MustLoad(path string) *Config {
	c, err := Load(path)
	if err != nil {
		panic(err)
	}
	return c
}

func parseKey(field, value string, required bool) (solana.PublicKey, error) {
	if value == "" {
		if required {
			return solana.PublicKey{}, errors.Errorf("%s: required", field)
		}
		return solana.PublicKey{}, nil
	}
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, errors.Wrap(err, field)
	}
	return key, nil
}

func checkAmount(field, value string) error {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return errors.Wrap(err, field)
	}
	if !amount.IsPositive() {
		return errors.Errorf("%s: must be positive, got %s", field, value)
	}
	return nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs error
	if c.Keypair == "" {
		errs = multierr.Append(errs, errors.New("keypair: required"))
	}
	if c.RPC.Endpoint == "" {
		errs = multierr.Append(errs, errors.New("rpc.endpoint: required"))
	}
	switch rpc.CommitmentType(c.RPC.Commitment) {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		errs = multierr.Append(errs, errors.Errorf("rpc.commitment: unknown %q", c.RPC.Commitment))
	}
	switch c.Programs.Cluster {
	case ClusterMainnet, ClusterDevnet:
	default:
		errs = multierr.Append(errs, errors.Errorf("programs.cluster: unknown %q", c.Programs.Cluster))
	}

	for _, k := range []struct {
		field, value string
		required     bool
	}{
		{"programs.self", c.Programs.Self, true},
		{"programs.amm_program", c.Programs.AmmProgram, false},
		{"programs.market_program", c.Programs.MarketProgram, false},
		{"programs.fee_destination", c.Programs.FeeDestination, false},
		{"pool.market", c.Pool.Market, true},
		{"pool.quote_mint", c.Pool.QuoteMint, true},
		{"pool.base_mint", c.Pool.BaseMint, true},
		{"pool.user_quote_token", c.Pool.UserQuoteToken, !c.wrapped(c.Pool.QuoteMint)},
		{"pool.user_base_token", c.Pool.UserBaseToken, !c.wrapped(c.Pool.BaseMint)},
	} {
		_, err := parseKey(k.field, k.value, k.required)
		errs = multierr.Append(errs, err)
	}
	errs = multierr.Append(errs, checkAmount("pool.init_quote_amount", c.Pool.InitQuoteAmount))
	errs = multierr.Append(errs, checkAmount("pool.init_base_amount", c.Pool.InitBaseAmount))
	return errs
}

// wrapped reports whether the funding account for mint defaults to the wallet's wrapped SOL account.
func (c *Config) wrapped(mint string) bool {
	return c.Pool.WrapSOL && mint == solana.WrappedSol.String()
}

func (c *Config) Commitment() rpc.CommitmentType {
	return rpc.CommitmentType(c.RPC.Commitment)
}

func (c *Config) ConfirmTimeout() time.Duration {
	return time.Duration(c.RPC.ConfirmTimeoutSec) * time.Second
}

// MigrationConfig returns the cluster defaults with any configured overrides applied.
func (c *Config) MigrationConfig() (migration.Config, error) {
	self, err := parseKey("programs.self", c.Programs.Self, true)
	if err != nil {
		return migration.Config{}, err
	}

	out := migration.DefaultConfig(self)
	if c.Programs.Cluster == ClusterDevnet {
		out = migration.DevnetConfig(self)
	}
	for _, o := range []struct {
		field, value string
		dst          *solana.PublicKey
	}{
		{"programs.amm_program", c.Programs.AmmProgram, &out.AmmProgram},
		{"programs.market_program", c.Programs.MarketProgram, &out.MarketProgram},
		{"programs.fee_destination", c.Programs.FeeDestination, &out.FeeDestination},
	} {
		key, err := parseKey(o.field, o.value, false)
		if err != nil {
			return migration.Config{}, err
		}
		if !key.IsZero() {
			*o.dst = key
		}
	}
	return out, nil
}

// PlanInput returns the pool addresses for wallet. With wrap_sol a missing
// wrapped SOL funding account defaults to the wallet's associated account.
func (c *Config) PlanInput(wallet solana.PublicKey) (migration.PlanInput, error) {
	in := migration.PlanInput{Wallet: wallet}
	for _, f := range []struct {
		field, value string
		dst          *solana.PublicKey
	}{
		{"pool.market", c.Pool.Market, &in.Market},
		{"pool.quote_mint", c.Pool.QuoteMint, &in.QuoteMint},
		{"pool.base_mint", c.Pool.BaseMint, &in.BaseMint},
	} {
		key, err := parseKey(f.field, f.value, true)
		if err != nil {
			return migration.PlanInput{}, err
		}
		*f.dst = key
	}

	for _, f := range []struct {
		field, value, mint string
		dst                *solana.PublicKey
	}{
		{"pool.user_quote_token", c.Pool.UserQuoteToken, c.Pool.QuoteMint, &in.UserQuoteToken},
		{"pool.user_base_token", c.Pool.UserBaseToken, c.Pool.BaseMint, &in.UserBaseToken},
	} {
		if f.value == "" && c.wrapped(f.mint) {
			ata, _, err := solana.FindAssociatedTokenAddress(wallet, solana.WrappedSol)
			if err != nil {
				return migration.PlanInput{}, errors.Wrap(err, f.field)
			}
			*f.dst = ata
			continue
		}
		key, err := parseKey(f.field, f.value, true)
		if err != nil {
			return migration.PlanInput{}, err
		}
		*f.dst = key
	}
	return in, nil
}
