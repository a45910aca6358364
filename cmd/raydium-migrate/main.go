package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/krazyTry/raydium-go/config"
	"github.com/krazyTry/raydium-go/logger"
	"github.com/krazyTry/raydium-go/migration"
	solanago "github.com/krazyTry/raydium-go/solana"
)

var (
	configFile = flag.String("f", "etc/raydium.yaml", "the config file")
	simulate   = flag.Bool("simulate", false, "simulate the transaction instead of sending it")
	planOnly   = flag.Bool("plan", false, "print the derived accounts and wallet balances, then exit")
)

func main() {
	flag.Parse()

	c := config.MustLoad(*configFile)
	if *simulate {
		c.Simulate = true
	}
	log := logger.MustNew(c.LogConf.ToLogOption())
	defer func() {
		if r := recover(); r != nil {
			log.Error("panic", zap.Any("recover", r), zap.ByteString("stack", debug.Stack()))
		}
		_ = log.Sync()
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, c, log); err != nil {
		log.Error("migration failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func loadWallet(path string) (*solana.Wallet, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, path[2:])
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load keypair")
	}
	return &solana.Wallet{PrivateKey: key}, nil
}

func run(ctx context.Context, c *config.Config, log *zap.Logger) error {
	wallet, err := loadWallet(c.Keypair)
	if err != nil {
		return err
	}
	mc, err := c.MigrationConfig()
	if err != nil {
		return err
	}
	in, err := c.PlanInput(wallet.PublicKey())
	if err != nil {
		return err
	}
	plan, err := migration.NewPlan(mc, in)
	if err != nil {
		return err
	}

	commitment := c.Commitment()
	rpcClient := rpc.New(c.RPC.Endpoint)
	defer rpcClient.Close()

	mints, err := solanago.GetMultipleToken(ctx, rpcClient, commitment, in.QuoteMint, in.BaseMint)
	if err != nil {
		return errors.Wrap(err, "load mints")
	}
	if mints[0] == nil || mints[1] == nil {
		return errors.Wrap(migration.ErrAccountNotFound, "quote or base mint")
	}

	if *planOnly {
		return printPlan(ctx, rpcClient, commitment, plan, mints)
	}

	quoteAmount, err := migration.ParseAmount(c.Pool.InitQuoteAmount, mints[0].Decimals)
	if err != nil {
		return err
	}
	baseAmount, err := migration.ParseAmount(c.Pool.InitBaseAmount, mints[1].Decimals)
	if err != nil {
		return err
	}
	params := plan.Params(quoteAmount, baseAmount)
	log.Info("pool plan",
		zap.Stringer("market", in.Market),
		zap.Stringer("pool", plan.Keys.Amm.Address),
		zap.Stringer("lp_mint", plan.Keys.LpMint.Address),
		zap.Stringer("user_lp_token", plan.UserLpToken.Address),
		zap.Uint8("nonce", params.Nonce),
		zap.String("init_quote_amount", migration.FormatAmount(quoteAmount, mints[0].Decimals)),
		zap.String("init_base_amount", migration.FormatAmount(baseAmount, mints[1].Decimals)),
	)

	invoker := &migration.RPCInvoker{
		RPC:              rpcClient,
		Commitment:       commitment,
		Payer:            wallet,
		ComputeUnitLimit: c.ComputeBudget.UnitLimit,
		ComputeUnitPrice: c.ComputeBudget.UnitPrice,
		ConfirmTimeout:   c.ConfirmTimeout(),
		Simulate:         c.Simulate,
		Logger:           log,
	}

	accounts, err := plan.Resolve(ctx, &migration.RPCOwnerResolver{RPC: rpcClient, Commitment: commitment})
	if err != nil {
		return err
	}

	if c.Pool.WrapSOL {
		if err := wrapFunding(ctx, rpcClient, commitment, plan, params, &accounts, invoker); err != nil {
			return err
		}
	} else if err := migration.Preflight(ctx, rpcClient, commitment, plan, params); err != nil {
		return err
	}

	if !c.Simulate {
		wsClient, err := ws.Connect(ctx, c.RPC.WSEndpoint)
		if err != nil {
			return errors.Wrap(err, "connect websocket")
		}
		defer wsClient.Close()
		invoker.WS = wsClient
	}

	m := migration.NewMigrator(mc, invoker, &migration.RPCClock{RPC: rpcClient, Commitment: commitment}, migration.WithLogger(log))
	return m.CreatePool(ctx, accounts, params)
}

// wrapFunding tops up wrapped SOL funding accounts in the pool transaction and
// checks balances as they will be once the top up has run.
func wrapFunding(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	plan *migration.Plan,
	params migration.Params,
	accounts *migration.Accounts,
	invoker *migration.RPCInvoker,
) error {
	in := plan.Input
	funding, err := solanago.GetMultipleTokenAccount(ctx, rpcClient, commitment, in.UserQuoteToken, in.UserBaseToken)
	if err != nil {
		return errors.Wrap(err, "load user token accounts")
	}

	for _, side := range []struct {
		mint    solana.PublicKey
		ref     *migration.AccountRef
		amount  uint64
		account **solanago.TokenAccount
	}{
		{in.QuoteMint, &accounts.UserQuoteToken, params.InitQuoteAmount, &funding[0]},
		{in.BaseMint, &accounts.UserBaseToken, params.InitBaseAmount, &funding[1]},
	} {
		if !side.mint.Equals(solana.WrappedSol) {
			continue
		}
		ata, instructions, err := solanago.WrapSOLInstructions(ctx, rpcClient, commitment, in.Wallet, in.Wallet, side.amount)
		if err != nil {
			return errors.Wrap(err, "wrap sol")
		}
		if !ata.Equals(side.ref.Address) {
			return errors.Errorf("wrap_sol: funding account %s is not the wallet's wrapped SOL account %s", side.ref.Address, ata)
		}
		invoker.Before = append(invoker.Before, instructions...)

		// created by the top up when missing
		side.ref.Owner = plan.Config.TokenProgram
		*side.account = &solanago.TokenAccount{
			Address: ata,
			Account: token.Account{Mint: solana.WrappedSol, Owner: in.Wallet, Amount: side.amount, State: token.Initialized},
		}
	}
	return migration.CheckBalances(in, params, funding[0], funding[1])
}

func printPlan(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType, plan *migration.Plan, mints []*solanago.Token) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	accounts := plan.Accounts()
	for _, entry := range accounts.Entries() {
		flags := ""
		if entry.Account.IsWritable {
			flags += "w"
		}
		if entry.Account.IsSigner {
			flags += "s"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Role, entry.Account.Address, flags)
	}
	fmt.Fprintf(w, "nonce\t%d\t\n", plan.Nonce())
	if err := w.Flush(); err != nil {
		return err
	}

	balances, err := solanago.TokenBalances(ctx, rpcClient, commitment, plan.Input.Wallet, plan.Config.TokenProgram)
	if err != nil {
		return errors.Wrap(err, "load wallet balances")
	}
	fmt.Fprintln(os.Stdout)
	for _, m := range []struct {
		name     string
		mint     solana.PublicKey
		decimals uint8
	}{
		{"quote", plan.Input.QuoteMint, mints[0].Decimals},
		{"base", plan.Input.BaseMint, mints[1].Decimals},
	} {
		fmt.Fprintf(os.Stdout, "%s balance %s (%s)\n", m.name, migration.FormatAmount(balances[m.mint], m.decimals), m.mint)
	}
	return nil
}
