package raydium

import (
	raydiumamm "github.com/krazyTry/raydium-go/raydium_amm"
	"github.com/krazyTry/raydium-go/migration"
	"github.com/krazyTry/raydium-go/sandbox"
)

// NewMigrator creates a pool bootstrapper that validates, builds and invokes initialize2.
//
// Example:
//
// plan, _ := NewPlan(DefaultConfig(self), migration.PlanInput{Market: market, QuoteMint: solana.WrappedSol, BaseMint: baseMint, Wallet: payer.PublicKey(), UserQuoteToken: quoteATA, UserBaseToken: baseATA})
//
// accounts, _ := plan.Resolve(ctx, &migration.RPCOwnerResolver{RPC: rpcClient, Commitment: rpc.CommitmentConfirmed})
//
// migrator := NewMigrator(plan.Config, &migration.RPCInvoker{RPC: rpcClient, WS: wsClient, Payer: payer}, &migration.RPCClock{RPC: rpcClient})
//
// migrator.CreatePool(ctx, accounts, plan.Params(quoteAmount, baseAmount))
var NewMigrator = migration.NewMigrator

// NewPlan derives every pool address for a market.
//
// Example:
//
// plan, _ := NewPlan(DevnetConfig(self), input)
//
// fmt.Println(plan.Keys.Amm.Address, plan.Keys.LpMint.Address, plan.Nonce())
var NewPlan = migration.NewPlan

// DefaultConfig returns the mainnet program identities.
var DefaultConfig = migration.DefaultConfig

// DevnetConfig returns the devnet program identities.
var DevnetConfig = migration.DevnetConfig

// DerivePoolKeys derives the pool accounts of a market without any network access.
var DerivePoolKeys = raydiumamm.DerivePoolKeys

// NewSandbox creates an in-memory ledger for dry runs.
//
// Example:
//
// rt := NewSandbox(sandbox.WithClock(time.Now().Unix()))
//
// rt.RegisterProgram(raydiumamm.ProgramID, sandbox.NewAmmV4(raydiumamm.ProgramID, 0))
//
// rt.Atomic(ctx, []solana.PublicKey{wallet}, func(tx *sandbox.Tx) error { return NewMigrator(config, tx, rt).CreatePool(ctx, accounts, params) })
var NewSandbox = sandbox.NewRuntime
