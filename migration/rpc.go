package migration

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	computebudget "github.com/gagliardetto/solana-go/programs/compute-budget"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"go.uber.org/zap"

	solanago "github.com/krazyTry/raydium-go/solana"
)

// RPCOwnerResolver reads account owners from a cluster.
type RPCOwnerResolver struct {
	RPC        *rpc.Client
	Commitment rpc.CommitmentType
}

func (r *RPCOwnerResolver) Owners(ctx context.Context, keys []solana.PublicKey) ([]solana.PublicKey, error) {
	out, err := solanago.GetMultipleAccountInfo(ctx, r.RPC, r.Commitment, keys)
	if err != nil {
		return nil, err
	}
	owners := make([]solana.PublicKey, len(keys))
	for i, account := range out.Value {
		if i >= len(owners) {
			break
		}
		if account != nil {
			owners[i] = account.Owner
		}
	}
	return owners, nil
}

// RPCClock reads the block time of the current slot.
type RPCClock struct {
	RPC        *rpc.Client
	Commitment rpc.CommitmentType
}

func (c *RPCClock) UnixTimestamp(ctx context.Context) (int64, error) {
	return solanago.CurrentUnixTimestamp(ctx, c.RPC, c.Commitment)
}

// RPCInvoker submits the call as its own transaction, which the cluster executes atomically.
type RPCInvoker struct {
	RPC        *rpc.Client
	WS         *ws.Client
	Commitment rpc.CommitmentType
	Payer      *solana.Wallet

	ComputeUnitLimit uint32
	ComputeUnitPrice uint64
	ConfirmTimeout   time.Duration

	// Before runs ahead of the call in the same transaction, e.g. wrapping SOL for a funding account.
	Before []solana.Instruction

	// Simulate runs simulateTransaction instead of sending.
	Simulate bool

	Logger *zap.Logger
}

func (r *RPCInvoker) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *RPCInvoker) Instructions(ix solana.Instruction) []solana.Instruction {
	var instructions []solana.Instruction
	if r.ComputeUnitLimit > 0 {
		instructions = append(instructions, computebudget.NewSetComputeUnitLimitInstruction(r.ComputeUnitLimit).Build())
	}
	if r.ComputeUnitPrice > 0 {
		instructions = append(instructions, computebudget.NewSetComputeUnitPriceInstruction(r.ComputeUnitPrice).Build())
	}
	instructions = append(instructions, solanago.MergeInstructions(r.Before)...)
	return append(instructions, ix)
}

func (r *RPCInvoker) Invoke(ctx context.Context, ix solana.Instruction) error {
	instructions := r.Instructions(ix)
	sign := solanago.WalletSigner(r.Payer)

	if r.Simulate {
		result, err := solanago.SimulateInstruction(ctx, r.RPC, r.Commitment, instructions, r.Payer.PublicKey(), sign)
		if err != nil {
			return err
		}
		fields := []zap.Field{zap.Strings("logs", result.Logs)}
		if result.UnitsConsumed != nil {
			fields = append(fields, zap.Uint64("units_consumed", *result.UnitsConsumed))
		}
		r.logger().Info("simulated initialize2", fields...)
		return nil
	}

	sig, err := solanago.SendInstruction(ctx, r.RPC, r.WS, r.Commitment, instructions, r.Payer.PublicKey(), sign, r.ConfirmTimeout)
	if err != nil {
		return err
	}
	r.logger().Info("initialize2 confirmed", zap.Stringer("signature", sig))
	return nil
}
