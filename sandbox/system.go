package sandbox

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// systemProgram supports lamport transfers only.
type systemProgram struct{}

func (systemProgram) Execute(ctx *InvokeContext, data []byte) error {
	inst, err := system.DecodeInstruction(ctx.metas, data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInstructionData, err)
	}
	switch impl := inst.Impl.(type) {
	case *system.Transfer:
		if impl.Lamports == nil {
			return ErrInvalidInstructionData
		}
		return transferLamports(ctx, 0, 1, *impl.Lamports)
	default:
		return fmt.Errorf("%w: unsupported system instruction %T", ErrInvalidInstructionData, impl)
	}
}

func transferLamports(ctx *InvokeContext, from, to int, lamports uint64) error {
	if ctx.Len() < 2 {
		return ErrNotEnoughAccountKeys
	}
	if !ctx.IsSigner(from) {
		return fmt.Errorf("%w: %s", ErrMissingRequiredSignature, ctx.Key(from))
	}

	source := ctx.Account(from)
	if source == nil || source.Lamports < lamports {
		return fmt.Errorf("%w: %s", ErrInsufficientFunds, ctx.Key(from))
	}
	if !source.Owner.Equals(solana.SystemProgramID) || len(source.Data) > 0 {
		return fmt.Errorf("%w: transfer from account with data", ErrInvalidAccountData)
	}
	if ctx.Key(from).Equals(ctx.Key(to)) {
		return nil
	}
	destination := ctx.Account(to)
	if destination == nil {
		destination = &Account{Owner: solana.SystemProgramID}
	}

	source.Lamports -= lamports
	destination.Lamports += lamports
	if err := ctx.Store(from, source); err != nil {
		return err
	}
	ctx.Logf("transfer %d lamports %s -> %s", lamports, ctx.Key(from), ctx.Key(to))
	return ctx.Store(to, destination)
}
