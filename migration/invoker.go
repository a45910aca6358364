package migration

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Invoker dispatches a built call inside the caller's atomic operation.
// A returned error must abort that operation.
type Invoker interface {
	Invoke(ctx context.Context, ix solana.Instruction) error
}

type InvokerFunc func(ctx context.Context, ix solana.Instruction) error

func (f InvokerFunc) Invoke(ctx context.Context, ix solana.Instruction) error {
	return f(ctx, ix)
}
