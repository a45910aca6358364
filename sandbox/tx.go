package sandbox

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Tx is one in-flight transaction of a Runtime. It implements migration.Invoker.
type Tx struct {
	rt      *Runtime
	signers map[solana.PublicKey]bool
	logger  *zap.Logger
	depth   int

	// first failed instruction; it aborts the transaction even if the caller drops it
	err error
}

func (tx *Tx) IsSigner(key solana.PublicKey) bool {
	return tx.signers[key]
}

// Now is the runtime clock as seen by the transaction.
func (tx *Tx) Now() int64 {
	return tx.rt.clock.Load()
}

// Err is the failure that aborted the transaction, if any.
func (tx *Tx) Err() error {
	return tx.err
}

func (tx *Tx) fail(err error) error {
	if tx.err == nil {
		tx.err = err
	}
	return err
}

// Invoke executes ix against the ledger. Changes stay visible to the rest of the
// transaction and are rolled back with it. A failed instruction leaves the ledger
// untouched and aborts the transaction: Runtime.Atomic returns the failure even
// when the caller ignores it.
func (tx *Tx) Invoke(ctx context.Context, ix solana.Instruction) error {
	if err := ctx.Err(); err != nil {
		return tx.fail(err)
	}
	if tx.depth >= maxCallDepth {
		return tx.fail(ErrCallDepth)
	}

	programID := ix.ProgramID()
	data, err := ix.Data()
	if err != nil {
		return tx.fail(&InstructionError{Program: programID, Err: fmt.Errorf("%w: %v", ErrInvalidInstructionData, err)})
	}
	metas := ix.Accounts()
	for _, meta := range metas {
		if meta.IsSigner && !tx.signers[meta.PublicKey] {
			return tx.fail(&InstructionError{Program: programID, Err: fmt.Errorf("%w: %s", ErrMissingRequiredSignature, meta.PublicKey)})
		}
	}

	program, ok := tx.rt.programs[programID]
	if !ok {
		return tx.fail(&InstructionError{Program: programID, Err: ErrUnknownProgram})
	}

	snapshot := tx.rt.snapshot()
	ictx := &InvokeContext{ctx: ctx, tx: tx, programID: programID, metas: metas}
	tx.depth++
	err = program.Execute(ictx, data)
	tx.depth--
	if err != nil {
		tx.rt.accounts = snapshot
		tx.logger.Debug("instruction failed",
			zap.Stringer("program", programID),
			zap.Strings("logs", ictx.logs),
			zap.Error(err),
		)
		return tx.fail(&InstructionError{Program: programID, Err: err, Logs: ictx.logs})
	}
	return nil
}

// InvokeContext gives a program access to the accounts of its instruction.
type InvokeContext struct {
	ctx       context.Context
	tx        *Tx
	programID solana.PublicKey
	metas     []*solana.AccountMeta
	logs      []string
}

func (c *InvokeContext) Context() context.Context {
	return c.ctx
}

func (c *InvokeContext) ProgramID() solana.PublicKey {
	return c.programID
}

func (c *InvokeContext) Len() int {
	return len(c.metas)
}

func (c *InvokeContext) Now() int64 {
	return c.tx.Now()
}

func (c *InvokeContext) Key(i int) solana.PublicKey {
	return c.metas[i].PublicKey
}

func (c *InvokeContext) IsSigner(i int) bool {
	return c.metas[i].IsSigner && c.tx.signers[c.metas[i].PublicKey]
}

func (c *InvokeContext) IsWritable(i int) bool {
	return c.metas[i].IsWritable
}

// Account returns a copy of account i, or nil if it does not exist.
func (c *InvokeContext) Account(i int) *Account {
	return c.tx.rt.accounts[c.Key(i)].Clone()
}

// Store replaces account i.
func (c *InvokeContext) Store(i int, account *Account) error {
	if !c.IsWritable(i) {
		return fmt.Errorf("%w: %s", ErrReadonlyDataModified, c.Key(i))
	}
	c.tx.rt.accounts[c.Key(i)] = account.Clone()
	return nil
}

// Create initialises account i. Only a missing or empty system account can be created.
func (c *InvokeContext) Create(i int, account *Account) error {
	if existing := c.tx.rt.accounts[c.Key(i)]; existing != nil {
		if !existing.Owner.Equals(solana.SystemProgramID) || len(existing.Data) > 0 {
			return fmt.Errorf("%w: %s", ErrAccountAlreadyInitialized, c.Key(i))
		}
		account = account.Clone()
		account.Lamports += existing.Lamports
	}
	return c.Store(i, account)
}

func (c *InvokeContext) Logf(format string, args ...interface{}) {
	c.logs = append(c.logs, fmt.Sprintf("Program log: "+format, args...))
}

// Account reads the ledger from inside the transaction.
func (tx *Tx) Account(address solana.PublicKey) (*Account, bool) {
	account, ok := tx.rt.accounts[address]
	return account.Clone(), ok
}
