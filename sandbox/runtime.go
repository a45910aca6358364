package sandbox

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

var (
	NativeLoaderID = solana.MustPublicKeyFromBase58("NativeLoader1111111111111111111111111111111")
	SysvarOwnerID  = solana.MustPublicKeyFromBase58("Sysvar1111111111111111111111111111111111111")
)

const maxCallDepth = 4

// Account is a ledger entry.
type Account struct {
	Lamports   uint64
	Owner      solana.PublicKey
	Data       []byte
	Executable bool
}

func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	out := *a
	out.Data = append([]byte(nil), a.Data...)
	return &out
}

// Program executes the instructions addressed to it.
type Program interface {
	Execute(ctx *InvokeContext, data []byte) error
}

type ProgramFunc func(ctx *InvokeContext, data []byte) error

func (f ProgramFunc) Execute(ctx *InvokeContext, data []byte) error {
	return f(ctx, data)
}

// Runtime is an in-memory ledger that executes instructions inside atomic transactions.
type Runtime struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey]*Account
	programs map[solana.PublicKey]Program
	clock    atomic.Int64
	logger   *zap.Logger
}

type Option func(*Runtime)

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithClock(unix int64) Option {
	return func(r *Runtime) {
		r.clock.Store(unix)
	}
}

// NewRuntime returns a ledger holding the system program, the token programs and the rent sysvar.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		accounts: make(map[solana.PublicKey]*Account),
		programs: make(map[solana.PublicKey]Program),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("sandbox")

	r.RegisterProgram(solana.SystemProgramID, systemProgram{})
	r.RegisterProgram(solana.TokenProgramID, nil)
	r.RegisterProgram(solana.SPLAssociatedTokenAccountProgramID, nil)
	r.SetAccount(solana.SysVarRentPubkey, &Account{Lamports: 1, Owner: SysvarOwnerID, Data: make([]byte, 17)})
	return r
}

// RegisterProgram deploys an executable account at id. A nil program can be
// referenced but not invoked.
func (r *Runtime) RegisterProgram(id solana.PublicKey, program Program) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner := solana.BPFLoaderUpgradeableProgramID
	if id.Equals(solana.SystemProgramID) {
		owner = NativeLoaderID
	}
	r.accounts[id] = &Account{Lamports: 1, Owner: owner, Executable: true}
	if program != nil {
		r.programs[id] = program
	}
}

func (r *Runtime) SetAccount(address solana.PublicKey, account *Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[address] = account.Clone()
}

// Account returns a copy of the account at address.
func (r *Runtime) Account(address solana.PublicKey) (*Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[address]
	return account.Clone(), ok
}

// Owners resolves account owners; unknown accounts resolve to the zero key.
func (r *Runtime) Owners(_ context.Context, keys []solana.PublicKey) ([]solana.PublicKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	owners := make([]solana.PublicKey, len(keys))
	for i, key := range keys {
		if account, ok := r.accounts[key]; ok {
			owners[i] = account.Owner
		}
	}
	return owners, nil
}

func (r *Runtime) SetClock(unix int64) {
	r.clock.Store(unix)
}

func (r *Runtime) UnixTimestamp(context.Context) (int64, error) {
	return r.clock.Load(), nil
}

func (r *Runtime) snapshot() map[solana.PublicKey]*Account {
	out := make(map[solana.PublicKey]*Account, len(r.accounts))
	for k, v := range r.accounts {
		out[k] = v.Clone()
	}
	return out
}

// Atomic runs fn as one transaction signed by signers. If fn returns an error,
// panics, or any instruction it invoked failed, every change made through the
// transaction is discarded. fn must go through tx: apart from the clock, Runtime
// methods deadlock when called from inside fn.
func (r *Runtime) Atomic(ctx context.Context, signers []solana.PublicKey, fn func(tx *Tx) error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.snapshot()
	defer func() {
		if p := recover(); p != nil {
			r.accounts = snapshot
			panic(p)
		}
		if err != nil {
			r.accounts = snapshot
			r.logger.Debug("transaction rolled back", zap.Error(err))
		}
	}()

	tx := &Tx{
		rt:      r,
		signers: make(map[solana.PublicKey]bool, len(signers)),
		logger:  r.logger,
	}
	for _, s := range signers {
		tx.signers[s] = true
	}

	if err = fn(tx); err != nil {
		return err
	}
	if tx.err != nil {
		return tx.err
	}
	return ctx.Err()
}
