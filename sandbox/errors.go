package sandbox

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

var (
	ErrAccountAlreadyInitialized = errors.New("account already initialized")
	ErrInsufficientFunds         = errors.New("insufficient funds")
	ErrInvalidInstructionData    = errors.New("invalid instruction data")
	ErrNotEnoughAccountKeys      = errors.New("not enough account keys")
	ErrMissingRequiredSignature  = errors.New("missing required signature")
	ErrReadonlyDataModified      = errors.New("instruction modified a read-only account")
	ErrInvalidSeeds              = errors.New("provided seeds do not result in a valid address")
	ErrIncorrectProgramID        = errors.New("incorrect program id")
	ErrInvalidAccountData        = errors.New("invalid account data")
	ErrUnknownProgram            = errors.New("program not found")
	ErrCallDepth                 = errors.New("cross-program invocation depth exceeded")
)

// InstructionError is a failed instruction together with the logs it produced.
type InstructionError struct {
	Program solana.PublicKey
	Err     error
	Logs    []string
}

func (e *InstructionError) Error() string {
	msg := fmt.Sprintf("program %s failed: %v", e.Program, e.Err)
	if len(e.Logs) > 0 {
		msg += "\n" + strings.Join(e.Logs, "\n")
	}
	return msg
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}
