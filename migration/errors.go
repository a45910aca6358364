package migration

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"

	solanago "github.com/krazyTry/raydium-go/solana"
)

var (
	ErrAddressMismatch     = errors.New("address mismatch")
	ErrOwnerMismatch       = errors.New("owner mismatch")
	ErrSignerMissing       = errors.New("missing required signature")
	ErrNotWritable         = errors.New("account not writable")
	ErrNonceMismatch       = errors.New("nonce does not match amm authority bump")
	ErrDerivationExhausted = solanago.ErrDerivationExhausted
	ErrExternalCallFailure = errors.New("external call failed")
	ErrNegativeTimestamp   = errors.New("negative clock timestamp")
	ErrClockUnavailable    = errors.New("clock unavailable")
	ErrNotValidated        = errors.New("accounts not validated")
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrMintMismatch        = errors.New("mint mismatch")
	ErrAccountNotFound     = errors.New("account not found")
)

// AccountError reports which account failed which check.
type AccountError struct {
	Role     Role
	Expected solana.PublicKey
	Actual   solana.PublicKey
	Err      error
}

func (e *AccountError) Error() string {
	if e.Expected.IsZero() {
		return fmt.Sprintf("%s %s: %v", e.Role, e.Actual, e.Err)
	}
	return fmt.Sprintf("%s: %v: expected %s, got %s", e.Role, e.Err, e.Expected, e.Actual)
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

// ExternalCallError wraps whatever the invoked program returned.
type ExternalCallError struct {
	Program solana.PublicKey
	Err     error
}

func (e *ExternalCallError) Error() string {
	return fmt.Sprintf("%v: program %s: %v", ErrExternalCallFailure, e.Program, e.Err)
}

func (e *ExternalCallError) Unwrap() []error {
	return []error{ErrExternalCallFailure, e.Err}
}
