package solana

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	sendandconfirmtransaction "github.com/gagliardetto/solana-go/rpc/sendAndConfirmTransaction"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// Signer returns the private key for key, or nil when it cannot sign.
type Signer = func(key solana.PublicKey) *solana.PrivateKey

// TransactionError is a transaction that reached a validator and failed there.
type TransactionError struct {
	Signature solana.Signature
	Err       interface{}
	Logs      []string
}

func (e *TransactionError) Error() string {
	var b strings.Builder
	if !e.Signature.IsZero() {
		fmt.Fprintf(&b, "transaction %s failed: %v", e.Signature, e.Err)
	} else {
		fmt.Fprintf(&b, "transaction failed: %v", e.Err)
	}
	if len(e.Logs) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(e.Logs, "\n"))
	}
	return b.String()
}

// WalletSigner signs for the given wallets only.
func WalletSigner(wallets ...*solana.Wallet) Signer {
	return func(key solana.PublicKey) *solana.PrivateKey {
		for _, w := range wallets {
			if key.Equals(w.PublicKey()) {
				return &w.PrivateKey
			}
		}
		return nil
	}
}

func BuildTransaction(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	instructions []solana.Instruction,
	payer solana.PublicKey,
	sign Signer,
) (*solana.Transaction, error) {
	latestBlockhash, err := GetLatestBlockhash(ctx, rpcClient, commitment)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(instructions, latestBlockhash, solana.TransactionPayer(payer))
	if err != nil {
		return nil, err
	}

	if _, err = tx.Sign(sign); err != nil {
		return nil, err
	}
	return tx, nil
}

// SimulateInstruction runs the instructions through simulateTransaction and
// returns a *TransactionError when the simulated execution fails.
func SimulateInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	instructions []solana.Instruction,
	payer solana.PublicKey,
	sign Signer,
) (*rpc.SimulateTransactionResult, error) {
	tx, err := BuildTransaction(ctx, rpcClient, commitment, instructions, payer, sign)
	if err != nil {
		return nil, err
	}

	resp, err := rpcClient.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:  true,
		Commitment: commitment,
	})
	if err != nil {
		return nil, err
	}
	if resp.Value == nil {
		return nil, fmt.Errorf("empty simulation result")
	}
	if resp.Value.Err != nil {
		return resp.Value, &TransactionError{Err: resp.Value.Err, Logs: resp.Value.Logs}
	}
	return resp.Value, nil
}

// SendInstruction signs, submits and waits for the instructions to land.
func SendInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	wsClient *ws.Client,
	commitment rpc.CommitmentType,
	instructions []solana.Instruction,
	payer solana.PublicKey,
	sign Signer,
	confirmTimeout time.Duration,
) (solana.Signature, error) {
	tx, err := BuildTransaction(ctx, rpcClient, commitment, instructions, payer, sign)
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: commitment,
		},
	)
	if err != nil {
		return solana.Signature{}, err
	}

	if wsClient != nil {
		var timeout *time.Duration
		if confirmTimeout > 0 {
			timeout = &confirmTimeout
		}
		confirmed, err := sendandconfirmtransaction.WaitForConfirmation(ctx, wsClient, sig, timeout)
		if confirmed {
			if err != nil {
				return sig, &TransactionError{Signature: sig, Err: err}
			}
			return sig, nil
		}
	}

	statusResp, err := rpcClient.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		return sig, fmt.Errorf("rpc GetSignatureStatuses error: %w", err)
	}
	return sig, signatureStatusError(sig, statusResp)
}

func signatureStatusError(sig solana.Signature, resp *rpc.GetSignatureStatusesResult) error {
	if resp == nil || len(resp.Value) == 0 || resp.Value[0] == nil {
		return fmt.Errorf("transaction %s not found (maybe dropped)", sig)
	}
	if status := resp.Value[0]; status.Err != nil {
		return &TransactionError{Signature: sig, Err: status.Err}
	}
	return nil
}
