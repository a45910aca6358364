package solana

import (
	"bytes"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// TokenAccountSize is the length of an SPL token account.
const TokenAccountSize = 165

// TokenAccount is an SPL token account and the address it was loaded from.
type TokenAccount struct {
	Address solana.PublicKey
	token.Account
}

func (a *TokenAccount) IsInitialized() bool {
	return a.State != token.Uninitialized
}

func (a *TokenAccount) IsFrozen() bool {
	return a.State == token.Frozen
}

// AccountLayout decodes and encodes the SPL token account layout
// https://github.com/solana-labs/solana-program-library/blob/d72289c79a04411c69a8bf1054f7156b6196f9b3/token/js/src/state/account.ts#L69
type AccountLayout struct {
}

func (l *AccountLayout) Decode(data []byte) (*TokenAccount, error) {
	if len(data) < TokenAccountSize {
		return nil, fmt.Errorf("token account data too short: %d", len(data))
	}
	account := &TokenAccount{}
	if err := binary.NewBinDecoder(data).Decode(&account.Account); err != nil {
		return nil, err
	}
	return account, nil
}

func (l *AccountLayout) Encode(account *token.Account) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.NewBinEncoder(&buf).Encode(account); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
