package solana

import (
	"bytes"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// Token represents a Solana token with mint information and owner
type Token struct {
	token.Mint
	// Owner account of the token
	Owner solana.PublicKey
}

// TokenLayout provides methods for decoding token data
type TokenLayout struct {
}

func (l *TokenLayout) Decode(data []byte) (*Token, error) {
	if len(data) < token.MINT_SIZE {
		return nil, fmt.Errorf("mint data too short: %d", len(data))
	}
	t := &Token{}
	if err := binary.NewBinDecoder(data).Decode(&t.Mint); err != nil {
		return nil, err
	}
	return t, nil
}

func (l *TokenLayout) Encode(mint *token.Mint) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.NewBinEncoder(&buf).Encode(mint); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
