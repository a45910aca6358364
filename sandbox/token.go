package sandbox

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"

	solanago "github.com/krazyTry/raydium-go/solana"
)

// MinimumBalance is the rent exempt balance for size bytes of data.
func MinimumBalance(size int) uint64 {
	const (
		lamportsPerByteYear = 3480
		exemptionYears      = 2
		accountOverhead     = 128
	)
	return uint64(size+accountOverhead) * lamportsPerByteYear * exemptionYears
}

func encodeMint(mint *token.Mint) (*Account, error) {
	data, err := new(solanago.TokenLayout).Encode(mint)
	if err != nil {
		return nil, err
	}
	return &Account{Lamports: MinimumBalance(len(data)), Owner: solana.TokenProgramID, Data: data}, nil
}

func encodeTokenAccount(account *token.Account) (*Account, error) {
	data, err := new(solanago.AccountLayout).Encode(account)
	if err != nil {
		return nil, err
	}
	return &Account{Lamports: MinimumBalance(len(data)), Owner: solana.TokenProgramID, Data: data}, nil
}

func decodeMint(account *Account) (*solanago.Token, error) {
	if account == nil || !account.Owner.Equals(solana.TokenProgramID) {
		return nil, ErrIncorrectProgramID
	}
	mint, err := new(solanago.TokenLayout).Decode(account.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccountData, err)
	}
	if !mint.IsInitialized {
		return nil, fmt.Errorf("%w: mint not initialized", ErrInvalidAccountData)
	}
	return mint, nil
}

func decodeTokenAccount(account *Account) (*solanago.TokenAccount, error) {
	if account == nil || !account.Owner.Equals(solana.TokenProgramID) {
		return nil, ErrIncorrectProgramID
	}
	tokenAccount, err := new(solanago.AccountLayout).Decode(account.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAccountData, err)
	}
	if !tokenAccount.IsInitialized() {
		return nil, fmt.Errorf("%w: token account not initialized", ErrInvalidAccountData)
	}
	return tokenAccount, nil
}

// Fund credits lamports to a system account, creating it if needed.
func (r *Runtime) Fund(address solana.PublicKey, lamports uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[address]
	if !ok {
		account = &Account{Owner: solana.SystemProgramID}
		r.accounts[address] = account
	}
	account.Lamports += lamports
}

func (r *Runtime) CreateMint(address solana.PublicKey, decimals uint8, authority solana.PublicKey) error {
	account, err := encodeMint(&token.Mint{
		MintAuthority: &authority,
		Decimals:      decimals,
		IsInitialized: true,
	})
	if err != nil {
		return err
	}
	r.SetAccount(address, account)
	return nil
}

func (r *Runtime) CreateTokenAccount(address, mint, owner solana.PublicKey, amount uint64) error {
	account, err := encodeTokenAccount(&token.Account{
		Mint:   mint,
		Owner:  owner,
		Amount: amount,
		State:  token.Initialized,
	})
	if err != nil {
		return err
	}
	r.SetAccount(address, account)
	return nil
}

func (r *Runtime) TokenAccount(address solana.PublicKey) (*solanago.TokenAccount, error) {
	account, _ := r.Account(address)
	tokenAccount, err := decodeTokenAccount(account)
	if err != nil {
		return nil, err
	}
	tokenAccount.Address = address
	return tokenAccount, nil
}

func (r *Runtime) Mint(address solana.PublicKey) (*solanago.Token, error) {
	account, _ := r.Account(address)
	mint, err := decodeMint(account)
	if err != nil {
		return nil, err
	}
	mint.Owner = account.Owner
	return mint, nil
}
