package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/tidwall/gjson"
)

// CurrentUnixTimestamp reads the block time of the current slot.
func CurrentUnixTimestamp(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType) (int64, error) {
	currentSlot, err := rpcClient.GetSlot(ctx, commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to get slot: %w", err)
	}

	currentTime, err := rpcClient.GetBlockTime(ctx, currentSlot)
	if err != nil {
		return 0, fmt.Errorf("failed to get block time: %w", err)
	}
	if currentTime == nil {
		return 0, fmt.Errorf("block time unavailable for slot %d", currentSlot)
	}
	return currentTime.Time().Unix(), nil
}

func GetLatestBlockhash(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType) (solana.Hash, error) {
	recent, err := rpcClient.GetLatestBlockhash(ctx, commitment)
	if err != nil {
		return solana.Hash{}, err
	}
	return recent.Value.Blockhash, nil
}

func GetMultipleAccountInfo(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType, accounts []solana.PublicKey) (*rpc.GetMultipleAccountsResult, error) {
	return rpcClient.GetMultipleAccountsWithOpts(ctx, accounts, &rpc.GetMultipleAccountsOpts{Commitment: commitment, Encoding: solana.EncodingBase64})
}

// GetMultipleToken loads mints; missing accounts are returned as nil entries.
func GetMultipleToken(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType, mints ...solana.PublicKey) ([]*Token, error) {
	outs, err := GetMultipleAccountInfo(ctx, rpcClient, commitment, mints)
	if err != nil {
		return nil, err
	}
	list := make([]*Token, len(outs.Value))
	for i, out := range outs.Value {
		if out == nil {
			continue
		}

		token, err := new(TokenLayout).Decode(out.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("decode mint %s: %w", mints[i], err)
		}
		token.Owner = out.Owner

		list[i] = token
	}
	return list, nil
}

// GetMultipleTokenAccount loads token accounts; missing accounts are returned as nil entries.
func GetMultipleTokenAccount(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType, accounts ...solana.PublicKey) ([]*TokenAccount, error) {
	outs, err := GetMultipleAccountInfo(ctx, rpcClient, commitment, accounts)
	if err != nil {
		return nil, err
	}
	list := make([]*TokenAccount, len(outs.Value))
	for i, out := range outs.Value {
		if out == nil {
			continue
		}

		account, err := new(AccountLayout).Decode(out.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("decode token account %s: %w", accounts[i], err)
		}
		account.Address = accounts[i]

		list[i] = account
	}
	return list, nil
}

// TokenBalances returns the raw balance per mint held by owner under tokenProgram.
func TokenBalances(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType, owner, tokenProgram solana.PublicKey) (map[solana.PublicKey]uint64, error) {
	resp, err := rpcClient.GetTokenAccountsByOwner(ctx, owner, &rpc.GetTokenAccountsConfig{
		ProgramId: &tokenProgram,
	}, &rpc.GetTokenAccountsOpts{
		Encoding:   solana.EncodingJSONParsed,
		Commitment: commitment,
	})
	if err != nil {
		return nil, err
	}
	/*
		{
			"parsed": {
				"info": {
					"isNative": false,
					"mint": "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB",
					"owner": "5HfLhj117ucm2FoqjfcSeZMf91CuJbzxZ9BeRRpZWN6m",
					"state": "initialized",
					"tokenAmount": {
						"amount": "0",
						"decimals": 6,
						"uiAmount": 0.0,
						"uiAmountString": "0"
					}
				},
				"type": "account"
			},
			"program": "spl-token",
			"space": 165
		}
	*/
	return parseTokenBalances(resp.Value)
}

func parseTokenBalances(accounts []*rpc.TokenAccount) (map[solana.PublicKey]uint64, error) {
	balances := make(map[solana.PublicKey]uint64)
	for _, v := range accounts {
		if v == nil || v.Account.Data == nil {
			continue
		}
		raw := v.Account.Data.GetRawJSON()
		mint := gjson.GetBytes(raw, "parsed.info.mint").String()
		if mint == "" {
			continue
		}
		key, err := solana.PublicKeyFromBase58(mint)
		if err != nil {
			return nil, fmt.Errorf("parse mint %q: %w", mint, err)
		}
		balances[key] += gjson.GetBytes(raw, "parsed.info.tokenAmount.amount").Uint()
	}
	return balances, nil
}
