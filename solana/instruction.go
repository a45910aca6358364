package solana

import (
	"context"
	bin "encoding/binary"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// PrepareTokenATA appends a create instruction when owner has no associated token account for mint.
// The existing account is returned when there is one.
func PrepareTokenATA(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	owner solana.PublicKey,
	mint solana.PublicKey,
	payer solana.PublicKey,
	instructions *[]solana.Instruction,
) (solana.PublicKey, *TokenAccount, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}

	accounts, err := GetMultipleTokenAccount(ctx, rpcClient, commitment, ata)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	if accounts[0] == nil {
		*instructions = append(*instructions, associatedtokenaccount.NewCreateInstruction(payer, owner, mint).Build())
	}
	return ata, accounts[0], nil
}

// WrapSOLInstructions tops owner's wrapped SOL account up to amount lamports.
func WrapSOLInstructions(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	owner solana.PublicKey,
	payer solana.PublicKey,
	amount uint64,
) (solana.PublicKey, []solana.Instruction, error) {
	var instructions []solana.Instruction
	ata, account, err := PrepareTokenATA(ctx, rpcClient, commitment, owner, solana.WrappedSol, payer, &instructions)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}

	var balance uint64
	if account != nil {
		balance = account.Amount
	}
	if balance < amount {
		instructions = append(instructions, WrapSOL(owner, ata, amount-balance)...)
	}
	return ata, instructions, nil
}

// WrapSOL moves lamports into a wrapped SOL token account and syncs its balance.
func WrapSOL(owner, tokenAccount solana.PublicKey, lamports uint64) []solana.Instruction {
	return []solana.Instruction{
		system.NewTransferInstruction(lamports, owner, tokenAccount).Build(),
		token.NewSyncNativeInstruction(tokenAccount).Build(),
	}
}

var (
	ataInstructionTypeID        = binary.NoTypeIDDefaultID
	transferInstructionTypeID   = binary.TypeIDFromUint32(system.Instruction_Transfer, bin.LittleEndian)
	syncNativeInstructionTypeID = binary.TypeIDFromUint8(token.Instruction_SyncNative)
)

// MergeInstructions drops repeated ATA creates and sync natives, and folds
// transfers between the same pair of accounts into the first one.
func MergeInstructions(oldInstructions []solana.Instruction) []solana.Instruction {
	var (
		ataCreateInstructions  []*associatedtokenaccount.Create
		transferInstructions   []*system.Transfer
		syncNativeInstructions []*token.SyncNative

		newInstructions []solana.Instruction
	)

	for _, v := range oldInstructions {
		switch inst := v.(type) {
		case *associatedtokenaccount.Instruction:
			if inst.TypeID != ataInstructionTypeID {
				newInstructions = append(newInstructions, v)
				break
			}

			ataCreate, ok := inst.Impl.(associatedtokenaccount.Create)
			if !ok {
				newInstructions = append(newInstructions, v)
				break
			}

			duplicate := false
			for _, instruction := range ataCreateInstructions {
				if ataCreate.Mint == instruction.Mint &&
					ataCreate.Payer == instruction.Payer &&
					ataCreate.Wallet == instruction.Wallet {
					duplicate = true
					break
				}
			}
			if !duplicate {
				ataCreateInstructions = append(ataCreateInstructions, &ataCreate)
				newInstructions = append(newInstructions, v)
			}
		case *system.Instruction:
			if inst.TypeID != transferInstructionTypeID {
				newInstructions = append(newInstructions, v)
				break
			}

			transfer, ok := inst.Impl.(system.Transfer)
			if !ok {
				newInstructions = append(newInstructions, v)
				break
			}

			duplicate := false
			for _, instruction := range transferInstructions {
				if transfer.GetFundingAccount().PublicKey == instruction.GetFundingAccount().PublicKey &&
					transfer.GetRecipientAccount().PublicKey == instruction.GetRecipientAccount().PublicKey {
					duplicate = true
					// add lamports to first
					*instruction.Lamports += *transfer.Lamports
					break
				}
			}
			if !duplicate {
				transferInstructions = append(transferInstructions, &transfer)
				newInstructions = append(newInstructions, v)
			}
		case *token.Instruction:
			if inst.TypeID != syncNativeInstructionTypeID {
				newInstructions = append(newInstructions, v)
				break
			}

			syncNative, ok := inst.Impl.(token.SyncNative)
			if !ok {
				newInstructions = append(newInstructions, v)
				break
			}

			duplicate := false
			for _, instruction := range syncNativeInstructions {
				if syncNative.GetTokenAccount().PublicKey == instruction.GetTokenAccount().PublicKey {
					duplicate = true
					break
				}
			}
			if !duplicate {
				syncNativeInstructions = append(syncNativeInstructions, &syncNative)
				newInstructions = append(newInstructions, v)
			}
		default:
			newInstructions = append(newInstructions, v)
		}
	}

	return newInstructions
}
