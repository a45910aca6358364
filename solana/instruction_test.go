package solana

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapSOL(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	ata, _, err := solana.FindAssociatedTokenAddress(owner, solana.WrappedSol)
	require.NoError(t, err)

	instructions := WrapSOL(owner, ata, 5_000)
	require.Len(t, instructions, 2)

	assert.Equal(t, solana.SystemProgramID, instructions[0].ProgramID())
	transfer := instructions[0].(*system.Instruction).Impl.(system.Transfer)
	assert.Equal(t, uint64(5_000), *transfer.Lamports)
	assert.Equal(t, owner, transfer.GetFundingAccount().PublicKey)
	assert.Equal(t, ata, transfer.GetRecipientAccount().PublicKey)

	assert.Equal(t, solana.TokenProgramID, instructions[1].ProgramID())
	assert.Equal(t, ata, instructions[1].Accounts()[0].PublicKey)
}

func TestMergeInstructions(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	ata, _, err := solana.FindAssociatedTokenAddress(owner, solana.WrappedSol)
	require.NoError(t, err)
	other := solana.NewInstruction(solana.NewWallet().PublicKey(), nil, []byte{1})

	var instructions []solana.Instruction
	for i := 0; i < 2; i++ {
		instructions = append(instructions, associatedtokenaccount.NewCreateInstruction(owner, owner, solana.WrappedSol).Build())
		instructions = append(instructions, WrapSOL(owner, ata, 100)...)
	}
	instructions = append(instructions, other)

	merged := MergeInstructions(instructions)
	require.Len(t, merged, 4)

	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, merged[0].ProgramID())
	transfer := merged[1].(*system.Instruction).Impl.(system.Transfer)
	assert.Equal(t, uint64(200), *transfer.Lamports)
	_, ok := merged[2].(*token.Instruction)
	assert.True(t, ok)
	assert.Equal(t, other, merged[3])
}

func TestMergeInstructionsKeepsDistinct(t *testing.T) {
	a, b := solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey()
	to := solana.NewWallet().PublicKey()

	merged := MergeInstructions([]solana.Instruction{
		system.NewTransferInstruction(1, a, to).Build(),
		system.NewTransferInstruction(2, b, to).Build(),
		token.NewSyncNativeInstruction(a).Build(),
		token.NewSyncNativeInstruction(b).Build(),
	})
	assert.Len(t, merged, 4)
}
