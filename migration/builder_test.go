package migration

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	raydiumamm "github.com/krazyTry/raydium-go/raydium_amm"
)

func TestBuildRequiresValidation(t *testing.T) {
	_, err := Build(Request{}, nil)
	assert.ErrorIs(t, err, ErrNotValidated)
}

func TestBuild(t *testing.T) {
	e := newEnv(t)
	validated, err := NewValidator(e.config).Validate(e.accounts, e.params())
	require.NoError(t, err)

	ix, err := Build(NewRequest(e.params(), uint64(testNow)), validated)
	require.NoError(t, err)
	assert.Equal(t, e.config.AmmProgram, ix.ProgramID())

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, raydiumamm.Initialize2DataSize)
	assert.Equal(t, byte(raydiumamm.Instruction_Initialize2), data[0])
	assert.Equal(t, byte(254), data[1])
	assert.Equal(t, uint64(testNow), binary.LittleEndian.Uint64(data[2:10]))
	// quote funds the pc side, base the coin side
	assert.Equal(t, testQuote, binary.LittleEndian.Uint64(data[10:18]))
	assert.Equal(t, testBase, binary.LittleEndian.Uint64(data[18:26]))

	metas := ix.Accounts()
	require.Len(t, metas, raydiumamm.Initialize2AccountsLen)
	refs := e.accounts.refs()
	for i, meta := range metas {
		ref := refs[i].ref
		assert.Equal(t, ref.Address, meta.PublicKey, refs[i].role)
		assert.Equal(t, ref.IsSigner, meta.IsSigner, refs[i].role)
		assert.Equal(t, ref.IsWritable, meta.IsWritable, refs[i].role)
	}
	assert.Equal(t, e.accounts.Addresses(), metaKeys(ix.Accounts()))
}
