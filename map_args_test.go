package main

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

func testArguments(t *testing.T, types ...string) abi.Arguments {
	t.Helper()

	args := make(abi.Arguments, 0, len(types))
	for _, typ := range types {
		abiType, err := abi.NewType(typ, "", nil)
		require.NoError(t, err)
		args = append(args, abi.Argument{Type: abiType})
	}

	return args
}

func TestMapStringArgs(t *testing.T) {
	assert := assert.New(t)

	inputs := testArguments(t, "address", "uint256", "uint8", "bool", "string")
	out, err := mapStringArgs(inputs, []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"1000000000000000000",
		"18",
		"true",
		"hello",
	})
	require.NoError(t, err)

	assert.Equal(common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"), out[0])
	assert.Equal(new(big.Int).SetUint64(1000000000000000000), out[1])
	assert.Equal(uint8(18), out[2])
	assert.Equal(true, out[3])
	assert.Equal("hello", out[4])
}

func TestMapStringArgsErrors(t *testing.T) {
	assert := assert.New(t)

	inputs := testArguments(t, "uint256")

	_, err := mapStringArgs(inputs, []string{"1", "2"})
	assert.Error(err, "args count mismatch")

	_, err = mapStringArgs(inputs, []string{"not-a-number"})
	if assert.Error(err) {
		assert.True(strings.Contains(err.Error(), "failed to map"))
	}
}
