package huff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseABI(t *testing.T) {
	assert := assert.New(t)

	parsedABI, abiJSON, err := ParseABI(
		[]string{
			"function balanceOf(address) view returns (uint256)",
			"function transfer(address to, uint256 amount) external returns (bool)",
			"function name() view returns (string memory)",
			"function deposit() payable",
		},
		[]string{
			"event Transfer(address indexed from, address indexed to, uint256 value)",
		},
	)
	require.NoError(t, err)
	assert.NotEmpty(abiJSON)

	balanceOf, ok := parsedABI.Methods["balanceOf"]
	require.True(t, ok)
	assert.Equal("view", balanceOf.StateMutability)
	require.Len(t, balanceOf.Inputs, 1)
	assert.Equal("address", balanceOf.Inputs[0].Type.String())
	require.Len(t, balanceOf.Outputs, 1)
	assert.Equal("uint256", balanceOf.Outputs[0].Type.String())

	transfer, ok := parsedABI.Methods["transfer"]
	require.True(t, ok)
	assert.Equal("nonpayable", transfer.StateMutability)
	assert.Equal("to", transfer.Inputs[0].Name)
	assert.Equal("amount", transfer.Inputs[1].Name)

	name, ok := parsedABI.Methods["name"]
	require.True(t, ok)
	assert.Equal("string", name.Outputs[0].Type.String())

	deposit, ok := parsedABI.Methods["deposit"]
	require.True(t, ok)
	assert.Equal("payable", deposit.StateMutability)

	transferEvent, ok := parsedABI.Events["Transfer"]
	require.True(t, ok)
	require.Len(t, transferEvent.Inputs, 3)
	assert.True(transferEvent.Inputs[0].Indexed)
	assert.True(transferEvent.Inputs[1].Indexed)
	assert.False(transferEvent.Inputs[2].Indexed)
}

func TestParseABITypeAliases(t *testing.T) {
	assert := assert.New(t)

	parsedABI, _, err := ParseABI([]string{
		"function sum(uint[] values) pure returns (uint)",
	}, nil)
	assert.NoError(err)

	sum := parsedABI.Methods["sum"]
	assert.Equal("uint256[]", sum.Inputs[0].Type.String())
	assert.Equal("uint256", sum.Outputs[0].Type.String())
}

func TestParseABIMalformed(t *testing.T) {
	assert := assert.New(t)

	_, _, err := ParseABI([]string{"function broken(address"}, nil)
	assert.Error(err)

	_, _, err = ParseABI([]string{"event NotAFunction()"}, nil)
	assert.Error(err)

	_, _, err = ParseABI([]string{"function ()"}, nil)
	assert.Error(err)
}
