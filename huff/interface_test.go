package huff

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterfacePath(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(filepath.Join("contracts", "IToken.sol"),
		InterfacePath(filepath.Join("contracts", "Token.huff")))
	assert.Equal(filepath.Join("contracts", "utils", "Iowned.sol"),
		InterfacePath(filepath.Join("contracts", "utils", "owned.huff")))
	assert.Equal("ICounter.sol", InterfacePath("Counter.huff"))
}

const testInterfaceSource = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.0;

interface IToken {
	function balanceOf(address) view returns (uint256);
	function transfer(address to, uint256 amount) external returns (bool);
	function totalSupply() view returns (uint256);

	event Transfer(address indexed from, address indexed to, uint256 value);
	event Approval(address indexed owner, address indexed spender, uint256 value);
}
`

func TestLineScraperFunctions(t *testing.T) {
	assert := assert.New(t)

	sigs := NewLineScraper("function").ParseSignatures(testInterfaceSource)
	assert.Equal([]string{
		"function balanceOf(address) view returns (uint256)",
		"function transfer(address to, uint256 amount) external returns (bool)",
		"function totalSupply() view returns (uint256)",
	}, sigs)
}

func TestLineScraperEvents(t *testing.T) {
	assert := assert.New(t)

	sigs := NewLineScraper("event").ParseSignatures(testInterfaceSource)
	assert.Equal([]string{
		"event Transfer(address indexed from, address indexed to, uint256 value)",
		"event Approval(address indexed owner, address indexed spender, uint256 value)",
	}, sigs)
}

func TestLineScraperSkipsUnterminatedLines(t *testing.T) {
	assert := assert.New(t)

	sigs := NewLineScraper("function").ParseSignatures("interface IFoo {\nfunction foo()\n}\n")
	assert.Empty(sigs)
}

func TestLineScraperEmptySource(t *testing.T) {
	assert := assert.New(t)

	assert.Empty(NewLineScraper("function").ParseSignatures(""))
	assert.Empty(NewLineScraper("event").ParseSignatures(testInterfaceSource[:40]))
}
