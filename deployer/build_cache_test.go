package deployer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InjectiveLabs/huffman/huff"
)

func TestBuildCacheRoundtrip(t *testing.T) {
	assert := assert.New(t)

	sourceDir := t.TempDir()
	sourcePath := writeSource(t, sourceDir, "counter.huff")

	cache, err := NewBuildCache(t.TempDir())
	require.NoError(t, err)

	contract := &huff.Contract{
		Name:            "Counter",
		SourcePath:      sourcePath,
		CompilerVersion: "huff_cli 0.3.2",
		FuncSignatures:  []string{"function getCount() view returns (uint256)"},
		EventSignatures: []string{"event Incremented(address indexed by, uint256 newCount)"},
		ABI:             []byte(`[{"type":"function","name":"getCount","inputs":[]}]`),
		Bin:             "600080",
	}

	require.NoError(t, cache.StoreContract(sourcePath, nil, contract))

	loaded, err := cache.LoadContract(sourcePath, nil, "Counter")
	require.NoError(t, err)
	assert.Equal(contract.Name, loaded.Name)
	assert.Equal(contract.CompilerVersion, loaded.CompilerVersion)
	assert.Equal(contract.FuncSignatures, loaded.FuncSignatures)
	assert.Equal(contract.EventSignatures, loaded.EventSignatures)
	assert.Equal(contract.Bin, loaded.Bin)
	assert.JSONEq(string(contract.ABI), string(loaded.ABI))
}

func TestBuildCacheMissAndInputsKey(t *testing.T) {
	assert := assert.New(t)

	sourceDir := t.TempDir()
	sourcePath := writeSource(t, sourceDir, "counter.huff")

	cache, err := NewBuildCache(t.TempDir())
	require.NoError(t, err)

	_, err = cache.LoadContract(sourcePath, nil, "Counter")
	assert.Equal(ErrNoCache, err)

	contract := &huff.Contract{
		Name: "Counter",
		ABI:  []byte(`[]`),
		Bin:  "600080",
	}
	require.NoError(t, cache.StoreContract(sourcePath, []string{"42"}, contract))

	// different constructor inputs must not hit the entry
	_, err = cache.LoadContract(sourcePath, []string{"43"}, "Counter")
	assert.Equal(ErrNoCache, err)

	loaded, err := cache.LoadContract(sourcePath, []string{"42"}, "Counter")
	assert.NoError(err)
	assert.Equal(contract.Bin, loaded.Bin)
}

func TestBuildCacheClear(t *testing.T) {
	assert := assert.New(t)

	sourceDir := t.TempDir()
	sourcePath := writeSource(t, sourceDir, "counter.huff")

	cache, err := NewBuildCache(t.TempDir())
	require.NoError(t, err)

	contract := &huff.Contract{Name: "Counter", ABI: []byte(`[]`), Bin: "600080"}
	require.NoError(t, cache.StoreContract(sourcePath, nil, contract))
	require.NoError(t, cache.Clear())

	_, err = cache.LoadContract(sourcePath, nil, "Counter")
	assert.Equal(ErrNoCache, err)
}
