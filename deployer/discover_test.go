package deployer

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverSources(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "utils"), 0755))

	writeSource(t, dir, "counter.huff")
	writeSource(t, filepath.Join(dir, "utils"), "owned.huff")
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "README.md"), []byte("docs"), 0644))

	d := &deployer{options: defaultOptions()}
	d.options.ContractsDir = dir

	sources, err := d.discoverSources()
	require.NoError(t, err)
	assert.Equal([]string{
		filepath.Join(dir, "counter.huff"),
		filepath.Join(dir, "utils", "owned.huff"),
	}, sources)
}

func TestDiscoverSourcesMissingDir(t *testing.T) {
	assert := assert.New(t)

	d := &deployer{options: defaultOptions()}
	d.options.ContractsDir = filepath.Join(t.TempDir(), "nonexistent")

	sources, err := d.discoverSources()
	assert.NoError(err)
	assert.Empty(sources)
}

func TestMatchContractSourceCaseInsensitive(t *testing.T) {
	assert := assert.New(t)

	sources := []string{
		filepath.Join("contracts", "token.huff"),
		filepath.Join("contracts", "counter.huff"),
	}

	match, shadowed := matchContractSource(sources, "Token")
	assert.Equal(filepath.Join("contracts", "token.huff"), match)
	assert.Empty(shadowed)

	match, _ = matchContractSource(sources, "COUNTER")
	assert.Equal(filepath.Join("contracts", "counter.huff"), match)

	match, _ = matchContractSource(sources, "unknown")
	assert.Empty(match)
}

func TestMatchContractSourceTieBreak(t *testing.T) {
	assert := assert.New(t)

	// both basenames match case-insensitively, first in discovery order wins
	sources := []string{
		filepath.Join("contracts", "FOO.huff"),
		filepath.Join("contracts", "foo.huff"),
	}

	match, shadowed := matchContractSource(sources, "foo")
	assert.Equal(filepath.Join("contracts", "FOO.huff"), match)
	assert.Equal([]string{filepath.Join("contracts", "foo.huff")}, shadowed)
}

func TestFindContractSourceTieBreakOnDisk(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	upper := writeSource(t, dir, "FOO.huff")
	writeSource(t, dir, "foo.huff")

	if entries, err := ioutil.ReadDir(dir); err == nil && len(entries) < 2 {
		t.Skip("case-insensitive filesystem")
	}

	d := &deployer{options: defaultOptions()}
	d.options.ContractsDir = dir

	match, err := d.findContractSource("foo")
	assert.NoError(err)
	assert.Equal(upper, match, "lexical walk order puts FOO.huff first")
}
