package deployer

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InjectiveLabs/huffman/huff"
)

const fakeInterfaceSource = `interface ICounter {
	function getCount() view returns (uint256);
	function increment() external;

	event Incremented(address indexed by, uint256 newCount);
}
`

// fakeCompiler implements huff.Compiler without spawning subprocesses. It
// still writes the interface file to disk, so cleanup behavior is observable.
type fakeCompiler struct {
	bytecodeCalls  int
	interfaceCalls int
	artifactCalls  int

	lastSourcePath string
	lastInputs     []string
	lastFlags      []huff.CompilerArg

	bin         string
	ifaceSource string
}

func newFakeCompiler() *fakeCompiler {
	return &fakeCompiler{
		bin:         "60003560e01c8063",
		ifaceSource: fakeInterfaceSource,
	}
}

func (f *fakeCompiler) Version() string {
	return "huff_cli 0.3.2 (fake)"
}

func (f *fakeCompiler) CompileBytecode(path string, constructorInputs []string, flags []huff.CompilerArg) (string, error) {
	f.bytecodeCalls++
	f.lastSourcePath = path
	f.lastInputs = constructorInputs
	f.lastFlags = flags

	return f.bin, nil
}

func (f *fakeCompiler) CompileInterface(path string) (*huff.Interface, error) {
	f.interfaceCalls++

	ifacePath := huff.InterfacePath(path)
	if err := ioutil.WriteFile(ifacePath, []byte(f.ifaceSource), 0644); err != nil {
		return nil, err
	}

	return &huff.Interface{
		Path:   ifacePath,
		Source: f.ifaceSource,
	}, nil
}

func (f *fakeCompiler) GenerateArtifacts(path, outputDir string) error {
	f.artifactCalls++
	return nil
}

func newTestDeployer(t *testing.T, fake *fakeCompiler, contractsDir string) Deployer {
	t.Helper()

	d, err := New(
		OptionCompiler(fake),
		OptionContractsDir(contractsDir),
		OptionNoCache(true),
	)
	require.NoError(t, err)

	return d
}

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := ioutil.WriteFile(path, []byte("#define macro MAIN() = takes (0) returns (0) {}\n"), 0644)
	require.NoError(t, err)

	return path
}

func TestDeployContractNotFound(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	writeSource(t, dir, "counter.huff")

	fake := newFakeCompiler()
	d := newTestDeployer(t, fake, dir)

	_, _, err := d.Deploy(context.Background(), ContractDeployOpts{
		ContractName: "Unknown",
		BytecodeOnly: true,
	})
	assert.Equal(ErrContractNotFound, errors.Cause(err))

	// no compile subprocess beyond the scan
	assert.Zero(fake.bytecodeCalls)
	assert.Zero(fake.interfaceCalls)
}

func TestDeployBytecodeOnly(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	sourcePath := writeSource(t, dir, "counter.huff")

	fake := newFakeCompiler()
	d := newTestDeployer(t, fake, dir)

	// requested name casing differs from the file basename
	txHash, contract, err := d.Deploy(context.Background(), ContractDeployOpts{
		ContractName:      "Counter",
		ConstructorInputs: []string{"100", "0xdeadbeef"},
		CompilerFlags: []huff.CompilerArg{
			{Key: "evm-version", Value: "paris", Full: true},
		},
		BytecodeOnly: true,
	})
	require.NoError(t, err)

	assert.Equal(noHash, txHash)
	assert.Equal(fake.bin, contract.Bin)
	assert.Equal("Counter", contract.Name)

	absSourcePath, _ := filepath.Abs(sourcePath)
	assert.Equal(absSourcePath, fake.lastSourcePath)
	assert.Equal([]string{"100", "0xdeadbeef"}, fake.lastInputs)

	assert.Equal([]string{
		"function getCount() view returns (uint256)",
		"function increment() external",
	}, contract.FuncSignatures)
	assert.Equal([]string{
		"event Incremented(address indexed by, uint256 newCount)",
	}, contract.EventSignatures)
	assert.NotEmpty(contract.ABI)
}

func TestDeployInterfaceCleanup(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	sourcePath := writeSource(t, dir, "counter.huff")
	ifacePath := huff.InterfacePath(sourcePath)

	fake := newFakeCompiler()
	d := newTestDeployer(t, fake, dir)

	_, _, err := d.Deploy(context.Background(), ContractDeployOpts{
		ContractName: "counter",
		BytecodeOnly: true,
	})
	require.NoError(t, err)

	_, err = os.Stat(ifacePath)
	assert.True(os.IsNotExist(err), "generated interface should be removed")

	_, _, err = d.Deploy(context.Background(), ContractDeployOpts{
		ContractName:    "counter",
		BytecodeOnly:    true,
		RetainInterface: true,
	})
	require.NoError(t, err)

	_, err = os.Stat(ifacePath)
	assert.NoError(err, "generated interface should be retained")
}

func TestBuildUsesCache(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	cacheDir := t.TempDir()
	writeSource(t, dir, "counter.huff")

	fake := newFakeCompiler()
	d, err := New(
		OptionCompiler(fake),
		OptionContractsDir(dir),
		OptionBuildCacheDir(cacheDir),
	)
	require.NoError(t, err)

	first, err := d.Build(context.Background(), ContractBuildOpts{ContractName: "counter"})
	require.NoError(t, err)
	assert.Equal(1, fake.bytecodeCalls)

	second, err := d.Build(context.Background(), ContractBuildOpts{ContractName: "counter"})
	require.NoError(t, err)
	assert.Equal(1, fake.bytecodeCalls, "second build must hit the cache")
	assert.Equal(first.Bin, second.Bin)
	assert.Equal(first.FuncSignatures, second.FuncSignatures)

	// different constructor inputs invalidate the cache key
	_, err = d.Build(context.Background(), ContractBuildOpts{
		ContractName:      "counter",
		ConstructorInputs: []string{"42"},
	})
	require.NoError(t, err)
	assert.Equal(2, fake.bytecodeCalls)
}

func TestArtifacts(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "artifacts")
	writeSource(t, dir, "counter.huff")
	writeSource(t, dir, "token.huff")

	fake := newFakeCompiler()
	d := newTestDeployer(t, fake, dir)

	err := d.Artifacts(context.Background(), ContractArtifactsOpts{
		OutputDir: outDir,
	})
	require.NoError(t, err)
	assert.Equal(2, fake.artifactCalls)

	contents, err := ioutil.ReadFile(filepath.Join(outDir, "counter.json"))
	require.NoError(t, err)

	var artifact struct {
		ContractName string          `json:"contractName"`
		ABI          json.RawMessage `json:"abi"`
		Bytecode     string          `json:"bytecode"`
	}
	require.NoError(t, json.Unmarshal(contents, &artifact))
	assert.Equal("counter", artifact.ContractName)
	assert.Equal(fake.bin, artifact.Bytecode)
	assert.NotEmpty(artifact.ABI)
}
