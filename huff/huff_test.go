package huff

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewHuffCompilerMissingBinary(t *testing.T) {
	assert := assert.New(t)

	c, err := NewHuffCompiler("/nonexistent/path/to/huffc")
	assert.Nil(c)
	assert.Equal(ErrCompilerNotFound, errors.Cause(err))
}

func TestClassifyVersion(t *testing.T) {
	assert := assert.New(t)

	version, err := classifyVersion("huff_cli 0.3.2\n")
	assert.NoError(err)
	assert.Equal("huff_cli 0.3.2", version)

	_, err = classifyVersion("2.0.3\n")
	assert.Equal(ErrLegacyCompiler, errors.Cause(err))

	_, err = classifyVersion("huffc/2.0.0 linux-x64")
	assert.Equal(ErrLegacyCompiler, errors.Cause(err))

	_, err = classifyVersion("solc, the solidity compiler commandline interface")
	assert.Equal(ErrCompilerNotFound, errors.Cause(err))
}

func TestCompilerArgRender(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"--evm-version", "paris"}, CompilerArg{
		Key:   "evm-version",
		Value: "paris",
		Full:  true,
	}.Render())

	assert.Equal([]string{"-e", "paris"}, CompilerArg{
		Key:   "e",
		Value: "paris",
	}.Render())

	assert.Equal([]string{"--verbose"}, CompilerArg{
		Key:  "verbose",
		Full: true,
	}.Render())
}
