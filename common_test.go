package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InjectiveLabs/huffman/huff"
)

func TestDuration(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(15*time.Second, duration("15s", time.Second))
	assert.Equal(time.Second, duration("garbage", time.Second))
	assert.Equal(time.Second, duration("", time.Second))
}

func TestParseCompilerFlags(t *testing.T) {
	assert := assert.New(t)

	flags, err := parseCompilerFlags([]string{"evm-version=paris", "z", "v=3"})
	require.NoError(t, err)
	assert.Equal([]huff.CompilerArg{
		{Key: "evm-version", Value: "paris", Full: true},
		{Key: "z", Value: "", Full: false},
		{Key: "v", Value: "3", Full: false},
	}, flags)

	_, err = parseCompilerFlags([]string{"=value"})
	assert.Error(err)
}

func TestApplyJQFilter(t *testing.T) {
	assert := assert.New(t)

	results, err := applyJQFilter(".[].name", []byte(`[{"name":"transfer"},{"name":"approve"}]`))
	require.NoError(t, err)
	assert.Equal([]string{`"transfer"`, `"approve"`}, results)

	_, err = applyJQFilter("((", []byte(`{}`))
	assert.Error(err)
}
