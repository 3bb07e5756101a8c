package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, "simplets version v0.4\n", run(t, "version"))
}

func TestPairCommand(t *testing.T) {
	out := run(t, "pair", "--indices", "0,35", "--theme", "light")
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, ">J</text>")
}

func TestExecCommand(t *testing.T) {
	out := run(t, "exec", "--json", "language")
	assert.Contains(t, out, `"type":"output"`)
}
