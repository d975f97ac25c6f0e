package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["run"])
	assert.True(t, names["console"])
	assert.True(t, names["serve"])
	assert.NotNil(t, rootCmd.RunE, "без подкоманды запускается консоль")
}

func TestFlags(t *testing.T) {
	f := runCmd.Flags().Lookup("concurrency")
	require.NotNil(t, f)
	assert.Equal(t, "0", f.DefValue)

	f = serveCmd.Flags().Lookup("addr")
	require.NotNil(t, f)
	assert.Empty(t, f.DefValue)
}
