package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])

	f := serveCmd.Flags().Lookup("migrate")
	require.NotNil(t, f)
	assert.Equal(t, "false", f.DefValue)
}

func TestMigrateSQLite(t *testing.T) {
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("DATABASE_URL", ":memory:")
	t.Setenv("LOG_LEVEL", "error")

	rootCmd.SetArgs([]string{"migrate"})
	require.NoError(t, rootCmd.Execute())
}

func TestServeFailsWithoutConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GMAIL_ADDRESS", "")
	t.Setenv("GMAIL_APP_PASSWORD", "")

	rootCmd.SetArgs([]string{"serve"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
