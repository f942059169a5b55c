package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowswap/config"
)

func TestDryRunFlagBinding(t *testing.T) {
	require.NoError(t, serveCmd.Flags().Set("dry-run", "true"))

	assert.True(t, viper.GetBool("dry_run"))

	// With dry-run bound, loading succeeds without a signing key.
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.True(t, cfg.DryRun)
}
