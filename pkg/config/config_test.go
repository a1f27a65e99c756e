package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/bracecheck/pkg/balance"
	"github.com/yaklabco/bracecheck/pkg/config"
	"github.com/yaklabco/bracecheck/pkg/fsutil"
)

func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, config.FormatText, cfg.Output.Format)
	assert.True(t, config.BoolValue(cfg.Strict, false))
	assert.Equal(t, fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}, cfg.BackupConfig())

	window, err := cfg.Window()
	require.NoError(t, err)
	assert.True(t, window.IsZero())
}

func TestConfig_Window(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Range: "10:20"}
	window, err := cfg.Window()
	require.NoError(t, err)
	assert.Equal(t, balance.Range{Lo: 10, Hi: 20}, window)

	cfg.Range = "x"
	_, err = cfg.Window()
	require.ErrorIs(t, err, balance.ErrInvalidRange)
}

func TestConfig_BackupConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Backups: config.BackupsConfig{Enabled: config.Bool(false), Mode: "none"}}
	assert.Equal(t, fsutil.BackupConfig{Enabled: false, Mode: fsutil.BackupModeNone}, cfg.BackupConfig())

	empty := &config.Config{}
	assert.Equal(t, fsutil.DefaultBackupConfig(), empty.BackupConfig())
}

func TestBoolValue(t *testing.T) {
	t.Parallel()

	assert.True(t, config.BoolValue(nil, true))
	assert.False(t, config.BoolValue(config.Bool(false), true))
	assert.True(t, config.BoolValue(config.Bool(true), false))
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, format := range []config.OutputFormat{config.FormatText, config.FormatTable, config.FormatJSON, config.FormatSummary} {
		assert.True(t, format.IsValid(), format)
	}
	assert.False(t, config.OutputFormat("sarif").IsValid())
	assert.False(t, config.OutputFormat("").IsValid())
}
