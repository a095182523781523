package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Defaults.Baseline)
	assert.Equal(t, 0.05, cfg.Defaults.MDE)
	assert.Equal(t, 0.05, cfg.Defaults.Alpha)
	assert.Equal(t, 0.8, cfg.Defaults.Power)
	assert.Equal(t, "./reports", cfg.Report.OutputDir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEFAULT_MDE", "0.02")
	t.Setenv("REPORT_DIR", "/tmp/plans")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 0.02, cfg.Defaults.MDE)
	assert.Equal(t, "/tmp/plans", cfg.Report.OutputDir)
}

func TestLoad_RejectsOutOfRangeDefaults(t *testing.T) {
	t.Setenv("DEFAULT_POWER", "1.5")

	_, err := Load()
	require.Error(t, err)
}
