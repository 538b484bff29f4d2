package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chTempDir(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/fallback_schemes.json", cfg.Catalog.FallbackPath)
	assert.Equal(t, "none", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.InDelta(t, 10, cfg.Server.RateLimitRPS, 0.001)
	assert.Equal(t, 20, cfg.Server.RateLimitBurst)

	assert.Equal(t, 40, cfg.Match.CategoryWeight)
	assert.Equal(t, 25, cfg.Match.CanonicalBonus)
	assert.Equal(t, 20, cfg.Match.GeneralCategoryPoints)
	assert.Equal(t, 20, cfg.Match.StudentNoisePenalty)
	assert.Equal(t, 30, cfg.Match.OccupationWeight)
	assert.Equal(t, 10, cfg.Match.OccupationWildcard)
	assert.Equal(t, 30, cfg.Match.IncomeWeight)
	assert.Equal(t, 20, cfg.Match.AgeWeight)
	assert.Equal(t, 30, cfg.Match.StateWeight)
	assert.Equal(t, 10, cfg.Match.NationalWeight)
	assert.Equal(t, 40, cfg.Match.MinScore)
	assert.Equal(t, 75, cfg.Match.CoreFloor)
	assert.Equal(t, 5, cfg.Match.MaxResults)
	assert.Equal(t, 2, cfg.Match.MaxHigh)
	assert.Equal(t, 2, cfg.Match.MaxMedium)
}

func TestLoadFromYAML(t *testing.T) {
	chTempDir(t)

	yaml := `
store:
  driver: sqlite
  database_url: scheme.db
log:
  level: debug
  format: console
server:
  port: 9090
match:
  min_score: 50
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "scheme.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 50, cfg.Match.MinScore)
	// Defaults still apply for unset values
	assert.Equal(t, 5, cfg.Match.MaxResults)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chTempDir(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	dir, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("SCHEME_STORE_DRIVER", "postgres")
	t.Setenv("SCHEME_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chTempDir(t)

	t.Setenv("SCHEME_SERVER_PORT", "3000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
