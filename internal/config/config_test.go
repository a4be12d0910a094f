package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bizdash/internal/common"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("BIZDASH_DB", "")
	SetPath("")
	t.Cleanup(func() { SetPath("") })
	return dir
}

func TestLoadMissingReturnsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, Exists())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	cfg.Forecast.DefaultHorizon = 12
	cfg.Appearance.Theme = "catppuccin-mocha"
	cfg.Export.Dir = filepath.Join(dir, "reports")
	cfg.Logging.Format = "json"
	require.NoError(t, Save(cfg))

	assert.True(t, Exists())
	assert.Equal(t, filepath.Join(dir, "config", "bizdash", "config.toml"), ConfigPath())

	info, err := os.Stat(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[forecast]\ndefault_horizon = 24\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Forecast.DefaultHorizon)
	assert.Equal(t, "flexoki-dark", cfg.Appearance.Theme)
	assert.Equal(t, ".", cfg.Export.Dir)
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	require.NoError(t, os.MkdirAll(ConfigDir(), 0o755))
	require.NoError(t, os.WriteFile(ConfigPath(), []byte("[forecast]\ndefault_horizon = 5\n"), 0o600))

	_, err := Load()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"every horizon option", func(c *Config) { c.Forecast.DefaultHorizon = 3 }, true},
		{"terminal theme", func(c *Config) { c.Appearance.Theme = "terminal" }, true},
		{"horizon zero", func(c *Config) { c.Forecast.DefaultHorizon = 0 }, false},
		{"unknown theme", func(c *Config) { c.Appearance.Theme = "solarized" }, false},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, false},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			}
		})
	}
}

func TestSaveRejectsInvalid(t *testing.T) {
	isolate(t)
	cfg := DefaultConfig()
	cfg.Appearance.Theme = "nope"
	assert.ErrorIs(t, Save(cfg), common.ErrInvalidConfig)
	assert.False(t, Exists())
}

func TestDBPathPrecedence(t *testing.T) {
	dir := isolate(t)
	cfg := DefaultConfig()

	assert.Equal(t, filepath.Join(dir, "data", "bizdash", "bizdash.db"), DBPath(cfg))

	cfg.General.DBPath = "/srv/bizdash.db"
	assert.Equal(t, "/srv/bizdash.db", DBPath(cfg))

	t.Setenv("BIZDASH_DB", "/tmp/env.db")
	assert.Equal(t, "/tmp/env.db", DBPath(cfg))
}

func TestSetPath(t *testing.T) {
	dir := isolate(t)
	custom := filepath.Join(dir, "elsewhere", "bizdash.toml")
	SetPath(custom)

	require.NoError(t, Save(DefaultConfig()))
	assert.Equal(t, custom, ConfigPath())
	_, err := os.Stat(custom)
	assert.NoError(t, err)
}
