// Package config loads and saves the bizdash TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/forecast"
)

// Themes lists the accepted appearance.theme values.
var Themes = []string{"flexoki-dark", "catppuccin-mocha", "terminal"}

// Config holds all bizdash configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Forecast   ForecastConfig   `toml:"forecast"`
	Export     ExportConfig     `toml:"export"`
	Appearance AppearanceConfig `toml:"appearance"`
	Logging    LoggingConfig    `toml:"logging"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath string `toml:"db_path,omitempty"`
}

// ForecastConfig holds forecast defaults.
type ForecastConfig struct {
	DefaultHorizon int `toml:"default_horizon"`
}

// ExportConfig controls where reports are written.
type ExportConfig struct {
	Dir string `toml:"dir"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LoggingConfig configures the diagnostic log on stderr.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Forecast: ForecastConfig{
			DefaultHorizon: 6,
		},
		Export: ExportConfig{
			Dir: ".",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

var pathOverride string

// SetPath points Load, Save and Exists at path instead of the XDG default.
// An empty path restores the default.
func SetPath(path string) {
	pathOverride = path
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bizdash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bizdash")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	if pathOverride != "" {
		return pathOverride
	}
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "bizdash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "bizdash")
}

// DBPath returns the database path from the BIZDASH_DB env var, the
// config, or the data directory, in that order.
func DBPath(cfg Config) string {
	if p := os.Getenv("BIZDASH_DB"); p != "" {
		return p
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return filepath.Join(DataDir(), "bizdash.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save validates cfg and writes it to disk.
func Save(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Validate reports every out-of-range setting; the error matches
// common.ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error

	if !slices.Contains(forecast.HorizonOptions, c.Forecast.DefaultHorizon) {
		errs = append(errs, fmt.Errorf("forecast.default_horizon %d: want one of %v", c.Forecast.DefaultHorizon, forecast.HorizonOptions))
	}
	if !slices.Contains(Themes, c.Appearance.Theme) {
		errs = append(errs, fmt.Errorf("appearance.theme %q: want one of %v", c.Appearance.Theme, Themes))
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case "", "text", "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q: want text or json", c.Logging.Format))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", common.ErrInvalidConfig, errors.Join(errs...))
}
