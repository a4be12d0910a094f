// Package cmd implements the bizdash CLI commands.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/config"
	"github.com/theirongolddev/bizdash/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDB        string
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
	flagQuiet     bool

	// cfg is loaded once per invocation by the root pre-run hook.
	cfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "bizdash",
	Short: "Budgets and revenue forecasts in your terminal",
	Long: "Plan budgets by category, track what has been spent, and project\n" +
		"revenue, expenses and profit from your monthly figures.",
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "  Error: %s\n", common.UserMessage(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database file (default from config or $BIZDASH_DB)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/bizdash/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress confirmation output")
}

// loadConfig reads the config file and installs the logger. Flags win over
// the [logging] table.
func loadConfig(cmd *cobra.Command, _ []string) error {
	config.SetPath(flagConfig)

	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	level, format := cfg.Logging.Level, cfg.Logging.Format
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	if flagLogFormat != "" {
		format = flagLogFormat
	}
	if err := common.SetupLogger(cmd.ErrOrStderr(), level, format); err != nil {
		return common.NewUserError("bad logging flags", err)
	}

	slog.Debug("config loaded", "path", config.ConfigPath(), "exists", config.Exists())
	return nil
}

func dbPath() string {
	if flagDB != "" {
		return flagDB
	}
	return config.DBPath(cfg)
}

// openStore opens the database shared by every command.
func openStore() (*store.DB, error) {
	path := dbPath()
	s, err := store.Open(path)
	if err != nil {
		return nil, common.NewUserError("could not open database "+path, err)
	}
	return s, nil
}

// info prints a confirmation line unless --quiet is set.
func info(w io.Writer, format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(w, "  "+format+"\n", args...)
}
