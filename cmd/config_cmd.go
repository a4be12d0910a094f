package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/bizdash/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Database: %s", dbPath())
	switch {
	case flagDB != "":
		fmt.Fprint(out, " (--db)")
	case os.Getenv("BIZDASH_DB") != "":
		fmt.Fprint(out, " ($BIZDASH_DB)")
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Forecast]")
	fmt.Fprintf(out, "    Default horizon: %d months\n", cfg.Forecast.DefaultHorizon)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Export]")
	fmt.Fprintf(out, "    Directory: %s\n", cfg.Export.Dir)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Logging]")
	fmt.Fprintf(out, "    Level:  %s\n", cfg.Logging.Level)
	fmt.Fprintf(out, "    Format: %s\n", cfg.Logging.Format)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  Run `bizdash setup` to reconfigure.")
	return nil
}
