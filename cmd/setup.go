package cmd

import (
	"fmt"

	"github.com/theirongolddev/bizdash/internal/config"
	"github.com/theirongolddev/bizdash/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive first-time setup",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	updated, err := tui.RunSetup(cfg)
	if err != nil {
		return fmt.Errorf("setup form: %w", err)
	}

	if err := config.Save(updated); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cfg = updated

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Saved to %s\n", config.ConfigPath())
	fmt.Fprintln(out, "  Run `bizdash setup` anytime to reconfigure.")
	fmt.Fprintln(out)

	return nil
}
