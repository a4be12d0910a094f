package cmd

import (
	"fmt"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/config"
	"github.com/theirongolddev/bizdash/internal/store"
	"github.com/theirongolddev/bizdash/internal/tui"
	"github.com/theirongolddev/bizdash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var flagScratch bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().BoolVar(&flagScratch, "scratch", false, "Work in memory; nothing is saved on exit")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	var s store.Store
	if flagScratch {
		s = store.NewMemory()
	} else {
		db, err := openStore()
		if err != nil {
			return err
		}
		s = db
	}
	defer s.Close()

	// The alt screen owns the terminal; stderr logging would tear it.
	common.Discard()

	app := tui.NewApp(s, cfg, !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
