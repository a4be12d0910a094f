package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/export"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/tui"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagMonth    string
	flagRevenue  string
	flagExpenses string
	flagMonths   int
	flagReimport bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Record monthly figures and project the months ahead",
}

var forecastAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record one month of revenue and expenses",
	Long:  "Record one month of figures from flags, or interactively when a flag is missing.",
	Args:  cobra.NoArgs,
	RunE:  runForecastAdd,
}

var forecastHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded monthly figures",
	Args:  cobra.NoArgs,
	RunE:  runForecastHistory,
}

var forecastRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Project revenue, expenses and profit",
	Args:  cobra.NoArgs,
	RunE:  runForecastRun,
}

var forecastImportCmd = &cobra.Command{
	Use:   "import <file|dir>...",
	Short: "Import monthly figures from CSV, JSONL or exported reports",
	Long: "Import monthly figures from files. Directories are searched recursively.\n\n" +
		"  .csv        header row with month (or date), revenue and expenses columns\n" +
		"  .jsonl      one {\"month\", \"revenue\", \"expenses\"} object per line\n" +
		"  .json       a financial-forecast export\n\n" +
		"Rows in the same month are summed. Months already recorded are left\n" +
		"alone, and files unchanged since their last import are skipped.",
	Args: cobra.MinimumNArgs(1),
	RunE: runForecastImport,
}

var forecastExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write history and projection as JSON",
	Args:  cobra.NoArgs,
	RunE:  runForecastExport,
}

func init() {
	forecastAddCmd.Flags().StringVar(&flagMonth, "month", "", "Month (YYYY-MM)")
	forecastAddCmd.Flags().StringVar(&flagRevenue, "revenue", "", "Revenue for the month")
	forecastAddCmd.Flags().StringVar(&flagExpenses, "expenses", "", "Expenses for the month")

	for _, c := range []*cobra.Command{forecastRunCmd, forecastExportCmd} {
		c.Flags().IntVar(&flagMonths, "months", 0, "Months to project (default from config)")
	}
	forecastExportCmd.Flags().StringVar(&flagExportDir, "dir", "", "Output directory (default from config)")
	forecastImportCmd.Flags().BoolVar(&flagReimport, "all", false, "Re-read files even if unchanged since the last import")

	forecastCmd.AddCommand(forecastAddCmd, forecastHistoryCmd, forecastRunCmd, forecastImportCmd, forecastExportCmd)
	rootCmd.AddCommand(forecastCmd)
}

func horizon() int {
	if flagMonths != 0 {
		return flagMonths
	}
	return cfg.Forecast.DefaultHorizon
}

func runForecastAdd(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	in := forecast.SampleInput{Month: flagMonth, Revenue: flagRevenue, Expenses: flagExpenses}
	missing := in.Month == "" || in.Revenue == "" || in.Expenses == ""
	if missing && isatty.IsTerminal(os.Stdin.Fd()) {
		history, err := s.History()
		if err != nil {
			return err
		}
		if in, err = tui.RunSampleForm(history, time.Now()); err != nil {
			return fmt.Errorf("sample form: %w", err)
		}
	}

	sample, err := s.AddSample(in)
	if err != nil {
		return err
	}
	info(cmd.ErrOrStderr(), "Added %s: revenue %s, expenses %s, profit %s",
		cli.FormatMonth(sample.Month),
		cli.FormatAmount(sample.Revenue),
		cli.FormatAmount(sample.Expenses),
		cli.FormatAmount(sample.Profit))
	return nil
}

func runForecastHistory(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	history, err := s.History()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(history) == 0 {
		fmt.Fprintln(out, "\n  No monthly figures yet.")
		fmt.Fprintln(out, "  Add some with `bizdash forecast add --month 2024-01 --revenue 100000 --expenses 80000`.")
		return nil
	}

	printHistory(out, history)
	return nil
}

func runForecastRun(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	history, err := s.History()
	if err != nil {
		return err
	}
	projection, err := forecast.Generate(history, horizon())
	if err != nil {
		return err
	}

	printProjection(cmd.OutOrStdout(), projection)
	return nil
}

func runForecastExport(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	history, err := s.History()
	if err != nil {
		return err
	}
	months := horizon()
	projection, err := forecast.Generate(history, months)
	if err != nil {
		return err
	}

	now := time.Now()
	path, err := export.WriteFile(exportDir(), export.ForecastFileName(now),
		forecast.Snapshot(history, projection, months, now))
	if err != nil {
		return err
	}
	info(cmd.ErrOrStderr(), "Exported %d-month forecast to %s", months, path)
	return nil
}

func printHistory(w io.Writer, history []model.HistoricalSample) {
	profits := make([]float64, len(history))
	rows := make([][]string, len(history))
	for i, h := range history {
		profits[i] = h.Profit
		rows[i] = []string{
			cli.FormatMonth(h.Month),
			cli.FormatAmount(h.Revenue),
			cli.FormatAmount(h.Expenses),
			cli.RenderProfit(h.Profit),
		}
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Historical Data (%d months)", len(history)),
		Headers: []string{"Month", "Revenue", "Expenses", "Profit"},
		Rows:    rows,
	}))
	fmt.Fprintf(w, "  Profit trend  %s\n", cli.RenderSparkline(profits))
}

func printProjection(w io.Writer, projection []model.ForecastSample) {
	rows := make([][]string, len(projection))
	for i, f := range projection {
		rows[i] = []string{
			cli.FormatMonth(f.Month),
			cli.FormatAmount(f.ProjectedRevenue),
			cli.FormatAmount(f.ProjectedExpenses),
			cli.RenderProfit(f.ProjectedProfit),
			cli.RenderConfidence(f.Confidence),
		}
	}
	sum := forecast.Totals(projection)

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(fmt.Sprintf("FORECAST  Next %d months", len(projection))))
	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Revenue", "Expenses", "Profit", "Confidence"},
		Rows:    rows,
	}))
	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderKV([][2]string{
		{"Projected revenue", cli.FormatAmount(sum.TotalRevenue)},
		{"Projected expenses", cli.FormatAmount(sum.TotalExpenses)},
		{"Projected profit", cli.RenderProfit(sum.TotalProfit)},
	}))
}
