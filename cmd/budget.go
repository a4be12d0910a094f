package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/theirongolddev/bizdash/internal/budget"
	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/export"
	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/store"
	"github.com/theirongolddev/bizdash/internal/tui"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	flagName       string
	flagAmount     string
	flagPeriod     string
	flagStart      string
	flagEnd        string
	flagCategories []string
	flagExportDir  string
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Create, inspect and export budgets",
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all budgets",
	Args:  cobra.NoArgs,
	RunE:  runBudgetList,
}

var budgetShowCmd = &cobra.Command{
	Use:   "show [name|id]",
	Short: "Show a budget's categories and variance (default: current)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBudgetShow,
}

var budgetCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a budget and make it current",
	Long: "Create a budget from flags, or interactively when --name is omitted.\n\n" +
		"Categories use the form Name=allocated[:spent], e.g.\n" +
		"  --category \"Digital Ads=20000:15000\" --category \"Events=10000\"",
	Args: cobra.NoArgs,
	RunE: runBudgetCreate,
}

var budgetSelectCmd = &cobra.Command{
	Use:   "select <name|id>",
	Short: "Make a budget current",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSelect,
}

var budgetExportCmd = &cobra.Command{
	Use:   "export [name|id]",
	Short: "Write a budget report as JSON (default: current)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBudgetExport,
}

func init() {
	budgetCreateCmd.Flags().StringVar(&flagName, "name", "", "Budget name")
	budgetCreateCmd.Flags().StringVar(&flagAmount, "amount", "", "Total amount")
	budgetCreateCmd.Flags().StringVar(&flagPeriod, "period", "monthly", "Period: monthly, quarterly, yearly")
	budgetCreateCmd.Flags().StringVar(&flagStart, "start", "", "Start date (YYYY-MM-DD)")
	budgetCreateCmd.Flags().StringVar(&flagEnd, "end", "", "End date (YYYY-MM-DD)")
	budgetCreateCmd.Flags().StringArrayVar(&flagCategories, "category", nil, "Category as Name=allocated[:spent] (repeatable)")

	budgetExportCmd.Flags().StringVar(&flagExportDir, "dir", "", "Output directory (default from config)")

	budgetCmd.AddCommand(budgetListCmd, budgetShowCmd, budgetCreateCmd, budgetSelectCmd, budgetExportCmd)
	rootCmd.AddCommand(budgetCmd)
}

// runOverview backs the bare `bizdash` command.
func runOverview(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := s.CurrentBudget()
	if errors.Is(err, common.ErrNoBudget) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  No budget yet.")
		fmt.Fprintln(out, "  Create one with `bizdash budget create`, or explore with `bizdash tui`.")
		return nil
	}
	if err != nil {
		return err
	}

	printBudget(cmd.OutOrStdout(), b)
	return nil
}

func runBudgetList(cmd *cobra.Command, _ []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	budgets, err := s.Budgets()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(budgets) == 0 {
		fmt.Fprintln(out, "\n  No budgets yet.")
		return nil
	}

	currentID := ""
	if cur, err := s.CurrentBudget(); err == nil {
		currentID = cur.ID
	}

	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		mark := ""
		if b.ID == currentID {
			mark = "*"
		}
		rows = append(rows, []string{
			mark + b.Name,
			shortID(b.ID),
			string(b.Period),
			cli.FormatMoney(b.TotalAmount),
			cli.FormatMoney(budget.TotalSpent(b)),
			cli.RenderVariance(budget.Variance(b)),
		})
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Budgets (%d)", len(budgets)),
		Headers: []string{"Name", "ID", "Period", "Total", "Spent", "Variance"},
		Rows:    rows,
	}))
	fmt.Fprintln(out, "  * current budget")
	return nil
}

func runBudgetShow(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := resolveBudget(s, args)
	if err != nil {
		return err
	}
	printBudget(cmd.OutOrStdout(), b)
	return nil
}

func runBudgetCreate(cmd *cobra.Command, _ []string) error {
	var d budget.Draft
	if flagName == "" && isatty.IsTerminal(os.Stdin.Fd()) {
		var err error
		if d, err = tui.RunBudgetForm(time.Now()); err != nil {
			return fmt.Errorf("budget form: %w", err)
		}
	} else {
		d = budget.Draft{
			Name:        flagName,
			TotalAmount: flagAmount,
			Period:      flagPeriod,
			StartDate:   flagStart,
			EndDate:     flagEnd,
		}
		for _, spec := range flagCategories {
			cd, err := budget.ParseCategory(spec)
			if err != nil {
				return err
			}
			d.Categories = append(d.Categories, cd)
		}
	}

	b, err := budget.New(d, time.Now())
	if err != nil {
		return err
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.AddBudget(b); err != nil {
		return err
	}

	info(cmd.ErrOrStderr(), "Created %q (%s), now the current budget.", b.Name, shortID(b.ID))
	printBudget(cmd.OutOrStdout(), b)
	return nil
}

func runBudgetSelect(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := resolveBudget(s, args)
	if err != nil {
		return err
	}
	if err := s.SelectBudget(b.ID); err != nil {
		return err
	}
	info(cmd.ErrOrStderr(), "%q is now the current budget.", b.Name)
	return nil
}

func runBudgetExport(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	b, err := resolveBudget(s, args)
	if err != nil {
		return err
	}

	path, err := export.WriteFile(exportDir(), export.BudgetFileName(b.Name), budget.Snapshot(b, time.Now()))
	if err != nil {
		return err
	}
	info(cmd.ErrOrStderr(), "Exported %q to %s", b.Name, path)
	return nil
}

// resolveBudget returns the budget named by args[0], or the current one.
func resolveBudget(s store.Store, args []string) (model.Budget, error) {
	if len(args) == 0 {
		b, err := s.CurrentBudget()
		if errors.Is(err, common.ErrNoBudget) {
			return b, common.NewUserError("no current budget; name one or run `bizdash budget create`", err)
		}
		return b, err
	}

	budgets, err := s.Budgets()
	if err != nil {
		return model.Budget{}, err
	}
	return budget.Find(budgets, args[0])
}

func exportDir() string {
	if flagExportDir != "" {
		return flagExportDir
	}
	return cfg.Export.Dir
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printBudget renders the budget overview: headline figures followed by
// the category table.
func printBudget(w io.Writer, b model.Budget) {
	sum := budget.Summarize(b)

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(fmt.Sprintf("BUDGET  %s", b.Name)))
	fmt.Fprintln(w)
	fmt.Fprint(w, cli.RenderKV([][2]string{
		{"Period", fmt.Sprintf("%s (%s to %s)", b.Period, b.StartDate, b.EndDate)},
		{"Status", string(b.Status)},
		{"Total", cli.FormatMoney(sum.TotalAmount)},
		{"Allocated", cli.FormatMoney(sum.TotalAllocated)},
		{"Spent", cli.FormatMoney(sum.TotalSpent)},
		{"Variance", fmt.Sprintf("%s  %s", cli.RenderVariance(sum.Variance), sum.Standing)},
	}))
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(sum.Lines)+2)
	for _, line := range sum.Lines {
		c := line.Category
		rows = append(rows, []string{
			c.Name,
			cli.FormatMoney(c.Allocated),
			cli.FormatMoney(c.Spent),
			cli.FormatMoney(line.Remaining),
			cli.FormatUtilization(line.Utilization, line.Defined),
			cli.RenderUtilizationBar(line.Utilization, line.Status, 12),
			cli.RenderStatus(line.Status),
		})
	}
	rows = append(rows, cli.Separator, []string{
		"Total",
		cli.FormatMoney(sum.TotalAllocated),
		cli.FormatMoney(sum.TotalSpent),
		cli.FormatMoney(sum.TotalAllocated.Sub(sum.TotalSpent)),
		"", "", "",
	})

	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "Categories",
		Headers: []string{"Category", "Allocated", "Spent", "Remaining", "Used", "", "Status"},
		Rows:    rows,
	}))

	if sum.OverCount > 0 || sum.WarningCount > 0 {
		fmt.Fprintf(w, "  %d over budget, %d at 80%% or more\n", sum.OverCount, sum.WarningCount)
	}
}
