package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/bizdash/internal/budget"
	"github.com/theirongolddev/bizdash/internal/config"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

type formKind int

const (
	formNone formKind = iota
	formBudget
	formSample
	formSetup
)

// budgetValues are bound to the new-budget form fields.
type budgetValues struct {
	Name       string
	Amount     string
	Period     string
	Start      string
	End        string
	Categories string // one "Name=allocated[:spent]" per line
}

func (v budgetValues) draft() (budget.Draft, error) {
	d := budget.Draft{
		Name:        v.Name,
		TotalAmount: v.Amount,
		Period:      v.Period,
		StartDate:   v.Start,
		EndDate:     v.End,
	}
	for _, line := range strings.Split(v.Categories, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cd, err := budget.ParseCategory(line)
		if err != nil {
			return budget.Draft{}, err
		}
		d.Categories = append(d.Categories, cd)
	}
	return d, nil
}

func newBudgetValues(now time.Time) *budgetValues {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return &budgetValues{
		Period: string(model.PeriodMonthly),
		Start:  start.Format(model.DateLayout),
		End:    start.AddDate(0, 1, -1).Format(model.DateLayout),
	}
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validDate(s string) error {
	_, err := model.ParseDate(s)
	if err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func validCategories(s string) error {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, err := budget.ParseCategory(line); err != nil {
			return err
		}
		n++
	}
	if n == 0 {
		return errors.New("add at least one category")
	}
	return nil
}

func newBudgetForm(v *budgetValues) *huh.Form {
	periods := make([]huh.Option[string], len(model.Periods))
	for i, p := range model.Periods {
		periods[i] = huh.NewOption(strings.ToUpper(string(p[:1]))+string(p[1:]), string(p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Budget name").
				Placeholder("Marketing Budget 2024").
				Value(&v.Name).
				Validate(required("name")),
			huh.NewInput().
				Title("Total amount").
				Placeholder("50000").
				Value(&v.Amount).
				Validate(required("total amount")),
			huh.NewSelect[string]().
				Title("Period").
				Options(periods...).
				Value(&v.Period),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Value(&v.Start).
				Validate(validDate),
			huh.NewInput().
				Title("End date").
				Value(&v.End).
				Validate(validDate),
			huh.NewText().
				Title("Categories").
				Description("One per line: Name=allocated[:spent]").
				Placeholder("Digital Ads=20000:15000").
				Lines(6).
				Value(&v.Categories).
				Validate(validCategories),
		),
	).WithShowHelp(true)
}

func newSampleForm(v *forecast.SampleInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Month").
				Description("YYYY-MM").
				Value(&v.Month).
				Validate(func(s string) error {
					_, err := forecast.ParseMonth(s)
					return err
				}),
			huh.NewInput().
				Title("Revenue").
				Value(&v.Revenue).
				Validate(required("revenue")),
			huh.NewInput().
				Title("Expenses").
				Value(&v.Expenses).
				Validate(required("expenses")),
		),
	).WithShowHelp(true)
}

// nextMonth suggests the month after the latest sample, or the current
// month for an empty history.
func nextMonth(history []model.HistoricalSample, now time.Time) string {
	if len(history) == 0 {
		return now.Format(model.MonthLayout)
	}
	last, err := time.Parse(model.MonthLayout, history[len(history)-1].Month)
	if err != nil {
		return now.Format(model.MonthLayout)
	}
	return last.AddDate(0, 1, 0).Format(model.MonthLayout)
}

// setupValues are bound to the first-run setup form.
type setupValues struct {
	theme   string
	horizon string
	dir     string
}

func newSetupForm(cfg config.Config, v *setupValues) *huh.Form {
	v.theme = cfg.Appearance.Theme
	v.horizon = strconv.Itoa(cfg.Forecast.DefaultHorizon)
	v.dir = cfg.Export.Dir

	themeOpts := make([]huh.Option[string], len(theme.All))
	for i, th := range theme.All {
		themeOpts[i] = huh.NewOption(th.Name, th.Name)
	}

	horizonOpts := make([]huh.Option[string], len(forecast.HorizonOptions))
	for i, h := range forecast.HorizonOptions {
		horizonOpts[i] = huh.NewOption(fmt.Sprintf("%d months", h), strconv.Itoa(h))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to bizdash!").
				Description("Plan budgets and project revenue from your terminal.\nA few quick settings, all of which bizdash setup can change later."),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&v.theme),
			huh.NewSelect[string]().
				Title("Default forecast horizon").
				Options(horizonOpts...).
				Value(&v.horizon),
			huh.NewInput().
				Title("Export directory").
				Description("Where budget and forecast reports are written").
				Value(&v.dir),
		),
	).WithShowHelp(false)
}

// apply copies the form answers into cfg.
func (v setupValues) apply(cfg *config.Config) {
	cfg.Appearance.Theme = v.theme
	if h, err := strconv.Atoi(v.horizon); err == nil {
		cfg.Forecast.DefaultHorizon = h
	}
	if dir := strings.TrimSpace(v.dir); dir != "" {
		cfg.Export.Dir = dir
	}
}

// RunSetup asks the setup questions inline and returns the updated config.
func RunSetup(cfg config.Config) (config.Config, error) {
	var v setupValues
	if err := newSetupForm(cfg, &v).Run(); err != nil {
		return cfg, err
	}
	v.apply(&cfg)
	return cfg, nil
}

// RunBudgetForm asks for a new budget inline.
func RunBudgetForm(now time.Time) (budget.Draft, error) {
	v := newBudgetValues(now)
	if err := newBudgetForm(v).Run(); err != nil {
		return budget.Draft{}, err
	}
	return v.draft()
}

// RunSampleForm asks for one month of figures inline.
func RunSampleForm(history []model.HistoricalSample, now time.Time) (forecast.SampleInput, error) {
	in := forecast.SampleInput{Month: nextMonth(history, now)}
	if err := newSampleForm(&in).Run(); err != nil {
		return forecast.SampleInput{}, err
	}
	return in, nil
}
