// Package tui provides the interactive Bubble Tea dashboard for bizdash.
package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/theirongolddev/bizdash/internal/budget"
	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/config"
	"github.com/theirongolddev/bizdash/internal/export"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/store"
	"github.com/theirongolddev/bizdash/internal/tui/components"
	"github.com/theirongolddev/bizdash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the store has been read.
type DataLoadedMsg struct {
	Budgets   []model.Budget
	CurrentID string
	History   []model.HistoricalSample
	Err       error
}

const (
	tabBudgets = iota
	tabForecast
)

// App is the root Bubble Tea model.
type App struct {
	store store.Store
	cfg   config.Config
	now   func() time.Time

	// Data
	loaded     bool
	budgets    []model.Budget
	currentID  string
	history    []model.HistoricalSample
	projection []model.ForecastSample
	horizon    int

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	cursor    int // budget list selection

	status     string
	statusKind components.StatusKind

	// Active huh form, if any
	form       *huh.Form
	formKind   formKind
	budgetVals *budgetValues
	sampleVals *forecast.SampleInput
	setupVals  *setupValues
	needSetup  bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 60
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates the dashboard over s. needSetup shows the first-run form
// once the data has loaded.
func NewApp(s store.Store, cfg config.Config, needSetup bool) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		store:     s,
		cfg:       cfg,
		now:       time.Now,
		horizon:   cfg.Forecast.DefaultHorizon,
		needSetup: needSetup,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(loadDataCmd(a.store), a.spinner.Tick)
}

func loadDataCmd(s store.Store) tea.Cmd {
	return func() tea.Msg {
		var msg DataLoadedMsg
		var err error
		if msg.Budgets, err = s.Budgets(); err != nil {
			return DataLoadedMsg{Err: err}
		}
		if msg.History, err = s.History(); err != nil {
			return DataLoadedMsg{Err: err}
		}
		cur, err := s.CurrentBudget()
		switch {
		case err == nil:
			msg.CurrentID = cur.ID
		case !errors.Is(err, common.ErrNoBudget):
			return DataLoadedMsg{Err: err}
		}
		return msg
	}
}

// reload re-reads the store after a mutation.
func (a *App) reload() {
	if msg, ok := loadDataCmd(a.store)().(DataLoadedMsg); ok {
		a.applyData(msg)
	}
}

func (a *App) applyData(msg DataLoadedMsg) {
	if msg.Err != nil {
		a.setError(msg.Err)
		return
	}
	a.budgets = msg.Budgets
	a.currentID = msg.CurrentID
	a.history = msg.History
	a.cursor = min(max(a.cursor, 0), max(len(a.budgets)-1, 0))
}

func (a *App) setError(err error) {
	a.status = common.UserMessage(err)
	a.statusKind = components.StatusError
}

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusKind = components.StatusSuccess
}

// currentBudget returns the selected budget, if any.
func (a App) currentBudget() (model.Budget, bool) {
	for _, b := range a.budgets {
		if b.ID == a.currentID {
			return b, true
		}
	}
	return model.Budget{}, false
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(min(msg.Width, 80)).WithHeight(msg.Height)
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.applyData(msg)
		if a.needSetup {
			a.setupVals = &setupValues{}
			return a, a.openForm(formSetup, newSetupForm(a.cfg, a.setupVals))
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.form != nil {
			if msg.String() == "esc" {
				return a.closeForm(), nil
			}
			return a.updateForm(msg)
		}
		return a.handleKey(msg.String())
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "b":
		a.activeTab = tabBudgets
	case "f":
		a.activeTab = tabForecast
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	case "n":
		a.budgetVals = newBudgetValues(a.now())
		return a, a.openForm(formBudget, newBudgetForm(a.budgetVals))
	case "a":
		a.sampleVals = &forecast.SampleInput{Month: nextMonth(a.history, a.now())}
		return a, a.openForm(formSample, newSampleForm(a.sampleVals))
	case "e":
		a.exportActive()
	}

	if a.activeTab == tabBudgets {
		switch key {
		case "j", "down":
			if a.cursor < len(a.budgets)-1 {
				a.cursor++
			}
		case "k", "up":
			if a.cursor > 0 {
				a.cursor--
			}
		case "enter":
			a.selectBudget()
		}
	}

	if a.activeTab == tabForecast {
		switch key {
		case "g":
			a.generate()
		case "h":
			a.cycleHorizon()
		}
	}
	return a, nil
}

func (a *App) openForm(kind formKind, f *huh.Form) tea.Cmd {
	a.formKind = kind
	a.form = f
	if a.width > 0 {
		a.form = a.form.WithWidth(min(a.width, 80)).WithHeight(a.height)
	}
	return a.form.Init()
}

func (a App) closeForm() App {
	if a.formKind == formSetup {
		a.needSetup = false
	}
	a.form = nil
	a.formKind = formNone
	return a
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		kind := a.formKind
		a = a.closeForm()
		switch kind {
		case formBudget:
			a.submitBudget(*a.budgetVals)
		case formSample:
			a.submitSample(*a.sampleVals)
		case formSetup:
			a.submitSetup(*a.setupVals)
		}
		return a, nil
	case huh.StateAborted:
		return a.closeForm(), nil
	}
	return a, cmd
}

// submitBudget creates a budget from the form answers and selects it.
func (a *App) submitBudget(v budgetValues) {
	d, err := v.draft()
	if err != nil {
		a.setError(err)
		return
	}
	b, err := budget.New(d, a.now())
	if err != nil {
		a.setError(err)
		return
	}
	if err := a.store.AddBudget(b); err != nil {
		a.setError(err)
		return
	}
	a.reload()
	a.cursor = len(a.budgets) - 1
	a.activeTab = tabBudgets
	a.setStatus(fmt.Sprintf("Created %q", b.Name))
}

// submitSample records one month of figures. A stale projection is
// dropped since it no longer reflects the history.
func (a *App) submitSample(in forecast.SampleInput) {
	sample, err := a.store.AddSample(in)
	if err != nil {
		a.setError(err)
		return
	}
	a.reload()
	a.projection = nil
	a.activeTab = tabForecast
	a.setStatus("Added " + sample.Month)
}

func (a *App) submitSetup(v setupValues) {
	v.apply(&a.cfg)
	theme.SetActive(a.cfg.Appearance.Theme)
	a.horizon = a.cfg.Forecast.DefaultHorizon
	if err := config.Save(a.cfg); err != nil {
		a.setError(err)
		return
	}
	a.setStatus("Saved " + config.ConfigPath())
}

func (a *App) selectBudget() {
	if len(a.budgets) == 0 {
		return
	}
	b := a.budgets[a.cursor]
	if err := a.store.SelectBudget(b.ID); err != nil {
		a.setError(err)
		return
	}
	a.currentID = b.ID
	a.setStatus(fmt.Sprintf("%q is now current", b.Name))
}

func (a *App) generate() {
	projection, err := forecast.Generate(a.history, a.horizon)
	if err != nil {
		a.setError(err)
		return
	}
	a.projection = projection
	a.setStatus(fmt.Sprintf("Projected %d months", a.horizon))
}

func (a *App) cycleHorizon() {
	i := slices.Index(forecast.HorizonOptions, a.horizon)
	a.horizon = forecast.HorizonOptions[(i+1)%len(forecast.HorizonOptions)]
	if a.projection != nil {
		a.generate()
		return
	}
	a.setStatus(fmt.Sprintf("Horizon %d months", a.horizon))
}

func (a *App) exportActive() {
	now := a.now()
	var name string
	var report any

	switch a.activeTab {
	case tabBudgets:
		b, ok := a.currentBudget()
		if !ok {
			a.setError(common.ErrNoBudget)
			return
		}
		name, report = export.BudgetFileName(b.Name), budget.Snapshot(b, now)
	default:
		if a.projection == nil {
			a.generate()
			if a.projection == nil {
				return
			}
		}
		name = export.ForecastFileName(now)
		report = forecast.Snapshot(a.history, a.projection, a.horizon, now)
	}

	path, err := export.WriteFile(a.cfg.Export.Dir, name, report)
	if err != nil {
		a.setError(err)
		return
	}
	a.setStatus("Exported " + path)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  bizdash needs at least %d columns.\n", a.width, minTerminalWidth)
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logoStyle.Render("◈ bizdash") + mutedStyle.Render(" · Budgets & Forecasts") + "\n\n" +
		a.spinner.View() + mutedStyle.Render(" Loading...")

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewForm() string {
	t := theme.Active
	titles := map[formKind]string{
		formBudget: "New budget",
		formSample: "Add monthly figures",
		formSetup:  "Setup",
	}
	title := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("◈ " + titles[a.formKind])
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("esc to cancel")

	body := title + "\n\n" + a.form.View() + "\n" + hint
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, body)
}

type binding struct{ key, desc string }

var helpSections = []struct {
	title    string
	bindings []binding
}{
	{"Navigation", []binding{
		{"b f", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Move in budget list"},
		{"Enter", "Make budget current"},
	}},
	{"Actions", []binding{
		{"n", "New budget"},
		{"a", "Add monthly figures"},
		{"g", "Generate forecast"},
		{"h", "Cycle forecast horizon"},
		{"e", "Export current view"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}},
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, section := range helpSections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(section.title))
		b.WriteString("\n")
		for _, bind := range section.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-6s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)
	statusBar := components.RenderStatusBar(w, "[?]help [n]ew [a]dd [e]xport [q]uit", a.status, a.statusKind)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabBudgets:
		content = a.renderBudgetsTab(cw)
	case tabForecast:
		content = a.renderForecastTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
