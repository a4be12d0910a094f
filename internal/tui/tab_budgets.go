package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/bizdash/internal/budget"
	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/tui/components"
	"github.com/theirongolddev/bizdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const budgetListWidth = 34

func (a App) renderBudgetsTab(cw int) string {
	if len(a.budgets) == 0 {
		return components.ContentCard("Budgets",
			"No budgets yet.\n\nPress n to create one, or run bizdash budget create.", cw)
	}

	list := a.renderBudgetList(budgetListWidth)
	detailW := cw - budgetListWidth

	b, ok := a.currentBudget()
	if !ok {
		detail := components.ContentCard("Current budget",
			"No budget selected. Pick one with j/k and press Enter.", detailW)
		return components.CardRow([]string{list, detail})
	}

	s := budget.Summarize(b)
	t := theme.Active

	standing := s.Standing.String()
	cards := components.MetricCardRow([]components.Metric{
		{Label: "Total Budget", Value: cli.FormatMoney(s.TotalAmount), Note: fmt.Sprintf("%s · %s", b.Period, b.Status)},
		{Label: "Total Spent", Value: cli.FormatMoney(s.TotalSpent), Color: t.Expense},
		{Label: "Variance", Value: cli.FormatSignedMoney(s.Variance), Note: standing, Color: components.StandingColor(s.Standing)},
	}, detailW)

	detail := lipgloss.JoinVertical(lipgloss.Left, cards, a.renderCategories(s, b.Name, detailW))
	return components.CardRow([]string{list, detail})
}

func (a App) renderBudgetList(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	markStyle := lipgloss.NewStyle().Foreground(t.Positive).Background(t.Surface)

	var body strings.Builder
	for i, b := range a.budgets {
		mark := "  "
		if b.ID == a.currentID {
			mark = markStyle.Render("● ")
		}
		name := fmt.Sprintf("%-*s", innerW-2, truncStr(b.Name, innerW-2))
		if i == a.cursor {
			body.WriteString(mark + selStyle.Render(name))
		} else {
			body.WriteString(mark + rowStyle.Render(name))
		}
		body.WriteString("\n")
		body.WriteString(mutedStyle.Render(fmt.Sprintf("  %s · %s", cli.FormatMoney(b.TotalAmount), b.Period)))
		if i < len(a.budgets)-1 {
			body.WriteString("\n")
		}
	}
	return components.ContentCard(fmt.Sprintf("Budgets (%d)", len(a.budgets)), body.String(), w)
}

func (a App) renderCategories(s budget.Summary, name string, w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	const amountW, pctW, statusW = 23, 7, 8
	nameW := 18
	barW := max(innerW-nameW-amountW-pctW-statusW-4, 8)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-*s %*s %*s %-*s",
		nameW, "Category", barW, "Utilization", pctW, "Used", amountW, "Spent / Allocated", statusW, "Status")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	for _, line := range s.Lines {
		c := line.Category
		statusStyle := lipgloss.NewStyle().Foreground(components.StatusColor(line.Status)).Background(t.Surface)

		body.WriteString(rowStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(c.Name, nameW))))
		body.WriteString(space)
		body.WriteString(components.UtilizationBar(line.Utilization.InexactFloat64()/100, line.Status, barW))
		body.WriteString(space)
		body.WriteString(statusStyle.Render(fmt.Sprintf("%*s", pctW, cli.FormatUtilization(line.Utilization, line.Defined))))
		body.WriteString(space)
		body.WriteString(rowStyle.Render(fmt.Sprintf("%*s", amountW,
			cli.FormatMoney(c.Spent)+" / "+cli.FormatMoney(c.Allocated))))
		body.WriteString(space)
		body.WriteString(statusStyle.Render(fmt.Sprintf("%-*s", statusW, line.Status)))
		body.WriteString("\n")
	}

	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(fmt.Sprintf("Allocated %s · Unallocated %s · %d over, %d warning",
		cli.FormatMoney(s.TotalAllocated), cli.FormatMoney(s.Unallocated), s.OverCount, s.WarningCount)))

	return components.ContentCard(name, body.String(), w)
}
