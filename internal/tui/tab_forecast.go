package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/tui/components"
	"github.com/theirongolddev/bizdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderForecastTab(cw int) string {
	t := theme.Active

	metrics := []components.Metric{
		{Label: "History", Value: fmt.Sprintf("%d months", len(a.history))},
		{Label: "Horizon", Value: fmt.Sprintf("%d months", a.horizon), Note: "h to change"},
	}
	if a.projection != nil {
		sum := forecast.Totals(a.projection)
		profitColor := t.Positive
		if sum.TotalProfit < 0 {
			profitColor = t.Negative
		}
		metrics = append(metrics,
			components.Metric{Label: "Projected Revenue", Value: cli.FormatAmount(sum.TotalRevenue), Color: t.Revenue},
			components.Metric{Label: "Projected Profit", Value: cli.FormatAmount(sum.TotalProfit), Color: profitColor},
		)
	}
	cards := components.MetricCardRow(metrics, cw)

	halves := components.LayoutRow(cw, 2)
	history := a.renderHistory(halves[0])
	projection := a.renderProjection(halves[1])

	return lipgloss.JoinVertical(lipgloss.Left, cards, components.CardRow([]string{history, projection}))
}

func (a App) renderHistory(w int) string {
	if len(a.history) == 0 {
		return components.ContentCard("Historical Data", "No monthly figures yet.\n\nPress a to add one.", w)
	}

	t := theme.Active
	profits := make([]float64, len(a.history))
	rows := make([][]string, len(a.history))
	for i, h := range a.history {
		profits[i] = h.Profit
		rows[i] = []string{cli.FormatMonth(h.Month), cli.FormatAmount(h.Revenue), cli.FormatAmount(h.Expenses), cli.FormatAmount(h.Profit)}
	}

	body := renderFigures([]string{"Month", "Revenue", "Expenses", "Profit"}, rows, nil, w)
	trend := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("Profit ") +
		components.Sparkline(profits, t.Accent)
	return components.ContentCard("Historical Data", body+"\n"+trend, w)
}

func (a App) renderProjection(w int) string {
	if a.projection == nil {
		hint := "Press g to project the next months."
		if n := len(a.history); n < forecast.MinSamples {
			hint = fmt.Sprintf("Add %d more month(s) of figures, then press g.", forecast.MinSamples-n)
		}
		return components.ContentCard("Forecast", hint, w)
	}

	rows := make([][]string, len(a.projection))
	colors := make([]lipgloss.Color, len(a.projection))
	for i, f := range a.projection {
		rows[i] = []string{
			cli.FormatMonth(f.Month),
			cli.FormatAmount(f.ProjectedRevenue),
			cli.FormatAmount(f.ProjectedExpenses),
			cli.FormatAmount(f.ProjectedProfit),
			fmt.Sprintf("%d%%", f.Confidence),
		}
		colors[i] = components.BandColor(forecast.Band(f.Confidence))
	}

	body := renderFigures([]string{"Month", "Revenue", "Expenses", "Profit", "Conf."}, rows, colors, w)
	return components.ContentCard(fmt.Sprintf("Forecast (%d months)", a.horizon), body, w)
}

// renderFigures lays out a left-aligned first column and right-aligned
// figures. lastColors, when set, colors the final column per row.
func renderFigures(headers []string, rows [][]string, lastColors []lipgloss.Color, w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, r := range rows {
		for i, cell := range r {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	format := func(i int, s string) string {
		if i == 0 {
			return fmt.Sprintf("%-*s", widths[i], s)
		}
		return fmt.Sprintf(" %*s", widths[i]+1, s)
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(headerStyle.Render(format(i, h)))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))

	last := len(headers) - 1
	for r, row := range rows {
		b.WriteString("\n")
		for i, cell := range row {
			style := rowStyle
			if i == last && lastColors != nil {
				style = style.Foreground(lastColors[r])
			}
			b.WriteString(style.Render(format(i, cell)))
		}
	}
	return b.String()
}
