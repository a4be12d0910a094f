package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bizdash/internal/budget"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	badStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output. The first column
// is left-aligned, the rest right-aligned.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// Separator is a row value that renders as a horizontal rule.
var Separator = []string{"---"}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. Cells may
// carry ANSI styling; widths are measured on the visible text.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		measure := func(i int, s string) {
			if w := lipgloss.Width(s); w > widths[i] {
				widths[i] = w
			}
		}
		for i, h := range t.Headers {
			measure(i, h)
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					measure(i, cell)
				}
			}
		}
	}

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(left)
		for i, w := range widths {
			b.WriteString(strings.Repeat("─", w+2))
			if i < numCols-1 {
				b.WriteString(mid)
			}
		}
		b.WriteString(right)
		return dimStyle.Render(b.String()) + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(" " + pad(h, widths[i], i > 0) + " "))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == Separator[0] {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(" " + valueStyle.Render(pad(cell, widths[i], i > 0)) + " ")
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

// pad fills s to width visible cells, on the left when right is set.
func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// RenderKV renders aligned "label  value" lines.
func RenderKV(pairs [][2]string) string {
	labelWidth := 0
	for _, p := range pairs {
		if len(p[0]) > labelWidth {
			labelWidth = len(p[0])
		}
	}
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s  %s\n", mutedStyle.Render(fmt.Sprintf("%-*s", labelWidth, p[0])), p[1])
	}
	return b.String()
}

// RenderStatus colors a category status label.
func RenderStatus(s model.CategoryStatus) string {
	switch s {
	case model.CategoryOver:
		return badStyle.Render("over")
	case model.CategoryWarning:
		return warnStyle.Render("warning")
	default:
		return goodStyle.Render("ok")
	}
}

// RenderVariance colors a variance by whether the budget is over or under.
func RenderVariance(v decimal.Decimal) string {
	switch budget.VarianceStanding(v) {
	case budget.OverBudget:
		return badStyle.Render(FormatSignedMoney(v))
	case budget.UnderBudget:
		return goodStyle.Render(FormatSignedMoney(v))
	default:
		return valueStyle.Render(FormatMoney(v))
	}
}

// RenderConfidence colors a confidence score by its band.
func RenderConfidence(confidence int) string {
	label := fmt.Sprintf("%d%%", confidence)
	switch forecast.Band(confidence) {
	case forecast.BandHigh:
		return goodStyle.Render(label)
	case forecast.BandMedium:
		return warnStyle.Render(label)
	default:
		return badStyle.Render(label)
	}
}

// RenderProfit colors a profit figure green or red.
func RenderProfit(v float64) string {
	if v < 0 {
		return badStyle.Render(FormatAmount(v))
	}
	return goodStyle.Render(FormatAmount(v))
}

// RenderUtilizationBar renders a fixed-width bar for a utilization
// percentage, colored by status. Overspend fills the bar.
func RenderUtilizationBar(pct decimal.Decimal, status model.CategoryStatus, width int) string {
	if width <= 0 {
		return ""
	}
	ratio := pct.InexactFloat64() / 100
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	filled := int(ratio * float64(width))
	bar := strings.Repeat("█", filled)
	rest := strings.Repeat("░", width-filled)

	style := goodStyle
	switch status {
	case model.CategoryOver:
		style = badStyle
	case model.CategoryWarning:
		style = warnStyle
	}
	return style.Render(bar) + dimStyle.Render(rest)
}

// RenderSparkline generates a unicode block sparkline scaled between the
// series minimum and maximum, so negative values render too.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo

	var b strings.Builder
	for _, v := range values {
		idx := len(blocks) - 1
		if span > 0 {
			idx = int((v - lo) / span * float64(len(blocks)-1))
		}
		idx = max(0, min(idx, len(blocks)-1))
		b.WriteRune(blocks[idx])
	}
	return b.String()
}
