package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	assert.Equal(t, []int{34, 33, 33}, LayoutRow(100, 3))
	assert.Nil(t, LayoutRow(100, 0))

	sum := 0
	for _, w := range LayoutRow(157, 4) {
		sum += w
	}
	assert.Equal(t, 157, sum)
}

func TestCardRowPadsShorterCards(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Short", "Content", 22)
	tall := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)
	require.Less(t, lipgloss.Height(short), lipgloss.Height(tall))

	joined := CardRow([]string{tall, short})
	lines := strings.Split(joined, "\n")
	assert.Len(t, lines, lipgloss.Height(tall))

	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		assert.Equal(t, width, lipgloss.Width(line), "line %d", i)
		assert.Contains(t, line, "\x1b[", "line %d carries background styling", i)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Total Budget", Value: "$50,000"},
		{Label: "Total Spent", Value: "$38,500"},
		{Label: "Variance", Value: "+$11,500", Note: "under budget", Color: theme.Active.Positive},
	}, 90)

	for _, line := range strings.Split(row, "\n") {
		assert.Equal(t, 90, lipgloss.Width(line))
	}
	assert.Contains(t, row, "under budget")
}

func TestTabBar(t *testing.T) {
	bar := RenderTabBar(0, 60)
	assert.Equal(t, 60, lipgloss.Width(bar))
	assert.Contains(t, bar, "Budgets")
	assert.Contains(t, bar, "orecast")

	assert.Equal(t, 0, TabIdxByKey('b'))
	assert.Equal(t, 1, TabIdxByKey('f'))
	assert.Equal(t, -1, TabIdxByKey('z'))

	for i, tab := range Tabs {
		assert.Equal(t, len(tab.Name)+2, TabVisualWidth(tab, i == 0))
		assert.Equal(t, len(tab.Name)+2, TabVisualWidth(tab, i != 0))
	}
}

func TestStatusBarFitsWidth(t *testing.T) {
	bar := RenderStatusBar(40, "[?]help [q]uit", "budget saved", StatusSuccess)
	assert.Equal(t, 40, lipgloss.Width(bar))
	assert.Contains(t, bar, "budget saved")

	long := RenderStatusBar(30, "[?]help [q]uit", strings.Repeat("x", 100), StatusError)
	assert.Equal(t, 30, lipgloss.Width(long))
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil, theme.Active.Accent))

	line := Sparkline([]float64{-1000, 0, 1000}, theme.Active.Accent)
	assert.Contains(t, line, "▁")
	assert.Contains(t, line, "█")
	assert.Equal(t, 3, lipgloss.Width(line))
}

func TestStatusColors(t *testing.T) {
	theme.SetActive("terminal")
	defer theme.SetActive("flexoki-dark")

	assert.Equal(t, theme.Terminal.Negative, StatusColor(model.CategoryOver))
	assert.Equal(t, theme.Terminal.Caution, StatusColor(model.CategoryWarning))
	assert.Equal(t, theme.Terminal.Positive, StatusColor(model.CategoryOK))
}

func TestUtilizationBarWidth(t *testing.T) {
	bar := UtilizationBar(1.8, model.CategoryOver, 20)
	assert.Equal(t, 20, lipgloss.Width(bar))
}
