package components

import (
	"strings"

	"github.com/theirongolddev/bizdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as unicode blocks scaled between the series
// minimum and maximum, so losses and profits share one scale.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	top := len(sparkBlocks) - 1
	for _, v := range values {
		idx := top
		if span > 0 {
			idx = int((v - lo) / span * float64(top))
		}
		buf.WriteRune(sparkBlocks[min(max(idx, 0), top)])
	}

	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}
