package components

import (
	"github.com/theirongolddev/bizdash/internal/budget"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StatusColor maps a category status to its theme color.
func StatusColor(s model.CategoryStatus) lipgloss.Color {
	t := theme.Active
	switch s {
	case model.CategoryOver:
		return t.Negative
	case model.CategoryWarning:
		return t.Caution
	default:
		return t.Positive
	}
}

// StandingColor maps a budget standing to its theme color.
func StandingColor(s budget.Standing) lipgloss.Color {
	t := theme.Active
	switch s {
	case budget.OverBudget:
		return t.Negative
	case budget.UnderBudget:
		return t.Positive
	default:
		return t.TextPrimary
	}
}

// BandColor maps a forecast confidence band to its theme color.
func BandColor(b forecast.ConfidenceBand) lipgloss.Color {
	t := theme.Active
	switch b {
	case forecast.BandHigh:
		return t.Positive
	case forecast.BandMedium:
		return t.Caution
	default:
		return t.Negative
	}
}

// UtilizationBar renders a category's spend as a solid bar colored by its
// status. ratio is spent/allocated; overspend renders full.
func UtilizationBar(ratio float64, status model.CategoryStatus, width int) string {
	t := theme.Active

	ratio = min(max(ratio, 0), 1)
	width = max(width, 4)

	bar := progress.New(
		progress.WithSolidFill(string(StatusColor(status))),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)
	return bar.ViewAs(ratio)
}
