package components

import (
	"strings"

	"github.com/theirongolddev/bizdash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusKind selects the color of the status message.
type StatusKind int

// Status message kinds.
const (
	StatusInfo StatusKind = iota
	StatusSuccess
	StatusError
)

// RenderStatusBar renders the bottom status bar: key hints on the left and
// the latest message on the right.
func RenderStatusBar(width int, hints, message string, kind StatusKind) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	msgStyle := base
	switch kind {
	case StatusSuccess:
		msgStyle = msgStyle.Foreground(t.Positive)
	case StatusError:
		msgStyle = msgStyle.Foreground(t.Negative).Bold(true)
	}

	left := " " + hints
	right := ""
	if message != "" {
		right = message + " "
	}

	// Truncate the message first; hints are more useful when space is short.
	room := width - lipgloss.Width(left) - 1
	if lipgloss.Width(right) > room {
		runes := []rune(right)
		if room > 1 && len(runes) > room {
			right = string(runes[:room-1]) + "…"
		} else if room <= 1 {
			right = ""
		}
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return base.Render(left+strings.Repeat(" ", padding)) + msgStyle.Render(right)
}
