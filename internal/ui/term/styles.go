// Package term provides a bubbletea + lipgloss terminal front-end for the
// split timer.
package term

import (
	"splitcaster/internal/ui/board"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorWhite = lipgloss.Color("#FAFAFA")
	colorGray  = lipgloss.Color("#888888")
	colorGold  = lipgloss.Color("#F5C542")
	colorGreen = lipgloss.Color("#4CC26B")
	colorRed   = lipgloss.Color("#E05252")
	colorRow   = lipgloss.Color("#2E3442")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	activeRowStyle = lipgloss.NewStyle().
			Background(colorRow)

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 0)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	permissionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGold).
			Padding(0, 1)
)

// toneStyle returns the foreground style for a tone, falling back to base.
func toneStyle(tone board.Tone, base lipgloss.Style) lipgloss.Style {
	switch tone {
	case board.ToneGold:
		return base.Foreground(colorGold)
	case board.ToneAhead:
		return base.Foreground(colorGreen)
	case board.ToneBehind:
		return base.Foreground(colorRed)
	default:
		return base
	}
}
