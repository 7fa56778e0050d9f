package term

import (
	"fmt"
	"strings"

	"splitcaster/internal/ui/board"

	"github.com/charmbracelet/lipgloss"
)

const (
	timeColumn = 10
	goldMark   = "★"
)

// View renders the timer.
func (m Model) View() string {
	view := board.Build(m.state, m.showHundredths)
	width := m.width
	if width < 40 {
		width = 40
	}

	var sections []string
	sections = append(sections, renderHeader(view, width))
	if view.NeedsPermission {
		sections = append(sections, permissionStyle.Render("Waiting for split key access."))
	}
	for _, row := range view.Rows {
		sections = append(sections, renderRow(row, width))
	}
	timer := toneStyle(view.TimerTone, timerStyle).
		Width(width).
		Align(lipgloss.Right).
		Render(view.Timer)
	sections = append(sections, timer, renderFooter(view, width))
	if m.lastError != "" {
		sections = append(sections, errorStyle.Render(m.lastError))
	}
	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderHeader(view board.Board, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	return lipgloss.JoinVertical(lipgloss.Left,
		center.Inherit(titleStyle).Render(view.Game),
		center.Inherit(mutedStyle).Render(view.Category),
		mutedStyle.Width(width).Align(lipgloss.Right).Render(view.Attempts),
	)
}

func renderRow(row board.Row, width int) string {
	cell := lipgloss.NewStyle().Width(timeColumn).Align(lipgloss.Right)
	marker := " "
	if row.Tone == board.ToneGold {
		marker = goldMark
	}

	nameWidth := width - 3*timeColumn - 2
	if nameWidth < 8 {
		nameWidth = 8
	}
	name := lipgloss.NewStyle().Width(nameWidth).MaxWidth(nameWidth).Render(marker + " " + row.Name)

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		name,
		toneStyle(row.Tone, cell).Render(row.Delta),
		toneStyle(row.Tone, cell).Render(row.SplitTime),
		cell.Render(row.Cumulative),
	)
	if row.Active {
		return activeRowStyle.Render(line)
	}
	return line
}

func renderFooter(view board.Board, width int) string {
	half := width / 2
	left := mutedStyle.Width(half).Render(view.PersonalBest)
	right := mutedStyle.Width(width - half).Align(lipgloss.Right).Render(view.SumOfBest)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// RenderSummary prints the route's personal best and per-split bests as a
// plain table for `splitterm show`.
func RenderSummary(view board.Board) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", titleStyle.Render(view.Game), view.Category, view.Attempts)
	for _, row := range view.Rows {
		fmt.Fprintf(&b, "  %-24s %10s %10s\n", row.Name, row.SplitTime, row.Cumulative)
	}
	fmt.Fprintf(&b, "\n%s   %s\n", view.PersonalBest, view.SumOfBest)
	return b.String()
}
