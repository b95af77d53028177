package ui

import "github.com/charmbracelet/lipgloss"

// Accent blue, muted gray and a red for destructive prompts.
var (
	colorAccent = lipgloss.Color("#007AFF")
	colorMuted  = lipgloss.Color("#8E8E93")
	colorDanger = lipgloss.Color("#FF3B30")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	checkedStyle = lipgloss.NewStyle().Foreground(colorAccent)

	completedTextStyle = lipgloss.NewStyle().Foreground(colorMuted).Strikethrough(true)

	emptyStyle = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	statusStyle = lipgloss.NewStyle().Foreground(colorMuted)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDanger).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1)
)
