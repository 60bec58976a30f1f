package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors.
var (
	primary = lipgloss.Color("#7C3AED")
	success = lipgloss.Color("#10B981")
	warning = lipgloss.Color("#F59E0B")
	danger  = lipgloss.Color("#EF4444")
	muted   = lipgloss.Color("#6B7280")
	info    = lipgloss.Color("#3B82F6")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1)

	dimStyle = lipgloss.NewStyle().
			Foreground(muted)

	valueStyle = lipgloss.NewStyle().
			Foreground(warning)

	pathStyle = lipgloss.NewStyle().
			Foreground(info)

	goodStyle = lipgloss.NewStyle().
			Foreground(success).
			Bold(true)

	badStyle = lipgloss.NewStyle().
			Foreground(danger).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(1, 2)
)

// scoreStyle picks a color for a health score value.
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 75:
		return goodStyle
	case score >= 50:
		return valueStyle.Bold(true)
	default:
		return badStyle
	}
}
