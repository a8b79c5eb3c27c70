package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const (
	colorPrimary   = "#7C3AED"
	colorSecondary = "#10B981"
	colorWarning   = "#F59E0B"
	colorError     = "#EF4444"
	colorMuted     = "#6B7280"
	colorBorder    = "#374151"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Bold(true)

	filterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorWarning))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorError)).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSecondary))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)
)

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colorBorder)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(colorPrimary)).
		Bold(false)
	return s
}
