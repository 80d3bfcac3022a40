package ui

import "github.com/charmbracelet/lipgloss"

var (
	redditOrange = lipgloss.Color("#FF4500")
	dimGray      = lipgloss.Color("#444444")

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimGray)

	FocusedPanelStyle = PanelStyle.
				BorderForeground(redditOrange)

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(dimGray)

	FocusedInputStyle = InputStyle.
				BorderForeground(redditOrange)

	PromptStyle = lipgloss.NewStyle().
			Foreground(redditOrange).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)
