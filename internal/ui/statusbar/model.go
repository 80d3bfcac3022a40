package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	barStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#FFFFFF"))

	activeTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#FF4500")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#555555")).
				Foreground(lipgloss.Color("#CCCCCC")).
				Padding(0, 1)

	autoOnStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#00FF00")).
			Padding(0, 1)

	autoOffStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	statusTextStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#333333")).
			Foreground(lipgloss.Color("#AAAAAA")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B0000")).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)
)

var tabs = []string{"Left", "Right"}

// Model is the status bar at the bottom of the screen.
type Model struct {
	width       int
	focused     int
	autoRefresh bool
	cadence     int
	statusText  string
	isError     bool
}

// New creates a new status bar.
func New() Model {
	return Model{}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetFocused highlights panel i (0 left, 1 right).
func (m *Model) SetFocused(i int) {
	m.focused = i
}

// SetRefresh shows the shared auto-refresh settings.
func (m *Model) SetRefresh(enabled bool, cadence int) {
	m.autoRefresh = enabled
	m.cadence = cadence
}

// SetStatus sets a temporary status message.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.isError = isError
}

// View renders the status bar.
func (m Model) View() string {
	var tabsStr string
	for i, label := range tabs {
		if i == m.focused {
			tabsStr += activeTabStyle.Render(label)
		} else {
			tabsStr += inactiveTabStyle.Render(label)
		}
	}

	var right string
	if m.statusText != "" {
		if m.isError {
			right += errorStyle.Render(m.statusText)
		} else {
			right += statusTextStyle.Render(m.statusText)
		}
	}
	if m.autoRefresh {
		right += autoOnStyle.Render(fmt.Sprintf("auto-refresh every %ds", m.cadence))
	} else {
		right += autoOffStyle.Render(fmt.Sprintf("auto-refresh off (%ds)", m.cadence))
	}

	// Fill middle with background.
	gap := max(m.width-lipgloss.Width(tabsStr)-lipgloss.Width(right), 0)
	mid := barStyle.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, tabsStr, mid, right)
}
