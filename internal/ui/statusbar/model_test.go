package statusbar

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestView(t *testing.T) {
	m := New()
	m.SetSize(80)
	m.SetRefresh(true, 30)

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Left")
	assert.Contains(t, out, "Right")
	assert.Contains(t, out, "auto-refresh every 30s")

	m.SetRefresh(false, 45)
	m.SetStatus("HTTP 503", true)
	out = ansi.Strip(m.View())
	assert.Contains(t, out, "auto-refresh off (45s)")
	assert.Contains(t, out, "HTTP 503")
}

func TestView_FillsWidth(t *testing.T) {
	m := New()
	m.SetSize(100)
	m.SetRefresh(true, 5)
	assert.Equal(t, 100, ansi.StringWidth(m.View()))
}
