package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Only the renderer for the last width is kept.
var (
	mdMu       sync.Mutex
	mdRenderer *glamour.TermRenderer
	mdWidth    int
)

// Markdown renders src (a thread's self-text) for the terminal at width.
// On any renderer failure it falls back to Body.
func Markdown(src string, width int) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}

	r, err := markdownRenderer(width)
	if err != nil {
		return Body(src, width)
	}
	out, err := r.Render(clean(src))
	if err != nil {
		return Body(src, width)
	}
	return strings.Trim(out, "\n")
}

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	mdMu.Lock()
	defer mdMu.Unlock()

	if mdRenderer != nil && mdWidth == width {
		return mdRenderer, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	mdRenderer, mdWidth = r, width
	return r, nil
}
