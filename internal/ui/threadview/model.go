package threadview

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/threadwatch/internal/poller"
	"github.com/fragmede/threadwatch/internal/render"
	"github.com/fragmede/threadwatch/internal/thread"
)

var (
	depthColors = []lipgloss.Color{
		"#FF4500", "#828282", "#00BFFF", "#32CD32", "#FFD700", "#FF69B4", "#9370DB", "#20B2AA",
	}

	commentAuthorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4500")).Bold(true)
	commentMetaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	commentOPStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#000")).Background(lipgloss.Color("#FF4500")).Bold(true)
	commentSelStyle    = lipgloss.NewStyle().Background(lipgloss.Color("#333333"))
	repliesToggleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00BFFF"))
	threadTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Padding(0, 1)
	threadMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Padding(0, 1)
	errorBannerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#8B0000")).Padding(0, 1)
	emptyStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282")).Padding(1, 2)
	separatorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

const (
	scrollStep       = 3
	maxSelfTextLines = 8
	maxIndent        = 30
)

type commentOffset struct {
	startLine int
	endLine   int
}

// Model renders one panel: the thread header and its comment tree.
type Model struct {
	viewport    viewport.Model
	spinner     spinner.Model
	keys        KeyMap
	state       poller.Poller
	pres        thread.Presentation
	comments    []FlatComment
	offsets     []commentOffset
	selectedIdx int
	focused     bool
	now         time.Time
	width       int
	height      int
}

// New creates an empty panel that handles keys.
func New(keys KeyMap) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		viewport: viewport.New(0, 0),
		spinner:  s,
		keys:     keys,
		pres:     thread.NewPresentation(),
	}
}

// Init starts the spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetSize updates viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.resizeViewport()
	m.rebuildContent()
}

// SetFocused marks the panel as receiving keys.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// Focused reports whether the panel receives keys.
func (m Model) Focused() bool {
	return m.focused
}

// SetState replaces the displayed poller state. pres is the live
// presentation namespace for this panel; toggles made here write to it.
// The selection follows the selected comment across refreshes.
func (m *Model) SetState(p poller.Poller, pres thread.Presentation, now time.Time) {
	var selectedID string
	if fc, ok := m.Selected(); ok {
		selectedID = fc.Node.ID
	}
	if p.Identifier != m.state.Identifier {
		selectedID = ""
		m.selectedIdx = 0
		m.viewport.GotoTop()
	}

	m.state = p
	m.pres = pres
	m.now = now
	m.rebuildComments()
	if idx := IndexOf(m.comments, selectedID); idx >= 0 {
		m.selectedIdx = idx
	}
	m.resizeViewport()
	m.rebuildContent()
}

// SetNow updates the reference time for relative timestamps.
func (m *Model) SetNow(now time.Time) {
	m.now = now
	m.resizeViewport()
	m.rebuildContent()
}

// Selected returns the comment under the cursor.
func (m Model) Selected() (FlatComment, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.comments) {
		return FlatComment{}, false
	}
	return m.comments[m.selectedIdx], true
}

// Comments returns the flattened rows currently displayed.
func (m Model) Comments() []FlatComment {
	return m.comments
}

func (m *Model) resizeViewport() {
	header := m.renderHeader()
	headerLines := strings.Count(header, "\n") + 1
	m.viewport.Height = max(m.height-headerLines, 1)
}

// Update handles keys routed to this panel and spinner ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.state.InFlight {
			m.resizeViewport()
			m.rebuildContent()
		}
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Down):
			if m.selectedIdx >= 0 && m.selectedIdx < len(m.offsets) {
				off := m.offsets[m.selectedIdx]
				viewBottom := m.viewport.YOffset + m.viewport.Height
				if off.endLine >= viewBottom {
					// Comment extends below viewport, scroll within it.
					m.viewport.SetYOffset(m.viewport.YOffset + scrollStep)
					return m, nil
				}
			}
			if m.selectedIdx < len(m.comments)-1 {
				m.selectedIdx++
				m.rebuildContent()
				m.scrollToCursor()
			}
			return m, nil
		case key.Matches(msg, m.keys.Up):
			if m.selectedIdx >= 0 && m.selectedIdx < len(m.offsets) {
				off := m.offsets[m.selectedIdx]
				if off.startLine < m.viewport.YOffset {
					// Comment extends above viewport, scroll within it.
					m.viewport.SetYOffset(max(m.viewport.YOffset-scrollStep, off.startLine))
					return m, nil
				}
			}
			if m.selectedIdx > 0 {
				m.selectedIdx--
				m.rebuildContent()
				m.scrollToCursor()
			}
			return m, nil
		case key.Matches(msg, m.keys.Collapse):
			if fc, ok := m.Selected(); ok {
				m.pres.ToggleExpanded(fc.Node.ID)
				m.rebuildComments()
				m.rebuildContent()
				m.scrollToCursor()
			}
			return m, nil
		case key.Matches(msg, m.keys.Replies):
			if fc, ok := m.Selected(); ok && fc.ReplyCount > 0 {
				m.pres.ToggleShowReplies(fc.Node.ID)
				m.rebuildComments()
				m.rebuildContent()
			}
			return m, nil
		case key.Matches(msg, m.keys.FoldAll):
			// Toggle collapse all: if any are expanded, collapse all; otherwise expand all.
			anyExpanded := false
			thread.Walk(m.state.Nodes, func(n thread.Node, _ int) {
				if len(n.Replies) > 0 && m.pres.Get(n.ID).Expanded {
					anyExpanded = true
				}
			})
			m.pres.SetAll(m.state.Nodes, !anyExpanded)
			m.rebuildComments()
			m.rebuildContent()
			if anyExpanded {
				m.viewport.GotoTop()
				m.selectedIdx = 0
			}
			return m, nil
		case key.Matches(msg, m.keys.Parent):
			if idx := FindParentIndex(m.comments, m.selectedIdx); idx >= 0 {
				m.selectedIdx = idx
				m.rebuildContent()
				m.scrollToCursor()
			}
			return m, nil
		case key.Matches(msg, m.keys.NextSib):
			if idx := FindNextSiblingIndex(m.comments, m.selectedIdx); idx >= 0 {
				m.selectedIdx = idx
				m.rebuildContent()
				m.scrollToCursor()
			}
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.selectedIdx = 0
			m.rebuildContent()
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			if len(m.comments) > 0 {
				m.selectedIdx = len(m.comments) - 1
				m.rebuildContent()
				m.viewport.GotoBottom()
			}
			return m, nil
		case key.Matches(msg, m.keys.HalfDown):
			m.viewport.HalfViewDown()
			return m, nil
		case key.Matches(msg, m.keys.HalfUp):
			m.viewport.HalfViewUp()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m Model) View() string {
	header := m.renderHeader()
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
}

func (m *Model) rebuildComments() {
	var op string
	if m.state.Meta != nil {
		op = m.state.Meta.Author
	}
	m.comments = FlattenTree(m.state.Nodes, m.pres, op)
	if m.selectedIdx >= len(m.comments) {
		m.selectedIdx = len(m.comments) - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

func (m *Model) rebuildContent() {
	if len(m.comments) == 0 {
		m.offsets = nil
		m.viewport.SetContent(m.emptyContent())
		return
	}

	var sb strings.Builder
	m.offsets = make([]commentOffset, len(m.comments))
	availWidth := max(m.width-2, 20)

	lineCount := 0
	for i, fc := range m.comments {
		startLine := lineCount
		indent := min(fc.Depth*2, maxIndent)
		indentStr := strings.Repeat(" ", indent)

		barColor := depthColors[fc.Depth%len(depthColors)]
		selected := i == m.selectedIdx && m.focused
		if selected {
			barColor = "#FF4500"
		}
		bar := lipgloss.NewStyle().Foreground(barColor).Render("│")

		lines := m.renderComment(fc, max(availWidth-indent-2, 20))
		for _, line := range lines {
			line = indentStr + bar + " " + line
			if selected {
				line = commentSelStyle.Render(line)
			}
			sb.WriteString(line + "\n")
			lineCount++
		}
		sb.WriteString("\n")
		lineCount++

		m.offsets[i] = commentOffset{startLine: startLine, endLine: lineCount - 1}
	}

	m.viewport.SetContent(sb.String())
}

// renderComment returns the unindented lines of one comment.
func (m Model) renderComment(fc FlatComment, bodyWidth int) []string {
	n := fc.Node

	header := commentAuthorStyle.Render(n.Author)
	if fc.IsOP {
		header += " " + commentOPStyle.Render(" OP ")
	}
	header += " " + commentMetaStyle.Render(fmt.Sprintf("%d points", n.Score))

	if !fc.State.Expanded {
		summary := "[+]"
		if fc.ReplyCount > 0 {
			summary = fmt.Sprintf("[+%d]", fc.Descendants)
		}
		return []string{commentMetaStyle.Render(summary) + " " + header}
	}

	header += " " + commentMetaStyle.Render(render.Since(time.Unix(n.CreatedAt, 0), m.clock()))
	lines := []string{header}
	if body := render.Body(n.BodyRaw, bodyWidth); body != "" {
		lines = append(lines, strings.Split(body, "\n")...)
	}
	if fc.ReplyCount > 0 {
		if fc.RepliesHidden() {
			lines = append(lines, repliesToggleStyle.Render(fmt.Sprintf("▸ Show %d %s", fc.ReplyCount, plural(fc.ReplyCount, "Reply", "Replies"))))
		} else {
			lines = append(lines, repliesToggleStyle.Render("▾ Hide Replies"))
		}
	}
	return lines
}

func (m Model) emptyContent() string {
	switch {
	case m.state.Identifier == "":
		return ""
	case m.state.IsLoading():
		return "  " + m.spinner.View() + " Loading comments..."
	case m.state.Status == poller.Failed && !m.state.HasData():
		return emptyStyle.Render("Could not load this thread.")
	}
	return emptyStyle.Render("No comments found")
}

func (m *Model) scrollToCursor() {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.offsets) {
		return
	}
	off := m.offsets[m.selectedIdx]
	// Show the start of the selected comment if it's not already visible.
	if off.startLine < m.viewport.YOffset || off.startLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(off.startLine)
	}
}

func (m Model) renderHeader() string {
	var parts []string
	width := max(m.width, 20)

	switch meta := m.state.Meta; {
	case m.state.Identifier == "":
		parts = append(parts,
			threadTitleStyle.Render("No Thread Selected"),
			threadMetaStyle.Render("Press / and paste a Reddit thread URL."),
		)
	case meta == nil && m.state.IsLoading():
		parts = append(parts, threadTitleStyle.Render(m.spinner.View()+" Loading thread..."))
	case meta == nil:
		parts = append(parts, threadTitleStyle.Render(m.state.Identifier))
	default:
		parts = append(parts, threadTitleStyle.Width(width).Render(meta.Title))
		parts = append(parts, threadMetaStyle.Render(fmt.Sprintf(
			"r/%s | u/%s | %s | Comments (%d)",
			meta.Subreddit, meta.Author, render.Since(time.Unix(meta.CreatedAt, 0), m.clock()), m.commentCount(),
		)))
		if self := render.Markdown(meta.SelfText, width-2); self != "" {
			parts = append(parts, clipLines(self, maxSelfTextLines))
		}
	}

	if status := m.statusLine(); status != "" {
		parts = append(parts, status)
	}
	if m.state.Err != "" {
		parts = append(parts, errorBannerStyle.Width(width).Render("✗ "+m.state.Err+" (x to dismiss)"))
	}

	parts = append(parts, separatorStyle.Render(strings.Repeat("─", m.width)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) statusLine() string {
	switch {
	case m.state.Refreshing:
		return threadMetaStyle.Render(m.spinner.View() + " refreshing…")
	case !m.state.UpdatedAt.IsZero():
		return threadMetaStyle.Render("updated " + render.Since(m.state.UpdatedAt, m.clock()))
	}
	return ""
}

// commentCount prefers the server's total, which includes comments that
// were not sent.
func (m Model) commentCount() int {
	if m.state.Meta != nil && m.state.Meta.CommentCount > 0 {
		return m.state.Meta.CommentCount
	}
	return thread.CountAll(m.state.Nodes)
}

func (m Model) clock() time.Time {
	if m.now.IsZero() {
		return time.Now()
	}
	return m.now
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(append(lines[:n], "  …"), "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
