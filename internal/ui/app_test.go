package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/threadwatch/internal/config"
	"github.com/fragmede/threadwatch/internal/coordinator"
	"github.com/fragmede/threadwatch/internal/poller"
	"github.com/fragmede/threadwatch/internal/ui/messages"
)

const (
	left    = coordinator.Left
	right   = coordinator.Right
	payload = `[{"data":{"children":[{"data":{"title":"Left Thread","subreddit":"golang","author":"gopher"}}]}},
		{"data":{"children":[{"kind":"t1","data":{"id":"c1","author":"x","body":"hello there"}}]}}]`
)

type stubFetcher struct{}

func (stubFetcher) FetchThread(context.Context, string) ([]byte, error) {
	return []byte(payload), nil
}

func newApp(t *testing.T, l, r string) *App {
	t.Helper()
	a := NewApp(config.Default(), stubFetcher{}, l, r)
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 160, Height: 50})
	return a
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func poll(a *App, side coordinator.Side) poller.Poller {
	return a.coord.Panel(side).Poller
}

// complete delivers a successful result for side's outstanding fetch.
func complete(a *App, side coordinator.Side) {
	a.Update(messages.FetchResultMsg{
		Side:       side,
		Generation: poll(a, side).Generation,
		Body:       []byte(payload),
		At:         time.Now(),
	})
}

// statuses runs cmd and returns the status messages it produces. Only use
// it on commands that carry no timers.
func statuses(cmd tea.Cmd) []messages.StatusMsg {
	if cmd == nil {
		return nil
	}
	var out []messages.StatusMsg
	switch msg := cmd().(type) {
	case messages.StatusMsg:
		out = append(out, msg)
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, statuses(c)...)
		}
	}
	return out
}

func TestInit_LoadsInitialThreads(t *testing.T) {
	a := newApp(t, "abc", "https://www.reddit.com/r/golang/comments/def/some_title/")

	assert.Equal(t, "abc", poll(a, left).Identifier)
	assert.Equal(t, "def", poll(a, right).Identifier)
	assert.True(t, poll(a, left).IsLoading())
	assert.True(t, poll(a, right).IsLoading())
	assert.False(t, a.editing)
}

func TestInit_NoThreadStartsEditing(t *testing.T) {
	a := newApp(t, "", "")
	assert.True(t, a.editing)
	assert.Contains(t, ansi.Strip(a.View()), "No Thread Selected")
}

func TestFetchResult_RendersThread(t *testing.T) {
	a := newApp(t, "abc", "")
	complete(a, left)

	assert.Equal(t, poller.Ready, poll(a, left).Status)
	out := ansi.Strip(a.View())
	assert.Contains(t, out, "Left Thread")
	assert.Contains(t, out, "hello there")
	assert.Contains(t, out, "No Thread Selected")
}

func TestFetchResult_StaleGenerationIgnored(t *testing.T) {
	a := newApp(t, "abc", "")
	stale := poll(a, left).Generation

	a.Update(runes("/"))
	a.inputs[left].SetValue("xyz")
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "xyz", poll(a, left).Identifier)

	a.Update(messages.FetchResultMsg{Side: left, Generation: stale, Body: []byte(payload)})
	assert.Nil(t, poll(a, left).Meta)
	assert.True(t, poll(a, left).IsLoading())
}

func TestEditing_LoadFromURL(t *testing.T) {
	a := newApp(t, "", "")
	for _, r := range "https://redd.it/q1w2e3" {
		a.Update(runes(string(r)))
	}
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, a.editing)
	assert.Equal(t, "q1w2e3", poll(a, left).Identifier)
	assert.Equal(t, poller.Loading, poll(a, left).Status)
}

func TestEditing_RejectsForeignURL(t *testing.T) {
	a := newApp(t, "", "")
	a.inputs[left].SetValue("https://example.com/foo")
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, a.editing)
	assert.Empty(t, poll(a, left).Identifier)
	assert.Contains(t, ansi.Strip(a.View()), "not a Reddit thread URL")
}

func TestEditing_EmptyClearsPanel(t *testing.T) {
	a := newApp(t, "abc", "")
	complete(a, left)

	a.Update(runes("/"))
	a.inputs[left].SetValue("")
	a.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, poller.Idle, poll(a, left).Status)
	assert.False(t, poll(a, left).HasData())
}

func TestEditing_EscCancels(t *testing.T) {
	a := newApp(t, "", "")
	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, a.editing)

	// q quits only outside the input.
	_, cmd := a.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestKeys_SwitchPanel(t *testing.T) {
	a := newApp(t, "abc", "def")
	a.Update(tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, right, a.focus)
	assert.True(t, a.panels[right].Focused())
	assert.False(t, a.panels[left].Focused())
}

func TestKeys_RefreshBoth(t *testing.T) {
	a := newApp(t, "abc", "def")
	complete(a, left)
	complete(a, right)

	a.Update(runes("r"))

	assert.True(t, poll(a, left).InFlight)
	assert.True(t, poll(a, right).InFlight)
	assert.True(t, poll(a, left).Refreshing)
	assert.NotNil(t, poll(a, left).Meta)
}

func TestKeys_AutoRefreshAndCadence(t *testing.T) {
	a := newApp(t, "abc", "")
	require.True(t, a.coord.AutoRefresh())

	a.Update(runes("a"))
	assert.False(t, a.coord.AutoRefresh())
	assert.False(t, poll(a, left).AutoRefresh)
	assert.Contains(t, ansi.Strip(a.View()), "auto-refresh off")

	a.Update(runes("+"))
	assert.Equal(t, 35, a.coord.Cadence())
	a.Update(runes("-"))
	a.Update(runes("-"))
	assert.Equal(t, 25, a.coord.Cadence())
	assert.Equal(t, 25, poll(a, left).Cadence)
}

func TestTimer_StaleTickIgnored(t *testing.T) {
	a := newApp(t, "abc", "")
	complete(a, left)
	old := poll(a, left).TimerID

	a.Update(runes("a")) // disable

	a.Update(messages.TimerMsg{Side: left, TimerID: old})
	assert.False(t, poll(a, left).InFlight)
}

func TestTimer_FireRefreshes(t *testing.T) {
	a := newApp(t, "abc", "")
	complete(a, left)

	a.Update(messages.TimerMsg{Side: left, TimerID: poll(a, left).TimerID})
	assert.True(t, poll(a, left).InFlight)
	assert.True(t, poll(a, left).Refreshing)
}

func TestKeys_DismissError(t *testing.T) {
	a := newApp(t, "abc", "")
	a.Update(messages.FetchResultMsg{Side: left, Generation: poll(a, left).Generation, Err: errors.New("HTTP 500 from somewhere")})
	require.NotEmpty(t, poll(a, left).Err)
	assert.Contains(t, ansi.Strip(a.View()), "HTTP 500")

	a.Update(runes("x"))
	assert.Empty(t, poll(a, left).Err)
}

func TestKeys_CollapseRoutedToFocusedPanel(t *testing.T) {
	a := newApp(t, "abc", "")
	complete(a, left)

	a.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.False(t, a.coord.Presentation(left).Get("c1").Expanded)

	// Collapse state survives a refresh.
	a.Update(runes("r"))
	complete(a, left)
	assert.False(t, a.coord.Presentation(left).Get("c1").Expanded)
}

func TestQuit_StopsTimers(t *testing.T) {
	a := newApp(t, "abc", "")
	armed := poll(a, left).TimerID

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.NotEqual(t, armed, poll(a, left).TimerID)
}

func TestFetchResult_ReportsStatus(t *testing.T) {
	a := newApp(t, "abc", "")
	_, cmd := a.Update(messages.FetchResultMsg{Side: left, Generation: poll(a, left).Generation, Body: []byte(payload)})

	got := statuses(cmd)
	require.Len(t, got, 1)
	assert.Equal(t, messages.StatusMsg{Text: "loaded abc"}, got[0])

	a.Update(got[0])
	assert.Contains(t, ansi.Strip(a.View()), "loaded abc")
}

func TestFetchResult_FailureReportsStatus(t *testing.T) {
	a := newApp(t, "abc", "")
	complete(a, left)
	a.Update(runes("r"))

	_, cmd := a.Update(messages.FetchResultMsg{Side: left, Generation: poll(a, left).Generation, Err: errors.New("HTTP 503")})

	got := statuses(cmd)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsError)
	assert.Equal(t, "left fetch failed: HTTP 503", got[0].Text)

	a.Update(got[0])
	assert.Contains(t, ansi.Strip(a.View()), "left fetch failed: HTTP 503")

	// A successful retry reports the recovery.
	a.Update(runes("r"))
	_, cmd = a.Update(messages.FetchResultMsg{Side: left, Generation: poll(a, left).Generation, Body: []byte(payload)})
	assert.Equal(t, []messages.StatusMsg{{Text: "loaded abc"}}, statuses(cmd))
}

func TestFetchResult_QuietWhenFencedOrRefreshed(t *testing.T) {
	a := newApp(t, "abc", "")
	stale := poll(a, left).Generation
	complete(a, left)

	_, cmd := a.Update(messages.FetchResultMsg{Side: left, Generation: stale, Err: errors.New("late")})
	assert.Empty(t, statuses(cmd))

	a.Update(runes("r"))
	_, cmd = a.Update(messages.FetchResultMsg{Side: left, Generation: poll(a, left).Generation, Body: []byte(payload)})
	assert.Empty(t, statuses(cmd))
}

func TestHelp_ShowsPanelBindings(t *testing.T) {
	a := newApp(t, "abc", "")
	a.Update(runes("?"))
	out := ansi.Strip(a.View())
	assert.Contains(t, out, "show/hide replies")
	assert.Contains(t, out, "fold/unfold all")
}
