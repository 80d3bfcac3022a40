package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/fragmede/threadwatch/internal/api"
	"github.com/fragmede/threadwatch/internal/config"
	"github.com/fragmede/threadwatch/internal/coordinator"
	"github.com/fragmede/threadwatch/internal/logging"
	"github.com/fragmede/threadwatch/internal/poller"
	"github.com/fragmede/threadwatch/internal/ui/messages"
	"github.com/fragmede/threadwatch/internal/ui/statusbar"
	"github.com/fragmede/threadwatch/internal/ui/threadview"
)

const cadenceStep = 5

// Fetcher returns the raw payload for a thread identifier.
type Fetcher interface {
	FetchThread(ctx context.Context, id string) ([]byte, error)
}

// App is the root Bubble Tea model. It owns the coordinator and turns its
// effects into commands: fetches run as tea.Cmds and timers as tea.Tick.
// A tick cannot be cancelled, so a stopped timer is fenced by its id.
type App struct {
	coord   *coordinator.Coordinator
	fetcher Fetcher
	log     zerolog.Logger

	inputs  [2]textinput.Model
	panels  [2]threadview.Model
	focus   coordinator.Side
	editing bool
	initial [2]string

	statusBar statusbar.Model
	help      help.Model
	keys      KeyMap

	width  int
	height int
}

// NewApp creates the root application model. left and right are thread
// URLs or identifiers to load on start; either may be empty.
func NewApp(cfg config.Config, fetcher Fetcher, left, right string) *App {
	a := &App{
		coord:     coordinator.New(cfg.RefreshInterval, cfg.AutoRefresh),
		fetcher:   fetcher,
		log:       logging.Component("ui"),
		initial:   [2]string{left, right},
		statusBar: statusbar.New(),
		help:      help.New(),
		keys:      Keys,
	}
	for _, side := range coordinator.Sides {
		ti := textinput.New()
		ti.Prompt = "URL: "
		ti.PromptStyle = PromptStyle
		ti.PlaceholderStyle = DimStyle
		ti.Placeholder = "https://www.reddit.com/r/<sub>/comments/<id>/..."
		ti.CharLimit = 512
		ti.SetValue(a.initial[side])
		a.inputs[side] = ti
		a.panels[side] = threadview.New(a.keys.Panel)
	}
	a.panels[coordinator.Left].SetFocused(true)
	a.statusBar.SetRefresh(a.coord.AutoRefresh(), a.coord.Cadence())
	return a
}

// Init loads the initial threads and starts the clock.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{clockTick()}
	for _, side := range coordinator.Sides {
		cmds = append(cmds, a.panels[side].Init())
		if id := api.ThreadIDFromURL(a.initial[side]); id != "" {
			cmds = append(cmds, a.apply(a.coord.Load(side, id)))
		}
	}
	if a.coord.Panel(coordinator.Left).Poller.Identifier == "" {
		cmds = append(cmds, a.startEditing())
	}
	return tea.Batch(cmds...)
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, a.quit()
		}
		if a.editing {
			return a, a.updateInput(msg)
		}
		return a, a.handleKey(msg)

	case messages.TimerMsg:
		return a, a.apply(a.coord.Deliver(msg.Side, poller.TimerFired{TimerID: msg.TimerID}))

	case messages.FetchResultMsg:
		ev := a.log.Debug()
		if msg.Err != nil {
			ev = a.log.Warn().Err(msg.Err)
		}
		ev.Str("side", msg.Side.String()).
			Uint64("generation", msg.Generation).
			Int("bytes", len(msg.Body)).
			Msg("fetch completed")
		before := a.coord.Panel(msg.Side).Poller
		cmd := a.apply(a.coord.Deliver(msg.Side, poller.FetchCompleted{
			Generation: msg.Generation,
			Body:       msg.Body,
			Err:        msg.Err,
			At:         msg.At,
		}))
		return a, tea.Batch(cmd, fetchStatus(msg, before, a.coord.Panel(msg.Side).Poller))

	case messages.ClockMsg:
		for _, side := range coordinator.Sides {
			a.panels[side].SetNow(msg.At)
		}
		return a, clockTick()

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
		return a, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		for _, side := range coordinator.Sides {
			var cmd tea.Cmd
			a.panels[side], cmd = a.panels[side].Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	if a.editing {
		// Cursor blink.
		a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
		return a, cmd
	}
	a.panels[a.focus], cmd = a.panels[a.focus].Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		a.layout()
		return nil
	case key.Matches(msg, a.keys.SwitchPanel):
		a.setFocus(a.focus.Other())
		return nil
	case key.Matches(msg, a.keys.EditURL):
		return a.startEditing()
	case key.Matches(msg, a.keys.Refresh):
		return a.apply(a.coord.RefreshAll())
	case key.Matches(msg, a.keys.AutoRefresh):
		return a.apply(a.coord.SetAutoRefresh(!a.coord.AutoRefresh()))
	case key.Matches(msg, a.keys.Slower):
		return a.apply(a.coord.SetCadence(a.coord.Cadence() + cadenceStep))
	case key.Matches(msg, a.keys.Faster):
		return a.apply(a.coord.SetCadence(a.coord.Cadence() - cadenceStep))
	case key.Matches(msg, a.keys.Dismiss):
		a.statusBar.SetStatus("", false)
		return a.apply(a.coord.DismissError(a.focus))
	}

	var cmd tea.Cmd
	a.panels[a.focus], cmd = a.panels[a.focus].Update(msg)
	return cmd
}

func (a *App) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.stopEditing()
		return nil
	case key.Matches(msg, a.keys.SwitchPanel):
		a.stopEditing()
		a.setFocus(a.focus.Other())
		return a.startEditing()
	case key.Matches(msg, a.keys.Load):
		raw := strings.TrimSpace(a.inputs[a.focus].Value())
		id := api.ThreadIDFromURL(raw)
		if raw != "" && id == "" {
			a.statusBar.SetStatus("not a Reddit thread URL", true)
			return nil
		}
		a.statusBar.SetStatus("", false)
		a.stopEditing()
		a.log.Info().Str("side", a.focus.String()).Str("thread", id).Msg("load")
		return a.apply(a.coord.Load(a.focus, id))
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	return cmd
}

func (a *App) startEditing() tea.Cmd {
	a.editing = true
	return a.inputs[a.focus].Focus()
}

func (a *App) stopEditing() {
	a.editing = false
	a.inputs[a.focus].Blur()
}

func (a *App) setFocus(side coordinator.Side) {
	a.focus = side
	for _, s := range coordinator.Sides {
		a.panels[s].SetFocused(s == side)
	}
	a.statusBar.SetFocused(int(side))
}

func (a *App) quit() tea.Cmd {
	a.apply(a.coord.Shutdown())
	return tea.Quit
}

// apply executes coordinator commands and refreshes the panels.
func (a *App) apply(cmds []coordinator.Command) tea.Cmd {
	var out []tea.Cmd
	for _, c := range cmds {
		fx := c.Effects
		if fx.Fetch != nil {
			a.log.Debug().
				Str("side", c.Side.String()).
				Str("thread", fx.Fetch.Identifier).
				Uint64("generation", fx.Fetch.Generation).
				Bool("refresh", fx.Fetch.Refresh).
				Msg("fetch")
			out = append(out, a.fetchCmd(c.Side, *fx.Fetch))
		}
		if fx.Arm != nil {
			out = append(out, timerCmd(c.Side, *fx.Arm))
		}
		if fx.StopTimer {
			a.log.Debug().Str("side", c.Side.String()).Msg("timer stopped")
		}
	}
	a.sync()
	return tea.Batch(out...)
}

// sync pushes coordinator state into the panels and status bar.
func (a *App) sync() {
	now := time.Now()
	for _, side := range coordinator.Sides {
		a.panels[side].SetState(a.coord.Panel(side).Poller, a.coord.Presentation(side), now)
	}
	a.statusBar.SetRefresh(a.coord.AutoRefresh(), a.coord.Cadence())
}

func (a *App) fetchCmd(side coordinator.Side, req poller.FetchRequest) tea.Cmd {
	fetcher := a.fetcher
	return func() tea.Msg {
		body, err := fetcher.FetchThread(context.Background(), req.Identifier)
		return messages.FetchResultMsg{
			Side:       side,
			Generation: req.Generation,
			Body:       body,
			Err:        err,
			At:         time.Now(),
		}
	}
}

// fetchStatus reports a load or a failure in the status bar. Results that
// the poller fenced out and successful refreshes stay quiet.
func fetchStatus(msg messages.FetchResultMsg, before, after poller.Poller) tea.Cmd {
	if msg.Generation != before.Generation || !before.InFlight {
		return nil
	}
	var status messages.StatusMsg
	switch {
	case after.Status == poller.Failed:
		status = messages.StatusMsg{Text: msg.Side.String() + " fetch failed: " + after.Err, IsError: true}
	case before.Status != poller.Ready && after.Status == poller.Ready:
		status = messages.StatusMsg{Text: "loaded " + after.Identifier}
	default:
		return nil
	}
	return func() tea.Msg { return status }
}

func timerCmd(side coordinator.Side, req poller.TimerRequest) tea.Cmd {
	return tea.Tick(req.After, func(time.Time) tea.Msg {
		return messages.TimerMsg{Side: side, TimerID: req.ID}
	})
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return messages.ClockMsg{At: t}
	})
}

func (a *App) layout() {
	if a.width == 0 {
		return
	}
	half := a.width / 2
	helpHeight := lipgloss.Height(a.help.View(a.keys))
	// input row (2), status bar (1), panel border (2)
	panelHeight := max(a.height-2-1-2-helpHeight, 3)

	for _, side := range coordinator.Sides {
		w := half
		if side == coordinator.Right {
			w = a.width - half
		}
		a.inputs[side].Width = max(w-lipgloss.Width(a.inputs[side].Prompt)-1, 1)
		a.panels[side].SetSize(w-2, panelHeight)
	}
	a.statusBar.SetSize(a.width)
	a.help.Width = a.width
}

// View renders the application.
func (a *App) View() string {
	var inputs, panels [2]string
	half := a.width / 2
	for _, side := range coordinator.Sides {
		w := half
		if side == coordinator.Right {
			w = a.width - half
		}

		inputStyle := InputStyle
		panelStyle := PanelStyle
		if side == a.focus {
			panelStyle = FocusedPanelStyle
			if a.editing {
				inputStyle = FocusedInputStyle
			}
		}
		inputs[side] = inputStyle.Width(w).Render(a.inputs[side].View())
		panels[side] = panelStyle.Width(w - 2).Render(a.panels[side].View())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, inputs[:]...),
		lipgloss.JoinHorizontal(lipgloss.Top, panels[:]...),
		a.statusBar.View(),
		a.help.View(a.keys),
	)
}
