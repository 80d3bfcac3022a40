// Package coordinator runs two pollers side by side with shared refresh
// settings and one presentation namespace per panel.
package coordinator

import (
	"github.com/fragmede/threadwatch/internal/poller"
	"github.com/fragmede/threadwatch/internal/thread"
)

// Side identifies a panel.
type Side int

const (
	Left Side = iota
	Right
)

// Sides lists both panels in display order.
var Sides = [2]Side{Left, Right}

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Other returns the opposite panel.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

// Panel is the state owned for one side.
type Panel struct {
	Poller       poller.Poller
	Presentation thread.Presentation
}

// Command is a set of effects the driver must execute for one panel.
type Command struct {
	Side    Side
	Effects poller.Effects
}

// Coordinator owns both panels. All methods must be called from a single
// goroutine.
type Coordinator struct {
	panels      [2]Panel
	autoRefresh bool
	cadence     int
}

// New returns a coordinator with two idle panels.
func New(cadence int, autoRefresh bool) *Coordinator {
	c := &Coordinator{
		autoRefresh: autoRefresh,
		cadence:     poller.ClampCadence(cadence),
	}
	for _, side := range Sides {
		c.panels[side] = Panel{
			Poller:       poller.New(c.cadence, autoRefresh),
			Presentation: thread.NewPresentation(),
		}
	}
	return c
}

// Panel returns a copy of the panel state for side.
func (c *Coordinator) Panel(side Side) Panel {
	return c.panels[side]
}

// Presentation returns the live presentation namespace for side. Mutations
// through it are visible to later renders.
func (c *Coordinator) Presentation(side Side) thread.Presentation {
	return c.panels[side].Presentation
}

// AutoRefresh returns the shared auto-refresh setting.
func (c *Coordinator) AutoRefresh() bool { return c.autoRefresh }

// Cadence returns the shared refresh interval in seconds.
func (c *Coordinator) Cadence() int { return c.cadence }

// Load points side at identifier. A different identifier starts a fresh
// presentation namespace; an empty one returns the panel to idle.
func (c *Coordinator) Load(side Side, identifier string) []Command {
	if c.panels[side].Poller.Identifier != identifier {
		c.panels[side].Presentation = thread.NewPresentation()
	}
	return c.deliver(side, poller.SetIdentifier{ID: identifier})
}

// SetAutoRefresh applies enabled to both panels.
func (c *Coordinator) SetAutoRefresh(enabled bool) []Command {
	c.autoRefresh = enabled
	return c.broadcast(poller.SetAutoRefresh{Enabled: enabled})
}

// SetCadence applies seconds, clamped, to both panels.
func (c *Coordinator) SetCadence(seconds int) []Command {
	c.cadence = poller.ClampCadence(seconds)
	return c.broadcast(poller.SetCadence{Seconds: c.cadence})
}

// RefreshAll refreshes every loaded panel now, regardless of timer phase.
func (c *Coordinator) RefreshAll() []Command {
	return c.broadcast(poller.RefreshRequested{})
}

// Deliver routes a driver event (timer fire, fetch completion) to side.
func (c *Coordinator) Deliver(side Side, ev poller.Event) []Command {
	return c.deliver(side, ev)
}

// DismissError clears the error shown on side.
func (c *Coordinator) DismissError(side Side) []Command {
	return c.deliver(side, poller.DismissError{})
}

// Shutdown stops both timers and fences outstanding fetches.
func (c *Coordinator) Shutdown() []Command {
	return c.broadcast(poller.Teardown{})
}

func (c *Coordinator) deliver(side Side, ev poller.Event) []Command {
	p, fx := c.panels[side].Poller.Handle(ev)
	c.panels[side].Poller = p
	if fx.Empty() {
		return nil
	}
	return []Command{{Side: side, Effects: fx}}
}

func (c *Coordinator) broadcast(ev poller.Event) []Command {
	var cmds []Command
	for _, side := range Sides {
		cmds = append(cmds, c.deliver(side, ev)...)
	}
	return cmds
}
