// Package poller implements the per-panel fetch lifecycle as a pure state
// machine. A Poller never performs I/O: Handle returns the fetches and timer
// changes it wants, and the driver (TUI or headless monitor) carries them
// out and feeds the results back as events.
package poller

import (
	"time"

	"github.com/fragmede/threadwatch/internal/thread"
)

// Cadence bounds, in seconds.
const (
	MinCadence     = 5
	MaxCadence     = 300
	DefaultCadence = 30
)

// Status is the coarse fetch lifecycle state.
type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ClampCadence bounds seconds to [MinCadence, MaxCadence].
func ClampCadence(seconds int) int {
	return max(MinCadence, min(seconds, MaxCadence))
}

// Poller is the state of one panel. The zero value is not useful; use New.
type Poller struct {
	Identifier string
	Meta       *thread.Meta
	Nodes      []thread.Node
	Status     Status
	// Refreshing is set while a refresh runs over data already on screen.
	Refreshing bool
	// Err is the last failure message, empty when there is none.
	Err         string
	Cadence     int
	AutoRefresh bool

	// Generation is bumped for every fetch issued and whenever outstanding
	// results must be ignored. Only a FetchCompleted carrying the current
	// generation is applied.
	Generation uint64
	// TimerID names the one armed timer; fires with any other id are stale.
	TimerID   uint64
	InFlight  bool
	UpdatedAt time.Time
}

// New returns an idle poller.
func New(cadence int, autoRefresh bool) Poller {
	return Poller{
		Status:      Idle,
		Cadence:     ClampCadence(cadence),
		AutoRefresh: autoRefresh,
	}
}

// HasData reports whether there is anything to display.
func (p Poller) HasData() bool {
	return !p.Snapshot().Empty()
}

// IsLoading reports whether a fetch is outstanding with nothing on screen yet.
func (p Poller) IsLoading() bool {
	return p.InFlight && !p.HasData()
}

// Snapshot returns the current tree.
func (p Poller) Snapshot() thread.Snapshot {
	return thread.Snapshot{Meta: p.Meta, Nodes: p.Nodes}
}

func (p Poller) timerActive() bool {
	return p.AutoRefresh && p.Identifier != ""
}

// Handle applies ev and returns the new state together with the side
// effects the driver must perform.
func (p Poller) Handle(ev Event) (Poller, Effects) {
	switch ev := ev.(type) {
	case SetIdentifier:
		return p.setIdentifier(ev.ID)
	case SetAutoRefresh:
		return p.setAutoRefresh(ev.Enabled)
	case SetCadence:
		return p.setCadence(ev.Seconds)
	case TimerFired:
		return p.timerFired(ev.TimerID)
	case RefreshRequested:
		return p.refresh()
	case FetchCompleted:
		return p.fetchCompleted(ev), Effects{}
	case DismissError:
		p.Err = ""
		return p, Effects{}
	case Teardown:
		p.Generation++
		p.InFlight = false
		p.Refreshing = false
		return p.stopTimer()
	}
	return p, Effects{}
}

func (p Poller) setIdentifier(id string) (Poller, Effects) {
	if id == p.Identifier {
		return p, Effects{}
	}

	p.Identifier = id
	p.Meta = nil
	p.Nodes = nil
	p.Err = ""
	p.Refreshing = false
	p.UpdatedAt = time.Time{}

	if id == "" {
		p.Status = Idle
		p.Generation++
		p.InFlight = false
		return p.stopTimer()
	}

	// A new identifier always fetches, even over an outstanding request; the
	// generation bump fences that request's result out.
	p.Status = Loading
	p, fx := p.issueFetch(false)
	if p.AutoRefresh {
		p, fx.Arm = p.armTimer()
	}
	return p, fx
}

func (p Poller) setAutoRefresh(enabled bool) (Poller, Effects) {
	if enabled == p.AutoRefresh {
		return p, Effects{}
	}
	p.AutoRefresh = enabled
	if !enabled {
		return p.stopTimer()
	}
	if p.Identifier == "" {
		return p, Effects{}
	}
	var fx Effects
	p, fx.Arm = p.armTimer()
	return p, fx
}

func (p Poller) setCadence(seconds int) (Poller, Effects) {
	seconds = ClampCadence(seconds)
	if seconds == p.Cadence {
		return p, Effects{}
	}
	p.Cadence = seconds
	if !p.timerActive() {
		return p, Effects{}
	}
	var fx Effects
	p, fx.Arm = p.armTimer()
	return p, fx
}

func (p Poller) timerFired(id uint64) (Poller, Effects) {
	if id != p.TimerID || !p.timerActive() {
		return p, Effects{}
	}
	var arm *TimerRequest
	p, arm = p.armTimer()
	p, fx := p.refresh()
	fx.Arm = arm
	return p, fx
}

// refresh re-fetches the current identifier without clearing what is on
// screen. A refresh while a fetch is outstanding is coalesced into it.
func (p Poller) refresh() (Poller, Effects) {
	if p.Identifier == "" || p.InFlight {
		return p, Effects{}
	}
	if p.HasData() {
		p.Refreshing = true
	} else {
		p.Status = Loading
	}
	return p.issueFetch(true)
}

func (p Poller) fetchCompleted(ev FetchCompleted) Poller {
	if ev.Generation != p.Generation || !p.InFlight {
		return p
	}
	p.InFlight = false
	p.Refreshing = false

	if ev.Err != nil {
		return p.fail(ev.Err.Error())
	}
	snap, err := thread.Normalize(ev.Body)
	if err != nil {
		return p.fail(err.Error())
	}

	p.Meta = snap.Meta
	p.Nodes = snap.Nodes
	p.Err = ""
	p.Status = Ready
	p.UpdatedAt = ev.At
	return p
}

// fail records msg and keeps whatever data was already displayed.
func (p Poller) fail(msg string) Poller {
	p.Err = msg
	p.Status = Failed
	return p
}

func (p Poller) issueFetch(refresh bool) (Poller, Effects) {
	p.Generation++
	p.InFlight = true
	return p, Effects{Fetch: &FetchRequest{
		Identifier: p.Identifier,
		Generation: p.Generation,
		Refresh:    refresh,
	}}
}

func (p Poller) armTimer() (Poller, *TimerRequest) {
	p.TimerID++
	return p, &TimerRequest{
		ID:    p.TimerID,
		After: time.Duration(p.Cadence) * time.Second,
	}
}

func (p Poller) stopTimer() (Poller, Effects) {
	p.TimerID++
	return p, Effects{StopTimer: true}
}
