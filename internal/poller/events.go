package poller

import "time"

// Event is an input to Poller.Handle.
type Event interface {
	event()
}

// SetIdentifier loads a thread, or returns to idle when ID is empty.
type SetIdentifier struct{ ID string }

// SetAutoRefresh turns the refresh timer on or off.
type SetAutoRefresh struct{ Enabled bool }

// SetCadence changes the refresh interval; out-of-range values are clamped.
type SetCadence struct{ Seconds int }

// TimerFired is delivered when the timer armed with TimerID elapses.
type TimerFired struct{ TimerID uint64 }

// RefreshRequested is a manual, out-of-band refresh.
type RefreshRequested struct{}

// FetchCompleted carries the outcome of the fetch issued for Generation.
type FetchCompleted struct {
	Generation uint64
	Body       []byte
	Err        error
	At         time.Time
}

// DismissError clears the displayed error message.
type DismissError struct{}

// Teardown stops the timer and fences any outstanding fetch.
type Teardown struct{}

func (SetIdentifier) event()    {}
func (SetAutoRefresh) event()   {}
func (SetCadence) event()       {}
func (TimerFired) event()       {}
func (RefreshRequested) event() {}
func (FetchCompleted) event()   {}
func (DismissError) event()     {}
func (Teardown) event()         {}

// FetchRequest asks the driver to GET Identifier and report back with
// Generation.
type FetchRequest struct {
	Identifier string
	Generation uint64
	Refresh    bool
}

// TimerRequest asks the driver to deliver TimerFired{ID} after After. It
// replaces any timer previously armed for the same poller.
type TimerRequest struct {
	ID    uint64
	After time.Duration
}

// Effects are the side effects produced by one transition.
type Effects struct {
	Fetch *FetchRequest
	Arm   *TimerRequest
	// StopTimer cancels the armed timer. It is never set together with Arm.
	StopTimer bool
}

// Empty reports whether there is nothing to do.
func (fx Effects) Empty() bool {
	return fx.Fetch == nil && fx.Arm == nil && !fx.StopTimer
}
