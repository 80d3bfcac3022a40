package messages

import (
	"time"

	"github.com/fragmede/threadwatch/internal/coordinator"
)

// Poller driver messages.
type (
	// FetchResultMsg carries the outcome of a fetch issued for Generation.
	FetchResultMsg struct {
		Side       coordinator.Side
		Generation uint64
		Body       []byte
		Err        error
		At         time.Time
	}

	// TimerMsg is delivered when a refresh timer elapses.
	TimerMsg struct {
		Side    coordinator.Side
		TimerID uint64
	}

	// ClockMsg re-renders relative timestamps.
	ClockMsg struct {
		At time.Time
	}
)

// UI messages.
type (
	// StatusMsg sets the status bar text.
	StatusMsg struct {
		Text    string
		IsError bool
	}
)
