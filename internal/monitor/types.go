package monitor

import (
	"github.com/fragmede/threadwatch/internal/coordinator"
	"github.com/fragmede/threadwatch/internal/thread"
)

// NewComment is reported when a comment id is seen for the first time.
type NewComment struct {
	Side   coordinator.Side
	Thread string
	Depth  int
	Node   thread.Node
}

// FetchError is reported when a poll fails. The previous tree is kept.
type FetchError struct {
	Side    coordinator.Side
	Thread  string
	Message string
}

// Handlers receive monitor output. They run on the monitor's event loop and
// must not block. Nil handlers are skipped.
type Handlers struct {
	OnComment func(NewComment)
	OnError   func(FetchError)
}
