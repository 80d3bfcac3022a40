// Package monitor drives the coordinator without a terminal UI, reporting
// comments as they appear in the watched threads.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fragmede/threadwatch/internal/config"
	"github.com/fragmede/threadwatch/internal/coordinator"
	"github.com/fragmede/threadwatch/internal/logging"
	"github.com/fragmede/threadwatch/internal/poller"
	"github.com/fragmede/threadwatch/internal/thread"
)

// Fetcher returns the raw payload for a thread identifier.
type Fetcher interface {
	FetchThread(ctx context.Context, id string) ([]byte, error)
}

// Monitor polls up to two threads in the background. All coordinator
// access happens on the event loop goroutine started by Run; fetches and
// timers post back to it.
type Monitor struct {
	coord    *coordinator.Coordinator
	fetcher  Fetcher
	handlers Handlers
	log      zerolog.Logger

	// ReportExisting reports the comments of the first successful load too.
	ReportExisting bool

	events chan func()
	stopCh chan struct{}
	wg     sync.WaitGroup

	timers  [2]*time.Timer
	known   [2]map[string]bool
	seeded  [2]bool
	lastErr [2]string
	updated [2]time.Time
}

// New creates a monitor that refreshes every cfg.RefreshInterval seconds.
// Auto-refresh is always on; there is nothing else to drive it.
func New(cfg config.Config, fetcher Fetcher, handlers Handlers) *Monitor {
	return &Monitor{
		coord:    coordinator.New(cfg.RefreshInterval, true),
		fetcher:  fetcher,
		handlers: handlers,
		log:      logging.Component("monitor"),
		events:   make(chan func(), 16),
		stopCh:   make(chan struct{}),
		known:    [2]map[string]bool{{}, {}},
	}
}

// Run loads left and right (either may be empty) and polls until ctx is
// cancelled or Stop is called.
func (m *Monitor) Run(ctx context.Context, left, right string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for side, id := range [2]string{left, right} {
		if id != "" {
			m.apply(ctx, m.coord.Load(coordinator.Side(side), id))
		}
	}

	defer func() {
		m.apply(ctx, m.coord.Shutdown())
		cancel()
		m.wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.stopCh:
			return nil
		case fn := <-m.events:
			fn()
		}
	}
}

// Stop halts the polling loop.
func (m *Monitor) Stop() {
	select {
	case <-m.stopCh:
	default:
		close(m.stopCh)
	}
}

// Refresh polls both threads now.
func (m *Monitor) Refresh(ctx context.Context) {
	m.post(ctx, func() {
		m.apply(ctx, m.coord.RefreshAll())
	})
}

// post queues fn for the event loop. It gives up once the loop is gone.
func (m *Monitor) post(ctx context.Context, fn func()) {
	select {
	case m.events <- fn:
	case <-ctx.Done():
	case <-m.stopCh:
	}
}

func (m *Monitor) apply(ctx context.Context, cmds []coordinator.Command) {
	for _, c := range cmds {
		side, fx := c.Side, c.Effects
		if fx.Fetch != nil {
			m.fetch(ctx, side, *fx.Fetch)
		}
		if fx.StopTimer || fx.Arm != nil {
			if t := m.timers[side]; t != nil {
				t.Stop()
				m.timers[side] = nil
			}
		}
		if fx.Arm != nil {
			id := fx.Arm.ID
			m.timers[side] = time.AfterFunc(fx.Arm.After, func() {
				m.post(ctx, func() {
					m.deliver(ctx, side, poller.TimerFired{TimerID: id})
				})
			})
		}
	}
}

func (m *Monitor) fetch(ctx context.Context, side coordinator.Side, req poller.FetchRequest) {
	m.log.Debug().
		Str("side", side.String()).
		Str("thread", req.Identifier).
		Uint64("generation", req.Generation).
		Msg("fetch")

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		body, err := m.fetcher.FetchThread(ctx, req.Identifier)
		at := time.Now()
		m.post(ctx, func() {
			m.deliver(ctx, side, poller.FetchCompleted{
				Generation: req.Generation,
				Body:       body,
				Err:        err,
				At:         at,
			})
		})
	}()
}

func (m *Monitor) deliver(ctx context.Context, side coordinator.Side, ev poller.Event) {
	m.apply(ctx, m.coord.Deliver(side, ev))
	if _, ok := ev.(poller.FetchCompleted); ok {
		m.report(side)
	}
}

// report emits errors and comments not seen in earlier polls of side.
func (m *Monitor) report(side coordinator.Side) {
	p := m.coord.Panel(side).Poller

	if p.Err != "" && p.Err != m.lastErr[side] {
		m.log.Warn().Str("side", side.String()).Str("thread", p.Identifier).Msg(p.Err)
		if m.handlers.OnError != nil {
			m.handlers.OnError(FetchError{Side: side, Thread: p.Identifier, Message: p.Err})
		}
	}
	m.lastErr[side] = p.Err

	if p.Status != poller.Ready || !p.UpdatedAt.After(m.updated[side]) {
		return
	}
	m.updated[side] = p.UpdatedAt

	report := m.seeded[side] || m.ReportExisting
	found := 0
	thread.Walk(p.Nodes, func(n thread.Node, depth int) {
		if m.known[side][n.ID] {
			return
		}
		m.known[side][n.ID] = true
		found++
		if report && m.handlers.OnComment != nil {
			m.handlers.OnComment(NewComment{Side: side, Thread: p.Identifier, Depth: depth, Node: n})
		}
	})
	m.seeded[side] = true

	m.log.Debug().
		Str("side", side.String()).
		Str("thread", p.Identifier).
		Int("new", found).
		Int("total", thread.CountAll(p.Nodes)).
		Msg("poll")
}
