package layout

import (
	"sync"
	"time"
)

// DefaultFrameInterval approximates a 60 fps host frame loop.
const DefaultFrameInterval = 16 * time.Millisecond

// Scheduler queues a function to run on a future host frame.
//
// Engines request one step at a time and re-request after each tick, so a
// scheduler only ever holds a handful of pending callbacks.
type Scheduler interface {
	// Request schedules fn to run once on a later frame. The returned
	// cancel drops the callback if it has not started yet; cancelling
	// after the fact is a no-op.
	Request(fn func()) (cancel func())
}

// SchedulerFunc adapts a plain function to the [Scheduler] interface.
type SchedulerFunc func(fn func()) (cancel func())

// Request calls s.
func (s SchedulerFunc) Request(fn func()) (cancel func()) { return s(fn) }

// =============================================================================
// IntervalScheduler
// =============================================================================

// IntervalScheduler runs callbacks after a fixed delay on their own
// goroutine, standing in for a host frame loop in headless programs.
type IntervalScheduler struct {
	Interval time.Duration
}

// NewIntervalScheduler returns a scheduler firing every interval.
// A non-positive interval falls back to [DefaultFrameInterval].
func NewIntervalScheduler(interval time.Duration) IntervalScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return IntervalScheduler{Interval: interval}
}

// Request schedules fn after the configured interval.
func (s IntervalScheduler) Request(fn func()) (cancel func()) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	t := time.AfterFunc(interval, fn)
	return func() { t.Stop() }
}

// =============================================================================
// ManualScheduler
// =============================================================================

// ManualScheduler collects callbacks until [ManualScheduler.Fire] runs
// them, handing frame control to tests and TUIs. The zero value is ready
// to use.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualEntry
}

type manualEntry struct {
	fn        func()
	cancelled bool
}

// Request queues fn for the next Fire.
func (s *ManualScheduler) Request(fn func()) (cancel func()) {
	e := &manualEntry{fn: fn}
	s.mu.Lock()
	s.pending = append(s.pending, e)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		e.cancelled = true
		s.mu.Unlock()
	}
}

// Fire runs every callback queued before the call and reports how many
// ran. Callbacks scheduled while firing land in the next frame.
func (s *ManualScheduler) Fire() int {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	ran := 0
	for _, e := range batch {
		s.mu.Lock()
		skip := e.cancelled
		s.mu.Unlock()
		if skip {
			continue
		}
		e.fn()
		ran++
	}
	return ran
}

// Pending reports how many callbacks wait for the next frame, cancelled
// ones included.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
