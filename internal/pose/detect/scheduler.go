package detect

import (
	"sync"
	"time"
)

// Scheduler requests one callback per display tick. Implementations
// must guarantee that Cancel prevents a pending callback from running:
// a cancelled loop never runs a stray final iteration.
type Scheduler interface {
	// Schedule arranges for fn to run on the next tick, replacing any
	// previously scheduled callback.
	Schedule(fn func())
	// Cancel drops the pending callback, if any. Idempotent.
	Cancel()
}

// TickScheduler is the production scheduler: it fires callbacks on a
// fixed interval approximating the display refresh rate.
type TickScheduler struct {
	interval time.Duration

	mu      sync.Mutex
	pending *time.Timer
	seq     uint64 // invalidates callbacks scheduled before a Cancel
}

// DefaultTickInterval approximates a 30 fps display refresh.
const DefaultTickInterval = 33 * time.Millisecond

// NewTickScheduler creates a scheduler firing at the given interval.
// Zero or negative intervals use DefaultTickInterval.
func NewTickScheduler(interval time.Duration) *TickScheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickScheduler{interval: interval}
}

// Schedule arms a one-shot timer for the next tick.
func (s *TickScheduler) Schedule(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Stop()
	}
	seq := s.seq
	s.pending = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		stale := seq != s.seq
		s.mu.Unlock()
		if stale {
			return
		}
		fn()
	})
}

// Cancel stops the pending timer and invalidates any callback that
// already fired its timer but has not yet run.
func (s *TickScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
	s.seq++
}
