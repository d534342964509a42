package detect

// Test doubles shared by detect and session tests. A ManualScheduler
// replaces real timers so loop iterations run deterministically under
// test control.

// ManualScheduler queues the pending callback and only runs it when
// Tick is called.
type ManualScheduler struct {
	pending   func()
	Scheduled int // total Schedule calls
	Cancelled int // total Cancel calls
}

// Schedule stores fn as the pending callback.
func (s *ManualScheduler) Schedule(fn func()) {
	s.pending = fn
	s.Scheduled++
}

// Cancel drops the pending callback.
func (s *ManualScheduler) Cancel() {
	s.pending = nil
	s.Cancelled++
}

// Tick runs the pending callback once, if any. Returns whether a
// callback ran.
func (s *ManualScheduler) Tick() bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn()
	return true
}

// Pending reports whether a callback is waiting for the next tick.
func (s *ManualScheduler) Pending() bool { return s.pending != nil }
