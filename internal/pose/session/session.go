// Package session coordinates the lifecycle of the two detection
// loops (reference stream, live stream) so the comparison engine has
// valid inputs on both sides. Canvas ownership is enforced by the
// state machine, not by locking: only the active loop of a stream may
// draw.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/detect"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/draw"
)

// State is the lifecycle state of one stream.
type State string

const (
	StateIdle      State = "idle"      // no source yet, nothing running
	StateDetecting State = "detecting" // loop scheduled and drawing
	StatePaused    State = "paused"    // loop cancelled, snapshot retained
	StateStopped   State = "stopped"   // loop cancelled, snapshot discarded
)

// stream bundles one source's loop with its drawing surface.
type stream struct {
	source pose.Source
	runner *detect.Runner
	sink   draw.Sink
	state  State
}

// Controller is the imperative command interface over both streams.
type Controller struct {
	ID string

	mu       sync.Mutex
	streams  map[pose.Source]*stream
	exchange *pose.Exchange
}

// NewController creates a controller over the shared snapshot
// exchange. Runners are attached per source before use.
func NewController(exchange *pose.Exchange) *Controller {
	return &Controller{
		ID:       fmt.Sprintf("sess_%s", uuid.NewString()),
		streams:  make(map[pose.Source]*stream),
		exchange: exchange,
	}
}

// Attach registers a stream's runner and drawing surface. A stream
// starts in Idle.
func (c *Controller) Attach(source pose.Source, runner *detect.Runner, sink draw.Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.streams[source] = &stream{
		source: source,
		runner: runner,
		sink:   sink,
		state:  StateIdle,
	}
}

// State returns a stream's current lifecycle state.
func (c *Controller) State(source pose.Source) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.streams[source]; ok {
		return s.state
	}
	return StateIdle
}

// Start transitions Idle or Stopped to Detecting: the source became
// ready (video metadata loaded) or an explicit start was requested.
func (c *Controller) Start(source pose.Source) error {
	c.mu.Lock()
	s, ok := c.streams[source]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("session: no stream attached for source %q", source)
	}
	switch s.state {
	case StateDetecting:
		c.mu.Unlock()
		return nil // already running, not a second loop
	case StatePaused:
		c.mu.Unlock()
		return fmt.Errorf("session: stream %q is paused, use Resume", source)
	}
	s.state = StateDetecting
	c.mu.Unlock()

	// Resume from a clean draw surface.
	if s.sink != nil {
		s.sink.Clear()
	}
	s.runner.Start()
	return nil
}

// Pause transitions Detecting to Paused. The loop is cancelled but the
// last snapshot and drawn frame are retained, not cleared.
func (c *Controller) Pause(source pose.Source) error {
	c.mu.Lock()
	s, ok := c.streams[source]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("session: no stream attached for source %q", source)
	}
	if s.state != StateDetecting {
		c.mu.Unlock()
		return fmt.Errorf("session: cannot pause stream %q in state %q", source, s.state)
	}
	s.state = StatePaused
	c.mu.Unlock()

	s.runner.Stop()
	return nil
}

// Resume transitions Paused to Detecting. The frame counter is not
// reset: playback continues from where it paused.
func (c *Controller) Resume(source pose.Source) error {
	c.mu.Lock()
	s, ok := c.streams[source]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("session: no stream attached for source %q", source)
	}
	if s.state != StatePaused {
		c.mu.Unlock()
		return fmt.Errorf("session: cannot resume stream %q in state %q", source, s.state)
	}
	s.state = StateDetecting
	c.mu.Unlock()

	s.runner.Start()
	return nil
}

// Stop transitions any state to Stopped: explicit stop, seek-to-start
// or a new upload. The canvas is cleared, the loop cancelled, the
// frame counter reset, and the stream's latest snapshot discarded so
// the comparison engine no longer matches against stale data.
// Idempotent: stopping a stopped stream does not double-cancel.
func (c *Controller) Stop(source pose.Source) error {
	c.mu.Lock()
	s, ok := c.streams[source]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("session: no stream attached for source %q", source)
	}
	s.state = StateStopped
	c.mu.Unlock()

	s.runner.Stop()
	s.runner.ResetFrames()
	if s.sink != nil {
		s.sink.Clear()
	}
	if c.exchange != nil {
		c.exchange.Discard(source)
	}
	return nil
}

// Reset performs the Stop cleanup and returns the stream to Idle,
// awaiting a new source (new upload path).
func (c *Controller) Reset(source pose.Source) error {
	if err := c.Stop(source); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.streams[source].state = StateIdle
	return nil
}

// ReferenceEnded handles end-of-media on the reference stream: the
// comparison has no further reference to match against, so both
// streams stop.
func (c *Controller) ReferenceEnded() {
	// Stop errors only occur for unattached streams; nothing to do then.
	_ = c.Stop(pose.SourceReference)
	_ = c.Stop(pose.SourceLive)
}
