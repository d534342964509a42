package detect

import (
	"sync"
	"time"

	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/compare"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/draw"
)

// RunnerConfig holds the collaborators for one detection loop.
type RunnerConfig struct {
	Source    pose.Source
	Frames    FrameSource
	Estimator Estimator
	Scheduler Scheduler
	Exchange  *pose.Exchange
	Sink      draw.Sink        // optional: drawing surface
	Scorer    ScoreDispatcher  // optional: fire-and-forget scoring calls
	Clock     func() time.Time // nil means time.Now

	// Comparator scores this stream against the counterpart stream's
	// latest snapshot. Nil disables comparison (single-stream mode).
	Comparator *compare.Comparator

	// OnResult, when non-nil, receives every comparison result paired
	// with the frame index that produced it.
	OnResult func(frameIndex int64, res compare.Result)

	// MaxSurfaceWidth/Height bound the drawing surface; native frame
	// dimensions are scaled down into this box preserving aspect ratio.
	MaxSurfaceWidth  float64
	MaxSurfaceHeight float64
}

// Default drawing surface bounds.
const (
	DefaultMaxSurfaceWidth  = 1280
	DefaultMaxSurfaceHeight = 720
)

// Runner is one continuously-scheduled detection loop. Each tick pulls
// the current frame, invokes the estimator, stores the resulting
// snapshot, compares against the counterpart stream, and emits draw
// and scoring side effects. The loop is externally stoppable and
// restartable: Start while running is a no-op, not a second loop, and
// Stop cancels the pending tick so no stray iteration runs.
type Runner struct {
	cfg RunnerConfig

	mu         sync.Mutex
	running    bool
	startedAt  time.Time
	frameIndex int64
	lastResult *compare.Result
}

// NewRunner creates a detection loop from the configuration.
func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.MaxSurfaceWidth <= 0 {
		cfg.MaxSurfaceWidth = DefaultMaxSurfaceWidth
	}
	if cfg.MaxSurfaceHeight <= 0 {
		cfg.MaxSurfaceHeight = DefaultMaxSurfaceHeight
	}
	return &Runner{cfg: cfg}
}

// Start begins the loop. Calling Start on a running loop is a no-op.
func (r *Runner) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		diagf("[%s] Start ignored: loop already running", r.cfg.Source)
		return
	}
	r.running = true
	r.startedAt = r.cfg.Clock()
	r.mu.Unlock()

	diagf("[%s] Detection loop started", r.cfg.Source)
	r.cfg.Scheduler.Schedule(r.iterate)
}

// Stop cancels the pending tick and halts the loop. Idempotent:
// stopping a stopped loop does nothing.
func (r *Runner) Stop() {
	r.mu.Lock()
	wasRunning := r.running
	r.running = false
	r.mu.Unlock()

	r.cfg.Scheduler.Cancel()
	if wasRunning {
		diagf("[%s] Detection loop stopped at frame %d", r.cfg.Source, r.FrameIndex())
	}
}

// Running reports whether the loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// FrameIndex returns the number of frames processed since the last
// reset. Pause/resume does not reset the counter; stop-and-seek does.
func (r *Runner) FrameIndex() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameIndex
}

// ResetFrames zeroes the frame counter (stop / seek-to-start path).
func (r *Runner) ResetFrames() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frameIndex = 0
	r.lastResult = nil
}

// LastResult returns the most recent comparison result, or nil before
// both streams have produced a snapshot.
func (r *Runner) LastResult() *compare.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastResult
}

// iterate is one loop tick. Every exit path other than Stop must
// reschedule: transient detection loss and invalid dimensions are not
// fatal to the loop.
func (r *Runner) iterate() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	started := r.startedAt
	frameIndex := r.frameIndex
	r.mu.Unlock()

	// Preconditions: a ready frame source with valid dimensions.
	if r.cfg.Frames == nil || r.cfg.Estimator == nil || !r.cfg.Frames.Ready() {
		r.reschedule()
		return
	}
	nativeW, nativeH := r.cfg.Frames.Dimensions()
	if nativeW <= 0 || nativeH <= 0 {
		tracef("[%s] Skipping frame %d: invalid dimensions %gx%g", r.cfg.Source, frameIndex, nativeW, nativeH)
		r.reschedule()
		return
	}

	frame := r.cfg.Frames.CurrentFrame()
	timestampMS := r.cfg.Clock().Sub(started).Milliseconds()

	det, err := r.cfg.Estimator.Detect(frame, timestampMS)
	if err != nil {
		opsf("[%s] Estimator failed on frame %d: %v", r.cfg.Source, frameIndex, err)
		r.reschedule()
		return
	}
	if len(det.LandmarkSets) == 0 {
		// Transient detection miss: skip draw/score, keep looping.
		tracef("[%s] No subject detected on frame %d", r.cfg.Source, frameIndex)
		r.reschedule()
		return
	}

	// Single-subject mode: sets are confidence-ordered, take the first.
	landmarks := det.LandmarkSets[0]
	var world pose.LandmarkSet
	if len(det.WorldLandmarkSets) > 0 {
		world = det.WorldLandmarkSets[0]
	}

	snapshot := pose.NewSnapshot(r.cfg.Source, frameIndex, landmarks, world, r.cfg.Clock())
	if r.cfg.Exchange != nil {
		r.cfg.Exchange.Publish(snapshot)
	}

	// Compare against the counterpart's most recent snapshot, if any.
	color := compare.ColorFor(100)
	if r.cfg.Comparator != nil && r.cfg.Exchange != nil {
		if other := r.cfg.Exchange.Latest(r.cfg.Source.Other()); other != nil {
			live, reference := snapshot, other
			if r.cfg.Source == pose.SourceReference {
				live, reference = other, snapshot
			}
			res := r.cfg.Comparator.Compare(live, reference)
			color = res.Color

			r.mu.Lock()
			r.lastResult = &res
			r.mu.Unlock()

			tracef("[%s] Frame %d match %.1f%%, %d anomalous joints",
				r.cfg.Source, frameIndex, res.MatchPercentage, len(res.AnomalousJoints))
			if r.cfg.OnResult != nil {
				r.cfg.OnResult(frameIndex, res)
			}
		}
	}

	if r.cfg.Sink != nil {
		w, h := draw.FitWithin(nativeW, nativeH, r.cfg.MaxSurfaceWidth, r.cfg.MaxSurfaceHeight)
		list := draw.Skeleton(&landmarks, w, h, color)
		if res := r.LastResult(); res != nil {
			list.Highlight = res.AnomalousJoints
		}
		r.cfg.Sink.Render(list)
	}

	// Fire-and-forget scoring call; must not delay the next tick.
	if r.cfg.Scorer != nil {
		r.cfg.Scorer.Dispatch(frameIndex, landmarks, world)
	}

	r.mu.Lock()
	r.frameIndex++
	r.mu.Unlock()

	r.reschedule()
}

func (r *Runner) reschedule() {
	r.mu.Lock()
	running := r.running
	r.mu.Unlock()
	if running {
		r.cfg.Scheduler.Schedule(r.iterate)
	}
}
