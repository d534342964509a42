package session

import (
	"sync/atomic"

	"github.com/romanvieito/gym-feedback-ai-9-4/internal/config"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/monitoring"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/compare"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/detect"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/draw"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/overlay"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/scoring"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/storage/sqlite"
)

// ResultStore persists comparison frames and delivered feedback.
// *sqlite.Store satisfies it; tests use in-memory fakes.
type ResultStore interface {
	CreateSession(sessionID string) error
	EndSession(sessionID string) error
	RecordMatchResult(r sqlite.MatchResult) error
	RecordFeedback(sessionID string, frameIndex int64, feedback string) error
}

// Stream is the per-source capture side supplied by the embedding
// application: where frames come from, how landmarks are estimated,
// and where the skeleton is drawn.
type Stream struct {
	Frames    detect.FrameSource
	Estimator detect.Estimator
	Sink      draw.Sink
}

// Engine bundles a fully wired dual-stream comparison pipeline: two
// detection loops over a shared snapshot exchange, the lifecycle
// controller, the feedback board, and optional persistence.
type Engine struct {
	Controller *Controller
	Board      *overlay.Board
	Exchange   *pose.Exchange
}

// NewEngine wires the pipeline from the tuning config. Only the live
// stream dispatches scoring calls and records results; the reference
// loop publishes snapshots for the live loop to compare against. A nil
// store disables persistence.
func NewEngine(cfg *config.TuningConfig, reference, live Stream, store ResultStore) *Engine {
	if cfg == nil {
		cfg = config.EmptyTuningConfig()
	}

	exchange := pose.NewExchange()
	controller := NewController(exchange)
	board := overlay.NewBoard(cfg.GetFeedbackDuration(), nil)
	comparator := &compare.Comparator{Threshold: cfg.GetAnomalyThreshold()}

	if store != nil {
		if err := store.CreateSession(controller.ID); err != nil {
			monitoring.Logf("[session] create session %s: %v", controller.ID, err)
			store = nil
		}
	}

	// Scoring responses arrive on the client's goroutine, not the tick.
	var lastLiveFrame atomic.Int64
	scorer := scoring.NewClient(cfg.GetScoringURL(), nil)
	scorer.OnFeedback = func(feedback string) {
		board.Show(feedback)
		if store != nil && feedback != "" && feedback != overlay.NoFeedbackSentinel {
			if err := store.RecordFeedback(controller.ID, lastLiveFrame.Load(), feedback); err != nil {
				monitoring.Logf("[session] record feedback: %v", err)
			}
		}
	}

	newRunner := func(source pose.Source, s Stream) *detect.Runner {
		rc := detect.RunnerConfig{
			Source:           source,
			Frames:           s.Frames,
			Estimator:        s.Estimator,
			Scheduler:        detect.NewTickScheduler(cfg.GetTickInterval()),
			Exchange:         exchange,
			Sink:             s.Sink,
			Comparator:       comparator,
			MaxSurfaceWidth:  cfg.GetMaxSurfaceWidth(),
			MaxSurfaceHeight: cfg.GetMaxSurfaceHeight(),
		}
		if source == pose.SourceLive {
			rc.Scorer = scorer
			rc.OnResult = func(frameIndex int64, res compare.Result) {
				lastLiveFrame.Store(frameIndex)
				if store == nil {
					return
				}
				err := store.RecordMatchResult(sqlite.MatchResult{
					SessionID:      controller.ID,
					FrameIndex:     frameIndex,
					MatchPercent:   res.MatchPercentage,
					AnomalousCount: len(res.AnomalousJoints),
					Color:          res.Color.Hex(),
				})
				if err != nil {
					monitoring.Logf("[session] record match result: %v", err)
				}
			}
		}
		runner := detect.NewRunner(rc)
		controller.Attach(source, runner, s.Sink)
		return runner
	}
	newRunner(pose.SourceReference, reference)
	newRunner(pose.SourceLive, live)

	return &Engine{
		Controller: controller,
		Board:      board,
		Exchange:   exchange,
	}
}

// Close stops both streams, clears the feedback board, and stamps the
// session's end time in the store.
func (e *Engine) Close(store ResultStore) {
	_ = e.Controller.Stop(pose.SourceLive)
	_ = e.Controller.Stop(pose.SourceReference)
	e.Board.Clear()
	if store != nil {
		if err := store.EndSession(e.Controller.ID); err != nil {
			monitoring.Logf("[session] end session %s: %v", e.Controller.ID, err)
		}
	}
}
