package detect

import "github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"

// Frame is an opaque decoded video frame. The engine never inspects
// frames; it hands them straight to the estimator.
type Frame interface{}

// FrameSource supplies decodable frames to a detection loop. Readiness
// means the source has produced at least one decodable frame.
type FrameSource interface {
	Ready() bool
	CurrentFrame() Frame
	// Dimensions returns the native frame size in pixels. Zero or
	// negative dimensions mark the source as not yet sized; iterations
	// are skipped until dimensions become valid.
	Dimensions() (width, height float64)
}

// Detection is one estimator result. In single-subject mode the slices
// carry zero or one entries, ordered by detection confidence.
type Detection struct {
	LandmarkSets      []pose.LandmarkSet
	WorldLandmarkSets []pose.LandmarkSet
}

// Estimator runs pose detection on a frame at a monotonic timestamp.
// Implementations are asynchronous internally but return synchronously
// relative to the caller's request.
type Estimator interface {
	Detect(frame Frame, timestampMS int64) (Detection, error)
}

// ScoreDispatcher issues the per-frame fire-and-forget scoring call.
// Dispatch must never block the render loop.
type ScoreDispatcher interface {
	Dispatch(frameIndex int64, landmarks, world pose.LandmarkSet)
}
