package api

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"sync"

	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose/overlay"
)

// feedbackPool is the coaching-phrase pool the scoring endpoint draws
// from when a feedback frame comes due.
var feedbackPool = []string{
	"Great posture!",
	"Keep your back straight",
	"Lift your chin slightly",
	"Relax your shoulders",
	"Bend your knees more",
	"Excellent form!",
	"Watch your elbow alignment",
	"Maintain balance",
	"Good job on keeping your core tight",
	"Remember to breathe",
}

// landmarkPayload is one landmark in the scoring request.
type landmarkPayload struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// scoringRequest is the process_landmarks request body.
type scoringRequest struct {
	FrameIndex         int64             `json:"frameIndex"`
	Landmarks          []landmarkPayload `json:"landmarks"`
	RealWorldLandmarks []landmarkPayload `json:"realworldlandmarks"`
}

// scoringResponse is the process_landmarks response body.
type scoringResponse struct {
	Status         string `json:"status"`
	ProcessedFrame int64  `json:"processed_frame"`
	Feedback       string `json:"feedback"`
}

// ScoringHandler implements the scoring-service side of the feedback
// contract: it validates the landmark payload, indexes it by landmark
// name, and returns a coaching phrase every feedbackInterval frames
// (the sentinel otherwise).
type ScoringHandler struct {
	feedbackInterval int

	mu  sync.Mutex
	rng *rand.Rand

	// OnLandmarks, when non-nil, receives every valid payload keyed by
	// landmark name (coordinates rounded to 3 decimals).
	OnLandmarks func(frameIndex int64, named map[string]landmarkPayload)
}

// NewScoringHandler creates a handler generating feedback every
// feedbackInterval frames. A non-zero seed makes feedback selection
// deterministic for tests.
func NewScoringHandler(feedbackInterval int, seed int64) *ScoringHandler {
	if feedbackInterval < 1 {
		feedbackInterval = 100
	}
	src := rand.NewSource(seed)
	if seed == 0 {
		src = rand.NewSource(rand.Int63())
	}
	return &ScoringHandler{
		feedbackInterval: feedbackInterval,
		rng:              rand.New(src),
	}
}

// Handle serves POST /api/process_landmarks.
func (h *ScoringHandler) Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]string{"error": "Method not allowed"})
		return
	}

	var req scoringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": fmt.Sprintf("invalid payload: %v", err)})
		return
	}
	if len(req.Landmarks) != pose.NumLandmarks {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{
			"error": fmt.Sprintf("expected %d landmarks, got %d", pose.NumLandmarks, len(req.Landmarks)),
		})
		return
	}

	if h.OnLandmarks != nil {
		named := make(map[string]landmarkPayload, pose.NumLandmarks)
		for i, lm := range req.Landmarks {
			named[pose.LandmarkName(i)] = landmarkPayload{
				X:          round3(lm.X),
				Y:          round3(lm.Y),
				Z:          round3(lm.Z),
				Visibility: lm.Visibility,
			}
		}
		h.OnLandmarks(req.FrameIndex, named)
	}

	feedback := overlay.NoFeedbackSentinel
	if req.FrameIndex%int64(h.feedbackInterval) == 0 {
		h.mu.Lock()
		feedback = feedbackPool[h.rng.Intn(len(feedbackPool))]
		h.mu.Unlock()
	}

	json.NewEncoder(w).Encode(scoringResponse{
		Status:         "success",
		ProcessedFrame: req.FrameIndex,
		Feedback:       feedback,
	})
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
