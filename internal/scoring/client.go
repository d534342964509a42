// Package scoring implements the per-frame, fire-and-forget call to
// the remote scoring/feedback service. Dispatch never blocks the
// render loop: a slow network call delays feedback, never frames.
package scoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/romanvieito/gym-feedback-ai-9-4/internal/monitoring"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"
)

// wireLandmark is one landmark on the wire. Coordinates are
// rounded to 3 decimal places to reduce payload size.
type wireLandmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Request is the scoring call payload. Field names follow the service
// contract.
type Request struct {
	FrameIndex         int64          `json:"frameIndex"`
	Landmarks          []wireLandmark `json:"landmarks"`
	RealWorldLandmarks []wireLandmark `json:"realworldlandmarks"`
}

// Response is the scoring call result. Feedback may be empty or the
// "No feedback yet" sentinel, both meaning no display action.
type Response struct {
	Status         string `json:"status"`
	ProcessedFrame int64  `json:"processed_frame"`
	Feedback       string `json:"feedback"`
}

// DefaultTimeout bounds one scoring call. The render loop never waits
// on it; the timeout only caps goroutine lifetime.
const DefaultTimeout = 5 * time.Second

// Client issues scoring calls against a remote service.
type Client struct {
	baseURL string
	http    *http.Client

	// OnFeedback receives every non-error response's feedback string,
	// whenever the call resolves. Sentinel filtering is the feedback
	// board's job, not the client's.
	OnFeedback func(feedback string)
}

// NewClient creates a scoring client for the service base URL
// (e.g. "http://localhost:8080"). A nil httpClient uses a default
// with DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Dispatch issues the scoring call for one frame without blocking the
// caller. Network and HTTP errors are logged and dropped: feedback
// simply does not update for that frame.
func (c *Client) Dispatch(frameIndex int64, landmarks, world pose.LandmarkSet) {
	go func() {
		if err := c.send(frameIndex, landmarks, world); err != nil {
			monitoring.Logf("[scoring] frame %d: %v", frameIndex, err)
		}
	}()
}

func (c *Client) send(frameIndex int64, landmarks, world pose.LandmarkSet) error {
	req := Request{
		FrameIndex:         frameIndex,
		Landmarks:          toWire(landmarks),
		RealWorldLandmarks: toWire(world),
	}
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.http.Post(c.baseURL+"/api/process_landmarks", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if c.OnFeedback != nil {
		c.OnFeedback(parsed.Feedback)
	}
	return nil
}

func toWire(set pose.LandmarkSet) []wireLandmark {
	out := make([]wireLandmark, len(set))
	for i, lm := range set {
		out[i] = wireLandmark{
			X:          round3(lm.X),
			Y:          round3(lm.Y),
			Z:          round3(lm.Z),
			Visibility: lm.Visibility,
		}
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
