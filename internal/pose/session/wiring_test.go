package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romanvieito/gym-feedback-ai-9-4/internal/config"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/pose"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/storage/sqlite"
)

type fakeStore struct {
	mu       sync.Mutex
	created  []string
	ended    []string
	results  []sqlite.MatchResult
	feedback []string
}

func (f *fakeStore) CreateSession(sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, sessionID)
	return nil
}

func (f *fakeStore) EndSession(sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ended = append(f.ended, sessionID)
	return nil
}

func (f *fakeStore) RecordMatchResult(r sqlite.MatchResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
	return nil
}

func (f *fakeStore) RecordFeedback(sessionID string, frameIndex int64, feedback string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedback = append(f.feedback, feedback)
	return nil
}

func (f *fakeStore) resultCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.results)
}

func TestEngineEndToEnd(t *testing.T) {
	scoringSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FrameIndex int64 `json:"frameIndex"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":          "success",
			"processed_frame": req.FrameIndex,
			"feedback":        "Relax your shoulders",
		})
	}))
	defer scoringSrv.Close()

	tick := "5ms"
	cfg := config.EmptyTuningConfig()
	cfg.TickInterval = &tick
	cfg.ScoringURL = &scoringSrv.URL

	store := &fakeStore{}
	refSink, liveSink := &fakeSink{}, &fakeSink{}
	engine := NewEngine(cfg,
		Stream{Frames: &fakeSource{ready: true}, Estimator: fakeEstimator{}, Sink: refSink},
		Stream{Frames: &fakeSource{ready: true}, Estimator: fakeEstimator{}, Sink: liveSink},
		store,
	)
	defer engine.Close(store)

	require.Equal(t, []string{engine.Controller.ID}, store.created)
	assert.Equal(t, StateIdle, engine.Controller.State(pose.SourceLive))

	require.NoError(t, engine.Controller.Start(pose.SourceReference))
	require.NoError(t, engine.Controller.Start(pose.SourceLive))

	// Both loops tick on real timers; wait for a few comparison frames.
	require.Eventually(t, func() bool { return store.resultCount() >= 3 },
		5*time.Second, 5*time.Millisecond)

	store.mu.Lock()
	first := store.results[0]
	store.mu.Unlock()
	assert.Equal(t, engine.Controller.ID, first.SessionID)
	assert.Equal(t, float64(100), first.MatchPercent, "identical poses must match fully")
	assert.Equal(t, "#00ff00", first.Color)

	// Scoring responses feed the overlay board.
	require.Eventually(t, func() bool {
		text, ok := engine.Board.Current()
		return ok && text == "Relax your shoulders"
	}, 5*time.Second, 5*time.Millisecond)

	engine.Close(store)
	assert.Equal(t, StateStopped, engine.Controller.State(pose.SourceLive))
	assert.Equal(t, StateStopped, engine.Controller.State(pose.SourceReference))

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Contains(t, store.ended, engine.Controller.ID)
	assert.Contains(t, store.feedback, "Relax your shoulders")
}

func TestEngineWithoutStore(t *testing.T) {
	engine := NewEngine(nil,
		Stream{Frames: &fakeSource{ready: false}, Estimator: fakeEstimator{}, Sink: &fakeSink{}},
		Stream{Frames: &fakeSource{ready: false}, Estimator: fakeEstimator{}, Sink: &fakeSink{}},
		nil,
	)
	require.NoError(t, engine.Controller.Start(pose.SourceLive))
	assert.NotPanics(t, func() { engine.Close(nil) })
}
