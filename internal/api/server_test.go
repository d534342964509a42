package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romanvieito/gym-feedback-ai-9-4/internal/config"
	"github.com/romanvieito/gym-feedback-ai-9-4/internal/storage/sqlite"
)

func newTestServer(t *testing.T) (*Server, *sqlite.Store) {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewServer(store, config.EmptyTuningConfig(), NewScoringHandler(100, 1)), store
}

func TestListSessions(t *testing.T) {
	server, store := newTestServer(t)
	require.NoError(t, store.CreateSession("sess_list"))

	rec := httptest.NewRecorder()
	server.ServeMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sessions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var sessions []sqlite.Session
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sessions))
	require.Len(t, sessions, 1)
	assert.Equal(t, "sess_list", sessions[0].SessionID)
}

func TestSessionResultsEndpoint(t *testing.T) {
	server, store := newTestServer(t)
	require.NoError(t, store.CreateSession("sess_r"))
	require.NoError(t, store.RecordMatchResult(sqlite.MatchResult{
		SessionID: "sess_r", FrameIndex: 3, MatchPercent: 87.87, AnomalousCount: 2, Color: "#41ff00",
	}))

	t.Run("returns recorded results", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.ServeMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session_results?session_id=sess_r", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var results []sqlite.MatchResult
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&results))
		require.Len(t, results, 1)
		assert.Equal(t, int64(3), results[0].FrameIndex)
		assert.Equal(t, 87.87, results[0].MatchPercent)
	})

	t.Run("missing session_id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.ServeMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/session_results", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "session_id")
	})

	t.Run("method not allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.ServeMux().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/session_results?session_id=sess_r", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestReportEndpoint(t *testing.T) {
	server, store := newTestServer(t)
	require.NoError(t, store.CreateSession("sess_chart"))
	for i := int64(0); i < 5; i++ {
		require.NoError(t, store.RecordMatchResult(sqlite.MatchResult{
			SessionID: "sess_chart", FrameIndex: i, MatchPercent: float64(60 + i*5),
		}))
	}

	t.Run("renders chart", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.ServeMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report?session_id=sess_chart", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), "sess_chart")
	})

	t.Run("no results", func(t *testing.T) {
		rec := httptest.NewRecorder()
		server.ServeMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/report?session_id=sess_empty", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestConfigEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	server.ServeMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var cfg map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cfg))
	assert.Equal(t, 0.1, cfg["anomaly_threshold"])
	assert.Equal(t, "33ms", cfg["tick_interval"])
	assert.Equal(t, "7s", cfg["feedback_duration"])
	assert.Equal(t, float64(100), cfg["feedback_interval"])
}

func TestStatusCodeColor(t *testing.T) {
	t.Parallel()

	assert.Contains(t, statusCodeColor(200), "200")
	assert.Contains(t, statusCodeColor(200), colorBoldGreen)
	assert.Contains(t, statusCodeColor(302), colorYellow)
	assert.Contains(t, statusCodeColor(500), colorBoldRed)
}
