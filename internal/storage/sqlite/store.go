// Package sqlite persists per-session comparison results and feedback
// so past sessions can be reviewed and charted.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps the session database.
type Store struct {
	*sql.DB
}

// New opens (creating if needed) the session database at path and
// ensures the schema exists.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			session_id        TEXT PRIMARY KEY,
			started_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			ended_at          TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS match_results (
			session_id        TEXT,
			frame_index       BIGINT,
			match_percent     DOUBLE,
			anomalous_count   BIGINT,
			color             TEXT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(session_id) REFERENCES sessions(session_id)
		);
		CREATE TABLE IF NOT EXISTS feedback_log (
			session_id        TEXT,
			frame_index       BIGINT,
			feedback          TEXT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(session_id) REFERENCES sessions(session_id)
		);
		CREATE INDEX IF NOT EXISTS idx_match_results_session
			ON match_results(session_id, frame_index);
	`)
	if err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db}, nil
}

// Session is one recorded comparison session.
type Session struct {
	SessionID string     `json:"session_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// MatchResult is one persisted comparison frame.
type MatchResult struct {
	SessionID      string  `json:"session_id"`
	FrameIndex     int64   `json:"frame_index"`
	MatchPercent   float64 `json:"match_percent"`
	AnomalousCount int     `json:"anomalous_count"`
	Color          string  `json:"color"`
}

// CreateSession records the start of a session.
func (s *Store) CreateSession(sessionID string) error {
	_, err := s.Exec("INSERT INTO sessions (session_id) VALUES (?)", sessionID)
	if err != nil {
		return fmt.Errorf("create session %s: %w", sessionID, err)
	}
	return nil
}

// EndSession stamps a session's end time.
func (s *Store) EndSession(sessionID string) error {
	_, err := s.Exec("UPDATE sessions SET ended_at = CURRENT_TIMESTAMP WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("end session %s: %w", sessionID, err)
	}
	return nil
}

// RecordMatchResult persists one comparison frame.
func (s *Store) RecordMatchResult(r MatchResult) error {
	_, err := s.Exec(
		"INSERT INTO match_results (session_id, frame_index, match_percent, anomalous_count, color) VALUES (?, ?, ?, ?, ?)",
		r.SessionID, r.FrameIndex, r.MatchPercent, r.AnomalousCount, r.Color,
	)
	if err != nil {
		return fmt.Errorf("record match result: %w", err)
	}
	return nil
}

// RecordFeedback persists one delivered feedback string.
func (s *Store) RecordFeedback(sessionID string, frameIndex int64, feedback string) error {
	_, err := s.Exec(
		"INSERT INTO feedback_log (session_id, frame_index, feedback) VALUES (?, ?, ?)",
		sessionID, frameIndex, feedback,
	)
	if err != nil {
		return fmt.Errorf("record feedback: %w", err)
	}
	return nil
}

// Sessions returns all recorded sessions, newest first.
func (s *Store) Sessions() ([]Session, error) {
	rows, err := s.Query("SELECT session_id, started_at, ended_at FROM sessions ORDER BY started_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var ended sql.NullTime
		if err := rows.Scan(&sess.SessionID, &sess.StartedAt, &ended); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if ended.Valid {
			t := ended.Time
			sess.EndedAt = &t
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// SessionResults returns a session's match results ordered by frame.
func (s *Store) SessionResults(sessionID string) ([]MatchResult, error) {
	rows, err := s.Query(
		"SELECT session_id, frame_index, match_percent, anomalous_count, color FROM match_results WHERE session_id = ? ORDER BY frame_index",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query results for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var out []MatchResult
	for rows.Next() {
		var r MatchResult
		if err := rows.Scan(&r.SessionID, &r.FrameIndex, &r.MatchPercent, &r.AnomalousCount, &r.Color); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
