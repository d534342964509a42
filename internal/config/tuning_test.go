package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestEmptyConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := EmptyTuningConfig()
	assert.Equal(t, 0.1, cfg.GetAnomalyThreshold())
	assert.Equal(t, 33*time.Millisecond, cfg.GetTickInterval())
	assert.Equal(t, 7*time.Second, cfg.GetFeedbackDuration())
	assert.Equal(t, 100, cfg.GetFeedbackInterval())
	assert.Equal(t, float64(1280), cfg.GetMaxSurfaceWidth())
	assert.Equal(t, float64(720), cfg.GetMaxSurfaceHeight())
	assert.Equal(t, "http://localhost:8080", cfg.GetScoringURL())
}

func TestLoadTuningConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "tuning.json", `{
		"anomaly_threshold": 0.15,
		"tick_interval": "50ms",
		"feedback_duration": "10s",
		"feedback_interval": 60,
		"scoring_url": "http://scorer:9000"
	}`)

	cfg, err := LoadTuningConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.15, cfg.GetAnomalyThreshold())
	assert.Equal(t, 50*time.Millisecond, cfg.GetTickInterval())
	assert.Equal(t, 10*time.Second, cfg.GetFeedbackDuration())
	assert.Equal(t, 60, cfg.GetFeedbackInterval())
	assert.Equal(t, "http://scorer:9000", cfg.GetScoringURL())

	// Fields the file omits keep their defaults.
	assert.Equal(t, float64(1280), cfg.GetMaxSurfaceWidth())
	assert.Equal(t, float64(720), cfg.GetMaxSurfaceHeight())
}

func TestLoadTuningConfigErrors(t *testing.T) {
	t.Parallel()

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "tuning.yaml", `{}`)
		_, err := LoadTuningConfig(path)
		assert.ErrorContains(t, err, ".json extension")
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadTuningConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorContains(t, err, "read config file")
	})

	t.Run("malformed json", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "bad.json", `{"anomaly_threshold": `)
		_, err := LoadTuningConfig(path)
		assert.ErrorContains(t, err, "parse config JSON")
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "invalid.json", `{"anomaly_threshold": -1}`)
		_, err := LoadTuningConfig(path)
		assert.ErrorContains(t, err, "anomaly_threshold")
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	f := func(v float64) *float64 { return &v }
	s := func(v string) *string { return &v }
	n := func(v int) *int { return &v }

	cases := []struct {
		name    string
		cfg     TuningConfig
		wantErr string
	}{
		{"empty valid", TuningConfig{}, ""},
		{"threshold zero", TuningConfig{AnomalyThreshold: f(0)}, "anomaly_threshold"},
		{"threshold above ceiling", TuningConfig{AnomalyThreshold: f(2.5)}, "anomaly_threshold"},
		{"threshold ceiling ok", TuningConfig{AnomalyThreshold: f(2)}, ""},
		{"bad tick interval", TuningConfig{TickInterval: s("33")}, "tick_interval"},
		{"bad feedback duration", TuningConfig{FeedbackDuration: s("abc")}, "feedback_duration"},
		{"zero feedback interval", TuningConfig{FeedbackInterval: n(0)}, "feedback_interval"},
		{"negative surface width", TuningConfig{MaxSurfaceWidth: f(-1)}, "max_surface_width"},
		{"zero surface height", TuningConfig{MaxSurfaceHeight: f(0)}, "max_surface_height"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tc.wantErr)
			}
		})
	}
}
