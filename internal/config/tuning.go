package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TuningConfig holds the runtime-tunable parameters of the comparison
// and feedback engine. Fields are pointers so a partial JSON file only
// overrides what it names; the Get* accessors supply defaults for the
// rest.
type TuningConfig struct {
	// Comparison params
	AnomalyThreshold *float64 `json:"anomaly_threshold,omitempty"`

	// Detection loop params
	TickInterval     *string  `json:"tick_interval,omitempty"` // duration string like "33ms"
	MaxSurfaceWidth  *float64 `json:"max_surface_width,omitempty"`
	MaxSurfaceHeight *float64 `json:"max_surface_height,omitempty"`

	// Feedback params
	FeedbackDuration *string `json:"feedback_duration,omitempty"` // duration string like "7s"
	FeedbackInterval *int    `json:"feedback_interval,omitempty"` // frames between generated feedback
	ScoringURL       *string `json:"scoring_url,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields unset.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file. Fields
// omitted from the file keep their defaults, so partial configs are
// safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *TuningConfig) Validate() error {
	if c.AnomalyThreshold != nil {
		if *c.AnomalyThreshold <= 0 || *c.AnomalyThreshold > 2 {
			return fmt.Errorf("anomaly_threshold must be in (0, 2], got %f", *c.AnomalyThreshold)
		}
	}
	if c.TickInterval != nil && *c.TickInterval != "" {
		if _, err := time.ParseDuration(*c.TickInterval); err != nil {
			return fmt.Errorf("invalid tick_interval %q: %w", *c.TickInterval, err)
		}
	}
	if c.FeedbackDuration != nil && *c.FeedbackDuration != "" {
		if _, err := time.ParseDuration(*c.FeedbackDuration); err != nil {
			return fmt.Errorf("invalid feedback_duration %q: %w", *c.FeedbackDuration, err)
		}
	}
	if c.FeedbackInterval != nil && *c.FeedbackInterval < 1 {
		return fmt.Errorf("feedback_interval must be positive, got %d", *c.FeedbackInterval)
	}
	if c.MaxSurfaceWidth != nil && *c.MaxSurfaceWidth <= 0 {
		return fmt.Errorf("max_surface_width must be positive, got %f", *c.MaxSurfaceWidth)
	}
	if c.MaxSurfaceHeight != nil && *c.MaxSurfaceHeight <= 0 {
		return fmt.Errorf("max_surface_height must be positive, got %f", *c.MaxSurfaceHeight)
	}
	return nil
}

// GetAnomalyThreshold returns the anomaly_threshold value or the default.
func (c *TuningConfig) GetAnomalyThreshold() float64 {
	if c.AnomalyThreshold == nil {
		return 0.1
	}
	return *c.AnomalyThreshold
}

// GetTickInterval parses and returns the tick_interval as a duration.
func (c *TuningConfig) GetTickInterval() time.Duration {
	if c.TickInterval == nil || *c.TickInterval == "" {
		return 33 * time.Millisecond
	}
	d, err := time.ParseDuration(*c.TickInterval)
	if err != nil {
		return 33 * time.Millisecond
	}
	return d
}

// GetFeedbackDuration parses and returns the feedback_duration.
func (c *TuningConfig) GetFeedbackDuration() time.Duration {
	if c.FeedbackDuration == nil || *c.FeedbackDuration == "" {
		return 7 * time.Second
	}
	d, err := time.ParseDuration(*c.FeedbackDuration)
	if err != nil {
		return 7 * time.Second
	}
	return d
}

// GetFeedbackInterval returns the feedback_interval value or the default.
func (c *TuningConfig) GetFeedbackInterval() int {
	if c.FeedbackInterval == nil {
		return 100
	}
	return *c.FeedbackInterval
}

// GetMaxSurfaceWidth returns the max_surface_width value or the default.
func (c *TuningConfig) GetMaxSurfaceWidth() float64 {
	if c.MaxSurfaceWidth == nil {
		return 1280
	}
	return *c.MaxSurfaceWidth
}

// GetMaxSurfaceHeight returns the max_surface_height value or the default.
func (c *TuningConfig) GetMaxSurfaceHeight() float64 {
	if c.MaxSurfaceHeight == nil {
		return 720
	}
	return *c.MaxSurfaceHeight
}

// GetScoringURL returns the scoring_url value or the default.
func (c *TuningConfig) GetScoringURL() string {
	if c.ScoringURL == nil || *c.ScoringURL == "" {
		return "http://localhost:8080"
	}
	return *c.ScoringURL
}
