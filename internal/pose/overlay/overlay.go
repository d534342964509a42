// Package overlay turns scoring output into a timed, auto-expiring
// presentation signal. A newly arriving feedback item replaces the
// visible one immediately; items are never queued or stacked.
package overlay

import (
	"strings"
	"sync"
	"time"
)

// NoFeedbackSentinel is the scoring service's "no display action"
// response. It never becomes a visible item.
const NoFeedbackSentinel = "No feedback yet"

// DefaultDuration is how long an item stays visible before auto-hiding.
const DefaultDuration = 7 * time.Second

// Item is one piece of feedback text with its display deadline.
type Item struct {
	Text      string
	ShownAt   time.Time
	ExpiresAt time.Time
}

// Board owns the currently visible feedback item. Expiry is evaluated
// on read against the injected clock, so tests never need real timers.
type Board struct {
	mu       sync.Mutex
	current  *Item
	duration time.Duration
	clock    func() time.Time
}

// NewBoard creates a feedback board. Zero duration means
// DefaultDuration; nil clock means time.Now.
func NewBoard(duration time.Duration, clock func() time.Time) *Board {
	if duration <= 0 {
		duration = DefaultDuration
	}
	if clock == nil {
		clock = time.Now
	}
	return &Board{duration: duration, clock: clock}
}

// Show displays feedback text, replacing any visible item. Empty
// strings and the sentinel are dropped without touching the visible
// item.
func (b *Board) Show(text string) {
	text = strings.TrimSpace(text)
	if text == "" || text == NoFeedbackSentinel {
		return
	}
	now := b.clock()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = &Item{
		Text:      text,
		ShownAt:   now,
		ExpiresAt: now.Add(b.duration),
	}
}

// Current returns the visible feedback text, or ok=false when nothing
// is visible. An expired item is discarded on read.
func (b *Board) Current() (text string, ok bool) {
	now := b.clock()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return "", false
	}
	if !now.Before(b.current.ExpiresAt) {
		b.current = nil
		return "", false
	}
	return b.current.Text, true
}

// Clear hides the visible item immediately (stream stop path).
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = nil
}
