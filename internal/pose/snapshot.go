package pose

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Source identifies which stream produced a snapshot.
type Source string

const (
	SourceReference Source = "reference" // pre-recorded reference performance
	SourceLive      Source = "live"      // live performer (webcam)
)

// Other returns the counterpart source for comparison pairing.
func (s Source) Other() Source {
	if s == SourceReference {
		return SourceLive
	}
	return SourceReference
}

// Snapshot is one source's most recent detection result. Snapshots are
// immutable after creation; the next detection from the same source
// supersedes (never mutates) the previous one.
type Snapshot struct {
	ID             string
	FrameIndex     int64
	Source         Source
	Timestamp      time.Time
	Landmarks      LandmarkSet
	WorldLandmarks LandmarkSet
}

// NewSnapshot creates an immutable snapshot for a detection.
func NewSnapshot(source Source, frameIndex int64, landmarks, world LandmarkSet, ts time.Time) *Snapshot {
	return &Snapshot{
		ID:             fmt.Sprintf("snap_%s", uuid.NewString()),
		FrameIndex:     frameIndex,
		Source:         source,
		Timestamp:      ts,
		Landmarks:      landmarks,
		WorldLandmarks: world,
	}
}

// Exchange holds the latest snapshot per source. There is no history
// buffer: comparison always pairs the most recent snapshot from each
// side, even when their frame indices differ.
type Exchange struct {
	mu     sync.RWMutex
	latest map[Source]*Snapshot
}

// NewExchange creates an empty snapshot exchange.
func NewExchange() *Exchange {
	return &Exchange{latest: make(map[Source]*Snapshot)}
}

// Publish replaces the latest snapshot for the snapshot's source.
func (e *Exchange) Publish(s *Snapshot) {
	if s == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.latest[s.Source] = s
}

// Latest returns the most recent snapshot for a source, or nil when
// the source has not produced one (or it was discarded).
func (e *Exchange) Latest(source Source) *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.latest[source]
}

// Discard drops the latest snapshot for a source so the comparison
// engine no longer matches against stale data after a stop or seek.
func (e *Exchange) Discard(source Source) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.latest, source)
}
