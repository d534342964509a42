package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a hand-advanced clock for deterministic expiry tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBoard(duration time.Duration) (*Board, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	return NewBoard(duration, clock.Now), clock
}

func TestBoardShowsAndExpires(t *testing.T) {
	t.Parallel()

	board, clock := newTestBoard(5 * time.Second)
	board.Show("Keep your back straight")

	text, ok := board.Current()
	require.True(t, ok)
	assert.Equal(t, "Keep your back straight", text)

	// Still visible just shy of the deadline.
	clock.Advance(5*time.Second - time.Millisecond)
	_, ok = board.Current()
	assert.True(t, ok)

	// Exactly at the deadline the item auto-hides.
	clock.Advance(time.Millisecond)
	_, ok = board.Current()
	assert.False(t, ok)
}

func TestBoardSentinelNeverVisible(t *testing.T) {
	t.Parallel()

	board, _ := newTestBoard(5 * time.Second)

	board.Show(NoFeedbackSentinel)
	_, ok := board.Current()
	assert.False(t, ok)

	board.Show("")
	_, ok = board.Current()
	assert.False(t, ok)

	board.Show("   ")
	_, ok = board.Current()
	assert.False(t, ok)
}

func TestBoardSentinelDoesNotClobberVisibleItem(t *testing.T) {
	t.Parallel()

	board, _ := newTestBoard(5 * time.Second)
	board.Show("Excellent form!")
	board.Show(NoFeedbackSentinel)

	text, ok := board.Current()
	require.True(t, ok)
	assert.Equal(t, "Excellent form!", text)
}

func TestBoardNewItemReplacesImmediately(t *testing.T) {
	t.Parallel()

	board, clock := newTestBoard(5 * time.Second)
	board.Show("Relax your shoulders")
	clock.Advance(3 * time.Second)
	board.Show("Bend your knees more")

	text, ok := board.Current()
	require.True(t, ok)
	assert.Equal(t, "Bend your knees more", text)

	// The replacement item gets its own full duration.
	clock.Advance(4 * time.Second)
	_, ok = board.Current()
	assert.True(t, ok)
}

func TestBoardClear(t *testing.T) {
	t.Parallel()

	board, _ := newTestBoard(0) // default duration
	board.Show("Maintain balance")
	board.Clear()

	_, ok := board.Current()
	assert.False(t, ok)
}

func TestBoardDefaultDuration(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(0, 0)}
	board := NewBoard(0, clock.Now)
	board.Show("Remember to breathe")

	clock.Advance(DefaultDuration - time.Second)
	_, ok := board.Current()
	assert.True(t, ok)

	clock.Advance(2 * time.Second)
	_, ok = board.Current()
	assert.False(t, ok)
}
