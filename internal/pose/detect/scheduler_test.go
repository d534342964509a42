package detect

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickSchedulerFiresCallback(t *testing.T) {
	t.Parallel()

	s := NewTickScheduler(time.Millisecond)
	done := make(chan struct{})
	s.Schedule(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduled callback never fired")
	}
}

func TestTickSchedulerCancelPreventsCallback(t *testing.T) {
	t.Parallel()

	s := NewTickScheduler(5 * time.Millisecond)
	var mu sync.Mutex
	fired := false

	s.Schedule(func() {
		mu.Lock()
		fired = true
		mu.Unlock()
	})
	s.Cancel()

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.False(t, fired, "cancelled callback must not run")
}

func TestTickSchedulerScheduleReplacesPending(t *testing.T) {
	t.Parallel()

	s := NewTickScheduler(5 * time.Millisecond)
	var mu sync.Mutex
	var ran []string

	s.Schedule(func() {
		mu.Lock()
		ran = append(ran, "first")
		mu.Unlock()
	})
	s.Schedule(func() {
		mu.Lock()
		ran = append(ran, "second")
		mu.Unlock()
	})

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"second"}, ran)
}

func TestTickSchedulerCancelIdempotent(t *testing.T) {
	t.Parallel()

	s := NewTickScheduler(0) // default interval
	assert.NotPanics(t, func() {
		s.Cancel()
		s.Cancel()
	})
}

func TestManualScheduler(t *testing.T) {
	t.Parallel()

	s := &ManualScheduler{}
	assert.False(t, s.Tick())

	count := 0
	s.Schedule(func() { count++ })
	assert.True(t, s.Pending())
	assert.True(t, s.Tick())
	assert.Equal(t, 1, count)
	assert.False(t, s.Tick(), "callback runs once per Schedule")

	s.Schedule(func() { count++ })
	s.Cancel()
	assert.False(t, s.Tick())
	assert.Equal(t, 1, count)
}
