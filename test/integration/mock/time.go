package mock

import (
	"sync"
	"time"
)

// Time is a clock that starts at a fixed instant and then advances with the wall clock.
type Time struct {
	mu        sync.Mutex
	start     time.Time
	updatedAt time.Time
}

// NewTime returns a clock reading the current time.
func NewTime() *Time {
	now := time.Now().UTC()
	return &Time{start: now, updatedAt: now}
}

// SetCurrentTime moves the clock to currentTime.
func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start = currentTime
	t.updatedAt = time.Now()
}

// Reset moves the clock back to the wall clock.
func (t *Time) Reset() {
	t.SetCurrentTime(time.Now().UTC())
}

// Now returns the mocked current time.
func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.start.Add(time.Since(t.updatedAt))
}
