package animation

import (
	"sync"
	"time"
)

// Clock supplies the current time to an Animator
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock, including its monotonic reading
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a Clock that only moves when told to, used to drive animations
// deterministically
type ManualClock struct {
	now time.Time
	sync.Mutex
}

// NewManualClock creates a ManualClock stopped at start
func NewManualClock(start time.Time) (clock *ManualClock) {
	return &ManualClock{now: start}
}

// Now returns the current mocked time
func (c *ManualClock) Now() time.Time {
	c.Lock()
	defer c.Unlock()
	return c.now
}

// Set moves the clock to t
func (c *ManualClock) Set(t time.Time) {
	c.Lock()
	c.now = t
	c.Unlock()
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	c.Lock()
	c.now = c.now.Add(d)
	c.Unlock()
}
