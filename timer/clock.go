// Package timer provides the frame clock and the background scheduler for
// interval and timeout callbacks.
package timer

import (
	"sync"
	"time"
)

// NowFunc returns the current time. Tests inject a fake one.
type NowFunc func() time.Time

// Clock measures wall-clock time between successive Step calls.
type Clock struct {
	mu   sync.Mutex
	now  NowFunc
	last time.Time
	dt   float64
}

// NewClock creates a clock. A nil now uses time.Now.
func NewClock(now NowFunc) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, last: now()}
}

// Reset makes the next Step measure from this instant.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = c.now()
	c.dt = 0
}

// Step samples the clock and returns the seconds elapsed since the previous
// sample (or Reset).
func (c *Clock) Step() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now()
	c.dt = t.Sub(c.last).Seconds()
	c.last = t
	return c.dt
}

// Delta returns the value of the most recent Step.
func (c *Clock) Delta() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dt
}
