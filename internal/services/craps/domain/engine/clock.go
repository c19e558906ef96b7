package engine

import (
	"sync"
	"time"
)

// Clock reports the host logical clock in ticks.
type Clock interface {
	Now() uint64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() uint64

// Now returns f().
func (f ClockFunc) Now() uint64 { return f() }

// UnixClock counts ticks as unix seconds of the wall clock.
func UnixClock(now func() time.Time) Clock {
	if now == nil {
		now = time.Now
	}
	return ClockFunc(func() uint64 {
		sec := now().Unix()
		if sec < 0 {
			return 0
		}
		return uint64(sec)
	})
}

// MonotonicClock never reports a tick lower than one it already reported,
// even when the source steps backwards.
type MonotonicClock struct {
	Source Clock

	mu   sync.Mutex
	last uint64
}

// Now returns the greater of the source tick and the last reported tick.
func (c *MonotonicClock) Now() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if tick := c.Source.Now(); tick > c.last {
		c.last = tick
	}
	return c.last
}
