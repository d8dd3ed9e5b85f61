package frame

import "time"

// DefaultMaxDelta caps a single frame's delta so a stalled tab or a debugger
// pause does not make the simulation jump.
const DefaultMaxDelta = time.Second * 10 / 299 // 1/29.9 s

// Clock turns wall-clock tick times into frame timestamps and deltas
type Clock struct {
	maxDelta time.Duration
	start    time.Time
	last     time.Time
	started  bool
}

// NewClock creates a clock; a non-positive maxDelta uses DefaultMaxDelta
func NewClock(maxDelta time.Duration) *Clock {
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &Clock{maxDelta: maxDelta}
}

// Advance records a tick at now. The first tick has timestamp and delta 0.
// Time going backwards yields a zero delta.
func (c *Clock) Advance(now time.Time) (timestamp, delta time.Duration) {
	if !c.started {
		c.start, c.last, c.started = now, now, true
		return 0, 0
	}

	delta = now.Sub(c.last)
	if delta < 0 {
		delta = 0
	}
	if delta > c.maxDelta {
		delta = c.maxDelta
	}
	if now.After(c.last) {
		c.last = now
	}
	return c.last.Sub(c.start), delta
}

// MaxDelta returns the delta cap
func (c *Clock) MaxDelta() time.Duration {
	return c.maxDelta
}
