package frame

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewClock(t *testing.T) {
	assert.Equal(t, DefaultMaxDelta, NewClock(0).MaxDelta())
	assert.Equal(t, DefaultMaxDelta, NewClock(-time.Second).MaxDelta())
	assert.Equal(t, 50*time.Millisecond, NewClock(50*time.Millisecond).MaxDelta())
}

func TestDefaultMaxDelta(t *testing.T) {
	assert.InDelta(t, 1/29.9, DefaultMaxDelta.Seconds(), 1e-6)
}

func TestClock_Advance(t *testing.T) {
	c := NewClock(100 * time.Millisecond)
	start := time.Now()

	ts, dt := c.Advance(start)
	assert.Equal(t, time.Duration(0), ts)
	assert.Equal(t, time.Duration(0), dt)

	ts, dt = c.Advance(start.Add(20 * time.Millisecond))
	assert.Equal(t, 20*time.Millisecond, ts)
	assert.Equal(t, 20*time.Millisecond, dt)

	ts, dt = c.Advance(start.Add(time.Second))
	assert.Equal(t, time.Second, ts)
	assert.Equal(t, 100*time.Millisecond, dt, "delta is capped")

	ts, dt = c.Advance(start.Add(500 * time.Millisecond))
	assert.Equal(t, time.Second, ts, "timestamp never goes backwards")
	assert.Equal(t, time.Duration(0), dt)
}
