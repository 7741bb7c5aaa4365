package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickRefreshesOncePerSecond(t *testing.T) {
	start := time.Unix(1000, 0)
	s := New(start, false)
	assert.Equal(t, "FPS --", s.Label())

	changed := 0
	for i := 1; i <= 150; i++ {
		if s.Tick(start.Add(time.Duration(i) * 10 * time.Millisecond)) {
			changed++
		}
	}
	assert.Equal(t, 1, changed)
	assert.InDelta(t, 100, s.FPS(), 0.01)
	assert.Equal(t, "FPS 100.0", s.Label())
}

func TestRemaining(t *testing.T) {
	start := time.Unix(1000, 0)

	assert.Equal(t, 10*time.Millisecond, Remaining(start, start, 100))
	assert.Equal(t, 4*time.Millisecond, Remaining(start, start.Add(6*time.Millisecond), 100))
	assert.Zero(t, Remaining(start, start.Add(time.Second), 75))
	assert.Zero(t, Remaining(start, start, 0))
	assert.Equal(t, 13333333*time.Nanosecond, FrameBudget(75))
}
