package stats

import (
	"fmt"
	"log"
	"time"
)

// FrameStats counts frames and refreshes an FPS label once per interval.
type FrameStats struct {
	frameCount int
	lastTime   time.Time
	interval   time.Duration
	fps        float64
	label      string
	logEvery   bool
}

// New starts counting at now. When logToStdout is set every refresh is also
// written to the log.
func New(now time.Time, logToStdout bool) *FrameStats {
	return &FrameStats{
		lastTime: now,
		interval: time.Second,
		label:    "FPS --",
		logEvery: logToStdout,
	}
}

// Tick records one frame and reports whether the label changed.
func (s *FrameStats) Tick(now time.Time) bool {
	s.frameCount++
	elapsed := now.Sub(s.lastTime)
	if elapsed < s.interval {
		return false
	}

	s.fps = float64(s.frameCount) / elapsed.Seconds()
	s.label = fmt.Sprintf("FPS %.1f", s.fps)
	if s.logEvery {
		log.Printf("[Stats] %s", s.label)
	}
	s.frameCount = 0
	s.lastTime = now
	return true
}

func (s *FrameStats) FPS() float64  { return s.fps }
func (s *FrameStats) Label() string { return s.label }

// FrameBudget is the frame duration for a target rate.
func FrameBudget(targetFPS float32) time.Duration {
	if targetFPS <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(targetFPS))
}

// Remaining is how long to sleep so a frame started at start lasts at least
// one budget.
func Remaining(start, now time.Time, targetFPS float32) time.Duration {
	left := start.Add(FrameBudget(targetFPS)).Sub(now)
	if left < 0 {
		return 0
	}
	return left
}
