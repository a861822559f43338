package profiler

import (
	"strconv"
	"time"
)

// FrameTimer measures the wall time between consecutive frames.
type FrameTimer struct {
	now   func() time.Time
	last  time.Time
	delta time.Duration
}

// NewFrameTimer creates a FrameTimer whose first frame is measured from now.
//
// Parameters:
//   - now: the time source; nil uses time.Now
//
// Returns:
//   - *FrameTimer: the timer
func NewFrameTimer(now func() time.Time) *FrameTimer {
	if now == nil {
		now = time.Now
	}
	return &FrameTimer{now: now, last: now()}
}

// Mark records the start of a frame and returns the time since the previous Mark.
func (t *FrameTimer) Mark() time.Duration {
	current := t.now()
	t.delta = current.Sub(t.last)
	t.last = current
	return t.delta
}

// Delta returns the duration measured by the last Mark.
func (t *FrameTimer) Delta() time.Duration {
	return t.delta
}

// Milliseconds returns the last frame time in whole milliseconds.
func (t *FrameTimer) Milliseconds() int64 {
	return t.delta.Milliseconds()
}

// Label formats the last frame time as shown in the stats overlay.
func (t *FrameTimer) Label() string {
	return "Frametime: " + strconv.FormatInt(t.Milliseconds(), 10) + "ms"
}
