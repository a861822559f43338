package loop

import (
	"time"

	"github.com/Carmen-Shannon/oxy-lite/engine/camera"
	"github.com/Carmen-Shannon/oxy-lite/engine/input"
	"github.com/Carmen-Shannon/oxy-lite/engine/profiler"
)

// LoopBuilderOption is a functional option for configuring a Loop.
type LoopBuilderOption func(*loopImpl)

// WithCamera sets the camera ticked every step. Defaults to camera.NewCamera().
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - LoopBuilderOption: a function that applies the camera option
func WithCamera(cam camera.Camera) LoopBuilderOption {
	return func(l *loopImpl) {
		l.camera = cam
	}
}

// WithAggregator sets the input aggregator fed every step. Defaults to input.NewAggregator().
//
// Parameters:
//   - a: the aggregator
//
// Returns:
//   - LoopBuilderOption: a function that applies the aggregator option
func WithAggregator(a input.Aggregator) LoopBuilderOption {
	return func(l *loopImpl) {
		l.input = a
	}
}

// WithProfiler ticks p once per rendered frame.
func WithProfiler(p *profiler.Profiler) LoopBuilderOption {
	return func(l *loopImpl) {
		l.profiler = p
	}
}

// WithFrametimeLabel adds the "Frametime: {n}ms" line to every frame's overlay panel.
func WithFrametimeLabel(enabled bool) LoopBuilderOption {
	return func(l *loopImpl) {
		l.frametimeLabel = enabled
	}
}

// WithPixelsPerPoint sets the content scale handed to the overlay. Non-positive values are ignored.
func WithPixelsPerPoint(ppp float32) LoopBuilderOption {
	return func(l *loopImpl) {
		if ppp > 0 {
			l.pixelsPerPoint = ppp
		}
	}
}

// WithClock replaces time.Now for the frame timer.
func WithClock(now func() time.Time) LoopBuilderOption {
	return func(l *loopImpl) {
		if now != nil {
			l.now = now
		}
	}
}
