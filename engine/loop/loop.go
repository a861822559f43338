package loop

import (
	"errors"
	"log/slog"
	"time"

	"github.com/Carmen-Shannon/oxy-lite/common"
	"github.com/Carmen-Shannon/oxy-lite/engine/camera"
	"github.com/Carmen-Shannon/oxy-lite/engine/input"
	"github.com/Carmen-Shannon/oxy-lite/engine/overlay"
	"github.com/Carmen-Shannon/oxy-lite/engine/profiler"
	"github.com/Carmen-Shannon/oxy-lite/engine/renderer"
)

// FrameRenderer draws frames and takes queued resizes. renderer.Renderer satisfies it.
type FrameRenderer interface {
	RenderFrame(frame renderer.Frame) error
	Resize(width, height int)
}

// FrameSource builds the frame for the current camera. scene.Scene satisfies it.
type FrameSource interface {
	Frame(cam camera.Camera, width, height uint32) (renderer.Frame, error)
}

type loopImpl struct {
	renderer FrameRenderer
	source   FrameSource
	camera   camera.Camera
	input    input.Aggregator
	timer    *profiler.FrameTimer
	profiler *profiler.Profiler
	now      func() time.Time

	width, height  int
	pixelsPerPoint float32
	frametimeLabel bool
	frames         uint64
}

// Loop advances the engine by one message loop iteration at a time. It owns the camera and
// the input aggregator and is driven from the thread that owns the device.
type Loop interface {
	// Step dispatches events, then ends the input frame, ticks the camera and, if a redraw
	// was requested, renders one frame. F3 toggles the frametime panel.
	//
	// An exit event stops dispatch immediately. A lost surface ends the loop without an
	// error; running out of memory ends it with one.
	//
	// Parameters:
	//   - events: the window events of this iteration, in arrival order
	//
	// Returns:
	//   - bool: false once the loop should stop
	//   - error: a fatal render error, wrapping renderer.ErrOutOfMemory
	Step(events []common.Event) (bool, error)

	// Camera returns the camera ticked by Step.
	Camera() camera.Camera

	// Input returns the aggregator fed by Step.
	Input() input.Aggregator

	// Frames returns how many frames Step has handed to the renderer.
	Frames() uint64
}

var _ Loop = &loopImpl{}

// NewLoop creates a Loop rendering frames from source through r.
//
// Parameters:
//   - r: the frame renderer
//   - source: the per-frame uploads and geometry
//   - width, height: the initial surface size in pixels
//   - options: functional options to configure the loop
//
// Returns:
//   - Loop: the loop
func NewLoop(r FrameRenderer, source FrameSource, width, height int, options ...LoopBuilderOption) Loop {
	l := &loopImpl{
		renderer:       r,
		source:         source,
		width:          width,
		height:         height,
		pixelsPerPoint: 1,
		now:            time.Now,
	}
	for _, option := range options {
		option(l)
	}
	if l.camera == nil {
		l.camera = camera.NewCamera()
	}
	if l.input == nil {
		l.input = input.NewAggregator()
	}
	l.timer = profiler.NewFrameTimer(l.now)
	return l
}

func (l *loopImpl) Step(events []common.Event) (bool, error) {
	redraw := false
	for _, e := range events {
		if e.IsExit() {
			slog.Info("exit requested", "event", e.Type.String())
			return false, nil
		}
		switch e.Type {
		case common.EventResized:
			// minimizing reports a zero size; the surface keeps its last configuration
			if e.Width > 0 && e.Height > 0 {
				l.renderer.Resize(e.Width, e.Height)
				l.width, l.height = e.Width, e.Height
			}
		case common.EventRedrawRequested:
			redraw = true
		case common.EventKey:
			if e.Key == common.KeyF3 && e.Pressed && !e.Repeat {
				l.frametimeLabel = !l.frametimeLabel
			}
		}
		l.input.OnEvent(e)
	}

	l.input.EndOfFrame()
	l.camera.Tick(l.input.Snapshot())

	if !redraw {
		return true, nil
	}
	return l.render()
}

func (l *loopImpl) render() (bool, error) {
	l.timer.Mark()
	if l.profiler != nil {
		l.profiler.Tick()
	}

	frame, err := l.source.Frame(l.camera, uint32(l.width), uint32(l.height))
	if err != nil {
		slog.Error("build frame", "error", err)
		return true, nil
	}
	if l.frametimeLabel {
		label := l.timer.Label()
		frame.UI = func(ui overlay.UI) {
			ui.Label(label)
		}
	}
	frame.PixelsPerPoint = l.pixelsPerPoint

	l.frames++
	err = l.renderer.RenderFrame(frame)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, renderer.ErrSurfaceLost):
		slog.Warn("surface lost, stopping", "error", err)
		return false, nil
	default:
		slog.Error("fatal render error", "error", err)
		return false, err
	}
}

func (l *loopImpl) Camera() camera.Camera {
	return l.camera
}

func (l *loopImpl) Input() input.Aggregator {
	return l.input
}

func (l *loopImpl) Frames() uint64 {
	return l.frames
}
