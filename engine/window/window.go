package window

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-lite/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window owns the OS window and turns its callbacks into common.Event values.
// All methods must be called from the thread that created the window.
type Window interface {
	// PollEvents pumps the OS message queue and returns the events received since the last
	// call, in arrival order. The slice always ends with one EventRedrawRequested, preceded by
	// an EventCloseRequested if the window was asked to close.
	//
	// Returns:
	//   - []common.Event: the events of this iteration; valid until the next call
	PollEvents() []common.Event

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor for the window, created by the
	// wgpuglfw bridge for the current platform (Windows HWND, X11, Wayland, Metal).
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the descriptor, or nil if the window is closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int

	// ContentScale returns the ratio of framebuffer pixels to window points.
	ContentScale() float32

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: an error if the window was never created or is already closed
	Close() error
}

type engineWindow struct {
	title string

	minWidth, minHeight int
	maxWidth, maxHeight int
	resizable           bool

	// width and height are the framebuffer size, which differs from the window size on
	// high-DPI displays.
	width, height int
	contentScale  float32

	events eventQueue

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a window. The calling goroutine must be locked to its OS thread.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:        "oxy-lite",
		width:        800,
		height:       800,
		minWidth:     200,
		minHeight:    200,
		resizable:    true,
		contentScale: 1,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) PollEvents() []common.Event {
	w.events.reset()
	if !platformPollEvents(w) {
		w.events.push(common.Event{Type: common.EventCloseRequested})
	}
	w.events.push(common.Event{Type: common.EventRedrawRequested})
	return w.events.items
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) ContentScale() float32 {
	return w.contentScale
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

// eventQueue buffers the events produced by platform callbacks during one poll.
type eventQueue struct {
	items []common.Event
}

func (q *eventQueue) push(e common.Event) {
	q.items = append(q.items, e)
}

// reset empties the queue, keeping its backing array.
func (q *eventQueue) reset() {
	q.items = q.items[:0]
}

// keyEvent builds an EventKey. A repeat is always a press.
func keyEvent(key uint32, pressed, repeat bool) common.Event {
	return common.Event{Type: common.EventKey, Key: key, Pressed: pressed || repeat, Repeat: repeat}
}
