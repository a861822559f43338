package common

// EventType identifies the kind of window event carried by an Event.
type EventType int

const (
	// EventCloseRequested is emitted when the user asks the window to close.
	EventCloseRequested EventType = iota

	// EventKey is emitted for key presses, repeats and releases.
	EventKey

	// EventPointerMoved is emitted when the cursor moves inside the window.
	EventPointerMoved

	// EventPointerButton is emitted when a mouse button is pressed or released.
	EventPointerButton

	// EventResized is emitted when the framebuffer size changes.
	EventResized

	// EventRedrawRequested is emitted once per message loop iteration when a new frame should be drawn.
	EventRedrawRequested
)

// String returns a short name for the event type, used in log attributes.
func (t EventType) String() string {
	switch t {
	case EventCloseRequested:
		return "close_requested"
	case EventKey:
		return "key"
	case EventPointerMoved:
		return "pointer_moved"
	case EventPointerButton:
		return "pointer_button"
	case EventResized:
		return "resized"
	case EventRedrawRequested:
		return "redraw_requested"
	default:
		return "unknown"
	}
}

// Event is a single window event produced by the windowing layer and consumed by the engine loop.
// Only the fields relevant to Type are populated.
type Event struct {
	// Type identifies which fields below are meaningful.
	Type EventType

	// Key is the virtual key code for EventKey (see key_codes.go).
	Key uint32
	// Pressed is true for key or button presses, false for releases.
	Pressed bool
	// Repeat is true when an EventKey press was generated by key auto-repeat.
	Repeat bool

	// X and Y are the cursor position in window pixels for EventPointerMoved.
	X, Y float32

	// Button is the mouse button for EventPointerButton.
	Button MouseButton

	// Width and Height are the new framebuffer size in pixels for EventResized.
	Width, Height int
}

// IsExit reports whether the event terminates the engine loop.
// A close request and a non-repeat Escape press are treated identically.
//
// Returns:
//   - bool: true if the loop should stop
func (e Event) IsExit() bool {
	switch e.Type {
	case EventCloseRequested:
		return true
	case EventKey:
		return e.Key == KeyEsc && e.Pressed && !e.Repeat
	}
	return false
}
