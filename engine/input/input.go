package input

import (
	"github.com/Carmen-Shannon/oxy-lite/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultScreenSize is the pointer mapping size used when none is configured.
const DefaultScreenSize = 800

// Snapshot is the per-frame input state consumed by the camera.
type Snapshot struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool

	// RotateEnabled is true while the left mouse button is held.
	RotateEnabled bool

	// Pointer is the current cursor position in screen space, [-1, 1] with +y up.
	Pointer mgl32.Vec2
	// Delta is Pointer minus the pointer at the previous EndOfFrame.
	Delta mgl32.Vec2
}

type aggregatorImpl struct {
	state           Snapshot
	previousPointer mgl32.Vec2

	screenWidth  float32
	screenHeight float32
}

// Aggregator folds window events into a stable per-frame Snapshot. It keeps only the
// current state plus the previous pointer position.
type Aggregator interface {
	// OnEvent updates the flag or position the event refers to. It has no other effect.
	//
	// Parameters:
	//   - e: the window event
	OnEvent(e common.Event)

	// EndOfFrame computes the pointer delta as current minus previous, then advances previous.
	// It must be called exactly once per frame, after event dispatch.
	EndOfFrame()

	// Snapshot returns a copy of the current input state.
	//
	// Returns:
	//   - Snapshot: the state as of the last EndOfFrame for Delta, and the latest events otherwise
	Snapshot() Snapshot
}

var _ Aggregator = &aggregatorImpl{}

// NewAggregator creates an Aggregator with all flags released and the pointer at the origin.
//
// Parameters:
//   - options: functional options to configure the aggregator
//
// Returns:
//   - Aggregator: the new aggregator
func NewAggregator(options ...AggregatorBuilderOption) Aggregator {
	a := &aggregatorImpl{
		screenWidth:  DefaultScreenSize,
		screenHeight: DefaultScreenSize,
	}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *aggregatorImpl) OnEvent(e common.Event) {
	switch e.Type {
	case common.EventKey:
		if e.Repeat {
			return
		}
		switch e.Key {
		case common.KeyW:
			a.state.Forward = e.Pressed
		case common.KeyS:
			a.state.Back = e.Pressed
		case common.KeyA:
			a.state.Left = e.Pressed
		case common.KeyD:
			a.state.Right = e.Pressed
		case common.KeyQ:
			a.state.Down = e.Pressed
		case common.KeyE:
			a.state.Up = e.Pressed
		}
	case common.EventPointerMoved:
		a.state.Pointer = common.ScreenSpace(e.X, e.Y, a.screenWidth, a.screenHeight)
	case common.EventPointerButton:
		if e.Button == common.MouseButtonLeft {
			a.state.RotateEnabled = e.Pressed
		}
	}
}

func (a *aggregatorImpl) EndOfFrame() {
	a.state.Delta = a.state.Pointer.Sub(a.previousPointer)
	a.previousPointer = a.state.Pointer
}

func (a *aggregatorImpl) Snapshot() Snapshot {
	return a.state
}
