package overlay

import "github.com/cogentcore/webgpu/wgpu"

// Target is what the renderer hands the overlay each frame: the swapchain view the geometry
// pass drew into and the still-open command encoder for that frame.
type Target struct {
	View    *wgpu.TextureView
	Encoder *wgpu.CommandEncoder

	// Width and Height are the surface size in pixels.
	Width, Height uint32
	// PixelsPerPoint is the window content scale.
	PixelsPerPoint float32
}

// UI receives the overlay's widgets for one frame.
type UI interface {
	// Label adds a line of text to the panel.
	Label(text string)
}

// Overlay draws on top of the geometry pass. Draw must begin its own render pass on
// target.Encoder that loads the existing color contents, and must not submit.
type Overlay interface {
	// Draw runs ui to collect the frame's widgets and encodes the overlay pass.
	//
	// Parameters:
	//   - target: the frame's view, encoder and surface size
	//   - ui: the per-frame callback building the panel contents; may be nil
	//
	// Returns:
	//   - error: an error if GPU resources for the panel could not be created
	Draw(target Target, ui func(UI)) error

	// Release frees the overlay's GPU resources.
	Release()
}
