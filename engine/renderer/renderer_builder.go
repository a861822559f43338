package renderer

import (
	"github.com/Carmen-Shannon/oxy-lite/engine/overlay"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithOverlay sets the overlay drawn after the geometry pass.
//
// Parameters:
//   - o: the overlay, or nil to disable the overlay pass
//
// Returns:
//   - RendererBuilderOption: a function that sets the overlay
func WithOverlay(o overlay.Overlay) RendererBuilderOption {
	return func(r *renderer) {
		r.overlay = o
	}
}

// WithClearColor sets the color the geometry pass clears to.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that sets the clear color
func WithClearColor(color wgpu.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}
