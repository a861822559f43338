package renderer

import (
	"github.com/Carmen-Shannon/oxy-lite/engine/overlay"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackend performs the GPU work of one frame. The Renderer decides the order of the
// calls and classifies their errors; a backend holds at most one in-flight frame.
type RendererBackend interface {
	// Resize reconfigures the surface. Zero or negative sizes are ignored and return false.
	Resize(width, height int) bool

	// SurfaceSize returns the configured surface size in pixels.
	SurfaceSize() (width, height uint32)

	// BeginFrame acquires the next surface image and opens a command encoder.
	//
	// Returns:
	//   - error: the acquisition error, left unclassified
	BeginFrame() error

	// WriteBuffer queues a write of data at offset 0 of buffer.
	WriteBuffer(buffer *wgpu.Buffer, data []byte) error

	// EncodeGeometry records the geometry pass: clear to clear, bind g and draw its indices.
	EncodeGeometry(clear wgpu.Color, g Geometry)

	// OverlayTarget returns the frame's view and encoder for the overlay pass.
	OverlayTarget() overlay.Target

	// Submit finishes the encoder and submits the command buffer.
	Submit() error

	// Present presents the acquired image and releases the frame's resources.
	Present()

	// DiscardFrame releases whatever part of the frame was built without submitting.
	DiscardFrame()
}

// Geometry is everything the geometry pass binds for its single indexed draw.
type Geometry struct {
	Pipeline *wgpu.RenderPipeline

	// BindGroups are bound in slice order: index i is @group(i).
	BindGroups []*wgpu.BindGroup

	VertexBuffer *wgpu.Buffer
	IndexBuffer  *wgpu.Buffer
	IndexFormat  wgpu.IndexFormat
	// IndexCount is the number of indices in IndexBuffer; the draw covers all of them.
	IndexCount uint32
}

// Upload is one per-frame uniform write.
type Upload struct {
	Buffer *wgpu.Buffer
	Data   []byte
}
