package renderer

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/Carmen-Shannon/oxy-lite/engine/device"
	"github.com/Carmen-Shannon/oxy-lite/engine/overlay"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	encoderLabel    = "Render Encoder"
	renderPassLabel = "Render Pass"
)

var errFrameInFlight = errors.New("previous frame surface not yet presented")

type wgpuRendererBackendImpl struct {
	mu  *sync.Mutex
	ctx device.Context

	frameEncoder *wgpu.CommandEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// NewWGPURendererBackend creates a backend drawing to the surface of ctx.
//
// Parameters:
//   - ctx: the device context owning the device, queue and surface
//
// Returns:
//   - RendererBackend: the backend
func NewWGPURendererBackend(ctx device.Context) RendererBackend {
	return &wgpuRendererBackendImpl{
		mu:  &sync.Mutex{},
		ctx: ctx,
	}
}

func (b *wgpuRendererBackendImpl) Resize(width, height int) bool {
	return b.ctx.Resize(width, height)
}

func (b *wgpuRendererBackendImpl) SurfaceSize() (uint32, uint32) {
	cfg := b.ctx.Config()
	return cfg.Width, cfg.Height
}

func (b *wgpuRendererBackendImpl) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// a held surface texture means Present was never reached for the last frame
	if b.frameSurface != nil {
		return errFrameInFlight
	}

	surfaceTexture, err := b.ctx.Surface().GetCurrentTexture()
	if err != nil {
		return err
	}
	// timeout, outdated and lost all come back as a null texture with no error
	if surfaceTextureMissing(surfaceTexture) {
		return fmt.Errorf("%w: surface returned no texture", ErrSurfaceOutdated)
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.ctx.Device().CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: encoderLabel,
	})
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.frameSurface = surfaceTexture
	b.frameView = view
	b.frameEncoder = encoder
	return nil
}

func (b *wgpuRendererBackendImpl) WriteBuffer(buffer *wgpu.Buffer, data []byte) error {
	return b.ctx.Queue().WriteBuffer(buffer, 0, data)
}

func (b *wgpuRendererBackendImpl) EncodeGeometry(clear wgpu.Color, g Geometry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pass := b.frameEncoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: renderPassLabel,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       b.frameView,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: clear,
			},
		},
	})

	pass.SetPipeline(g.Pipeline)
	for i, bg := range g.BindGroups {
		pass.SetBindGroup(uint32(i), bg, nil)
	}
	pass.SetVertexBuffer(0, g.VertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(g.IndexBuffer, g.IndexFormat, 0, wgpu.WholeSize)
	pass.DrawIndexed(g.IndexCount, 1, 0, 0, 0)
	pass.End()
	pass.Release()
}

func (b *wgpuRendererBackendImpl) OverlayTarget() overlay.Target {
	b.mu.Lock()
	defer b.mu.Unlock()

	cfg := b.ctx.Config()
	return overlay.Target{
		View:    b.frameView,
		Encoder: b.frameEncoder,
		Width:   cfg.Width,
		Height:  cfg.Height,
	}
}

func (b *wgpuRendererBackendImpl) Submit() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		return err
	}
	b.ctx.Queue().Submit(commandBuffer)

	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.ctx.Surface().Present()
	b.releaseFrame()
}

func (b *wgpuRendererBackendImpl) DiscardFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseFrame()
}

// releaseFrame drops every per-frame handle still held. Caller holds the mutex.
func (b *wgpuRendererBackendImpl) releaseFrame() {
	if b.frameEncoder != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
	}
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}

// surfaceTextureMissing reports whether tex carries no native handle. The binding drops the
// acquire status and hands back a texture with a null reference instead, which wgpu-native
// aborts on once a view is created from it.
func surfaceTextureMissing(tex *wgpu.Texture) bool {
	if tex == nil {
		return true
	}
	ref := reflect.ValueOf(tex).Elem().FieldByName("ref")
	switch ref.Kind() {
	case reflect.Pointer, reflect.UnsafePointer:
		return ref.IsNil()
	case reflect.Uintptr:
		return ref.Uint() == 0
	}
	return false
}
