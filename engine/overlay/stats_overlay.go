package overlay

import (
	_ "embed"
	"fmt"
	"image"
	"log/slog"
	"slices"

	"github.com/Carmen-Shannon/oxy-lite/common"
	"github.com/Carmen-Shannon/oxy-lite/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-lite/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/overlay.wgsl
var overlayShaderSource string

const overlayPassLabel = "Overlay Render Pass"

// panel collects one frame's widgets.
type panel struct {
	lines []string
}

func (p *panel) Label(text string) {
	p.lines = append(p.lines, text)
}

type statsOverlay struct {
	device *wgpu.Device
	queue  *wgpu.Queue

	title  string
	scale  int
	margin float32

	pipeline        *wgpu.RenderPipeline
	bindGroupLayout *wgpu.BindGroupLayout
	sampler         *wgpu.Sampler
	vertexBuffer    *wgpu.Buffer
	indexBuffer     *wgpu.Buffer

	texture     *wgpu.Texture
	textureView *wgpu.TextureView
	bindGroup   *wgpu.BindGroup
	textureSize image.Point

	lastLines []string
}

var _ Overlay = &statsOverlay{}

// NewStatsOverlay creates a text panel overlay anchored to the top-left of the surface.
// Its pipeline targets format and blends over the existing frame contents.
//
// Parameters:
//   - device: the device creating the overlay's GPU resources
//   - queue: the queue used for texture and vertex uploads
//   - format: the color format of the surface the overlay draws to
//   - options: functional options to configure the overlay
//
// Returns:
//   - Overlay: the overlay
//   - error: an error if a GPU resource could not be created
func NewStatsOverlay(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, options ...StatsOverlayBuilderOption) (_ Overlay, err error) {
	o := &statsOverlay{
		device: device,
		queue:  queue,
		title:  "Stats",
		scale:  1,
	}
	for _, option := range options {
		option(o)
	}
	defer func() {
		if err != nil {
			o.Release()
		}
	}()

	s, err := shader.NewShader("Overlay", overlayShaderSource)
	if err != nil {
		return nil, err
	}
	module, err := shader.Compile(device, s)
	if err != nil {
		return nil, err
	}
	defer module.Release()

	o.bindGroupLayout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Overlay Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create overlay bind group layout: %w", err)
	}

	o.pipeline, err = pipeline.Build(device, pipeline.Config{
		Label:              "Overlay",
		Module:             module,
		VertexEntryPoint:   s.VertexEntryPoint(),
		FragmentEntryPoint: s.FragmentEntryPoint(),
		Format:             format,
		BindGroupLayouts:   []*wgpu.BindGroupLayout{o.bindGroupLayout},
		Blend:              pipeline.PremultipliedAlphaBlending,
	})
	if err != nil {
		return nil, err
	}

	o.sampler, err = device.CreateSampler(common.SamplerStagingData{}.Descriptor("Overlay Sampler"))
	if err != nil {
		return nil, fmt.Errorf("create overlay sampler: %w", err)
	}

	o.vertexBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Overlay Vertex Buffer",
		Size:  4 * pipeline.VertexStride,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create overlay vertex buffer: %w", err)
	}

	o.indexBuffer, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Overlay Index Buffer",
		Contents: common.SliceToBytes(quadIndices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return nil, fmt.Errorf("create overlay index buffer: %w", err)
	}

	return o, nil
}

func (o *statsOverlay) Draw(target Target, ui func(UI)) error {
	p := &panel{}
	if ui != nil {
		ui(p)
	}

	if o.bindGroup == nil || !slices.Equal(p.lines, o.lastLines) {
		img := Rasterize(o.title, p.lines, o.scale)
		if err := o.upload(img); err != nil {
			return err
		}
		o.lastLines = p.lines
	}

	ppp := common.Coalesce(target.PixelsPerPoint, 1)
	w := float32(o.textureSize.X) * ppp
	h := float32(o.textureSize.Y) * ppp
	vertices := QuadVertices(o.margin*ppp, o.margin*ppp, w, h, target.Width, target.Height)
	if err := o.queue.WriteBuffer(o.vertexBuffer, 0, common.SliceToBytes(vertices[:])); err != nil {
		return fmt.Errorf("write overlay vertices: %w", err)
	}

	pass := target.Encoder.BeginRenderPass(PassDescriptor(target.View))
	pass.SetPipeline(o.pipeline)
	pass.SetBindGroup(0, o.bindGroup, nil)
	pass.SetVertexBuffer(0, o.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(o.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(len(quadIndices)), 1, 0, 0, 0)
	pass.End()
	pass.Release()
	return nil
}

// PassDescriptor describes the overlay pass: it loads the color already in view so the
// geometry pass output stays underneath the panel.
//
// Parameters:
//   - view: the swapchain view of the current frame
//
// Returns:
//   - *wgpu.RenderPassDescriptor: the pass descriptor
func PassDescriptor(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		Label: overlayPassLabel,
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  wgpu.LoadOpLoad,
				StoreOp: wgpu.StoreOpStore,
			},
		},
	}
}

// upload writes img into the panel texture, recreating the texture and its bind group when
// the size changes.
func (o *statsOverlay) upload(img *image.RGBA) error {
	staging := common.NewTextureStagingData(img)
	size := image.Pt(int(staging.Width), int(staging.Height))

	if o.texture == nil || size != o.textureSize {
		o.releaseTexture()

		tex, err := o.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:     "Overlay Texture",
			Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
			Dimension: wgpu.TextureDimension2D,
			Size: wgpu.Extent3D{
				Width:              staging.Width,
				Height:             staging.Height,
				DepthOrArrayLayers: 1,
			},
			Format:        wgpu.TextureFormatRGBA8UnormSrgb,
			MipLevelCount: 1,
			SampleCount:   1,
		})
		if err != nil {
			return fmt.Errorf("create overlay texture: %w", err)
		}
		o.texture = tex

		o.textureView, err = tex.CreateView(nil)
		if err != nil {
			return fmt.Errorf("create overlay texture view: %w", err)
		}

		o.bindGroup, err = o.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "Overlay Bind Group",
			Layout: o.bindGroupLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, TextureView: o.textureView},
				{Binding: 1, Sampler: o.sampler},
			},
		})
		if err != nil {
			return fmt.Errorf("create overlay bind group: %w", err)
		}
		o.textureSize = size
		slog.Debug("overlay texture resized", "width", size.X, "height", size.Y)
	}

	o.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  o.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		staging.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  staging.Width * 4,
			RowsPerImage: staging.Height,
		},
		&wgpu.Extent3D{
			Width:              staging.Width,
			Height:             staging.Height,
			DepthOrArrayLayers: 1,
		},
	)
	return nil
}

func (o *statsOverlay) releaseTexture() {
	if o.bindGroup != nil {
		o.bindGroup.Release()
		o.bindGroup = nil
	}
	if o.textureView != nil {
		o.textureView.Release()
		o.textureView = nil
	}
	if o.texture != nil {
		o.texture.Release()
		o.texture = nil
	}
	o.textureSize = image.Point{}
}

func (o *statsOverlay) Release() {
	o.releaseTexture()
	if o.indexBuffer != nil {
		o.indexBuffer.Release()
		o.indexBuffer = nil
	}
	if o.vertexBuffer != nil {
		o.vertexBuffer.Release()
		o.vertexBuffer = nil
	}
	if o.sampler != nil {
		o.sampler.Release()
		o.sampler = nil
	}
	if o.pipeline != nil {
		o.pipeline.Release()
		o.pipeline = nil
	}
	if o.bindGroupLayout != nil {
		o.bindGroupLayout.Release()
		o.bindGroupLayout = nil
	}
}
