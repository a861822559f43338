package pipeline

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrInvalidConfig is returned by Build when a Config is missing required fields.
var ErrInvalidConfig = errors.New("invalid pipeline config")

// Vertex is the engine's single vertex type: a 3D position plus a color or UV attribute.
// Matches the vertex stage input at locations 0 and 1.
type Vertex struct {
	Position [3]float32 // offset  0: location 0, vec3<f32>
	Color    [3]float32 // offset 12: location 1, vec3<f32> (RGB or UV in xy)
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = 24

// VertexLayout returns the fixed vertex buffer layout for Vertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex layout with two Float32x3 attributes
func VertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		},
	}
}

// Config describes a render pipeline. It holds no GPU objects of its own beyond the
// references passed in, and can be discarded once Build returns.
type Config struct {
	// Label is the debug label and cache identity of the pipeline.
	Label string

	// Module is the compiled shader module holding both entry points. Treated as opaque.
	Module *wgpu.ShaderModule
	// VertexEntryPoint and FragmentEntryPoint name the stage functions inside Module.
	VertexEntryPoint, FragmentEntryPoint string

	// Format is the color target format, normally the swapchain format.
	Format wgpu.TextureFormat

	// BindGroupLayouts are placed in the pipeline layout in order: index i is @group(i).
	BindGroupLayouts []*wgpu.BindGroupLayout

	// Primitive overrides DefaultPrimitive when set.
	Primitive *wgpu.PrimitiveState
	// Blend is the color target blend state; nil disables blending.
	Blend *wgpu.BlendState
}

// DefaultPrimitive is a triangle list with counter-clockwise front faces and no culling.
func DefaultPrimitive() wgpu.PrimitiveState {
	return wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeNone,
	}
}

// Validate reports whether the config has everything Build needs.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig naming the first missing field, or nil
func (c Config) Validate() error {
	switch {
	case c.Module == nil:
		return fmt.Errorf("%w: %q has no shader module", ErrInvalidConfig, c.Label)
	case c.VertexEntryPoint == "":
		return fmt.Errorf("%w: %q has no vertex entry point", ErrInvalidConfig, c.Label)
	case c.FragmentEntryPoint == "":
		return fmt.Errorf("%w: %q has no fragment entry point", ErrInvalidConfig, c.Label)
	case c.Format == wgpu.TextureFormatUndefined:
		return fmt.Errorf("%w: %q has no color target format", ErrInvalidConfig, c.Label)
	}
	for i, l := range c.BindGroupLayouts {
		if l == nil {
			return fmt.Errorf("%w: %q bind group layout %d is nil", ErrInvalidConfig, c.Label, i)
		}
	}
	return nil
}

// AlphaBlending is the standard straight-alpha "over" blend state.
var AlphaBlending = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorSrcAlpha,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
	Alpha: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
}

// PremultipliedAlphaBlending blends colors whose RGB is already multiplied by alpha,
// as image.RGBA stores them.
var PremultipliedAlphaBlending = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
	Alpha: wgpu.BlendComponent{
		Operation: wgpu.BlendOperationAdd,
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
	},
}

// Descriptor assembles the render pipeline descriptor for layout.
// The vertex stage always uses the fixed Vertex layout.
//
// Parameters:
//   - layout: the pipeline layout created from BindGroupLayouts
//
// Returns:
//   - *wgpu.RenderPipelineDescriptor: the descriptor ready for Device.CreateRenderPipeline
func (c Config) Descriptor(layout *wgpu.PipelineLayout) *wgpu.RenderPipelineDescriptor {
	primitive := DefaultPrimitive()
	if c.Primitive != nil {
		primitive = *c.Primitive
	}

	return &wgpu.RenderPipelineDescriptor{
		Label:  c.Label + " Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     c.Module,
			EntryPoint: c.VertexEntryPoint,
			Buffers:    []wgpu.VertexBufferLayout{VertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     c.Module,
			EntryPoint: c.FragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    c.Format,
					Blend:     c.Blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: primitive,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
}
