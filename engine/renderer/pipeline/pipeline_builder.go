package pipeline

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Device creates pipeline layouts and render pipelines. *wgpu.Device satisfies it.
type Device interface {
	CreatePipelineLayout(descriptor *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error)
	CreateRenderPipeline(descriptor *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error)
}

// LayoutReleaser is implemented by devices that take over releasing the intermediate
// pipeline layout. Build calls layout.Release directly for devices that do not.
type LayoutReleaser interface {
	ReleasePipelineLayout(layout *wgpu.PipelineLayout)
}

// Build compiles cfg into a render pipeline. It is the only place GPU objects are created
// for a pipeline: the pipeline layout from cfg.BindGroupLayouts in order, then the pipeline.
// The result is immutable; a different format or layout set needs a new Build.
//
// Parameters:
//   - device: the device creating the GPU objects
//   - cfg: the pipeline configuration
//
// Returns:
//   - *wgpu.RenderPipeline: the created pipeline
//   - error: an error if cfg is invalid or creation fails
func Build(device Device, cfg Config) (*wgpu.RenderPipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            cfg.Label,
		BindGroupLayouts: cfg.BindGroupLayouts,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline layout %q: %w", cfg.Label, err)
	}
	// the pipeline holds its own reference to the layout
	defer releaseLayout(device, layout)

	created, err := device.CreateRenderPipeline(cfg.Descriptor(layout))
	if err != nil {
		return nil, fmt.Errorf("create render pipeline %q: %w", cfg.Label, err)
	}
	return created, nil
}

func releaseLayout(device Device, layout *wgpu.PipelineLayout) {
	if r, ok := device.(LayoutReleaser); ok {
		r.ReleasePipelineLayout(layout)
		return
	}
	layout.Release()
}
