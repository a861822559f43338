package pipeline

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

type fakeDevice struct {
	layouts   []*wgpu.PipelineLayoutDescriptor
	pipelines []*wgpu.RenderPipelineDescriptor
	released  []*wgpu.PipelineLayout
	created   []*wgpu.PipelineLayout
	err       error
}

func (d *fakeDevice) CreatePipelineLayout(descriptor *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	d.layouts = append(d.layouts, descriptor)
	layout := &wgpu.PipelineLayout{}
	d.created = append(d.created, layout)
	return layout, nil
}

func (d *fakeDevice) ReleasePipelineLayout(layout *wgpu.PipelineLayout) {
	d.released = append(d.released, layout)
}

func (d *fakeDevice) CreateRenderPipeline(descriptor *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.pipelines = append(d.pipelines, descriptor)
	return &wgpu.RenderPipeline{}, nil
}

func validConfig() Config {
	return Config{
		Label:              "Scene",
		Module:             &wgpu.ShaderModule{},
		VertexEntryPoint:   "vs_main",
		FragmentEntryPoint: "fs_main",
		Format:             wgpu.TextureFormatBGRA8UnormSrgb,
		BindGroupLayouts:   []*wgpu.BindGroupLayout{{}, {}},
	}
}

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout()
	if layout.ArrayStride != VertexStride || VertexStride != 24 {
		t.Fatalf("stride = %d, want 24", layout.ArrayStride)
	}
	if layout.StepMode != wgpu.VertexStepModeVertex {
		t.Errorf("step mode = %v, want per-vertex", layout.StepMode)
	}
	if len(layout.Attributes) != 2 {
		t.Fatalf("got %d attributes, want 2", len(layout.Attributes))
	}
	for i, attr := range layout.Attributes {
		if attr.Format != wgpu.VertexFormatFloat32x3 {
			t.Errorf("attribute %d format = %v", i, attr.Format)
		}
		if attr.ShaderLocation != uint32(i) || attr.Offset != uint64(i*12) {
			t.Errorf("attribute %d at location %d offset %d", i, attr.ShaderLocation, attr.Offset)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no module", func(c *Config) { c.Module = nil }},
		{"no vertex entry", func(c *Config) { c.VertexEntryPoint = "" }},
		{"no fragment entry", func(c *Config) { c.FragmentEntryPoint = "" }},
		{"no format", func(c *Config) { c.Format = wgpu.TextureFormatUndefined }},
		{"nil layout", func(c *Config) { c.BindGroupLayouts[1] = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config: %v", err)
	}
}

func TestBuildKeepsLayoutOrder(t *testing.T) {
	cfg := validConfig()
	device := &fakeDevice{}
	p, err := Build(device, cfg)
	if err != nil || p == nil {
		t.Fatalf("Build() = %v, %v", p, err)
	}
	if len(device.layouts) != 1 || len(device.pipelines) != 1 {
		t.Fatalf("created %d layouts and %d pipelines", len(device.layouts), len(device.pipelines))
	}
	got := device.layouts[0].BindGroupLayouts
	for i := range cfg.BindGroupLayouts {
		if got[i] != cfg.BindGroupLayouts[i] {
			t.Errorf("layout %d out of order", i)
		}
	}

	desc := device.pipelines[0]
	if desc.Vertex.EntryPoint != "vs_main" || desc.Fragment.EntryPoint != "fs_main" {
		t.Errorf("entry points = %q, %q", desc.Vertex.EntryPoint, desc.Fragment.EntryPoint)
	}
	if desc.Fragment.Targets[0].Format != cfg.Format {
		t.Errorf("target format = %v, want %v", desc.Fragment.Targets[0].Format, cfg.Format)
	}
	if desc.Primitive != DefaultPrimitive() {
		t.Errorf("primitive = %+v, want defaults", desc.Primitive)
	}
	if desc.Fragment.Targets[0].Blend != nil {
		t.Error("blend set without being requested")
	}
}

func TestBuildInvalidConfigCreatesNothing(t *testing.T) {
	cfg := validConfig()
	cfg.Module = nil
	device := &fakeDevice{}
	if _, err := Build(device, cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Build() error = %v", err)
	}
	if len(device.layouts) != 0 {
		t.Fatal("layout created for invalid config")
	}
}

func TestBuildWrapsDeviceError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Build(&fakeDevice{err: boom}, validConfig()); !errors.Is(err, boom) {
		t.Fatalf("Build() error = %v, want wrapped boom", err)
	}
}

func TestBuildReleasesPipelineLayout(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"success", nil},
		{"pipeline creation fails", errors.New("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			device := &fakeDevice{err: tt.err}
			_, err := Build(device, validConfig())
			if (err != nil) != (tt.err != nil) {
				t.Fatalf("Build() error = %v", err)
			}
			if len(device.released) != 1 || device.released[0] != device.created[0] {
				t.Fatalf("released %d layouts, want the one created", len(device.released))
			}
		})
	}
}

func TestCacheRebuildsOnFormatChange(t *testing.T) {
	device := &fakeDevice{}
	cache, err := NewCache(device, 4)
	if err != nil {
		t.Fatal(err)
	}
	var released []*wgpu.RenderPipeline
	cache.release = func(p *wgpu.RenderPipeline) { released = append(released, p) }

	cfg := validConfig()
	first, err := cache.Get(cfg)
	if err != nil {
		t.Fatal(err)
	}
	again, _ := cache.Get(cfg)
	if first != again || len(device.pipelines) != 1 {
		t.Fatal("cache hit rebuilt the pipeline")
	}

	cfg.Format = wgpu.TextureFormatRGBA8UnormSrgb
	second, err := cache.Get(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if second == first {
		t.Fatal("format change returned the stale pipeline")
	}
	if len(released) != 1 || released[0] != first {
		t.Fatalf("released %v, want the first pipeline", released)
	}
	if cache.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", cache.Len())
	}

	cache.Purge()
	if len(released) != 2 || cache.Len() != 0 {
		t.Fatalf("Purge released %d pipelines, %d left", len(released), cache.Len())
	}
}
