package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-lite/common"
	"github.com/Carmen-Shannon/oxy-lite/engine/camera"
	"github.com/Carmen-Shannon/oxy-lite/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

type fakeDevice struct {
	calls           []string
	buffers         map[*wgpu.Buffer]string
	groups          map[*wgpu.BindGroup]string
	pipelines       int
	releasedLayouts int
	moduleErr       error
	modules         []*wgpu.ShaderModuleDescriptor
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		buffers: make(map[*wgpu.Buffer]string),
		groups:  make(map[*wgpu.BindGroup]string),
	}
}

func (d *fakeDevice) CreateBuffer(desc *wgpu.BufferDescriptor) (*wgpu.Buffer, error) {
	d.calls = append(d.calls, "buffer "+desc.Label)
	b := &wgpu.Buffer{}
	d.buffers[b] = desc.Label
	return b, nil
}

func (d *fakeDevice) CreateBufferInit(desc *wgpu.BufferInitDescriptor) (*wgpu.Buffer, error) {
	d.calls = append(d.calls, "buffer "+desc.Label)
	b := &wgpu.Buffer{}
	d.buffers[b] = desc.Label
	return b, nil
}

func (d *fakeDevice) CreateBindGroup(desc *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	d.calls = append(d.calls, "bind group "+desc.Label)
	g := &wgpu.BindGroup{}
	d.groups[g] = desc.Label
	return g, nil
}

func (d *fakeDevice) CreateBindGroupLayout(desc *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	d.calls = append(d.calls, "layout "+desc.Label)
	return &wgpu.BindGroupLayout{}, nil
}

func (d *fakeDevice) CreatePipelineLayout(desc *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	d.calls = append(d.calls, "pipeline layout "+desc.Label)
	return &wgpu.PipelineLayout{}, nil
}

func (d *fakeDevice) ReleasePipelineLayout(*wgpu.PipelineLayout) {
	d.releasedLayouts++
}

func (d *fakeDevice) CreateRenderPipeline(desc *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	d.calls = append(d.calls, "pipeline "+desc.Label)
	d.pipelines++
	return &wgpu.RenderPipeline{}, nil
}

func (d *fakeDevice) CreateShaderModule(desc *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	d.calls = append(d.calls, "module "+desc.Label)
	if d.moduleErr != nil {
		return nil, d.moduleErr
	}
	d.modules = append(d.modules, desc)
	return &wgpu.ShaderModule{}, nil
}

func TestNewSceneCreationOrder(t *testing.T) {
	dev := newFakeDevice()
	if _, err := NewScene(dev, wgpu.TextureFormatBGRA8UnormSrgb); err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	want := []string{
		"module Scene",
		"buffer " + string(BufferVertex),
		"buffer " + string(BufferIndex),
		"buffer " + string(BufferCamera),
		"buffer " + string(BufferViewport),
		"layout Camera Bind Group Layout",
		"layout Viewport Bind Group Layout",
		"bind group " + string(BindGroupCamera),
		"bind group " + string(BindGroupViewport),
	}
	if len(dev.calls) < len(want) {
		t.Fatalf("calls = %v", dev.calls)
	}
	for i, w := range want {
		if dev.calls[i] != w {
			t.Errorf("call %d = %q, want %q", i, dev.calls[i], w)
		}
	}
	if dev.pipelines != 1 {
		t.Errorf("pipelines built = %d, want 1", dev.pipelines)
	}
}

func TestFrameResolvesRegistryHandles(t *testing.T) {
	dev := newFakeDevice()
	s, err := NewScene(dev, wgpu.TextureFormatBGRA8UnormSrgb)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	cam := camera.NewCamera()

	frame, err := s.Frame(cam, 800, 600)
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}

	if len(frame.Uploads) != 2 {
		t.Fatalf("uploads = %d, want 2", len(frame.Uploads))
	}
	if dev.buffers[frame.Uploads[0].Buffer] != string(BufferCamera) {
		t.Errorf("first upload goes to %q", dev.buffers[frame.Uploads[0].Buffer])
	}
	if len(frame.Uploads[0].Data) != camera.CameraUniformSize {
		t.Errorf("camera upload = %d bytes, want %d", len(frame.Uploads[0].Data), camera.CameraUniformSize)
	}
	viewport := frame.Uploads[1]
	if dev.buffers[viewport.Buffer] != string(BufferViewport) {
		t.Errorf("second upload goes to %q", dev.buffers[viewport.Buffer])
	}
	if w, h := common.Float32At(viewport.Data, 0), common.Float32At(viewport.Data, 4); w != 800 || h != 600 {
		t.Errorf("viewport = %vx%v, want 800x600", w, h)
	}

	g := frame.Geometry
	if g.Pipeline == nil {
		t.Error("geometry has no pipeline")
	}
	if len(g.BindGroups) != 2 ||
		dev.groups[g.BindGroups[0]] != string(BindGroupCamera) ||
		dev.groups[g.BindGroups[1]] != string(BindGroupViewport) {
		t.Errorf("bind groups out of @group order")
	}
	if g.VertexBuffer != s.Buffers().Get(string(BufferVertex)) || g.IndexBuffer != s.Buffers().Get(string(BufferIndex)) {
		t.Error("geometry buffers are not the registered handles")
	}
	if g.IndexCount != 6 || g.IndexFormat != wgpu.IndexFormatUint16 {
		t.Errorf("index count %d format %v", g.IndexCount, g.IndexFormat)
	}
	if frame.UI != nil {
		t.Error("scene frames carry no UI")
	}
}

func TestFrameReusesCachedPipeline(t *testing.T) {
	dev := newFakeDevice()
	s, err := NewScene(dev, wgpu.TextureFormatBGRA8UnormSrgb)
	if err != nil {
		t.Fatal(err)
	}
	cam := camera.NewCamera()
	for range 3 {
		if _, err := s.Frame(cam, 800, 800); err != nil {
			t.Fatal(err)
		}
	}
	if dev.pipelines != 1 {
		t.Errorf("pipelines built = %d, want 1", dev.pipelines)
	}
	if dev.releasedLayouts != 1 {
		t.Errorf("pipeline layouts released = %d, want 1", dev.releasedLayouts)
	}
}

func TestUnknownLabelPanicsNamingLabel(t *testing.T) {
	s, err := NewScene(newFakeDevice(), wgpu.TextureFormatBGRA8UnormSrgb)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "Light Buffer") {
			t.Errorf("panic %v does not name the label", r)
		}
	}()
	s.Buffers().Get("Light Buffer")
}

func TestTriangleScene(t *testing.T) {
	dev := newFakeDevice()
	s, err := NewScene(dev, wgpu.TextureFormatRGBA8Unorm,
		WithMesh(TriangleMesh()),
		WithShader("Triangle", TriangleShaderSource),
	)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	frame, err := s.Frame(camera.NewCamera(), 800, 800)
	if err != nil {
		t.Fatal(err)
	}
	if frame.Geometry.IndexCount != 3 {
		t.Errorf("index count = %d, want 3", frame.Geometry.IndexCount)
	}
	if s.Shader().Key() != "Triangle" {
		t.Errorf("shader key = %q", s.Shader().Key())
	}
}

func TestSceneShaderDeclaresUniformGroups(t *testing.T) {
	s, err := NewScene(newFakeDevice(), wgpu.TextureFormatBGRA8UnormSrgb)
	if err != nil {
		t.Fatal(err)
	}
	bindings := s.Shader().Bindings()
	if len(bindings) != 2 {
		t.Fatalf("bindings = %+v", bindings)
	}
	if bindings[0].Group != 0 || bindings[0].Type != "CameraUniform" {
		t.Errorf("group 0 = %+v", bindings[0])
	}
	if bindings[1].Group != 1 || bindings[1].Type != "ViewportUniform" {
		t.Errorf("group 1 = %+v", bindings[1])
	}
}

func TestNewSceneCompileError(t *testing.T) {
	dev := newFakeDevice()
	dev.moduleErr = errors.New("bad wgsl")
	if _, err := NewScene(dev, wgpu.TextureFormatBGRA8UnormSrgb); err == nil {
		t.Fatal("expected an error")
	}
	for _, c := range dev.calls {
		if strings.HasPrefix(c, "buffer") {
			t.Errorf("created %q after a failed compile", c)
		}
	}
}

func TestMeshes(t *testing.T) {
	quad := QuadMesh()
	if len(quad.Vertices) != 4 || quad.indexCount() != 6 {
		t.Errorf("quad has %d vertices, %d indices", len(quad.Vertices), quad.indexCount())
	}
	for _, i := range quad.Indices {
		if int(i) >= len(quad.Vertices) {
			t.Errorf("quad index %d out of range", i)
		}
	}

	tri := TriangleMesh()
	want := []pipeline.Vertex{
		{Position: [3]float32{0, 0.5, 0}, Color: [3]float32{1, 0, 0}},
		{Position: [3]float32{-0.5, -0.5, 0}, Color: [3]float32{0, 1, 0}},
		{Position: [3]float32{0.5, -0.5, 0}, Color: [3]float32{0, 0, 1}},
	}
	for i := range want {
		if tri.Vertices[i] != want[i] {
			t.Errorf("triangle vertex %d = %+v", i, tri.Vertices[i])
		}
	}
	if n := len(tri.indexBytes()); n != 4 {
		t.Errorf("padded triangle indices = %d, want 4", n)
	}
	if tri.indexCount() != 3 {
		t.Errorf("triangle draws %d indices, want 3", tri.indexCount())
	}
}
