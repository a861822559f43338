package scene

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-lite/common"
	"github.com/Carmen-Shannon/oxy-lite/engine/camera"
	"github.com/Carmen-Shannon/oxy-lite/engine/renderer"
	"github.com/Carmen-Shannon/oxy-lite/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-lite/engine/renderer/registry"
	"github.com/Carmen-Shannon/oxy-lite/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// SceneShaderSource ray-marches a voxel block through the full-screen quad.
//
//go:embed assets/scene.wgsl
var SceneShaderSource string

// TriangleShaderSource draws vertex colors unchanged.
//
//go:embed assets/triangle.wgsl
var TriangleShaderSource string

// BufferLabel names one of the scene's buffers in the registry.
type BufferLabel string

// BindGroupLabel names one of the scene's bind groups in the registry.
type BindGroupLabel string

const (
	BufferVertex   BufferLabel = "Vertex Buffer"
	BufferIndex    BufferLabel = "Index Buffer"
	BufferCamera   BufferLabel = "Camera Buffer"
	BufferViewport BufferLabel = "Viewport Buffer"

	BindGroupCamera   BindGroupLabel = "Camera Bind Group"
	BindGroupViewport BindGroupLabel = "Viewport Bind Group"
)

// bindGroupOrder is the @group index of each bind group.
var bindGroupOrder = []BindGroupLabel{BindGroupCamera, BindGroupViewport}

const pipelineLabel = "Scene"

// Device is every allocation the scene makes at startup. *wgpu.Device satisfies it.
type Device interface {
	registry.BufferAllocator
	registry.BindGroupAllocator
	registry.LayoutAllocator
	pipeline.Device
	shader.ModuleCreator
}

type scene struct {
	device Device
	format wgpu.TextureFormat

	mesh          Mesh
	shaderKey     string
	shaderSource  string
	cacheSize     int
	releaseModule func(*wgpu.ShaderModule)

	buffers    *registry.BufferStore
	bindGroups *registry.BindGroupStore
	layouts    []*wgpu.BindGroupLayout
	module     *wgpu.ShaderModule
	shader     shader.Shader
	pipelines  *pipeline.Cache
}

// Scene owns the GPU resources of the fixed quad scene and turns the camera state into a
// renderer.Frame each frame.
type Scene interface {
	// Frame builds this frame's uploads and geometry. Handles are read from the registry on
	// every call, so a missing label panics here rather than at draw time.
	//
	// Parameters:
	//   - cam: the camera whose uniform is uploaded
	//   - width, height: the surface size written to the viewport uniform
	//
	// Returns:
	//   - renderer.Frame: the frame without a UI callback
	//   - error: an error if the pipeline could not be built
	Frame(cam camera.Camera, width, height uint32) (renderer.Frame, error)

	// Buffers returns the scene's buffer store.
	Buffers() *registry.BufferStore

	// BindGroups returns the scene's bind group store.
	BindGroups() *registry.BindGroupStore

	// Shader returns the processed scene shader.
	Shader() shader.Shader

	// Release frees every GPU resource the scene created.
	Release()
}

var _ Scene = &scene{}

// NewScene compiles the scene shader and creates its buffers, bind groups and pipeline.
// Creation order is vertex and index buffers, uniform buffers, layouts, bind groups, then the
// pipeline, which is built eagerly so a broken shader fails at startup.
//
// Parameters:
//   - device: the allocator for every resource
//   - format: the surface color format the pipeline targets
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the scene
//   - error: an error if any resource could not be created
func NewScene(device Device, format wgpu.TextureFormat, options ...SceneBuilderOption) (_ Scene, err error) {
	s := &scene{
		device:        device,
		format:        format,
		mesh:          QuadMesh(),
		shaderKey:     "Scene",
		shaderSource:  SceneShaderSource,
		cacheSize:     4,
		releaseModule: (*wgpu.ShaderModule).Release,
		buffers:       registry.NewBufferStore(device),
		bindGroups:    registry.NewBindGroupStore(device),
	}
	for _, option := range options {
		option(s)
	}
	defer func() {
		if err != nil {
			s.Release()
		}
	}()

	s.shader, err = shader.NewShader(s.shaderKey, s.shaderSource)
	if err != nil {
		return nil, err
	}
	s.module, err = shader.Compile(device, s.shader)
	if err != nil {
		return nil, err
	}

	if err := s.buffers.CreateVertexBuffer(string(BufferVertex), common.SliceToBytes(s.mesh.Vertices)); err != nil {
		return nil, err
	}
	if err := s.buffers.CreateIndexBuffer(string(BufferIndex), common.SliceToBytes(s.mesh.indexBytes())); err != nil {
		return nil, err
	}
	if err := s.buffers.CreateUniformBuffer(string(BufferCamera), camera.CameraUniformSize); err != nil {
		return nil, err
	}
	if err := s.buffers.CreateUniformBuffer(string(BufferViewport), camera.ViewportUniformSize); err != nil {
		return nil, err
	}

	cameraLayout, err := registry.NewUniformLayout(device, 0, "Camera Bind Group Layout", wgpu.ShaderStageVertex|wgpu.ShaderStageFragment)
	if err != nil {
		return nil, err
	}
	s.layouts = append(s.layouts, cameraLayout)
	viewportLayout, err := registry.NewUniformLayout(device, 0, "Viewport Bind Group Layout", wgpu.ShaderStageFragment)
	if err != nil {
		return nil, err
	}
	s.layouts = append(s.layouts, viewportLayout)

	if err := s.bindGroups.CreateBindGroup(0, s.buffers.Get(string(BufferCamera)), string(BindGroupCamera), cameraLayout); err != nil {
		return nil, err
	}
	if err := s.bindGroups.CreateBindGroup(0, s.buffers.Get(string(BufferViewport)), string(BindGroupViewport), viewportLayout); err != nil {
		return nil, err
	}

	s.pipelines, err = pipeline.NewCache(device, s.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create pipeline cache: %w", err)
	}
	if _, err := s.pipelines.Get(s.pipelineConfig()); err != nil {
		return nil, err
	}

	slog.Info("scene ready",
		"shader", s.shaderKey,
		"vertices", len(s.mesh.Vertices),
		"indices", len(s.mesh.Indices),
		"buffers", s.buffers.Len(),
		"bind_groups", s.bindGroups.Len(),
	)
	return s, nil
}

func (s *scene) pipelineConfig() pipeline.Config {
	return pipeline.Config{
		Label:              pipelineLabel,
		Module:             s.module,
		VertexEntryPoint:   s.shader.VertexEntryPoint(),
		FragmentEntryPoint: s.shader.FragmentEntryPoint(),
		Format:             s.format,
		BindGroupLayouts:   s.layouts,
	}
}

func (s *scene) Frame(cam camera.Camera, width, height uint32) (renderer.Frame, error) {
	p, err := s.pipelines.Get(s.pipelineConfig())
	if err != nil {
		return renderer.Frame{}, err
	}

	groups := make([]*wgpu.BindGroup, len(bindGroupOrder))
	for i, label := range bindGroupOrder {
		groups[i] = s.bindGroups.Get(string(label))
	}

	return renderer.Frame{
		Uploads: []renderer.Upload{
			{Buffer: s.buffers.Get(string(BufferCamera)), Data: cam.Uniform().Marshal()},
			{Buffer: s.buffers.Get(string(BufferViewport)), Data: camera.NewViewportUniform(width, height).Marshal()},
		},
		Geometry: renderer.Geometry{
			Pipeline:     p,
			BindGroups:   groups,
			VertexBuffer: s.buffers.Get(string(BufferVertex)),
			IndexBuffer:  s.buffers.Get(string(BufferIndex)),
			IndexFormat:  wgpu.IndexFormatUint16,
			IndexCount:   s.mesh.indexCount(),
		},
	}, nil
}

func (s *scene) Buffers() *registry.BufferStore {
	return s.buffers
}

func (s *scene) BindGroups() *registry.BindGroupStore {
	return s.bindGroups
}

func (s *scene) Shader() shader.Shader {
	return s.shader
}

func (s *scene) Release() {
	if s.pipelines != nil {
		s.pipelines.Purge()
	}
	s.bindGroups.Release()
	for _, l := range s.layouts {
		l.Release()
	}
	s.layouts = nil
	s.buffers.Release()
	if s.module != nil && s.releaseModule != nil {
		s.releaseModule(s.module)
		s.module = nil
	}
}
