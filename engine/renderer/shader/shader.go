package shader

import (
	"fmt"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
)

// ModuleCreator compiles WGSL into a shader module. *wgpu.Device satisfies it.
type ModuleCreator interface {
	CreateShaderModule(descriptor *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error)
}

type shader struct {
	key                string
	source             string
	vertexEntryPoint   string
	fragmentEntryPoint string
	bindings           []Binding
	declarations       []Annotation
}

// Shader is a pre-processed WGSL render shader holding one vertex and one fragment stage.
type Shader interface {
	// Key returns the shader's label.
	Key() string

	// Source returns the processed WGSL source.
	Source() string

	// VertexEntryPoint returns the name of the @vertex function.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the name of the @fragment function.
	FragmentEntryPoint() string

	// Bindings returns the resource declarations of the processed source, sorted by group and binding.
	Bindings() []Binding

	// Declarations returns the @oxy:group annotations found while processing.
	Declarations() []Annotation

	// Module returns the shader module descriptor for the processed source.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor labelled with Key
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader pre-processes source and extracts its entry points and bindings.
//
// Parameters:
//   - key: the shader label
//   - source: the raw WGSL source with @oxy: annotations
//
// Returns:
//   - Shader: the processed shader
//   - error: an error if pre-processing fails or a stage entry point is missing
func NewShader(key, source string) (Shader, error) {
	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:          key,
		source:       processed,
		bindings:     parseBindings(processed),
		declarations: append([]Annotation(nil), pp.Declarations()...),
	}
	s.vertexEntryPoint, s.fragmentEntryPoint = parseEntryPoints(processed)
	if s.vertexEntryPoint == "" || s.fragmentEntryPoint == "" {
		return nil, fmt.Errorf("shader %s: needs both a @vertex and a @fragment entry point", key)
	}
	return s, nil
}

// NewShaderFromPath reads a WGSL file and passes it to NewShader.
//
// Parameters:
//   - key: the shader label
//   - path: the file path of the WGSL source
//
// Returns:
//   - Shader: the processed shader
//   - error: an error if the file cannot be read or processed
func NewShaderFromPath(key, path string) (Shader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shader %s: read %q: %w", key, path, err)
	}
	return NewShader(key, string(data))
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntryPoint
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragmentEntryPoint
}

func (s *shader) Bindings() []Binding {
	return s.bindings
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
}

// Compile creates the GPU shader module for s. The module is opaque to the rest of the engine.
//
// Parameters:
//   - device: the device compiling the module
//   - s: the processed shader
//
// Returns:
//   - *wgpu.ShaderModule: the compiled module
//   - error: an error if compilation fails
func Compile(device ModuleCreator, s Shader) (*wgpu.ShaderModule, error) {
	module, err := device.CreateShaderModule(s.Module())
	if err != nil {
		return nil, fmt.Errorf("compile shader %s: %w", s.Key(), err)
	}
	return module, nil
}
