package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithMesh replaces the full-screen quad.
//
// Parameters:
//   - mesh: the geometry to upload
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMesh(mesh Mesh) SceneBuilderOption {
	return func(s *scene) {
		s.mesh = mesh
	}
}

// WithShader replaces the ray-march shader. The source may use the camera and viewport
// bind groups at @group(0) and @group(1).
//
// Parameters:
//   - key: the shader label
//   - source: the WGSL source with @oxy: annotations
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShader(key, source string) SceneBuilderOption {
	return func(s *scene) {
		s.shaderKey = key
		s.shaderSource = source
	}
}

// WithPipelineCacheSize sets how many pipelines the scene keeps built. Defaults to 4.
func WithPipelineCacheSize(size int) SceneBuilderOption {
	return func(s *scene) {
		if size > 0 {
			s.cacheSize = size
		}
	}
}
