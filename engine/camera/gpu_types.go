package camera

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-lite/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches CameraUniform layout exactly (144 bytes; the mat4 alignment of 16 places the
// projection at offset 16).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUViewportUniformSource is the canonical WGSL definition of the ViewportUniform struct.
//
//go:embed assets/viewport_uniform.wgsl
var GPUViewportUniformSource string

const (
	// CameraUniformSize is the packed size of CameraUniform in bytes.
	CameraUniformSize = 144

	// ViewportUniformSize is the packed size of ViewportUniform in bytes.
	ViewportUniformSize = 16
)

// CameraUniform is the GPU representation of the camera, uploaded once per frame.
type CameraUniform struct {
	Position          [3]float32 // offset  0: world-space position (vec3<f32>)
	_pad              float32    // offset 12: padding to 16
	ProjectionInverse mgl32.Mat4 // offset 16: inverse projection, column-major (mat4x4<f32>)
	ViewInverse       mgl32.Mat4 // offset 80: inverse view, column-major (mat4x4<f32>)
}

// NewCameraUniform builds a uniform from a position and the two inverse matrices.
//
// Parameters:
//   - position: the camera position in world space
//   - projectionInverse: the inverse projection matrix
//   - viewInverse: the inverse view matrix
//
// Returns:
//   - CameraUniform: the uniform
func NewCameraUniform(position mgl32.Vec3, projectionInverse, viewInverse mgl32.Mat4) CameraUniform {
	return CameraUniform{
		Position:          position,
		ProjectionInverse: projectionInverse,
		ViewInverse:       viewInverse,
	}
}

// Marshal serializes the uniform into its little-endian GPU layout.
//
// Returns:
//   - []byte: the 144-byte buffer
func (u CameraUniform) Marshal() []byte {
	buf := make([]byte, CameraUniformSize)
	common.PutFloat32s(buf, 0, u.Position[:]...)
	common.PutFloat32s(buf, 12, u._pad)
	common.PutFloat32s(buf, 16, u.ProjectionInverse[:]...)
	common.PutFloat32s(buf, 80, u.ViewInverse[:]...)
	return buf
}

// ViewportUniform carries the surface size in pixels to the fragment stage.
type ViewportUniform struct {
	Width, Height float32    // offset 0: vec2<f32>
	_pad          [2]float32 // offset 8: padding to 16
}

// NewViewportUniform builds a viewport uniform for a surface size.
func NewViewportUniform(width, height uint32) ViewportUniform {
	return ViewportUniform{Width: float32(width), Height: float32(height)}
}

// Marshal serializes the uniform into its little-endian GPU layout.
//
// Returns:
//   - []byte: the 16-byte buffer
func (u ViewportUniform) Marshal() []byte {
	buf := make([]byte, ViewportUniformSize)
	common.PutFloat32s(buf, 0, u.Width, u.Height)
	common.PutFloat32s(buf, 8, u._pad[:]...)
	return buf
}
