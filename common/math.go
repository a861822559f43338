package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldUp is the fixed world-space up axis.
var WorldUp = mgl32.Vec3{0, 1, 0}

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Perspective creates a right-handed perspective projection matrix.
// Depth is mapped to the WebGPU clip space range [0, 1], which is why mgl32.Perspective
// (OpenGL [-1, 1] depth) is not used here.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// PerspectiveInverse returns the inverse of the Perspective matrix for the given parameters.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance
//   - far: far clipping plane distance
//
// Returns:
//   - mgl32.Mat4: the inverse projection matrix
func PerspectiveInverse(fovY, aspect, near, far float32) mgl32.Mat4 {
	var proj mgl32.Mat4
	Perspective(proj[:], fovY, aspect, near, far)
	return proj.Inv()
}

// LookTo creates a right-handed view matrix for a camera at eye facing along dir.
//
// Parameters:
//   - eye: camera position in world space
//   - dir: viewing direction (need not be unit length)
//   - up: up vector defining camera orientation
//
// Returns:
//   - mgl32.Mat4: the world-to-view matrix
func LookTo(eye, dir, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, eye.Add(dir), up)
}

// ScreenSpace maps a window pixel position to normalized screen coordinates in [-1, 1],
// with +y pointing up. A zero width or height maps the axis to 0.
//
// Parameters:
//   - x, y: position in window pixels (origin top-left)
//   - width, height: window size in pixels
//
// Returns:
//   - mgl32.Vec2: the normalized position
func ScreenSpace(x, y, width, height float32) mgl32.Vec2 {
	var out mgl32.Vec2
	if width > 0 {
		out[0] = 2*x/width - 1
	}
	if height > 0 {
		out[1] = 1 - 2*y/height
	}
	return out
}
