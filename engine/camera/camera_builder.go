package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraBuilderOption is a functional option for configuring a Camera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the starting position.
//
// Parameters:
//   - position: the world-space position
//
// Returns:
//   - CameraBuilderOption: a function that sets the position
func WithPosition(position mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
	}
}

// WithDirection sets the starting forward direction. A zero vector is ignored.
//
// Parameters:
//   - direction: the forward direction
//
// Returns:
//   - CameraBuilderOption: a function that sets the direction
func WithDirection(direction mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		if direction.Len() > axisEpsilon {
			c.direction = direction
		}
	}
}

// WithTranslationSpeed sets the distance moved per tick. Non-positive values keep the default.
//
// Parameters:
//   - speed: world units per tick
//
// Returns:
//   - CameraBuilderOption: a function that sets the translation speed
func WithTranslationSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if speed > 0 {
			c.translationSpeed = speed
		}
	}
}

// WithRotationSpeed sets the pointer-delta to radians factor. Non-positive values keep the default.
//
// Parameters:
//   - speed: radians per unit of screen-space delta
//
// Returns:
//   - CameraBuilderOption: a function that sets the rotation speed
func WithRotationSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if speed > 0 {
			c.rotationSpeed = speed
		}
	}
}

// WithRenormalize controls whether the forward direction is renormalized after every tick.
// With it disabled the direction may drift from unit length as rotations accumulate.
//
// Parameters:
//   - renormalize: true to renormalize each tick
//
// Returns:
//   - CameraBuilderOption: a function that sets renormalization
func WithRenormalize(renormalize bool) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.renormalize = renormalize
	}
}

// WithPerspective overrides the projection parameters. The projection is fixed after construction.
//
// Parameters:
//   - fov: vertical field of view in radians
//   - aspect: width over height
//   - near, far: clipping plane distances
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection
func WithPerspective(fov, aspect, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov, c.aspect, c.near, c.far = fov, aspect, near, far
	}
}
