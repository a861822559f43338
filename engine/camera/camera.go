package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-lite/common"
	"github.com/Carmen-Shannon/oxy-lite/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultTranslationSpeed is the distance moved per tick while a movement key is held.
	DefaultTranslationSpeed float32 = 0.05

	// DefaultRotationSpeed scales screen-space pointer delta into radians.
	DefaultRotationSpeed float32 = 1.0

	defaultFov  = float32(math.Pi / 4)
	defaultNear = 1.0
	defaultFar  = 100.0
)

// axisEpsilon is the minimum right-axis length for which pitch is applied.
const axisEpsilon = 1e-6

type cameraImpl struct {
	mu *sync.Mutex

	position  mgl32.Vec3
	direction mgl32.Vec3

	translationSpeed float32
	rotationSpeed    float32
	renormalize      bool

	fov, aspect, near, far float32

	projectionInverse mgl32.Mat4
	viewInverse       mgl32.Mat4
	uniform           CameraUniform
}

// Camera is a free-fly camera driven by per-frame input snapshots. It is updated once per
// tick by the loop and read by the renderer.
type Camera interface {
	// Tick applies one tick of movement and rotation from in, then refreshes the view-inverse
	// matrix and the cached uniform.
	//
	// Movement resolves opposing keys by priority: forward over back, left over right, and
	// down over up. Rotation is applied only while in.RotateEnabled is set.
	//
	// Parameters:
	//   - in: the input snapshot for this tick
	Tick(in input.Snapshot)

	// Position returns the camera position in world space.
	Position() mgl32.Vec3

	// Direction returns the forward direction.
	Direction() mgl32.Vec3

	// ProjectionInverse returns the inverse projection matrix fixed at construction.
	ProjectionInverse() mgl32.Mat4

	// ViewInverse returns the inverse view matrix as of the last Tick.
	ViewInverse() mgl32.Mat4

	// Uniform returns the cached GPU uniform as of the last Tick.
	//
	// Returns:
	//   - CameraUniform: the uniform ready for Marshal
	Uniform() CameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera at (0, 0, 3) looking down -Z with a 45 degree, 1:1 perspective
// over the depth range 1 to 100. The projection is inverted once here and never recomputed.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:               &sync.Mutex{},
		position:         mgl32.Vec3{0, 0, 3},
		direction:        mgl32.Vec3{0, 0, -1},
		translationSpeed: DefaultTranslationSpeed,
		rotationSpeed:    DefaultRotationSpeed,
		renormalize:      true,
		fov:              defaultFov,
		aspect:           1.0,
		near:             defaultNear,
		far:              defaultFar,
	}
	for _, option := range options {
		option(c)
	}
	c.projectionInverse = common.PerspectiveInverse(c.fov, c.aspect, c.near, c.far)
	c.refresh()
	return c
}

func (c *cameraImpl) Tick(in input.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	up := common.WorldUp
	right := c.direction.Cross(up)
	if l := right.Len(); l > axisEpsilon {
		right = right.Mul(1 / l)
	}

	if in.Forward {
		c.position = c.position.Add(c.direction.Mul(c.translationSpeed))
	} else if in.Back {
		c.position = c.position.Sub(c.direction.Mul(c.translationSpeed))
	}
	if in.Left {
		c.position = c.position.Sub(right.Mul(c.translationSpeed))
	} else if in.Right {
		c.position = c.position.Add(right.Mul(c.translationSpeed))
	}
	if in.Down {
		c.position = c.position.Sub(up.Mul(c.translationSpeed))
	} else if in.Up {
		c.position = c.position.Add(up.Mul(c.translationSpeed))
	}

	if in.RotateEnabled {
		pitch := in.Delta.Y() * c.rotationSpeed
		yaw := in.Delta.X() * c.rotationSpeed

		rotation := mgl32.QuatRotate(-yaw, up).Normalize()
		if right.Len() > axisEpsilon {
			rotation = mgl32.QuatRotate(-pitch, right).Mul(rotation)
		}
		c.direction = rotation.Rotate(c.direction)
	}
	if c.renormalize && c.direction.Len() > axisEpsilon {
		c.direction = c.direction.Normalize()
	}

	c.refresh()
}

// refresh recomputes the view-inverse and the cached uniform. Caller holds the mutex or owns c.
func (c *cameraImpl) refresh() {
	c.viewInverse = common.LookTo(c.position, c.direction, common.WorldUp).Inv()
	c.uniform = NewCameraUniform(c.position, c.projectionInverse, c.viewInverse)
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Direction() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction
}

func (c *cameraImpl) ProjectionInverse() mgl32.Mat4 {
	return c.projectionInverse
}

func (c *cameraImpl) ViewInverse() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewInverse
}

func (c *cameraImpl) Uniform() CameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uniform
}
