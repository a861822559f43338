package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-lite/common"
	"github.com/Carmen-Shannon/oxy-lite/engine/input"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func TestForwardTicks(t *testing.T) {
	c := NewCamera()
	start := c.Position()
	dir := c.Direction()

	const n = 20
	for range n {
		c.Tick(input.Snapshot{Forward: true})
	}

	want := start.Add(dir.Mul(n * DefaultTranslationSpeed))
	if got := c.Position(); !got.ApproxEqualThreshold(want, eps) {
		t.Fatalf("position = %v, want %v", got, want)
	}
	if got := c.Direction(); !got.ApproxEqualThreshold(dir, eps) {
		t.Fatalf("direction changed without rotation input: %v", got)
	}
}

func TestOpposingKeysPriority(t *testing.T) {
	tests := []struct {
		name string
		both input.Snapshot
		one  input.Snapshot
	}{
		{"forward over back", input.Snapshot{Forward: true, Back: true}, input.Snapshot{Forward: true}},
		{"left over right", input.Snapshot{Left: true, Right: true}, input.Snapshot{Left: true}},
		{"down over up", input.Snapshot{Down: true, Up: true}, input.Snapshot{Down: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := NewCamera(), NewCamera()
			for range 5 {
				a.Tick(tt.both)
				b.Tick(tt.one)
			}
			if !a.Position().ApproxEqualThreshold(b.Position(), eps) {
				t.Fatalf("both keys moved to %v, single key to %v", a.Position(), b.Position())
			}
			if a.Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, 3}, eps) {
				t.Fatal("opposing keys cancelled out")
			}
		})
	}
}

func TestStrafeAndVertical(t *testing.T) {
	c := NewCamera()
	c.Tick(input.Snapshot{Right: true, Up: true})
	want := mgl32.Vec3{DefaultTranslationSpeed, DefaultTranslationSpeed, 3}
	if got := c.Position(); !got.ApproxEqualThreshold(want, eps) {
		t.Fatalf("position = %v, want %v", got, want)
	}
}

func TestRotationRequiresEnable(t *testing.T) {
	c := NewCamera()
	c.Tick(input.Snapshot{Delta: mgl32.Vec2{0.5, 0.25}})
	if got := c.Direction(); !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, eps) {
		t.Fatalf("direction rotated while disabled: %v", got)
	}
}

func TestYawTurnsRight(t *testing.T) {
	c := NewCamera()
	c.Tick(input.Snapshot{RotateEnabled: true, Delta: mgl32.Vec2{math.Pi / 2, 0}})
	if got := c.Direction(); !got.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, eps) {
		t.Fatalf("direction = %v, want {1 0 0}", got)
	}
}

func TestRenormalize(t *testing.T) {
	c := NewCamera(WithDirection(mgl32.Vec3{0, 0, -2}))
	c.Tick(input.Snapshot{RotateEnabled: true, Delta: mgl32.Vec2{0.01, 0.02}})
	for range 500 {
		c.Tick(input.Snapshot{RotateEnabled: true, Delta: mgl32.Vec2{0.013, -0.007}})
	}
	if l := c.Direction().Len(); math.Abs(float64(l)-1) > eps {
		t.Fatalf("direction length = %v, want 1", l)
	}

	drift := NewCamera(WithDirection(mgl32.Vec3{0, 0, -2}), WithRenormalize(false))
	drift.Tick(input.Snapshot{})
	if l := drift.Direction().Len(); math.Abs(float64(l)-2) > eps {
		t.Fatalf("direction length = %v, want 2 with renormalization off", l)
	}
}

func TestUniformFollowsTick(t *testing.T) {
	c := NewCamera(WithTranslationSpeed(0.5))
	c.Tick(input.Snapshot{Forward: true})

	u := c.Uniform()
	if !mgl32.Vec3(u.Position).ApproxEqualThreshold(c.Position(), eps) {
		t.Fatalf("uniform position = %v, camera at %v", u.Position, c.Position())
	}
	// the view inverse maps the view-space origin to the eye
	eye := u.ViewInverse.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if !eye.ApproxEqualThreshold(c.Position(), eps) {
		t.Fatalf("view inverse origin = %v, want %v", eye, c.Position())
	}
	if !u.ProjectionInverse.ApproxEqualThreshold(common.PerspectiveInverse(math.Pi/4, 1, 1, 100), eps) {
		t.Fatal("projection inverse does not match the fixed perspective")
	}
}

func TestCameraUniformLayout(t *testing.T) {
	u := NewCameraUniform(mgl32.Vec3{1, 2, 3}, mgl32.Ident4(), mgl32.Ident4())
	buf := u.Marshal()
	if len(buf) != CameraUniformSize {
		t.Fatalf("len = %d, want %d", len(buf), CameraUniformSize)
	}

	checks := []struct {
		offset int
		want   float32
	}{
		{0, 1}, {4, 2}, {8, 3},
		{12, 0},
		{16, 1}, {20, 0}, {16 + 5*4, 1}, {16 + 15*4, 1},
		{80, 1}, {84, 0}, {80 + 10*4, 1}, {80 + 15*4, 1},
	}
	for _, c := range checks {
		if got := common.Float32At(buf, c.offset); got != c.want {
			t.Errorf("offset %d = %v, want %v", c.offset, got, c.want)
		}
	}
}

func TestViewportUniformLayout(t *testing.T) {
	buf := NewViewportUniform(1280, 720).Marshal()
	if len(buf) != ViewportUniformSize {
		t.Fatalf("len = %d, want %d", len(buf), ViewportUniformSize)
	}
	if common.Float32At(buf, 0) != 1280 || common.Float32At(buf, 4) != 720 {
		t.Fatalf("size = %v x %v", common.Float32At(buf, 0), common.Float32At(buf, 4))
	}
}
