package renderer

import (
	"fmt"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestSurfaceTextureMissing(t *testing.T) {
	tests := []struct {
		name string
		tex  *wgpu.Texture
	}{
		{"nil texture", nil},
		{"null native handle", &wgpu.Texture{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !surfaceTextureMissing(tt.tex) {
				t.Fatal("surfaceTextureMissing = false, want true")
			}
		})
	}
}

func TestMissingSurfaceTextureSkipsAndReconfigures(t *testing.T) {
	backend := newFakeBackend()
	backend.acquireErr = []error{fmt.Errorf("%w: surface returned no texture", ErrSurfaceOutdated)}
	r := NewRenderer(backend)

	if err := r.RenderFrame(testFrame()); err != nil {
		t.Fatalf("RenderFrame = %v, want the frame skipped", err)
	}
	if backend.count("submit") != 0 {
		t.Fatalf("calls = %v, want no submit for the missing texture", backend.calls)
	}
	if err := r.RenderFrame(testFrame()); err != nil {
		t.Fatal(err)
	}
	if backend.count("resize 800x600") != 1 {
		t.Fatalf("calls = %v, want a reconfigure at the current size", backend.calls)
	}
}
