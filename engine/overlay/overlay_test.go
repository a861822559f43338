package overlay

import (
	"image/color"
	"testing"

	"github.com/Carmen-Shannon/oxy-lite/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/font/basicfont"
)

func TestRasterizeSize(t *testing.T) {
	lineHeight := basicfont.Face7x13.Metrics().Height.Ceil()

	img := Rasterize("Stats", []string{"Frametime: 16ms"}, 1)
	b := img.Bounds()
	wantHeight := 2*lineHeight + 2*panelPadding
	if b.Dy() != wantHeight {
		t.Errorf("height = %d, want %d", b.Dy(), wantHeight)
	}
	// the fixed face advances 7 pixels per glyph
	wantWidth := 7*len("Frametime: 16ms") + 2*panelPadding
	if b.Dx() != wantWidth {
		t.Errorf("width = %d, want %d", b.Dx(), wantWidth)
	}
}

func TestRasterizeWithoutTitle(t *testing.T) {
	lineHeight := basicfont.Face7x13.Metrics().Height.Ceil()

	img := Rasterize("", []string{"a", "b", "c"}, 1)
	if got, want := img.Bounds().Dy(), 3*lineHeight+2*panelPadding; got != want {
		t.Errorf("height = %d, want %d", got, want)
	}
}

func TestRasterizeBackground(t *testing.T) {
	img := Rasterize("Stats", []string{"x"}, 1)
	got := img.RGBAAt(0, 0)
	if got != panelBackground {
		t.Errorf("corner pixel = %v, want %v", got, panelBackground)
	}
}

func TestRasterizeDrawsText(t *testing.T) {
	img := Rasterize("", []string{"MMMM"}, 1)
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no white glyph pixels in the panel")
	}
}

func TestRasterizeScale(t *testing.T) {
	base := Rasterize("Stats", []string{"line"}, 1).Bounds()

	tests := []struct {
		name  string
		scale int
		mul   int
	}{
		{"zero", 0, 1},
		{"one", 1, 1},
		{"three", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Rasterize("Stats", []string{"line"}, tt.scale).Bounds()
			if b.Dx() != base.Dx()*tt.mul || b.Dy() != base.Dy()*tt.mul {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), base.Dx()*tt.mul, base.Dy()*tt.mul)
			}
		})
	}
}

func TestQuadVertices(t *testing.T) {
	v := QuadVertices(0, 0, 400, 200, 800, 800)

	want := [4][3]float32{
		{-1, 1, 0},
		{-1, 0.5, 0},
		{0, 0.5, 0},
		{0, 1, 0},
	}
	for i := range v {
		if v[i].Position != want[i] {
			t.Errorf("vertex %d position = %v, want %v", i, v[i].Position, want[i])
		}
	}

	uv := [4][3]float32{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}}
	for i := range v {
		if v[i].Color != uv[i] {
			t.Errorf("vertex %d uv = %v, want %v", i, v[i].Color, uv[i])
		}
	}
}

func TestQuadVerticesZeroSurface(t *testing.T) {
	if v := QuadVertices(0, 0, 10, 10, 0, 600); v != ([4]pipeline.Vertex{}) {
		t.Errorf("expected zero quad, got %v", v)
	}
}

func TestQuadIndicesInRange(t *testing.T) {
	if len(quadIndices) != 6 {
		t.Fatalf("len = %d, want 6", len(quadIndices))
	}
	for _, i := range quadIndices {
		if i > 3 {
			t.Errorf("index %d out of range", i)
		}
	}
}

func TestPassDescriptorLoadsExistingColor(t *testing.T) {
	view := &wgpu.TextureView{}
	desc := PassDescriptor(view)

	if desc.Label != overlayPassLabel {
		t.Errorf("label = %q, want %q", desc.Label, overlayPassLabel)
	}
	if len(desc.ColorAttachments) != 1 {
		t.Fatalf("attachments = %d, want 1", len(desc.ColorAttachments))
	}
	att := desc.ColorAttachments[0]
	if att.View != view {
		t.Error("attachment view is not the frame view")
	}
	if att.LoadOp != wgpu.LoadOpLoad {
		t.Errorf("load op = %v, want Load", att.LoadOp)
	}
	if att.StoreOp != wgpu.StoreOpStore {
		t.Errorf("store op = %v, want Store", att.StoreOp)
	}
	if desc.DepthStencilAttachment != nil {
		t.Error("overlay pass must not carry a depth attachment")
	}
}

func TestPanelCollectsLabels(t *testing.T) {
	p := &panel{}
	var ui UI = p
	ui.Label("one")
	ui.Label("two")
	if len(p.lines) != 2 || p.lines[0] != "one" || p.lines[1] != "two" {
		t.Errorf("lines = %v", p.lines)
	}
}
