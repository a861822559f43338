package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/Carmen-Shannon/oxy-lite/engine/renderer/pipeline"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const panelPadding = 6

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 16, A: 200}
	titleColor      = color.RGBA{R: 255, G: 200, B: 80, A: 255}
	labelColor      = color.White
)

// Rasterize draws a titled text panel into an image. Each line is one row of the fixed 7x13
// face; scale enlarges the result by nearest-neighbour sampling.
//
// Parameters:
//   - title: the heading row; empty omits it
//   - lines: the label rows
//   - scale: the integer magnification, values below 1 are treated as 1
//
// Returns:
//   - *image.RGBA: the panel with premultiplied alpha
func Rasterize(title string, lines []string, scale int) *image.RGBA {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	type row struct {
		text string
		col  color.Color
	}
	rows := make([]row, 0, len(lines)+1)
	if title != "" {
		rows = append(rows, row{title, titleColor})
	}
	for _, l := range lines {
		rows = append(rows, row{l, labelColor})
	}

	width := 0
	for _, r := range rows {
		width = max(width, font.MeasureString(face, r.text).Ceil())
	}
	width += 2 * panelPadding
	height := len(rows)*lineHeight + 2*panelPadding

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(panelBackground), image.Point{}, draw.Src)

	for i, r := range rows {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(r.col),
			Face: face,
			Dot:  fixed.P(panelPadding, panelPadding+ascent+i*lineHeight),
		}
		d.DrawString(r.text)
	}

	if scale <= 1 {
		return img
	}
	scaled := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return scaled
}

// QuadVertices returns the four corners of a screen-space rectangle in clip space, with the
// texture coordinate in the color attribute. Order is top-left, bottom-left, bottom-right,
// top-right.
//
// Parameters:
//   - x, y: top-left corner in pixels from the window's top-left
//   - w, h: size in pixels
//   - screenWidth, screenHeight: the surface size in pixels
//
// Returns:
//   - [4]pipeline.Vertex: the quad corners
func QuadVertices(x, y, w, h float32, screenWidth, screenHeight uint32) [4]pipeline.Vertex {
	sw, sh := float32(screenWidth), float32(screenHeight)
	if sw == 0 || sh == 0 {
		return [4]pipeline.Vertex{}
	}
	left := 2*x/sw - 1
	right := 2*(x+w)/sw - 1
	top := 1 - 2*y/sh
	bottom := 1 - 2*(y+h)/sh

	return [4]pipeline.Vertex{
		{Position: [3]float32{left, top, 0}, Color: [3]float32{0, 0, 0}},
		{Position: [3]float32{left, bottom, 0}, Color: [3]float32{0, 1, 0}},
		{Position: [3]float32{right, bottom, 0}, Color: [3]float32{1, 1, 0}},
		{Position: [3]float32{right, top, 0}, Color: [3]float32{1, 0, 0}},
	}
}

// quadIndices draws QuadVertices as two triangles.
var quadIndices = []uint16{0, 1, 2, 0, 2, 3}
