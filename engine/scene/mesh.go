package scene

import "github.com/Carmen-Shannon/oxy-lite/engine/renderer/pipeline"

// Mesh is indexed geometry uploaded once at startup.
type Mesh struct {
	Vertices []pipeline.Vertex
	Indices  []uint16
}

// QuadMesh covers the whole clip space with two triangles. The color is the tint the
// ray-march shader applies to hit voxels.
func QuadMesh() Mesh {
	return Mesh{
		Vertices: []pipeline.Vertex{
			{Position: [3]float32{-1, 1, 0}, Color: [3]float32{0.95, 0.75, 0.45}},
			{Position: [3]float32{-1, -1, 0}, Color: [3]float32{0.85, 0.55, 0.35}},
			{Position: [3]float32{1, -1, 0}, Color: [3]float32{0.55, 0.75, 0.95}},
			{Position: [3]float32{1, 1, 0}, Color: [3]float32{0.65, 0.85, 0.95}},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

// TriangleMesh is a single triangle with a red, a green and a blue corner. Draw it with
// TriangleShaderSource.
func TriangleMesh() Mesh {
	return Mesh{
		Vertices: []pipeline.Vertex{
			{Position: [3]float32{0, 0.5, 0}, Color: [3]float32{1, 0, 0}},
			{Position: [3]float32{-0.5, -0.5, 0}, Color: [3]float32{0, 1, 0}},
			{Position: [3]float32{0.5, -0.5, 0}, Color: [3]float32{0, 0, 1}},
		},
		Indices: []uint16{0, 1, 2},
	}
}

// indexCount returns the number of indices as a draw argument.
func (m Mesh) indexCount() uint32 {
	return uint32(len(m.Indices))
}

// indexBytes pads the index data to a multiple of 4 bytes as buffer writes require.
func (m Mesh) indexBytes() []uint16 {
	if len(m.Indices)%2 == 0 {
		return m.Indices
	}
	return append(append([]uint16(nil), m.Indices...), 0)
}
