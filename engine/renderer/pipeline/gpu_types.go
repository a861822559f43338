package pipeline

import _ "embed"

// GPUVertexSource is the WGSL definition of the VertexInput struct matching Vertex and VertexLayout.
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string
