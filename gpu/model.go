package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// ModelVertex is the interleaved vertex format of every model buffer.
// The tags drive VertexBufferLayout and must agree with the WGSL
// VertexInput structs.
type ModelVertex struct {
	Position  [3]float32 `gpu:"layout" format:"float32x3" location:"0"`
	TexCoords [2]float32 `gpu:"layout" format:"float32x2" location:"1"`
	Normal    [3]float32 `gpu:"layout" format:"float32x3" location:"2"`
}

// Mesh is an uploaded vertex/index buffer pair.
type Mesh struct {
	VertexBuffer *wgpu.Buffer
	IndexBuffer  *wgpu.Buffer
	IndexCount   uint32
}

// NewMesh uploads vertices and indices into device-local buffers.
func NewMesh(ctx Context, label string, vertices []ModelVertex, indices []uint16) (*Mesh, error) {
	vertexBuf, err := ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Vertex Buffer",
		Contents: wgpu.ToBytes(vertices),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, err
	}
	indexBuf, err := ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " Index Buffer",
		Contents: wgpu.ToBytes(indices),
		Usage:    wgpu.BufferUsageIndex,
	})
	if err != nil {
		return nil, err
	}
	return &Mesh{
		VertexBuffer: vertexBuf,
		IndexBuffer:  indexBuf,
		IndexCount:   uint32(len(indices)),
	}, nil
}

// Draw binds the mesh buffers and issues one indexed draw.
func (m *Mesh) Draw(pass *wgpu.RenderPassEncoder) {
	pass.SetVertexBuffer(0, m.VertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(m.IndexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(m.IndexCount, 1, 0, 0, 0)
}

// Release frees the mesh buffers.
func (m *Mesh) Release() {
	if m.IndexBuffer != nil {
		m.IndexBuffer.Release()
	}
	if m.VertexBuffer != nil {
		m.VertexBuffer.Release()
	}
}

// CubeVertices returns a unit cube centered at the origin with
// per-face normals. Paired with CubeIndices it serves as the marker
// mesh the light pass scales and draws at the light position.
func CubeVertices() []ModelVertex {
	const h = 0.5
	return []ModelVertex{
		// +Z
		{Position: [3]float32{-h, -h, h}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{h, -h, h}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{h, h, h}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, 0, 1}},
		{Position: [3]float32{-h, h, h}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{0, 0, 1}},
		// -Z
		{Position: [3]float32{h, -h, -h}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{-h, -h, -h}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{-h, h, -h}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, 0, -1}},
		{Position: [3]float32{h, h, -h}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{0, 0, -1}},
		// +X
		{Position: [3]float32{h, -h, h}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, -h, -h}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, h, -h}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{1, 0, 0}},
		{Position: [3]float32{h, h, h}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{1, 0, 0}},
		// -X
		{Position: [3]float32{-h, -h, -h}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, -h, h}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, h, h}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{-1, 0, 0}},
		{Position: [3]float32{-h, h, -h}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{-1, 0, 0}},
		// +Y
		{Position: [3]float32{-h, h, h}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, h, h}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{h, h, -h}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{-h, h, -h}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{0, 1, 0}},
		// -Y
		{Position: [3]float32{-h, -h, -h}, TexCoords: [2]float32{0, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{h, -h, -h}, TexCoords: [2]float32{1, 1}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{h, -h, h}, TexCoords: [2]float32{1, 0}, Normal: [3]float32{0, -1, 0}},
		{Position: [3]float32{-h, -h, h}, TexCoords: [2]float32{0, 0}, Normal: [3]float32{0, -1, 0}},
	}
}

// CubeIndices indexes CubeVertices as two triangles per face.
func CubeIndices() []uint16 {
	indices := make([]uint16, 0, 36)
	for face := uint16(0); face < 6; face++ {
		base := face * 4
		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}
	return indices
}
