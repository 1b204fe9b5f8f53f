package scene

import (
	"github.com/achilleasa/pray/tracer"
	"github.com/achilleasa/pray/types"
)

type TriangleType uint32

const (
	SmoothTriangle TriangleType = iota
	FlatTriangle
)

// A mesh triangle. Flat triangles only use the first normal index.
type Triangle struct {
	TexMap   [3]types.Vec2
	Vertices [3]uint32
	Normals  [3]uint32
	TexIndex uint32
	MatIndex int32
	SubIndex uint32
	Type     TriangleType
}

// Create a flat triangle.
func NewTriangle() Triangle {
	return Triangle{Type: FlatTriangle}
}

// Assign texture coordinates, texture layer and material.
func (t *Triangle) UpdateTex(texIndex uint32, matIndex int32, uv [3]types.Vec2) {
	t.TexIndex = texIndex
	t.MatIndex = matIndex
	t.TexMap = uv
}

func (t *Triangle) marshalTo(out []byte) {
	for i := 0; i < 3; i++ {
		putVec2(out, i*8, t.TexMap[i])
		putU32(out, 24+i*4, t.Vertices[i])
		putU32(out, 36+i*4, t.Normals[i])
	}
	putU32(out, 48, t.TexIndex)
	putI32(out, 52, t.MatIndex)
	putU32(out, 56, t.SubIndex)
	putU32(out, 60, uint32(t.Type))
}

// A single mesh LoD entry.
type Mesh struct {
	ID        string
	Index     uint32
	Vertices  []types.Vec3
	Normals   []types.Vec3
	Triangles []Triangle
	Center    types.Vec3
	Radius    float32
	BoundBox  [8]types.Vec3

	// Device copies; populated by the resource manager.
	Buffers tracer.MeshBuffers
}

// Serialize the 32 byte MeshInfo block.
func (m *Mesh) MarshalInfo() []byte {
	out := make([]byte, MeshInfoSize)
	putU32(out, 0, uint32(len(m.Triangles)))
	putU32(out, 4, uint32(len(m.Vertices)))
	putU32(out, 8, uint32(len(m.Normals)))
	putF32(out, 12, m.Radius)
	putVec3(out, 16, m.Center)
	return out
}

// Serialize the triangle list.
func (m *Mesh) MarshalTriangles() []byte {
	out := make([]byte, len(m.Triangles)*TriangleSize)
	for i := range m.Triangles {
		m.Triangles[i].marshalTo(out[i*TriangleSize:])
	}
	return out
}

// An ordered list of mesh LoD entries; entry 0 has the highest detail.
type MeshChain struct {
	ID    string
	Index uint32
	LoDs  []*Mesh
}

// Release device buffers of all entries in reverse order.
func (mc *MeshChain) Release() {
	for i := len(mc.LoDs) - 1; i >= 0; i-- {
		mc.LoDs[i].Buffers.Release()
	}
}
