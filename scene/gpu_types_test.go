package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/achilleasa/pray/tracer"
	"github.com/achilleasa/pray/types"
)

func f32At(data []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
}

func TestTriangleLayout(t *testing.T) {
	tri := NewTriangle()
	tri.Vertices = [3]uint32{1, 2, 3}
	tri.Normals = [3]uint32{4, 0, 0}
	tri.UpdateTex(5, -1, [3]types.Vec2{{0, 0}, {1, 0}, {0.5, 1}})

	m := &Mesh{Triangles: []Triangle{NewTriangle(), tri}}
	data := m.MarshalTriangles()
	if len(data) != 2*TriangleSize {
		t.Fatalf("expected %d bytes; got %d", 2*TriangleSize, len(data))
	}

	entry := data[TriangleSize:]
	if f32At(entry, 16) != 0.5 || f32At(entry, 20) != 1 {
		t.Fatalf("expected third uv (0.5, 1); got (%f, %f)", f32At(entry, 16), f32At(entry, 20))
	}
	if binary.LittleEndian.Uint32(entry[32:]) != 3 || binary.LittleEndian.Uint32(entry[36:]) != 4 {
		t.Fatal("unexpected vertex/normal index layout")
	}
	if int32(binary.LittleEndian.Uint32(entry[52:])) != -1 {
		t.Fatal("expected unknown material to be encoded as -1")
	}
	if binary.LittleEndian.Uint32(entry[60:]) != uint32(FlatTriangle) {
		t.Fatal("expected default triangle type to be flat")
	}
}

func TestMeshInfoLayout(t *testing.T) {
	m := &Mesh{
		Vertices:  make([]types.Vec3, 3),
		Normals:   make([]types.Vec3, 1),
		Triangles: make([]Triangle, 2),
		Center:    types.Vec3{1, 2, 3},
		Radius:    4,
	}

	data := m.MarshalInfo()
	if len(data) != MeshInfoSize {
		t.Fatalf("expected %d bytes; got %d", MeshInfoSize, len(data))
	}
	if binary.LittleEndian.Uint32(data[0:]) != 2 || binary.LittleEndian.Uint32(data[4:]) != 3 || binary.LittleEndian.Uint32(data[8:]) != 1 {
		t.Fatal("expected counts in triangle, vertex, normal order")
	}
	if f32At(data, 12) != 4 || f32At(data, 20) != 2 {
		t.Fatal("unexpected radius/center layout")
	}
}

func TestMaterialSet(t *testing.T) {
	var ms MaterialSet
	ms.Add("stone", Material{Diffuse: types.Vec3{0.5, 0.5, 0.5}})
	ms.Add("glass", Material{Transparency: 0.9})

	if ms.IndexByName("glass") != 1 || ms.IndexByName("wood") != -1 {
		t.Fatal("unexpected material index lookup")
	}

	data := ms.Marshal()
	if len(data) != 2*MaterialSize {
		t.Fatalf("expected %d bytes; got %d", 2*MaterialSize, len(data))
	}
	if f32At(data, 16) != 0.5 {
		t.Fatalf("expected diffuse.r at offset 16; got %f", f32At(data, 16))
	}
	if f32At(data, MaterialSize+60) != 0.9 {
		t.Fatalf("expected transparency at offset 60; got %f", f32At(data, MaterialSize+60))
	}
}

func TestSurfaceByteOrder(t *testing.T) {
	s := Surface{
		SurfInfo: SurfInfo{Layers: 1, Width: 1, Height: 1, Count: 1},
		Colors:   []Color{{R: 1, G: 2, B: 3, A: 4}},
	}

	data := s.Marshal()
	if data[0] != 3 || data[1] != 2 || data[2] != 1 || data[3] != 4 {
		t.Fatalf("expected b, g, r, a byte order; got %v", data)
	}

	info := s.SurfInfo.Marshal()
	if len(info) != SurfInfoSize || binary.LittleEndian.Uint32(info[0:]) != 1 {
		t.Fatalf("unexpected SurfInfo encoding %v", info)
	}
}

type releaseCounter struct {
	name  string
	order *[]string
}

func (r *releaseCounter) Name() string { return r.name }
func (r *releaseCounter) Size() int { return 0 }
func (r *releaseCounter) Release() { *r.order = append(*r.order, r.name) }

func TestChainReleaseOrder(t *testing.T) {
	var order []string
	buf := func(name string) tracer.Buffer { return &releaseCounter{name, &order} }

	chain := &MeshChain{LoDs: []*Mesh{
		{Buffers: tracer.MeshBuffers{Vertices: buf("v0"), Normals: buf("n0"), Triangles: buf("t0")}},
		{Buffers: tracer.MeshBuffers{Vertices: buf("v1"), Triangles: buf("t1")}},
	}}

	chain.Release()
	chain.Release()

	exp := []string{"t1", "v1", "t0", "n0", "v0"}
	if len(order) != len(exp) {
		t.Fatalf("expected buffers to be released exactly once %v; got %v", exp, order)
	}
	for i := range exp {
		if order[i] != exp[i] {
			t.Fatalf("expected release order %v; got %v", exp, order)
		}
	}
}
