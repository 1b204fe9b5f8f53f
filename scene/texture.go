package scene

import (
	"github.com/achilleasa/pray/tracer"
	"github.com/achilleasa/pray/types"
)

// Dimensions of a texture surface.
type SurfInfo struct {
	Layers uint32
	Height uint32
	Width  uint32
	Count  uint32
}

// Serialize the 16 byte SurfInfo block.
func (si SurfInfo) Marshal() []byte {
	out := make([]byte, SurfInfoSize)
	putU32(out, 0, si.Layers)
	putU32(out, 4, si.Height)
	putU32(out, 8, si.Width)
	putU32(out, 12, si.Count)
	return out
}

// A color surface. Row 0 is the bottom row of the source image.
type Surface struct {
	SurfInfo
	Colors []Color
}

// Serialize colors in b, g, r, a order.
func (s *Surface) Marshal() []byte {
	out := make([]byte, len(s.Colors)*ColorSize)
	for i, c := range s.Colors {
		out[i*4] = c.B
		out[i*4+1] = c.G
		out[i*4+2] = c.R
		out[i*4+3] = c.A
	}
	return out
}

// A normal map surface with vectors in [-1, 1].
type NormalMap struct {
	SurfInfo
	Vectors []types.Vec3
}

// Serialize vectors as a float3 array.
func (nm *NormalMap) Marshal() []byte {
	return MarshalVec3s(nm.Vectors)
}

// A single texture LoD entry.
type Texture struct {
	ID        string
	Index     uint32
	Surface   Surface
	NormalMap *NormalMap

	// Device copies; populated by the resource manager.
	Buffers tracer.TextureBuffers
}

// An ordered list of texture LoD entries; entry 0 has the highest detail.
type TextureChain struct {
	ID    string
	Index uint32
	LoDs  []*Texture
}

// Release device buffers of all entries in reverse order.
func (tc *TextureChain) Release() {
	for i := len(tc.LoDs) - 1; i >= 0; i-- {
		tc.LoDs[i].Buffers.Release()
	}
}
