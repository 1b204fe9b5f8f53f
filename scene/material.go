package scene

import "github.com/achilleasa/pray/types"

// Defines a scene material.
type Material struct {
	Ambient      types.Vec3
	Diffuse      types.Vec3
	Specular     types.Vec3
	Shininess    float32
	Glossiness   float32
	Reflectivity float32
	Transparency float32
}

// A named material table.
type MaterialSet struct {
	Names     []string
	Materials []Material
}

// Append a material.
func (ms *MaterialSet) Add(name string, m Material) {
	ms.Names = append(ms.Names, name)
	ms.Materials = append(ms.Materials, m)
}

// Get material index by name or -1 if not found.
func (ms *MaterialSet) IndexByName(name string) int32 {
	for i, n := range ms.Names {
		if n == name {
			return int32(i)
		}
	}
	return -1
}

// Get the number of materials.
func (ms *MaterialSet) Len() int {
	return len(ms.Materials)
}

// Serialize the material table as packed 64 byte entries.
func (ms *MaterialSet) Marshal() []byte {
	out := make([]byte, len(ms.Materials)*MaterialSize)
	for i, m := range ms.Materials {
		off := i * MaterialSize
		putVec3(out, off, m.Ambient)
		putVec3(out, off+16, m.Diffuse)
		putVec3(out, off+32, m.Specular)
		putF32(out, off+48, m.Shininess)
		putF32(out, off+52, m.Glossiness)
		putF32(out, off+56, m.Reflectivity)
		putF32(out, off+60, m.Transparency)
	}
	return out
}
