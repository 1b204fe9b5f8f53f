package scene

import (
	"encoding/binary"
	"math"

	"github.com/achilleasa/pray/types"
)

// Device struct sizes in bytes.
const (
	ColorSize      = 4
	Float3Size     = 16
	MaterialSize   = 64
	TriangleSize   = 64
	SurfInfoSize   = 16
	MeshInfoSize   = 32
	ObjectInfoSize = 128
)

// Device float3 values are padded to 16 bytes; the pad lane is written as zero.
func putVec3(buf []byte, off int, v types.Vec3) {
	putF32(buf, off, v[0])
	putF32(buf, off+4, v[1])
	putF32(buf, off+8, v[2])
	putF32(buf, off+12, 0)
}

func putVec2(buf []byte, off int, v types.Vec2) {
	putF32(buf, off, v[0])
	putF32(buf, off+4, v[1])
}

func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
}

func putU32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:], v)
}

func putI32(buf []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(buf[off:], uint32(v))
}

// Pack a list of vectors into a float3 array.
func MarshalVec3s(list []types.Vec3) []byte {
	out := make([]byte, len(list)*Float3Size)
	for i, v := range list {
		putVec3(out, i*Float3Size, v)
	}
	return out
}
