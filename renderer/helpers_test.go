package renderer

import (
	"encoding/binary"
	"math"
)

func u32At(data []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(data[off:])
}

func f32At(data []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
}

func approxEq(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}
