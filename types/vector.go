package types

import (
	"math"

	"golang.org/x/image/math/f32"
)

const (
	floatCmpEpsilon = 1e-6

	// TwoPi bounds the canonical range of an Euler angle.
	TwoPi = 2 * math.Pi
)

type Vec2 f32.Vec2
type Vec3 f32.Vec3

// Canonical axis vectors.
var (
	XAxis = Vec3{1, 0, 0}
	YAxis = Vec3{0, 1, 0}
	ZAxis = Vec3{0, 0, 1}
)

// Define a 2 component vector.
func XY(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Define a 3 component vector.
func XYZ(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Add a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Subtract a vector.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Multiply a 3 component vector with a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Negate all components.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Add a scalar to every component.
func (v Vec3) AddScalar(s float32) Vec3 {
	return Vec3{v[0] + s, v[1] + s, v[2] + s}
}

// Get 3 component vector length.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}

// Get the distance between two points.
func (v Vec3) Dist(v2 Vec3) float32 {
	return v.Sub(v2).Len()
}

// Normalize 3 component vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < floatCmpEpsilon {
		return Vec3{}
	}
	return v.Mul(1.0 / l)
}

// Calculate dot product of 2 vectors
func (v Vec3) Dot(v2 Vec3) float32 {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Calculate cross product of 2 vectors.
func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{v[1]*v2[2] - v[2]*v2[1], v[2]*v2[0] - v[0]*v2[2], v[0]*v2[1] - v[1]*v2[0]}
}

// Clamp every component to the [lo, hi] range.
func (v Vec3) Clamp(lo, hi float32) Vec3 {
	for i := range v {
		if v[i] < lo {
			v[i] = lo
		} else if v[i] > hi {
			v[i] = hi
		}
	}
	return v
}

// Rotate around the X axis.
func (v Vec3) RotX(angle float32) Vec3 {
	s, c := sincos(angle)
	return Vec3{v[0], v[2]*s + v[1]*c, v[2]*c - v[1]*s}
}

// Rotate around the Y axis.
func (v Vec3) RotY(angle float32) Vec3 {
	s, c := sincos(angle)
	return Vec3{v[2]*s + v[0]*c, v[1], v[2]*c - v[0]*s}
}

// Rotate around the Z axis.
func (v Vec3) RotZ(angle float32) Vec3 {
	s, c := sincos(angle)
	return Vec3{v[0]*c - v[1]*s, v[0]*s + v[1]*c, v[2]}
}

// Rotate by a set of Euler angles applying the Y, Z and X rotations in that
// order. This maps world space into the frame described by the angles.
func (v Vec3) Rot(angles Vec3) Vec3 {
	return v.RotY(angles[1]).RotZ(angles[2]).RotX(angles[0])
}

// Apply the Euler rotations in reverse order (X, Z and then Y).
func (v Vec3) Rev(angles Vec3) Vec3 {
	return v.RotX(angles[0]).RotZ(angles[2]).RotY(angles[1])
}

// Wrap each Euler angle into the [0, 2π] range.
func (v Vec3) NormAngles() Vec3 {
	return Vec3{NormAngle(v[0]), NormAngle(v[1]), NormAngle(v[2])}
}

// Wrap an angle into the [0, 2π] range.
func NormAngle(angle float32) float32 {
	for angle < 0 {
		angle += TwoPi
	}
	for angle > TwoPi {
		angle -= TwoPi
	}
	return angle
}

func sincos(angle float32) (float32, float32) {
	s, c := math.Sincos(float64(angle))
	return float32(s), float32(c)
}
