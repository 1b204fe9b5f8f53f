package scene

import (
	"fmt"

	"github.com/achilleasa/pray/types"
)

const (
	DefaultFocalLength = 500.0

	// Focal length never drops below this value so projections stay finite.
	minFocalLength = 1.0
)

// The camera type controls the scene camera. Orientation is a set of Euler
// angles in radians; the Forward, Right and Up vectors are derived from it by
// UpdateDirection.
type Camera struct {
	Position    types.Vec3
	Orientation types.Vec3

	Forward types.Vec3
	Right   types.Vec3
	Up      types.Vec3

	// Distance from the eye to the virtual screen plane in pixels.
	FocalLength float32

	// Aperture radius; 0 disables depth of field.
	Aperture float32

	// Mouse look sensitivity.
	Sensitivity float32
}

// Create a camera at the given position and orientation.
func NewCamera(position, orientation types.Vec3) *Camera {
	c := &Camera{
		Position:    position,
		Orientation: orientation,
		FocalLength: DefaultFocalLength,
	}
	c.UpdateDirection()
	return c
}

// Wrap the orientation angles into [0, 2π] and recompute the direction vectors.
func (c *Camera) UpdateDirection() {
	c.Orientation = c.Orientation.NormAngles()
	inv := c.Orientation.Neg()
	c.Forward = types.ZAxis.Rev(inv)
	c.Right = types.XAxis.Rev(inv)
	c.Up = types.YAxis.Rev(inv)
}

// Express a world space point in the camera frame. The Z component of the
// result is the depth along the view direction.
func (c *Camera) PointRelative(point types.Vec3) types.Vec3 {
	return point.Sub(c.Position).Rot(c.Orientation)
}

// Get the direction of the ray passing through the bottom-left corner of the
// virtual screen for a frame of the given dimensions.
func (c *Camera) BottomLeftRay(frameW, frameH uint32) types.Vec3 {
	return c.Forward.Mul(c.FocalLength).
		Sub(c.Right.Mul(float32(frameW / 2))).
		Sub(c.Up.Mul(float32(frameH / 2)))
}

// Translate camera position along a direction.
func (c *Camera) Move(dir types.Vec3, amount float32) {
	c.Position = c.Position.Add(dir.Mul(amount))
}

// Adjust the focal length.
func (c *Camera) Zoom(delta float32) {
	c.FocalLength += delta
	if c.FocalLength < minFocalLength {
		c.FocalLength = minFocalLength
	}
}

func (c *Camera) String() string {
	return fmt.Sprintf(
		"Camera pos: (%3.3f, %3.3f, %3.3f) ori: (%3.3f, %3.3f, %3.3f) fwd: (%3.3f, %3.3f, %3.3f) foc: %3.1f",
		c.Position[0], c.Position[1], c.Position[2],
		c.Orientation[0], c.Orientation[1], c.Orientation[2],
		c.Forward[0], c.Forward[1], c.Forward[2],
		c.FocalLength,
	)
}
