package tracer

import "fmt"

// An inclusive rectangle of pixel coordinates.
type Rect struct {
	X0, Y0 int
	X1, Y1 int
}

// Create a rect covering a full frame.
func FrameRect(frameW, frameH int) Rect {
	return Rect{0, 0, frameW - 1, frameH - 1}
}

// Get rect width in pixels.
func (r Rect) Width() int {
	return r.X1 - r.X0 + 1
}

// Get rect height in pixels.
func (r Rect) Height() int {
	return r.Y1 - r.Y0 + 1
}

// Get number of covered pixels.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width() * r.Height()
}

// Returns true if the rect covers no pixels.
func (r Rect) Empty() bool {
	return r.X1 < r.X0 || r.Y1 < r.Y0
}

// Return the intersection of two rects.
func (r Rect) Intersect(o Rect) Rect {
	out := r
	if o.X0 > out.X0 {
		out.X0 = o.X0
	}
	if o.Y0 > out.Y0 {
		out.Y0 = o.Y0
	}
	if o.X1 < out.X1 {
		out.X1 = o.X1
	}
	if o.Y1 < out.Y1 {
		out.Y1 = o.Y1
	}
	return out
}

// Returns true if o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X0 >= r.X0 && o.Y0 >= r.Y0 && o.X1 <= r.X1 && o.Y1 <= r.Y1
}

// Implements Stringer.
func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d]-[%d,%d] (%dx%d)", r.X0, r.Y0, r.X1, r.Y1, r.Width(), r.Height())
}
