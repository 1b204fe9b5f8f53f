package tracer

import (
	"errors"
	"fmt"
)

const (
	// Work group sizes are multiples of this value.
	workGroupStep = 64

	// Largest multiplier tried when searching for a work group size.
	maxWorkGroupSteps = 64
)

var ErrIncompatibleResolution = errors.New("tracer: incompatible resolution")

// Select the local work group size for a frame. The selected size is the largest
// multiple of 64 (up to 64*64) that does not exceed the device limit and evenly
// divides the frame pixel count.
func LocalWorkSize(frameW, frameH, maxGroupSize int) (int, error) {
	pixelCount := frameW * frameH
	if pixelCount > 0 {
		for k := maxWorkGroupSteps; k > 0; k-- {
			n := k * workGroupStep
			if n <= maxGroupSize && pixelCount%n == 0 {
				return n, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: %dx%d (device max work group size %d)", ErrIncompatibleResolution, frameW, frameH, maxGroupSize)
}

// Split a work group size into a 2D shape whose sides evenly divide the frame
// dimensions. Wider shapes are preferred. The last return value is false when
// no such split exists.
func WorkGroupShape(size, frameW, frameH int) (int, int, bool) {
	for lx := size; lx > 0; lx-- {
		if size%lx != 0 || frameW%lx != 0 {
			continue
		}
		if ly := size / lx; frameH%ly == 0 {
			return lx, ly, true
		}
	}
	return 0, 0, false
}
