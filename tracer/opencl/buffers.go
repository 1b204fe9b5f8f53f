package opencl

import (
	"github.com/achilleasa/pray/tracer/opencl/device"
)

// Size of buffer elements in bytes.
const (
	sizeofPixel        = 4
	sizeofRay          = 16
	sizeofColor        = 4
	sizeofIntersection = 32
)

// The per-frame device buffers. They are sized once from the frame
// dimensions, the AA level and the transparency depth.
type bufferSet struct {
	// Final pixel colors backing the shared surface.
	Pixels *device.Buffer

	// Ray directions; one per pixel and AA sub-ray.
	Rays *device.Buffer

	// Nearest intersection per ray and transparency layer.
	Intersections *device.Buffer

	// Running color per ray and transparency layer.
	Colors *device.Buffer

	// Scene material table.
	Materials *device.Buffer
}

// Allocate new buffer set.
func newBufferSet(dev *device.Device) *bufferSet {
	return &bufferSet{
		Pixels:        dev.Buffer("pixels"),
		Rays:          dev.Buffer("rays"),
		Intersections: dev.Buffer("intersections"),
		Colors:        dev.Buffer("colors"),
		Materials:     dev.Buffer("materials"),
	}
}

// Allocate the frame buffers.
func (bs *bufferSet) Allocate(pixelCount, aaLevel, transDepth int) error {
	rayCount := pixelCount * aaLevel

	var err error
	if err = bs.Pixels.Allocate(sizeofPixel*pixelCount, device.ReadWrite); err != nil {
		return err
	}
	if err = bs.Rays.Allocate(sizeofRay*rayCount, device.ReadWrite); err != nil {
		return err
	}
	if err = bs.Colors.Allocate(sizeofColor*rayCount*transDepth, device.ReadWrite); err != nil {
		return err
	}
	return bs.Intersections.Allocate(sizeofIntersection*rayCount*transDepth, device.ReadWrite)
}

// Release all buffers in reverse allocation order.
func (bs *bufferSet) Release() {
	bs.Materials.Release()
	bs.Intersections.Release()
	bs.Colors.Release()
	bs.Rays.Release()
	bs.Pixels.Release()
}
