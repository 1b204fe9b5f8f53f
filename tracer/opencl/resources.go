package opencl

import (
	"fmt"

	"github.com/achilleasa/pray/tracer"
	"github.com/achilleasa/pray/tracer/opencl/device"
)

// A container that stores handles to open CL kernels and any allocated device buffers.
type deviceResources struct {
	// The allocated device buffers.
	buffers *bufferSet

	// The set of kernels indexed by kernelType.
	kernels []*device.Kernel

	// Local work group size and its 2D split for full frame dispatches.
	localSize      int
	localX, localY int
}

// Using the supplied device as a target, load the kernel entry points and
// allocate the frame buffers.
func newDeviceResources(cfg Config, dev *device.Device) (*deviceResources, error) {
	var err error

	if dev == nil {
		return nil, fmt.Errorf("device_resources: invalid device handle")
	}

	dr := &deviceResources{
		buffers: newBufferSet(dev),
		kernels: make([]*device.Kernel, numKernels),
	}

	dr.localSize, err = tracer.LocalWorkSize(int(cfg.FrameW), int(cfg.FrameH), dev.MaxWorkGroupSize)
	if err != nil {
		return nil, err
	}
	dr.localX, dr.localY, _ = tracer.WorkGroupShape(dr.localSize, int(cfg.FrameW), int(cfg.FrameH))

	err = dr.buffers.Allocate(int(cfg.FrameW*cfg.FrameH), int(cfg.SubRays), int(cfg.TransparencyDepth))
	if err != nil {
		dr.Close()
		return nil, err
	}

	var kType kernelType
	for kType = 0; kType < numKernels; kType++ {
		name, err := kType.entryPoint(cfg.SubRays, cfg.TransparencyDepth)
		if err != nil {
			dr.Close()
			return nil, err
		}
		dr.kernels[kType], err = dev.Kernel(name)
		if err != nil {
			dr.Close()
			return nil, err
		}
	}

	return dr, nil
}

// Release all allocated resources.
func (dr *deviceResources) Close() {
	if dr.buffers != nil {
		dr.buffers.Release()
		dr.buffers = nil
	}

	if dr.kernels != nil {
		for _, kernel := range dr.kernels {
			if kernel != nil {
				kernel.Release()
			}
		}
		dr.kernels = nil
	}
}

// Get the local work group dimensions for a dispatch. Full frame dispatches
// use the 2D split of the local size. Other ranges use it, or a single row of
// the local size, only when it evenly divides them; otherwise the opencl
// implementation picks the split.
func (dr *deviceResources) workGroup(r tracer.Rect) (int, int) {
	w, h := r.Width(), r.Height()
	switch {
	case dr.localX > 0 && w%dr.localX == 0 && h%dr.localY == 0:
		return dr.localX, dr.localY
	case dr.localSize > 0 && w%dr.localSize == 0:
		return dr.localSize, 1
	}
	return 0, 0
}

func (dr *deviceResources) exec(kType kernelType, r tracer.Rect, args ...interface{}) error {
	kernel := dr.kernels[kType]
	if err := kernel.SetArgs(args...); err != nil {
		return err
	}

	localX, localY := dr.workGroup(r)
	return kernel.Exec2D(r.X0, r.Y0, r.Width(), r.Height(), localX, localY)
}

// Generate primary rays for every pixel of the frame.
func (dr *deviceResources) GeneratePrimaryRays(frame tracer.Rect, renderInfo []byte) error {
	return dr.exec(generatePrimaryRays, frame,
		dr.buffers.Rays,
		renderInfo,
	)
}

// Intersect the rays of a pixel rectangle with an analytic sphere.
func (dr *deviceResources) IntersectSphere(r tracer.Rect, object, renderInfo []byte) error {
	return dr.exec(intersectSphere, r,
		dr.buffers.Rays,
		dr.buffers.Intersections,
		dr.buffers.Colors,
		object,
		renderInfo,
	)
}

// Intersect the rays of a pixel rectangle with a triangle mesh.
func (dr *deviceResources) IntersectMesh(r tracer.Rect, object []byte, mesh tracer.MeshArgs, tex tracer.TextureArgs, renderInfo []byte) error {
	if mesh.Buffers == nil || tex.Buffers == nil {
		return fmt.Errorf("opencl tracer: mesh dispatch requires mesh and texture buffers")
	}

	vertices, err := deviceBuffer(mesh.Buffers.Vertices, true)
	if err != nil {
		return err
	}
	triangles, err := deviceBuffer(mesh.Buffers.Triangles, true)
	if err != nil {
		return err
	}
	colors, err := deviceBuffer(tex.Buffers.Colors, true)
	if err != nil {
		return err
	}
	normalMap, err := deviceBuffer(tex.Buffers.NormalMap, false)
	if err != nil {
		return err
	}

	return dr.exec(intersectMesh, r,
		dr.buffers.Rays,
		dr.buffers.Intersections,
		dr.buffers.Colors,
		dr.buffers.Materials,
		vertices,
		triangles,
		colors,
		normalMap,
		object,
		mesh.Info,
		tex.Info,
		renderInfo,
	)
}

// Resolve final pixel colors into the pixel buffer.
func (dr *deviceResources) Shade(frame tracer.Rect, renderInfo []byte) error {
	return dr.exec(shadePixels, frame,
		dr.buffers.Rays,
		dr.buffers.Colors,
		dr.buffers.Pixels,
		renderInfo,
	)
}

// Unwrap a buffer allocated by this package. Optional buffers may be nil.
func deviceBuffer(b tracer.Buffer, required bool) (*device.Buffer, error) {
	if b == nil {
		if required {
			return nil, fmt.Errorf("opencl tracer: missing required buffer")
		}
		return nil, nil
	}

	devBuf, ok := b.(*device.Buffer)
	if !ok {
		return nil, fmt.Errorf("opencl tracer: buffer %s was not allocated by an opencl device", b.Name())
	}
	return devBuf, nil
}
