package opencl

import "errors"

var (
	ErrNoDevice               = errors.New("opencl tracer: no opencl device available")
	ErrNoGLSharing            = errors.New("opencl tracer: device does not support CL/GL sharing")
	ErrNoImageSupport         = errors.New("opencl tracer: device does not support opencl images")
	ErrInvalidSubRays         = errors.New("opencl tracer: invalid AA sub-ray count")
	ErrInvalidDepth           = errors.New("opencl tracer: invalid transparency depth")
	ErrSurfaceNotAcquired     = errors.New("opencl tracer: shared surface written without being acquired")
	ErrSurfaceAlreadyAcquired = errors.New("opencl tracer: shared surface already acquired")
	ErrNoRenderInfo           = errors.New("opencl tracer: dispatch issued before primary ray generation")
	ErrClosed                 = errors.New("opencl tracer: tracer is closed")
)
