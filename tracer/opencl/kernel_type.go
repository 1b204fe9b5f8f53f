package opencl

import "fmt"

type kernelType uint8

// The list of kernels that implement the tracer.
const (
	// camera kernels
	generatePrimaryRays kernelType = iota
	// intersection kernels
	intersectMesh
	intersectSphere
	// shading kernels
	shadePixels
	//
	numKernels
)

// Implements Stringer.
func (kt kernelType) String() string {
	switch kt {
	case generatePrimaryRays:
		return "generatePrimaryRays"
	case intersectMesh:
		return "intersectMesh"
	case intersectSphere:
		return "intersectSphere"
	case shadePixels:
		return "shadePixels"
	default:
		panic(fmt.Sprintf("Unsupported kernel type: %d", kt))
	}
}

// Map kernel type to the kernel name as defined in the CL source file. The
// primary ray and shading entry points depend on the AA sub-ray count and the
// transparency depth respectively.
func (kt kernelType) entryPoint(subRays, transDepth uint32) (string, error) {
	switch kt {
	case generatePrimaryRays:
		if subRays <= 1 {
			return "ComputeStage0x1", nil
		}
		return "ComputeStage0xN", nil
	case intersectMesh:
		return "ComputeStage1T", nil
	case intersectSphere:
		return "ComputeStage1S", nil
	case shadePixels:
		if transDepth < 1 || transDepth > 4 {
			return "", fmt.Errorf("%w: %d", ErrInvalidDepth, transDepth)
		}
		return fmt.Sprintf("ComputeStage2x%d", transDepth), nil
	default:
		return "", fmt.Errorf("opencl tracer: unsupported kernel type %d", kt)
	}
}
