package device

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/achilleasa/pray/types"
	"github.com/jgillich/go-opencl/cl"
)

// A wrapper around opencl kernel handles.
type Kernel struct {
	device *Device
	handle *cl.Kernel
	name   string
}

// Get kernel name.
func (k *Kernel) Name() string {
	return k.name
}

// Free any allocated resources used by this kernel.
func (k *Kernel) Release() {
	if k.handle != nil {
		k.handle.Release()
		k.handle = nil
	}
}

// Bind arguments to kernel. Byte slices are passed by value and are used for
// struct arguments; a nil *Buffer binds a NULL global pointer.
func (k *Kernel) SetArgs(args ...interface{}) error {
	var err error
	for argIndex, arg := range args {
		switch v := arg.(type) {
		case *Buffer:
			if v == nil || v.handle == nil {
				err = k.handle.SetArgUnsafe(argIndex, int(unsafe.Sizeof(uintptr(0))), nil)
			} else {
				err = k.handle.SetArgBuffer(argIndex, v.handle)
			}
		case []byte:
			if len(v) == 0 {
				return fmt.Errorf("opencl device (%s): could not set arg %d for kernel %s; empty struct argument", k.device.Name, argIndex, k.name)
			}
			err = k.handle.SetArgUnsafe(argIndex, len(v), unsafe.Pointer(&v[0]))
		case int32, uint32, float32, int64, uint64:
			err = k.handle.SetArg(argIndex, v)
		case types.Vec3:
			// float3 args occupy 16 bytes
			pad := [4]float32{v[0], v[1], v[2], 0}
			err = k.handle.SetArgUnsafe(argIndex, 16, unsafe.Pointer(&pad[0]))
		default:
			return fmt.Errorf(
				"opencl device (%s): could not set arg %d for kernel %s; unsupported arg type: %s",
				k.device.Name,
				argIndex,
				k.name,
				reflect.TypeOf(arg),
			)
		}

		if err != nil {
			return fmt.Errorf(
				"opencl device (%s): could not set arg %d for kernel %s (%s)",
				k.device.Name,
				argIndex,
				k.name,
				err,
			)
		}
	}

	return nil
}

// Enqueue a 2D kernel range without waiting for it to complete. If either
// local work size is 0 the opencl implementation picks the local split.
func (k *Kernel) Exec2D(offsetX, offsetY, globalWorkSizeX, globalWorkSizeY, localWorkSizeX, localWorkSizeY int) error {
	var offsets, localSizes []int
	if offsetX > 0 || offsetY > 0 {
		offsets = []int{offsetX, offsetY}
	}
	if localWorkSizeX != 0 && localWorkSizeY != 0 {
		localSizes = []int{localWorkSizeX, localWorkSizeY}
	}

	event, err := k.device.cmdQueue.EnqueueNDRangeKernel(
		k.handle,
		offsets,
		[]int{globalWorkSizeX, globalWorkSizeY},
		localSizes,
		nil,
	)
	if event != nil {
		event.Release()
	}
	if err != nil {
		return fmt.Errorf("opencl device (%s): unable to execute kernel %s (%s)", k.device.Name, k.name, err)
	}

	return nil
}
