package device

import (
	"fmt"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

// Buffer access flags.
const (
	ReadWrite = cl.MemReadWrite
	ReadOnly  = cl.MemReadOnly
	WriteOnly = cl.MemWriteOnly
)

type Buffer struct {
	// Handle to opencl buffer.
	handle *cl.MemObject

	// Associated Device.
	device *Device

	// A name for identifying the buffer.
	name string

	// Allocated size.
	size int
}

// Get buffer name.
func (b *Buffer) Name() string {
	return b.name
}

// Get buffer size.
func (b *Buffer) Size() int {
	return b.size
}

// Allocate a buffer with the given size and flags.
func (b *Buffer) Allocate(size int, flags cl.MemFlag) error {
	var err error

	// If the buffer is already allocated release it
	b.Release()

	b.handle, err = b.device.ctx.CreateEmptyBuffer(flags, size)
	if err != nil {
		return fmt.Errorf("opencl device (%s): could not allocate buffer %s of size %d (%s)", b.device.Name, b.name, size, err)
	}

	b.size = size
	return nil
}

// Allocate a buffer large enough to hold data and perform a blocking upload.
func (b *Buffer) AllocateAndWriteData(data []byte, flags cl.MemFlag) error {
	if len(data) == 0 {
		return fmt.Errorf("opencl device (%s): could not allocate buffer %s; no data supplied", b.device.Name, b.name)
	}

	if err := b.Allocate(len(data), flags); err != nil {
		return err
	}

	return b.WriteData(data, 0)
}

// Perform a blocking write of data at the given byte offset.
func (b *Buffer) WriteData(data []byte, offset int) error {
	if len(data) == 0 {
		return nil
	}
	if offset+len(data) > b.size {
		return fmt.Errorf("opencl device (%s): insufficient buffer space (%d) in %s for copying data of length %d at offset %d", b.device.Name, b.size, b.name, len(data), offset)
	}

	event, err := b.device.cmdQueue.EnqueueWriteBuffer(b.handle, true, offset, len(data), unsafe.Pointer(&data[0]), nil)
	if event != nil {
		event.Release()
	}
	if err != nil {
		return fmt.Errorf("opencl device (%s): error copying host data to device buffer %s (%s)", b.device.Name, b.name, err)
	}

	return nil
}

// Perform a blocking read of len(dst) bytes starting at the given byte offset.
func (b *Buffer) ReadData(dst []byte, offset int) error {
	if len(dst) == 0 {
		return nil
	}
	if offset+len(dst) > b.size {
		return fmt.Errorf("opencl device (%s): read of %d bytes at offset %d exceeds size of buffer %s (%d)", b.device.Name, len(dst), offset, b.name, b.size)
	}

	event, err := b.device.cmdQueue.EnqueueReadBuffer(b.handle, true, offset, len(dst), unsafe.Pointer(&dst[0]), nil)
	if event != nil {
		event.Release()
	}
	if err != nil {
		return fmt.Errorf("opencl device (%s): error copying device data from %s to host buffer (%s)", b.device.Name, b.name, err)
	}

	return nil
}

// Release buffer.
func (b *Buffer) Release() {
	if b.handle != nil {
		b.handle.Release()
		b.handle = nil
		b.size = 0
	}
}
