package device

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jgillich/go-opencl/cl"
)

type DeviceType uint8

// Supported device types.
const (
	CpuDevice   DeviceType = 1 << iota
	GpuDevice              = 1 << iota
	OtherDevice            = 1 << iota
	AllDevices             = 0xFF
)

// Extensions that allow sharing buffers with the display subsystem.
var glSharingExtensions = []string{"cl_khr_gl_sharing", "cl_APPLE_gl_sharing"}

var (
	indentRegex = regexp.MustCompile("(?m)^")
)

func (dt DeviceType) String() string {
	switch dt {
	case CpuDevice:
		return "CPU"
	case GpuDevice:
		return "GPU"
	case OtherDevice:
		return "Other"
	}
	panic("opencl: unsupported device type")
}

// BuildError is returned by Init when the device program fails to compile.
type BuildError struct {
	Device string
	Log    string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("opencl device (%s): could not build program:\n%s", e.Device, e.Log)
}

// Wrapper around opencl-supported devices.
type Device struct {
	Name       string
	Vendor     string
	Version    string
	Platform   string
	Type       DeviceType
	Extensions string

	ImageSupport     bool
	MaxWorkGroupSize int

	compUnits     int
	clockSpeed    int
	paramSize     int
	constBufSize  int64
	localMemSize  int64
	globalMemSize int64

	// Speed estimate in GFlops.
	Speed int

	// Opencl handles; allocated when device is initialized.
	id       *cl.Device
	ctx      *cl.Context
	cmdQueue *cl.CommandQueue
	program  *cl.Program
}

// A list of devices.
type DeviceList []*Device

func newDevice(platform string, id *cl.Device, devType DeviceType) *Device {
	d := &Device{
		Name:             strings.TrimSpace(id.Name()),
		Vendor:           strings.TrimSpace(id.Vendor()),
		Version:          id.Version(),
		Platform:         platform,
		Type:             devType,
		Extensions:       id.Extensions(),
		ImageSupport:     id.ImageSupport(),
		MaxWorkGroupSize: id.MaxWorkGroupSize(),
		compUnits:        id.MaxComputeUnits(),
		clockSpeed:       id.MaxClockFrequency(),
		paramSize:        id.MaxParameterSize(),
		constBufSize:     id.MaxConstantBufferSize(),
		localMemSize:     id.LocalMemSize(),
		globalMemSize:    id.GlobalMemSize(),
		id:               id,
	}

	// Calculate theoretical device speed as: compute units * 2ops/cycle * clock speed
	d.Speed = d.compUnits * d.clockSpeed / 1000
	return d
}

// Implements Stringer.
func (d *Device) String() string {
	return fmt.Sprintf(
		"Name: %s (%s)\nType: %s\nVersion: %s\nSpecs: %d computation units, %d Mhz clock, %d GFlops approximate speed\nMemory: %d KB local, %d KB constant, %d MB global\nMax parameter size: %d bytes, max work group size: %d\nGL sharing: %t, image support: %t",
		d.Name,
		d.Vendor,
		d.Type.String(),
		d.Version,
		d.compUnits,
		d.clockSpeed,
		d.Speed,
		d.localMemSize/1024,
		d.constBufSize/1024,
		d.globalMemSize/1024/1024,
		d.paramSize,
		d.MaxWorkGroupSize,
		d.SupportsGLSharing(),
		d.ImageSupport,
	)
}

// Returns true if the device advertises a GL sharing extension.
func (d *Device) SupportsGLSharing() bool {
	for _, ext := range glSharingExtensions {
		if strings.Contains(d.Extensions, ext) {
			return true
		}
	}
	return false
}

// Initialize device by creating a context, a single in-order command queue and
// by compiling the program source loaded from programFile. Any supplied build
// options are appended to an include path pointing at the program folder.
func (d *Device) Init(programFile, buildOptions string) error {
	var err error

	// Already initialized
	if d.ctx != nil {
		return nil
	}

	d.ctx, err = cl.CreateContext([]*cl.Device{d.id})
	if err != nil {
		defer d.Close()
		return fmt.Errorf("opencl device (%s): could not create opencl context (%s)", d.Name, err)
	}

	d.cmdQueue, err = d.ctx.CreateCommandQueue(d.id, 0)
	if err != nil {
		defer d.Close()
		return fmt.Errorf("opencl device (%s): could not create command queue (%s)", d.Name, err)
	}

	// Load program source
	absProgramPath, err := filepath.Abs(programFile)
	if err != nil {
		defer d.Close()
		return err
	}

	data, err := os.ReadFile(absProgramPath)
	if err != nil {
		defer d.Close()
		return fmt.Errorf("opencl device (%s): could not load program source (%s)", d.Name, err)
	}

	d.program, err = d.ctx.CreateProgramWithSource([]string{string(data)})
	if err != nil {
		defer d.Close()
		return fmt.Errorf("opencl device (%s): could not create program (%s)", d.Name, err)
	}

	opts := strings.TrimSpace(fmt.Sprintf("-I %s %s", filepath.Dir(absProgramPath), buildOptions))
	err = d.program.BuildProgram([]*cl.Device{d.id}, opts)
	if err != nil {
		defer d.Close()
		if buildLog, isBuildErr := err.(cl.BuildError); isBuildErr {
			return &BuildError{Device: d.Name, Log: string(buildLog)}
		}
		return fmt.Errorf("opencl device (%s): could not build program (%s)", d.Name, err)
	}

	return nil
}

// Shut down the device.
func (d *Device) Close() {
	if d.program != nil {
		d.program.Release()
		d.program = nil
	}

	if d.cmdQueue != nil {
		d.cmdQueue.Release()
		d.cmdQueue = nil
	}

	if d.ctx != nil {
		d.ctx.Release()
		d.ctx = nil
	}
}

// Load kernel by name.
func (d *Device) Kernel(name string) (*Kernel, error) {
	if d.program == nil {
		return nil, fmt.Errorf("opencl device (%s): could not load kernel %s; device not initialized", d.Name, name)
	}

	handle, err := d.program.CreateKernel(name)
	if err != nil {
		return nil, fmt.Errorf("opencl device (%s): could not load kernel %s (%s)", d.Name, name, err)
	}

	return &Kernel{
		device: d,
		handle: handle,
		name:   name,
	}, nil
}

// Create an empty buffer.
func (d *Device) Buffer(name string) *Buffer {
	return &Buffer{
		device: d,
		name:   name,
	}
}

// Block until all previously queued commands have completed.
func (d *Device) Finish() error {
	if err := d.cmdQueue.Finish(); err != nil {
		return fmt.Errorf("opencl device (%s): queued commands did not complete successfully (%s)", d.Name, err)
	}
	return nil
}
