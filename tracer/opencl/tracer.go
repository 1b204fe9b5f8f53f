package opencl

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/achilleasa/pray/log"
	"github.com/achilleasa/pray/tracer"
	"github.com/achilleasa/pray/tracer/opencl/device"
)

// Struct sizes expected by the compute kernels.
var kernelLayout = tracer.Layout{
	RenderInfo: 128,
	ObjectInfo: 128,
	MeshInfo:   32,
	SurfInfo:   16,
	Material:   64,
	Triangle:   64,
}

// Tracer configuration.
type Config struct {
	// Frame dimensions.
	FrameW uint32
	FrameH uint32

	// AA sub-rays per pixel (1, 4, 9 or 16).
	SubRays uint32

	// Number of transparency layers (1-4).
	TransparencyDepth uint32

	// Path to the kernel program source.
	KernelFile string

	// Extra compiler options.
	BuildOptions string

	// If set, a failed program build writes its log to this file.
	BuildLogFile string
}

// Validate the configuration.
func (c Config) Validate() error {
	switch c.SubRays {
	case 1, 4, 9, 16:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidSubRays, c.SubRays)
	}
	if c.TransparencyDepth < 1 || c.TransparencyDepth > 4 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, c.TransparencyDepth)
	}
	if c.FrameW == 0 || c.FrameH == 0 {
		return fmt.Errorf("opencl tracer: invalid frame dimensions %dx%d", c.FrameW, c.FrameH)
	}
	return nil
}

// Tracer implements tracer.Accelerator on top of a single opencl device.
type Tracer struct {
	sync.Mutex

	logger log.Logger

	// The device associated with this tracer instance.
	device *device.Device

	// The allocated device resources.
	resources *deviceResources

	cfg   Config
	frame tracer.Rect

	// RenderInfo block for the current frame.
	renderInfo []byte

	// True while the accelerator owns the shared surface.
	surfaceAcquired bool
}

// Scan the available devices and select one that can share buffers with the
// display subsystem. GPU devices are preferred. If nameFilter is not empty
// only devices whose name contains it are considered.
func SelectDevice(nameFilter string) (*device.Device, error) {
	devList, err := device.SelectDevices(device.AllDevices, nameFilter)
	if err != nil {
		return nil, err
	}
	if len(devList) == 0 {
		return nil, ErrNoDevice
	}

	var reason error
	for _, devType := range []device.DeviceType{device.GpuDevice, device.CpuDevice, device.OtherDevice} {
		for _, dev := range devList {
			if dev.Type != devType {
				continue
			}
			if !dev.SupportsGLSharing() {
				reason = fmt.Errorf("%w (%s)", ErrNoGLSharing, dev.Name)
				continue
			}
			if !dev.ImageSupport {
				reason = fmt.Errorf("%w (%s)", ErrNoImageSupport, dev.Name)
				continue
			}
			return dev, nil
		}
	}

	if reason == nil {
		reason = ErrNoDevice
	}
	return nil, reason
}

// Create a new opencl tracer, build the kernel program and allocate the frame buffers.
func NewTracer(dev *device.Device, cfg Config) (*Tracer, error) {
	if dev == nil {
		return nil, ErrNoDevice
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tr := &Tracer{
		logger: log.New(fmt.Sprintf("opencl tracer (%s)", dev.Name)),
		device: dev,
		cfg:    cfg,
		frame:  tracer.FrameRect(int(cfg.FrameW), int(cfg.FrameH)),
	}

	err := dev.Init(cfg.KernelFile, cfg.BuildOptions)
	if err != nil {
		tr.reportBuildError(err)
		tr.cleanup()
		return nil, err
	}

	tr.resources, err = newDeviceResources(cfg, dev)
	if err != nil {
		tr.cleanup()
		return nil, err
	}

	tr.logger.Noticef("using device %s; local work group size: %d (%dx%d)", dev.Name, tr.resources.localSize, tr.resources.localX, tr.resources.localY)
	tr.logger.Debugf("device info:\n%s", dev.String())
	return tr, nil
}

// Log the build output of a failed program build and optionally save it to disk.
func (tr *Tracer) reportBuildError(err error) {
	var buildErr *device.BuildError
	if !errors.As(err, &buildErr) {
		return
	}

	tr.logger.Errorf("kernel build log:\n%s", buildErr.Log)
	if tr.cfg.BuildLogFile == "" {
		return
	}
	if wErr := os.WriteFile(tr.cfg.BuildLogFile, []byte(buildErr.Log), 0644); wErr != nil {
		tr.logger.Warningf("could not write build log to %s: %v", tr.cfg.BuildLogFile, wErr)
	}
}

// Get tracer name.
func (tr *Tracer) Name() string {
	return tr.device.Name
}

// Get the struct layout expected by the kernels.
func (tr *Tracer) Layout() tracer.Layout {
	return kernelLayout
}

// Allocate a device buffer and perform a blocking upload. Empty data yields a
// nil buffer.
func (tr *Tracer) Upload(name string, data []byte) (tracer.Buffer, error) {
	if tr.resources == nil {
		return nil, ErrClosed
	}
	if len(data) == 0 {
		return nil, nil
	}

	buf := tr.device.Buffer(name)
	if err := buf.AllocateAndWriteData(data, device.ReadWrite); err != nil {
		return nil, err
	}
	return buf, nil
}

// Upload the scene material table.
func (tr *Tracer) SetMaterials(data []byte) error {
	if tr.resources == nil {
		return ErrClosed
	}

	// The kernels always receive a valid material buffer.
	if len(data) == 0 {
		data = make([]byte, kernelLayout.Material)
	}
	return tr.resources.buffers.Materials.AllocateAndWriteData(data, device.ReadOnly)
}

// Generate primary rays for the full frame and wait for completion.
func (tr *Tracer) GeneratePrimaryRays(renderInfo []byte) error {
	if tr.resources == nil {
		return ErrClosed
	}
	if len(renderInfo) != kernelLayout.RenderInfo {
		return fmt.Errorf("opencl tracer: expected %d byte RenderInfo block; got %d", kernelLayout.RenderInfo, len(renderInfo))
	}

	tr.renderInfo = append(tr.renderInfo[:0], renderInfo...)
	if err := tr.resources.GeneratePrimaryRays(tr.frame, tr.renderInfo); err != nil {
		return err
	}
	return tr.device.Finish()
}

// Enqueue an analytic sphere intersection over a pixel rectangle.
func (tr *Tracer) IntersectSphere(r tracer.Rect, object []byte) error {
	if err := tr.checkDispatch(r); err != nil {
		return err
	}
	return tr.resources.IntersectSphere(r, object, tr.renderInfo)
}

// Enqueue a triangle mesh intersection over a pixel rectangle.
func (tr *Tracer) IntersectMesh(r tracer.Rect, object []byte, mesh tracer.MeshArgs, tex tracer.TextureArgs) error {
	if err := tr.checkDispatch(r); err != nil {
		return err
	}
	return tr.resources.IntersectMesh(r, object, mesh, tex, tr.renderInfo)
}

func (tr *Tracer) checkDispatch(r tracer.Rect) error {
	if tr.resources == nil {
		return ErrClosed
	}
	if tr.renderInfo == nil {
		return ErrNoRenderInfo
	}
	if r.Empty() || !tr.frame.Contains(r) {
		return fmt.Errorf("opencl tracer: dispatch rect %s outside frame %s", r, tr.frame)
	}
	return nil
}

// Resolve final pixel colors into the shared surface and wait for completion.
func (tr *Tracer) Shade() error {
	if tr.resources == nil {
		return ErrClosed
	}
	if !tr.surfaceAcquired {
		return ErrSurfaceNotAcquired
	}
	if tr.renderInfo == nil {
		return ErrNoRenderInfo
	}
	if err := tr.resources.Shade(tr.frame, tr.renderInfo); err != nil {
		return err
	}
	return tr.device.Finish()
}

// Take ownership of the shared surface.
func (tr *Tracer) AcquireSurface() error {
	if tr.resources == nil {
		return ErrClosed
	}
	if tr.surfaceAcquired {
		return ErrSurfaceAlreadyAcquired
	}

	tr.surfaceAcquired = true
	return nil
}

// Wait for all queued work and copy the pixel buffer into dst before handing
// the surface back to the display subsystem.
func (tr *Tracer) ReleaseSurface(dst []byte) error {
	if tr.resources == nil {
		return ErrClosed
	}
	if !tr.surfaceAcquired {
		return ErrSurfaceNotAcquired
	}

	pixels := tr.resources.buffers.Pixels
	if len(dst) != pixels.Size() {
		return fmt.Errorf("opencl tracer: expected %d byte surface; got %d", pixels.Size(), len(dst))
	}

	if err := tr.device.Finish(); err != nil {
		return err
	}
	if err := pixels.ReadData(dst, 0); err != nil {
		return err
	}

	tr.surfaceAcquired = false
	return nil
}

// Shutdown and cleanup tracer.
func (tr *Tracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	tr.cleanup()
}

// Cleanup tracer. This method is meant to be called while holding tr.Lock()
func (tr *Tracer) cleanup() {
	if tr.resources != nil {
		tr.resources.Close()
		tr.resources = nil
	}

	if tr.device != nil {
		tr.device.Close()
	}

	tr.renderInfo = nil
	tr.surfaceAcquired = false
}
