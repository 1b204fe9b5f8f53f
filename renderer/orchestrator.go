package renderer

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/achilleasa/pray/display"
	"github.com/achilleasa/pray/input"
	"github.com/achilleasa/pray/log"
	"github.com/achilleasa/pray/scene"
	"github.com/achilleasa/pray/tracer"
	"github.com/achilleasa/pray/types"
)

// Tick stages in execution order.
type Stage uint8

const (
	StageInput Stage = iota
	StageCameraUpdate
	StagePrimaryRays
	StageSurfaceAcquire
	StageObjectPass
	StageShade
	StageSurfaceRelease
	StagePresent
	NumStages
)

// Implements Stringer.
func (s Stage) String() string {
	switch s {
	case StageInput:
		return "input"
	case StageCameraUpdate:
		return "camera update"
	case StagePrimaryRays:
		return "primary rays"
	case StageSurfaceAcquire:
		return "surface acquire"
	case StageObjectPass:
		return "object pass"
	case StageShade:
		return "shade"
	case StageSurfaceRelease:
		return "surface release"
	case StagePresent:
		return "present"
	default:
		panic(fmt.Sprintf("unsupported stage: %d", s))
	}
}

// Input response constants. Rates are expressed per millisecond.
const (
	camSpinRate float32 = 0.001
	camMoveRate float32 = 1
	zoomStep    float32 = 10
	ambientStep float32 = 0.02
)

// Pressing this key toggles mouse look.
const cursorLockKey = input.KeyNumLock

// Orchestrator drives the per tick render pipeline.
type Orchestrator struct {
	logger log.Logger

	scene  *scene.Scene
	accel  tracer.Accelerator
	window Window
	queue  *input.Queue
	opts   *Options

	bridge    *display.Bridge
	culler    *Culler
	resources *ResourceManager
	keyboard  *input.Keyboard

	cursorLocked bool

	// Camera relative movement (forward, right, up) collected by the
	// input stage and applied once the camera basis is up to date.
	pendingMove types.Vec3

	inTick int32
	stats  FrameStats
}

// Create a new orchestrator for a scene and upload the scene resources to the
// accelerator.
func NewOrchestrator(sc *scene.Scene, accel tracer.Accelerator, window Window, queue *input.Queue, opts *Options) (*Orchestrator, error) {
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if accel == nil {
		return nil, ErrNoAccelerator
	}
	if window == nil {
		return nil, ErrNoDisplay
	}
	if queue == nil {
		queue = input.NewQueue(0)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := checkLayout(accel.Layout()); err != nil {
		return nil, err
	}

	o := &Orchestrator{
		logger:    log.New("renderer"),
		scene:     sc,
		accel:     accel,
		window:    window,
		queue:     queue,
		opts:      opts,
		bridge:    display.NewBridge(accel, window),
		culler:    NewCuller(accel, opts),
		resources: NewResourceManager(accel),
		keyboard:  input.NewKeyboard(),
	}

	if sc.Camera == nil {
		sc.Camera = scene.NewCamera(types.Vec3{}, types.Vec3{})
	}
	sc.Camera.Sensitivity = opts.MouseSensitivity

	if err := o.resources.Load(sc); err != nil {
		return nil, err
	}

	o.logger.Noticef("rendering %d objects at %dx%d using %s", sc.ObjectCount(), opts.FrameW, opts.FrameH, accel.Name())
	return o, nil
}

// Ensure that the accelerator kernels agree with the serialized struct sizes.
func checkLayout(got tracer.Layout) error {
	exp := tracer.Layout{
		RenderInfo: RenderInfoSize,
		ObjectInfo: scene.ObjectInfoSize,
		MeshInfo:   scene.MeshInfoSize,
		SurfInfo:   scene.SurfInfoSize,
		Material:   scene.MaterialSize,
		Triangle:   scene.TriangleSize,
	}
	if got != exp {
		return fmt.Errorf("%w: expected %+v; got %+v", ErrLayoutMismatch, exp, got)
	}
	return nil
}

// Release scene resources. The accelerator and window are owned by the caller.
func (o *Orchestrator) Close() {
	if o.resources != nil {
		o.resources.Release()
	}
}

// Get render statistics for the last tick.
func (o *Orchestrator) Stats() FrameStats {
	return o.stats
}

// Get the surface bridge.
func (o *Orchestrator) Bridge() *display.Bridge {
	return o.bridge
}

// Render a frame advancing the simulation by dt milliseconds. Tick does not
// return until all accelerator work for the frame has completed. Any error is
// fatal for the render loop.
func (o *Orchestrator) Tick(dt float32) error {
	if !atomic.CompareAndSwapInt32(&o.inTick, 0, 1) {
		return ErrTickReentered
	}
	defer atomic.StoreInt32(&o.inTick, 0)

	o.stats = FrameStats{}
	tickStart := time.Now()
	cam := o.scene.Camera

	var err error
	for stage := Stage(0); stage < NumStages; stage++ {
		start := time.Now()
		switch stage {
		case StageInput:
			o.handleInput(o.queue.Drain(), dt)
		case StageCameraUpdate:
			o.updateCamera(cam)
		case StagePrimaryRays:
			var ri *RenderInfo
			if ri, err = NewRenderInfo(o.opts, cam); err == nil {
				err = o.accel.GeneratePrimaryRays(ri.Marshal())
			}
		case StageSurfaceAcquire:
			err = o.bridge.Acquire()
		case StageObjectPass:
			err = o.objectPass(cam, dt)
		case StageShade:
			if err = o.bridge.CheckWrite(); err == nil {
				err = o.accel.Shade()
			}
		case StageSurfaceRelease:
			err = o.bridge.Release()
		case StagePresent:
			err = o.bridge.Present()
		}
		o.stats.StageTimes[stage] = time.Since(start)

		if err != nil {
			return fmt.Errorf("renderer: %s stage failed: %w", stage, err)
		}
	}

	o.stats.RenderTime = time.Since(tickStart)
	return nil
}

func (o *Orchestrator) objectPass(cam *scene.Camera, dt float32) error {
	if err := o.bridge.CheckWrite(); err != nil {
		return err
	}

	o.culler.Begin(cam, dt, &o.stats)
	return o.scene.Each(o.culler.Process)
}

// Apply queued input events and held keys.
func (o *Orchestrator) handleInput(events []input.Event, dt float32) {
	cam := o.scene.Camera

	recenter := false
	for _, ev := range events {
		pressEdge := o.keyboard.Apply(ev)

		switch e := ev.(type) {
		case input.KeyPress:
			if pressEdge && e.Code == cursorLockKey {
				o.cursorLocked = o.window.ToggleCursorLock()
			}
		case input.MotionNotify:
			if !o.cursorLocked {
				continue
			}
			cam.Orientation[0] += float32(e.DY) * cam.Sensitivity * dt
			cam.Orientation[1] -= float32(e.DX) * cam.Sensitivity * dt
			recenter = true
		case input.MouseWheel:
			switch {
			case e.DeltaY > 0:
				cam.Zoom(zoomStep)
			case e.DeltaY < 0:
				cam.Zoom(-zoomStep)
			}
		}
	}
	if recenter {
		o.window.SetCursorPos(0, 0)
	}

	kb := o.keyboard
	if kb.IsDown(input.KeyE) {
		cam.Orientation[2] -= camSpinRate * dt
	}
	if kb.IsDown(input.KeyQ) {
		cam.Orientation[2] += camSpinRate * dt
	}

	if kb.IsDown(input.KeyUp) {
		o.scene.Lights.AdjustAmbient(ambientStep)
	}
	if kb.IsDown(input.KeyDown) {
		o.scene.Lights.AdjustAmbient(-ambientStep)
	}

	step := camMoveRate * dt
	o.pendingMove = types.Vec3{
		axis(kb, input.KeyW, input.KeyS) * step,
		axis(kb, input.KeyD, input.KeyA) * step,
		axis(kb, input.KeyPageUp, input.KeyPageDown) * step,
	}
}

func axis(kb *input.Keyboard, pos, neg uint64) float32 {
	var v float32
	if kb.IsDown(pos) {
		v++
	}
	if kb.IsDown(neg) {
		v--
	}
	return v
}

// Refresh the camera basis and apply any pending movement along it.
func (o *Orchestrator) updateCamera(cam *scene.Camera) {
	cam.UpdateDirection()

	move := o.pendingMove
	o.pendingMove = types.Vec3{}
	if move[0] != 0 {
		cam.Move(cam.Forward, move[0])
	}
	if move[1] != 0 {
		cam.Move(cam.Right, move[1])
	}
	if move[2] != 0 {
		cam.Move(cam.Up, move[2])
	}
}
