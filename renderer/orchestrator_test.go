package renderer

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/achilleasa/pray/display"
	"github.com/achilleasa/pray/input"
	"github.com/achilleasa/pray/scene"
	"github.com/achilleasa/pray/types"
)

type testRig struct {
	o      *Orchestrator
	sc     *scene.Scene
	accel  *fakeAccel
	window *fakeWindow
	queue  *input.Queue
}

func newTestRig(t *testing.T, objects ...*scene.Object) *testRig {
	opts := testOptions()
	rig := &testRig{
		sc:     scene.NewScene(),
		accel:  newFakeAccel(int(opts.FrameW), int(opts.FrameH)),
		window: newFakeWindow(int(opts.FrameW), int(opts.FrameH)),
		queue:  input.NewQueue(0),
	}
	for _, obj := range objects {
		if err := rig.sc.AddObject(obj); err != nil {
			t.Fatal(err)
		}
	}

	var err error
	rig.o, err = NewOrchestrator(rig.sc, rig.accel, rig.window, rig.queue, opts)
	if err != nil {
		t.Fatal(err)
	}
	return rig
}

func TestTickStageOrder(t *testing.T) {
	rig := newTestRig(t,
		testSphere("front", types.Vec3{0, 0, 100}),
		testSphere("behind", types.Vec3{0, 0, -100}),
	)
	defer rig.o.Close()

	if err := rig.o.Tick(16); err != nil {
		t.Fatal(err)
	}

	expOps := []string{"materials", "primary", "acquire", "sphere", "shade", "release"}
	ops := rig.accel.ops()
	if len(ops) != len(expOps) {
		t.Fatalf("expected accelerator calls %v; got %v", expOps, ops)
	}
	for i := range expOps {
		if ops[i] != expOps[i] {
			t.Fatalf("expected accelerator calls %v; got %v", expOps, ops)
		}
	}

	if len(rig.window.presented) != 1 {
		t.Fatalf("expected 1 presented frame; got %d", len(rig.window.presented))
	}
	frame := rig.window.presented[0]
	if got := frame[4*(240*640+320)]; got != 255 {
		t.Fatalf("expected center pixel to be covered by the sphere; got %d", got)
	}
	if got := frame[0]; got != 0 {
		t.Fatalf("expected corner pixel to be empty; got %d", got)
	}

	if rig.o.Bridge().Owner() != display.OwnerDisplay {
		t.Fatalf("expected display to own the surface after the tick; got %s", rig.o.Bridge().Owner())
	}

	stats := rig.o.Stats()
	if stats.Considered != 2 || stats.Dispatched != 1 || stats.Culled[CullBehindCamera] != 1 {
		t.Fatalf("expected 2 considered, 1 dispatched and 1 culled object; got %+v", stats)
	}
}

func TestTickDeterministic(t *testing.T) {
	rig := newTestRig(t,
		testSphere("a", types.Vec3{0, 0, 100}),
		testSphere("b", types.Vec3{30, -20, 200}),
		testSphere("c", types.Vec3{-500, 0, 50}),
	)
	defer rig.o.Close()

	if err := rig.o.Tick(16); err != nil {
		t.Fatal(err)
	}
	first := rig.accel.rects()
	rig.accel.calls = nil

	if err := rig.o.Tick(16); err != nil {
		t.Fatal(err)
	}
	second := rig.accel.rects()

	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("expected the same number of dispatches; got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("[dispatch %d] expected rect %s; got %s", i, first[i], second[i])
		}
	}
	if !bytes.Equal(rig.window.presented[0], rig.window.presented[1]) {
		t.Fatal("expected identical surfaces for identical ticks")
	}
}

func TestTickReentered(t *testing.T) {
	rig := newTestRig(t)
	defer rig.o.Close()

	var nestedErr error
	rig.accel.onPrimary = func() {
		nestedErr = rig.o.Tick(1)
	}

	if err := rig.o.Tick(1); err != nil {
		t.Fatal(err)
	}
	if nestedErr != ErrTickReentered {
		t.Fatalf("expected ErrTickReentered; got %v", nestedErr)
	}

	// A completed tick can be followed by another one.
	rig.accel.onPrimary = nil
	if err := rig.o.Tick(1); err != nil {
		t.Fatal(err)
	}
}

func TestTickFailureIsFatal(t *testing.T) {
	rig := newTestRig(t, testSphere("front", types.Vec3{0, 0, 100}))
	defer rig.o.Close()

	rig.accel.failOn = "shade"
	err := rig.o.Tick(1)
	if !errors.Is(err, errInjected) {
		t.Fatalf("expected injected error; got %v", err)
	}
	if len(rig.window.presented) != 0 {
		t.Fatal("expected no frame to be presented")
	}

	// The surface remains owned by the accelerator.
	rig.accel.failOn = ""
	if err = rig.o.Tick(1); !errors.Is(err, display.ErrSurfaceAlreadyAcquired) {
		t.Fatalf("expected ErrSurfaceAlreadyAcquired; got %v", err)
	}
}

func TestNewOrchestratorErrors(t *testing.T) {
	opts := testOptions()
	accel := newFakeAccel(640, 480)
	win := newFakeWindow(640, 480)

	if _, err := NewOrchestrator(nil, accel, win, nil, opts); err != ErrSceneNotDefined {
		t.Fatalf("expected ErrSceneNotDefined; got %v", err)
	}
	if _, err := NewOrchestrator(scene.NewScene(), nil, win, nil, opts); err != ErrNoAccelerator {
		t.Fatalf("expected ErrNoAccelerator; got %v", err)
	}
	if _, err := NewOrchestrator(scene.NewScene(), accel, nil, nil, opts); err != ErrNoDisplay {
		t.Fatalf("expected ErrNoDisplay; got %v", err)
	}

	bad := *opts
	bad.AASubRays = 3
	if _, err := NewOrchestrator(scene.NewScene(), accel, win, nil, &bad); !errors.Is(err, ErrInvalidAALevel) {
		t.Fatalf("expected ErrInvalidAALevel; got %v", err)
	}

	accel.layout.Triangle = 48
	if _, err := NewOrchestrator(scene.NewScene(), accel, win, nil, opts); !errors.Is(err, ErrLayoutMismatch) {
		t.Fatalf("expected ErrLayoutMismatch; got %v", err)
	}
}

func TestInputMovement(t *testing.T) {
	rig := newTestRig(t)
	defer rig.o.Close()
	cam := rig.sc.Camera

	rig.queue.Push(input.KeyPress{Code: input.KeyW})
	rig.queue.Push(input.KeyPress{Code: input.KeyD})
	if err := rig.o.Tick(10); err != nil {
		t.Fatal(err)
	}
	if exp := (types.Vec3{10, 0, 10}); !vecApproxEq(cam.Position, exp) {
		t.Fatalf("expected camera position %v; got %v", exp, cam.Position)
	}

	// Held keys keep moving the camera.
	if err := rig.o.Tick(5); err != nil {
		t.Fatal(err)
	}
	if exp := (types.Vec3{15, 0, 15}); !vecApproxEq(cam.Position, exp) {
		t.Fatalf("expected camera position %v; got %v", exp, cam.Position)
	}

	rig.queue.Push(input.KeyRelease{Code: input.KeyW})
	rig.queue.Push(input.KeyRelease{Code: input.KeyD})
	rig.queue.Push(input.KeyPress{Code: input.KeyPageUp})
	if err := rig.o.Tick(2); err != nil {
		t.Fatal(err)
	}
	if exp := (types.Vec3{15, 2, 15}); !vecApproxEq(cam.Position, exp) {
		t.Fatalf("expected camera position %v; got %v", exp, cam.Position)
	}
}

func TestInputZoomAndAmbient(t *testing.T) {
	rig := newTestRig(t)
	defer rig.o.Close()
	cam := rig.sc.Camera

	rig.queue.Push(input.MouseWheel{DeltaY: 1})
	rig.queue.Push(input.MouseWheel{DeltaY: 1})
	rig.queue.Push(input.MouseWheel{DeltaY: -1})
	rig.queue.Push(input.KeyPress{Code: input.KeyUp})
	if err := rig.o.Tick(1); err != nil {
		t.Fatal(err)
	}
	if cam.FocalLength != scene.DefaultFocalLength+10 {
		t.Fatalf("expected focal length %f; got %f", scene.DefaultFocalLength+10, cam.FocalLength)
	}
	if exp := float32(0.02); !approxEq(rig.sc.Lights.Ambient[0], exp) {
		t.Fatalf("expected ambient %f; got %f", exp, rig.sc.Lights.Ambient[0])
	}

	rig.queue.Push(input.KeyRelease{Code: input.KeyUp})
	rig.queue.Push(input.KeyPress{Code: input.KeyDown})
	for i := 0; i < 5; i++ {
		if err := rig.o.Tick(1); err != nil {
			t.Fatal(err)
		}
	}
	if got := rig.sc.Lights.Ambient[0]; got != 0 {
		t.Fatalf("expected ambient to be clamped at 0; got %f", got)
	}
}

func TestInputMouseLook(t *testing.T) {
	rig := newTestRig(t)
	defer rig.o.Close()
	cam := rig.sc.Camera

	// Motion is ignored while the cursor is unlocked.
	rig.queue.Push(input.MotionNotify{DX: 100, DY: 100})
	if err := rig.o.Tick(10); err != nil {
		t.Fatal(err)
	}
	if cam.Orientation != (types.Vec3{}) {
		t.Fatalf("expected orientation to be unchanged; got %v", cam.Orientation)
	}

	rig.queue.Push(input.KeyPress{Code: input.KeyNumLock})
	rig.queue.Push(input.MotionNotify{DX: 2, DY: 1})
	if err := rig.o.Tick(10); err != nil {
		t.Fatal(err)
	}
	if !rig.window.locked {
		t.Fatal("expected cursor to be locked")
	}
	if rig.window.recenters != 1 {
		t.Fatalf("expected cursor to be recentered once; got %d", rig.window.recenters)
	}

	exp := types.Vec3{0.05, 2*math.Pi - 0.1, 0}
	if !vecApproxEq(cam.Orientation, exp) {
		t.Fatalf("expected orientation %v; got %v", exp, cam.Orientation)
	}

	// Repeated press events of a held key do not toggle the lock.
	rig.queue.Push(input.KeyPress{Code: input.KeyNumLock})
	rig.queue.Push(input.KeyRelease{Code: input.KeyNumLock})
	rig.queue.Push(input.KeyPress{Code: input.KeyNumLock})
	if err := rig.o.Tick(1); err != nil {
		t.Fatal(err)
	}
	if rig.window.locked {
		t.Fatal("expected cursor to be unlocked after a second press")
	}
}

func TestInputTilt(t *testing.T) {
	rig := newTestRig(t)
	defer rig.o.Close()
	cam := rig.sc.Camera

	rig.queue.Push(input.KeyPress{Code: input.KeyQ})
	if err := rig.o.Tick(100); err != nil {
		t.Fatal(err)
	}
	if !approxEq(cam.Orientation[2], 0.1) {
		t.Fatalf("expected tilt 0.1; got %f", cam.Orientation[2])
	}
}

func TestRunLoop(t *testing.T) {
	rig := newTestRig(t, testSphere("front", types.Vec3{0, 0, 100}))
	defer rig.o.Close()
	rig.window.maxTicks = 3

	summary := &StatsSummary{}
	if err := rig.o.Run(summary); err != nil {
		t.Fatal(err)
	}
	if summary.Frames != 3 {
		t.Fatalf("expected 3 frames; got %d", summary.Frames)
	}
	if summary.Dispatched != 3 {
		t.Fatalf("expected 3 dispatches; got %d", summary.Dispatched)
	}
	if len(rig.window.presented) != 3 {
		t.Fatalf("expected 3 presented frames; got %d", len(rig.window.presented))
	}
	if summary.RenderMin > summary.RenderMean() || summary.RenderMean() > summary.RenderMax {
		t.Fatalf("expected min <= mean <= max; got %s, %s, %s", summary.RenderMin, summary.RenderMean(), summary.RenderMax)
	}

	rig.window.maxTicks = 10
	rig.accel.failOn = "primary"
	if err := rig.o.Run(nil); !errors.Is(err, errInjected) {
		t.Fatalf("expected injected error; got %v", err)
	}
}

func vecApproxEq(a, b types.Vec3) bool {
	return approxEq(a[0], b[0]) && approxEq(a[1], b[1]) && approxEq(a[2], b[2])
}
