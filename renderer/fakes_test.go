package renderer

import (
	"errors"
	"fmt"

	"github.com/achilleasa/pray/scene"
	"github.com/achilleasa/pray/tracer"
	"github.com/achilleasa/pray/types"
)

var errInjected = errors.New("injected failure")

type fakeBuffer struct {
	name     string
	size     int
	released *[]string
}

func (b *fakeBuffer) Name() string { return b.name }
func (b *fakeBuffer) Size() int { return b.size }
func (b *fakeBuffer) Release() { *b.released = append(*b.released, b.name) }

type fakeCall struct {
	op   string
	rect tracer.Rect
}

// A tracer.Accelerator that records calls and fills the dispatched
// rectangles of the surface with the object color.
type fakeAccel struct {
	frameW   int
	layout   tracer.Layout
	calls    []fakeCall
	uploads  []string
	released []string

	// Make the named operation fail.
	failOn string

	// Invoked from GeneratePrimaryRays.
	onPrimary func()

	surface []byte
}

func newFakeAccel(frameW, frameH int) *fakeAccel {
	return &fakeAccel{
		frameW: frameW,
		layout: tracer.Layout{
			RenderInfo: RenderInfoSize,
			ObjectInfo: scene.ObjectInfoSize,
			MeshInfo:   scene.MeshInfoSize,
			SurfInfo:   scene.SurfInfoSize,
			Material:   scene.MaterialSize,
			Triangle:   scene.TriangleSize,
		},
		surface: make([]byte, 4*frameW*frameH),
	}
}

func (a *fakeAccel) record(op string, r tracer.Rect) error {
	a.calls = append(a.calls, fakeCall{op: op, rect: r})
	if a.failOn == op {
		return errInjected
	}
	return nil
}

func (a *fakeAccel) ops() []string {
	out := make([]string, len(a.calls))
	for i, c := range a.calls {
		out[i] = c.op
	}
	return out
}

func (a *fakeAccel) rects() []tracer.Rect {
	var out []tracer.Rect
	for _, c := range a.calls {
		if c.op == "sphere" || c.op == "mesh" {
			out = append(out, c.rect)
		}
	}
	return out
}

func (a *fakeAccel) fill(r tracer.Rect, object []byte) {
	for y := r.Y0; y <= r.Y1; y++ {
		for x := r.X0; x <= r.X1; x++ {
			copy(a.surface[4*(y*a.frameW+x):], object[112:116])
		}
	}
}

func (a *fakeAccel) Name() string { return "fake" }
func (a *fakeAccel) Layout() tracer.Layout { return a.layout }
func (a *fakeAccel) SetMaterials([]byte) error { return a.record("materials", tracer.Rect{}) }

func (a *fakeAccel) Upload(name string, data []byte) (tracer.Buffer, error) {
	if a.failOn == name {
		return nil, errInjected
	}
	if len(data) == 0 {
		return nil, nil
	}
	a.uploads = append(a.uploads, name)
	return &fakeBuffer{name: name, size: len(data), released: &a.released}, nil
}

func (a *fakeAccel) GeneratePrimaryRays(renderInfo []byte) error {
	if len(renderInfo) != RenderInfoSize {
		return fmt.Errorf("bad RenderInfo size %d", len(renderInfo))
	}
	if a.onPrimary != nil {
		a.onPrimary()
	}
	for i := range a.surface {
		a.surface[i] = 0
	}
	return a.record("primary", tracer.Rect{})
}

func (a *fakeAccel) IntersectSphere(r tracer.Rect, object []byte) error {
	a.fill(r, object)
	return a.record("sphere", r)
}

func (a *fakeAccel) IntersectMesh(r tracer.Rect, object []byte, mesh tracer.MeshArgs, tex tracer.TextureArgs) error {
	if mesh.Buffers == nil || tex.Buffers == nil || len(mesh.Info) != scene.MeshInfoSize || len(tex.Info) != scene.SurfInfoSize {
		return errors.New("bad mesh dispatch arguments")
	}
	a.fill(r, object)
	return a.record("mesh", r)
}

func (a *fakeAccel) Shade() error { return a.record("shade", tracer.Rect{}) }
func (a *fakeAccel) AcquireSurface() error { return a.record("acquire", tracer.Rect{}) }

func (a *fakeAccel) ReleaseSurface(dst []byte) error {
	copy(dst, a.surface)
	return a.record("release", tracer.Rect{})
}

func (a *fakeAccel) Close() {}

type fakeWindow struct {
	pixels    []byte
	presented [][]byte
	locked    bool
	recenters int
	ticks     int
	maxTicks  int
}

func newFakeWindow(frameW, frameH int) *fakeWindow {
	return &fakeWindow{pixels: make([]byte, 4*frameW*frameH)}
}

func (w *fakeWindow) Pixels() []byte { return w.pixels }

func (w *fakeWindow) Present() error {
	w.presented = append(w.presented, append([]byte(nil), w.pixels...))
	return nil
}

func (w *fakeWindow) PollEvents() { w.ticks++ }

func (w *fakeWindow) ShouldClose() bool { return w.ticks >= w.maxTicks }

func (w *fakeWindow) ToggleCursorLock() bool {
	w.locked = !w.locked
	return w.locked
}

func (w *fakeWindow) SetCursorPos(x, y float64) { w.recenters++ }

func testOptions() *Options {
	opts := DefaultOptions()
	opts.FrameW = 640
	opts.FrameH = 480
	return &opts
}

func cubeBounds(r float32) [8]types.Vec3 {
	return [8]types.Vec3{
		{r, r, r}, {-r, r, r}, {r, r, -r}, {-r, r, -r},
		{r, -r, r}, {-r, -r, r}, {r, -r, -r}, {-r, -r, -r},
	}
}

// Create a unit sphere at pos.
func testSphere(id string, pos types.Vec3) *scene.Object {
	o := scene.NewObject(id, id)
	o.Type = scene.TypeSphere
	o.SetRadius(1)
	o.BoundBox = cubeBounds(1)
	o.SetPosition(pos)
	return o
}

// Create a mesh object backed by single entry mesh and texture chains.
func testMeshObject(id string, pos types.Vec3) (*scene.Object, *scene.MeshChain, *scene.TextureChain) {
	mesh := &scene.Mesh{
		ID:        id + "_LoD0",
		Vertices:  []types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:   []types.Vec3{{0, 0, 1}},
		Triangles: []scene.Triangle{scene.NewTriangle()},
		Radius:    1,
		BoundBox:  cubeBounds(1),
	}
	tex := &scene.Texture{
		ID: id + "_tex0",
		Surface: scene.Surface{
			SurfInfo: scene.SurfInfo{Layers: 1, Height: 1, Width: 1, Count: 1},
			Colors:   []scene.Color{scene.White},
		},
	}
	meshChain := &scene.MeshChain{ID: id, LoDs: []*scene.Mesh{mesh}}
	texChain := &scene.TextureChain{ID: id, LoDs: []*scene.Texture{tex}}

	o := scene.NewObject(id, id)
	o.Type = 0
	o.Mesh = meshChain
	o.Texture = texChain
	o.FitMesh()
	o.SetPosition(pos)
	return o, meshChain, texChain
}
