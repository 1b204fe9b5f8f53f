package renderer

import (
	"fmt"
	"math"

	"github.com/achilleasa/pray/scene"
	"github.com/achilleasa/pray/tracer"
	"github.com/achilleasa/pray/types"
)

// Reasons for skipping an object.
type CullReason uint8

const (
	NotCulled CullReason = iota
	CullInvisible
	CullDistance
	CullBehindCamera
	CullOffScreen
	numCullReasons
)

// Implements Stringer.
func (r CullReason) String() string {
	switch r {
	case NotCulled:
		return "visible"
	case CullInvisible:
		return "invisible"
	case CullDistance:
		return "distance"
	case CullBehindCamera:
		return "behind camera"
	case CullOffScreen:
		return "off screen"
	default:
		panic(fmt.Sprintf("unsupported cull reason: %d", r))
	}
}

// Culler decides whether and where each object should be dispatched to the
// accelerator. It is driven by the orchestrator during the object pass.
type Culler struct {
	accel tracer.Accelerator
	opts  *Options

	cam *scene.Camera
	dt  float32

	// Screen extents.
	halfW, halfH     float32
	lastCol, lastRow float32
	widthF, heightF  float32
	frameRect        tracer.Rect

	stats *FrameStats
}

// Create a new culler.
func NewCuller(accel tracer.Accelerator, opts *Options) *Culler {
	return &Culler{
		accel:     accel,
		opts:      opts,
		halfW:     float32(opts.FrameW / 2),
		halfH:     float32(opts.FrameH / 2),
		lastCol:   float32(opts.FrameW - 1),
		lastRow:   float32(opts.FrameH - 1),
		widthF:    float32(opts.FrameW),
		heightF:   float32(opts.FrameH),
		frameRect: tracer.FrameRect(int(opts.FrameW), int(opts.FrameH)),
	}
}

// Prepare for an object pass. Stats may be nil.
func (c *Culler) Begin(cam *scene.Camera, dt float32, stats *FrameStats) {
	c.cam = cam
	c.dt = dt
	c.stats = stats
}

// Cull and, if visible, dispatch an object.
func (c *Culler) Process(o *scene.Object) error {
	r, reason := c.Cull(o)
	if c.stats != nil {
		c.stats.Considered++
		c.stats.Culled[reason]++
	}
	if reason != NotCulled {
		return nil
	}

	if err := c.Dispatch(o, r); err != nil {
		return err
	}
	if c.stats != nil {
		c.stats.Dispatched++
		c.stats.PixelArea += r.Area()
	}
	return nil
}

// Advance object motion, select its LoD and compute the clipped screen
// rectangle covered by its bounding box. The returned reason is NotCulled if
// the object should be dispatched.
func (c *Culler) Cull(o *scene.Object) (tracer.Rect, CullReason) {
	o.Integrate(c.dt)

	if !o.Has(scene.FlagVisible) {
		return tracer.Rect{}, CullInvisible
	}

	cam := c.cam
	rel := cam.PointRelative(o.Position())

	// Distance to the bounding sphere surface.
	if tier := o.MaxDistTier; tier >= 1 && tier <= NumDistanceTiers {
		dist := cam.Position.Dist(o.Position()) - o.Radius
		if dist < 0 {
			dist = 0
		}
		if dist > c.opts.MaxDistances[tier-1] {
			return tracer.Rect{}, CullDistance
		}
	}

	if rel[2]+o.Radius <= 0 {
		return tracer.Rect{}, CullBehindCamera
	}

	o.SetLoD(lodFactor(rel, cam.FocalLength))

	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	if c.opts.LegacyScreenCull {
		minX, minY = math.MaxFloat32, math.MaxFloat32
		maxX, maxY = 0, 0
	}

	for _, corner := range o.Corners() {
		x, y := c.project(cam.PointRelative(corner))
		minX, maxX = minf(minX, x), maxf(maxX, x)
		minY, maxY = minf(minY, y), maxf(maxY, y)
	}

	lastY := c.lastRow
	if c.opts.LegacyScreenCull {
		lastY = c.lastCol
	}
	if offAxis(minX, maxX, c.lastCol) || offAxis(minY, maxY, lastY) {
		return tracer.Rect{}, CullOffScreen
	}

	r := tracer.Rect{
		X0: clampPixel(minX, c.lastCol),
		Y0: clampPixel(minY, c.lastRow),
		X1: clampPixel(maxX, c.lastCol),
		Y1: clampPixel(maxY, c.lastRow),
	}
	return r, NotCulled
}

// Issue the intersection dispatch for an object over r. Objects tagged as
// spheres use the analytic path; everything else is traced as a mesh.
func (c *Culler) Dispatch(o *scene.Object, r tracer.Rect) error {
	r = r.Intersect(c.frameRect)
	if r.Empty() {
		return nil
	}

	if o.Type == scene.TypeSphere {
		return c.accel.IntersectSphere(r, o.Marshal())
	}

	mesh := o.CurrentMesh()
	if mesh == nil {
		return fmt.Errorf("renderer: object %q has no mesh", o.ID)
	}
	tex := o.CurrentTexture()
	if tex == nil {
		return fmt.Errorf("renderer: object %q has no texture", o.ID)
	}

	return c.accel.IntersectMesh(r, o.Marshal(),
		tracer.MeshArgs{Buffers: &mesh.Buffers, Info: mesh.MarshalInfo()},
		tracer.TextureArgs{Buffers: &tex.Buffers, Info: tex.Surface.SurfInfo.Marshal()},
	)
}

// Map a camera relative point to screen coordinates. Points behind the eye
// are pinned just outside the screen on the side they extend towards.
func (c *Culler) project(rel types.Vec3) (float32, float32) {
	if rel[2] <= 0 {
		x, y := c.widthF, c.heightF
		if rel[0] < 0 {
			x = -1
		}
		if rel[1] < 0 {
			y = -1
		}
		return x, y
	}

	foc := c.cam.FocalLength
	return c.halfW + rel[0]/rel[2]*foc, c.halfH + rel[1]/rel[2]*foc
}

// The LoD factor grows with the square root of the distance measured in
// focal lengths.
func lodFactor(rel types.Vec3, focalLength float32) float32 {
	f := float32(math.Sqrt(float64(rel.Len()/focalLength))) - 1
	if f < 0 {
		return 0
	}
	return f
}

func offAxis(lo, hi, last float32) bool {
	return (lo < 0 && hi < 0) || (lo > last && hi > last)
}

func clampPixel(v, last float32) int {
	switch {
	case v < 0:
		return 0
	case v > last:
		return int(last)
	}
	return int(math.Floor(float64(v)))
}

func minf(a, b float32) float32 {
	if b < a {
		return b
	}
	return a
}

func maxf(a, b float32) float32 {
	if b > a {
		return b
	}
	return a
}
