package scene

import (
	"math"

	"github.com/achilleasa/pray/types"
)

// Object flags. The bit positions match the layout expected by the kernels.
type Flag uint32

const (
	FlagVisible Flag = 1 << (25 + iota)
	FlagSolid
	FlagStatic
	FlagOccluder
	FlagLightObject
	FlagShowBackFaces
	flagCacheValid
)

// Object type tags. Non-negative tags select a partition; negative tags are
// placed in the lights partition.
const (
	TypeSphere int32 = -1
)

// An RGBA color stored in the b, g, r, a byte order used by the kernels.
type Color struct {
	R, G, B, A uint8
}

var White = Color{255, 255, 255, 255}

// Convert a [0, 1] rgb vector to an opaque color.
func Vec3ToColor(v types.Vec3) Color {
	c := v.Clamp(0, 1).Mul(255)
	return Color{uint8(c[0]), uint8(c[1]), uint8(c[2]), 255}
}

// A scene object. Mesh and texture chains are shared with the owning scene.
type Object struct {
	ID    string
	Name  string
	Index uint32
	Type  int32

	Center      types.Vec3
	LastPos     types.Vec3
	position    types.Vec3
	LastOri     types.Vec3
	orientation types.Vec3
	Velocity    types.Vec3
	Rotation    types.Vec3

	Radius   float32
	Radius2  float32
	Mass     float32
	OrigMass float32
	Scale    float32
	Color    Color
	Flags    Flag

	// Max view distance tier; 0 is unlimited, 1-4 index the distance table.
	MaxDistTier uint32

	// Local space bounding box corners.
	BoundBox [8]types.Vec3

	Mesh    *MeshChain
	Texture *TextureChain

	cache   [8]types.Vec3
	meshLoD int
	texLoD  int
}

// Create a visible, solid, static occluder.
func NewObject(id, name string) *Object {
	return &Object{
		ID:    id,
		Name:  name,
		Scale: 1,
		Color: White,
		Flags: FlagVisible | FlagSolid | FlagStatic | FlagOccluder,
	}
}

// Check whether a flag is set.
func (o *Object) Has(f Flag) bool {
	return o.Flags&f != 0
}

// Set or clear a flag.
func (o *Object) Set(f Flag, on bool) {
	if on {
		o.Flags |= f
	} else {
		o.Flags &^= f
	}
}

// Returns true if the world space corner cache is up to date.
func (o *Object) CacheValid() bool {
	return o.Has(flagCacheValid)
}

// Mark the world space corner cache as stale.
func (o *Object) InvalidateCache() {
	o.Flags &^= flagCacheValid
}

// Set the bounding radius.
func (o *Object) SetRadius(r float32) {
	o.Radius = r
	o.Radius2 = r * r
}

// Get the world position. Moves go through SetPosition so the corner cache
// stays in sync.
func (o *Object) Position() types.Vec3 {
	return o.position
}

// Get the orientation as Euler angles.
func (o *Object) Orientation() types.Vec3 {
	return o.orientation
}

// Move the object.
func (o *Object) SetPosition(p types.Vec3) {
	if p != o.position {
		o.position = p
		o.InvalidateCache()
	}
}

// Rotate the object.
func (o *Object) SetOrientation(ori types.Vec3) {
	if ori != o.orientation {
		o.orientation = ori
		o.InvalidateCache()
	}
}

// Scale the object. Mass and radius follow the scale when a mesh is attached.
func (o *Object) SetScale(s float32) {
	o.Scale = s
	o.Mass = s * s * s * o.OrigMass
	if mesh := o.BaseMesh(); mesh != nil {
		o.SetRadius(s * mesh.Radius)
	}
	o.InvalidateCache()
}

// Integrate velocity and rotation over dt for non-static objects. Returns true
// if the object moved.
func (o *Object) Integrate(dt float32) bool {
	o.LastPos = o.position
	o.LastOri = o.orientation
	if o.Has(FlagStatic) {
		return false
	}

	o.orientation = o.orientation.Add(o.Rotation.Mul(dt))
	o.position = o.position.Add(o.Velocity.Mul(dt))
	if o.position != o.LastPos || o.orientation != o.LastOri {
		o.InvalidateCache()
		return true
	}
	return false
}

// Map a point from local mesh space to world space.
func (o *Object) PointToWorld(p types.Vec3) types.Vec3 {
	return p.Sub(o.Center).Mul(o.Scale).Rot(o.orientation).Add(o.position)
}

// Get the world space bounding box corners, refreshing the cache if needed.
func (o *Object) Corners() *[8]types.Vec3 {
	if !o.CacheValid() {
		for i, p := range o.BoundBox {
			o.cache[i] = o.PointToWorld(p)
		}
		o.Flags |= flagCacheValid
	}
	return &o.cache
}

// Select the mesh and texture LoD entries for a LoD factor.
func (o *Object) SetLoD(f float32) {
	if o.Mesh != nil {
		o.meshLoD = LoDIndex(f, len(o.Mesh.LoDs))
	}
	if o.Texture != nil {
		o.texLoD = LoDIndex(f, len(o.Texture.LoDs))
	}
}

// Get the selected mesh and texture LoD indices.
func (o *Object) LoD() (mesh, texture int) {
	return o.meshLoD, o.texLoD
}

// Get the selected mesh LoD entry or nil if the object has no mesh.
func (o *Object) CurrentMesh() *Mesh {
	if o.Mesh == nil || len(o.Mesh.LoDs) == 0 {
		return nil
	}
	return o.Mesh.LoDs[o.meshLoD]
}

// Get the selected texture LoD entry or nil if the object has no texture.
func (o *Object) CurrentTexture() *Texture {
	if o.Texture == nil || len(o.Texture.LoDs) == 0 {
		return nil
	}
	return o.Texture.LoDs[o.texLoD]
}

// Get the highest detail mesh entry or nil if the object has no mesh.
func (o *Object) BaseMesh() *Mesh {
	if o.Mesh == nil || len(o.Mesh.LoDs) == 0 {
		return nil
	}
	return o.Mesh.LoDs[0]
}

// Copy radius, center and bounding box from the highest detail mesh entry.
func (o *Object) FitMesh() {
	mesh := o.BaseMesh()
	if mesh == nil {
		return
	}
	o.SetRadius(o.Scale * mesh.Radius)
	o.Center = mesh.Center
	o.BoundBox = mesh.BoundBox
	o.InvalidateCache()
}

// Map a LoD factor to an index in [0, count-1].
func LoDIndex(f float32, count int) int {
	if count <= 1 || !(f > 0) {
		return 0
	}
	if f >= float32(count-1) {
		return count - 1
	}
	return int(math.Floor(float64(f)))
}

// Serialize the object into the 128 byte ObjectInfo block.
func (o *Object) Marshal() []byte {
	out := make([]byte, ObjectInfoSize)
	putVec3(out, 0, o.Center)
	putVec3(out, 16, o.LastPos)
	putVec3(out, 32, o.position)
	putVec3(out, 48, o.orientation)
	putVec3(out, 64, o.Velocity)
	putVec3(out, 80, o.Rotation)
	putF32(out, 96, o.Radius)
	putF32(out, 100, o.Radius2)
	putF32(out, 104, o.Mass)
	putF32(out, 108, o.Scale)
	out[112] = o.Color.B
	out[113] = o.Color.G
	out[114] = o.Color.R
	out[115] = o.Color.A
	putI32(out, 116, o.Type)
	putU32(out, 120, o.Index)
	putU32(out, 124, uint32(o.Flags))
	return out
}
