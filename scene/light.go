package scene

import "github.com/achilleasa/pray/types"

// A scene light. Each light is paired with a proxy object that lives in the
// lights partition.
type Light struct {
	ID        string
	Color     types.Vec3
	Position  types.Vec3
	Direction types.Vec3
	BulbType  uint32
	Range     float32
	Power     float32

	Radius     float32
	OrigRadius float32

	Object *Object
}

// Create a light with default parameters.
func NewLight(id string) *Light {
	return &Light{
		ID:         id,
		Color:      types.Vec3{0.5, 0.5, 0.5},
		Direction:  types.YAxis,
		Power:      1,
		Radius:     1,
		OrigRadius: 1,
	}
}

// Create an invisible, static and non-solid proxy for a light that does not
// reference a scene object. Its bounding box spans ±radius on each axis.
func NewInvisibleProxy(l *Light) *Object {
	o := NewObject(l.ID+"_object", "Invisible Light")
	o.Type = TypeSphere
	o.Set(FlagVisible, false)
	o.Set(FlagSolid, false)
	o.Set(FlagStatic, true)

	r := l.Radius
	o.BoundBox = [8]types.Vec3{
		{r, r, r}, {-r, r, r}, {r, r, -r}, {-r, r, -r},
		{r, -r, r}, {-r, -r, r}, {r, -r, -r}, {-r, -r, -r},
	}
	return o
}

// Bind a proxy object to the light.
func (l *Light) Attach(o *Object) {
	l.Object = o
	o.Set(FlagLightObject, true)
	o.Color = Vec3ToColor(l.Color)
	o.InvalidateCache()
	l.Sync()
}

// Move the light and its proxy.
func (l *Light) SetPosition(p types.Vec3) {
	l.Position = p
	l.Sync()
}

// Resize the light and its proxy.
func (l *Light) SetRadius(r float32) {
	l.Radius = r
	l.Sync()
}

// Copy light position and radius to the proxy object. The proxy scale tracks
// the ratio of the current to the original radius.
func (l *Light) Sync() {
	if l.Object == nil {
		return
	}

	l.Object.SetPosition(l.Position)
	if l.Object.Radius != l.Radius {
		l.Object.SetRadius(l.Radius)
		if l.OrigRadius != 0 {
			l.Object.Scale = l.Radius / l.OrigRadius
		}
		l.Object.InvalidateCache()
	}
}

// The scene light collection.
type LightSet struct {
	Endless []*Light
	Falloff []*Light
	Ambient types.Vec3
}

// Adjust ambient light intensity keeping each component in [0, 1].
func (ls *LightSet) AdjustAmbient(delta float32) {
	ls.Ambient = ls.Ambient.AddScalar(delta).Clamp(0, 1)
}

// Find a light by ID.
func (ls *LightSet) ByID(id string) *Light {
	for _, list := range [][]*Light{ls.Endless, ls.Falloff} {
		for _, l := range list {
			if l.ID == id {
				return l
			}
		}
	}
	return nil
}

// Get the total number of lights.
func (ls *LightSet) Len() int {
	return len(ls.Endless) + len(ls.Falloff)
}
