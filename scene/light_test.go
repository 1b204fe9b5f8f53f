package scene

import (
	"testing"

	"github.com/achilleasa/pray/types"
)

func TestInvisibleLightProxy(t *testing.T) {
	l := NewLight("lamp")
	l.Color = types.Vec3{1, 0.5, 0}
	l.Radius, l.OrigRadius = 2, 2

	proxy := NewInvisibleProxy(l)
	l.Attach(proxy)

	if proxy.ID != "lamp_object" || proxy.Name != "Invisible Light" {
		t.Fatalf("unexpected proxy naming: %q / %q", proxy.ID, proxy.Name)
	}
	if proxy.Has(FlagVisible) || proxy.Has(FlagSolid) || !proxy.Has(FlagStatic) || !proxy.Has(FlagLightObject) {
		t.Fatalf("unexpected proxy flags: %032b", proxy.Flags)
	}
	if proxy.BoundBox[0] != (types.Vec3{2, 2, 2}) || proxy.BoundBox[7] != (types.Vec3{-2, -2, -2}) {
		t.Fatalf("expected ±radius bounding box; got %v", proxy.BoundBox)
	}
	if proxy.Color != (Color{255, 127, 0, 255}) {
		t.Fatalf("expected proxy color to follow light color; got %v", proxy.Color)
	}
	if proxy.Radius != 2 || proxy.Radius2 != 4 {
		t.Fatalf("expected proxy radius 2; got %f", proxy.Radius)
	}
}

func TestLightSyncTracksRadius(t *testing.T) {
	l := NewLight("lamp")
	l.Radius, l.OrigRadius = 2, 2
	proxy := NewObject("bulb", "bulb")
	l.Attach(proxy)
	proxy.Corners()

	l.SetPosition(types.Vec3{5, 5, 5})
	if proxy.Position() != l.Position {
		t.Fatalf("expected proxy position %v; got %v", l.Position, proxy.Position())
	}
	if proxy.CacheValid() {
		t.Fatal("expected proxy cache to be invalidated by a move")
	}

	l.SetRadius(4)
	if proxy.Radius != 4 || proxy.Scale != 2 {
		t.Fatalf("expected radius 4 and scale 2; got %f and %f", proxy.Radius, proxy.Scale)
	}
}

func TestLightSetAmbientClamp(t *testing.T) {
	ls := LightSet{Ambient: types.Vec3{0.99, 0.5, 0.01}}

	ls.AdjustAmbient(0.02)
	if ls.Ambient[0] != 1 {
		t.Fatalf("expected ambient to clamp at 1; got %f", ls.Ambient[0])
	}

	ls.AdjustAmbient(-0.02)
	ls.AdjustAmbient(-0.02)
	if ls.Ambient[2] != 0 {
		t.Fatalf("expected ambient to clamp at 0; got %f", ls.Ambient[2])
	}
}

func TestLightSetByID(t *testing.T) {
	sun, lamp := NewLight("sun"), NewLight("lamp")
	ls := LightSet{Endless: []*Light{sun}, Falloff: []*Light{lamp}}

	if ls.ByID("sun") != sun || ls.ByID("lamp") != lamp || ls.ByID("moon") != nil {
		t.Fatal("unexpected light lookup result")
	}
	if ls.Len() != 2 {
		t.Fatalf("expected 2 lights; got %d", ls.Len())
	}
}
