package asset

import (
	"errors"
	"strings"
	"testing"

	"github.com/achilleasa/pray/scene"
	"github.com/achilleasa/pray/types"
)

func streamResource(payload string) *Resource {
	return NewResourceFromStream("embedded", strings.NewReader(payload))
}

func TestReadMesh(t *testing.T) {
	specs := []struct {
		smooth  bool
		expType scene.TriangleType
		expNorm [3]uint32
	}{
		{false, scene.FlatTriangle, [3]uint32{0, 0, 0}},
		{true, scene.SmoothTriangle, [3]uint32{0, 1, 2}},
	}

	for index, s := range specs {
		mesh, err := ReadMesh(streamResource(testMeshFile(s.smooth)))
		if err != nil {
			t.Fatalf("[spec %d] %v", index, err)
		}

		if len(mesh.Vertices) != 3 || len(mesh.Triangles) != 1 {
			t.Fatalf("[spec %d] expected 3 vertices and 1 triangle; got %d, %d", index, len(mesh.Vertices), len(mesh.Triangles))
		}
		tri := mesh.Triangles[0]
		if tri.Type != s.expType {
			t.Fatalf("[spec %d] expected triangle type %d; got %d", index, s.expType, tri.Type)
		}
		if tri.Normals != s.expNorm {
			t.Fatalf("[spec %d] expected normal indices %v; got %v", index, s.expNorm, tri.Normals)
		}
		if tri.Vertices != [3]uint32{0, 1, 2} {
			t.Fatalf("[spec %d] expected vertex indices [0 1 2]; got %v", index, tri.Vertices)
		}
		if tri.MatIndex != -1 {
			t.Fatalf("[spec %d] expected unassigned material -1; got %d", index, tri.MatIndex)
		}
		if mesh.Radius != 2 || mesh.ID != "tri" {
			t.Fatalf("[spec %d] unexpected mesh header: radius %f, id %q", index, mesh.Radius, mesh.ID)
		}
		if exp := (types.Vec3{-1, -1, -1}); mesh.BoundBox[7] != exp {
			t.Fatalf("[spec %d] expected last bounding box corner %v; got %v", index, exp, mesh.BoundBox[7])
		}
	}
}

func TestReadMeshErrors(t *testing.T) {
	valid := testMeshFile(false)

	specs := []struct {
		payload string
		expErr  error
	}{
		{strings.Replace(valid, "format 0", "format 1", 1), ErrUnsupportedFormat},
		{strings.Replace(valid, "0,1,2\n0\n", "0,1,3\n0\n", 1), ErrIndexOutOfRange},
		{strings.Replace(valid, "0,1,2\n0\n", "0,1,2\n1\n", 1), ErrIndexOutOfRange},
		{strings.Replace(valid, "0,1,2\n0\n", "0,1\n0\n", 1), ErrSyntax},
		{strings.Replace(valid, "radius 2", "radius two", 1), ErrSyntax},
		{strings.Replace(valid, "vertices 3", "vertices -3", 1), ErrSyntax},
		{valid[:strings.Index(valid, "-1,-1,-1")], ErrUnexpectedEOF},
	}

	for index, s := range specs {
		_, err := ReadMesh(streamResource(s.payload))
		if !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected error %v; got %v", index, s.expErr, err)
		}
		if !strings.HasPrefix(err.Error(), "[embedded: ") {
			t.Fatalf("[spec %d] expected error to include the resource location; got %v", index, err)
		}
	}
}

func TestReadMaterials(t *testing.T) {
	payload := lines(
		"version 1",
		"count 2",
		"red", "0.1,0,0", "1,0,0", "1,1,1", "10", "0.5", "0.2", "0", "1.5",
		"glass", "0,0,0", "0.9,0.9,1", "1,1,1", "50", "1", "0.1", "0.8", "1.33",
	)
	// Windows line endings are accepted.
	payload = strings.Replace(payload, "\n", "\r\n", -1)

	set, err := ReadMaterials(streamResource(payload))
	if err != nil {
		t.Fatal(err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 materials; got %d", set.Len())
	}
	if idx := set.IndexByName("glass"); idx != 1 {
		t.Fatalf("expected glass at index 1; got %d", idx)
	}

	glass := set.Materials[1]
	if exp := (types.Vec3{0.9, 0.9, 1}); glass.Diffuse != exp {
		t.Fatalf("expected diffuse %v; got %v", exp, glass.Diffuse)
	}
	if glass.Shininess != 50 || glass.Glossiness != 1 || !approxEq(glass.Reflectivity, 0.1) || !approxEq(glass.Transparency, 0.8) {
		t.Fatalf("unexpected material scalars: %+v", glass)
	}

	if _, err = ReadMaterials(streamResource(lines("version 1", "count 1", "red", "1,0,0"))); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("expected ErrUnexpectedEOF; got %v", err)
	}
}

func TestApplyTexMapFormat(t *testing.T) {
	err := ApplyTexMap(streamResource(lines("version 1", "format 1")), nil, &scene.MaterialSet{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat; got %v", err)
	}

	if err = ApplyTexMap(streamResource(lines("version 1", "format 0")), nil, &scene.MaterialSet{}); err != nil {
		t.Fatalf("expected a texture map for an object without a mesh to be ignored; got %v", err)
	}
}

func TestReadObjectLightProxy(t *testing.T) {
	o := scene.NewObject("lamp", "")
	err := ReadObject(streamResource(lines(
		"version 1",
		"static 0",
		"solid 0",
		"visible 1",
		"occluder 1",
		"backfaces 0",
		"maxdist 4",
		"scale 1.5",
		"mass 2",
		"type -3",
		"name Street Lamp",
	)), o)
	if err != nil {
		t.Fatal(err)
	}

	if o.Name != "Street Lamp" {
		t.Fatalf("expected name 'Street Lamp'; got %q", o.Name)
	}
	if o.Type != -3 || o.Scale != 1.5 || o.MaxDistTier != 4 {
		t.Fatalf("unexpected object header: type %d, scale %f, tier %d", o.Type, o.Scale, o.MaxDistTier)
	}
	if o.Has(scene.FlagStatic) || o.Has(scene.FlagSolid) || !o.Has(scene.FlagOccluder) {
		t.Fatalf("unexpected object flags %x", o.Flags)
	}
	if p, _ := scene.PartitionFor(o.Type); p != scene.LightsPartition {
		t.Fatalf("expected negative types to map to the lights partition; got %d", p)
	}
}
