package asset

import (
	"fmt"

	"github.com/achilleasa/pray/scene"
	"github.com/achilleasa/pray/types"
)

const formatText = 0

// Read a mesh LoD entry.
func ReadMesh(res *Resource) (*scene.Mesh, error) {
	r := newLineReader(res)

	if _, err := r.header(); err != nil {
		return nil, err
	}
	format, err := r.headerInt()
	if err != nil {
		return nil, err
	}
	vCount, err := r.headerCount()
	if err != nil {
		return nil, err
	}
	nCount, err := r.headerCount()
	if err != nil {
		return nil, err
	}
	tCount, err := r.headerCount()
	if err != nil {
		return nil, err
	}

	mesh := &scene.Mesh{
		Vertices:  make([]types.Vec3, vCount),
		Normals:   make([]types.Vec3, nCount),
		Triangles: make([]scene.Triangle, tCount),
	}
	if mesh.Center, err = r.headerVec3(); err != nil {
		return nil, err
	}
	if mesh.Radius, err = r.headerFloat(); err != nil {
		return nil, err
	}
	if mesh.ID, err = r.header(); err != nil {
		return nil, err
	}

	for i := range mesh.Vertices {
		if mesh.Vertices[i], err = r.nextVec3(); err != nil {
			return nil, err
		}
	}
	for i := range mesh.Normals {
		if mesh.Normals[i], err = r.nextVec3(); err != nil {
			return nil, err
		}
	}

	if format != formatText {
		return nil, r.errorf(ErrUnsupportedFormat, "mesh format %d", format)
	}

	for i := range mesh.Triangles {
		tri := &mesh.Triangles[i]
		if err = readTriangle(r, tri, uint32(vCount), uint32(nCount)); err != nil {
			return nil, err
		}
	}

	for i := range mesh.BoundBox {
		if mesh.BoundBox[i], err = r.nextVec3(); err != nil {
			return nil, err
		}
	}

	return mesh, nil
}

// Read the vertex and normal index lines of a triangle. A single normal index
// marks a flat triangle.
func readTriangle(r *lineReader, tri *scene.Triangle, vCount, nCount uint32) error {
	vi, err := r.nextIndices()
	if err != nil {
		return err
	}
	if len(vi) != 3 {
		return r.errorf(ErrSyntax, "expected 3 vertex indices; got %d", len(vi))
	}
	for i, idx := range vi {
		if idx >= vCount {
			return r.errorf(ErrIndexOutOfRange, "vertex index %d (vertex count %d)", idx, vCount)
		}
		tri.Vertices[i] = idx
	}

	ni, err := r.nextIndices()
	if err != nil {
		return err
	}
	for i, idx := range ni {
		if idx >= nCount {
			return r.errorf(ErrIndexOutOfRange, "normal index %d (normal count %d)", idx, nCount)
		}
		tri.Normals[i] = idx
	}
	tri.Type = scene.SmoothTriangle
	if len(ni) == 1 {
		tri.Type = scene.FlatTriangle
	}
	tri.MatIndex = -1
	return nil
}

// Read a mesh list and all the LoD entries it references. Entry paths are
// built by concatenating the list directory and the entry line and are
// resolved relative to the list resource.
func ReadMeshChain(res *Resource) (*scene.MeshChain, error) {
	r := newLineReader(res)

	if _, err := r.header(); err != nil {
		return nil, err
	}
	lodCount, err := r.headerCount()
	if err != nil {
		return nil, err
	}
	id, err := r.header()
	if err != nil {
		return nil, err
	}
	dir, err := r.header()
	if err != nil {
		return nil, err
	}

	chain := &scene.MeshChain{ID: id, LoDs: make([]*scene.Mesh, lodCount)}
	for i := range chain.LoDs {
		file, err := r.next()
		if err != nil {
			return nil, err
		}

		mesh, err := readMeshFile(res, dir+file)
		if err != nil {
			return nil, referencedFrom(err, r)
		}
		mesh.ID = fmt.Sprintf("%s_LoD%d", id, i)
		chain.LoDs[i] = mesh
	}

	return chain, nil
}

func readMeshFile(relTo *Resource, file string) (*scene.Mesh, error) {
	res, err := relTo.Open(file)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	return ReadMesh(res)
}
