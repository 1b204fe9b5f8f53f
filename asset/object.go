package asset

import (
	"strconv"
	"strings"

	"github.com/achilleasa/pray/scene"
	"github.com/achilleasa/pray/types"
)

// Read an object definition. The mesh and texture chains must be attached to
// o before calling ReadObject so mesh objects can inherit their bounds.
func ReadObject(res *Resource, o *scene.Object) error {
	r := newLineReader(res)

	if _, err := r.header(); err != nil {
		return err
	}

	for _, f := range []scene.Flag{scene.FlagStatic, scene.FlagSolid, scene.FlagVisible, scene.FlagOccluder, scene.FlagShowBackFaces} {
		on, err := r.headerBool()
		if err != nil {
			return err
		}
		o.Set(f, on)
	}

	tier, err := r.headerCount()
	if err != nil {
		return err
	}
	o.MaxDistTier = uint32(tier)

	if o.Scale, err = r.headerFloat(); err != nil {
		return err
	}
	if o.OrigMass, err = r.headerFloat(); err != nil {
		return err
	}
	o.Mass = o.OrigMass

	objType, err := r.headerInt()
	if err != nil {
		return err
	}
	o.Type = int32(objType)

	if o.Name, err = r.header(); err != nil {
		return err
	}

	if o.Type >= 0 {
		if o.BaseMesh() == nil {
			return r.errorf(ErrMissingMesh, "object %q has type %d", o.ID, o.Type)
		}
		o.FitMesh()
	}
	return nil
}

// Apply a texture map to every LoD entry of a mesh chain. Each triangle entry
// consists of a "texIndex materialName" line followed by 3 u,v lines.
// Unknown material names map to index -1.
func ApplyTexMap(res *Resource, chain *scene.MeshChain, materials *scene.MaterialSet) error {
	r := newLineReader(res)

	if _, err := r.header(); err != nil {
		return err
	}
	format, err := r.headerInt()
	if err != nil {
		return err
	}
	if format != formatText {
		return r.errorf(ErrUnsupportedFormat, "texture map format %d", format)
	}
	if chain == nil {
		return nil
	}

	var uv [3]types.Vec2
	for _, mesh := range chain.LoDs {
		for i := range mesh.Triangles {
			line, err := r.next()
			if err != nil {
				return err
			}
			key, matName := line, ""
			if idx := strings.IndexByte(line, ' '); idx != -1 {
				key, matName = line[:idx], line[idx+1:]
			}
			texIndex, err := strconv.ParseUint(key, 10, 32)
			if err != nil {
				return r.errorf(ErrSyntax, "invalid texture index %q", key)
			}

			for j := range uv {
				if uv[j], err = r.nextVec2(); err != nil {
					return err
				}
			}

			mesh.Triangles[i].UpdateTex(uint32(texIndex), materials.IndexByName(matName), uv)
		}
	}
	return nil
}
