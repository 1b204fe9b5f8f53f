package asset

import (
	"github.com/achilleasa/pray/scene"
	"github.com/achilleasa/pray/types"
)

// Read a material library. Each entry spans 9 raw lines: name, ambient,
// diffuse and specular colors, shininess, glossiness, reflectivity,
// transparency and a refraction index which is not used by the kernels.
func ReadMaterials(res *Resource) (*scene.MaterialSet, error) {
	r := newLineReader(res)

	if _, err := r.header(); err != nil {
		return nil, err
	}
	count, err := r.headerCount()
	if err != nil {
		return nil, err
	}

	set := &scene.MaterialSet{}
	for i := 0; i < count; i++ {
		name, err := r.next()
		if err != nil {
			return nil, err
		}

		var m scene.Material
		for _, v := range []*types.Vec3{&m.Ambient, &m.Diffuse, &m.Specular} {
			if *v, err = r.nextVec3(); err != nil {
				return nil, err
			}
		}
		for _, f := range []*float32{&m.Shininess, &m.Glossiness, &m.Reflectivity, &m.Transparency} {
			if *f, err = r.nextFloat(); err != nil {
				return nil, err
			}
		}
		if _, err = r.next(); err != nil {
			return nil, err
		}

		set.Add(name, m)
	}

	return set, nil
}
