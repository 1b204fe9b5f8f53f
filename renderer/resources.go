package renderer

import (
	"fmt"

	"github.com/achilleasa/pray/log"
	"github.com/achilleasa/pray/scene"
	"github.com/achilleasa/pray/tracer"
)

// ResourceManager owns the device copies of the scene mesh and texture LoD
// chains. Buffers are uploaded once when the scene is loaded and released
// once at teardown.
type ResourceManager struct {
	logger log.Logger
	accel  tracer.Accelerator

	meshes   []*scene.MeshChain
	textures []*scene.TextureChain

	// Total uploaded bytes.
	uploaded int
}

// Create a resource manager that allocates buffers on accel.
func NewResourceManager(accel tracer.Accelerator) *ResourceManager {
	return &ResourceManager{
		logger: log.New("resources"),
		accel:  accel,
	}
}

// Upload the mesh chains, then the texture chains and finally the material
// table of sc. On failure any buffers uploaded so far are released.
func (rm *ResourceManager) Load(sc *scene.Scene) error {
	if sc == nil {
		return ErrSceneNotDefined
	}
	if rm.meshes != nil || rm.textures != nil {
		return ErrResourcesLoaded
	}

	for _, chain := range sc.Meshes {
		rm.meshes = append(rm.meshes, chain)
		for _, mesh := range chain.LoDs {
			if err := rm.uploadMesh(mesh); err != nil {
				rm.Release()
				return err
			}
		}
	}

	for _, chain := range sc.Textures {
		rm.textures = append(rm.textures, chain)
		for _, tex := range chain.LoDs {
			if err := rm.uploadTexture(tex); err != nil {
				rm.Release()
				return err
			}
		}
	}

	var materials []byte
	if sc.Materials != nil {
		materials = sc.Materials.Marshal()
	}
	if err := rm.accel.SetMaterials(materials); err != nil {
		rm.Release()
		return err
	}

	rm.logger.Infof("uploaded %d mesh chains and %d texture chains (%d bytes)", len(rm.meshes), len(rm.textures), rm.uploaded)
	return nil
}

func (rm *ResourceManager) upload(name string, data []byte) (tracer.Buffer, error) {
	buf, err := rm.accel.Upload(name, data)
	if err != nil {
		return nil, fmt.Errorf("renderer: could not upload %s: %s", name, err.Error())
	}
	rm.uploaded += len(data)
	return buf, nil
}

func (rm *ResourceManager) uploadMesh(mesh *scene.Mesh) error {
	var err error
	if mesh.Buffers.Vertices, err = rm.upload(mesh.ID+"/vertices", scene.MarshalVec3s(mesh.Vertices)); err != nil {
		return err
	}
	if mesh.Buffers.Normals, err = rm.upload(mesh.ID+"/normals", scene.MarshalVec3s(mesh.Normals)); err != nil {
		return err
	}
	mesh.Buffers.Triangles, err = rm.upload(mesh.ID+"/triangles", mesh.MarshalTriangles())
	return err
}

func (rm *ResourceManager) uploadTexture(tex *scene.Texture) error {
	var err error
	if tex.Buffers.Colors, err = rm.upload(tex.ID+"/colors", tex.Surface.Marshal()); err != nil {
		return err
	}
	if tex.NormalMap != nil {
		tex.Buffers.NormalMap, err = rm.upload(tex.ID+"/normals", tex.NormalMap.Marshal())
	}
	return err
}

// Release all device buffers. Texture chains are released before mesh chains,
// each in reverse load order. Calling Release more than once is a no-op.
func (rm *ResourceManager) Release() {
	for i := len(rm.textures) - 1; i >= 0; i-- {
		rm.textures[i].Release()
	}
	for i := len(rm.meshes) - 1; i >= 0; i-- {
		rm.meshes[i].Release()
	}

	rm.textures = nil
	rm.meshes = nil
	rm.uploaded = 0
}
