package scene

import (
	"fmt"

	"github.com/achilleasa/pray/types"
)

const (
	// Number of object partitions.
	NumPartitions = 9

	// Partition holding light proxies and other negatively typed objects.
	LightsPartition = NumPartitions - 1
)

// A scene to be rendered.
type Scene struct {
	Camera    *Camera
	Materials *MaterialSet
	Lights    LightSet

	// LoD chains referenced by scene objects.
	Meshes   []*MeshChain
	Textures []*TextureChain

	Partitions [NumPartitions]ObjectSet
}

// Create an empty scene with a default camera.
func NewScene() *Scene {
	return &Scene{
		Camera:    NewCamera(types.Vec3{}, types.Vec3{}),
		Materials: &MaterialSet{},
	}
}

// Get the partition index for an object type tag.
func PartitionFor(objType int32) (int, error) {
	if objType < 0 {
		return LightsPartition, nil
	}
	if objType >= LightsPartition {
		return 0, fmt.Errorf("scene: invalid object type %d", objType)
	}
	return int(objType), nil
}

// Add an object to the partition selected by its type tag.
func (sc *Scene) AddObject(o *Object) error {
	p, err := PartitionFor(o.Type)
	if err != nil {
		return fmt.Errorf("%s (object %q)", err.Error(), o.ID)
	}
	sc.Partitions[p].Insert(o)
	return nil
}

// Invoke fn for every object of every partition in partition order.
func (sc *Scene) Each(fn func(*Object) error) error {
	for p := range sc.Partitions {
		if err := sc.Partitions[p].Each(fn); err != nil {
			return err
		}
	}
	return nil
}

// Get the total number of objects.
func (sc *Scene) ObjectCount() int {
	count := 0
	for p := range sc.Partitions {
		count += sc.Partitions[p].Len()
	}
	return count
}

// Find an object by ID across all partitions.
func (sc *Scene) ObjectByID(id string) *Object {
	for p := range sc.Partitions {
		if o := sc.Partitions[p].ByID(id); o != nil {
			return o
		}
	}
	return nil
}
