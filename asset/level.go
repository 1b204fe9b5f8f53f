package asset

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/achilleasa/pray/log"
	"github.com/achilleasa/pray/scene"
)

const (
	loaderQueueSize   = 256
	loaderIdleTimeout = time.Second
)

var logger = log.New("asset")

// Loader pools are shared by all level loads and keyed by worker count. Their
// workers live for the lifetime of the process.
var (
	loaderPoolMu sync.Mutex
	loaderPools  = map[int]worker.DynamicWorkerPool{}
)

func loaderPool(workers int) worker.DynamicWorkerPool {
	loaderPoolMu.Lock()
	defer loaderPoolMu.Unlock()

	pool, ok := loaderPools[workers]
	if !ok {
		pool = worker.NewDynamicWorkerPool(workers, loaderQueueSize, loaderIdleTimeout)
		loaderPools[workers] = pool
	}
	return pool
}

// Level loading options.
type LoadOptions struct {
	// Path or URL of the material library. When empty the scene gets an
	// empty material table and all triangles reference material -1.
	Materials string

	// Max number of concurrent chain decoders; defaults to the CPU count.
	Workers int
}

// Load a level and every asset it references into a new scene. Paths in the
// level and its list files are resolved relative to the referencing file.
func LoadLevel(levelPath string, opts LoadOptions) (*scene.Scene, error) {
	start := time.Now()
	logger.Noticef(`loading level from "%s"`, levelPath)

	sc := scene.NewScene()
	if opts.Materials != "" {
		res, err := NewResource(opts.Materials, nil)
		if err != nil {
			return nil, err
		}
		sc.Materials, err = ReadMaterials(res)
		res.Close()
		if err != nil {
			return nil, err
		}
		logger.Infof("loaded %d materials", sc.Materials.Len())
	}

	res, err := NewResource(levelPath, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	if err = readLevel(res, sc, opts.Workers); err != nil {
		return nil, err
	}

	logger.Noticef(
		"loaded level in %d ms: %d mesh chains, %d texture chains, %d objects, %d lights",
		time.Since(start).Nanoseconds()/1e6, len(sc.Meshes), len(sc.Textures), sc.ObjectCount(), sc.Lights.Len(),
	)
	return sc, nil
}

type levelHeader struct {
	meshCount, texCount, objCount int
	endlessCount, falloffCount    int
}

func readLevel(res *Resource, sc *scene.Scene, workers int) error {
	r := newLineReader(res)

	var hdr levelHeader
	if _, err := r.header(); err != nil {
		return err
	}
	for _, c := range []*int{&hdr.meshCount, &hdr.texCount, &hdr.objCount, &hdr.endlessCount, &hdr.falloffCount} {
		var err error
		if *c, err = r.headerCount(); err != nil {
			return err
		}
	}
	camPos, err := r.headerVec3()
	if err != nil {
		return err
	}
	camOri, err := r.headerVec3()
	if err != nil {
		return err
	}
	sc.Camera = scene.NewCamera(camPos, camOri)
	if sc.Lights.Ambient, err = r.headerVec3(); err != nil {
		return err
	}

	meshLists := make([]string, hdr.meshCount)
	for i := range meshLists {
		if meshLists[i], err = r.next(); err != nil {
			return err
		}
	}
	texLists := make([]string, hdr.texCount)
	for i := range texLists {
		if texLists[i], err = r.next(); err != nil {
			return err
		}
	}

	if sc.Meshes, sc.Textures, err = loadChains(res, meshLists, texLists, workers); err != nil {
		return err
	}

	for i := 0; i < hdr.objCount; i++ {
		if err = readLevelObject(r, sc); err != nil {
			return err
		}
	}

	if sc.Lights.Endless, err = readLevelLights(r, sc, hdr.endlessCount); err != nil {
		return err
	}
	if sc.Lights.Falloff, err = readLevelLights(r, sc, hdr.falloffCount); err != nil {
		return err
	}
	return nil
}

// Decode mesh and texture lists on a bounded worker pool. Chains are stored
// in list order and the first error in that order is returned.
func loadChains(levelRes *Resource, meshLists, texLists []string, workers int) ([]*scene.MeshChain, []*scene.TextureChain, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	meshes := make([]*scene.MeshChain, len(meshLists))
	textures := make([]*scene.TextureChain, len(texLists))
	errs := make([]error, len(meshLists)+len(texLists))
	if len(errs) == 0 {
		return meshes, textures, nil
	}

	pool := loaderPool(workers)
	var wg sync.WaitGroup
	submit := func(id int, fn func() error) {
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				errs[id] = fn()
				return nil, nil
			},
		})
	}

	for i, file := range meshLists {
		index, file := i, file
		submit(index, func() error {
			res, err := levelRes.Open(file)
			if err != nil {
				return err
			}
			defer res.Close()
			chain, err := ReadMeshChain(res)
			if err != nil {
				return err
			}
			chain.Index = uint32(index)
			for _, mesh := range chain.LoDs {
				mesh.Index = uint32(index)
			}
			meshes[index] = chain
			logger.Debugf("loaded mesh chain %q (%d LoD entries)", chain.ID, len(chain.LoDs))
			return nil
		})
	}
	for i, file := range texLists {
		index, file := i, file
		submit(len(meshLists)+index, func() error {
			res, err := levelRes.Open(file)
			if err != nil {
				return err
			}
			defer res.Close()
			chain, err := ReadTextureChain(res)
			if err != nil {
				return err
			}
			chain.Index = uint32(index)
			for _, tex := range chain.LoDs {
				tex.Index = uint32(index)
			}
			textures[index] = chain
			logger.Debugf("loaded texture chain %q (%d LoD entries)", chain.ID, len(chain.LoDs))
			return nil
		})
	}
	wg.Wait()

	for id, err := range errs {
		if err == nil {
			continue
		}
		file, kind := "", "mesh list"
		if id < len(meshLists) {
			file = meshLists[id]
		} else {
			file, kind = texLists[id-len(meshLists)], "texture list"
		}
		return nil, nil, fmt.Errorf("asset: could not load %s %q: %w", kind, file, err)
	}
	return meshes, textures, nil
}

// Read the 8 line object entry of a level.
func readLevelObject(r *lineReader, sc *scene.Scene) error {
	id, err := r.next()
	if err != nil {
		return err
	}
	o := scene.NewObject(id, "")

	meshRef, texRef, err := r.nextPair()
	if err != nil {
		return err
	}
	if meshRef != 0 && texRef != 0 {
		if meshRef < 0 || meshRef > len(sc.Meshes) {
			return r.errorf(ErrIndexOutOfRange, "object %q references mesh chain %d of %d", id, meshRef, len(sc.Meshes))
		}
		if texRef < 0 || texRef > len(sc.Textures) {
			return r.errorf(ErrIndexOutOfRange, "object %q references texture chain %d of %d", id, texRef, len(sc.Textures))
		}
		o.Mesh = sc.Meshes[meshRef-1]
		o.Texture = sc.Textures[texRef-1]
	}

	objFile, err := r.next()
	if err != nil {
		return err
	}
	if err = withResource(r, objFile, func(res *Resource) error { return ReadObject(res, o) }); err != nil {
		return err
	}

	texMap, err := r.next()
	if err != nil {
		return err
	}
	if texMap != nullRef {
		if err = withResource(r, texMap, func(res *Resource) error { return ApplyTexMap(res, o.Mesh, sc.Materials) }); err != nil {
			return err
		}
	}

	pos, err := r.nextVec3()
	if err != nil {
		return err
	}
	o.SetPosition(pos)
	o.LastPos = pos

	ori, err := r.nextVec3()
	if err != nil {
		return err
	}
	o.SetOrientation(ori)
	o.LastOri = ori

	if o.Rotation, err = r.nextVec3(); err != nil {
		return err
	}
	if o.Velocity, err = r.nextVec3(); err != nil {
		return err
	}

	if err = sc.AddObject(o); err != nil {
		return r.wrap(err)
	}
	return nil
}

// Read count 3 line light entries of a level.
func readLevelLights(r *lineReader, sc *scene.Scene, count int) ([]*scene.Light, error) {
	lights := make([]*scene.Light, 0, count)
	for i := 0; i < count; i++ {
		file, err := r.next()
		if err != nil {
			return nil, err
		}

		var l *scene.Light
		err = withResource(r, file, func(res *Resource) error {
			var err error
			l, err = ReadLight(res, sc)
			return err
		})
		if err != nil {
			return nil, err
		}

		pos, err := r.nextVec3()
		if err != nil {
			return nil, err
		}
		l.SetPosition(pos)
		if l.Direction, err = r.nextVec3(); err != nil {
			return nil, err
		}

		lights = append(lights, l)
	}
	return lights, nil
}

// Open a file referenced from the current line and pass it to fn.
func withResource(r *lineReader, file string, fn func(*Resource) error) error {
	res, err := r.res.Open(file)
	if err != nil {
		return referencedFrom(err, r)
	}
	defer res.Close()

	if err = fn(res); err != nil {
		return referencedFrom(err, r)
	}
	return nil
}
