package tracer

// A device resident buffer.
type Buffer interface {
	// Get the buffer name.
	Name() string

	// Get the allocated size in bytes.
	Size() int

	// Free the device memory backing the buffer.
	Release()
}

// The device buffers backing a single mesh LoD entry.
type MeshBuffers struct {
	Vertices  Buffer
	Normals   Buffer
	Triangles Buffer
}

// Release buffers in reverse allocation order.
func (mb *MeshBuffers) Release() {
	release(&mb.Triangles)
	release(&mb.Normals)
	release(&mb.Vertices)
}

// The device buffers backing a single texture LoD entry. NormalMap is nil for
// textures without a normal map.
type TextureBuffers struct {
	Colors    Buffer
	NormalMap Buffer
}

// Release buffers in reverse allocation order.
func (tb *TextureBuffers) Release() {
	release(&tb.NormalMap)
	release(&tb.Colors)
}

func release(b *Buffer) {
	if *b != nil {
		(*b).Release()
		*b = nil
	}
}

// The byte sizes of the structs that the compute kernels expect.
type Layout struct {
	RenderInfo int
	ObjectInfo int
	MeshInfo   int
	SurfInfo   int
	Material   int
	Triangle   int
}

// Mesh arguments for a triangle intersection dispatch.
type MeshArgs struct {
	Buffers *MeshBuffers
	Info    []byte
}

// Texture arguments for a triangle intersection dispatch.
type TextureArgs struct {
	Buffers *TextureBuffers
	Info    []byte
}

// Accelerator wraps a compute device with the fixed set of entry points used
// for rendering a frame. Implementations only see byte blocks, buffers and
// pixel rectangles; they have no knowledge of scene semantics.
//
// Dispatches are submitted to a single in-order queue. GeneratePrimaryRays and
// Shade block until all previously submitted work has completed while the
// intersection dispatches return as soon as the work is enqueued.
type Accelerator interface {
	// Get the accelerator name.
	Name() string

	// Get the struct layout expected by the kernels.
	Layout() Layout

	// Allocate a device buffer and perform a blocking upload of data.
	Upload(name string, data []byte) (Buffer, error)

	// Upload the scene material table.
	SetMaterials(data []byte) error

	// Generate one ray per (sub-)pixel for the full frame and wait for completion.
	// The supplied RenderInfo block is reused by all dispatches until the next call.
	GeneratePrimaryRays(renderInfo []byte) error

	// Enqueue an analytic sphere intersection over a pixel rectangle.
	IntersectSphere(r Rect, object []byte) error

	// Enqueue a triangle mesh intersection over a pixel rectangle.
	IntersectMesh(r Rect, object []byte, mesh MeshArgs, tex TextureArgs) error

	// Resolve final pixel colors into the shared surface and wait for completion.
	Shade() error

	// Take ownership of the shared surface.
	AcquireSurface() error

	// Return ownership of the shared surface copying its contents to dst.
	ReleaseSurface(dst []byte) error

	// Release all device resources.
	Close()
}
