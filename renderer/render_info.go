package renderer

import (
	"encoding/binary"
	"math"

	"github.com/achilleasa/pray/scene"
	"github.com/achilleasa/pray/types"
)

// Size of the serialized RenderInfo block.
const RenderInfoSize = 128

// Per-frame parameters shared by all dispatches of a tick.
type RenderInfo struct {
	AA         AAInfo
	PixelsX    uint32
	TransDepth uint32

	FocalLength float32
	Aperture    float32

	CamPos types.Vec3
	CamOri types.Vec3
	CamFwd types.Vec3
	CamRgt types.Vec3
	CamUp  types.Vec3

	// Direction of the ray through the bottom-left corner of the screen plane.
	BottomLeft types.Vec3
}

// Snapshot camera state for a frame.
func NewRenderInfo(opts *Options, cam *scene.Camera) (*RenderInfo, error) {
	aa, err := aaParams(opts.AASubRays)
	if err != nil {
		return nil, err
	}

	return &RenderInfo{
		AA:          aa,
		PixelsX:     opts.FrameW,
		TransDepth:  opts.TransparencyDepth,
		FocalLength: cam.FocalLength,
		Aperture:    cam.Aperture,
		CamPos:      cam.Position,
		CamOri:      cam.Orientation,
		CamFwd:      cam.Forward,
		CamRgt:      cam.Right,
		CamUp:       cam.Up,
		BottomLeft:  cam.BottomLeftRay(opts.FrameW, opts.FrameH),
	}, nil
}

// Serialize the 128 byte RenderInfo block.
func (ri *RenderInfo) Marshal() []byte {
	out := make([]byte, RenderInfoSize)
	le := binary.LittleEndian
	le.PutUint32(out[0:], ri.AA.Level)
	le.PutUint32(out[4:], ri.AA.Dim)
	le.PutUint32(out[8:], math.Float32bits(ri.AA.Inc))
	le.PutUint32(out[12:], math.Float32bits(ri.AA.Div))
	le.PutUint32(out[16:], ri.PixelsX)
	le.PutUint32(out[20:], ri.TransDepth)
	le.PutUint32(out[24:], math.Float32bits(ri.FocalLength))
	le.PutUint32(out[28:], math.Float32bits(ri.Aperture))

	for i, v := range []types.Vec3{ri.CamPos, ri.CamOri, ri.CamFwd, ri.CamRgt, ri.CamUp, ri.BottomLeft} {
		off := 32 + i*16
		for c := 0; c < 3; c++ {
			le.PutUint32(out[off+c*4:], math.Float32bits(v[c]))
		}
	}
	return out
}
