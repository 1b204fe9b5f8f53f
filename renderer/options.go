package renderer

import "fmt"

// The number of max view distance tiers.
const NumDistanceTiers = 4

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of AA sub-rays per pixel (1, 4, 9 or 16).
	AASubRays uint32

	// Number of transparency layers traced per ray (1-4).
	TransparencyDepth uint32

	// Max view distance for each distance tier.
	MaxDistances [NumDistanceTiers]float32

	// Coefficient for converting cursor movement to camera rotation.
	MouseSensitivity float32

	// Reproduce the vertical screen culling of earlier releases which
	// compares the vertical extent against the frame width and seeds the
	// running max with 0.
	LegacyScreenCull bool
}

// Get the default options.
func DefaultOptions() Options {
	return Options{
		FrameW:            1280,
		FrameH:            720,
		AASubRays:         1,
		TransparencyDepth: 1,
		MaxDistances:      [NumDistanceTiers]float32{1000, 2000, 4000, 8000},
		MouseSensitivity:  0.005,
	}
}

// Validate options.
func (o *Options) Validate() error {
	if o.FrameW == 0 || o.FrameH == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidFrameSize, o.FrameW, o.FrameH)
	}
	if _, err := aaParams(o.AASubRays); err != nil {
		return err
	}
	if o.TransparencyDepth < 1 || o.TransparencyDepth > 4 {
		return fmt.Errorf("%w: %d", ErrInvalidTransparencyDepth, o.TransparencyDepth)
	}
	for tier, dist := range o.MaxDistances {
		if !(dist > 0) {
			return fmt.Errorf("%w: tier %d = %f", ErrInvalidMaxDistance, tier+1, dist)
		}
	}
	return nil
}

// Per-pixel AA sampling parameters.
type AAInfo struct {
	// Number of sub-rays per pixel.
	Level uint32

	// Sub-ray grid dimension.
	Dim uint32

	// Offset between grid samples.
	Inc float32

	// Offset of the first sample.
	Div float32
}

func aaParams(subRays uint32) (AAInfo, error) {
	switch subRays {
	case 1:
		return AAInfo{Level: 1, Dim: 1, Inc: 1, Div: 1}, nil
	case 4:
		return AAInfo{Level: 4, Dim: 2, Inc: 0.5, Div: 0.25}, nil
	case 9:
		return AAInfo{Level: 9, Dim: 3, Inc: 1.0 / 3.0, Div: 1.0 / 6.0}, nil
	case 16:
		return AAInfo{Level: 16, Dim: 4, Inc: 0.25, Div: 0.125}, nil
	}
	return AAInfo{}, fmt.Errorf("%w: got %d", ErrInvalidAALevel, subRays)
}
