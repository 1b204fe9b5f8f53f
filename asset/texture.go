package asset

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/achilleasa/pray/scene"
	"github.com/achilleasa/pray/types"
)

const nullRef = "null"

// Decode an image resource (bmp or png).
func decodeImage(res *Resource) (image.Image, error) {
	img, _, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("asset: could not decode image %s: %w", res.Path(), err)
	}
	return img, nil
}

func surfInfo(b image.Rectangle) scene.SurfInfo {
	w, h := uint32(b.Dx()), uint32(b.Dy())
	return scene.SurfInfo{Layers: 1, Height: h, Width: w, Count: w * h}
}

// Visit image pixels bottom row first so row 0 of the surface is the last row
// of the image.
func eachPixelBottomUp(img image.Image, fn func(c color.NRGBA)) {
	b := img.Bounds()
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			fn(color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA))
		}
	}
}

// Convert an image into a color surface.
func NewSurface(img image.Image) scene.Surface {
	surf := scene.Surface{SurfInfo: surfInfo(img.Bounds())}
	surf.Colors = make([]scene.Color, 0, surf.Count)
	eachPixelBottomUp(img, func(c color.NRGBA) {
		surf.Colors = append(surf.Colors, scene.Color{R: c.R, G: c.G, B: c.B, A: c.A})
	})
	return surf
}

// Convert an image into a normal map with components in [-1, 1].
func NewNormalMap(img image.Image) *scene.NormalMap {
	nm := &scene.NormalMap{SurfInfo: surfInfo(img.Bounds())}
	nm.Vectors = make([]types.Vec3, 0, nm.Count)
	eachPixelBottomUp(img, func(c color.NRGBA) {
		nm.Vectors = append(nm.Vectors, types.XYZ(
			float32(c.R)/255*2-1,
			float32(c.G)/255*2-1,
			float32(c.B)/255*2-1,
		))
	})
	return nm
}

func readImageFile(relTo *Resource, file string) (image.Image, error) {
	res, err := relTo.Open(file)
	if err != nil {
		return nil, err
	}
	defer res.Close()
	return decodeImage(res)
}

// Read a texture list and all the surfaces it references. Each LoD entry
// consists of a color bitmap line and a normal map line which may be "null".
func ReadTextureChain(res *Resource) (*scene.TextureChain, error) {
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

	chain := &scene.TextureChain{ID: id, LoDs: make([]*scene.Texture, lodCount)}
	for i := range chain.LoDs {
		tex := &scene.Texture{ID: fmt.Sprintf("%s_LoD%d", id, i)}

		file, err := r.next()
		if err != nil {
			return nil, err
		}
		img, err := readImageFile(res, dir+file)
		if err != nil {
			return nil, referencedFrom(err, r)
		}
		tex.Surface = NewSurface(img)

		if file, err = r.next(); err != nil {
			return nil, err
		}
		if file != nullRef {
			if img, err = readImageFile(res, dir+file); err != nil {
				return nil, referencedFrom(err, r)
			}
			tex.NormalMap = NewNormalMap(img)
		}

		chain.LoDs[i] = tex
	}

	return chain, nil
}
