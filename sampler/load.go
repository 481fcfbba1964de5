package sampler

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultScale leaves a 5% transparent margin on each side of the logo.
const DefaultScale = 0.9

// LoadLogo decodes the image at path and returns its pixels drawn into a
// side×side transparent canvas, scaled to side*scale and centered.
func LoadLogo(path string, side int, scale float64) (Pixels, error) {
	f, err := os.Open(path)
	if err != nil {
		return Pixels{}, fmt.Errorf("opening logo: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Pixels{}, fmt.Errorf("decoding logo %s: %w", path, err)
	}

	return Fit(img, side, scale), nil
}

// Fit draws img into a side×side canvas scaled to side*scale and centered,
// stretching to a square like a canvas drawImage call.
func Fit(img image.Image, side int, scale float64) Pixels {
	if side <= 0 {
		return Pixels{}
	}
	if scale <= 0 || scale > 1 {
		scale = DefaultScale
	}

	dst := image.NewNRGBA(image.Rect(0, 0, side, side))
	size := int(float64(side)*scale + 0.5)
	offset := (side - size) / 2
	rect := image.Rect(offset, offset, offset+size, offset+size)

	xdraw.CatmullRom.Scale(dst, rect, img, img.Bounds(), xdraw.Over, nil)

	return Pixels{Side: side, Pix: dst.Pix}
}
