package imagemeta

import (
	"image"

	"github.com/piwi3910/spritepack/internal/model"
)

// hasAlphaChannel reports whether img's color model can represent a
// non-opaque pixel at all. Images without alpha (e.g. YCbCr JPEGs) never
// need a bounds scan: their opaque bounds are the full image.
func hasAlphaChannel(img image.Image) bool {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64,
		*image.Paletted, *image.Alpha, *image.Alpha16, *image.NYCbCrA:
		return true
	default:
		return false
	}
}

// opaqueBounds scans img's alpha plane and returns the smallest
// axis-aligned rectangle covering every pixel with alpha > 0, relative to
// img's bounds origin. A fully transparent image yields a 1x1 rectangle
// at (0,0).
func opaqueBounds(img image.Image) model.Rect {
	b := img.Bounds()
	if !hasAlphaChannel(img) {
		return model.Rect{X: 0, Y: 0, W: b.Dx(), H: b.Dy()}
	}

	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y
	found := false

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			found = true
			if x < minX {
				minX = x
			}
			if y < minY {
				minY = y
			}
			if x > maxX {
				maxX = x
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if !found {
		return model.Rect{X: 0, Y: 0, W: 1, H: 1}
	}

	return model.Rect{
		X: minX - b.Min.X,
		Y: minY - b.Min.Y,
		W: maxX - minX + 1,
		H: maxY - minY + 1,
	}
}
