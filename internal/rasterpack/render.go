// Package rasterpack is the downstream pixel packer: it turns a parsed
// layout.Document back into atlas pixels by decoding each source image,
// applying the same scale the packing driver computed, cropping to the
// trimmed packable region, rotating where the layout says to, and
// blitting the result onto the atlas canvas.
package rasterpack

import (
	"image"
	"image/draw"
	"path/filepath"

	"github.com/nfnt/resize"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/imagemeta"
	"github.com/piwi3910/spritepack/internal/layout"
	"github.com/piwi3910/spritepack/internal/model"
)

// Render composes the full atlas image for doc. Relative paths in
// doc.Paths are resolved against baseDir.
func Render(doc layout.Document, baseDir string) (*image.RGBA, error) {
	canvas := image.NewRGBA(image.Rect(0, 0, doc.Layout.AtlasWidth, doc.Layout.AtlasHeight))

	for _, p := range doc.Layout.Placements {
		if p.SourceIndex < 0 || p.SourceIndex >= len(doc.Paths) {
			return nil, apperr.Newf(apperr.Usage, "rasterpack.Render", "placement references unknown source index %d", p.SourceIndex)
		}
		path := doc.Paths[p.SourceIndex]
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}

		sprite, err := loadSprite(path, p, doc.Layout.Scale)
		if err != nil {
			return nil, err
		}

		dstRect := image.Rect(p.X, p.Y, p.X+p.W, p.Y+p.H)
		draw.Draw(canvas, dstRect, sprite, image.Point{}, draw.Over)
	}

	return canvas, nil
}

// loadSprite decodes the source at path, scales it by the layout's
// global scale, crops out the trimmed W x H region the placement names,
// and rotates it if the placement says so, returning an image whose
// bounds start at (0,0) and match p.W x p.H exactly.
func loadSprite(path string, p model.Placement, scale float64) (image.Image, error) {
	img, err := imagemeta.DecodeImage(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	scaledW := uint(roundScale(float64(bounds.Dx()) * scale))
	scaledH := uint(roundScale(float64(bounds.Dy()) * scale))
	scaled := resize.Resize(scaledW, scaledH, img, resize.Lanczos3)

	cropW, cropH := p.W, p.H
	if p.Rotated {
		cropW, cropH = p.H, p.W
	}
	cropRect := image.Rect(p.Trim.Left, p.Trim.Top, p.Trim.Left+cropW, p.Trim.Top+cropH)

	cropped := image.NewRGBA(image.Rect(0, 0, cropW, cropH))
	draw.Draw(cropped, cropped.Bounds(), scaled, cropRect.Min, draw.Src)

	if !p.Rotated {
		return cropped, nil
	}
	return rotate90(cropped), nil
}

// rotate90 rotates src 90 degrees clockwise, matching the driver's
// rotation convention.
func rotate90(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(h-1-y, x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func roundScale(v float64) int {
	if v < 0 {
		return 0
	}
	return int(v + 0.5)
}
