package rasterpack

import (
	"image"
	"image/png"
	"io"

	"github.com/piwi3910/spritepack/internal/apperr"
)

// EncodePNG writes img to w using the standard library encoder, the same
// external-library-delegation boundary that governs decoding applied
// symmetrically to the one format this packer emits.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return apperr.New(apperr.Internal, "rasterpack.EncodePNG", err)
	}
	return nil
}
