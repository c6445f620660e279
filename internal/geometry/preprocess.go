// Package geometry turns resolved source images into the rectangles the
// packing driver must place, applying scale composition, transparency
// trimming, and (at placement time, by the driver) padding.
package geometry

import (
	"fmt"
	"math"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/model"
)

// EffectiveScale composes options.Scale with the source/target resolution
// mapping: when both resolutions are given, compute
// rx = target_w/source_w, ry = target_h/source_h, pick max or min by
// ResolutionReference, and multiply into options.Scale.
func EffectiveScale(opts model.PackingOptions) (float64, error) {
	scale := opts.Scale

	if opts.SourceResolution != nil && opts.TargetResolution != nil {
		src, dst := opts.SourceResolution, opts.TargetResolution
		if src.W <= 0 || src.H <= 0 {
			return 0, apperr.Newf(apperr.Usage, "geometry.EffectiveScale", "source resolution must be positive, got %dx%d", src.W, src.H)
		}
		rx := float64(dst.W) / float64(src.W)
		ry := float64(dst.H) / float64(src.H)
		var r float64
		if opts.ResolutionReference == model.ReferenceSmallest {
			r = math.Min(rx, ry)
		} else {
			r = math.Max(rx, ry)
		}
		scale *= r
	}

	if !(scale > 0 && scale <= 1) {
		return 0, apperr.Newf(apperr.Usage, "geometry.EffectiveScale", "effective scale %g out of range (0,1]", scale)
	}
	return scale, nil
}

// Prepare computes the packable rectangle and trim metadata for every
// source image, in input order.
func Prepare(images []model.SourceImage, opts model.PackingOptions) ([]model.PackableRect, error) {
	scale, err := EffectiveScale(opts)
	if err != nil {
		return nil, err
	}

	out := make([]model.PackableRect, len(images))
	for i, img := range images {
		pr, err := prepareOne(i, img, scale, opts.TrimTransparent)
		if err != nil {
			return nil, err
		}
		out[i] = pr
	}
	return out, nil
}

func prepareOne(index int, img model.SourceImage, scale float64, trim bool) (model.PackableRect, error) {
	if trim && !img.HasOpaqueBounds {
		return model.PackableRect{}, apperr.Newf(apperr.Usage, "geometry.Prepare",
			"trimming requested but %s has no opaque bounds computed", img.Path)
	}

	var trimLeft, trimTop, trimRight, trimBottom int
	var scaledSourceW, scaledSourceH int
	var packW, packH int

	if trim {
		b := img.OpaqueBounds
		trimLeft = b.X
		trimTop = b.Y
		trimRight = img.Width - (b.X + b.W)
		trimBottom = img.Height - (b.Y + b.H)

		packW = maxInt(1, roundScale(float64(b.W)*scale))
		packH = maxInt(1, roundScale(float64(b.H)*scale))

		scaledSourceW = roundScale(float64(img.Width) * scale)
		scaledSourceH = roundScale(float64(img.Height) * scale)

		trimLeft = roundScale(float64(trimLeft) * scale)
		trimTop = roundScale(float64(trimTop) * scale)
		trimRight = scaledSourceW - packW - trimLeft
		if trimRight < 0 {
			trimRight = 0
		}
		trimBottom = scaledSourceH - packH - trimTop
		if trimBottom < 0 {
			trimBottom = 0
		}
	} else {
		packW = maxInt(1, roundScale(float64(img.Width)*scale))
		packH = maxInt(1, roundScale(float64(img.Height)*scale))
		scaledSourceW = packW
		scaledSourceH = packH
	}

	return model.PackableRect{
		SourceIndex:   index,
		W:             packW,
		H:             packH,
		Trim:          model.Trim{Left: trimLeft, Top: trimTop, Right: trimRight, Bottom: trimBottom},
		ScaledSourceW: scaledSourceW,
		ScaledSourceH: scaledSourceH,
	}, nil
}

func roundScale(v float64) int {
	return int(math.Round(v))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ParseDimensions parses a "WxH" flag value, used by --source-resolution
// and --target-resolution.
func ParseDimensions(s string) (model.Dimensions, error) {
	var w, h int
	n, err := fmt.Sscanf(s, "%dx%d", &w, &h)
	if err != nil || n != 2 || w <= 0 || h <= 0 {
		return model.Dimensions{}, apperr.Newf(apperr.Usage, "geometry.ParseDimensions", "malformed WxH: %q", s)
	}
	return model.Dimensions{W: w, H: h}, nil
}
