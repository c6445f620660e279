package pack

import (
	"sort"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/model"
)

// potDefaultCap bounds power-of-two enumeration when the caller leaves
// max_width/max_height unconstrained; GPUs that require power-of-two
// atlases rarely exceed this in practice and an unbounded search would
// never terminate.
const potDefaultCap = 8192

// potStrategy enumerates power-of-two atlas dimensions and runs the Shelf
// sweep inside each, keeping the smallest feasible one. This satisfies
// optimize=gpu without the compact strategy's full MaxRects search.
type potStrategy struct{}

func (potStrategy) Name() model.StrategyID { return StrategyPOT }

func (potStrategy) Pack(rects []model.PackableRect, opts model.PackingOptions, limits model.SizeLimits) (model.PackResult, error) {
	maxW, maxH := limits.MaxWidth, limits.MaxHeight
	if maxW <= 0 {
		maxW = potDefaultCap
	}
	if maxH <= 0 {
		maxH = potDefaultCap
	}

	candidates := potCandidates(maxW, maxH)

	for _, c := range candidates {
		res, ok := shelfPack(rects, c.W, limits.Padding, opts.RotateAllowed, c.H)
		if !ok {
			continue
		}
		res.AtlasWidth = c.W
		res.AtlasHeight = c.H
		res.Strategy = StrategyPOT
		return res, nil
	}

	return model.PackResult{}, apperr.Newf(apperr.NoFeasiblePacking, "pack.potStrategy.Pack",
		"no power-of-two atlas up to %dx%d fits %d rectangles", maxW, maxH, len(rects))
}

func nextPOT(v int) int {
	if v <= 1 {
		return 1
	}
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// potCandidates lists every power-of-two (w,h) pair up to (maxW,maxH),
// ordered by area ascending and, on ties, by width ascending — so the
// first feasible candidate is the smallest and, among equal areas, the
// narrower one.
func potCandidates(maxW, maxH int) []model.Dimensions {
	var out []model.Dimensions
	for w := 1; w <= maxW; w <<= 1 {
		for h := 1; h <= maxH; h <<= 1 {
			out = append(out, model.Dimensions{W: w, H: h})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		areaI, areaJ := out[i].W*out[i].H, out[j].W*out[j].H
		if areaI != areaJ {
			return areaI < areaJ
		}
		return out[i].W < out[j].W
	})
	return out
}
