package pack

import (
	"sort"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/model"
)

// shelfStrategy is the "fast" packing strategy: a single deterministic
// left-to-right, top-to-bottom shelf sweep with no backtracking. It is
// the cheapest strategy the driver can pick and the one pot.go reuses
// to fill each power-of-two candidate.
type shelfStrategy struct{}

func (shelfStrategy) Name() model.StrategyID { return StrategyShelf }

func (shelfStrategy) Pack(rects []model.PackableRect, opts model.PackingOptions, limits model.SizeLimits) (model.PackResult, error) {
	width := limits.MaxWidth
	if width <= 0 {
		width = shelfWidthTarget(rects, limits.Padding)
	}
	result, ok := shelfPack(rects, width, limits.Padding, opts.RotateAllowed, limits.MaxHeight)
	if !ok {
		return model.PackResult{}, apperr.Newf(apperr.NoFeasiblePacking, "pack.shelfStrategy.Pack",
			"no arrangement of %d rectangles fits within %dx%d", len(rects), limits.MaxWidth, limits.MaxHeight)
	}
	result.Strategy = StrategyShelf
	return result, nil
}

// shelfWidthTarget picks a starting atlas width when the caller left
// max_width unconstrained: twice the widest padded rectangle, capped at
// the summed padded width of all rectangles and never below the widest
// one.
func shelfWidthTarget(rects []model.PackableRect, padding int) int {
	widest := 0
	total := 0
	for _, r := range rects {
		w := r.W + padding
		if w > widest {
			widest = w
		}
		total += w
	}
	if widest == 0 {
		return 1
	}
	// Any width at least as wide as the widest rectangle is feasible when
	// height is unconstrained; shelfPack itself decides how many shelves
	// it actually needs under this width.
	target := widest * 2
	if target > total {
		target = total
	}
	if target < widest {
		target = widest
	}
	return target
}

// shelfOrder sorts rectangle indices by height descending, tie-broken by
// width descending, then input order.
func shelfOrder(rects []model.PackableRect) []int {
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := rects[order[i]], rects[order[j]]
		if a.H != b.H {
			return a.H > b.H
		}
		return a.W > b.W
	})
	return order
}

// shelfPack sweeps rectangles (in shelfOrder) left-to-right within width,
// starting a new shelf when the current one cannot hold the next
// rectangle. maxHeight of 0 means unconstrained. Rotation, when allowed,
// is used only for a rectangle wider than the whole atlas width whose
// rotated width fits; a rectangle that merely overflows the current
// shelf moves to a new shelf unrotated.
func shelfPack(rects []model.PackableRect, width, padding int, rotateAllowed bool, maxHeight int) (model.PackResult, bool) {
	if width <= 0 {
		return model.PackResult{}, len(rects) == 0
	}

	order := shelfOrder(rects)
	placements := make([]model.Placement, 0, len(rects))

	cursorX, cursorY, shelfHeight := 0, 0, 0
	maxUsedWidth := 0

	for _, idx := range order {
		r := rects[idx]
		w, h := r.W+padding, r.H+padding
		rotated := false

		if w > width {
			if rotateAllowed && h <= width {
				w, h, rotated = h, w, true
			} else {
				return model.PackResult{}, false
			}
		}

		if cursorX+w > width {
			cursorX = 0
			cursorY += shelfHeight
			shelfHeight = 0
		}
		if !rotateAllowed && w > width {
			return model.PackResult{}, false
		}

		if maxHeight > 0 && cursorY+h > maxHeight {
			return model.PackResult{}, false
		}

		reportW, reportH := r.W, r.H
		if rotated {
			reportW, reportH = r.H, r.W
		}
		placements = append(placements, model.Placement{
			SourceIndex: idx,
			X:           cursorX,
			Y:           cursorY,
			W:           reportW,
			H:           reportH,
			Trim:        r.Trim,
			Rotated:     rotated,
		})

		cursorX += w
		if cursorX > maxUsedWidth {
			maxUsedWidth = cursorX
		}
		if h > shelfHeight {
			shelfHeight = h
		}
	}

	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].SourceIndex < placements[j].SourceIndex
	})

	return model.PackResult{
		AtlasWidth:  maxUsedWidth,
		AtlasHeight: cursorY + shelfHeight,
		Placements:  placements,
	}, true
}
