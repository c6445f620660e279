package pack

import (
	"sort"

	"github.com/piwi3910/spritepack/internal/model"
)

// heuristic names one of the five MaxRects scoring rules. The compact
// strategy runs the full set against a single candidate atlas size and
// keeps whichever heuristic placed the most rectangles (ties broken by
// wasted area), mirroring a free-rectangle packer that tries several
// rotation strategies per sheet and keeps the best result.
type heuristic int

const (
	heurBestShortSideFit heuristic = iota
	heurBestLongSideFit
	heurBestAreaFit
	heurBottomLeft
	heurContactPoint
)

// allHeuristics fixes the iteration order: short-side, long-side, area,
// bottom-left, contact point, in that order, with the first heuristic to
// tie on the final score/unplaced-count comparison winning.
var allHeuristics = []heuristic{
	heurBestShortSideFit, heurBestLongSideFit, heurBestAreaFit, heurBottomLeft, heurContactPoint,
}

// compactPlaceOrder returns rect indices sorted by area descending,
// tie-broken by longer side descending, then input order.
func compactPlaceOrder(rects []model.PackableRect) []int {
	order := make([]int, len(rects))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := rects[order[i]], rects[order[j]]
		areaA, areaB := a.W*a.H, b.W*b.H
		if areaA != areaB {
			return areaA > areaB
		}
		longA, longB := maxInt(a.W, a.H), maxInt(b.W, b.H)
		return longA > longB
	})
	return order
}

// compactCandidate is one feasible (or infeasible) trial of the compact
// strategy at a fixed atlas size: stateless and independent, safe to run
// concurrently across the driver's worker pool.
func compactCandidate(rects []model.PackableRect, w, h int, opts model.PackingOptions) (model.PackResult, bool) {
	order := compactPlaceOrder(rects)
	pad := opts.Padding

	var bestPlacements []model.Placement
	bestUnplaced := len(rects) + 1
	bestWaste := int64(-1)

	for _, heur := range allHeuristics {
		placements, unplaced, waste, ok := runHeuristic(rects, order, w, h, pad, opts.RotateAllowed, heur)
		if !ok {
			continue
		}
		if unplaced < bestUnplaced || (unplaced == bestUnplaced && (bestWaste < 0 || waste < bestWaste)) {
			bestUnplaced = unplaced
			bestWaste = waste
			bestPlacements = placements
		}
	}

	if bestPlacements == nil || bestUnplaced > 0 {
		return model.PackResult{}, false
	}

	// Placements were accumulated per source index out of input order
	// (heuristics place by area descending); restore input order here so
	// every strategy hands the driver placements in input order.
	sort.SliceStable(bestPlacements, func(i, j int) bool {
		return bestPlacements[i].SourceIndex < bestPlacements[j].SourceIndex
	})

	return model.PackResult{
		AtlasWidth:  w,
		AtlasHeight: h,
		Placements:  bestPlacements,
		Strategy:    StrategyCompact,
	}, true
}

func runHeuristic(rects []model.PackableRect, order []int, w, h, pad int, rotateAllowed bool, heur heuristic) ([]model.Placement, int, int64, bool) {
	free := newFreeRectSet(w, h)
	var placed []model.Rect
	var placements []model.Placement
	unplaced := 0
	var placedArea int64

	for _, idx := range order {
		r := rects[idx]
		cw, ch := r.W+pad, r.H+pad

		bestFreeIdx := -1
		bestRotated := false
		var bestP1, bestP2 int64
		haveBest := false

		for fi, fr := range free.rects {
			if p1, p2, ok := scoreCandidate(fr, cw, ch, w, h, placed, heur); ok {
				if !haveBest || better(p1, p2, bestP1, bestP2) {
					haveBest, bestFreeIdx, bestRotated, bestP1, bestP2 = true, fi, false, p1, p2
				}
			}
			if rotateAllowed && cw != ch {
				if p1, p2, ok := scoreCandidate(fr, ch, cw, w, h, placed, heur); ok {
					if !haveBest || better(p1, p2, bestP1, bestP2) {
						haveBest, bestFreeIdx, bestRotated, bestP1, bestP2 = true, fi, true, p1, p2
					}
				}
			}
		}

		if !haveBest {
			unplaced++
			continue
		}

		fr := free.rects[bestFreeIdx]
		placeW, placeH := cw, ch
		if bestRotated {
			placeW, placeH = ch, cw
		}
		free.place(fr.X, fr.Y, placeW, placeH)
		placed = append(placed, model.Rect{X: fr.X, Y: fr.Y, W: placeW, H: placeH})
		placedArea += int64(placeW) * int64(placeH)

		reportW, reportH := r.W, r.H
		if bestRotated {
			reportW, reportH = r.H, r.W
		}
		placements = append(placements, model.Placement{
			SourceIndex: idx,
			X:           fr.X,
			Y:           fr.Y,
			W:           reportW,
			H:           reportH,
			Trim:        r.Trim,
			Rotated:     bestRotated,
		})
	}

	waste := int64(w)*int64(h) - placedArea
	return placements, unplaced, waste, true
}

// scoreCandidate returns (primary, secondary, fits) for placing a cw x ch
// rectangle at free rect fr, under heuristic heur. Lower (primary,
// secondary) is always better; ContactPointRule's natural "higher contact
// is better" is negated to fit that convention.
func scoreCandidate(fr model.Rect, cw, ch, binW, binH int, placed []model.Rect, heur heuristic) (int64, int64, bool) {
	if cw > fr.W || ch > fr.H {
		return 0, 0, false
	}
	leftoverW := fr.W - cw
	leftoverH := fr.H - ch

	switch heur {
	case heurBestShortSideFit:
		return int64(minInt(leftoverW, leftoverH)), int64(maxInt(leftoverW, leftoverH)), true
	case heurBestLongSideFit:
		return int64(maxInt(leftoverW, leftoverH)), int64(minInt(leftoverW, leftoverH)), true
	case heurBestAreaFit:
		return int64(fr.W)*int64(fr.H) - int64(cw)*int64(ch), int64(minInt(leftoverW, leftoverH)), true
	case heurBottomLeft:
		return int64(fr.Y), int64(fr.X), true
	case heurContactPoint:
		return -contactLength(fr.X, fr.Y, cw, ch, binW, binH, placed), int64(fr.Y), true
	default:
		return int64(minInt(leftoverW, leftoverH)), int64(maxInt(leftoverW, leftoverH)), true
	}
}

func better(p1, p2, q1, q2 int64) bool {
	if p1 != q1 {
		return p1 < q1
	}
	return p2 < q2
}

func contactLength(x, y, w, h, binW, binH int, placed []model.Rect) int64 {
	var length int64
	if x == 0 {
		length += int64(h)
	}
	if y == 0 {
		length += int64(w)
	}
	if x+w == binW {
		length += int64(h)
	}
	if y+h == binH {
		length += int64(w)
	}
	for _, p := range placed {
		if p.X+p.W == x {
			length += int64(overlap1D(p.Y, p.Y+p.H, y, y+h))
		}
		if x+w == p.X {
			length += int64(overlap1D(p.Y, p.Y+p.H, y, y+h))
		}
		if p.Y+p.H == y {
			length += int64(overlap1D(p.X, p.X+p.W, x, x+w))
		}
		if y+h == p.Y {
			length += int64(overlap1D(p.X, p.X+p.W, x, x+w))
		}
	}
	return length
}

func overlap1D(aLo, aHi, bLo, bHi int) int {
	lo := maxInt(aLo, bLo)
	hi := minInt(aHi, bHi)
	if hi <= lo {
		return 0
	}
	return hi - lo
}
