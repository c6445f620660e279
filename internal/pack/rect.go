package pack

import "github.com/piwi3910/spritepack/internal/model"

// freeRectSet is the MaxRects free-space bookkeeping shared by the compact
// strategy: a list of free rectangles that shrinks and splits on every
// placement, generalized from a single best-area-fit heuristic to the
// full five-heuristic set and from float64 millimeters to integer pixels.
type freeRectSet struct {
	rects []model.Rect
}

func newFreeRectSet(w, h int) *freeRectSet {
	return &freeRectSet{rects: []model.Rect{{X: 0, Y: 0, W: w, H: h}}}
}

// place records that a w x h rectangle was placed at (x,y), splitting
// every overlapping free rectangle into its non-overlapping remainder
// pieces and pruning any rectangle now fully contained in another.
func (f *freeRectSet) place(x, y, w, h int) {
	placed := model.Rect{X: x, Y: y, W: w, H: h}
	var next []model.Rect

	for _, r := range f.rects {
		if !rectsOverlap(r, placed) {
			next = append(next, r)
			continue
		}
		// Left strip
		if placed.X > r.X {
			next = append(next, model.Rect{X: r.X, Y: r.Y, W: placed.X - r.X, H: r.H})
		}
		// Right strip
		if placed.X+placed.W < r.X+r.W {
			next = append(next, model.Rect{X: placed.X + placed.W, Y: r.Y, W: (r.X + r.W) - (placed.X + placed.W), H: r.H})
		}
		// Top strip
		if placed.Y > r.Y {
			next = append(next, model.Rect{X: r.X, Y: r.Y, W: r.W, H: placed.Y - r.Y})
		}
		// Bottom strip
		if placed.Y+placed.H < r.Y+r.H {
			next = append(next, model.Rect{X: r.X, Y: placed.Y + placed.H, W: r.W, H: (r.Y + r.H) - (placed.Y + placed.H)})
		}
	}

	f.rects = pruneContained(next)
}

func rectsOverlap(a, b model.Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

func containsRect(outer, inner model.Rect) bool {
	return outer.X <= inner.X && outer.Y <= inner.Y &&
		outer.X+outer.W >= inner.X+inner.W &&
		outer.Y+outer.H >= inner.Y+inner.H
}

func pruneContained(rects []model.Rect) []model.Rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]model.Rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i != j && containsRect(b, a) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
