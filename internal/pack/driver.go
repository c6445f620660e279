package pack

import (
	"context"
	"math"
	"sort"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/geometry"
	"github.com/piwi3910/spritepack/internal/model"
	"github.com/piwi3910/spritepack/internal/workpool"
)

// driverState names the stages the Driver moves through while resolving
// a compact-mode candidate search. It exists for diagnostics (it is
// reported in NoFeasiblePacking errors) rather than for any consumer to
// branch on.
type driverState int

const (
	stateIdle driverState = iota
	stateEnumerating
	stateDispatched
	stateScoring
	stateSelected
	stateFinalized
	stateFailed
)

func (s driverState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateEnumerating:
		return "enumerating"
	case stateDispatched:
		return "dispatched"
	case stateScoring:
		return "scoring"
	case stateSelected:
		return "selected"
	case stateFinalized:
		return "finalized"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Driver resolves a PackMode into a final model.Layout, owning the
// compact strategy's candidate-size search and the padding-stripped,
// origin-relative finalization every strategy's raw PackResult passes
// through before becoming a Layout.
type Driver struct {
	pool *workpool.Pool
}

func NewDriver(pool *workpool.Pool) *Driver {
	return &Driver{pool: pool}
}

// Run packs rects under opts and returns the finalized Layout. ctx
// governs the compact strategy's parallel candidate dispatch; it is
// unused by the fast and pot strategies, which are single-threaded and
// return immediately.
func (d *Driver) Run(ctx context.Context, rects []model.PackableRect, opts model.PackingOptions) (model.Layout, error) {
	limits := model.SizeLimits{MaxWidth: opts.MaxWidth, MaxHeight: opts.MaxHeight, Padding: opts.Padding}

	var result model.PackResult
	var err error

	switch opts.Mode {
	case model.ModeCompact:
		result, err = d.runCompact(ctx, rects, opts, limits)
	default:
		var strat Strategy
		strat, err = Select(opts.Mode)
		if err == nil {
			result, err = strat.Pack(rects, opts, limits)
		}
	}
	if err != nil {
		return model.Layout{}, err
	}

	return finalize(result, rects, opts), nil
}

// runCompact drives the compact strategy's candidate search: width
// doubling from the larger of the widest padded rectangle and the square
// root of the total padded area, each width paired with a
// binary search over height for the smallest feasible value, the whole
// sweep capped by opts.MaxCombinations and dispatched across the pool.
func (d *Driver) runCompact(ctx context.Context, rects []model.PackableRect, opts model.PackingOptions, limits model.SizeLimits) (model.PackResult, error) {
	state := stateEnumerating
	if len(rects) == 0 {
		return model.PackResult{AtlasWidth: 0, AtlasHeight: 0}, nil
	}

	minW, minH := minimalSides(rects, opts.Padding)
	maxW, maxH := limits.MaxWidth, limits.MaxHeight
	if maxW <= 0 {
		maxW = potDefaultCap
	}
	if maxH <= 0 {
		maxH = potDefaultCap
	}
	if minW > maxW || minH > maxH {
		return model.PackResult{}, boundsError("pack.Driver.runCompact", minW, minH, maxW, maxH)
	}

	// No width below the square root of the total padded area can hold
	// every rectangle in a square-ish atlas, so the sweep starts there
	// (clamped to maxW).
	var area int64
	for _, r := range rects {
		area += int64(r.W+opts.Padding) * int64(r.H+opts.Padding)
	}
	if side := int(math.Ceil(math.Sqrt(float64(area)))); side > minW {
		minW = minInt(side, maxW)
	}

	widths := candidateWidths(minW, maxW, opts.MaxCombinations)

	state = stateDispatched
	results, err := workpool.Run(ctx, d.pool, len(widths), func(_ context.Context, i int) (*model.PackResult, error) {
		res, ok := bestHeightForWidth(rects, widths[i], minH, maxH, opts)
		if !ok {
			return nil, nil
		}
		return &res, nil
	})
	if err != nil {
		return model.PackResult{}, apperr.New(apperr.Internal, "pack.Driver.runCompact", err)
	}

	state = stateScoring
	var best *model.PackResult
	var bestP1, bestP2, bestP3 int64
	for _, r := range results {
		if r == nil {
			continue
		}
		p1, p2, p3 := scoreResult(*r, opts)
		if best == nil ||
			p1 < bestP1 ||
			(p1 == bestP1 && p2 < bestP2) ||
			(p1 == bestP1 && p2 == bestP2 && p3 < bestP3) {
			best, bestP1, bestP2, bestP3 = r, p1, p2, p3
		}
	}

	if best == nil {
		state = stateFailed
		return model.PackResult{}, apperr.Newf(apperr.NoFeasiblePacking, "pack.Driver.runCompact",
			"no compact arrangement of %d rectangles fits within %dx%d (state=%s)", len(rects), maxW, maxH, state)
	}

	state = stateSelected
	_ = state
	return *best, nil
}

// minimalSides returns the narrowest width and height that could ever
// hold the widest/tallest single rectangle, the floor below which no
// candidate can possibly be feasible.
func minimalSides(rects []model.PackableRect, padding int) (int, int) {
	minW, minH := 1, 1
	for _, r := range rects {
		if w := r.W + padding; w > minW {
			minW = w
		}
		if h := r.H + padding; h > minH {
			minH = h
		}
	}
	return minW, minH
}

// candidateWidths doubles from minW up to maxW, capped so the total
// candidate count never exceeds maxCombinations (0 means unbounded).
func candidateWidths(minW, maxW, maxCombinations int) []int {
	var widths []int
	for w := minW; w <= maxW; w *= 2 {
		widths = append(widths, w)
		if maxCombinations > 0 && len(widths) >= maxCombinations {
			return widths
		}
	}
	if len(widths) == 0 {
		widths = []int{minW}
	}
	return widths
}

// bestHeightForWidth binary-searches the smallest height at which the
// compact strategy can place every rectangle within the given width.
func bestHeightForWidth(rects []model.PackableRect, width, minH, maxH int, opts model.PackingOptions) (model.PackResult, bool) {
	lo, hi := minH, maxH
	var feasible *model.PackResult

	for lo <= hi {
		mid := lo + (hi-lo)/2
		if res, ok := compactCandidate(rects, width, mid, opts); ok {
			feasible = &res
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}

	if feasible == nil {
		return model.PackResult{}, false
	}
	return *feasible, true
}

// scoreResult returns (primary, secondary, tertiary) with lower always
// better. optimize=gpu ranks by the longer atlas side first (the
// dimension a GPU texture-size limit actually bounds), then area, then
// the width/height imbalance. optimize=space ranks by area first, then
// the longer side.
func scoreResult(res model.PackResult, opts model.PackingOptions) (int64, int64, int64) {
	area := int64(res.AtlasWidth) * int64(res.AtlasHeight)
	maxSide := int64(maxInt(res.AtlasWidth, res.AtlasHeight))
	if opts.Optimize == model.OptimizeSpace {
		return area, maxSide, 0
	}
	imbalance := int64(absInt(res.AtlasWidth - res.AtlasHeight))
	return maxSide, area, imbalance
}

// finalize restores input order and attaches the atlas-level metadata
// (scale) the caller needs to produce a model.Layout. It does not touch
// placement sizes: strategies never put padding in their placements' W/H
// (padding is consumed purely as spacing during the search), so
// finalize's job here is ordering and envelope assembly.
func finalize(result model.PackResult, rects []model.PackableRect, opts model.PackingOptions) model.Layout {
	placements := make([]model.Placement, len(result.Placements))
	copy(placements, result.Placements)
	sort.SliceStable(placements, func(i, j int) bool {
		return placements[i].SourceIndex < placements[j].SourceIndex
	})

	// Prepare already validated these options when it built rects, so an
	// error here would mean Driver was called without going through it.
	scale, err := geometry.EffectiveScale(opts)
	if err != nil {
		scale = opts.Scale
	}

	return model.Layout{
		AtlasWidth:  result.AtlasWidth,
		AtlasHeight: result.AtlasHeight,
		Scale:       scale,
		Placements:  placements,
	}
}
