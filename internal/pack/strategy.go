// Package pack implements the three packing strategies and the driver
// that selects, drives, and scores them.
package pack

import (
	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/model"
)

// Strategy is the common contract for the self-contained packers: given
// rectangles to place and size limits, produce a PackResult or report that
// the rectangles cannot be packed under any size the strategy is willing
// to try. Strategies borrow rects read-only and return placements by
// value; they never share mutable state with the driver or each other.
type Strategy interface {
	Name() model.StrategyID
	Pack(rects []model.PackableRect, opts model.PackingOptions, limits model.SizeLimits) (model.PackResult, error)
}

const (
	StrategyShelf   model.StrategyID = "fast"
	StrategyCompact model.StrategyID = "compact"
	StrategyPOT     model.StrategyID = "pot"
)

// Select returns the Strategy value for a PackMode. Compact is handled
// separately by Driver (its candidate search is driver-owned per the design
// §4.4), so Select only resolves the two self-contained modes.
func Select(mode model.PackMode) (Strategy, error) {
	switch mode {
	case model.ModeFast:
		return shelfStrategy{}, nil
	case model.ModePOT:
		return potStrategy{}, nil
	case model.ModeCompact:
		return nil, apperr.Newf(apperr.Internal, "pack.Select", "compact mode is driven by Driver, not Select")
	default:
		return nil, apperr.Newf(apperr.Usage, "pack.Select", "unknown packing mode: %q", mode)
	}
}

func boundsError(op string, w, h, maxW, maxH int) error {
	return apperr.Newf(apperr.NoFeasiblePacking, op,
		"rectangle %dx%d exceeds limits %dx%d", w, h, maxW, maxH)
}
