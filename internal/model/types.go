// Package model holds the data types shared by every stage of the layout
// pipeline: image metadata, the geometry preprocessor, the packing
// strategies and driver, the emitter, and the persistent cache.
package model

// Rect is a plain axis-aligned integer rectangle, used for opaque bounds
// and free-space bookkeeping inside the packing strategies.
type Rect struct {
	X, Y, W, H int
}

// SourceImage describes one input image resolved by the metadata provider.
// OpaqueBounds is present iff trimming was requested; HasOpaqueBounds
// distinguishes "not requested" from "equals the full image".
type SourceImage struct {
	Path            string
	Width           int
	Height          int
	OpaqueBounds    Rect
	HasOpaqueBounds bool
}

// Trim records how much of a scaled source image's border was removed by
// transparency trimming, in the packed (already-scaled) coordinate space.
type Trim struct {
	Left, Top, Right, Bottom int
}

// IsZero reports whether every trim component is zero.
func (t Trim) IsZero() bool {
	return t.Left == 0 && t.Top == 0 && t.Right == 0 && t.Bottom == 0
}

// PackableRect is the geometry preprocessor's output for one source image:
// the rectangle that must be packed, plus enough trim/scale metadata for
// the driver to reconstruct a Placement.
type PackableRect struct {
	SourceIndex int
	W, H        int // packable size, already scaled, trim excluded
	Trim        Trim
	ScaledSourceW int // W + Trim.Left + Trim.Right
	ScaledSourceH int // H + Trim.Top + Trim.Bottom
}

// Placement is where one source image ended up inside the atlas.
type Placement struct {
	SourceIndex int
	X, Y        int
	W, H        int // post-rotation packed size (trim excluded, padding excluded)
	Trim        Trim
	Rotated     bool
}

// Layout is the full result of a packing run, in input order.
type Layout struct {
	AtlasWidth  int
	AtlasHeight int
	Scale       float64
	Placements  []Placement
}

// PackMode selects a packing strategy.
type PackMode string

const (
	ModeCompact PackMode = "compact"
	ModePOT     PackMode = "pot"
	ModeFast    PackMode = "fast"
)

// OptimizeTarget selects the driver's scoring priority.
type OptimizeTarget string

const (
	OptimizeGPU   OptimizeTarget = "gpu"
	OptimizeSpace OptimizeTarget = "space"
)

// ResolutionReference selects which axis dominates source/target resolution
// mapping when both axes disagree on ratio.
type ResolutionReference string

const (
	ReferenceLargest  ResolutionReference = "largest"
	ReferenceSmallest ResolutionReference = "smallest"
)

// Dimensions is a plain WxH pair, used for --source-resolution and
// --target-resolution.
type Dimensions struct {
	W, H int
}

// PackingOptions carries every knob that affects the layout, from the
// geometry preprocessor through to the packing driver. It is threaded
// through the call stack explicitly; nothing here is global state.
type PackingOptions struct {
	Mode     PackMode
	Optimize OptimizeTarget

	Padding          int
	MaxWidth         int // 0 = unlimited
	MaxHeight        int // 0 = unlimited
	MaxCombinations  int // 0 = unlimited
	Scale            float64

	TrimTransparent bool
	RotateAllowed   bool

	SourceResolution    *Dimensions
	TargetResolution    *Dimensions
	ResolutionReference ResolutionReference

	Threads int
}

// DefaultOptions returns the built-in defaults a profile or flag set starts
// from before overrides are applied.
func DefaultOptions() PackingOptions {
	return PackingOptions{
		Mode:                ModeCompact,
		Optimize:            OptimizeGPU,
		Padding:             0,
		MaxCombinations:     0,
		Scale:               1.0,
		TrimTransparent:     false,
		RotateAllowed:       false,
		ResolutionReference: ReferenceLargest,
		Threads:             0, // 0 means "use CPU count", resolved by workpool.
	}
}

// SizeLimits is the subset of PackingOptions a Strategy needs to know about
// hard bounds; kept separate so strategies don't need the whole options
// struct to stay pure.
type SizeLimits struct {
	MaxWidth  int
	MaxHeight int
	Padding   int
}

// StrategyID names a packing strategy for deterministic tie-breaking in the
// driver's scoring step.
type StrategyID string

// PackResult is what a Strategy returns for one candidate attempt.
type PackResult struct {
	AtlasWidth  int
	AtlasHeight int
	Placements  []Placement
	Strategy    StrategyID
}

// Infeasible reports that a strategy could not pack the given rectangles
// into any size it was willing to try (or into the one size it was asked
// to try, for compact trials).
type Infeasible struct {
	Reason string
}

func (i *Infeasible) Error() string { return "infeasible: " + i.Reason }
