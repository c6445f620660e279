// Package fingerprint computes the stable cache key the persistent layout
// cache is keyed by: a hash over the normalized input list, the effective
// packing options, and the engine schema version.
package fingerprint

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/piwi3910/spritepack/internal/model"
)

// schemaVersion is bumped whenever the layout format or the set of
// fingerprint-relevant options changes in a way that should invalidate
// existing cache entries.
const schemaVersion = 1

// FileStat is the per-input fingerprint input: size and modification time
// are what the cache trusts, not file content.
type FileStat struct {
	Path    string
	Size    int64
	ModUnix int64
}

// Compute hashes a normalized view of the inputs and the effective options.
// Inputs are sorted by path first so fingerprint order never depends on
// directory-walk order, even though the emitted Layout itself preserves
// input order.
func Compute(inputs []FileStat, opts model.PackingOptions) string {
	sorted := make([]FileStat, len(inputs))
	copy(sorted, inputs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var b strings.Builder
	fmt.Fprintf(&b, "schema=%d\n", schemaVersion)
	for _, f := range sorted {
		fmt.Fprintf(&b, "f:%s:%d:%d\n", f.Path, f.Size, f.ModUnix)
	}
	writeOptions(&b, opts)

	h := xxhash.New()
	_, _ = h.Write([]byte(b.String()))
	return strconv.FormatUint(h.Sum64(), 16)
}

func writeOptions(b *strings.Builder, o model.PackingOptions) {
	fmt.Fprintf(b, "mode=%s\n", o.Mode)
	fmt.Fprintf(b, "optimize=%s\n", o.Optimize)
	fmt.Fprintf(b, "padding=%d\n", o.Padding)
	fmt.Fprintf(b, "maxw=%d\n", o.MaxWidth)
	fmt.Fprintf(b, "maxh=%d\n", o.MaxHeight)
	fmt.Fprintf(b, "maxcomb=%d\n", o.MaxCombinations)
	fmt.Fprintf(b, "scale=%g\n", o.Scale)
	fmt.Fprintf(b, "trim=%t\n", o.TrimTransparent)
	fmt.Fprintf(b, "rotate=%t\n", o.RotateAllowed)
	fmt.Fprintf(b, "resref=%s\n", o.ResolutionReference)
	if o.SourceResolution != nil {
		fmt.Fprintf(b, "srcres=%dx%d\n", o.SourceResolution.W, o.SourceResolution.H)
	}
	if o.TargetResolution != nil {
		fmt.Fprintf(b, "dstres=%dx%d\n", o.TargetResolution.W, o.TargetResolution.H)
	}
	// Threads intentionally excluded: it affects wall-clock, not the result.
}
