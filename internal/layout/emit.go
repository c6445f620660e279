// Package layout implements the plain-text layout grammar that serves
// as the contract between the packing driver and downstream tools: one
// atlas header, one scale line, then one sprite line per placement.
package layout

import (
	"fmt"
	"io"
	"strconv"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/model"
)

// Document pairs a Layout with the source paths its placements reference
// by index — the Layout type itself carries no path strings, only
// indices, so the two travel together across the text boundary.
type Document struct {
	Layout model.Layout
	Paths  []string
}

// Emit writes a Document in the layout grammar:
//
//	atlas W,H
//	scale F
//	sprite "path" X,Y W,H [trim_left,trim_top trim_right,trim_bottom] [rotated]
//
// one sprite line per placement, in placement order. Paths are quoted
// with Go string-literal escaping, so backslashes and embedded quotes
// round-trip through Parse unambiguously.
func Emit(w io.Writer, doc Document) error {
	if _, err := fmt.Fprintf(w, "atlas %d,%d\n", doc.Layout.AtlasWidth, doc.Layout.AtlasHeight); err != nil {
		return apperr.New(apperr.Internal, "layout.Emit", err)
	}
	if _, err := fmt.Fprintf(w, "scale %s\n", formatScale(doc.Layout.Scale)); err != nil {
		return apperr.New(apperr.Internal, "layout.Emit", err)
	}

	for _, p := range doc.Layout.Placements {
		if p.SourceIndex < 0 || p.SourceIndex >= len(doc.Paths) {
			return apperr.Newf(apperr.Internal, "layout.Emit", "placement references unknown source index %d", p.SourceIndex)
		}
		line := fmt.Sprintf("sprite %s %d,%d %d,%d", strconv.Quote(doc.Paths[p.SourceIndex]), p.X, p.Y, p.W, p.H)
		if !p.Trim.IsZero() {
			line += fmt.Sprintf(" %d,%d %d,%d", p.Trim.Left, p.Trim.Top, p.Trim.Right, p.Trim.Bottom)
		}
		if p.Rotated {
			line += " rotated"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return apperr.New(apperr.Internal, "layout.Emit", err)
		}
	}
	return nil
}

// formatScale trims trailing zeros so "1" emits as "1", not "1.000000".
func formatScale(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
