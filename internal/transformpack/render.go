// Package transformpack is the downstream transform renderer: it feeds a
// parsed layout.Document through a user-supplied text/template to
// produce engine-specific atlas metadata (JSON, XML, custom formats)
// without spritepack needing to know about any of them.
package transformpack

import (
	"io"
	"text/template"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/layout"
)

// Sprite is the per-placement view a template sees; field names are
// exported Go identifiers so they read naturally as {{.Path}}, {{.X}},
// and so on inside a template.
type Sprite struct {
	Path    string
	X, Y    int
	W, H    int
	TrimL   int
	TrimT   int
	TrimR   int
	TrimB   int
	Rotated bool
}

// Data is the top-level value a transform template executes against.
type Data struct {
	AtlasWidth  int
	AtlasHeight int
	Scale       float64
	Sprites     []Sprite
}

// BuildData flattens a layout.Document into the template-facing Data
// shape.
func BuildData(doc layout.Document) (Data, error) {
	d := Data{
		AtlasWidth:  doc.Layout.AtlasWidth,
		AtlasHeight: doc.Layout.AtlasHeight,
		Scale:       doc.Layout.Scale,
		Sprites:     make([]Sprite, len(doc.Layout.Placements)),
	}
	for i, p := range doc.Layout.Placements {
		if p.SourceIndex < 0 || p.SourceIndex >= len(doc.Paths) {
			return Data{}, apperr.Newf(apperr.Usage, "transformpack.BuildData", "placement references unknown source index %d", p.SourceIndex)
		}
		d.Sprites[i] = Sprite{
			Path: doc.Paths[p.SourceIndex],
			X:    p.X, Y: p.Y, W: p.W, H: p.H,
			TrimL: p.Trim.Left, TrimT: p.Trim.Top, TrimR: p.Trim.Right, TrimB: p.Trim.Bottom,
			Rotated: p.Rotated,
		}
	}
	return d, nil
}

// Render parses templateText and executes it against doc's flattened
// Data, writing the result to w.
func Render(w io.Writer, doc layout.Document, templateText string) error {
	data, err := BuildData(doc)
	if err != nil {
		return err
	}

	tmpl, err := template.New("transform").Parse(templateText)
	if err != nil {
		return apperr.New(apperr.Usage, "transformpack.Render", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return apperr.New(apperr.Internal, "transformpack.Render", err)
	}
	return nil
}
