package transformpack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/spritepack/internal/layout"
	"github.com/piwi3910/spritepack/internal/model"
)

func sampleDoc() layout.Document {
	return layout.Document{
		Layout: model.Layout{
			AtlasWidth:  16,
			AtlasHeight: 16,
			Scale:       1,
			Placements:  []model.Placement{{SourceIndex: 0, X: 1, Y: 2, W: 3, H: 4}},
		},
		Paths: []string{"hero.png"},
	}
}

func TestRenderExecutesTemplate(t *testing.T) {
	tmpl := `{{.AtlasWidth}}x{{.AtlasHeight}} {{range .Sprites}}{{.Path}}@{{.X}},{{.Y}}{{end}}`
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleDoc(), tmpl))
	assert.Equal(t, "16x16 hero.png@1,2", buf.String())
}

func TestRenderRejectsMalformedTemplate(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleDoc(), `{{.Bogus`)
	assert.Error(t, err)
}

func TestBuildDataRejectsUnknownSourceIndex(t *testing.T) {
	doc := sampleDoc()
	doc.Layout.Placements[0].SourceIndex = 9
	_, err := BuildData(doc)
	assert.Error(t, err)
}
