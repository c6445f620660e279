package layout

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/spritepack/internal/model"
)

func sampleDoc() Document {
	return Document{
		Layout: model.Layout{
			AtlasWidth:  64,
			AtlasHeight: 32,
			Scale:       0.5,
			Placements: []model.Placement{
				{SourceIndex: 0, X: 0, Y: 0, W: 16, H: 16, Trim: model.Trim{Left: 1, Top: 1, Right: 2, Bottom: 2}},
				{SourceIndex: 1, X: 16, Y: 0, W: 8, H: 8, Rotated: true},
			},
		},
		Paths: []string{`assets/player "hero".png`, `assets\enemy.png`},
	}
}

func TestEmitParseRoundTrip(t *testing.T) {
	doc := sampleDoc()
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, doc))

	got, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Layout.AtlasWidth, got.Layout.AtlasWidth)
	assert.Equal(t, doc.Layout.AtlasHeight, got.Layout.AtlasHeight)
	assert.Equal(t, doc.Layout.Scale, got.Layout.Scale)
	assert.Equal(t, doc.Layout.Placements, got.Layout.Placements)
	assert.Equal(t, doc.Paths, got.Paths)
}

func TestParseRejectsMissingAtlas(t *testing.T) {
	_, err := Parse(bytes.NewBufferString("scale 1\n"))
	assert.Error(t, err)
}

func TestParseRejectsUnknownDirective(t *testing.T) {
	_, err := Parse(bytes.NewBufferString("atlas 1,1\nscale 1\nbogus\n"))
	assert.Error(t, err)
}

func TestParseDedupesRepeatedPaths(t *testing.T) {
	text := "atlas 10,10\nscale 1\n" +
		`sprite "a.png" 0,0 2,2` + "\n" +
		`sprite "a.png" 2,0 2,2` + "\n"
	doc, err := Parse(bytes.NewBufferString(text))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png"}, doc.Paths)
	assert.Equal(t, 0, doc.Layout.Placements[0].SourceIndex)
	assert.Equal(t, 0, doc.Layout.Placements[1].SourceIndex)
}

func TestEmitUsesTwoPairTrimGrammar(t *testing.T) {
	doc := Document{
		Layout: model.Layout{
			AtlasWidth: 1, AtlasHeight: 1, Scale: 1,
			Placements: []model.Placement{
				{SourceIndex: 0, X: 0, Y: 0, W: 1, H: 1, Trim: model.Trim{Left: 1, Top: 1, Right: 2, Bottom: 2}},
			},
		},
		Paths: []string{"sprite.png"},
	}
	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, doc))
	assert.Contains(t, buf.String(), `sprite "sprite.png" 0,0 1,1 1,1 2,2`)
}

func TestParseHandlesTrimmedAndRotatedSprite(t *testing.T) {
	text := "atlas 4,4\nscale 1\n" + `sprite "a.png" 0,0 1,1 1,1 2,2 rotated` + "\n"
	doc, err := Parse(bytes.NewBufferString(text))
	require.NoError(t, err)
	require.Len(t, doc.Layout.Placements, 1)
	p := doc.Layout.Placements[0]
	assert.Equal(t, model.Trim{Left: 1, Top: 1, Right: 2, Bottom: 2}, p.Trim)
	assert.True(t, p.Rotated)
}

func TestEmitRejectsOutOfRangeSourceIndex(t *testing.T) {
	doc := Document{
		Layout: model.Layout{Placements: []model.Placement{{SourceIndex: 5}}},
		Paths:  []string{"only.png"},
	}
	var buf bytes.Buffer
	assert.Error(t, Emit(&buf, doc))
}
