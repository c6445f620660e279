package rasterpack

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/spritepack/internal/layout"
	"github.com/piwi3910/spritepack/internal/model"
)

func writeRedSquare(t *testing.T, dir, name string, size int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestRenderProducesCorrectSizedAtlas(t *testing.T) {
	dir := t.TempDir()
	writeRedSquare(t, dir, "a.png", 4)

	doc := layout.Document{
		Layout: model.Layout{
			AtlasWidth:  8,
			AtlasHeight: 4,
			Scale:       1,
			Placements:  []model.Placement{{SourceIndex: 0, X: 0, Y: 0, W: 4, H: 4}},
		},
		Paths: []string{"a.png"},
	}

	canvas, err := Render(doc, dir)
	require.NoError(t, err)
	assert.Equal(t, 8, canvas.Bounds().Dx())
	assert.Equal(t, 4, canvas.Bounds().Dy())

	r, _, _, a := canvas.At(1, 1).RGBA()
	assert.NotZero(t, a)
	assert.NotZero(t, r)
}

func TestRenderRotatesSprite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "strip.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	f.Close()

	doc := layout.Document{
		Layout: model.Layout{
			AtlasWidth:  2,
			AtlasHeight: 4,
			Scale:       1,
			Placements:  []model.Placement{{SourceIndex: 0, X: 0, Y: 0, W: 2, H: 4, Rotated: true}},
		},
		Paths: []string{"strip.png"},
	}

	canvas, err := Render(doc, dir)
	require.NoError(t, err)
	assert.Equal(t, 2, canvas.Bounds().Dx())
	assert.Equal(t, 4, canvas.Bounds().Dy())
}

func TestEncodePNGWritesValidImage(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	require.NoError(t, EncodePNG(&buf, canvas))
	_, err := png.Decode(&buf)
	require.NoError(t, err)
}
