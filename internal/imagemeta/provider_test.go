package imagemeta

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/spritepack/internal/workpool"
)

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func opaqueImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}
	return img
}

func TestGetReturnsDimensions(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "a.png", opaqueImage(4, 6))

	p := New(workpool.New(2))
	img, err := p.Get(path, false)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Width)
	assert.Equal(t, 6, img.Height)
	assert.False(t, img.HasOpaqueBounds)
}

func TestGetComputesOpaqueBoundsInnerPixel(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	path := writePNG(t, dir, "inner.png", img)

	p := New(workpool.New(2))
	result, err := p.Get(path, true)
	require.NoError(t, err)
	assert.True(t, result.HasOpaqueBounds)
	assert.Equal(t, 1, result.OpaqueBounds.X)
	assert.Equal(t, 1, result.OpaqueBounds.Y)
	assert.Equal(t, 1, result.OpaqueBounds.W)
	assert.Equal(t, 1, result.OpaqueBounds.H)
}

func TestGetFullyTransparentYields1x1Bounds(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	path := writePNG(t, dir, "blank.png", img)

	p := New(workpool.New(2))
	result, err := p.Get(path, true)
	require.NoError(t, err)
	assert.Equal(t, 0, result.OpaqueBounds.X)
	assert.Equal(t, 0, result.OpaqueBounds.Y)
	assert.Equal(t, 1, result.OpaqueBounds.W)
	assert.Equal(t, 1, result.OpaqueBounds.H)
}

func TestGetMissingFileIsInputError(t *testing.T) {
	p := New(workpool.New(2))
	_, err := p.Get("/nonexistent/path.png", false)
	require.Error(t, err)
}

func TestBatchPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePNG(t, dir, "1.png", opaqueImage(1, 1)),
		writePNG(t, dir, "2.png", opaqueImage(2, 2)),
		writePNG(t, dir, "3.png", opaqueImage(3, 3)),
	}

	p := New(workpool.New(2))
	reqs := make([]Request, len(paths))
	for i, pth := range paths {
		reqs[i] = Request{Path: pth, NeedBounds: false}
	}
	results, err := p.Batch(context.Background(), reqs)
	require.NoError(t, err)
	for i, r := range results {
		assert.Equal(t, i+1, r.Width)
	}
}
