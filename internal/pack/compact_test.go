package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/spritepack/internal/model"
)

func TestCompactPlaceOrderByAreaDescending(t *testing.T) {
	rects := []model.PackableRect{rect(2, 2), rect(5, 5), rect(3, 3)}
	order := compactPlaceOrder(rects)
	assert.Equal(t, []int{1, 2, 0}, order)
}

func TestCompactCandidatePacksAllRectangles(t *testing.T) {
	rects := []model.PackableRect{
		{SourceIndex: 0, W: 8, H: 8},
		{SourceIndex: 1, W: 4, H: 8},
		{SourceIndex: 2, W: 4, H: 4},
	}
	res, ok := compactCandidate(rects, 16, 8, model.DefaultOptions())
	require.True(t, ok)
	assert.Len(t, res.Placements, 3)
	assertNoOverlap(t, res.Placements)
	for _, p := range res.Placements {
		assert.LessOrEqual(t, p.X+p.W, res.AtlasWidth)
		assert.LessOrEqual(t, p.Y+p.H, res.AtlasHeight)
	}
}

func TestCompactCandidateInfeasibleWhenTooSmall(t *testing.T) {
	rects := []model.PackableRect{{SourceIndex: 0, W: 20, H: 20}}
	_, ok := compactCandidate(rects, 4, 4, model.DefaultOptions())
	assert.False(t, ok)
}

func TestCompactCandidateRespectsPadding(t *testing.T) {
	rects := []model.PackableRect{
		{SourceIndex: 0, W: 4, H: 4},
		{SourceIndex: 1, W: 4, H: 4},
	}
	opts := model.DefaultOptions()
	opts.Padding = 2
	res, ok := compactCandidate(rects, 8, 4, opts)
	require.False(t, ok) // two 4x4 rects plus 2px padding each no longer fit an 8x4 strip
	_ = res
}

func TestContactLengthCountsBinEdgesAndNeighbors(t *testing.T) {
	placed := []model.Rect{{X: 0, Y: 0, W: 4, H: 4}}
	length := contactLength(4, 0, 4, 4, 10, 10, placed)
	assert.Equal(t, int64(4+4), length) // touches top edge (y==0) and left neighbor
}

func TestOverlap1D(t *testing.T) {
	assert.Equal(t, 2, overlap1D(0, 5, 3, 10))
	assert.Equal(t, 0, overlap1D(0, 2, 5, 10))
}
