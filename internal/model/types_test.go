package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimIsZero(t *testing.T) {
	assert.True(t, Trim{}.IsZero())
	assert.False(t, Trim{Left: 1}.IsZero())
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, ModeCompact, opts.Mode)
	assert.Equal(t, OptimizeGPU, opts.Optimize)
	assert.Equal(t, 1.0, opts.Scale)
	assert.Equal(t, ReferenceLargest, opts.ResolutionReference)
}
