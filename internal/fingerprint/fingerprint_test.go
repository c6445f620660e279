package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/spritepack/internal/model"
)

func TestComputeIsOrderIndependent(t *testing.T) {
	a := []FileStat{{Path: "b.png", Size: 10, ModUnix: 1}, {Path: "a.png", Size: 20, ModUnix: 2}}
	b := []FileStat{{Path: "a.png", Size: 20, ModUnix: 2}, {Path: "b.png", Size: 10, ModUnix: 1}}
	opts := model.DefaultOptions()

	assert.Equal(t, Compute(a, opts), Compute(b, opts))
}

func TestComputeChangesWithOptions(t *testing.T) {
	inputs := []FileStat{{Path: "a.png", Size: 10, ModUnix: 1}}
	opts1 := model.DefaultOptions()
	opts2 := model.DefaultOptions()
	opts2.Padding = 2

	assert.NotEqual(t, Compute(inputs, opts1), Compute(inputs, opts2))
}

func TestComputeChangesWithMtime(t *testing.T) {
	opts := model.DefaultOptions()
	a := []FileStat{{Path: "a.png", Size: 10, ModUnix: 1}}
	b := []FileStat{{Path: "a.png", Size: 10, ModUnix: 2}}

	assert.NotEqual(t, Compute(a, opts), Compute(b, opts))
}

func TestComputeIgnoresThreads(t *testing.T) {
	opts1 := model.DefaultOptions()
	opts1.Threads = 1
	opts2 := model.DefaultOptions()
	opts2.Threads = 16
	inputs := []FileStat{{Path: "a.png", Size: 10, ModUnix: 1}}

	assert.Equal(t, Compute(inputs, opts1), Compute(inputs, opts2))
}
