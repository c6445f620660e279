package workpool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPreservesOrder(t *testing.T) {
	p := New(4)
	results, err := Run(context.Background(), p, 10, func(_ context.Context, i int) (int, error) {
		return i * i, nil
	})
	require.NoError(t, err)
	for i, v := range results {
		assert.Equal(t, i*i, v)
	}
}

func TestRunPropagatesFirstError(t *testing.T) {
	p := New(2)
	boom := errors.New("boom")
	_, err := Run(context.Background(), p, 5, func(_ context.Context, i int) (int, error) {
		if i == 3 {
			return 0, boom
		}
		return i, nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestNewDefaultsThreadsToCPUCount(t *testing.T) {
	p := New(0)
	assert.Greater(t, p.Limit(), 0)
}
