package layoutcache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/spritepack/internal/model"
)

func TestStoreThenLookupRoundTrips(t *testing.T) {
	fp := "test-fingerprint-roundtrip"
	t.Cleanup(func() { os.Remove(cachePath(fp)) })

	layout := model.Layout{AtlasWidth: 32, AtlasHeight: 16, Scale: 1, Placements: []model.Placement{{X: 1, Y: 2, W: 3, H: 4}}}
	paths := []string{"a.png"}

	require.NoError(t, Store(fp, layout, paths))

	got, gotPaths, ok := Lookup(fp)
	require.True(t, ok)
	assert.Equal(t, layout, got)
	assert.Equal(t, paths, gotPaths)
}

func TestLookupMissingFingerprintIsMiss(t *testing.T) {
	_, _, ok := Lookup("does-not-exist-fingerprint")
	assert.False(t, ok)
}

func TestLookupStaleEntryIsMiss(t *testing.T) {
	fp := "test-fingerprint-stale"
	require.NoError(t, os.MkdirAll(cacheDir(), 0o755))
	path := cachePath(fp)
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))
	t.Cleanup(func() { os.Remove(path) })

	_, _, ok := Lookup(fp)
	assert.False(t, ok)
}

func TestPruneRemovesOnlyStaleEntries(t *testing.T) {
	require.NoError(t, os.MkdirAll(cacheDir(), 0o755))
	fresh := filepath.Join(cacheDir(), "fresh-test.json")
	stale := filepath.Join(cacheDir(), "stale-test.json")
	require.NoError(t, os.WriteFile(fresh, []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(stale, []byte(`{}`), 0o644))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))
	t.Cleanup(func() {
		os.Remove(fresh)
		os.Remove(stale)
	})

	Prune()

	_, err := os.Stat(fresh)
	assert.NoError(t, err)
	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
}
