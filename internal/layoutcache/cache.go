// Package layoutcache persists packing results keyed by an
// internal/fingerprint hash of their inputs and options, so a rerun with
// unchanged sources and flags skips the packing driver entirely.
// Entries older than an hour are treated as stale and pruned on the next
// cache pass.
package layoutcache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/model"
)

const maxAge = time.Hour

type entry struct {
	AtlasWidth  int               `json:"atlas_width"`
	AtlasHeight int               `json:"atlas_height"`
	Scale       float64           `json:"scale"`
	Placements  []model.Placement `json:"placements"`
	Paths       []string          `json:"paths"`
}

func cacheDir() string {
	return filepath.Join(os.TempDir(), "spritepack-cache", "layout")
}

func cachePath(fingerprint string) string {
	return filepath.Join(cacheDir(), fingerprint+".json")
}

// Lookup returns the cached layout and paths for fingerprint, and false
// if there is no entry or the entry is older than maxAge. A stale or
// unreadable entry is treated as a miss rather than an error: the cache
// is an optimization, never a source of truth.
func Lookup(fingerprint string) (model.Layout, []string, bool) {
	path := cachePath(fingerprint)
	info, err := os.Stat(path)
	if err != nil {
		return model.Layout{}, nil, false
	}
	if time.Since(info.ModTime()) > maxAge {
		return model.Layout{}, nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Layout{}, nil, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return model.Layout{}, nil, false
	}

	return model.Layout{
		AtlasWidth:  e.AtlasWidth,
		AtlasHeight: e.AtlasHeight,
		Scale:       e.Scale,
		Placements:  e.Placements,
	}, e.Paths, true
}

// Store writes layout and paths under fingerprint, atomically (write to
// a temp file in the same directory, then rename). Failure to store is
// reported but never fatal to the caller's packing run.
func Store(fingerprint string, layout model.Layout, paths []string) error {
	dir := cacheDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.New(apperr.Internal, "layoutcache.Store", err)
	}

	e := entry{
		AtlasWidth:  layout.AtlasWidth,
		AtlasHeight: layout.AtlasHeight,
		Scale:       layout.Scale,
		Placements:  layout.Placements,
		Paths:       paths,
	}
	data, err := json.Marshal(e)
	if err != nil {
		return apperr.New(apperr.Internal, "layoutcache.Store", err)
	}

	tmp, err := os.CreateTemp(dir, "entry-*.tmp")
	if err != nil {
		return apperr.New(apperr.Internal, "layoutcache.Store", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperr.New(apperr.Internal, "layoutcache.Store", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperr.New(apperr.Internal, "layoutcache.Store", err)
	}

	if err := os.Rename(tmpPath, cachePath(fingerprint)); err != nil {
		os.Remove(tmpPath)
		return apperr.New(apperr.Internal, "layoutcache.Store", err)
	}
	return nil
}

// Prune removes every cache entry older than maxAge. It is best-effort:
// errors reading or removing individual entries are ignored so one
// corrupt file cannot block the rest of the sweep.
func Prune() {
	entries, err := os.ReadDir(cacheDir())
	if err != nil {
		return
	}
	for _, de := range entries {
		if de.IsDir() {
			continue
		}
		path := filepath.Join(cacheDir(), de.Name())
		info, err := de.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > maxAge {
			os.Remove(path)
		}
	}
}
