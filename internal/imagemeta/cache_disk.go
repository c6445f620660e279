package imagemeta

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/piwi3910/spritepack/internal/model"
)

// diskEntry is the on-disk representation of one memoized metadata result,
// keyed by the file's size and modification time so a stale entry is
// rejected instead of silently reused.
type diskEntry struct {
	Size            int64 `json:"size"`
	ModUnix         int64 `json:"mod_unix"`
	Width           int   `json:"width"`
	Height          int   `json:"height"`
	HasOpaqueBounds bool  `json:"has_opaque_bounds"`
	BoundsX         int   `json:"bounds_x"`
	BoundsY         int   `json:"bounds_y"`
	BoundsW         int   `json:"bounds_w"`
	BoundsH         int   `json:"bounds_h"`
}

// diskCacheDir is where per-file metadata results are persisted between
// runs, mirroring the persistent layout cache's location under the OS
// temp directory.
func diskCacheDir() string {
	return filepath.Join(os.TempDir(), "spritepack-cache", "imagemeta")
}

func diskCachePath(path string) string {
	h := xxhash.Sum64String(path)
	return filepath.Join(diskCacheDir(), hexUint64(h)+".json")
}

func hexUint64(v uint64) string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[v&0xf]
		v >>= 4
	}
	return string(buf)
}

// loadDiskEntry returns a cached result iff it matches the file's current
// size and modification time. Any I/O or mismatch is treated as a miss,
// never an error: cache misses just mean recomputing.
func loadDiskEntry(path string, info os.FileInfo) (model.SourceImage, bool) {
	data, err := os.ReadFile(diskCachePath(path))
	if err != nil {
		return model.SourceImage{}, false
	}
	var e diskEntry
	if err := json.Unmarshal(data, &e); err != nil {
		return model.SourceImage{}, false
	}
	if e.Size != info.Size() || e.ModUnix != info.ModTime().Unix() {
		return model.SourceImage{}, false
	}
	img := model.SourceImage{
		Path:            path,
		Width:           e.Width,
		Height:          e.Height,
		HasOpaqueBounds: e.HasOpaqueBounds,
	}
	if e.HasOpaqueBounds {
		img.OpaqueBounds = model.Rect{X: e.BoundsX, Y: e.BoundsY, W: e.BoundsW, H: e.BoundsH}
	}
	return img, true
}

// storeDiskEntry writes result to the disk cache, best-effort: a write
// failure degrades to "recompute next time" rather than aborting the
// run.
func storeDiskEntry(path string, info os.FileInfo, result model.SourceImage) {
	e := diskEntry{
		Size:            info.Size(),
		ModUnix:         info.ModTime().Unix(),
		Width:           result.Width,
		Height:          result.Height,
		HasOpaqueBounds: result.HasOpaqueBounds,
	}
	if result.HasOpaqueBounds {
		e.BoundsX, e.BoundsY, e.BoundsW, e.BoundsH =
			result.OpaqueBounds.X, result.OpaqueBounds.Y, result.OpaqueBounds.W, result.OpaqueBounds.H
	}
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	dir := diskCacheDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	dest := diskCachePath(path)
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, dest)
}
