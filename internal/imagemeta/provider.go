// Package imagemeta resolves source image paths to dimensions and, when
// trimming is requested, the tight opaque bounding rectangle. It never
// mutates the files it reads.
package imagemeta

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru"

	"github.com/piwi3910/spritepack/internal/apperr"
	"github.com/piwi3910/spritepack/internal/model"
	"github.com/piwi3910/spritepack/internal/workpool"
)

// inProcessCacheSize bounds the per-run memoization table. It is sized
// generously since one run rarely touches more than a few thousand
// distinct paths; this just prevents unbounded growth on pathological
// inputs (e.g. a badly generated list file with repeated entries).
const inProcessCacheSize = 4096

// Request is one (path, need_bounds) pair for Provider.Batch.
type Request struct {
	Path       string
	NeedBounds bool
}

// Provider is owned by a single run and dropped at its end — there is no
// package-level singleton.
type Provider struct {
	pool  *workpool.Pool
	cache *lru.Cache // (canonical path, needBounds) -> model.SourceImage
}

// New creates a Provider backed by pool for batch parallelism.
func New(pool *workpool.Pool) *Provider {
	c, err := lru.New(inProcessCacheSize)
	if err != nil {
		// lru.New only errors on a non-positive size, which never happens
		// here; a nil cache degrades to "always miss" rather than panicking.
		c = nil
	}
	return &Provider{pool: pool, cache: c}
}

// Get resolves a single path. needBounds requests the opaque bounding
// rectangle; without it, OpaqueBounds is left zero and HasOpaqueBounds
// false.
func (p *Provider) Get(path string, needBounds bool) (model.SourceImage, error) {
	canon, err := filepath.Abs(path)
	if err != nil {
		canon = path
	}

	cacheKey := fmt.Sprintf("%s\x00%t", canon, needBounds)
	if p.cache != nil {
		if v, ok := p.cache.Get(cacheKey); ok {
			return v.(model.SourceImage), nil
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.SourceImage{}, apperr.New(apperr.Input, "imagemeta.Get", fmt.Errorf("not found: %s", path))
		}
		return model.SourceImage{}, apperr.New(apperr.Input, "imagemeta.Get", fmt.Errorf("unreadable: %s: %w", path, err))
	}
	if !info.Mode().IsRegular() {
		return model.SourceImage{}, apperr.New(apperr.Input, "imagemeta.Get", fmt.Errorf("not a regular file: %s", path))
	}

	if needBounds {
		if cached, ok := loadDiskEntry(path, info); ok && cached.HasOpaqueBounds {
			cached.Path = path
			if p.cache != nil {
				p.cache.Add(cacheKey, cached)
			}
			return cached, nil
		}
	} else {
		if cached, ok := loadDiskEntry(path, info); ok {
			cached.Path = path
			cached.OpaqueBounds = model.Rect{}
			cached.HasOpaqueBounds = false
			if p.cache != nil {
				p.cache.Add(cacheKey, cached)
			}
			return cached, nil
		}
	}

	img, err := decodeFile(path)
	if err != nil {
		return model.SourceImage{}, err
	}

	b := img.Bounds()
	result := model.SourceImage{
		Path:   path,
		Width:  b.Dx(),
		Height: b.Dy(),
	}
	if needBounds {
		result.OpaqueBounds = opaqueBounds(img)
		result.HasOpaqueBounds = true
	}

	storeDiskEntry(path, info, result)
	if p.cache != nil {
		p.cache.Add(cacheKey, result)
	}
	return result, nil
}

// Batch resolves every request, preserving input order, parallelizing
// across the Provider's pool.
func (p *Provider) Batch(ctx context.Context, reqs []Request) ([]model.SourceImage, error) {
	return workpool.Run(ctx, p.pool, len(reqs), func(_ context.Context, i int) (model.SourceImage, error) {
		return p.Get(reqs[i].Path, reqs[i].NeedBounds)
	})
}
