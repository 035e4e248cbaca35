package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/swatchtower/swatchtower/pkg/cache"
	"github.com/swatchtower/swatchtower/pkg/palette"
	"github.com/swatchtower/swatchtower/pkg/partition"
	"github.com/swatchtower/swatchtower/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete fit → name → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	doc, err := r.loadDoc(opts)
	if err != nil {
		return nil, err
	}

	docData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("hash palette document: %w", err)
	}

	result := &Result{
		DocHash:   cache.Hash(docData),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fit
	fitStart := time.Now()
	counts, perm, fitHit, err := r.FitWithCacheInfo(ctx, doc, result.DocHash, opts)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	doc = PermuteDoc(doc, perm)
	result.Counts = counts
	result.Stats.FitTime = time.Since(fitStart)
	result.CacheInfo.FitHit = fitHit

	r.Logger.Info("fitted palette",
		"colors", len(doc.Colors),
		"items", opts.Items,
		"duration", result.Stats.FitTime)

	// Stage 2: Name
	if opts.Names != nil {
		names, err := opts.Names.NearestAll(doc.NormalizedColors())
		if err != nil {
			return nil, fmt.Errorf("colornames: %w", err)
		}
		doc.Names = names
	}
	result.Doc = doc

	// Stage 3: Render
	imagePath := opts.ImagePath
	if imagePath == "" {
		imagePath = doc.Source
	}
	img, err := render.OpenImage(imagePath)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, doc, img, counts, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// fitPayload is the cached output of the fit stage: the final allocation and
// the permutation that maps document color order to final order.
type fitPayload struct {
	Counts []int `json:"counts"`
	Perm   []int `json:"perm"`
}

// FitWithCacheInfo computes the slice allocation with caching and returns
// the allocation, the color permutation, and cache hit info.
func (r *Runner) FitWithCacheInfo(ctx context.Context, doc *palette.Document, docHash string, opts Options) ([]int, []int, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.FitKey(docHash, opts.FitKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var p fitPayload
			if json.Unmarshal(data, &p) == nil &&
				len(p.Counts) == len(doc.Colors) && len(p.Perm) == len(p.Counts) {
				return p.Counts, p.Perm, true, nil
			}
			// Stale or corrupt entry; fall through to recompute.
		}
	}

	counts, err := Fit(doc, opts)
	if err != nil {
		return nil, nil, false, err
	}
	perm := partition.Seq(len(counts))
	if opts.Spread {
		perm, err = partition.Redistribute(counts)
		if err != nil {
			return nil, nil, false, err
		}
		counts = partition.Apply(perm, counts)
	}

	if data, err := json.Marshal(fitPayload{Counts: counts, Perm: perm}); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLFit)
	}

	return counts, perm, false, nil
}

// Fit is a convenience wrapper that calls FitWithCacheInfo and discards the
// permutation and cache hit info.
func (r *Runner) Fit(ctx context.Context, doc *palette.Document, docHash string, opts Options) ([]int, error) {
	counts, _, _, err := r.FitWithCacheInfo(ctx, doc, docHash, opts)
	return counts, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *palette.Document, img image.Image, counts []int, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	rd := &renderDoc{Doc: doc, Counts: counts}
	rdData, err := json.Marshal(rd)
	if err != nil {
		return nil, false, fmt.Errorf("serialize palette for cache key: %w", err)
	}
	renderHash := cache.Hash(rdData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(renderHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	rendered, err := renderAll(rd, img, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(renderHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) loadDoc(opts Options) (*palette.Document, error) {
	if opts.Doc != nil {
		if err := opts.Doc.Validate(); err != nil {
			return nil, err
		}
		return opts.Doc, nil
	}
	return palette.ReadFile(opts.DocPath)
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
