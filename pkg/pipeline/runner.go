package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/skillfield/skillfield/pkg/cache"
	"github.com/skillfield/skillfield/pkg/observability"
	"github.com/skillfield/skillfield/pkg/render/sink"
	"github.com/skillfield/skillfield/pkg/skills"
)

// runNamespace derives stable run ids for seeded layouts.
var runNamespace = uuid.MustParse("6f1c7a52-3b0e-4d8a-9c61-2f5e8b7d4a10")

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-stage cache lifetimes when positive.
	TTL time.Duration
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
		Cache:  cache.Instrument(c),
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, cat skills.Catalog, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	field, layoutHit, err := r.LayoutWithCacheInfo(ctx, cat, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Field = field
	result.Stats = layoutStats(field)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, field, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo places the catalog and reports whether the layout
// came from the cache. Only seeded runs are looked up or stored.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, cat skills.Catalog, opts Options) (sink.Field, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return sink.Field{}, false, err
	}

	if err := ctx.Err(); err != nil {
		return sink.Field{}, false, err
	}

	cat = cat.Filter(opts.Categories...)
	opts.Categories = nil

	var cacheKey string
	if opts.Cacheable() {
		cacheKey = r.Keyer.LayoutKey(cache.HashJSON(cat), opts.LayoutKeyOpts())
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				if f, err := sink.ParseJSON(data); err == nil {
					opts.Logger.Debug("layout cache hit", "run", f.RunID)
					return f, true, nil
				}
				// Undecodable entries are recomputed and overwritten.
			}
		}
	}

	hooks := observability.Layout()
	hooks.OnLayoutStart(ctx, opts.Strategy, cat.Len())
	start := time.Now()

	f := GenerateLayout(cat, opts)
	if cacheKey != "" {
		f.RunID = uuid.NewSHA1(runNamespace, []byte(cacheKey)).String()
	} else {
		f.RunID = uuid.NewString()
	}

	stats := layoutStats(f)
	hooks.OnLayoutComplete(ctx, observability.LayoutStats{
		Strategy:  opts.Strategy,
		Items:     stats.Items,
		Fallbacks: stats.Fallbacks,
		Attempts:  stats.Attempts,
		Seeded:    opts.Seeded,
	}, time.Since(start))

	opts.Logger.Info("computed layout",
		"strategy", describe(opts),
		"placed", stats.Items,
		"fallbacks", stats.Fallbacks,
		"attempts", stats.Attempts)
	if stats.Fallbacks > 0 {
		opts.Logger.Debug("field is crowded; some badges sit on anchors",
			"fallbacks", stats.Fallbacks,
			"min_distance", opts.Placement.MinDistance)
	}

	if cacheKey != "" {
		if data, err := sink.RenderJSON(f); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.TTLLayout)); err != nil {
				opts.Logger.Warn("cache write failed", "err", err)
			}
		}
	}

	return f, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, cat skills.Catalog, opts Options) (sink.Field, error) {
	f, _, err := r.LayoutWithCacheInfo(ctx, cat, opts)
	return f, err
}

// RenderWithCacheInfo renders every requested format concurrently and
// reports whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f sink.Field, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	formats := sortedFormats(opts.Formats)
	cacheable := f.Seeded && !opts.Refresh
	layoutHash := cache.HashJSON(f)

	artifacts := make(map[string][]byte, len(formats))
	if cacheable {
		for _, format := range formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(formats) {
			return artifacts, true, nil
		}
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, formats)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range formats {
		if _, ok := artifacts[format]; ok {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			data, err := RenderFormat(gctx, f, format, opts)
			hooks.OnRenderComplete(gctx, format, len(data), time.Since(start), err)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}

			mu.Lock()
			artifacts[format] = data
			mu.Unlock()

			if f.Seeded {
				key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
				if err := r.Cache.Set(gctx, key, data, r.ttl(cache.TTLArtifact)); err != nil {
					opts.Logger.Warn("cache write failed", "format", format, "err", err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, f sink.Field, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, f, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) ttl(stage time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return stage
}
