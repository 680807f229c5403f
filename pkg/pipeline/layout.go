package pipeline

import (
	"github.com/skillfield/skillfield/pkg/placement"
	"github.com/skillfield/skillfield/pkg/render/sink"
	"github.com/skillfield/skillfield/pkg/skills"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout places the catalog's skills with the configured strategy.
// It never fails: crowded fields fall back to anchors. Options must have
// passed ValidateForLayout; run metadata other than the seed is left to the
// caller.
func GenerateLayout(cat skills.Catalog, opts Options) sink.Field {
	cat = cat.Filter(opts.Categories...)
	items := cat.Items()

	var res placement.Result
	switch opts.Strategy {
	case StrategyOrbit:
		res = placement.Orbit(items, placement.OrbitConfig{
			Radius: opts.OrbitRadius,
			Margin: opts.Placement.Margin,
		})
	default:
		res = placement.Scatter(items, opts.Placement, source(opts))
	}

	f := sink.NewField(res)
	f.Title = cat.Title
	f.Strategy = opts.Strategy
	f.Config = opts.Placement
	if opts.Cacheable() {
		f.Seed = opts.Seed
		f.Seeded = true
	}
	return f
}

// source picks the random source for a scatter run. Nil means the global
// source, so every unseeded run is fresh.
func source(opts Options) placement.Source {
	switch {
	case opts.Source != nil:
		return opts.Source
	case opts.Seeded:
		return placement.NewSource(opts.Seed)
	default:
		return nil
	}
}

// layoutStats summarizes a placed field.
func layoutStats(f sink.Field) Stats {
	return Stats{
		Items:     len(f.Badges),
		Fallbacks: f.Fallbacks(),
		Attempts:  f.Attempts(),
	}
}
