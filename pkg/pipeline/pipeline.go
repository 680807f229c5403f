// Package pipeline provides the layout → render pipeline for skill fields.
//
// The CLI commands, the terminal preview and the preview server all go
// through this package, so a field computed by one looks the same in the
// others.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: place the catalog's skills on the normalized field
//     (scatter or orbit)
//  2. Render: produce output in various formats (SVG, HTML, JSON, PNG, PDF)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Seeds and caching
//
// A run is either seeded or fresh. A fresh run draws from the global random
// source and gives a new arrangement every time, like remounting the page.
// A seeded run is reproducible, so its layout and artifacts are cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Strategy: pipeline.StrategyScatter,
//	    Formats:  []string{"svg"},
//	}
//	opts.SetSeed(42)
//	result, err := runner.Execute(ctx, skills.Default(), opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/skillfield/skillfield/pkg/cache"
	"github.com/skillfield/skillfield/pkg/errors"
	"github.com/skillfield/skillfield/pkg/placement"
	"github.com/skillfield/skillfield/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Preview and Server
// =============================================================================

// Layout strategies.
const (
	// StrategyScatter places badges randomly with spacing and a clear center.
	StrategyScatter = "scatter"

	// StrategyOrbit spaces badges evenly on a ring around the center.
	StrategyOrbit = sink.StrategyOrbit
)

const (
	// DefaultStrategy is the layout strategy used when none is given.
	DefaultStrategy = StrategyScatter

	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = sink.DefaultWidth

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = sink.DefaultHeight

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatJSON: true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// ValidStrategies is the set of supported layout strategies.
var ValidStrategies = map[string]bool{
	StrategyScatter: true,
	StrategyOrbit:   true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for preview server requests.
type Options struct {
	// Layout options
	Strategy    string           `json:"strategy,omitempty"`
	Seed        uint64           `json:"seed,omitempty"`
	Seeded      bool             `json:"seeded,omitempty"`
	Placement   placement.Config `json:"placement"`
	OrbitRadius float64          `json:"orbit_radius,omitempty"`
	Categories  []string         `json:"categories,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Width   float64  `json:"width,omitempty"`
	Height  float64  `json:"height,omitempty"`
	Animate bool     `json:"animate,omitempty"`
	Guide   bool     `json:"guide,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Refresh bypasses the cache for seeded runs.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Source overrides the random source. It takes precedence over Seed,
	// and a run with a custom source is never cached.
	Source placement.Source `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Field is the placed skill field.
	Field sink.Field

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and placement information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Items      int
	Fallbacks  int
	Attempts   int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, html, json, png, pdf)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStrategy checks that a layout strategy is valid.
func ValidateStrategy(strategy string) error {
	if !ValidStrategies[strategy] {
		return errors.New(errors.ErrCodeInvalidStrategy,
			"invalid strategy: %q (must be one of: scatter, orbit)", strategy)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetSeed makes the run reproducible with the given seed.
func (o *Options) SetSeed(seed uint64) {
	o.Seed = seed
	o.Seeded = true
}

// Cacheable reports whether a run with these options can be cached.
func (o *Options) Cacheable() bool {
	return o.Seeded && o.Source == nil
}

// SetLayoutDefaults sets default values for layout computation. A zero
// Placement config means the default field settings.
func (o *Options) SetLayoutDefaults() {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if isZeroConfig(o.Placement) {
		o.Placement = placement.DefaultConfig()
	}
	if o.Placement.MaxAttempts == 0 {
		o.Placement.MaxAttempts = placement.DefaultMaxAttempts
	}
	if len(o.Placement.Anchors) == 0 {
		o.Placement.Anchors = placement.DefaultAnchors()
	}
	if o.OrbitRadius == 0 {
		o.OrbitRadius = placement.DefaultOrbitRadius
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateStrategy(o.Strategy); err != nil {
		return err
	}
	if o.Strategy == StrategyScatter {
		return o.Placement.Validate()
	}
	if o.OrbitRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "orbit radius %g must not be negative", o.OrbitRadius)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "frame size %gx%g must be positive", o.Width, o.Height)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale %g must be positive", o.Scale)
	}
	return nil
}

// ValidateAndSetDefaults checks and defaults the options for the full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Strategy: o.Strategy,
		Seed:     o.Seed,
	}
	if o.Strategy == StrategyOrbit {
		k.Margin = o.Placement.Margin
		k.OrbitRadius = o.OrbitRadius
		return k
	}
	k.Margin = o.Placement.Margin
	k.CenterRadius = o.Placement.CenterRadius
	k.MinDistance = o.Placement.MinDistance
	k.MaxAttempts = o.Placement.MaxAttempts
	for _, a := range o.Placement.Anchors {
		k.Anchors = append(k.Anchors, a.X, a.Y)
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: format,
		Width:  o.Width,
		Height: o.Height,
		Guide:  o.Guide,
	}
	// Rasters never animate; keep one cache entry for both settings.
	if format != FormatPNG && format != FormatPDF {
		k.Animate = o.Animate
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}

func isZeroConfig(c placement.Config) bool {
	return c.Margin == 0 && c.CenterRadius == 0 && c.MinDistance == 0 &&
		c.MaxAttempts == 0 && len(c.Anchors) == 0
}

// sortedFormats returns formats deduplicated, in a stable order.
func sortedFormats(formats []string) []string {
	out := slices.Clone(formats)
	slices.Sort(out)
	return slices.Compact(out)
}

func describe(o Options) string {
	if o.Seeded {
		return fmt.Sprintf("%s (seed %d)", o.Strategy, o.Seed)
	}
	return o.Strategy
}
