// Package cli implements the skillfield command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/skillfield/skillfield/internal/config"
	"github.com/skillfield/skillfield/internal/telemetry"
	"github.com/skillfield/skillfield/pkg/buildinfo"
	"github.com/skillfield/skillfield/pkg/cache"
	"github.com/skillfield/skillfield/pkg/errors"
	"github.com/skillfield/skillfield/pkg/pipeline"
	"github.com/skillfield/skillfield/pkg/skills"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "skillfield"

	// defaultBase is the output base name when neither -o nor a catalog path is given.
	defaultBase = "skillfield"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before the first command runs unless already set.
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Skillfield lays out skill badges as a floating field",
		Long: `Skillfield places a portfolio's skill badges at random, non-overlapping
positions around a reserved center and renders the field as SVG, HTML,
JSON, PNG or PDF. Every run is a fresh layout unless --seed is given.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ./skillfield.toml or $XDG_CONFIG_HOME/skillfield/skillfield.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, applies the log level and registers
// telemetry before any subcommand runs.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.Config == nil {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.Config = cfg
	}

	level := c.Config.LogLevel()
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)
	if c.Config.File != "" {
		c.Logger.Debug("loaded config", "file", c.Config.File)
	}

	if _, err := telemetry.Register(); err != nil {
		c.Logger.Warn("telemetry disabled", "err", err)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	r := pipeline.NewRunner(c.newCache(ctx, noCache), cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version), c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r
}

// newCache never fails: an unusable backend degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}

	switch c.Config.Cache.Backend {
	case config.BackendFile:
		fc, err := cache.NewFileCache(c.Config.Cache.Dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "dir", c.Config.Cache.Dir, "err", err)
			return cache.NewNullCache()
		}
		return fc
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			URL:      c.Config.Redis.URL,
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
			Prefix:   c.Config.Redis.Prefix,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return rc
	default:
		return cache.NewNullCache()
	}
}

// =============================================================================
// Catalog Loading
// =============================================================================

// loadCatalog reads the catalog named by the first argument, then the
// configured catalog, then falls back to the built-in one.
func (c *CLI) loadCatalog(args []string) (skills.Catalog, string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else if c.Config != nil {
		path = c.Config.Catalog
	}
	if path == "" {
		return skills.Default(), "", nil
	}

	cat, err := skills.LoadFile(path)
	if err != nil {
		return skills.Catalog{}, path, err
	}
	if err := cat.Validate(); err != nil {
		return skills.Catalog{}, path, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "catalog %s", path)
	}
	return cat, path, nil
}

// =============================================================================
// Shared Layout Flags
// =============================================================================

// layoutFlags are the placement flags shared by layout, render, preview and serve.
// Unset flags fall back to the configuration.
type layoutFlags struct {
	seed         uint64
	strategy     string
	margin       float64
	centerRadius float64
	minDistance  float64
	maxAttempts  int
	orbitRadius  float64
	categories   []string
	noCache      bool
	refresh      bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Uint64Var(&f.seed, "seed", 0, "seed the layout for a reproducible (and cacheable) run")
	fl.StringVar(&f.strategy, "strategy", "", "layout strategy: scatter (default), orbit")
	fl.Float64Var(&f.margin, "margin", 0, "keep badges this far from the edges (0-50)")
	fl.Float64Var(&f.centerRadius, "center-radius", 0, "radius of the empty zone around the center")
	fl.Float64Var(&f.minDistance, "min-distance", 0, "minimum distance between badges")
	fl.IntVar(&f.maxAttempts, "max-attempts", 0, "candidates tried per badge before falling back to an anchor")
	fl.Float64Var(&f.orbitRadius, "orbit-radius", 0, "ring radius for the orbit strategy")
	fl.StringSliceVar(&f.categories, "category", nil, "only place skills in these categories (repeatable)")
	fl.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fl.BoolVar(&f.refresh, "refresh", false, "recompute seeded runs instead of reading the cache")

	_ = cmd.RegisterFlagCompletionFunc("strategy", completeStrategies)
	cmd.ValidArgsFunction = completeCatalog
}

// layoutOptions builds pipeline options from the configuration, overridden by
// every flag set on the command line.
func (c *CLI) layoutOptions(cmd *cobra.Command, f *layoutFlags) pipeline.Options {
	cfg := c.Config
	opts := pipeline.Options{
		Strategy:    cfg.Layout.Strategy,
		Placement:   cfg.Placement(),
		OrbitRadius: cfg.Layout.OrbitRadius,
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		Animate:     cfg.Render.Animate,
		Categories:  f.categories,
		Refresh:     f.refresh,
		Logger:      c.Logger,
	}

	fl := cmd.Flags()
	if fl.Changed("seed") {
		opts.SetSeed(f.seed)
	}
	if fl.Changed("strategy") {
		opts.Strategy = f.strategy
	}
	if fl.Changed("margin") {
		opts.Placement.Margin = f.margin
	}
	if fl.Changed("center-radius") {
		opts.Placement.CenterRadius = f.centerRadius
	}
	if fl.Changed("min-distance") {
		opts.Placement.MinDistance = f.minDistance
	}
	if fl.Changed("max-attempts") {
		opts.Placement.MaxAttempts = f.maxAttempts
	}
	if fl.Changed("orbit-radius") {
		opts.OrbitRadius = f.orbitRadius
	}
	return opts
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// isTerminal reports whether f is a terminal, including Cygwin and MSYS ptys.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
