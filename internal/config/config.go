// Package config loads skillfield settings from defaults, an optional TOML
// file and SKILLFIELD_* environment variables, in increasing precedence.
//
// The file is skillfield.toml in the working directory or in
// $XDG_CONFIG_HOME/skillfield. Keys are dotted, and the environment
// variable for a key replaces dots with underscores:
//
//	[layout]
//	min_distance = 10      # SKILLFIELD_LAYOUT_MIN_DISTANCE=10
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	sferrors "github.com/skillfield/skillfield/pkg/errors"
	"github.com/skillfield/skillfield/pkg/placement"
)

const (
	appName   = "skillfield"
	envPrefix = "SKILLFIELD"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the resolved configuration.
type Config struct {
	Log     LogConfig    `mapstructure:"log"`
	Catalog string       `mapstructure:"catalog"`
	Cache   CacheConfig  `mapstructure:"cache"`
	Redis   RedisConfig  `mapstructure:"redis"`
	Layout  LayoutConfig `mapstructure:"layout"`
	Render  RenderConfig `mapstructure:"render"`
	Serve   ServeConfig  `mapstructure:"serve"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	Dir     string        `mapstructure:"dir"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type LayoutConfig struct {
	Strategy     string  `mapstructure:"strategy"`
	Margin       float64 `mapstructure:"margin"`
	CenterRadius float64 `mapstructure:"center_radius"`
	MinDistance  float64 `mapstructure:"min_distance"`
	MaxAttempts  int     `mapstructure:"max_attempts"`
	OrbitRadius  float64 `mapstructure:"orbit_radius"`
}

type RenderConfig struct {
	Width   float64 `mapstructure:"width"`
	Height  float64 `mapstructure:"height"`
	Animate bool    `mapstructure:"animate"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads the configuration. An explicit path must exist; without one,
// a missing skillfield.toml is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, sferrors.Wrap(sferrors.ErrCodeInvalidConfig, err, "error reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, sferrors.Wrap(sferrors.ErrCodeInvalidConfig, err, "decode config")
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("catalog", "")

	v.SetDefault("cache.backend", BackendFile)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.ttl", "168h")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", appName+":")

	v.SetDefault("layout.strategy", "scatter")
	v.SetDefault("layout.margin", placement.DefaultMargin)
	v.SetDefault("layout.center_radius", placement.DefaultCenterRadius)
	v.SetDefault("layout.min_distance", placement.DefaultMinDistance)
	v.SetDefault("layout.max_attempts", placement.DefaultMaxAttempts)
	v.SetDefault("layout.orbit_radius", placement.DefaultOrbitRadius)

	v.SetDefault("render.width", 800.0)
	v.SetDefault("render.height", 600.0)
	v.SetDefault("render.animate", true)

	v.SetDefault("serve.addr", "localhost:8080")
}

// Validate checks values that viper cannot type-check.
func (c *Config) Validate() error {
	var errs sferrors.ValidationErrors

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, sferrors.New(sferrors.ErrCodeInvalidConfig, "log.level: unknown level %q", c.Log.Level))
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		errs = append(errs, sferrors.New(sferrors.ErrCodeInvalidConfig,
			"cache.backend: %q (must be one of: file, redis, none)", c.Cache.Backend))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, sferrors.New(sferrors.ErrCodeInvalidConfig, "cache.ttl must not be negative"))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, sferrors.New(sferrors.ErrCodeInvalidConfig,
			"render size %gx%g must be positive", c.Render.Width, c.Render.Height))
	}
	if err := c.Placement().Validate(); err != nil {
		var verrs sferrors.ValidationErrors
		if errors.As(err, &verrs) {
			errs = append(errs, verrs...)
		}
	}

	return errs.Err()
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Placement returns the scatter settings with the default anchors.
func (c *Config) Placement() placement.Config {
	return placement.Config{
		Margin:       c.Layout.Margin,
		CenterRadius: c.Layout.CenterRadius,
		MinDistance:  c.Layout.MinDistance,
		MaxAttempts:  c.Layout.MaxAttempts,
		Anchors:      placement.DefaultAnchors(),
	}
}

// DefaultCacheDir returns the cache directory using XDG standard (~/.cache/skillfield/).
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

// configDir returns $XDG_CONFIG_HOME/skillfield (~/.config/skillfield/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}
