package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sferrors "github.com/skillfield/skillfield/pkg/errors"
	"github.com/skillfield/skillfield/pkg/placement"
)

// isolate points the XDG directories at a temp dir so a user's own config
// never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func TestLoad_DefaultValues(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
	assert.Equal(t, "", cfg.Catalog)
	assert.Equal(t, BackendFile, cfg.Cache.Backend)
	assert.Equal(t, filepath.Join(dir, "cache", "skillfield"), cfg.Cache.Dir)
	assert.Equal(t, 168*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "skillfield:", cfg.Redis.Prefix)
	assert.Equal(t, "scatter", cfg.Layout.Strategy)
	assert.Equal(t, placement.DefaultMargin, cfg.Layout.Margin)
	assert.Equal(t, placement.DefaultCenterRadius, cfg.Layout.CenterRadius)
	assert.Equal(t, placement.DefaultMinDistance, cfg.Layout.MinDistance)
	assert.Equal(t, placement.DefaultMaxAttempts, cfg.Layout.MaxAttempts)
	assert.Equal(t, placement.DefaultOrbitRadius, cfg.Layout.OrbitRadius)
	assert.Equal(t, 800.0, cfg.Render.Width)
	assert.Equal(t, 600.0, cfg.Render.Height)
	assert.True(t, cfg.Render.Animate)
	assert.Equal(t, "localhost:8080", cfg.Serve.Addr)
	assert.Empty(t, cfg.File)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := isolate(t)

	content := `
catalog = "skills.toml"

[log]
level = "debug"

[cache]
backend = "redis"
ttl = "1h"

[redis]
addr = "10.0.0.1:6380"
db = 2

[layout]
min_distance = 12.5
max_attempts = 250
`
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "skills.toml", cfg.Catalog)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "10.0.0.1:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 12.5, cfg.Layout.MinDistance)
	assert.Equal(t, 250, cfg.Layout.MaxAttempts)
	// untouched keys keep their defaults
	assert.Equal(t, placement.DefaultMargin, cfg.Layout.Margin)
}

func TestLoad_ConfigDirFile(t *testing.T) {
	dir := isolate(t)

	cfgDir := filepath.Join(dir, "config", "skillfield")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "skillfield.toml"), []byte("[serve]\naddr = \":9000\"\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Serve.Addr)
	assert.Equal(t, filepath.Join(cfgDir, "skillfield.toml"), cfg.File)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SKILLFIELD_LAYOUT_MARGIN", "5")
	t.Setenv("SKILLFIELD_CACHE_BACKEND", "none")
	t.Setenv("SKILLFIELD_RENDER_ANIMATE", "false")
	t.Setenv("SKILLFIELD_REDIS_PASSWORD", "hunter2")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5.0, cfg.Layout.Margin)
	assert.Equal(t, BackendNone, cfg.Cache.Backend)
	assert.False(t, cfg.Render.Animate)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
}

func TestLoad_MissingFile(t *testing.T) {
	isolate(t)

	_, err := Load("/nonexistent/path/skillfield.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
	assert.True(t, sferrors.Is(err, sferrors.ErrCodeInvalidConfig))
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)
	t.Setenv("SKILLFIELD_CACHE_BACKEND", "memcached")
	t.Setenv("SKILLFIELD_LOG_LEVEL", "loud")
	t.Setenv("SKILLFIELD_LAYOUT_CENTER_RADIUS", "80")

	_, err := Load("")
	require.Error(t, err)

	var verrs sferrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
	assert.Contains(t, err.Error(), "cache.backend")
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "center radius")
}

func TestPlacement(t *testing.T) {
	cfg := Config{Layout: LayoutConfig{Margin: 12, CenterRadius: 20, MinDistance: 6, MaxAttempts: 50}}
	p := cfg.Placement()

	assert.Equal(t, 12.0, p.Margin)
	assert.Equal(t, 20.0, p.CenterRadius)
	assert.Equal(t, 6.0, p.MinDistance)
	assert.Equal(t, 50, p.MaxAttempts)
	assert.Equal(t, placement.DefaultAnchors(), p.Anchors)
}
