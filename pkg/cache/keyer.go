package cache

import "strings"

// Keyer builds cache keys for the pipeline stages.
type Keyer interface {
	// LayoutKey identifies a computed layout.
	LayoutKey(catalogHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered format of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists everything that changes a layout.
type LayoutKeyOpts struct {
	Strategy     string    `json:"strategy"`
	Seed         uint64    `json:"seed"`
	Margin       float64   `json:"margin"`
	CenterRadius float64   `json:"center_radius"`
	MinDistance  float64   `json:"min_distance"`
	MaxAttempts  int       `json:"max_attempts"`
	OrbitRadius  float64   `json:"orbit_radius,omitempty"`
	Anchors      []float64 `json:"anchors,omitempty"`
}

// ArtifactKeyOpts lists everything that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Animate bool    `json:"animate"`
	Guide   bool    `json:"guide,omitempty"`
	Scale   float64 `json:"scale,omitempty"`
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) LayoutKey(catalogHash string, opts LayoutKeyOpts) string {
	return stageKey("layout", catalogHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return stageKey("artifact", layoutHash, opts)
}

// ScopedKeyer prefixes every key from an inner Keyer, so several catalogs or
// users can share one Redis without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(catalogHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(catalogHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// KeyType returns the stage prefix of a key ("layout", "artifact"), used to
// label cache metrics. Scoped prefixes are skipped.
func KeyType(key string) string {
	for _, t := range []string{"layout", "artifact"} {
		if strings.Contains(key, t+":") {
			return t
		}
	}
	return "unknown"
}
