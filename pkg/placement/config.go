package placement

import (
	"math"

	"github.com/skillfield/skillfield/pkg/errors"
)

// Defaults match the floating skills field of the portfolio.
const (
	DefaultMargin       = 10.0
	DefaultCenterRadius = 25.0
	DefaultMinDistance  = 8.0
	DefaultMaxAttempts  = 100
)

// DefaultAnchors returns the four corner anchors used when sampling fails.
func DefaultAnchors() []Position {
	return []Position{
		{X: 15, Y: 15},
		{X: 85, Y: 15},
		{X: 15, Y: 85},
		{X: 85, Y: 85},
	}
}

// Config controls [Scatter].
//
// The zero value is usable: a zero Margin, CenterRadius or MinDistance
// disables that constraint, while a zero MaxAttempts or empty Anchors means
// the defaults.
type Config struct {
	// Margin keeps positions inside [Margin, 100-Margin] on both axes.
	Margin float64 `json:"margin"`

	// CenterRadius is the radius of the reserved disk around (50,50).
	CenterRadius float64 `json:"center_radius"`

	// MinDistance is the smallest allowed gap between sampled positions.
	MinDistance float64 `json:"min_distance"`

	// MaxAttempts bounds the candidates drawn per item.
	MaxAttempts int `json:"max_attempts"`

	// Anchors are the fallback positions, chosen by item index modulo length.
	Anchors []Position `json:"anchors,omitempty"`
}

// DefaultConfig returns the portfolio's field settings.
func DefaultConfig() Config {
	return Config{
		Margin:       DefaultMargin,
		CenterRadius: DefaultCenterRadius,
		MinDistance:  DefaultMinDistance,
		MaxAttempts:  DefaultMaxAttempts,
		Anchors:      DefaultAnchors(),
	}
}

// Validate reports settings that cannot produce a sensible field.
// Scatter does not call it; it clamps instead.
func (c Config) Validate() error {
	var errs errors.ValidationErrors

	switch {
	case math.IsNaN(c.Margin) || c.Margin < 0:
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "margin must be non-negative, got %v", c.Margin))
	case c.Margin >= center:
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "margin must be below %v, got %v", center, c.Margin))
	}
	if math.IsNaN(c.CenterRadius) || c.CenterRadius < 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "center radius must be non-negative, got %v", c.CenterRadius))
	}
	if math.IsNaN(c.MinDistance) || c.MinDistance < 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "min distance must be non-negative, got %v", c.MinDistance))
	}
	if c.MaxAttempts < 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "max attempts must be non-negative, got %d", c.MaxAttempts))
	}
	for i, a := range c.Anchors {
		if !inField(a) {
			errs = append(errs, errors.New(errors.ErrCodeInvalidConfig, "anchor %d %s lies outside the field", i, a))
		}
	}

	// The farthest sampleable point from the center is a corner of the
	// margin box. A disk reaching it rejects every candidate.
	if len(errs) == 0 && c.CenterRadius > 0 {
		if reach := math.Sqrt2 * (center - c.Margin); c.CenterRadius > reach {
			errs = append(errs, errors.New(errors.ErrCodeInvalidConfig,
				"center radius %v covers the whole margin box (max %.2f)", c.CenterRadius, reach))
		}
	}

	return errs.Err()
}

// normalize clamps c into a shape Scatter can always run with.
func (c Config) normalize() Config {
	out := Config{
		Margin:       clamp(nanTo(c.Margin, 0), 0, center),
		CenterRadius: max(nanTo(c.CenterRadius, 0), 0),
		MinDistance:  max(nanTo(c.MinDistance, 0), 0),
		MaxAttempts:  c.MaxAttempts,
	}
	if out.MaxAttempts <= 0 {
		out.MaxAttempts = DefaultMaxAttempts
	}

	anchors := c.Anchors
	if len(anchors) == 0 {
		anchors = DefaultAnchors()
	}
	out.Anchors = make([]Position, len(anchors))
	for i, a := range anchors {
		out.Anchors[i] = out.clampToBox(a)
	}
	return out
}

// clampToBox pulls p into the margin box.
func (c Config) clampToBox(p Position) Position {
	lo, hi := c.Margin, FieldSize-c.Margin
	return Position{
		X: clamp(nanTo(p.X, center), lo, hi),
		Y: clamp(nanTo(p.Y, center), lo, hi),
	}
}

func inField(p Position) bool {
	return p.X >= 0 && p.X <= FieldSize && p.Y >= 0 && p.Y <= FieldSize
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

func nanTo(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return v
}
