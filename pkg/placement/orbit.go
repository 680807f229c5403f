package placement

import "math"

// DefaultOrbitRadius places the ring between the center disk and the margin.
const DefaultOrbitRadius = 35.0

// OrbitConfig controls [Orbit].
type OrbitConfig struct {
	Radius float64 `json:"radius"`
	Margin float64 `json:"margin"`

	// Phase rotates the whole ring, in degrees. Zero puts the first item
	// on the positive x axis.
	Phase float64 `json:"phase"`
}

// DefaultOrbitConfig returns a ring of radius 35 inside a margin of 10.
func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{Radius: DefaultOrbitRadius, Margin: DefaultMargin}
}

// Orbit spaces items evenly on a circle around the center, item i at
// Phase + 360/N*i degrees. The radius is clamped so the ring stays inside
// the margin box. Coordinates are rounded to hundredths, then clamped back
// into the box.
func Orbit(items []Item, cfg OrbitConfig) Result {
	margin := clamp(nanTo(cfg.Margin, 0), 0, center)
	radius := clamp(nanTo(cfg.Radius, 0), 0, center-margin)

	result := make(Result, len(items))
	if len(items) == 0 {
		return result
	}

	lo, hi := margin, FieldSize-margin
	step := 360.0 / float64(len(items))
	for i, item := range items {
		rad := (nanTo(cfg.Phase, 0) + step*float64(i)) * math.Pi / 180
		result[i] = Placement{
			Item: item,
			Position: Position{
				X: clamp(round2(center+math.Cos(rad)*radius), lo, hi),
				Y: clamp(round2(center+math.Sin(rad)*radius), lo, hi),
			},
		}
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
