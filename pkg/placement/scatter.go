package placement

import (
	"math/rand/v2"
)

// Source supplies uniform samples in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSource returns a seeded PCG generator. Equal seeds give equal layouts.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// globalSource draws from the process-wide generator, which is randomly
// seeded and safe for concurrent use.
type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// Scatter places items on the field by rejection sampling.
//
// The result has exactly len(items) entries in input order. Sampled
// positions lie in the margin box, outside the center disk and at least
// MinDistance from every earlier position of the run, including earlier
// fallbacks. Items that exhaust MaxAttempts take Anchors[i mod len(Anchors)].
//
// A nil src draws from the global generator, so repeated calls differ.
// Scatter has no side effects beyond consuming src.
func Scatter(items []Item, cfg Config, src Source) Result {
	cfg = cfg.normalize()
	if src == nil {
		src = globalSource{}
	}

	result := make(Result, 0, len(items))
	placed := make([]Position, 0, len(items))
	span := FieldSize - 2*cfg.Margin

	for i, item := range items {
		p := Placement{Item: item}
		found := false

		for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
			p.Attempts = attempt
			cand := Position{
				X: cfg.Margin + unit(src)*span,
				Y: cfg.Margin + unit(src)*span,
			}
			if cand.Distance(Center) < cfg.CenterRadius {
				continue
			}
			if tooClose(cand, placed, cfg.MinDistance) {
				continue
			}
			p.Position = cand
			found = true
			break
		}

		if !found {
			p.Position = cfg.Anchors[i%len(cfg.Anchors)]
			p.Fallback = true
		}

		placed = append(placed, p.Position)
		result = append(result, p)
	}

	return result
}

// unit reads one sample and keeps it in [0, 1] whatever the source returns.
func unit(src Source) float64 {
	f := src.Float64()
	if f != f { // NaN
		return 0
	}
	return clamp(f, 0, 1)
}

func tooClose(p Position, placed []Position, minDist float64) bool {
	if minDist <= 0 {
		return false
	}
	for _, q := range placed {
		if p.Distance(q) < minDist {
			return true
		}
	}
	return false
}
