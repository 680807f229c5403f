package sink

import (
	"fmt"
	"slices"
	"strings"
)

// Motion holds the animation timings of one badge, in seconds.
type Motion struct {
	AppearDelay   float64 `json:"appear_delay"`
	FloatDuration float64 `json:"float_duration"`
	FloatDelay    float64 `json:"float_delay"`
}

// Float path of every badge: vertical offset in px and rotation in degrees.
var (
	floatY      = []float64{0, -15, 0}
	floatRotate = []float64{0, 5, -5, 0}
)

const appearDuration = 0.5

// MotionFor returns the timings for the badge at index.
func MotionFor(index int) Motion {
	if index < 0 {
		index = 0
	}
	return Motion{
		AppearDelay:   0.1 * float64(index),
		FloatDuration: 3 + float64(index%3)*0.5,
		FloatDelay:    0.2 * float64(index),
	}
}

// floatKeyframes merges floatY and floatRotate into one CSS keyframes block.
// Both tracks are spread evenly over the cycle and linearly interpolated at
// each other's stops.
func floatKeyframes(name string) string {
	stops := map[float64]bool{}
	for i := range floatY {
		stops[stop(i, len(floatY))] = true
	}
	for i := range floatRotate {
		stops[stop(i, len(floatRotate))] = true
	}

	ordered := make([]float64, 0, len(stops))
	for s := range stops {
		ordered = append(ordered, s)
	}
	slices.Sort(ordered)

	var b strings.Builder
	fmt.Fprintf(&b, "@keyframes %s {", name)
	for _, s := range ordered {
		fmt.Fprintf(&b, " %.2f%% { transform: translateY(%.2fpx) rotate(%.2fdeg); }",
			s*100, interpolate(floatY, s), interpolate(floatRotate, s))
	}
	b.WriteString(" }")
	return b.String()
}

func stop(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// interpolate samples track at t in [0,1].
func interpolate(track []float64, t float64) float64 {
	if len(track) == 1 {
		return track[0]
	}
	pos := t * float64(len(track)-1)
	i := int(pos)
	if i >= len(track)-1 {
		return track[len(track)-1]
	}
	frac := pos - float64(i)
	return track[i] + (track[i+1]-track[i])*frac
}
