package sink

import (
	"fmt"
	"strings"
)

// StrategyOrbit marks fields laid out on a ring. Their animated output
// turns the ring once per RingPeriod and keeps each label upright.
const StrategyOrbit = "orbit"

// RingPeriod is the time in seconds for one full turn of an orbit ring.
const RingPeriod = 60.0

// focusLook is how a badge rests and how it looks under hover, focus or tap.
type focusLook struct {
	Blur       float64 // resting blur in px
	Glow       string  // resting glow color
	Opacity    float64 // resting opacity
	HoverScale float64
}

// The active state is the same for every strategy: sharp, opaque and lit blue.
const (
	activeDropShadow = "drop-shadow(0 0 20px rgba(59, 130, 246, 0.6))"
	activeBoxShadow  = "0 0 30px rgba(59, 130, 246, 0.8), 0 0 60px rgba(59, 130, 246, 0.4)"
	focusTransition  = 0.3
)

var (
	scatterLook = focusLook{Blur: 4, Glow: "rgba(147, 51, 234, 0.4)", Opacity: 0.85, HoverScale: 1.3}
	orbitLook   = focusLook{Blur: 8, Opacity: 1, HoverScale: 1.2}
)

func lookFor(strategy string) focusLook {
	if strategy == StrategyOrbit {
		return orbitLook
	}
	return scatterLook
}

// restingFilter is the CSS filter of a badge nobody points at.
func (l focusLook) restingFilter() string {
	if l.Glow == "" {
		return fmt.Sprintf("blur(%gpx)", l.Blur)
	}
	return fmt.Sprintf("blur(%gpx) drop-shadow(0 0 15px %s)", l.Blur, l.Glow)
}

// focusCSS styles the .badge and .pill classes under scope. HTML output
// also gets the halo and raises the active badge, which SVG cannot do.
func focusCSS(scope string, l focusLook, html bool) string {
	badge, pill := scope+".badge", scope+".pill"
	active := fmt.Sprintf("%[1]s:hover .pill, %[1]s:focus .pill, %[1]s:active .pill", badge)

	var b strings.Builder
	fmt.Fprintf(&b, "%s { cursor: pointer; outline: none; }\n", badge)
	if html {
		fmt.Fprintf(&b, "    %[1]s:hover, %[1]s:focus, %[1]s:active { z-index: 50; }\n", badge)
	}
	fmt.Fprintf(&b, "    %s { filter: %s; opacity: %g; transition: all %gs ease-in-out; transform-box: fill-box; transform-origin: center; }\n",
		pill, l.restingFilter(), l.Opacity, focusTransition)
	fmt.Fprintf(&b, "    %s { filter: blur(0px) %s; opacity: 1; transform: scale(%g);", active, activeDropShadow, l.HoverScale)
	if html {
		fmt.Fprintf(&b, " box-shadow: %s;", activeBoxShadow)
	}
	b.WriteString(" }")
	return b.String()
}

// ringCSS turns the .ring class under scope once per RingPeriod and spins
// each .upright element the other way so labels stay level.
func ringCSS(scope string) string {
	ring, upright := scope+".ring", scope+".upright"
	return fmt.Sprintf(`%[1]s { animation: sf-ring %[3]gs linear infinite; transform-box: view-box; transform-origin: 50%% 50%%; }
    %[2]s { animation: sf-ring %[3]gs linear infinite reverse; transform-box: fill-box; transform-origin: center; }
    @keyframes sf-ring { from { transform: rotate(0deg); } to { transform: rotate(360deg); } }
    @media (prefers-reduced-motion: reduce) { %[1]s, %[2]s { animation: none; } }`,
		ring, upright, RingPeriod)
}
