package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"unicode/utf8"

	"github.com/skillfield/skillfield/pkg/placement"
)

// Default frame size in pixels.
const (
	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Badge geometry in pixels.
const (
	badgeHeight   = 32.0
	badgeFontSize = 14.0
	badgePadX     = 16.0
	charWidth     = 7.6
	minBadgeWidth = 48.0
)

const motionCSS = `
    .appear { opacity: 0; animation: sf-appear %.1fs ease-out forwards; transform-box: fill-box; transform-origin: center; }
    .float { animation: sf-float 3s ease-in-out infinite; transform-box: fill-box; transform-origin: center; }
    @keyframes sf-appear { from { opacity: 0; transform: scale(0.8); } to { opacity: 1; transform: scale(1); } }
    %s
    @media (prefers-reduced-motion: reduce) { .appear, .float { animation: none; opacity: 1; } }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	animate       bool
	guide         bool
	orbit         bool
}

// WithSize sets the frame size in pixels. Non-positive values keep the default.
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 {
			r.width = w
		}
		if h > 0 {
			r.height = h
		}
	}
}

func WithAnimation() SVGOption   { return func(r *svgRenderer) { r.animate = true } }
func WithCenterGuide() SVGOption { return func(r *svgRenderer) { r.guide = true } }

// RenderSVG draws each badge as a gradient pill centered on its position.
// Badges are drawn in field order, so later badges overlap earlier ones.
//
// Animated output also blurs resting badges and sharpens the one under the
// pointer. Orbit fields turn as a ring with upright labels.
func RenderSVG(f Field, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	r.orbit = r.animate && f.Strategy == StrategyOrbit

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="ui-sans-serif, system-ui, sans-serif">`+"\n",
		r.width, r.height, r.width, r.height)

	renderGradients(&buf, f.Badges)
	if r.animate {
		fmt.Fprintf(&buf, "  <style>%s\n    %s", fmt.Sprintf(motionCSS, appearDuration, floatKeyframes("sf-float")),
			focusCSS("", lookFor(f.Strategy), false))
		if r.orbit {
			fmt.Fprintf(&buf, "\n    %s", ringCSS(""))
		}
		buf.WriteString("\n  </style>\n")
	}
	if r.guide {
		renderGuide(&buf, f.Config, r.width, r.height)
	}
	if r.orbit {
		buf.WriteString(`  <g class="ring">` + "\n")
	}
	for i, b := range f.Badges {
		renderBadge(&buf, i, b, &r)
	}
	if r.orbit {
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{width: DefaultWidth, height: DefaultHeight}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderGradients(buf *bytes.Buffer, badges []Badge) {
	if len(badges) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for i, b := range badges {
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="0" y1="0" x2="1" y2="0"><stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/></linearGradient>`+"\n",
			gradientID(i), escapeXML(b.From), escapeXML(b.To))
	}
	buf.WriteString("  </defs>\n")
}

// renderGuide outlines the margin box and the reserved center disk.
func renderGuide(buf *bytes.Buffer, cfg placement.Config, w, h float64) {
	m := cfg.Margin
	fmt.Fprintf(buf, `  <g class="guide" fill="none" stroke="#94a3b8" stroke-dasharray="6 4" stroke-width="1">`+"\n")
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		scale(m, w), scale(m, h), scale(placement.FieldSize-2*m, w), scale(placement.FieldSize-2*m, h))
	if cfg.CenterRadius > 0 {
		fmt.Fprintf(buf, `    <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f"/>`+"\n",
			scale(placement.Center.X, w), scale(placement.Center.Y, h), scale(cfg.CenterRadius, w), scale(cfg.CenterRadius, h))
	}
	buf.WriteString("  </g>\n")
}

func renderBadge(buf *bytes.Buffer, i int, b Badge, r *svgRenderer) {
	bw := BadgeWidth(b.Label)
	class := "badge"
	if b.Fallback {
		class += " fallback"
	}

	focusable := ""
	if r.animate {
		focusable = ` tabindex="0"`
	}
	fmt.Fprintf(buf, `  <g class="%s" id="badge-%s" transform="translate(%.1f,%.1f)"%s>`+"\n",
		class, escapeXML(b.ID), scale(b.X, r.width), scale(b.Y, r.height), focusable)

	if r.animate {
		m := MotionFor(i)
		fmt.Fprintf(buf, `    <g class="appear" style="animation-delay: %.2fs">`+"\n", m.AppearDelay)
		fmt.Fprintf(buf, `    <g class="float" style="animation-duration: %.2fs; animation-delay: %.2fs">`+"\n", m.FloatDuration, m.FloatDelay)
		if r.orbit {
			buf.WriteString(`    <g class="upright">` + "\n")
		}
		buf.WriteString(`    <g class="pill">` + "\n")
	}

	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="url(#%s)"/>`+"\n",
		-bw/2, -badgeHeight/2, bw, badgeHeight, badgeHeight/2, gradientID(i))
	fmt.Fprintf(buf, `    <text x="0" y="0" text-anchor="middle" dominant-baseline="central" font-size="%.0f" font-weight="600" fill="#ffffff">%s</text>`+"\n",
		badgeFontSize, escapeXML(b.Label))

	if r.animate {
		buf.WriteString("    </g>\n")
		if r.orbit {
			buf.WriteString("    </g>\n")
		}
		buf.WriteString("    </g>\n    </g>\n")
	}
	buf.WriteString("  </g>\n")
}

// BadgeWidth estimates the pill width for label in pixels.
func BadgeWidth(label string) float64 {
	w := float64(utf8.RuneCountInString(label))*charWidth + 2*badgePadX
	return max(w, minBadgeWidth)
}

func gradientID(i int) string {
	return fmt.Sprintf("grad-%d", i)
}

// scale maps a field coordinate to pixels along an axis of the given size.
func scale(v, size float64) float64 {
	return v / placement.FieldSize * size
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
