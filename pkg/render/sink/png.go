package sink

import (
	"context"

	"github.com/skillfield/skillfield/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithPNGSVGOptions passes options through to the underlying SVG renderer.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG renders the field as PNG via SVG conversion. Animation options
// are dropped: a raster shows the resting frame.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, f Field, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	svg := RenderSVG(f, staticOptions(r.svgOpts)...)
	return render.ToPNG(ctx, svg, r.scale)
}

// staticOptions appends an override that turns animation back off.
func staticOptions(opts []SVGOption) []SVGOption {
	out := make([]SVGOption, 0, len(opts)+1)
	out = append(out, opts...)
	return append(out, func(r *svgRenderer) { r.animate = false })
}
