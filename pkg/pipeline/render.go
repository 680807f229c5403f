package pipeline

import (
	"context"
	"fmt"

	"github.com/skillfield/skillfield/pkg/render/sink"
)

// RenderFormat renders one output format of a field.
func RenderFormat(ctx context.Context, f sink.Field, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)

	switch format {
	case FormatSVG:
		return sink.RenderSVG(f, svgOpts...), nil
	case FormatHTML:
		return sink.RenderHTML(f, buildHTMLOptions(opts)...)
	case FormatJSON:
		return sink.RenderJSON(f)
	case FormatPNG:
		return sink.RenderPNG(ctx, f, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, f, sink.WithPDFSVGOptions(svgOpts...))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithSize(opts.Width, opts.Height)}
	if opts.Animate {
		svgOpts = append(svgOpts, sink.WithAnimation())
	}
	if opts.Guide {
		svgOpts = append(svgOpts, sink.WithCenterGuide())
	}
	return svgOpts
}

// buildHTMLOptions builds HTML rendering options. The HTML output is a full
// page; the fragment is available from sink directly.
func buildHTMLOptions(opts Options) []sink.HTMLOption {
	htmlOpts := []sink.HTMLOption{sink.WithHTMLPage(), sink.WithHTMLHeight("100vh")}
	if opts.Animate {
		htmlOpts = append(htmlOpts, sink.WithHTMLAnimation())
	}
	return htmlOpts
}
