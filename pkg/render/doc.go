// Package render converts rendered skill fields between output formats.
//
// The SVG, HTML and JSON renderers live in the [sink] subpackage. This
// package holds the format conversion they share: [ToPDF] and [ToPNG] turn
// any SVG into other formats using the external rsvg-convert tool (from
// librsvg).
//
//	svg := sink.RenderSVG(field, sink.WithSize(800, 600))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Conversion fails with an [errors.ErrCodeUnsupported] error when
// rsvg-convert is not installed; [Available] checks for it up front.
//
// [sink]: github.com/skillfield/skillfield/pkg/render/sink
package render
