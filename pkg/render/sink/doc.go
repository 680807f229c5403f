// Package sink renders a computed skill field to output formats.
//
// # Input
//
// Every renderer takes a [Field]: the ordered badges with their normalized
// positions plus the run metadata (run id, strategy, seed, field settings).
// A Field is built from a placement result with [NewField] and is also the
// JSON document written by [RenderJSON], so a saved layout can be re-rendered
// later with [ParseJSON].
//
// # Formats
//
//   - [RenderSVG]: standalone SVG with gradient pill badges and optional CSS
//     float animation
//   - [RenderHTML]: an embeddable fragment of absolutely positioned badges,
//     offsets in percent so it scales with its container
//   - [RenderJSON]: the Field itself, pretty-printed
//   - [RenderPNG], [RenderPDF]: the SVG converted with rsvg-convert
//
// Field coordinates are in [0,100] on both axes. Renderers map them to
// x/100*width and y/100*height and center each badge on its point.
//
// # Motion
//
// Animated output staggers badges by index: a badge appears after
// 0.1s*index, then floats for 3+(index mod 3)*0.5 seconds per cycle starting
// 0.2s*index in. See [MotionFor].
package sink
