// Package pkg provides the core libraries for skillfield badge layouts.
//
// # Overview
//
// Skillfield places a portfolio's skill badges at random positions in a
// normalized 100×100 field, keeping them inside a margin, out of a reserved
// center disk and apart from each other. The pkg directory is organized
// into these areas:
//
//  1. [placement] - The placement generator (scatter and orbit strategies)
//  2. [skills] - Skill catalogs: the built-in portfolio and TOML files
//  3. [render] - Output formats (SVG, HTML, JSON, PNG, PDF)
//  4. [pipeline] - Orchestration (catalog → layout → render) with caching
//  5. [cache] - File, Redis and null cache backends
//
// # Architecture
//
// The typical data flow:
//
//	skills.toml / built-in catalog
//	         ↓
//	    [skills] package (validate, filter, convert to items)
//	         ↓
//	    [placement] package (rejection sampling with anchor fallback)
//	         ↓
//	    [render/sink] package (badge field → SVG/HTML/JSON)
//	         ↓
//	    [render] package (SVG → PNG/PDF)
//
// # Quick Start
//
// Place the built-in catalog and render an animated SVG:
//
//	import (
//	    "github.com/skillfield/skillfield/pkg/placement"
//	    "github.com/skillfield/skillfield/pkg/render/sink"
//	    "github.com/skillfield/skillfield/pkg/skills"
//	)
//
//	cat := skills.Default()
//	res := placement.Scatter(cat.Items(), placement.DefaultConfig(), nil)
//	svg := sink.RenderSVG(sink.NewField(res), sink.WithAnimation())
//
// Passing a nil source draws fresh positions on every call. Pass
// [placement.NewSource] with a seed for a reproducible layout.
//
// # Main Packages
//
// [placement] - Random badge positions under margin, center and spacing
// constraints. Each badge gets a bounded number of attempts before it
// falls back to a fixed anchor, so placement never fails.
//
// [skills] - The catalog model: names, categories, levels and gradient
// colors, read from TOML with [github.com/BurntSushi/toml].
//
// [render/sink] - Renderers for a placed field. SVG and HTML carry the
// floating-drift animation; JSON is the interchange format for saved
// layouts.
//
// [pipeline] - The layout → render pipeline shared by every command.
// Seeded runs are cached by content hash; unseeded runs never are.
//
// [cache] - The cache interface with file, Redis and null backends.
//
// [observability] - Hook interfaces for layout, render, cache and HTTP
// events, implemented by the telemetry layer.
//
// [errors] - Coded errors shared across packages.
//
// [buildinfo] - Version metadata stamped at build time.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/placement/...  # Specific package
//	go test -run Example         # Examples only
//
// [placement]: https://pkg.go.dev/github.com/skillfield/skillfield/pkg/placement
// [skills]: https://pkg.go.dev/github.com/skillfield/skillfield/pkg/skills
// [render]: https://pkg.go.dev/github.com/skillfield/skillfield/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/skillfield/skillfield/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/skillfield/skillfield/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/skillfield/skillfield/pkg/cache
// [observability]: https://pkg.go.dev/github.com/skillfield/skillfield/pkg/observability
// [errors]: https://pkg.go.dev/github.com/skillfield/skillfield/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/skillfield/skillfield/pkg/buildinfo
package pkg
