// Package placement computes where skill badges sit on a floating field.
//
// # Overview
//
// The field is a normalized square: both axes run from 0 to 100, with (50,50)
// at the center. A presentation layer maps these coordinates onto whatever
// surface it draws on (percent offsets in HTML, pixels in SVG).
//
// [Scatter] places items by randomized rejection sampling:
//
//  1. For each item, in input order, draw up to [Config.MaxAttempts]
//     candidate points uniformly from the margin box [M, 100-M]².
//  2. Reject a candidate that falls inside the central exclusion disk
//     (radius [Config.CenterRadius] around (50,50)), which is reserved for
//     foreground content.
//  3. Reject a candidate closer than [Config.MinDistance] to any position
//     already placed in the same run.
//  4. Accept the first surviving candidate. If none survives, assign the
//     fallback anchor Anchors[index mod len(Anchors)].
//
// Scatter never fails: it always returns exactly one [Placement] per item,
// in the order the items were given. Fallback anchors are not checked
// against the minimum distance, so crowded fields may overlap at the anchors.
//
// [Orbit] is a deterministic alternative that spaces items evenly on a ring
// around the center.
//
// # Randomness
//
// Scatter draws from an injected [Source]. Passing nil uses the process-wide
// generator, so every call yields a fresh arrangement. Passing
// [NewSource](seed) makes a run reproducible, which is what tests and cached
// renders rely on:
//
//	items := []placement.Item{{ID: "go", Label: "Go"}, {ID: "sql", Label: "SQL"}}
//	res := placement.Scatter(items, placement.DefaultConfig(), placement.NewSource(42))
//	for _, p := range res {
//	    fmt.Println(p.Item.Label, p.Position)
//	}
//
// # Configuration
//
// [DefaultConfig] returns margin 10, center radius 25, minimum distance 8,
// 100 attempts per item and the four corner anchors (15,15), (85,15),
// (15,85), (85,85). [Config.Validate] reports nonsensical settings; Scatter
// itself clamps them instead of failing.
package placement
