package placement

import (
	"fmt"
	"math"
)

// Field geometry. Coordinates are normalized to [0, FieldSize] on both axes.
const (
	FieldSize = 100.0
	center    = FieldSize / 2
)

// Center is the middle of the field, the origin of the exclusion disk.
var Center = Position{X: center, Y: center}

// Item is one badge to place. Only ID matters to the layout; Label and Meta
// ride along for renderers.
type Item struct {
	ID    string
	Label string
	Meta  map[string]string
}

// Position is a point on the normalized field.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between p and q.
func (p Position) Distance(q Position) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Placement pairs an item with its assigned position.
type Placement struct {
	Item     Item
	Position Position

	// Fallback is set when no sampled candidate survived and the
	// position is an anchor.
	Fallback bool

	// Attempts is the number of candidates drawn for this item.
	Attempts int
}

// Result is an ordered layout: Result[i] belongs to the i-th input item.
type Result []Placement

// Positions returns the positions in item order.
func (r Result) Positions() []Position {
	out := make([]Position, len(r))
	for i, p := range r {
		out[i] = p.Position
	}
	return out
}

// Fallbacks counts placements that landed on an anchor.
func (r Result) Fallbacks() int {
	n := 0
	for _, p := range r {
		if p.Fallback {
			n++
		}
	}
	return n
}

// Attempts totals the candidates drawn across all items.
func (r Result) Attempts() int {
	n := 0
	for _, p := range r {
		n += p.Attempts
	}
	return n
}

// Lookup returns the placement for the item with the given ID.
func (r Result) Lookup(id string) (Placement, bool) {
	for _, p := range r {
		if p.Item.ID == id {
			return p, true
		}
	}
	return Placement{}, false
}
