package sink

import (
	"strconv"

	"github.com/skillfield/skillfield/pkg/placement"
)

// Field is a placed skill field, ready to render.
type Field struct {
	RunID    string           `json:"run_id,omitempty"`
	Title    string           `json:"title,omitempty"`
	Strategy string           `json:"strategy"`
	Seed     uint64           `json:"seed,omitempty"`
	Seeded   bool             `json:"seeded"`
	Config   placement.Config `json:"config"`
	Badges   []Badge          `json:"badges"`
}

// Badge is one placed skill.
type Badge struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Category string  `json:"category,omitempty"`
	Level    int     `json:"level,omitempty"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Fallback bool    `json:"fallback,omitempty"`
	Attempts int     `json:"attempts,omitempty"`
}

// Default badge colors, used when an item carries none.
const (
	DefaultFrom = "#a855f7"
	DefaultTo   = "#4f46e5"
)

// NewField converts a placement result to badges, keeping item order.
// Colors, category and level are read from the item's Meta keys
// "from", "to", "category" and "level".
func NewField(res placement.Result) Field {
	badges := make([]Badge, len(res))
	for i, p := range res {
		b := Badge{
			ID:       p.Item.ID,
			Label:    p.Item.Label,
			X:        p.Position.X,
			Y:        p.Position.Y,
			Fallback: p.Fallback,
			Attempts: p.Attempts,
			From:     DefaultFrom,
			To:       DefaultTo,
		}
		if b.Label == "" {
			b.Label = b.ID
		}
		if m := p.Item.Meta; m != nil {
			if v := m["from"]; v != "" {
				b.From = v
			}
			if v := m["to"]; v != "" {
				b.To = v
			}
			b.Category = m["category"]
			b.Level, _ = strconv.Atoi(m["level"])
		}
		badges[i] = b
	}
	return Field{Badges: badges}
}

// Fallbacks counts badges that sit on a fallback anchor.
func (f Field) Fallbacks() int {
	n := 0
	for _, b := range f.Badges {
		if b.Fallback {
			n++
		}
	}
	return n
}

// Attempts totals the candidates drawn while placing the field.
func (f Field) Attempts() int {
	n := 0
	for _, b := range f.Badges {
		n += b.Attempts
	}
	return n
}
