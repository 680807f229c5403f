// Package skills defines the badge catalog a skill field is built from.
//
// A [Catalog] is an ordered list of [Skill] entries. Order matters: it is the
// order badges are placed in, and therefore decides which fallback anchor an
// entry gets when the field is crowded.
//
// Catalogs are stored as TOML:
//
//	title = "Skills"
//
//	[[skill]]
//	name = "Go"
//	category = "backend"
//	level = 90
//	from = "cyan-400"
//	to = "blue-500"
//
// Colors are either hex ("#22d3ee") or palette names ("cyan-400"). Entries
// without colors use the default purple-to-indigo gradient.
package skills

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/skillfield/skillfield/pkg/errors"
	"github.com/skillfield/skillfield/pkg/placement"
)

// Skill is one badge.
type Skill struct {
	Name     string `toml:"name" json:"name"`
	Category string `toml:"category,omitempty" json:"category,omitempty"`
	Level    int    `toml:"level,omitempty" json:"level,omitempty"`
	From     string `toml:"from,omitempty" json:"from,omitempty"`
	To       string `toml:"to,omitempty" json:"to,omitempty"`
}

// Gradient returns the resolved start and end colors, falling back to the
// default gradient for unset or unknown colors.
func (s Skill) Gradient() (from, to string) {
	from, err := ResolveColor(s.From)
	if s.From == "" || err != nil {
		from = mustResolve(DefaultFrom)
	}
	to, err = ResolveColor(s.To)
	if s.To == "" || err != nil {
		to = mustResolve(DefaultTo)
	}
	return from, to
}

// ID returns the skill's slug, used as its placement item ID.
func (s Skill) ID() string {
	return Slug(s.Name)
}

// Catalog is an ordered set of skills.
type Catalog struct {
	Title  string  `toml:"title,omitempty" json:"title,omitempty"`
	Skills []Skill `toml:"skill" json:"skills"`
}

// Len returns the number of skills.
func (c Catalog) Len() int { return len(c.Skills) }

// Items converts the catalog to placement items, preserving order.
// Duplicate slugs get a numeric suffix so IDs stay unique.
func (c Catalog) Items() []placement.Item {
	items := make([]placement.Item, len(c.Skills))
	seen := make(map[string]int, len(c.Skills))

	for i, s := range c.Skills {
		id := s.ID()
		if n := seen[id]; n > 0 {
			id = fmt.Sprintf("%s-%d", id, n+1)
		}
		seen[s.ID()]++

		from, to := s.Gradient()
		meta := map[string]string{
			"from": from,
			"to":   to,
		}
		if s.Category != "" {
			meta["category"] = s.Category
		}
		if s.Level > 0 {
			meta["level"] = strconv.Itoa(s.Level)
		}
		items[i] = placement.Item{ID: id, Label: s.Name, Meta: meta}
	}
	return items
}

// Find returns the skill with the given slug.
func (c Catalog) Find(id string) (Skill, bool) {
	for _, s := range c.Skills {
		if s.ID() == id {
			return s, true
		}
	}
	return Skill{}, false
}

// Categories returns the distinct categories in first-seen order.
func (c Catalog) Categories() []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range c.Skills {
		if s.Category == "" || seen[s.Category] {
			continue
		}
		seen[s.Category] = true
		out = append(out, s.Category)
	}
	return out
}

// Filter returns a catalog holding only skills in the given categories.
// No categories returns c unchanged.
func (c Catalog) Filter(categories ...string) Catalog {
	if len(categories) == 0 {
		return c
	}
	want := make(map[string]bool, len(categories))
	for _, cat := range categories {
		want[strings.ToLower(cat)] = true
	}
	out := Catalog{Title: c.Title}
	for _, s := range c.Skills {
		if want[strings.ToLower(s.Category)] {
			out.Skills = append(out.Skills, s)
		}
	}
	return out
}

// Validate checks every entry and reports all problems at once.
func (c Catalog) Validate() error {
	var errs errors.ValidationErrors

	if len(c.Skills) == 0 {
		errs = append(errs, errors.New(errors.ErrCodeInvalidCatalog, "catalog has no skills"))
	}

	names := make(map[string]int, len(c.Skills))
	for i, s := range c.Skills {
		if err := errors.ValidateSkillName(s.Name); err != nil {
			errs = append(errs, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "skill %d", i+1))
			continue
		}
		key := strings.ToLower(strings.TrimSpace(s.Name))
		if prev, ok := names[key]; ok {
			errs = append(errs, errors.New(errors.ErrCodeInvalidCatalog, "skill %d: %q duplicates skill %d", i+1, s.Name, prev+1))
		} else {
			names[key] = i
		}
		if s.Level < 0 || s.Level > 100 {
			errs = append(errs, errors.New(errors.ErrCodeInvalidCatalog, "skill %q: level %d outside 0-100", s.Name, s.Level))
		}
		for _, col := range []string{s.From, s.To} {
			if col == "" {
				continue
			}
			if _, err := ResolveColor(col); err != nil {
				errs = append(errs, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "skill %q", s.Name))
			}
		}
	}

	return errs.Err()
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases name and collapses anything but letters and digits into
// single dashes: "Node.js" becomes "node-js".
func Slug(name string) string {
	s := slugInvalid.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "skill"
	}
	return s
}
