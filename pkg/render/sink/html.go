package sink

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/skillfield/skillfield/pkg/errors"
	"github.com/skillfield/skillfield/pkg/placement"
)

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	animate bool
	page    bool
	height  string
}

// WithHTMLAnimation adds the float and appear animations.
func WithHTMLAnimation() HTMLOption { return func(r *htmlRenderer) { r.animate = true } }

// WithHTMLPage wraps the fragment in a complete document.
func WithHTMLPage() HTMLOption { return func(r *htmlRenderer) { r.page = true } }

// WithHTMLHeight sets the CSS height of the container (default "24rem").
func WithHTMLHeight(h string) HTMLOption { return func(r *htmlRenderer) { r.height = h } }

type htmlBadge struct {
	Badge
	Left, Top  template.CSS
	Background template.CSS
	Motion     Motion
}

type htmlData struct {
	Title     string
	RunID     string
	Height    string
	Animate   bool
	Orbit     bool
	Keyframes template.CSS
	Effects   template.CSS
	Badges    []htmlBadge
}

var htmlTemplate = template.Must(template.New("field").Parse(`{{define "fragment" -}}
<div class="skill-field" data-run="{{.RunID}}" style="position: relative; width: 100%; height: {{.Height}}; overflow: hidden;">
{{- if .Animate}}
  <style>
    .skill-field .appear { opacity: 0; animation: sf-appear 0.5s ease-out forwards; }
    .skill-field .float { display: inline-block; animation: sf-float 3s ease-in-out infinite; }
    @keyframes sf-appear { from { opacity: 0; transform: scale(0.8); } to { opacity: 1; transform: scale(1); } }
    {{.Keyframes}}
    @media (prefers-reduced-motion: reduce) { .skill-field .appear, .skill-field .float { animation: none; opacity: 1; } }
    {{.Effects}}
  </style>
{{- end}}
{{- if .Orbit}}
  <div class="ring" style="position: absolute; inset: 0;">
{{- end}}
{{- range .Badges}}
  <div class="badge{{if .Fallback}} fallback{{end}}" id="badge-{{.ID}}" style="position: absolute; left: {{.Left}}; top: {{.Top}}; transform: translate(-50%, -50%);"{{if $.Animate}} tabindex="0"{{end}}>
    <div class="appear" {{if $.Animate}}style="animation-delay: {{printf "%.2f" .Motion.AppearDelay}}s"{{end}}>
      <span class="float" {{if $.Animate}}style="animation-duration: {{printf "%.2f" .Motion.FloatDuration}}s; animation-delay: {{printf "%.2f" .Motion.FloatDelay}}s"{{end}}>
        {{- if $.Orbit}}<span class="upright" style="display: inline-block;">{{end}}
        <span class="pill" style="display: inline-block; padding: 0.5rem 1rem; border-radius: 9999px; color: #fff; font-weight: 600; white-space: nowrap; background: {{.Background}};"{{if .Category}} data-category="{{.Category}}"{{end}}>{{.Label}}</span>
        {{- if $.Orbit}}</span>{{end}}
      </span>
    </div>
  </div>
{{- end}}
{{- if .Orbit}}
  </div>
{{- end}}
</div>
{{end}}
{{- define "page" -}}
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{if .Title}}{{.Title}}{{else}}Skills{{end}}</title>
  <style>body { margin: 0; font-family: ui-sans-serif, system-ui, sans-serif; background: #0f172a; }</style>
</head>
<body>
{{template "fragment" .}}
</body>
</html>
{{end}}`))

// RenderHTML renders the field as absolutely positioned badges. Offsets are
// percentages of the container, so the layout scales with it. Animated
// badges rest blurred and sharpen on hover, focus or tap; orbit fields turn.
func RenderHTML(f Field, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{height: "24rem"}
	for _, opt := range opts {
		opt(&r)
	}

	data := htmlData{
		Title:   f.Title,
		RunID:   f.RunID,
		Height:  r.height,
		Animate: r.animate,
		Badges:  make([]htmlBadge, len(f.Badges)),
	}
	if r.animate {
		data.Keyframes = template.CSS(floatKeyframes("sf-float"))
		effects := focusCSS(".skill-field ", lookFor(f.Strategy), true)
		if f.Strategy == StrategyOrbit {
			data.Orbit = true
			effects += "\n    " + ringCSS(".skill-field ")
		}
		data.Effects = template.CSS(effects)
	}
	for i, b := range f.Badges {
		data.Badges[i] = htmlBadge{
			Badge:      b,
			Left:       percent(b.X),
			Top:        percent(b.Y),
			Background: gradientCSS(b.From, b.To),
			Motion:     MotionFor(i),
		}
	}

	name := "fragment"
	if r.page {
		name = "page"
	}
	var buf bytes.Buffer
	if err := htmlTemplate.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func percent(v float64) template.CSS {
	return template.CSS(fmt.Sprintf("%.2f%%", v/placement.FieldSize*100))
}

// gradientCSS builds the badge background. Colors that are not plain hex
// are replaced by the defaults so nothing unescaped reaches the style.
func gradientCSS(from, to string) template.CSS {
	if !errors.IsHexColor(from) {
		from = DefaultFrom
	}
	if !errors.IsHexColor(to) {
		to = DefaultTo
	}
	return template.CSS(fmt.Sprintf("linear-gradient(to right, %s, %s)", from, to))
}
