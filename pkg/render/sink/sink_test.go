package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/skillfield/skillfield/pkg/errors"
	"github.com/skillfield/skillfield/pkg/placement"
	"github.com/skillfield/skillfield/pkg/render"
)

func testField() Field {
	res := placement.Result{
		{
			Item:     placement.Item{ID: "go", Label: "Go", Meta: map[string]string{"from": "#22d3ee", "to": "#3b82f6", "category": "backend", "level": "90"}},
			Position: placement.Position{X: 20, Y: 30},
		},
		{
			Item:     placement.Item{ID: "r-d", Label: "R&D <lab>"},
			Position: placement.Position{X: 85, Y: 85},
			Fallback: true,
		},
	}
	f := NewField(res)
	f.RunID = "run-1"
	f.Strategy = "scatter"
	f.Seed = 7
	f.Seeded = true
	f.Config = placement.DefaultConfig()
	return f
}

func TestNewField(t *testing.T) {
	f := testField()

	if len(f.Badges) != 2 {
		t.Fatalf("Badges = %d, want 2", len(f.Badges))
	}
	goBadge := f.Badges[0]
	if goBadge.From != "#22d3ee" || goBadge.To != "#3b82f6" {
		t.Errorf("gradient = %s..%s", goBadge.From, goBadge.To)
	}
	if goBadge.Category != "backend" || goBadge.Level != 90 {
		t.Errorf("category/level = %q/%d", goBadge.Category, goBadge.Level)
	}
	if f.Badges[1].From != DefaultFrom || f.Badges[1].To != DefaultTo {
		t.Error("badge without colors should get the defaults")
	}
	if f.Fallbacks() != 1 {
		t.Errorf("Fallbacks() = %d, want 1", f.Fallbacks())
	}

	unlabeled := NewField(placement.Result{{Item: placement.Item{ID: "x"}}})
	if unlabeled.Badges[0].Label != "x" {
		t.Errorf("empty label should fall back to ID, got %q", unlabeled.Badges[0].Label)
	}
}

func TestRenderSVG(t *testing.T) {
	svg := RenderSVG(testField(), WithSize(1000, 500))

	if err := xml.Unmarshal(svg, new(struct{})); err != nil {
		t.Fatalf("SVG is not well-formed XML: %v\n%s", err, svg)
	}

	s := string(svg)
	for _, want := range []string{
		`viewBox="0 0 1000.0 500.0"`,
		`id="badge-go" transform="translate(200.0,150.0)"`,
		`class="badge fallback" id="badge-r-d" transform="translate(850.0,425.0)"`,
		`stop-color="#22d3ee"`,
		`R&amp;D &lt;lab&gt;`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(s, "@keyframes") {
		t.Error("static SVG should not carry animation CSS")
	}
	if strings.Contains(s, `class="guide"`) {
		t.Error("guide should be off by default")
	}
}

func TestRenderSVGDefaults(t *testing.T) {
	svg := string(RenderSVG(Field{}, WithSize(-1, 0)))
	if !strings.Contains(svg, `width="800" height="600"`) {
		t.Errorf("non-positive size should keep defaults: %s", svg)
	}
	if strings.Contains(svg, "<defs>") {
		t.Error("empty field should not emit gradients")
	}
}

func TestRenderSVGAnimation(t *testing.T) {
	svg := RenderSVG(testField(), WithAnimation())

	if err := xml.Unmarshal(svg, new(struct{})); err != nil {
		t.Fatalf("animated SVG is not well-formed XML: %v", err)
	}
	s := string(svg)
	for _, want := range []string{
		"@keyframes sf-float",
		`style="animation-delay: 0.00s"`,
		`style="animation-delay: 0.10s"`,
		`style="animation-duration: 3.50s; animation-delay: 0.20s"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("animated SVG missing %q", want)
		}
	}
}

func orbitField() Field {
	f := testField()
	f.Strategy = StrategyOrbit
	return f
}

func TestRenderSVGFocusEffects(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		want    []string
		without []string
	}{
		{
			name:  "scatter",
			field: testField(),
			want: []string{
				".pill { filter: blur(4px) drop-shadow(0 0 15px rgba(147, 51, 234, 0.4)); opacity: 0.85;",
				".badge:hover .pill, .badge:focus .pill, .badge:active .pill { filter: blur(0px) drop-shadow(0 0 20px rgba(59, 130, 246, 0.6)); opacity: 1; transform: scale(1.3); }",
				`transform="translate(160.0,180.0)" tabindex="0"`,
				`<g class="pill">`,
			},
			without: []string{"sf-ring", `class="ring"`, `class="upright"`, "box-shadow"},
		},
		{
			name:  "orbit",
			field: orbitField(),
			want: []string{
				".pill { filter: blur(8px); opacity: 1;",
				"transform: scale(1.2); }",
				".ring { animation: sf-ring 60s linear infinite;",
				".upright { animation: sf-ring 60s linear infinite reverse;",
				"@keyframes sf-ring",
				`<g class="ring">`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := RenderSVG(tt.field, WithAnimation())
			if err := xml.Unmarshal(svg, new(struct{})); err != nil {
				t.Fatalf("SVG is not well-formed XML: %v\n%s", err, svg)
			}
			s := string(svg)
			for _, want := range tt.want {
				if !strings.Contains(s, want) {
					t.Errorf("SVG missing %q", want)
				}
			}
			for _, bad := range tt.without {
				if strings.Contains(s, bad) {
					t.Errorf("SVG should not contain %q", bad)
				}
			}
			if got := strings.Count(s, `<g class="pill">`); got != len(tt.field.Badges) {
				t.Errorf("pill groups = %d, want %d", got, len(tt.field.Badges))
			}
		})
	}
}

func TestRenderSVGOrbitUprightLabels(t *testing.T) {
	s := string(RenderSVG(orbitField(), WithAnimation()))
	if got := strings.Count(s, `<g class="upright">`); got != 2 {
		t.Errorf("upright groups = %d, want one per badge", got)
	}
	ring := strings.Index(s, `<g class="ring">`)
	first := strings.Index(s, `id="badge-go"`)
	if ring < 0 || first < ring {
		t.Error("badges should sit inside the ring group")
	}
}

func TestRenderSVGStaticHasNoEffects(t *testing.T) {
	s := string(RenderSVG(orbitField()))
	for _, bad := range []string{"blur(", "sf-ring", `class="ring"`, `class="pill"`, "tabindex"} {
		if strings.Contains(s, bad) {
			t.Errorf("static SVG should not contain %q", bad)
		}
	}
}

func TestRenderSVGCenterGuide(t *testing.T) {
	s := string(RenderSVG(testField(), WithCenterGuide()))
	if !strings.Contains(s, `<rect x="80.0" y="60.0" width="640.0" height="480.0"/>`) {
		t.Errorf("guide should outline the margin box:\n%s", s)
	}
	if !strings.Contains(s, `<ellipse cx="400.0" cy="300.0" rx="200.0" ry="150.0"/>`) {
		t.Errorf("guide should outline the center disk:\n%s", s)
	}
}

func TestBadgeWidth(t *testing.T) {
	if BadgeWidth("") != minBadgeWidth {
		t.Errorf("BadgeWidth(\"\") = %v, want %v", BadgeWidth(""), minBadgeWidth)
	}
	if BadgeWidth("TypeScript") <= BadgeWidth("Go") {
		t.Error("longer labels should be wider")
	}
	if BadgeWidth("日本語") != BadgeWidth("abc") {
		t.Error("width should count runes, not bytes")
	}
}

func TestMotionFor(t *testing.T) {
	tests := []struct {
		index int
		want  Motion
	}{
		{0, Motion{AppearDelay: 0, FloatDuration: 3, FloatDelay: 0}},
		{1, Motion{AppearDelay: 0.1, FloatDuration: 3.5, FloatDelay: 0.2}},
		{2, Motion{AppearDelay: 0.2, FloatDuration: 4, FloatDelay: 0.4}},
		{3, Motion{AppearDelay: 0.30000000000000004, FloatDuration: 3, FloatDelay: 0.6000000000000001}},
		{-1, Motion{FloatDuration: 3}},
	}
	for _, tt := range tests {
		if got := MotionFor(tt.index); got != tt.want {
			t.Errorf("MotionFor(%d) = %+v, want %+v", tt.index, got, tt.want)
		}
	}
}

func TestFloatKeyframes(t *testing.T) {
	kf := floatKeyframes("f")
	for _, want := range []string{
		"0.00% { transform: translateY(0.00px) rotate(0.00deg); }",
		"50.00% { transform: translateY(-15.00px) rotate(0.00deg); }",
		"33.33% { transform: translateY(-10.00px) rotate(5.00deg); }",
		"66.67% { transform: translateY(-10.00px) rotate(-5.00deg); }",
		"100.00% { transform: translateY(0.00px) rotate(0.00deg); }",
	} {
		if !strings.Contains(kf, want) {
			t.Errorf("keyframes missing %q in %s", want, kf)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(testField())
	if err != nil {
		t.Fatalf("RenderHTML error: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		`data-run="run-1"`,
		`left: 20.00%; top: 30.00%;`,
		`linear-gradient(to right, #22d3ee, #3b82f6)`,
		`R&amp;D &lt;lab&gt;`,
		`data-category="backend"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("HTML missing %q\n%s", want, s)
		}
	}
	if strings.Contains(s, "<!DOCTYPE") {
		t.Error("fragment should not be a full page")
	}
	if strings.Contains(s, "@keyframes") {
		t.Error("static HTML should not carry animation CSS")
	}
}

func TestRenderHTMLPageAnimated(t *testing.T) {
	f := testField()
	f.Title = "My Skills"
	out, err := RenderHTML(f, WithHTMLPage(), WithHTMLAnimation(), WithHTMLHeight("30rem"))
	if err != nil {
		t.Fatalf("RenderHTML error: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>My Skills</title>",
		"height: 30rem",
		"@keyframes sf-float",
		"animation-duration: 3.50s; animation-delay: 0.20s",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderHTMLFocusEffects(t *testing.T) {
	out, err := RenderHTML(testField(), WithHTMLAnimation())
	if err != nil {
		t.Fatalf("RenderHTML error: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		".skill-field .pill { filter: blur(4px) drop-shadow(0 0 15px rgba(147, 51, 234, 0.4)); opacity: 0.85;",
		".skill-field .badge:hover .pill, .skill-field .badge:focus .pill, .skill-field .badge:active .pill",
		"box-shadow: 0 0 30px rgba(59, 130, 246, 0.8), 0 0 60px rgba(59, 130, 246, 0.4);",
		"{ z-index: 50; }",
		`tabindex="0"`,
		`<span class="pill"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if strings.Contains(s, "sf-ring") || strings.Contains(s, `class="upright"`) {
		t.Error("scatter fields should not rotate")
	}

	static, err := RenderHTML(testField())
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(static), "blur(") || strings.Contains(string(static), "tabindex") {
		t.Error("static HTML should not blur badges")
	}
}

func TestRenderHTMLOrbitRing(t *testing.T) {
	out, err := RenderHTML(orbitField(), WithHTMLAnimation())
	if err != nil {
		t.Fatalf("RenderHTML error: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		".skill-field .ring { animation: sf-ring 60s linear infinite;",
		".skill-field .upright { animation: sf-ring 60s linear infinite reverse;",
		`<div class="ring" style="position: absolute; inset: 0;">`,
		"filter: blur(8px);",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if got := strings.Count(s, `<span class="upright"`); got != 2 {
		t.Errorf("upright spans = %d, want one per badge", got)
	}
}

func TestGradientCSSRejectsNonHex(t *testing.T) {
	got := string(gradientCSS("red; background: url(x)", "#fff"))
	want := "linear-gradient(to right, " + DefaultFrom + ", #fff)"
	if got != want {
		t.Errorf("gradientCSS = %q, want %q", got, want)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testField())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out["run_id"] != "run-1" || out["strategy"] != "scatter" || out["seed"] != float64(7) {
		t.Errorf("metadata = %v", out)
	}
	badges, _ := out["badges"].([]any)
	if len(badges) != 2 {
		t.Fatalf("badges = %d, want 2", len(badges))
	}

	back, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("ParseJSON error: %v", err)
	}
	if back.Badges[1].X != 85 || !back.Badges[1].Fallback {
		t.Errorf("round trip lost badge data: %+v", back.Badges[1])
	}
	if back.Config.MinDistance != placement.DefaultMinDistance {
		t.Errorf("round trip lost config: %+v", back.Config)
	}
}

func TestRenderJSONEmpty(t *testing.T) {
	data, err := RenderJSON(Field{Strategy: "scatter"})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"badges": []`)) {
		t.Errorf("empty field should have an empty badges array:\n%s", data)
	}
}

func TestParseJSONInvalid(t *testing.T) {
	if _, err := ParseJSON([]byte("{")); err == nil {
		t.Error("ParseJSON should reject malformed input")
	}
}

func TestRenderPNGWithoutConverter(t *testing.T) {
	if render.Available() {
		t.Skip("rsvg-convert installed")
	}
	_, err := RenderPNG(context.Background(), testField())
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("RenderPNG error = %v, want UNSUPPORTED", err)
	}
	_, err = RenderPDF(context.Background(), testField())
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("RenderPDF error = %v, want UNSUPPORTED", err)
	}
}

func TestRenderPNG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := RenderPNG(context.Background(), testField(), WithScale(1), WithPNGSVGOptions(WithAnimation()))
	if err != nil {
		t.Fatalf("RenderPNG error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
