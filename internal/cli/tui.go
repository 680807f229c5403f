package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skillfield/skillfield/pkg/pipeline"
	"github.com/skillfield/skillfield/pkg/placement"
	"github.com/skillfield/skillfield/pkg/render/sink"
	"github.com/skillfield/skillfield/pkg/skills"
)

const (
	minPlotCols = 40
	minPlotRows = 12
	chromeRows  = 6 // title, help, stats and borders
)

var (
	styleCenter  = lipgloss.NewStyle().Foreground(colorDim)
	stylePlotBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
)

// =============================================================================
// FieldModel - Interactive field preview
// =============================================================================

// fieldMsg carries a freshly computed layout.
type fieldMsg struct {
	field sink.Field
	err   error
}

// FieldModel is the bubbletea model behind the preview command. Every
// reshuffle is a new mount: a fresh random layout unless the run is seeded.
type FieldModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	cat    skills.Catalog
	opts   pipeline.Options

	Field  sink.Field
	Err    error
	Runs   int
	cols   int
	rows   int
	guide  bool
	loaded bool
}

// NewFieldModel creates a preview for cat.
func NewFieldModel(ctx context.Context, runner *pipeline.Runner, cat skills.Catalog, opts pipeline.Options) FieldModel {
	if opts.Strategy == "" {
		opts.Strategy = pipeline.DefaultStrategy
	}
	return FieldModel{
		ctx:    ctx,
		runner: runner,
		cat:    cat,
		opts:   opts,
		cols:   72,
		rows:   24,
		guide:  true,
	}
}

func (m FieldModel) Init() tea.Cmd {
	return m.layout()
}

func (m FieldModel) layout() tea.Cmd {
	ctx, runner, cat, opts := m.ctx, m.runner, m.cat, m.opts
	return func() tea.Msg {
		f, err := runner.Layout(ctx, cat, opts)
		return fieldMsg{field: f, err: err}
	}
}

func (m FieldModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r", " ":
			// a reshuffle is always a fresh draw
			m.opts.Seeded = false
			m.opts.Seed = 0
			return m, m.layout()
		case "s":
			if m.opts.Strategy == pipeline.StrategyOrbit {
				m.opts.Strategy = pipeline.StrategyScatter
			} else {
				m.opts.Strategy = pipeline.StrategyOrbit
			}
			return m, m.layout()
		case "g":
			m.guide = !m.guide
		}
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-2, minPlotCols)
		m.rows = max(msg.Height-chromeRows, minPlotRows)
	case fieldMsg:
		m.Field, m.Err = msg.field, msg.err
		m.loaded = true
		if msg.err == nil {
			m.Runs++
		}
	}
	return m, nil
}

func (m FieldModel) View() string {
	var b strings.Builder

	title := m.Field.Title
	if title == "" {
		title = "Skill field"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.opts.Strategy))
	b.WriteString("\n")

	switch {
	case m.Err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.Err.Error() + "\n")
	case !m.loaded:
		b.WriteString(StyleDim.Render("placing badges...") + "\n")
	default:
		center := 0.0
		if m.guide && m.Field.Strategy == pipeline.StrategyScatter {
			center = m.Field.Config.CenterRadius
		}
		b.WriteString(stylePlotBox.Render(strings.Join(plotField(m.Field, m.cols, m.rows, center), "\n")))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("  %d badges · %d on anchors · %d tries · run %d",
			len(m.Field.Badges), m.Field.Fallbacks(), m.Field.Attempts(), m.Runs)))
		b.WriteString("\n")
	}

	b.WriteString(StyleDim.Render("r reshuffle  s strategy  g guide  q quit"))
	return b.String()
}

// =============================================================================
// Plotting
// =============================================================================

// plotField rasterizes f onto a cols×rows character grid. Labels are
// centered on their badge position and clipped at the edges. A positive
// center radius shades the exclusion zone.
func plotField(f sink.Field, cols, rows int, center float64) []string {
	cols = max(cols, 1)
	rows = max(rows, 1)

	grid := make([][]rune, rows)
	kind := make([][]byte, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", cols))
		kind[r] = make([]byte, cols)
	}

	if center > 0 {
		c := placement.Center
		for r := range rows {
			for col := range cols {
				p := cellPosition(col, r, cols, rows)
				if p.Distance(c) < center {
					grid[r][col] = '·'
					kind[r][col] = 'c'
				}
			}
		}
	}

	for _, badge := range f.Badges {
		col, row := cellOf(badge.X, badge.Y, cols, rows)
		label := []rune(badge.Label)
		start := col - len(label)/2
		k := byte('b')
		if badge.Fallback {
			k = 'f'
		}
		for i, ch := range label {
			x := start + i
			if x < 0 || x >= cols {
				continue
			}
			grid[row][x] = ch
			kind[row][x] = k
		}
	}

	lines := make([]string, rows)
	for r := range grid {
		var line strings.Builder
		// style runs of the same kind together
		for start := 0; start < cols; {
			end := start + 1
			for end < cols && kind[r][end] == kind[r][start] {
				end++
			}
			line.WriteString(styleCell(kind[r][start], string(grid[r][start:end])))
			start = end
		}
		lines[r] = line.String()
	}
	return lines
}

func styleCell(kind byte, s string) string {
	switch kind {
	case 'b':
		return styleBadge.Render(s)
	case 'f':
		return styleFallback.Render(s)
	case 'c':
		return styleCenter.Render(s)
	}
	return s
}

// cellOf maps a normalized coordinate to a grid cell.
func cellOf(x, y float64, cols, rows int) (int, int) {
	col := int(math.Round(x / placement.FieldSize * float64(cols-1)))
	row := int(math.Round(y / placement.FieldSize * float64(rows-1)))
	return clampInt(col, 0, cols-1), clampInt(row, 0, rows-1)
}

// cellPosition maps a grid cell back to the normalized coordinate of its center.
func cellPosition(col, row, cols, rows int) placement.Position {
	return placement.Position{
		X: (float64(col) + 0.5) / float64(cols) * placement.FieldSize,
		Y: (float64(row) + 0.5) / float64(rows) * placement.FieldSize,
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
