package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillfield/skillfield/pkg/errors"
	"github.com/skillfield/skillfield/pkg/pipeline"
	"github.com/skillfield/skillfield/pkg/render/sink"
)

// renderFlags holds the output flags of the render command.
type renderFlags struct {
	formats string
	output  string
	layout  string
	width   float64
	height  float64
	animate bool
	guide   bool
	scale   float64
}

// renderCommand creates the render command for writing field artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags  layoutFlags
		rflags renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [catalog.toml]",
		Short: "Render the skill field to SVG, HTML, JSON, PNG or PDF",
		Long: `Render the skill field to one or more formats.

Formats: svg (default), html, json, png, pdf. PNG and PDF need rsvg-convert
(librsvg) on PATH.

Output files are named <base>.<format>, where the base comes from -o, the
catalog file name, or "skillfield". Use -o - to write a single format to
stdout.

With --layout, a layout saved by 'layout -o' is rendered as-is instead of
computing a new one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, &flags, &rflags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&rflags.formats, "format", "f", "", "output format(s): svg (default), html, json, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&rflags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&rflags.layout, "layout", "", "render a saved layout JSON instead of computing one")
	cmd.Flags().Float64Var(&rflags.width, "width", 0, "frame width in pixels")
	cmd.Flags().Float64Var(&rflags.height, "height", 0, "frame height in pixels")
	cmd.Flags().BoolVar(&rflags.animate, "animate", true, "add the appear and float animation (svg, html)")
	cmd.Flags().BoolVar(&rflags.guide, "guide", false, "draw the margin box and center zone (svg)")
	cmd.Flags().Float64Var(&rflags.scale, "scale", pipeline.DefaultScale, "raster scale factor (png)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, args []string, flags *layoutFlags, rflags *renderFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	opts := c.renderOptions(cmd, flags, rflags)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	if rflags.output == "-" && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "-o - needs exactly one format, got %s", strings.Join(opts.Formats, ","))
	}

	runner := c.newRunner(ctx, flags.noCache)
	defer runner.Close()

	var (
		field     sink.Field
		artifacts map[string][]byte
		hit       bool
		input     string
	)
	prog := newProgress(logger)
	spin := rasterSpinner(ctx, opts.Formats)
	defer spin.Stop()

	if rflags.layout != "" {
		data, err := os.ReadFile(rflags.layout)
		if err != nil {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "read layout %s", rflags.layout)
		}
		if field, err = sink.ParseJSON(data); err != nil {
			return err
		}
		input = rflags.layout
		if artifacts, hit, err = runner.RenderWithCacheInfo(ctx, field, opts); err != nil {
			spin.StopWithError("Render failed")
			return fmt.Errorf("render: %w", err)
		}
	} else {
		cat, path, err := c.loadCatalog(args)
		if err != nil {
			return err
		}
		input = path
		res, err := runner.Execute(ctx, cat, opts)
		if err != nil {
			spin.StopWithError("Render failed")
			return err
		}
		field, artifacts, hit = res.Field, res.Artifacts, res.CacheInfo.RenderHit
	}
	spin.Stop()
	prog.done("Rendered", "formats", strings.Join(opts.Formats, ","), "badges", len(field.Badges))

	if rflags.output == "-" {
		_, err := out.Write(artifacts[opts.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(artifacts, opts.Formats, rflags.output, input)
	if err != nil {
		return err
	}

	printSuccess(out, "Render complete")
	for _, p := range paths {
		printFile(out, p)
	}
	printStats(out, len(field.Badges), field.Fallbacks(), hit)
	return nil
}

// rasterSpinner returns a spinner on stderr that runs while PNG or PDF
// output is converted. It is never started when stderr is not a terminal.
func rasterSpinner(ctx context.Context, formats []string) *Spinner {
	s := newSpinner(ctx, os.Stderr, "Rasterizing with rsvg-convert...")
	if !isTerminal(os.Stderr) {
		return s
	}
	for _, f := range formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			s.Start()
			break
		}
	}
	return s
}

// renderOptions layers the render flags on top of the shared layout options.
func (c *CLI) renderOptions(cmd *cobra.Command, flags *layoutFlags, rflags *renderFlags) pipeline.Options {
	opts := c.layoutOptions(cmd, flags)
	opts.Formats = parseFormats(rflags.formats)
	opts.Guide = rflags.guide
	opts.Scale = rflags.scale

	fl := cmd.Flags()
	if fl.Changed("width") {
		opts.Width = rflags.width
	}
	if fl.Changed("height") {
		opts.Height = rflags.height
	}
	if fl.Changed("animate") {
		opts.Animate = rflags.animate
	}
	return opts
}

// writeArtifacts writes one file per format and returns the paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	var paths []string
	if len(formats) == 1 && output != "" && hasFormatExt(output) {
		paths = append(paths, output)
	} else {
		base := basePath(output, input)
		for _, f := range formats {
			paths = append(paths, base+"."+f)
		}
	}

	for i, p := range paths {
		if err := errors.ValidateOutputPath(p); err != nil {
			return nil, err
		}
		if err := writeFile(p, artifacts[formats[i]]); err != nil {
			return nil, err
		}
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// openOutput creates path and any missing parent directories.
func openOutput(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// basePath derives the output base from -o or the input file. A known
// format extension on either is stripped.
func basePath(output, input string) string {
	if output != "" {
		if hasFormatExt(output) {
			return strings.TrimSuffix(output, filepath.Ext(output))
		}
		return output
	}
	if input == "" {
		return defaultBase
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

func hasFormatExt(path string) bool {
	return pipeline.ValidFormats[strings.TrimPrefix(filepath.Ext(path), ".")]
}
