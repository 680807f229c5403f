package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skillfield/skillfield/pkg/errors"
	"github.com/skillfield/skillfield/pkg/render/sink"
)

// layoutCommand creates the layout command for computing badge positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  layoutFlags
		output string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout [catalog.toml]",
		Short: "Compute badge positions and print them",
		Long: `Compute badge positions for a skills catalog.

Without a catalog the built-in one is used. The result is printed as a table,
or as JSON with --json. With -o the JSON is written to a file that 'render'
and 'serve' can reuse.

Every run is a fresh random layout. Pass --seed to reproduce a layout; seeded
runs are cached.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, args, &flags, output, asJSON)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout as JSON to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func (c *CLI) runLayout(cmd *cobra.Command, args []string, flags *layoutFlags, output string, asJSON bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := cmd.OutOrStdout()

	cat, path, err := c.loadCatalog(args)
	if err != nil {
		return err
	}
	if path != "" {
		logger.Debug("loaded catalog", "path", path, "skills", cat.Len())
	}

	runner := c.newRunner(ctx, flags.noCache)
	defer runner.Close()

	opts := c.layoutOptions(cmd, flags)
	prog := newProgress(logger)
	field, hit, err := runner.LayoutWithCacheInfo(ctx, cat, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done("Layout computed", "strategy", field.Strategy, "badges", len(field.Badges))

	if output != "" {
		if err := errors.ValidateOutputPath(output); err != nil {
			return err
		}
		data, err := sink.RenderJSON(field)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printSuccess(out, "Layout complete")
		printFile(out, output)
		printStats(out, len(field.Badges), field.Fallbacks(), hit)
		fmt.Fprintln(out)
		printNextStep(out, "Render", appName+" render --layout "+output)
		return nil
	}

	if asJSON {
		data, err := sink.RenderJSON(field)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	if field.Title != "" {
		fmt.Fprintln(out, StyleTitle.Render(field.Title))
	}
	fmt.Fprintln(out, fieldTable(field))
	printStats(out, len(field.Badges), field.Fallbacks(), hit)
	if field.Fallbacks() > 0 {
		printWarning(out, "%d badges could not be placed and sit on corner anchors; try a smaller --min-distance", field.Fallbacks())
	}
	return nil
}
