package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/skillfield/skillfield/pkg/errors"
)

// previewCommand creates the interactive terminal preview.
func (c *CLI) previewCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "preview [catalog.toml]",
		Short: "Preview the skill field in the terminal",
		Long: `Preview the skill field in the terminal.

Keys: r reshuffles (a fresh layout, as on every page mount), s switches
between scatter and orbit, g toggles the center zone, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
				return errors.New(errors.ErrCodeUnsupported, "preview needs an interactive terminal; use 'layout' instead")
			}
			ctx := cmd.Context()

			cat, _, err := c.loadCatalog(args)
			if err != nil {
				return err
			}

			runner := c.newRunner(ctx, flags.noCache)
			defer runner.Close()

			opts := c.layoutOptions(cmd, &flags)
			// log lines would tear the alternate screen
			opts.Logger = log.New(io.Discard)

			final, err := tea.NewProgram(NewFieldModel(ctx, runner, cat, opts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			if m, ok := final.(FieldModel); ok && m.Err != nil {
				return m.Err
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
