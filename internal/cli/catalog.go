package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/skillfield/skillfield/pkg/errors"
	"github.com/skillfield/skillfield/pkg/skills"
)

const defaultCatalogFile = "skills.toml"

// catalogCommand creates the catalog management command.
func (c *CLI) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect, create and check skills catalogs",
	}

	cmd.AddCommand(c.catalogListCommand())
	cmd.AddCommand(c.catalogInitCommand())
	cmd.AddCommand(c.catalogValidateCommand())

	return cmd
}

func (c *CLI) catalogListCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "list [catalog.toml]",
		Short:             "List the skills of a catalog (default: built-in)",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeCatalog,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := c.loadCatalog(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cat.Title != "" {
				fmt.Fprintln(out, StyleTitle.Render(cat.Title))
			}
			fmt.Fprintln(out, catalogTable(cat))
			printDetail(out, "%d skills · categories: %s", cat.Len(), strings.Join(cat.Categories(), ", "))
			return nil
		},
	}
}

func (c *CLI) catalogInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in catalog to a TOML file to edit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultCatalogFile
			if len(args) > 0 {
				path = args[0]
			}
			if err := errors.ValidateOutputPath(path); err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}

			data, err := skills.MarshalTOML(skills.Default())
			if err != nil {
				return err
			}
			if err := writeFile(path, data); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "Catalog written")
			printFile(out, path)
			printNextStep(out, "Preview", appName+" preview "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) catalogValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "validate <catalog.toml>",
		Short:             "Check a catalog for duplicate names, bad levels and unknown colors",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCatalog,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := skills.LoadFile(args[0])
			if err != nil {
				return err
			}
			if err := cat.Validate(); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "%s: %d skills OK", args[0], cat.Len())
			return nil
		},
	}
}

// catalogTable renders one row per skill with its resolved gradient.
func catalogTable(cat skills.Catalog) string {
	rows := make([][]string, 0, cat.Len())
	for i, s := range cat.Skills {
		level := ""
		if s.Level > 0 {
			level = strconv.Itoa(s.Level)
		}
		from, to := s.Gradient()
		rows = append(rows, []string{strconv.Itoa(i + 1), s.Name, s.Category, level, from + " " + iconArrow + " " + to})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Skill", "Category", "Level", "Gradient").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 1:
				return styleBadge
			case col == 4:
				return StyleDim
			}
			return lipgloss.NewStyle()
		}).
		String()
}
