package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillfield/skillfield/pkg/pipeline"
)

// formatOrder lists output formats in the order they are suggested.
var formatOrder = []string{
	pipeline.FormatSVG,
	pipeline.FormatHTML,
	pipeline.FormatJSON,
	pipeline.FormatPNG,
	pipeline.FormatPDF,
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for skillfield.

  $ source <(skillfield completion bash)
  $ skillfield completion zsh > "${fpath[1]}/_skillfield"
  $ skillfield completion fish > ~/.config/fish/completions/skillfield.fish
  PS> skillfield completion powershell | Out-String | Invoke-Expression

Completions cover catalog files, --strategy and --format values.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeCatalog offers .toml files for the single catalog argument.
func completeCatalog(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
}

func completeStrategies(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		pipeline.StrategyScatter + "\trandom positions around the center",
		pipeline.StrategyOrbit + "\tevenly spaced ring",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes the last entry of a comma-separated format list.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix := ""
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix = toComplete[:i+1]
	}
	out := make([]string, len(formatOrder))
	for i, f := range formatOrder {
		out[i] = prefix + f
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}
