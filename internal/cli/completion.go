package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/plantforge/plantforge/pkg/core/plant"
)

// completionCommand generates shell completion scripts. Besides commands
// and flags, the scripts complete layout styles and output formats.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for plantforge and write it to stdout.

  bash:        source <(plantforge completion bash)
  zsh:         plantforge completion zsh > "${fpath[1]}/_plantforge"
  fish:        plantforge completion fish | source
  powershell:  plantforge completion powershell | Out-String | Invoke-Expression

Add the line for your shell to its startup file to load completions in
every session.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeStyles offers the layout styles for --style.
func completeStyles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(plant.Styles))
	for i, s := range plant.Styles {
		names[i] = string(s)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeList offers choices for a comma-separated flag such as
// render --format, completing only the element after the last comma.
func completeList(choices ...string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var done string
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			done = toComplete[:i]
		}
		taken := map[string]bool{}
		for _, s := range strings.Split(done, ",") {
			taken[s] = true
		}
		var out []string
		for _, c := range choices {
			if taken[c] {
				continue
			}
			if done != "" {
				c = done + "," + c
			}
			out = append(out, c)
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}
