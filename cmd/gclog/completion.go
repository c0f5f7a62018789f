package main

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for gclog.

To load completions:

Bash:
  $ source <(gclog completion bash)

  # To load completions for each session, execute once:
  $ gclog completion bash > /etc/bash_completion.d/gclog

Zsh:
  $ gclog completion zsh > "${fpath[1]}/_gclog"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ gclog completion fish > ~/.config/fish/completions/gclog.fish

PowerShell:
  PS> gclog completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		out := cmd.OutOrStdout()

		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func completeEventTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return ValidEventTypeNames(), cobra.ShellCompDirectiveNoFileComp
}
