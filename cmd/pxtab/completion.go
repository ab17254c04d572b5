package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate a completion script for the named shell.

Bash:
  $ source <(pxtab completion bash)
  # or install it system-wide:
  $ pxtab completion bash > /etc/bash_completion.d/pxtab

Zsh:
  $ pxtab completion zsh > "${fpath[1]}/_pxtab"
  $ compinit

Fish:
  $ pxtab completion fish | source
  # or install it:
  $ pxtab completion fish > ~/.config/fish/completions/pxtab.fish

PowerShell:
  PS> pxtab completion powershell | Out-String | Invoke-Expression
  # add the same line to your profile to persist it
`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
