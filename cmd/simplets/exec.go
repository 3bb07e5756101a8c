package main

import (
	"github.com/spf13/cobra"

	"github.com/simplets-git/simplets/internal/cli"
)

var execCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Run one command and print its output",
	Example: `  simplets exec about
  simplets exec --json set lang de`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunExec(cmd.Context(), runOptions(cmd), args, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
