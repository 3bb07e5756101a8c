package main

import (
	"github.com/spf13/cobra"

	"github.com/simplets-git/simplets/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the terminal",
	Long: `Opens the full-screen terminal when attached to a TTY. With --plain,
--json or piped input it runs in line mode instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := runOptions(cmd)
		opts.NoBoot, _ = cmd.Flags().GetBool("no-boot")
		opts.Plain, _ = cmd.Flags().GetBool("plain")
		return cli.Execute(cmd.Context(), opts)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	for _, c := range []*cobra.Command{runCmd, rootCmd} {
		c.Flags().Bool("no-boot", false, "Skip the loading screen")
		c.Flags().Bool("plain", false, "Use line mode even in a terminal")
	}

	// 'run' is the default when no command is given.
	rootCmd.Args = cobra.NoArgs
	rootCmd.RunE = runCmd.RunE
}
