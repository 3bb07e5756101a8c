package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simplets-git/simplets/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "simplets",
	Short: "SIMPLETS is a retro terminal",
	Long: `SIMPLETS opens a retro terminal with typed commands, modal menus,
character pair artwork and animated side bands. Piped input runs it in
line mode.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to the YAML configuration (default ./simplets.yaml when present)")
	flags.String("lang", "", "Interface language (en, de)")
	flags.String("theme", "", "Colour theme (dark, light)")
	flags.String("user", "", "Name shown in the prompt")
	flags.Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	flags.Bool("debug", false, "Enable debug logging")
	flags.String("log-file", "", "Write debug logs to this file instead of stderr")
}

// runOptions reads the shared flags of cmd.
func runOptions(cmd *cobra.Command) cli.RunOptions {
	flags := cmd.Flags()
	opts := cli.RunOptions{}
	opts.ConfigPath, _ = flags.GetString("config")
	opts.Language, _ = flags.GetString("lang")
	opts.Theme, _ = flags.GetString("theme")
	opts.Username, _ = flags.GetString("user")
	opts.JSON, _ = flags.GetBool("json")
	opts.Debug, _ = flags.GetBool("debug")
	opts.LogFile, _ = flags.GetString("log-file")
	return opts
}
