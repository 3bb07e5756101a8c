package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simplets-git/simplets"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of simplets",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "simplets version %s\n", simplets.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
