package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simplets-git/simplets/internal/cli"
	"github.com/simplets-git/simplets/pkg/pairart"
)

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Export a character pair as SVG",
	Long: `Draws a character pair on a disc and writes it as SVG. Without
--indices a random pair is chosen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.PairOptions{}
		opts.Theme, _ = cmd.Flags().GetString("theme")
		opts.Indices, _ = cmd.Flags().GetString("indices")
		opts.Output, _ = cmd.Flags().GetString("output")

		p, err := cli.ExportPair(opts, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if opts.Output != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s to %s\n", pairart.String(p), opts.Output)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pairCmd)

	pairCmd.Flags().String("indices", "", "Alphabet indices as left,right (0-69)")
	pairCmd.Flags().StringP("output", "o", "", "Write the SVG to this file instead of stdout")
}
