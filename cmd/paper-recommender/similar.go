// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var similarCmd = &cobra.Command{
	Use:   "similar <id>",
	Short: "List publications with the most similar titles",
	Long: `Similar ranks every other publication by title similarity to the one
with the given id. The publication itself is never listed. An unknown id
prints no results.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := buildIndex(cmd.Context())
		if err != nil {
			return err
		}
		k, _ := cmd.Flags().GetInt("k")
		k = kFlag(cmd.Flags().Changed("k"), k, cfg.Index.MaxResults)
		jsonOutput, _ := cmd.Flags().GetBool("json")

		return formatScored(cmd.OutOrStdout(), idx.Similar(args[0], k), jsonOutput)
	},
}

func init() {
	similarCmd.Flags().Int("k", 10, "maximum number of results (default from index.max_results)")
	similarCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(similarCmd)
}
