// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Rank publications against a free-text query",
	Long: `Search vectorizes the query with the corpus vocabulary and ranks every
publication title by cosine similarity. Words outside the vocabulary are
ignored; a query with no known words returns zero scores in corpus order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		idx, err := buildIndex(cmd.Context())
		if err != nil {
			return err
		}
		k, _ := cmd.Flags().GetInt("k")
		k = kFlag(cmd.Flags().Changed("k"), k, cfg.Index.MaxResults)
		jsonOutput, _ := cmd.Flags().GetBool("json")

		results := idx.Search(strings.Join(args, " "), k)
		return formatScored(cmd.OutOrStdout(), results, jsonOutput)
	},
}

func init() {
	searchCmd.Flags().Int("k", 10, "maximum number of results (default from index.max_results)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
