// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-recommender/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every publication's detail to YAML or JSON",
	Long: `Export builds the index and writes, for each publication, its datasets
and most similar publications. The output feeds static recommendation
pages. A duplicated id is written once, resolved to its last row.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = "out/details." + string(format)
		}
		k, _ := cmd.Flags().GetInt("k")
		k = kFlag(cmd.Flags().Changed("k"), k, cfg.Index.DetailSimilar)

		idx, err := buildIndex(cmd.Context())
		if err != nil {
			return err
		}
		doc, err := export.WriteFile(out, idx, k, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d publications to %s\n", doc.Papers, out)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "yaml", "output format: yaml or json")
	exportCmd.Flags().String("out", "", "output file (default out/details.<format>)")
	exportCmd.Flags().Int("k", 10, "similar publications per entry (default from index.detail_similar)")

	rootCmd.AddCommand(exportCmd)
}
