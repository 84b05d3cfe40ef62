// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-recommender/internal/corpus"
	"github.com/pdiddy/paper-recommender/internal/metadata"
	"github.com/pdiddy/paper-recommender/internal/recommend"
	"github.com/pdiddy/paper-recommender/internal/web"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

var detailCmd = &cobra.Command{
	Use:   "detail <id>",
	Short: "Show a publication with its datasets and similar publications",
	Long: `Detail prints the publication's title and URL, every dataset linked to
it, and its most similar publications. When the id is not in the index and
the metadata store (--db or store.path, default index/metadata.db) knows
it, the stored record is printed instead and the command still exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetail,
}

func runDetail(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	idx, err := buildIndex(ctx)
	if err != nil {
		return err
	}
	k, _ := cmd.Flags().GetInt("k")
	k = kFlag(cmd.Flags().Changed("k"), k, cfg.Index.DetailSimilar)
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	d, err := idx.Detail(args[0], k)
	if errors.Is(err, recommend.ErrPaperNotFound) {
		id := corpus.NormalizeID(args[0])
		rec := storedRecord(ctx, cfg.Store, id)
		if jsonOutput {
			if werr := writeJSON(out, web.ErrorResponse{Error: recommend.ErrPaperNotFound.Error(), ID: id, Metadata: rec}); werr != nil {
				return werr
			}
		} else if rec != nil {
			formatRecord(out, *rec)
		}
		return err
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(out, d)
	}
	formatDetail(out, d)
	return nil
}

// storedRecord looks id up in the metadata store, if one is configured.
// Any store problem is logged and yields nil.
func storedRecord(ctx context.Context, sc types.StoreConfig, id string) *metadata.Record {
	store, ok := openEnrichment(ctx, sc)
	if !ok {
		return nil
	}
	defer store.Close()

	rec, ok, err := store.Lookup(ctx, id)
	if err != nil {
		warnStore(err)
		return nil
	}
	if !ok {
		return nil
	}
	return &rec
}

func formatRecord(w io.Writer, rec metadata.Record) {
	fmt.Fprintf(w, "Not in the index; metadata store has:\n")
	fmt.Fprintf(w, "%s  %s\n", rec.ID, rec.Title)
	if rec.PMID != "" {
		fmt.Fprintf(w, "PMID: %s\n", rec.PMID)
	}
	fmt.Fprintf(w, "URL: %s\n", rec.URL)
	fmt.Fprintf(w, "\nDatasets (%d)\n", len(rec.Datasets))
	for _, ds := range rec.Datasets {
		fmt.Fprintf(w, "  %-14s %s\n", ds.DatasetID, ds.DatasetType)
	}
}

func init() {
	detailCmd.Flags().Int("k", 10, "number of similar publications (default from index.detail_similar)")
	detailCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(detailCmd)
}
