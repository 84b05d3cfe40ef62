// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/pdiddy/paper-recommender/internal/recommend"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// buildIndex loads the configured corpus and indexes it.
func buildIndex(ctx context.Context) (*recommend.Index, error) {
	return recommend.Build(ctx, cfg.Corpus)
}

// kFlag returns the --k flag when set, or def.
func kFlag(changed bool, k, def int) int {
	if changed {
		return k
	}
	return def
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func formatScored(w io.Writer, results []types.ScoredPaper, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-4s  %-6s  %-14s  %s\n", "Rank", "Score", "ID", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %.4f  %-14s  %s\n", i+1, r.Score, r.ID, truncate(r.Title, 60))
	}
	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

func formatDetail(w io.Writer, d types.PublicationDetail) {
	fmt.Fprintf(w, "%s  %s\n", d.ID, d.Title)
	fmt.Fprintf(w, "URL: %s\n", d.URL)

	fmt.Fprintf(w, "\nDatasets (%d)\n", len(d.Datasets))
	for _, ds := range d.Datasets {
		line := fmt.Sprintf("  %-14s %-12s", ds.DatasetID, ds.DatasetType)
		if ds.DatasetURL != "" {
			line += " " + ds.DatasetURL
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}

	fmt.Fprintf(w, "\nSimilar publications (%d)\n", len(d.Similar))
	for i, s := range d.Similar {
		fmt.Fprintf(w, "  %2d. %.4f  %-14s  %s\n", i+1, s.Score, s.ID, truncate(s.Title, 60))
	}
}
