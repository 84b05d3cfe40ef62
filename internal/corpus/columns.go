// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"fmt"
	"strings"
)

// column names a required field and the header spellings accepted for it.
type column struct {
	name    string
	aliases []string
}

var (
	paperColumns = []column{
		{name: "id", aliases: []string{"pmcid", "id", "paper_id", "paperid"}},
		{name: "pmid", aliases: []string{"pmid"}},
		{name: "title", aliases: []string{"title"}},
		{name: "url", aliases: []string{"paper_url", "url", "paperurl"}},
	}
	linkColumns = []column{
		{name: "paperId", aliases: []string{"paper_pmcid", "paperid", "paper_id"}},
		{name: "datasetType", aliases: []string{"dataset_type", "datasettype"}},
		{name: "datasetId", aliases: []string{"dataset_id", "datasetid"}},
		{name: "datasetUrl", aliases: []string{"dataset_url", "dataseturl"}},
	}
)

// resolveColumns maps each required column to its position in header.
// Header names are compared case-insensitively after trimming.
func resolveColumns(header []string, cols []column) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	idx := make([]int, len(cols))
	var missing []string
	for i, c := range cols {
		idx[i] = -1
		for _, alias := range c.aliases {
			if p, ok := pos[alias]; ok {
				idx[i] = p
				break
			}
		}
		if idx[i] < 0 {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

// cell returns the trimmed value at position i, or "" for short rows.
func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
