// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes precomputed publication details (datasets plus
// similar publications) for every indexed publication.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-recommender/internal/recommend"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// Format selects the export encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts yaml, yml, or json (case-insensitive). Empty means yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use yaml or json", s)
	}
}

// Document is the top-level export payload.
type Document struct {
	Papers     int                       `json:"papers" yaml:"papers"`
	Similar    int                       `json:"similar_per_paper" yaml:"similar_per_paper"`
	Duplicates []string                  `json:"duplicate_ids,omitempty" yaml:"duplicate_ids,omitempty"`
	Details    []types.PublicationDetail `json:"details" yaml:"details"`
}

// Build assembles the detail of every publication in table order. A
// duplicated id appears once, resolved to its last row.
func Build(idx *recommend.Index, kSimilar int) (Document, error) {
	c := idx.Corpus()
	doc := Document{
		Similar:    kSimilar,
		Duplicates: c.DuplicateIDs(),
	}
	seen := make(map[string]struct{}, idx.Len())
	for _, p := range c.Publications() {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		d, err := idx.Detail(p.ID, kSimilar)
		if err != nil {
			return Document{}, fmt.Errorf("building detail for %s: %w", p.ID, err)
		}
		doc.Details = append(doc.Details, d)
	}
	doc.Papers = len(doc.Details)
	return doc, nil
}

// Write encodes doc to w in the given format.
func Write(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// WriteFile builds the export and writes it to path, creating parent
// directories. The file is written to a temp name and renamed into place.
func WriteFile(path string, idx *recommend.Index, kSimilar int, format Format) (Document, error) {
	doc, err := Build(idx, kSimilar)
	if err != nil {
		return Document{}, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Document{}, fmt.Errorf("creating export directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return Document{}, fmt.Errorf("creating temp file: %w", err)
	}
	if err := Write(f, doc, format); err != nil {
		f.Close()
		os.Remove(tmp)
		return Document{}, err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return Document{}, fmt.Errorf("closing file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return Document{}, fmt.Errorf("renaming temp file: %w", err)
	}
	return doc, nil
}
