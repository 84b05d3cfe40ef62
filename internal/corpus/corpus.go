// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus loads and cleans the publications table and the
// publication-to-dataset link table.
// Implements: corpus loading (drop incomplete rows, normalize ids,
// deduplicate links, group links by publication);
//
//	docs/ARCHITECTURE § Corpus Loader.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

// Errors returned while loading a corpus. Both are fatal: a corpus that
// fails to load must never be served.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptySource   = errors.New("source has no header row")
)

// Stats counts what the loader kept and discarded.
type Stats struct {
	PaperRows          int `json:"paper_rows" yaml:"paper_rows"`
	PapersDropped      int `json:"papers_dropped" yaml:"papers_dropped"`
	LinkRows           int `json:"link_rows" yaml:"link_rows"`
	LinksDropped       int `json:"links_dropped" yaml:"links_dropped"`
	DuplicateLinks     int `json:"duplicate_links" yaml:"duplicate_links"`
	PapersWithDatasets int `json:"papers_with_datasets" yaml:"papers_with_datasets"`
}

// Corpus is the cleaned, immutable result of a load.
type Corpus struct {
	papers       []types.Publication
	links        []types.DatasetLink
	byPaper      map[string][]types.DatasetLink
	rowByID      map[string]int
	duplicateIDs []string
	stats        Stats
}

// NormalizeID trims whitespace and uppercases an identifier.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Load reads the publications CSV and the links CSV and returns the
// cleaned corpus. Any read or header error aborts the load.
func Load(papers, links io.Reader) (*Corpus, error) {
	c := &Corpus{}
	if err := c.readPapers(papers); err != nil {
		return nil, fmt.Errorf("reading papers: %w", err)
	}
	if err := c.readLinks(links); err != nil {
		return nil, fmt.Errorf("reading links: %w", err)
	}
	return c, nil
}

// New builds a corpus from already-parsed records, applying the same
// cleaning rules as Load.
func New(papers []types.Publication, links []types.DatasetLink) *Corpus {
	c := &Corpus{}
	for _, p := range papers {
		c.stats.PaperRows++
		c.addPaper(p.ID, p.PMID, strings.TrimSpace(p.Title), strings.TrimSpace(p.URL))
	}
	c.byPaper = make(map[string][]types.DatasetLink)
	seen := make(map[linkKey]struct{})
	for _, l := range links {
		c.stats.LinkRows++
		c.addLink(l.PaperID, l.DatasetType, l.DatasetID, strings.TrimSpace(l.DatasetURL), seen)
	}
	c.stats.PapersWithDatasets = len(c.byPaper)
	return c
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

func readHeader(cr *csv.Reader, cols []column) ([]int, error) {
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptySource
	}
	if err != nil {
		return nil, err
	}
	return resolveColumns(header, cols)
}

func (c *Corpus) readPapers(r io.Reader) error {
	cr := newReader(r)
	idx, err := readHeader(cr, paperColumns)
	if err != nil {
		return err
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		c.stats.PaperRows++
		c.addPaper(cell(rec, idx[0]), cell(rec, idx[1]), cell(rec, idx[2]), cell(rec, idx[3]))
	}
	return nil
}

// addPaper applies the paper drop and normalization rules and reports
// whether the row was kept.
func (c *Corpus) addPaper(id, pmid, title, url string) bool {
	id = NormalizeID(id)
	if id == "" || title == "" || url == "" {
		c.stats.PapersDropped++
		return false
	}
	if c.rowByID == nil {
		c.rowByID = make(map[string]int)
	}
	if _, dup := c.rowByID[id]; dup {
		c.duplicateIDs = append(c.duplicateIDs, id)
	}
	c.rowByID[id] = len(c.papers)
	c.papers = append(c.papers, types.Publication{
		ID:    id,
		PMID:  strings.TrimSpace(pmid),
		Title: title,
		URL:   url,
	})
	return true
}

type linkKey struct {
	paperID, datasetID, datasetURL string
}

func (c *Corpus) readLinks(r io.Reader) error {
	cr := newReader(r)
	idx, err := readHeader(cr, linkColumns)
	if err != nil {
		return err
	}

	c.byPaper = make(map[string][]types.DatasetLink)
	seen := make(map[linkKey]struct{})
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		c.stats.LinkRows++
		c.addLink(cell(rec, idx[0]), cell(rec, idx[1]), cell(rec, idx[2]), cell(rec, idx[3]), seen)
	}
	c.stats.PapersWithDatasets = len(c.byPaper)
	return nil
}

func (c *Corpus) addLink(paperID, datasetType, datasetID, datasetURL string, seen map[linkKey]struct{}) {
	paperID, datasetID = NormalizeID(paperID), NormalizeID(datasetID)
	if paperID == "" || datasetID == "" {
		c.stats.LinksDropped++
		return
	}
	key := linkKey{paperID, datasetID, datasetURL}
	if _, dup := seen[key]; dup {
		c.stats.DuplicateLinks++
		return
	}
	seen[key] = struct{}{}

	link := types.DatasetLink{
		PaperID:     paperID,
		DatasetID:   datasetID,
		DatasetType: NormalizeID(datasetType),
		DatasetURL:  datasetURL,
	}
	c.links = append(c.links, link)
	c.byPaper[paperID] = append(c.byPaper[paperID], link)
}

// Publications returns the cleaned publication table in source order.
// The slice must not be modified.
func (c *Corpus) Publications() []types.Publication { return c.papers }

// Links returns every surviving dataset link in source order.
func (c *Corpus) Links() []types.DatasetLink { return c.links }

// Datasets returns the links of the given publication in source order.
// An unknown id yields an empty, non-nil slice.
func (c *Corpus) Datasets(paperID string) []types.DatasetLink {
	links := c.byPaper[NormalizeID(paperID)]
	out := make([]types.DatasetLink, len(links))
	copy(out, links)
	return out
}

// PaperToDatasets returns a copy of the publication id to links mapping.
func (c *Corpus) PaperToDatasets() map[string][]types.DatasetLink {
	out := make(map[string][]types.DatasetLink, len(c.byPaper))
	for id := range c.byPaper {
		out[id] = c.Datasets(id)
	}
	return out
}

// DuplicateIDs lists ids that appear on more than one retained row, in the
// order their repeats were seen. A non-empty result is a data-quality
// problem in the source; lookups by id resolve to the last such row.
func (c *Corpus) DuplicateIDs() []string { return c.duplicateIDs }

// Stats returns load counters.
func (c *Corpus) Stats() Stats { return c.stats }

// Row returns the table position of id, resolving duplicates to the last
// retained row.
func (c *Corpus) Row(id string) (int, bool) {
	i, ok := c.rowByID[NormalizeID(id)]
	return i, ok
}

// Lookup returns the publication with the given id.
func (c *Corpus) Lookup(id string) (types.Publication, bool) {
	i, ok := c.Row(id)
	if !ok {
		return types.Publication{}, false
	}
	return c.papers[i], true
}

// Len returns the number of retained publications.
func (c *Corpus) Len() int { return len(c.papers) }
