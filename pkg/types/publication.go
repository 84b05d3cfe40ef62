// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for paper-recommender.
// Implements: corpus loading (Publication, DatasetLink, DatasetRef);
//
//	similarity search (ScoredPaper, PublicationDetail);
//	configuration (CorpusConfig, IndexConfig, ServeConfig, StoreConfig, LogConfig).
//
// See docs/ARCHITECTURE.md § Data Model.
package types

// Publication is one cleaned row of the publications table.
type Publication struct {
	// ID is the normalized (trimmed, uppercase) publication identifier,
	// e.g. a PMC id such as "PMC1234567".
	ID string `json:"id" yaml:"id"`

	// PMID is the PubMed identifier as read from the source, possibly empty.
	PMID string `json:"pmid,omitempty" yaml:"pmid,omitempty"`

	// Title is the publication title. It is the only field that is vectorized.
	Title string `json:"title" yaml:"title"`

	// URL links to the publication landing page.
	URL string `json:"url" yaml:"url"`
}

// DatasetLink ties a publication to a dataset it references.
type DatasetLink struct {
	// PaperID is the normalized id of the referencing publication. It may
	// name a publication that is absent from the publications table.
	PaperID string `json:"paper_id" yaml:"paper_id"`

	// DatasetID is the normalized dataset accession (e.g. "GSE12345").
	DatasetID string `json:"dataset_id" yaml:"dataset_id"`

	// DatasetType is the normalized repository type (e.g. "GEO"), or empty.
	DatasetType string `json:"dataset_type" yaml:"dataset_type"`

	// DatasetURL links to the dataset, or is empty.
	DatasetURL string `json:"dataset_url,omitempty" yaml:"dataset_url,omitempty"`
}

// DatasetRef is a dataset as listed under one publication. The owning
// publication is implied by the enclosing record.
type DatasetRef struct {
	DatasetType string `json:"dataset_type" yaml:"dataset_type"`
	DatasetID   string `json:"dataset_id" yaml:"dataset_id"`
	DatasetURL  string `json:"dataset_url,omitempty" yaml:"dataset_url,omitempty"`
}

// Ref drops the paper id from l.
func (l DatasetLink) Ref() DatasetRef {
	return DatasetRef{DatasetType: l.DatasetType, DatasetID: l.DatasetID, DatasetURL: l.DatasetURL}
}

// Refs converts links to refs. The result is never nil.
func Refs(links []DatasetLink) []DatasetRef {
	out := make([]DatasetRef, len(links))
	for i, l := range links {
		out[i] = l.Ref()
	}
	return out
}

// ScoredPaper is a publication ranked by cosine similarity.
type ScoredPaper struct {
	ID    string  `json:"id" yaml:"id"`
	Title string  `json:"title" yaml:"title"`
	URL   string  `json:"url" yaml:"url"`
	Score float64 `json:"score" yaml:"score"`
}

// PublicationDetail combines a publication with its linked datasets and
// its most similar publications.
type PublicationDetail struct {
	ID       string        `json:"id" yaml:"id"`
	Title    string        `json:"title" yaml:"title"`
	URL      string        `json:"url" yaml:"url"`
	Datasets []DatasetRef  `json:"datasets" yaml:"datasets"`
	Similar  []ScoredPaper `json:"similar" yaml:"similar"`
}
