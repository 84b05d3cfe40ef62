// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recommend ranks publications by title similarity.
// Implements: similarity index (free-text search, similar-by-id, detail);
//
//	docs/ARCHITECTURE § Similarity Index.
//
// An Index is built once from a corpus and never modified afterwards, so
// its query methods may be called from any number of goroutines.
package recommend

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/paper-recommender/internal/corpus"
	"github.com/pdiddy/paper-recommender/internal/tfidf"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// ErrPaperNotFound is returned by Detail for an id that is not in the
// publication table.
var ErrPaperNotFound = errors.New("paper not found")

// excluded is the score given to the queried paper in Similar. It sorts
// below every real cosine score.
var excluded = math.Inf(-1)

// Index holds the fitted vectorizer and one vector per publication.
type Index struct {
	corpus     *corpus.Corpus
	papers     []types.Publication
	vectorizer *tfidf.Vectorizer
	matrix     []tfidf.Vector
}

// NewIndex fits the title vocabulary of c and vectorizes every
// publication. Options are passed to the vectorizer.
func NewIndex(c *corpus.Corpus, opts ...tfidf.Option) *Index {
	papers := c.Publications()
	titles := make([]string, len(papers))
	for i, p := range papers {
		titles[i] = p.Title
	}
	v, matrix := tfidf.FitTransform(titles, opts...)
	return &Index{
		corpus:     c,
		papers:     papers,
		vectorizer: v,
		matrix:     matrix,
	}
}

// Corpus returns the corpus the index was built from.
func (idx *Index) Corpus() *corpus.Corpus { return idx.corpus }

// Len returns the number of indexed publications.
func (idx *Index) Len() int { return len(idx.papers) }

// VocabularySize returns the number of distinct terms in the index.
func (idx *Index) VocabularySize() int { return idx.vectorizer.VocabularySize() }

// Search ranks every publication against a free-text query and returns at
// most k results, highest score first. Ties keep corpus order. An empty or
// whitespace-only query, or k <= 0, yields an empty result.
func (idx *Index) Search(query string, k int) []types.ScoredPaper {
	if strings.TrimSpace(query) == "" || k <= 0 {
		return []types.ScoredPaper{}
	}
	q := idx.vectorizer.Transform(query)
	scores := make([]float64, len(idx.matrix))
	for i, doc := range idx.matrix {
		scores[i] = q.Dot(doc)
	}
	return idx.top(scores, k)
}

// Similar returns at most k publications most similar to the one with the
// given id, never including that publication itself. Every row carrying
// the id is excluded, so a duplicated id never recommends itself. An
// unknown id yields an empty result.
func (idx *Index) Similar(id string, k int) []types.ScoredPaper {
	row, ok := idx.corpus.Row(id)
	if !ok || k <= 0 {
		return []types.ScoredPaper{}
	}
	self := idx.papers[row].ID
	src := idx.matrix[row]
	scores := make([]float64, len(idx.matrix))
	for i, doc := range idx.matrix {
		if idx.papers[i].ID == self {
			scores[i] = excluded
			continue
		}
		scores[i] = src.Dot(doc)
	}
	return idx.top(scores, k)
}

// Detail assembles a publication with its datasets and its kSimilar most
// similar publications. An unknown id returns an error wrapping
// ErrPaperNotFound.
func (idx *Index) Detail(id string, kSimilar int) (types.PublicationDetail, error) {
	norm := corpus.NormalizeID(id)
	p, ok := idx.corpus.Lookup(norm)
	if !ok {
		return types.PublicationDetail{}, fmt.Errorf("%w: %s", ErrPaperNotFound, norm)
	}
	return types.PublicationDetail{
		ID:       p.ID,
		Title:    p.Title,
		URL:      p.URL,
		Datasets: types.Refs(idx.corpus.Datasets(norm)),
		Similar:  idx.Similar(norm, kSimilar),
	}, nil
}

// top orders rows by descending score, breaking ties by row, and returns
// the first k. Rows scored as excluded are dropped. Reported scores are
// capped at 1; the dot product of two unit vectors can overshoot it by
// rounding.
func (idx *Index) top(scores []float64, k int) []types.ScoredPaper {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]types.ScoredPaper, 0, min(k, len(order)))
	for _, i := range order {
		if len(out) == k {
			break
		}
		if scores[i] == excluded {
			continue
		}
		p := idx.papers[i]
		out = append(out, types.ScoredPaper{
			ID:    p.ID,
			Title: p.Title,
			URL:   p.URL,
			Score: min(scores[i], 1),
		})
	}
	return out
}
