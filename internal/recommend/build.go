// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"context"
	"time"

	"github.com/pdiddy/paper-recommender/internal/corpus"
	"github.com/pdiddy/paper-recommender/internal/logging"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// Build loads the configured corpus sources and indexes them. Duplicate
// publication ids are logged as a data-quality warning; the index still
// builds, resolving each duplicated id to its last row.
func Build(ctx context.Context, cfg types.CorpusConfig) (*Index, error) {
	log := logging.WithComponent("recommend")
	start := time.Now()

	c, err := corpus.LoadSources(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if dups := c.DuplicateIDs(); len(dups) > 0 {
		log.Warn().
			Int("count", len(dups)).
			Strs("ids", dups).
			Msg("duplicate publication ids in papers source; lookups use the last row")
	}

	idx := NewIndex(c)
	stats := c.Stats()
	log.Info().
		Int("papers", idx.Len()).
		Int("papers_dropped", stats.PapersDropped).
		Int("links", len(c.Links())).
		Int("links_dropped", stats.LinksDropped).
		Int("duplicate_links", stats.DuplicateLinks).
		Int("vocabulary", idx.VocabularySize()).
		Dur("took", time.Since(start)).
		Msg("index built")
	return idx, nil
}

// BuildFrom returns a BuildFunc bound to cfg, for Holder.Reload.
func BuildFrom(cfg types.CorpusConfig) BuildFunc {
	return func(ctx context.Context) (*Index, error) {
		return Build(ctx, cfg)
	}
}
