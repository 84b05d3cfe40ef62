// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/paper-recommender/internal/httputil"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// Open returns a reader for a corpus source: an http(s) URL fetched with
// fetcher, or a local file path.
func Open(ctx context.Context, location string, fetcher *httputil.Fetcher) (io.ReadCloser, error) {
	if location == "" {
		return nil, fmt.Errorf("empty source location")
	}
	if isRemote(location) {
		if fetcher == nil {
			return nil, fmt.Errorf("no fetcher configured for remote source %s", location)
		}
		return fetcher.Get(ctx, location)
	}
	return os.Open(location)
}

func isRemote(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// LoadSources opens both configured sources and loads them. The error
// names the source that failed.
func LoadSources(ctx context.Context, cfg types.CorpusConfig) (*Corpus, error) {
	fetcher := httputil.NewFetcher(cfg)

	papers, err := Open(ctx, cfg.PapersSource, fetcher)
	if err != nil {
		return nil, fmt.Errorf("opening papers source %s: %w", cfg.PapersSource, err)
	}
	defer papers.Close()

	links, err := Open(ctx, cfg.LinksSource, fetcher)
	if err != nil {
		return nil, fmt.Errorf("opening links source %s: %w", cfg.LinksSource, err)
	}
	defer links.Close()

	c, err := Load(papers, links)
	if err != nil {
		return nil, fmt.Errorf("loading corpus from %s and %s: %w", cfg.PapersSource, cfg.LinksSource, err)
	}
	return c, nil
}
