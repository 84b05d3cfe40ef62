// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paper-recommender/pkg/types"
)

func testViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetEnvPrefix("PAPER_RECOMMENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, types.DefaultConfig())
	return v
}

func TestDecodeConfig_Defaults(t *testing.T) {
	c, err := decodeConfig(testViper(t))
	require.NoError(t, err)
	assert.Equal(t, types.DefaultConfig(), c)
}

func TestDecodeConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paper-recommender.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
corpus:
  papers_source: https://example.org/papers.csv
  timeout: 5s
index:
  max_results: 25
serve:
  reload_interval: 15m
store:
  path: index/metadata.db
`), 0o644))

	t.Setenv("PAPER_RECOMMENDER_INDEX_DETAIL_SIMILAR", "3")
	t.Setenv("PAPER_RECOMMENDER_LOG_LEVEL", "debug")

	v := testViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/papers.csv", c.Corpus.PapersSource)
	assert.Equal(t, "datasets/paper_to_datasets.csv", c.Corpus.LinksSource)
	assert.Equal(t, 5*time.Second, c.Corpus.Timeout)
	assert.Equal(t, 25, c.Index.MaxResults)
	assert.Equal(t, 3, c.Index.DetailSimilar)
	assert.Equal(t, 15*time.Minute, c.Serve.ReloadInterval)
	assert.Equal(t, "index/metadata.db", c.Store.Path)
	assert.Equal(t, "debug", c.Log.Level)
}

func TestFormatScored(t *testing.T) {
	results := []types.ScoredPaper{
		{ID: "PMC1", Title: "Deep learning for genomics", Score: 0.9123},
		{ID: "PMC2", Title: strings.Repeat("long title ", 10), Score: 0.5},
	}

	var buf bytes.Buffer
	require.NoError(t, formatScored(&buf, results, false))
	out := buf.String()
	assert.Contains(t, out, "0.9123  PMC1")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "2 results")

	buf.Reset()
	require.NoError(t, formatScored(&buf, nil, false))
	assert.Equal(t, "No results found.\n", buf.String())

	buf.Reset()
	require.NoError(t, formatScored(&buf, results, true))
	assert.Contains(t, buf.String(), `"id": "PMC1"`)
}

func TestFormatDetail(t *testing.T) {
	var buf bytes.Buffer
	formatDetail(&buf, types.PublicationDetail{
		ID:       "PMC1",
		Title:    "Deep learning for genomics",
		URL:      "https://example.org/1",
		Datasets: []types.DatasetRef{{DatasetID: "GSE1", DatasetType: "GEO"}},
		Similar:  []types.ScoredPaper{{ID: "PMC2", Title: "Statistical genomics", Score: 0.25}},
	})
	out := buf.String()
	assert.Contains(t, out, "PMC1  Deep learning for genomics")
	assert.Contains(t, out, "Datasets (1)")
	assert.Contains(t, out, "GSE1")
	assert.Contains(t, out, " 1. 0.2500  PMC2")
}

func TestKFlag(t *testing.T) {
	assert.Equal(t, 7, kFlag(false, 3, 7))
	assert.Equal(t, 3, kFlag(true, 3, 7))
	assert.Equal(t, 0, kFlag(true, 0, 7))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ééé...", truncate("éééééééé", 6))
}
