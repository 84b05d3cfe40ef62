package types

import "time"

// HTTPConfig holds shared HTTP settings used when corpus sources are URLs.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-recommender/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// RequestsPerSecond throttles remote fetches. Zero disables throttling.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// CorpusConfig locates the two tabular sources read at startup.
type CorpusConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// PapersSource is a path or http(s) URL of the publications CSV
	// (columns: pmcid, pmid, title, paper_url).
	PapersSource string `json:"papers_source" yaml:"papers_source" mapstructure:"papers_source"`

	// LinksSource is a path or http(s) URL of the publication-to-dataset CSV
	// (columns: paper_pmcid, dataset_type, dataset_id, dataset_url).
	LinksSource string `json:"links_source" yaml:"links_source" mapstructure:"links_source"`

	// SourceToken is an optional bearer token sent with remote source
	// requests. Usually filled from the corpus-source-token secret.
	SourceToken string `json:"-" yaml:"-" mapstructure:"source_token"`
}

// IndexConfig holds query defaults for the similarity index.
type IndexConfig struct {
	// MaxResults is the default k for search and similar (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// DetailSimilar is the default number of similar papers in a detail
	// response (default 10).
	DetailSimilar int `json:"detail_similar" yaml:"detail_similar" mapstructure:"detail_similar"`
}

// ServeConfig holds settings for the HTTP server.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ReloadInterval rebuilds the index from the corpus sources on this
	// period. Zero disables periodic reload; SIGHUP still triggers one.
	ReloadInterval time.Duration `json:"reload_interval" yaml:"reload_interval" mapstructure:"reload_interval"`

	// RateLimit is the number of API requests allowed per client IP per
	// minute. Zero disables rate limiting.
	RateLimit int `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// StoreConfig locates the sqlite metadata store.
type StoreConfig struct {
	// Path is the sqlite database file (default index/metadata.db). Empty
	// disables metadata enrichment.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is json or console (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups all settings read from the config file and environment.
type Config struct {
	Corpus CorpusConfig `json:"corpus" yaml:"corpus" mapstructure:"corpus"`
	Index  IndexConfig  `json:"index" yaml:"index" mapstructure:"index"`
	Serve  ServeConfig  `json:"serve" yaml:"serve" mapstructure:"serve"`
	Store  StoreConfig  `json:"store" yaml:"store" mapstructure:"store"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Corpus: CorpusConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "paper-recommender/0.1",
			},
			PapersSource: "datasets/papers.csv",
			LinksSource:  "datasets/paper_to_datasets.csv",
		},
		Index: IndexConfig{
			MaxResults:    10,
			DetailSimilar: 10,
		},
		Serve: ServeConfig{
			Addr:            ":8080",
			RateLimit:       600,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Path: "index/metadata.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
