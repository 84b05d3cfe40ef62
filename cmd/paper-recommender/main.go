// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-recommender CLI.
// Implements: corpus loading, the similarity index queries (search,
// similar, detail), the HTTP server, the metadata store, and export
// (CLI surface).
// See docs/ARCHITECTURE § Interfaces, § Project Structure.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-recommender/internal/logging"
	"github.com/pdiddy/paper-recommender/internal/secrets"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is the resolved configuration, filled in PersistentPreRunE.
var cfg types.Config

// rootCmd is the base command for the paper-recommender CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-recommender",
	Short: "Content-based recommendations for publications linked to datasets",
	Long: `paper-recommender indexes a corpus of publications by title with TF-IDF
and answers free-text search, "similar publications" and publication detail
queries. The corpus is two CSV sources: publications, and publication to
dataset links. Sources may be local paths or http(s) URLs.

Queries run from the command line (search, similar, detail) or over HTTP
(serve). The metadata store (store) and export commands precompute data
for the website.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		logging.Init(c.Log, os.Stderr)

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		secrets.Apply(s, &c.Corpus)
		if len(s) > 0 {
			log := logging.WithComponent("cli")
			log.Debug().Strs("keys", secrets.Keys(s)).Msg("loaded secrets")
		}

		cfg = c
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./paper-recommender.yaml or ~/.config/paper-recommender/config.yaml)")
	pf.String("papers", "", "publications CSV path or URL (default datasets/papers.csv)")
	pf.String("links", "", "publication-to-dataset CSV path or URL (default datasets/paper_to_datasets.csv)")
	pf.String("db", "", "sqlite metadata store path (default index/metadata.db)")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error")
	pf.String("log-format", "", "log format: console or json")

	bindFlag("corpus.papers_source", "papers")
	bindFlag("corpus.links_source", "links")
	bindFlag("store.path", "db")
	bindFlag("log.level", "log-level")
	bindFlag("log.format", "log-format")
}

func bindFlag(key, flag string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag, err))
	}
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("paper-recommender")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "paper-recommender"))
		}
	}

	viper.SetEnvPrefix("PAPER_RECOMMENDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults(viper.GetViper(), types.DefaultConfig())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so AutomaticEnv can resolve it
// during Unmarshal.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("corpus.timeout", d.Corpus.Timeout)
	v.SetDefault("corpus.user_agent", d.Corpus.UserAgent)
	v.SetDefault("corpus.requests_per_second", d.Corpus.RequestsPerSecond)
	v.SetDefault("corpus.papers_source", d.Corpus.PapersSource)
	v.SetDefault("corpus.links_source", d.Corpus.LinksSource)
	v.SetDefault("corpus.source_token", d.Corpus.SourceToken)
	v.SetDefault("index.max_results", d.Index.MaxResults)
	v.SetDefault("index.detail_similar", d.Index.DetailSimilar)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("serve.reload_interval", d.Serve.ReloadInterval)
	v.SetDefault("serve.rate_limit", d.Serve.RateLimit)
	v.SetDefault("serve.shutdown_timeout", d.Serve.ShutdownTimeout)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

func loadConfig() (types.Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
