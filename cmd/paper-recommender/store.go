// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-recommender/internal/corpus"
	"github.com/pdiddy/paper-recommender/internal/logging"
	"github.com/pdiddy/paper-recommender/internal/metadata"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the sqlite metadata store (import, get)",
	Long: `Store manages a local SQLite database of publications, datasets and
their links. The HTTP server and the detail command read it to enrich
responses; the similarity index never depends on it.`,
}

// --- import subcommand ---

var storeImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the corpus sources into the metadata store",
	Long: `Import reads the configured corpus sources and replaces the store
contents with their publications and dataset links in one transaction.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := corpus.LoadSources(cmd.Context(), cfg.Corpus)
		if err != nil {
			return err
		}
		if dups := c.DuplicateIDs(); len(dups) > 0 {
			log := logging.WithComponent("cli")
			log.Warn().Strs("ids", dups).Msg("duplicate publication ids; the store keeps the last row")
		}

		store, err := metadata.NewStore(storeConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		_, err = store.Import(cmd.Context(), c, cmd.OutOrStdout())
		return err
	},
}

// --- get subcommand ---

var storeGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print the stored metadata of one publication",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := metadata.OpenReadOnly(storeConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		rec, ok, err := store.Lookup(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s: not in metadata store %s", corpus.NormalizeID(args[0]), store.Path())
		}
		return writeJSON(cmd.OutOrStdout(), rec)
	},
}

// --- shared helpers ---

// storeConfig returns the configured store, falling back to the default
// path so that import and get always have a file to work on.
func storeConfig() types.StoreConfig {
	sc := cfg.Store
	if sc.Path == "" {
		sc.Path = types.DefaultConfig().Store.Path
	}
	return sc
}

// openEnrichment opens the metadata store read-only for serve and detail.
// An empty path disables enrichment. A database that is missing or holds
// no publications is logged at debug level; any other failure is a
// warning.
func openEnrichment(ctx context.Context, sc types.StoreConfig) (*metadata.Store, bool) {
	if sc.Path == "" {
		return nil, false
	}
	log := logging.WithComponent("cli")
	store, err := metadata.OpenReadOnly(sc)
	if errors.Is(err, metadata.ErrNoDatabase) {
		log.Debug().Str("path", sc.Path).Msg("no metadata store; run store import to enable enrichment")
		return nil, false
	}
	if err != nil {
		warnStore(err)
		return nil, false
	}
	n, err := store.Count(ctx)
	if err != nil {
		store.Close()
		warnStore(err)
		return nil, false
	}
	if n == 0 {
		store.Close()
		log.Debug().Str("path", sc.Path).Msg("metadata store is empty")
		return nil, false
	}
	log.Debug().Str("path", sc.Path).Int("papers", n).Msg("metadata store opened")
	return store, true
}

func warnStore(err error) {
	log := logging.WithComponent("cli")
	log.Warn().Err(err).Msg("metadata store unavailable")
}

func init() {
	storeCmd.AddCommand(storeImportCmd)
	storeCmd.AddCommand(storeGetCmd)

	rootCmd.AddCommand(storeCmd)
}
