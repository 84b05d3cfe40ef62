// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-recommender/internal/logging"
	"github.com/pdiddy/paper-recommender/internal/recommend"
	"github.com/pdiddy/paper-recommender/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve search, similar and detail queries over HTTP",
	Long: `Serve builds the index and answers JSON queries under /api. The index
is rebuilt every --reload-interval and on SIGHUP; a failed rebuild keeps
the current index serving. When a metadata store is configured, detail
responses carry the stored record.

The server never starts listening with a partial index: a corpus that
fails to load aborts the command.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.WithComponent("serve")

	if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
		cfg.Serve.Addr = addr
	}
	if every, _ := cmd.Flags().GetDuration("reload-interval"); cmd.Flags().Changed("reload-interval") {
		cfg.Serve.ReloadInterval = every
	}

	idx, err := buildIndex(ctx)
	if err != nil {
		return err
	}
	holder := recommend.NewHolder(idx)

	var opts []web.Option
	if store, ok := openEnrichment(ctx, cfg.Store); ok {
		defer store.Close()
		opts = append(opts, web.WithMetadata(store))
		log.Info().Str("path", store.Path()).Msg("metadata enrichment enabled")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go holder.Watch(ctx, recommend.BuildFrom(cfg.Corpus), cfg.Serve.ReloadInterval, hangups(ctx))

	srv := web.NewServer(holder, cfg.Index, cfg.Serve, opts...)
	return srv.ListenAndServe(ctx)
}

// hangups forwards SIGHUP as reload triggers until ctx is done.
func hangups(ctx context.Context) <-chan struct{} {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP)

	trigger := make(chan struct{}, 1)
	go func() {
		defer signal.Stop(sig)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sig:
				select {
				case trigger <- struct{}{}:
				default:
				}
			}
		}
	}()
	return trigger
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address (default from serve.addr)")
	serveCmd.Flags().Duration("reload-interval", 0, "rebuild the index on this period; 0 disables (SIGHUP always reloads)")

	rootCmd.AddCommand(serveCmd)
}
