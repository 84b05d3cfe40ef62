// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the similarity index over HTTP as JSON.
// Implements: the routing layer's search, similar, and detail endpoints
// with optional metadata enrichment, health and readiness probes, and
// Prometheus metrics;
//
//	docs/ARCHITECTURE § HTTP API.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/paper-recommender/internal/metadata"
	"github.com/pdiddy/paper-recommender/internal/recommend"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// MetadataLookup is the optional keyed lookup into the metadata store.
type MetadataLookup interface {
	Lookup(ctx context.Context, id string) (metadata.Record, bool, error)
}

// Server routes HTTP requests to the live index.
type Server struct {
	holder   *recommend.Holder
	meta     MetadataLookup
	index    types.IndexConfig
	serve    types.ServeConfig
	registry *prometheus.Registry
	metrics  *metrics
}

// Option configures a Server.
type Option func(*Server)

// WithMetadata enables enrichment of detail responses from lookup.
func WithMetadata(lookup MetadataLookup) Option {
	return func(s *Server) { s.meta = lookup }
}

// NewServer returns a Server reading from holder.
func NewServer(holder *recommend.Holder, index types.IndexConfig, serve types.ServeConfig, opts ...Option) *Server {
	if index.MaxResults <= 0 {
		index.MaxResults = 10
	}
	if index.DetailSimilar <= 0 {
		index.DetailSimilar = 10
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		holder:   holder,
		index:    index,
		serve:    serve,
		registry: reg,
		metrics:  newMetrics(reg),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics.observeIndex(holder)
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		if s.serve.RateLimit > 0 {
			r.Use(httprate.LimitByIP(s.serve.RateLimit, time.Minute))
		}
		r.Use(s.metrics.instrument)
		r.Get("/search", s.handleSearch)
		r.Get("/papers/{id}", s.handleDetail)
		r.Get("/papers/{id}/similar", s.handleSimilar)
	})

	return r
}
