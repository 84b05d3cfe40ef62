// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pdiddy/paper-recommender/internal/recommend"
)

type metrics struct {
	registry *prometheus.Registry

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	notFound prometheus.Counter
}

func newMetrics(reg *prometheus.Registry) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		registry: reg,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "paper_recommender_http_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"route", "status"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "paper_recommender_http_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		notFound: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "paper_recommender_detail_not_found_total",
				Help: "Detail lookups for ids absent from the index",
			},
		),
	}
}

// observeIndex exposes the size and age of the live index as gauges read
// at scrape time.
func (m *metrics) observeIndex(h *recommend.Holder) {
	factory := promauto.With(m.registry)
	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "paper_recommender_index_papers",
			Help: "Number of publications in the live index",
		},
		func() float64 {
			if idx := h.Index(); idx != nil {
				return float64(idx.Len())
			}
			return 0
		},
	)
	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "paper_recommender_index_vocabulary_terms",
			Help: "Number of distinct terms in the live index",
		},
		func() float64 {
			if idx := h.Index(); idx != nil {
				return float64(idx.VocabularySize())
			}
			return 0
		},
	)
	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "paper_recommender_index_loaded_timestamp_seconds",
			Help: "Unix time the live index was published",
		},
		func() float64 {
			if h.Index() == nil {
				return 0
			}
			return float64(h.LoadedAt().Unix())
		},
	)
}

// instrument records request counts and latency by chi route pattern.
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
