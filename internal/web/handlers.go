// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/pdiddy/paper-recommender/internal/corpus"
	"github.com/pdiddy/paper-recommender/internal/logging"
	"github.com/pdiddy/paper-recommender/internal/metadata"
	"github.com/pdiddy/paper-recommender/internal/recommend"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// ResultsResponse is the body of search and similar responses.
type ResultsResponse struct {
	Query   string              `json:"query,omitempty"`
	ID      string              `json:"id,omitempty"`
	K       int                 `json:"k"`
	Results []types.ScoredPaper `json:"results"`
}

// DetailResponse is the body of a detail response. Metadata is present
// only when a metadata store is configured and knows the id.
type DetailResponse struct {
	types.PublicationDetail
	Metadata *metadata.Record `json:"metadata,omitempty"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error    string           `json:"error"`
	ID       string           `json:"id,omitempty"`
	Metadata *metadata.Record `json:"metadata,omitempty"`
}

// HealthResponse is the body of the health and readiness probes.
type HealthResponse struct {
	Status string `json:"status"`
	Papers int    `json:"papers,omitempty"`
	Terms  int    `json:"terms,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.liveIndex(w)
	if !ok {
		return
	}
	k, ok := parseK(w, r, s.index.MaxResults)
	if !ok {
		return
	}
	q := r.URL.Query().Get("q")
	respondJSON(w, r, http.StatusOK, ResultsResponse{
		Query:   q,
		K:       k,
		Results: idx.Search(q, k),
	})
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.liveIndex(w)
	if !ok {
		return
	}
	k, ok := parseK(w, r, s.index.MaxResults)
	if !ok {
		return
	}
	id := corpus.NormalizeID(chi.URLParam(r, "id"))
	respondJSON(w, r, http.StatusOK, ResultsResponse{
		ID:      id,
		K:       k,
		Results: idx.Similar(id, k),
	})
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	idx, ok := s.liveIndex(w)
	if !ok {
		return
	}
	k, ok := parseK(w, r, s.index.DetailSimilar)
	if !ok {
		return
	}
	id := corpus.NormalizeID(chi.URLParam(r, "id"))
	rec := s.lookupMetadata(r, id)

	detail, err := idx.Detail(id, k)
	if errors.Is(err, recommend.ErrPaperNotFound) {
		s.metrics.notFound.Inc()
		respondJSON(w, r, http.StatusNotFound, ErrorResponse{
			Error:    recommend.ErrPaperNotFound.Error(),
			ID:       id,
			Metadata: rec,
		})
		return
	}
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err)
		return
	}
	respondJSON(w, r, http.StatusOK, DetailResponse{PublicationDetail: detail, Metadata: rec})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	idx := s.holder.Index()
	if idx == nil {
		respondJSON(w, r, http.StatusServiceUnavailable, HealthResponse{Status: "loading"})
		return
	}
	respondJSON(w, r, http.StatusOK, HealthResponse{
		Status: "ready",
		Papers: idx.Len(),
		Terms:  idx.VocabularySize(),
	})
}

// liveIndex returns the published index or answers 503 when none is
// loaded yet.
func (s *Server) liveIndex(w http.ResponseWriter) (*recommend.Index, bool) {
	idx := s.holder.Index()
	if idx == nil {
		w.Header().Set("Retry-After", "5")
		_ = writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "index not loaded"})
		return nil, false
	}
	return idx, true
}

// lookupMetadata returns the stored record for id, or nil when no store is
// configured, the id is unknown, or the store fails. A store failure is
// logged and never fails the request.
func (s *Server) lookupMetadata(r *http.Request, id string) *metadata.Record {
	if s.meta == nil {
		return nil
	}
	rec, ok, err := s.meta.Lookup(r.Context(), id)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("id", id).Msg("metadata lookup failed")
		return nil
	}
	if !ok {
		return nil
	}
	return &rec
}

// parseK reads the k query parameter. Absent means def; a value that is
// not a non-negative integer is answered with 400.
func parseK(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("k"))
	if raw == "" {
		return def, true
	}
	k, err := strconv.Atoi(raw)
	if err != nil || k < 0 {
		respondJSON(w, r, http.StatusBadRequest, ErrorResponse{Error: "k must be a non-negative integer"})
		return 0, false
	}
	return k, true
}

func respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logging.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	respondJSON(w, r, status, ErrorResponse{Error: http.StatusText(status)})
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	if err := writeJSON(w, status, body); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("writing JSON response")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(data)
	return err
}
