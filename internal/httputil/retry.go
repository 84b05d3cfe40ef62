// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil fetches remote corpus sources with throttling and
// retry on rate-limit responses.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/paper-recommender/internal/logging"
	"github.com/pdiddy/paper-recommender/pkg/types"
)

// RetryBaseDelay is the first backoff after a 429 or 503 response; each
// further attempt doubles it. Tests override this to avoid real sleeps.
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 5

// Fetcher issues GET requests for corpus sources.
type Fetcher struct {
	Client     *http.Client
	Limiter    *rate.Limiter
	UserAgent  string
	Token      string
	MaxRetries int
}

// NewFetcher builds a Fetcher from the corpus HTTP settings. A zero
// RequestsPerSecond leaves the fetcher unthrottled.
func NewFetcher(cfg types.CorpusConfig) *Fetcher {
	f := &Fetcher{
		Client:    &http.Client{Timeout: cfg.Timeout},
		UserAgent: cfg.UserAgent,
		Token:     cfg.SourceToken,
	}
	if cfg.RequestsPerSecond > 0 {
		f.Limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	return f
}

// Get fetches url and returns the response body. Any status other than
// 200 is an error; the caller must close the body.
func (f *Fetcher) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}
	if f.Token != "" {
		req.Header.Set("Authorization", "Bearer "+f.Token)
	}

	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := DoWithRetry(ctx, client, req, f.MaxRetries)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s returned HTTP %d", url, resp.StatusCode)
	}
	return resp.Body, nil
}

// DoWithRetry executes req and retries on HTTP 429 and 503 with
// exponential backoff starting at RetryBaseDelay. A Retry-After header
// given in seconds overrides the computed delay.
//
// When maxRetries is 0 the default (5) is used. If the context is
// cancelled during a backoff wait the function returns ctx.Err(). After
// exhausting retries the last response is returned so the caller can
// inspect it.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	log := logging.WithComponent("httputil")

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		backoff := RetryBaseDelay << attempt
		if s, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && s >= 0 {
			backoff = time.Duration(s) * time.Second
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		log.Debug().
			Str("url", req.URL.String()).
			Int("status", resp.StatusCode).
			Dur("backoff", backoff).
			Int("attempt", attempt+1).
			Msg("retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}
