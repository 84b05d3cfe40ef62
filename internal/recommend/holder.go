// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recommend

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pdiddy/paper-recommender/internal/logging"
)

// BuildFunc produces a complete, ready-to-serve index.
type BuildFunc func(ctx context.Context) (*Index, error)

// Holder publishes the live index. A reload builds a new index off to the
// side and swaps it in with a single atomic store; readers holding the old
// index keep using it unchanged.
type Holder struct {
	current  atomic.Pointer[Index]
	reloadMu sync.Mutex
	loadedAt atomic.Int64
}

// NewHolder returns a Holder serving idx.
func NewHolder(idx *Index) *Holder {
	h := &Holder{}
	h.Store(idx)
	return h
}

// Index returns the live index, or nil before the first Store.
func (h *Holder) Index() *Index { return h.current.Load() }

// Store publishes idx.
func (h *Holder) Store(idx *Index) {
	h.current.Store(idx)
	h.loadedAt.Store(time.Now().UnixNano())
}

// LoadedAt returns when the live index was published.
func (h *Holder) LoadedAt() time.Time { return time.Unix(0, h.loadedAt.Load()) }

// Reload runs build and publishes its result. On error the live index is
// left in place. Concurrent reloads are serialized.
func (h *Holder) Reload(ctx context.Context, build BuildFunc) error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	idx, err := build(ctx)
	if err != nil {
		return err
	}
	if idx == nil {
		return errors.New("build returned no index")
	}
	h.Store(idx)
	return nil
}

// Watch reloads the index every interval and whenever trigger fires,
// until ctx is done. A zero interval disables the periodic reload. Failed
// reloads are logged and the live index keeps serving.
func (h *Holder) Watch(ctx context.Context, build BuildFunc, interval time.Duration, trigger <-chan struct{}) {
	log := logging.WithComponent("reload")

	var tick <-chan time.Time
	if interval > 0 {
		t := time.NewTicker(interval)
		defer t.Stop()
		tick = t.C
	}

	for {
		var reason string
		select {
		case <-ctx.Done():
			return
		case <-tick:
			reason = "interval"
		case _, ok := <-trigger:
			if !ok {
				trigger = nil
				continue
			}
			reason = "signal"
		}

		start := time.Now()
		if err := h.Reload(ctx, build); err != nil {
			log.Error().Err(err).Str("reason", reason).Msg("reload failed; keeping live index")
			continue
		}
		log.Info().
			Str("reason", reason).
			Int("papers", h.Index().Len()).
			Dur("took", time.Since(start)).
			Msg("index reloaded")
	}
}
