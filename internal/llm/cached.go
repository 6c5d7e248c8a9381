package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/deckaudit/deckaudit/internal/cache"
	"github.com/deckaudit/deckaudit/internal/logger"
)

// CachedProvider wraps a Provider with completion caching. Re-running an
// unchanged deck replays extraction and normalization responses instead of
// re-billing them. Safe because generation temperature is pinned to zero.
type CachedProvider struct {
	inner Provider
	store cache.Cache
	ttl   time.Duration
}

// NewCachedProvider creates a caching wrapper around a provider
func NewCachedProvider(inner Provider, store cache.Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		inner: inner,
		store: store,
		ttl:   ttl,
	}
}

// Name returns the wrapped provider's name
func (p *CachedProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable defers to the wrapped provider
func (p *CachedProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Complete serves from the cache when possible, otherwise calls through and
// stores the result. Cache failures never fail the call.
func (p *CachedProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	key := cache.CompletionKey(req.Model, req.Prompt, req.Image)

	if data, found := p.store.Get(key); found {
		var resp CompletionResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			logger.Log.WithField("provider", p.inner.Name()).Debug("completion cache hit")
			return &resp, nil
		}
		// Corrupt entry, drop it and fall through
		_ = p.store.Delete(key)
	}

	resp, err := p.inner.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := p.store.Set(key, data, p.ttl); err != nil {
			logger.Log.WithError(err).Debug("completion cache write failed")
		}
	}

	return resp, nil
}
