package llm

import (
	"context"

	"github.com/deckaudit/deckaudit/internal/worker"
)

// ThrottledProvider applies a client-side rate limit before every completion
// call. Keeps concurrent fan-out in the extraction and normalization passes
// from tripping provider-side request limits.
type ThrottledProvider struct {
	inner   Provider
	limiter *worker.Limiter
}

// NewThrottledProvider creates a rate-limited wrapper around a provider
func NewThrottledProvider(inner Provider, limiter *worker.Limiter) *ThrottledProvider {
	return &ThrottledProvider{
		inner:   inner,
		limiter: limiter,
	}
}

// Name returns the wrapped provider's name
func (p *ThrottledProvider) Name() string {
	return p.inner.Name()
}

// IsAvailable defers to the wrapped provider
func (p *ThrottledProvider) IsAvailable(ctx context.Context) bool {
	return p.inner.IsAvailable(ctx)
}

// Complete waits for rate-limit clearance for the request's model, then
// calls through.
func (p *ThrottledProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := p.limiter.Wait(ctx, req.Model); err != nil {
		return nil, err
	}
	return p.inner.Complete(ctx, req)
}
