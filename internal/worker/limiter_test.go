package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 2 {
		t.Errorf("expected default burst 2 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_NonPositiveRateClamped(t *testing.T) {
	for _, rps := range []float64{0, -1} {
		limiter := NewLimiter(rps, 1)
		if limiter.defaultRate <= 0 {
			t.Errorf("rps %v: expected clamped positive rate, got %v", rps, limiter.defaultRate)
		}
	}

	// Requests beyond the burst must still clear instead of blocking forever
	limiter := NewLimiter(0, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := 0; i < 2; i++ {
		if err := limiter.Wait(ctx, "gpt-4o-mini"); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "gpt-4o-mini"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different model should also clear immediately
	if err := limiter.Wait(ctx, "claude-3-5-sonnet-20241022"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	mdl := "gpt-4o-mini"

	// First request consumes the burst token
	if err := limiter.Wait(ctx, mdl); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	if limiter.Allow(mdl) {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// Other models have their own budget
	if !limiter.Allow("other-model") {
		t.Errorf("expected allow for other model")
	}
}

func TestLimiter_SetModelRate(t *testing.T) {
	limiter := NewLimiter(10, 10) // fast default
	mdl := "slow-model"

	limiter.SetModelRate(mdl, 0.1, 1)

	// First request passes (burst 1)
	if !limiter.Allow(mdl) {
		t.Errorf("first request should pass")
	}

	// Second request fails
	if limiter.Allow(mdl) {
		t.Errorf("second request should fail")
	}

	// Other model still fast
	if !limiter.Allow("fast-model") {
		t.Errorf("other model should pass")
	}
}
