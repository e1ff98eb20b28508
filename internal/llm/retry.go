package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retrier decorates a Provider with bounded retries. Backoff is
// exponential with jitter; a rate limit's RetryAfter overrides it.
type retrier struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps a Provider so transient failures are retried up to
// cfg.MaxAttempts total calls.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{inner: p, cfg: cfg}
}

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	retriedInvalid := false

	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt >= r.cfg.MaxAttempts || !retryable(err, &retriedInvalid) {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.waitFor(attempt, err)):
		}
	}
}

func (r *retrier) ModelID() string {
	return r.inner.ModelID()
}

// retryable decides whether an error is worth another attempt. Schema
// violations get exactly one retry; the flag tracks whether it was spent.
func retryable(err error, retriedInvalid *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		// Truncation is a MaxTokens configuration problem; retrying
		// reproduces it.
		return false
	}

	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *retriedInvalid {
			return false
		}
		*retriedInvalid = true
		return true
	}

	// Rate limits, outages, and unclassified network errors are all
	// assumed transient.
	return true
}

// waitFor computes the sleep before the next attempt. attempt is 1-based.
func (r *retrier) waitFor(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := math.Min(
		float64(r.cfg.InitialWait)*math.Pow(r.cfg.Multiplier, float64(attempt-1)),
		float64(r.cfg.MaxWait),
	)
	wait *= 1 + 0.2*(2*rand.Float64()-1) // ±20% jitter
	return time.Duration(math.Max(wait, 0))
}
