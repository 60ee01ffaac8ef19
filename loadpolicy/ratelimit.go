// Package loadpolicy wraps a Loader with protections for the source of truth.
// Retries are deliberately absent.
package loadpolicy

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/unkn0wn-root/asidecache"
)

type rateLimited[V any] struct {
	inner asidecache.Loader[V]
	lim   *rate.Limiter
}

// RateLimit makes inner wait for a token before each call. Misses on
// distinct keys are not coalesced, so a cold cache can otherwise hit the
// source with one query per key at once. If the wait fails (context done,
// or the wait would exceed the deadline) the load fails and is not cached.
func RateLimit[V any](inner asidecache.Loader[V], lim *rate.Limiter) asidecache.Loader[V] {
	return &rateLimited[V]{inner: inner, lim: lim}
}

// PerSecond is RateLimit with a limiter allowing rps loads per second and burst at once.
func PerSecond[V any](inner asidecache.Loader[V], rps float64, burst int) asidecache.Loader[V] {
	return RateLimit(inner, rate.NewLimiter(rate.Limit(rps), burst))
}

func (r *rateLimited[V]) Load(ctx context.Context, key string) (V, error) {
	if err := r.lim.Wait(ctx); err != nil {
		var zero V
		return zero, fmt.Errorf("rate limit: %w", err)
	}
	return r.inner.Load(ctx, key)
}
