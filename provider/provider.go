// Package provider defines the storage abstraction used by asidecache.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key (no prepended/appended
// metadata, no re-encoding, no mutation). If a store performs internal transforms
// (e.g., compression), they MUST be fully reversed so that the bytes returned by
// Get are identical to the bytes provided to Set.
//
// Important: the keyspace "aside:<ns>:" is owned by asidecache. Foreign writes
// under it fail frame validation and are treated as misses.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs.
// Must be safe for concurrent use.
// Expiry is also carried inside the stored frame, so a store that cannot
// honor per-entry TTL still never serves an expired entry.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL. May ignore cost if unsupported.
	// Returns ok=false when the store rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Close releases resources.
	Close(ctx context.Context) error
}

// KeyLimiter is implemented by providers with a maximum key size.
type KeyLimiter interface {
	MaxKeyLen() int
}
