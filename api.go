package asidecache

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	c "github.com/unkn0wn-root/asidecache/codec"
	pr "github.com/unkn0wn-root/asidecache/provider"
)

type SetCostFunc func(storageKey string, raw []byte, negative bool) int64

// Loader produces the value for a key from the source of truth.
// Return an error matching ErrNotFound when the key does not exist there;
// any other error is a load failure and is never cached.
type Loader[V any] interface {
	Load(ctx context.Context, key string) (V, error)
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc[V any] func(ctx context.Context, key string) (V, error)

func (f LoaderFunc[V]) Load(ctx context.Context, key string) (V, error) { return f(ctx, key) }

// AsideLoader is a cache-aside read-through helper.
// V is the caller's value type; []byte values use codec.Bytes.
type AsideLoader[V any] interface {
	// GetOrLoad returns the cached value for key, or loads, caches and returns it.
	// Concurrent misses for the same key share a single Loader call.
	// A missing key yields the zero V and an error matching ErrNotFound.
	GetOrLoad(ctx context.Context, key string) (V, error)

	Enabled() bool
	Close(context.Context) error
}

// Options tune the loader. Namespace, Provider, Codec and Loader are required.
type Options[V any] struct {
	// Required
	Namespace string // e.g. "user", "report"
	Provider  pr.Provider
	Codec     c.Codec[V]
	Loader    Loader[V]

	TTL            time.Duration // positive entries; 0 => 10m
	NegativeTTL    time.Duration // not-found markers; 0 => negative caching off
	StoreTimeout   time.Duration // per store call; 0 => 250ms, <0 => no bound
	LoadTimeout    time.Duration // shared load; 0 => unbounded
	MaxKeyLen      int           // storage key limit; 0 => provider limit if any
	Logger         Logger        // nil => NopLogger
	Hooks          Hooks         // nil => NopHooks
	Tracer         trace.Tracer  // nil => global otel tracer
	ComputeSetCost SetCostFunc   // default 1
	Disabled       bool          // bypass the store; loads are still coalesced
}

func New[V any](opts Options[V]) (AsideLoader[V], error) {
	return newAside[V](opts)
}
