// Package asidecache implements a provider-agnostic cache-aside read-through
// loader. A read checks the store; on a miss the Loader is called once per key
// no matter how many callers miss concurrently, the result is written back with
// a TTL and handed to every waiter.
//
// Components:
//   - Provider: byte store with TTL (e.g. Redis, Ristretto, BigCache, go-cache).
//   - Codec[V]: (de)serializes V <-> []byte.
//   - Loader[V]: the slow source of truth.
//
// Keys:
//
//	aside:<ns>:<key> - value entries and not-found markers
//
// Failure policy:
//
//	store error      -> logged, treated as a miss; the load still happens
//	loader error     -> returned to every waiter, never cached, never retried
//	loader not found -> ErrNotFound, cached for NegativeTTL when > 0
//
// Usage:
//
//	ld, _ := asidecache.New[string](asidecache.Options[string]{
//	    Namespace:   "report",
//	    Provider:    redisProvider,
//	    Codec:       codec.String{},
//	    Loader:      asidecache.LoaderFunc[string](fetchReport),
//	    TTL:         10 * time.Minute,
//	    NegativeTTL: 30 * time.Second,
//	})
//	v, err := ld.GetOrLoad(ctx, "cachedData")
package asidecache
