package asidecache

import "time"

// Load outcomes reported to Hooks.LoadDone.
const (
	OutcomeValue    = "value"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The loader calls them on hot paths.
type Hooks interface {
	// Fresh positive entry served from the store.
	Hit(key string)
	// Fresh not-found marker served from the store.
	NegativeHit(key string)
	// Nothing usable in the store (absent, expired, corrupt or store down).
	Miss(key string)
	// The caller joined a load started by another caller.
	Coalesced(key string)

	// A shared load finished. outcome ∈ {"value", "not_found", "error"}
	LoadDone(key, outcome string, took time.Duration)

	// Provider call failed or timed out. op ∈ {"get", "set"}
	StoreError(op, key string, err error)

	// Stored bytes could not be decoded (frame or codec).
	CorruptEntry(storageKey string)

	// Provider returned ok=false on Set (backpressure/eviction).
	StoreSetRejected(storageKey string)

	// The caller's context ended while waiting on a shared load.
	WaitAbandoned(key string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Hit(string)                             {}
func (NopHooks) NegativeHit(string)                     {}
func (NopHooks) Miss(string)                            {}
func (NopHooks) Coalesced(string)                       {}
func (NopHooks) LoadDone(string, string, time.Duration) {}
func (NopHooks) StoreError(string, string, error)       {}
func (NopHooks) CorruptEntry(string)                    {}
func (NopHooks) StoreSetRejected(string)                {}
func (NopHooks) WaitAbandoned(string, error)            {}
