// usage:
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    MissEvery:  100, // sample: ~every 100th miss
//	})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	ld, _ := asidecache.New[Report](asidecache.Options[Report]{
//	    Namespace: "app:prod:report",
//	    Provider:  provider,
//	    Codec:     codec.JSON[Report]{},
//	    Loader:    loader,
//	    Hooks:     hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/asidecache"
)

// Hooks forwards events to inner on worker goroutines. When the queue is
// full events are dropped, never blocking the caller.
type Hooks struct {
	inner   asidecache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against concurrent try
	closed  bool
	dropped atomic.Uint64
}

var _ asidecache.Hooks = (*Hooks)(nil)

func New(inner asidecache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Events after Close are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

// Dropped reports how many events were discarded.
func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default: // drop
		h.dropped.Add(1)
	}
}

func (h *Hooks) Hit(k string)          { h.try(func() { h.inner.Hit(k) }) }
func (h *Hooks) NegativeHit(k string)  { h.try(func() { h.inner.NegativeHit(k) }) }
func (h *Hooks) Miss(k string)         { h.try(func() { h.inner.Miss(k) }) }
func (h *Hooks) Coalesced(k string)    { h.try(func() { h.inner.Coalesced(k) }) }
func (h *Hooks) CorruptEntry(k string) { h.try(func() { h.inner.CorruptEntry(k) }) }
func (h *Hooks) StoreSetRejected(k string) {
	h.try(func() { h.inner.StoreSetRejected(k) })
}
func (h *Hooks) LoadDone(k, outcome string, took time.Duration) {
	h.try(func() { h.inner.LoadDone(k, outcome, took) })
}
func (h *Hooks) StoreError(op, k string, err error) {
	h.try(func() { h.inner.StoreError(op, k, err) })
}
func (h *Hooks) WaitAbandoned(k string, err error) {
	h.try(func() { h.inner.WaitAbandoned(k, err) })
}
