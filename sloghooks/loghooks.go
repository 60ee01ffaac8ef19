package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/asidecache"
)

type Options struct {
	// Sampling to avoid floods on hot paths; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
	// Loads slower than this are logged at Warn; 0 disables.
	SlowLoad time.Duration
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ asidecache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) Hit(key string) {
	if h.l == nil || !sample(h.opts.HitEvery, &h.hitCtr) {
		return
	}
	h.l.Debug("asidecache.hit", "key", h.redact(key))
}

func (h *Hooks) NegativeHit(key string) {
	if h.l == nil {
		return
	}
	h.l.Debug("asidecache.negative_hit", "key", h.redact(key))
}

func (h *Hooks) Miss(key string) {
	if h.l == nil || !sample(h.opts.MissEvery, &h.missCtr) {
		return
	}
	h.l.Debug("asidecache.miss", "key", h.redact(key))
}

func (h *Hooks) Coalesced(key string) {
	if h.l == nil {
		return
	}
	h.l.Debug("asidecache.coalesced", "key", h.redact(key))
}

func (h *Hooks) LoadDone(key, outcome string, took time.Duration) {
	if h.l == nil {
		return
	}
	switch {
	case outcome == asidecache.OutcomeError:
		h.l.Warn("asidecache.load_failed",
			"key", h.redact(key),
			"took", took)
	case h.opts.SlowLoad > 0 && took >= h.opts.SlowLoad:
		h.l.Warn("asidecache.slow_load",
			"key", h.redact(key),
			"outcome", outcome,
			"took", took)
	default:
		h.l.Debug("asidecache.load_done",
			"key", h.redact(key),
			"outcome", outcome,
			"took", took)
	}
}

func (h *Hooks) StoreError(op, key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Warn("asidecache.store_error",
		"op", op,
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) CorruptEntry(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Warn("asidecache.corrupt_entry",
		"key", h.redact(storageKey))
}

func (h *Hooks) StoreSetRejected(storageKey string) {
	if h.l == nil {
		return
	}
	h.l.Info("asidecache.store_set_rejected",
		"key", h.redact(storageKey))
}

func (h *Hooks) WaitAbandoned(key string, err error) {
	if h.l == nil {
		return
	}
	h.l.Debug("asidecache.wait_abandoned",
		"key", h.redact(key),
		"err", err)
}
