package asidecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	c "github.com/unkn0wn-root/asidecache/codec"
	"github.com/unkn0wn-root/asidecache/internal/flight"
	"github.com/unkn0wn-root/asidecache/internal/util"
	"github.com/unkn0wn-root/asidecache/internal/wire"
	pr "github.com/unkn0wn-root/asidecache/provider"
)

const (
	defaultTTL          = 10 * time.Minute
	defaultStoreTimeout = 250 * time.Millisecond

	tracerName = "github.com/unkn0wn-root/asidecache"
)

type lookupState int

const (
	stateMiss lookupState = iota
	stateHit
	stateNegative
)

type aside[V any] struct {
	ns             string
	provider       pr.Provider
	codec          c.Codec[V]
	loader         Loader[V]
	log            Logger
	hooks          Hooks
	tracer         trace.Tracer
	enabled        bool
	ttl            time.Duration
	negativeTTL    time.Duration
	storeTimeout   time.Duration
	loadTimeout    time.Duration
	maxKeyLen      int
	computeSetCost SetCostFunc

	flights flight.Group
	now     func() time.Time
}

func newAside[V any](opts Options[V]) (*aside[V], error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("asidecache: provider is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("asidecache: codec is required")
	}
	if opts.Loader == nil {
		return nil, fmt.Errorf("asidecache: loader is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("asidecache: namespace is required")
	}
	if opts.TTL < 0 || opts.NegativeTTL < 0 || opts.LoadTimeout < 0 {
		return nil, fmt.Errorf("asidecache: negative TTL or load timeout")
	}

	a := &aside[V]{
		ns:          opts.Namespace,
		provider:    opts.Provider,
		codec:       opts.Codec,
		loader:      opts.Loader,
		enabled:     !opts.Disabled,
		negativeTTL: opts.NegativeTTL,
		loadTimeout: opts.LoadTimeout,
		now:         time.Now,
	}

	// defaults
	a.log = coalesce[Logger](opts.Logger, NopLogger{})
	a.ttl = coalesce[time.Duration](opts.TTL, defaultTTL)
	a.storeTimeout = coalesce[time.Duration](opts.StoreTimeout, defaultStoreTimeout)

	if opts.Hooks != nil {
		a.hooks = opts.Hooks
	} else {
		a.hooks = NopHooks{}
	}
	if opts.Tracer != nil {
		a.tracer = opts.Tracer
	} else {
		a.tracer = otel.Tracer(tracerName)
	}

	if opts.ComputeSetCost != nil {
		a.computeSetCost = opts.ComputeSetCost
	} else {
		a.computeSetCost = func(string, []byte, bool) int64 { return 1 }
	}

	a.maxKeyLen = opts.MaxKeyLen
	if a.maxKeyLen <= 0 {
		if kl, ok := opts.Provider.(pr.KeyLimiter); ok {
			a.maxKeyLen = kl.MaxKeyLen()
		}
	}

	return a, nil
}

func (a *aside[V]) Enabled() bool { return a.enabled }

// Close releases the provider. Loads still in flight finish on their own.
func (a *aside[V]) Close(ctx context.Context) error {
	return a.provider.Close(ctx)
}

func (a *aside[V]) GetOrLoad(ctx context.Context, key string) (V, error) {
	var zero V
	if err := a.checkKey(key); err != nil {
		return zero, err
	}
	k := util.StorageKey(a.ns, key)

	if a.enabled {
		v, st := a.lookup(ctx, key, k)
		switch st {
		case stateHit:
			a.hooks.Hit(key)
			return v, nil
		case stateNegative:
			a.hooks.NegativeHit(key)
			return zero, ErrNotFound
		}
	}
	// a caller that is already gone must not start a load
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	a.hooks.Miss(key)

	var led bool // written by the load goroutine; read only after the result arrives
	res, abandoned := a.flights.Do(ctx, k, func() (any, error) {
		led = true
		return a.load(ctx, key, k)
	})
	if abandoned {
		a.hooks.WaitAbandoned(key, res.Err)
		return zero, res.Err
	}
	if !led {
		a.hooks.Coalesced(key)
	}

	if res.Err != nil {
		var pe *flight.PanicError
		if errors.As(res.Err, &pe) {
			if led {
				a.log.Error("loader panicked", Fields{"key": key, "panic": pe.Value})
			}
			return zero, &LoaderError{Key: key, Err: pe}
		}
		return zero, res.Err
	}
	v, _ := res.Val.(V)
	return v, nil
}

// lookup never fails: anything short of a fresh, decodable entry is a miss.
func (a *aside[V]) lookup(ctx context.Context, key, k string) (V, lookupState) {
	var zero V

	sctx, cancel := a.storeCtx(ctx)
	raw, ok, err := a.provider.Get(sctx, k)
	cancel()
	if err != nil {
		if ctx.Err() == nil {
			a.storeFailed("get", key, err)
		}
		return zero, stateMiss
	}
	if !ok {
		return zero, stateMiss
	}

	e, err := wire.Decode(raw)
	if err != nil {
		a.corrupt(key, k, err)
		return zero, stateMiss
	}
	if e.Expired(a.now()) {
		return zero, stateMiss
	}
	if e.Kind == wire.KindNegative {
		return zero, stateNegative
	}
	v, err := a.codec.Decode(e.Payload)
	if err != nil {
		a.corrupt(key, k, err)
		return zero, stateMiss
	}
	return v, stateHit
}

// load runs once per in-flight key, detached from the first caller's
// cancellation so that other waiters still get a result.
func (a *aside[V]) load(ctx context.Context, key, k string) (any, error) {
	dctx := context.WithoutCancel(ctx)
	lctx := dctx
	if a.loadTimeout > 0 {
		var cancel context.CancelFunc
		lctx, cancel = context.WithTimeout(dctx, a.loadTimeout)
		defer cancel()
	}
	lctx, span := a.tracer.Start(lctx, "asidecache.load",
		trace.WithAttributes(attribute.String("asidecache.namespace", a.ns)))
	defer span.End()

	start := a.now()
	v, err := a.loader.Load(lctx, key)
	took := a.now().Sub(start)

	switch {
	case err == nil:
		span.SetAttributes(attribute.String("asidecache.outcome", OutcomeValue))
		a.hooks.LoadDone(key, OutcomeValue, took)
		if a.enabled {
			a.storeValue(dctx, key, k, v)
		}
		return v, nil

	case errors.Is(err, ErrNotFound):
		span.SetAttributes(attribute.String("asidecache.outcome", OutcomeNotFound))
		a.hooks.LoadDone(key, OutcomeNotFound, took)
		if a.enabled && a.negativeTTL > 0 {
			raw := wire.EncodeNegative(a.now().Add(a.negativeTTL))
			a.write(dctx, key, k, raw, a.negativeTTL, true)
		}
		return nil, err

	default:
		span.SetAttributes(attribute.String("asidecache.outcome", OutcomeError))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.hooks.LoadDone(key, OutcomeError, took)
		a.log.Debug("load failed", Fields{"key": key, "err": err})
		return nil, &LoaderError{Key: key, Err: err}
	}
}

func (a *aside[V]) storeValue(ctx context.Context, key, k string, v V) {
	payload, err := a.codec.Encode(v)
	if err != nil {
		// value is still returned, just not cached
		a.log.Error("encode failed; value not cached", Fields{"key": key, "err": err})
		return
	}
	raw := wire.EncodeValue(a.now().Add(a.ttl), payload)
	a.write(ctx, key, k, raw, a.ttl, false)
}

func (a *aside[V]) write(ctx context.Context, key, k string, raw []byte, ttl time.Duration, negative bool) {
	sctx, cancel := a.storeCtx(ctx)
	defer cancel()

	ok, err := a.provider.Set(sctx, k, raw, a.computeSetCost(k, raw, negative), ttl)
	if err != nil {
		a.storeFailed("set", key, err)
		return
	}
	if !ok {
		a.log.Debug("Set rejected by provider (pressure)", Fields{"key": key, "negative": negative})
		a.hooks.StoreSetRejected(k)
	}
}

func (a *aside[V]) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, a.storeTimeout)
}

func (a *aside[V]) storeFailed(op, key string, err error) {
	serr := &StoreError{Op: op, Key: key, Err: err}
	a.log.Warn("store unavailable; falling back to loader", Fields{"op": op, "key": key, "err": err})
	a.hooks.StoreError(op, key, serr)
}

func (a *aside[V]) corrupt(key, k string, err error) {
	a.log.Warn("undecodable entry treated as miss", Fields{"key": key, "err": err})
	a.hooks.CorruptEntry(k)
}

func (a *aside[V]) checkKey(key string) error {
	if key == "" {
		return &KeyError{Reason: "empty"}
	}
	if a.maxKeyLen > 0 {
		if n := util.StorageKeyLen(a.ns, key); n > a.maxKeyLen {
			return &KeyError{Key: key, Reason: fmt.Sprintf("storage key length %d exceeds limit %d", n, a.maxKeyLen)}
		}
	}
	return nil
}
