// Package flight coalesces concurrent loads of the same key.
//
// The in-flight table is split into shards picked by key hash, each shard a
// singleflight.Group with its own mutex, so callers of unrelated keys never
// serialize on one lock.
package flight

import (
	"context"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

const shardCount = 64 // power of two

// Result is what a finished load delivers to every waiter.
type Result struct {
	Val    any
	Err    error
	Shared bool // more than one caller received this result
}

// PanicError wraps a value recovered from a panicking load.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("load panicked: %v", e.Value) }

type Group struct {
	shards [shardCount]singleflight.Group
}

func (g *Group) shard(key string) *singleflight.Group {
	return &g.shards[xxhash.Sum64String(key)&(shardCount-1)]
}

// Do runs fn once for all concurrent callers of key. fn runs on its own
// goroutine and is not tied to ctx: when ctx ends first, Do returns ctx.Err()
// with abandoned=true, and the load keeps going for the remaining waiters.
// A panic in fn is recovered and delivered to every waiter as *PanicError.
func (g *Group) Do(ctx context.Context, key string, fn func() (any, error)) (res Result, abandoned bool) {
	ch := g.shard(key).DoChan(key, func() (v any, err error) {
		defer func() {
			if r := recover(); r != nil {
				v, err = nil, &PanicError{Value: r}
			}
		}()
		return fn()
	})

	select {
	case r := <-ch:
		return Result{Val: r.Val, Err: r.Err, Shared: r.Shared}, false
	case <-ctx.Done():
		return Result{Err: ctx.Err()}, true
	}
}
