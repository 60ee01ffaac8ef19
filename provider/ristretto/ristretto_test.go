package ristretto

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/unkn0wn-root/asidecache"
	"github.com/unkn0wn-root/asidecache/codec"
)

func mustNew(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{NumCounters: 1e4, MaxCost: 1 << 20, BufferItems: 64, Metrics: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for zero config")
	}
}

func TestGetSet(t *testing.T) {
	p := mustNew(t)
	ctx := context.Background()

	if _, ok, err := p.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}

	buf := []byte("v1")
	if ok, err := p.Set(ctx, "k", buf, 1, time.Minute); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	buf[0] = 'X' // caller reuses buffer

	v, ok, err := p.Get(ctx, "k")
	if err != nil || !ok || string(v) != "v1" {
		t.Fatalf("Get: v=%q ok=%v err=%v", v, ok, err)
	}
	if p.Metrics() == nil {
		t.Fatalf("metrics enabled but nil")
	}
}

func TestTTLExpires(t *testing.T) {
	p := mustNew(t)
	ctx := context.Background()

	if ok, _ := p.Set(ctx, "ttl", []byte("temp"), 1, 50*time.Millisecond); !ok {
		t.Fatalf("Set rejected")
	}
	if _, ok, _ := p.Get(ctx, "ttl"); !ok {
		t.Fatalf("expected hit before TTL")
	}

	// Ristretto cleanup may need a bit of extra time.
	time.Sleep(200 * time.Millisecond)

	if _, ok, _ := p.Get(ctx, "ttl"); ok {
		t.Fatalf("expected miss after TTL")
	}
}

// Default config must give read-your-write: a value loaded through the
// loader is served from the store on the very next call.
func TestDefaultConfigServesLoadedValueImmediately(t *testing.T) {
	p, err := New(Config{NumCounters: 1e4, MaxCost: 1 << 20, BufferItems: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var calls atomic.Int32
	ld, err := asidecache.New[string](asidecache.Options[string]{
		Namespace: "rc",
		Provider:  p,
		Codec:     codec.String{},
		Loader: asidecache.LoaderFunc[string](func(_ context.Context, key string) (string, error) {
			calls.Add(1)
			return "v:" + key, nil
		}),
	})
	if err != nil {
		t.Fatalf("asidecache.New: %v", err)
	}
	t.Cleanup(func() { _ = ld.Close(context.Background()) })

	ctx := context.Background()
	const keys = 200
	for i := 0; i < keys; i++ {
		k := fmt.Sprintf("k%d", i)
		for j := 0; j < 2; j++ {
			v, err := ld.GetOrLoad(ctx, k)
			if err != nil || v != "v:"+k {
				t.Fatalf("%s call %d: v=%q err=%v", k, j, v, err)
			}
		}
	}
	if n := calls.Load(); n != keys {
		t.Fatalf("loader called %d times for %d keys, want one load per key", n, keys)
	}
}
