package gocache

import (
	"context"
	"testing"
	"time"

	gc "github.com/patrickmn/go-cache"
)

func TestGetSetAndExpiry(t *testing.T) {
	p := New(0)
	ctx := context.Background()

	if _, ok, err := p.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	if ok, err := p.Set(ctx, "k", []byte("v"), 1, 30*time.Millisecond); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	if v, ok, _ := p.Get(ctx, "k"); !ok || string(v) != "v" {
		t.Fatalf("Get: v=%q ok=%v", v, ok)
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after TTL")
	}
}

func TestNoExpiryAndForeignShape(t *testing.T) {
	c := gc.New(gc.NoExpiration, 0)
	p := NewWithCache(c)
	ctx := context.Background()

	if ok, _ := p.Set(ctx, "forever", []byte("x"), 1, 0); !ok {
		t.Fatalf("Set rejected")
	}
	if _, ok, _ := p.Get(ctx, "forever"); !ok {
		t.Fatalf("expected hit for no-expiry entry")
	}

	c.Set("foreign", 42, gc.NoExpiration)
	if _, ok, err := p.Get(ctx, "foreign"); ok || err != nil {
		t.Fatalf("foreign value should read as miss, ok=%v err=%v", ok, err)
	}

	_ = p.Close(ctx)
	if n := p.ItemCount(); n != 0 {
		t.Fatalf("Close should flush, %d items left", n)
	}
}
