// Package gocache adapts patrickmn/go-cache, an in-process map with a
// janitor goroutine, to provider.Provider.
package gocache

import (
	"context"
	"time"

	gc "github.com/patrickmn/go-cache"

	pr "github.com/unkn0wn-root/asidecache/provider"
)

type Provider struct {
	c *gc.Cache
}

var _ pr.Provider = (*Provider)(nil)

// New creates a provider whose janitor purges expired entries every
// cleanupInterval (<= 0 disables the janitor; expired entries are still
// never returned).
func New(cleanupInterval time.Duration) *Provider {
	return &Provider{c: gc.New(gc.NoExpiration, cleanupInterval)}
}

func NewWithCache(c *gc.Cache) *Provider { return &Provider{c: c} }

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		// foreign value shape under our key
		return nil, false, nil
	}
	return b, true, nil
}

// ttl <= 0 => no expiry. cost is ignored.
func (p *Provider) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = gc.NoExpiration
	}
	p.c.Set(key, append([]byte(nil), value...), ttl)
	return true, nil
}

// Close drops all entries. The janitor goroutine stops once the cache is collected.
func (p *Provider) Close(_ context.Context) error {
	p.c.Flush()
	return nil
}

func (p *Provider) ItemCount() int { return p.c.ItemCount() }
