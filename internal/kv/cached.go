package kv

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cached is a read-through, write-through cache in front of another Store.
type Cached struct {
	next  Store
	cache *cache.Cache
}

// NewCached wraps next. Entries expire after ttl; zero keeps them forever.
func NewCached(next Store, ttl time.Duration) *Cached {
	exp, cleanup := ttl, 2*ttl
	if ttl <= 0 {
		exp, cleanup = cache.NoExpiration, 0
	}
	return &Cached{next: next, cache: cache.New(exp, cleanup)}
}

type cachedValue struct {
	data []byte
	ok   bool
}

func (c *Cached) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if v, found := c.cache.Get(key); found {
		cv := v.(cachedValue)
		return append([]byte(nil), cv.data...), cv.ok, nil
	}
	data, ok, err := c.next.Load(ctx, key)
	if err != nil {
		return nil, false, err
	}
	c.cache.SetDefault(key, cachedValue{data: append([]byte(nil), data...), ok: ok})
	return data, ok, nil
}

func (c *Cached) Save(ctx context.Context, key string, value []byte) error {
	if err := c.next.Save(ctx, key, value); err != nil {
		c.cache.Delete(key)
		return err
	}
	c.cache.SetDefault(key, cachedValue{data: append([]byte(nil), value...), ok: true})
	return nil
}

func (c *Cached) Close() error {
	c.cache.Flush()
	return c.next.Close()
}
