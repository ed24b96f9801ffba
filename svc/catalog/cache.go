package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/storefront/pkg/cache"
	"github.com/dmitrymomot/storefront/pkg/redis"
)

// Cache holds products keyed by id, slug or code lookups.
type Cache interface {
	Get(ctx context.Context, key string) (*Product, bool)
	Set(ctx context.Context, key string, p *Product) error
	Delete(ctx context.Context, key string) error
}

// NoOpCache disables caching.
type NoOpCache struct{}

func (NoOpCache) Get(context.Context, string) (*Product, bool) { return nil, false }

func (NoOpCache) Set(context.Context, string, *Product) error { return nil }

func (NoOpCache) Delete(context.Context, string) error { return nil }

// LRUCache keeps products in process memory.
type LRUCache struct {
	lru *cache.LRU[string, Product]
}

func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	return &LRUCache{lru: cache.New(size, cache.WithTTL[string, Product](ttl))}
}

func (c *LRUCache) Get(_ context.Context, key string) (*Product, bool) {
	p, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	p = p.clone()
	return &p, true
}

func (c *LRUCache) Set(_ context.Context, key string, p *Product) error {
	if p == nil {
		return nil
	}
	c.lru.Put(key, p.clone())
	return nil
}

func (c *LRUCache) Delete(_ context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// RedisCache stores JSON-encoded products in redis.
type RedisCache struct {
	store *redis.Store
	ttl   time.Duration
}

func NewRedisCache(store *redis.Store, ttl time.Duration) *RedisCache {
	return &RedisCache{store: store, ttl: ttl}
}

// Get treats decode and transport failures as misses.
func (c *RedisCache) Get(ctx context.Context, key string) (*Product, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil || data == nil {
		return nil, false
	}
	var p Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *RedisCache) Set(ctx context.Context, key string, p *Product) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Join(ErrCache, err)
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		return errors.Join(ErrCache, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.store.Delete(ctx, key); err != nil {
		return errors.Join(ErrCache, err)
	}
	return nil
}
