package store

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/go-pkgz/lcw/v2"
)

// cacheSep separates scope and key in cache keys. Client ids never contain it.
const cacheSep = "\x00"

// Cached wraps a store Interface with a loading cache and satisfies the Interface itself.
// Cache is populated on reads via loader function, invalidated on writes.
// Misses (ErrNotFound) are not cached.
type Cached struct {
	store  Interface
	cache  lcw.LoadingCache[string]
	writes atomic.Uint64 // bumped by every write, lets Get detect a load racing with a write
}

// NewCached creates a new cached store wrapper.
// maxKeys sets the maximum number of entries in the cache.
func NewCached(store Interface, maxKeys int) (*Cached, error) {
	cache, err := lcw.NewLruCache(lcw.NewOpts[string]().MaxKeys(maxKeys))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cached{store: store, cache: cache}, nil
}

// Get retrieves the value for a key, using cache with load-through.
func (c *Cached) Get(ctx context.Context, scope, key string) (string, error) {
	ck := cacheKey(scope, key)
	before := c.writes.Load()
	val, err := c.cache.Get(ck, func() (string, error) {
		v, loadErr := c.store.Get(ctx, scope, key)
		if loadErr != nil {
			return "", fmt.Errorf("load from store: %w", loadErr)
		}
		return v, nil
	})
	if err != nil {
		return "", fmt.Errorf("cache get: %w", err)
	}
	if c.writes.Load() != before {
		// a write happened while loading, the cached value may predate it
		c.invalidate(ck)
	}
	return val, nil
}

// Set stores a value and invalidates the cache entry.
func (c *Cached) Set(ctx context.Context, scope, key, value string) error {
	err := c.store.Set(ctx, scope, key, value)
	c.writes.Add(1)
	c.invalidate(cacheKey(scope, key))
	if err != nil {
		return fmt.Errorf("store set: %w", err)
	}
	return nil
}

// Delete removes a key and invalidates the cache entry.
func (c *Cached) Delete(ctx context.Context, scope, key string) error {
	// invalidate regardless of error, key might have been cached
	err := c.store.Delete(ctx, scope, key)
	c.writes.Add(1)
	c.invalidate(cacheKey(scope, key))
	if err != nil {
		return fmt.Errorf("store delete: %w", err)
	}
	return nil
}

// List returns all items of scope from the underlying store (not cached).
func (c *Cached) List(ctx context.Context, scope string) ([]Item, error) {
	items, err := c.store.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("store list: %w", err)
	}
	return items, nil
}

// Clear removes all keys of scope and drops their cache entries.
func (c *Cached) Clear(ctx context.Context, scope string) (int, error) {
	n, err := c.store.Clear(ctx, scope)
	c.writes.Add(1)
	prefix := scope + cacheSep
	c.cache.Invalidate(func(k string) bool { return strings.HasPrefix(k, prefix) })
	if err != nil {
		return 0, fmt.Errorf("store clear: %w", err)
	}
	return n, nil
}

// Close closes the cache and underlying store.
func (c *Cached) Close() error {
	_ = c.cache.Close()
	if err := c.store.Close(); err != nil {
		return fmt.Errorf("store close: %w", err)
	}
	return nil
}

// Stats returns cache statistics.
func (c *Cached) Stats() lcw.CacheStat {
	return c.cache.Stat()
}

func (c *Cached) invalidate(ck string) {
	c.cache.Invalidate(func(k string) bool { return k == ck })
}

func cacheKey(scope, key string) string {
	return scope + cacheSep + key
}
