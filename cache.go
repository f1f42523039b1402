package storyframe

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/eringen/storyframe/source"
)

// ListCache is an in-memory cache of the full preview list payload with TTL.
// Smaller limits are served by trimming the cached list.
type ListCache struct {
	mu      sync.RWMutex
	payload []byte
	fetched time.Time
	ttl     time.Duration
	src     source.Source
	now     func() time.Time
}

// NewListCache creates a ListCache backed by src.
func NewListCache(src source.Source, ttl time.Duration) *ListCache {
	return &ListCache{src: src, ttl: ttl, now: time.Now}
}

func (c *ListCache) valid() bool {
	return c.payload != nil && c.now().Sub(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ListCache) Invalidate() {
	c.mu.Lock()
	c.payload = nil
	c.mu.Unlock()
}

// List returns the cached preview payload, loading it when stale. It tries a
// read lock first and only takes the write lock to reload.
func (c *ListCache) List(ctx context.Context, limit int) ([]byte, error) {
	c.mu.RLock()
	if c.valid() {
		payload := c.payload
		c.mu.RUnlock()
		return source.Truncate(payload, limit), nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		payload, err := c.src.List(ctx, 0)
		if err != nil {
			return nil, err
		}
		c.payload = payload
		c.fetched = c.now()
	}
	return source.Truncate(c.payload, limit), nil
}

// Document passes through to the source; documents are cached by
// DocumentCache.
func (c *ListCache) Document(ctx context.Context, slug string) ([]byte, error) {
	return c.src.Document(ctx, slug)
}

// DocumentCache keeps recently rendered document payloads in a bounded LRU
// whose entries expire after the TTL. Misses (ErrNotFound) are not cached.
type DocumentCache struct {
	src source.Source
	lru *expirable.LRU[string, []byte]
}

// NewDocumentCache wraps src with an LRU of size entries.
func NewDocumentCache(src source.Source, size int, ttl time.Duration) *DocumentCache {
	return &DocumentCache{
		src: src,
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

// Document returns the payload for slug, from cache when present.
func (c *DocumentCache) Document(ctx context.Context, slug string) ([]byte, error) {
	if payload, ok := c.lru.Get(slug); ok {
		return payload, nil
	}
	payload, err := c.src.Document(ctx, slug)
	if err != nil {
		return nil, err
	}
	c.lru.Add(slug, payload)
	return payload, nil
}

// List passes through to the source.
func (c *DocumentCache) List(ctx context.Context, limit int) ([]byte, error) {
	return c.src.List(ctx, limit)
}

// Purge drops every cached document.
func (c *DocumentCache) Purge() {
	c.lru.Purge()
}

// Len reports the number of cached documents.
func (c *DocumentCache) Len() int {
	return c.lru.Len()
}

// cachedSource combines the list and document caches behind source.Source.
type cachedSource struct {
	lists *ListCache
	docs  *DocumentCache
}

func (s cachedSource) Document(ctx context.Context, slug string) ([]byte, error) {
	return s.docs.Document(ctx, slug)
}

func (s cachedSource) List(ctx context.Context, limit int) ([]byte, error) {
	return s.lists.List(ctx, limit)
}
