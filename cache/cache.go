// Package cache provides memoization for rendered metadata documents.
// Rendering is deterministic in the record commitment and the playability
// state derived from the clock, so those two values make a complete cache
// key; any record mutation changes the commitment and invalidates the
// entry without explicit bookkeeping.
package cache

import (
	"sync"

	"github.com/provable-games/gametoken/commit"
	"github.com/provable-games/gametoken/metadata"
	"github.com/provable-games/gametoken/token"
)

// DocumentCache caches rendered metadata documents keyed by record
// commitment and play state.
type DocumentCache struct {
	mu        sync.RWMutex
	cache     map[key][]byte
	order     []key
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

type key struct {
	digest commit.Digest
	state  token.PlayState
}

// NewDocumentCache creates a cache with the specified maximum size.
// When the cache is full, oldest entries are evicted (FIFO).
// Set maxSize to 0 for unlimited cache.
func NewDocumentCache(maxSize int) *DocumentCache {
	return &DocumentCache{
		cache:   make(map[key][]byte),
		maxSize: maxSize,
	}
}

// Get retrieves a cached document for the given commitment and state.
// Returns nil if not found.
func (c *DocumentCache) Get(digest commit.Digest, state token.PlayState) []byte {
	k := key{digest, state}

	c.mu.Lock()
	defer c.mu.Unlock()

	if doc, ok := c.cache[k]; ok {
		c.hits++
		return doc
	}
	c.misses++
	return nil
}

// Put stores a document in the cache.
func (c *DocumentCache) Put(digest commit.Digest, state token.PlayState, doc []byte) {
	k := key{digest, state}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cache[k]; ok {
		c.cache[k] = doc
		return
	}

	// Evict if necessary (FIFO)
	if c.maxSize > 0 && len(c.cache) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.cache, oldest)
		c.evictions++
	}

	c.cache[k] = doc
	c.order = append(c.order, k)
}

// GetOrCompute retrieves from cache or computes and caches the result.
// Errors from compute are returned without caching.
func (c *DocumentCache) GetOrCompute(digest commit.Digest, state token.PlayState, compute func() ([]byte, error)) ([]byte, error) {
	if doc := c.Get(digest, state); doc != nil {
		return doc, nil
	}

	doc, err := compute()
	if err != nil {
		return nil, err
	}
	c.Put(digest, state, doc)
	return doc, nil
}

// Clear removes all entries from the cache.
func (c *DocumentCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[key][]byte)
	c.order = nil
}

// Size returns the current number of cached entries.
func (c *DocumentCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Stats returns cache statistics.
type Stats struct {
	Size      int
	MaxSize   int
	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64
}

// Stats returns cache statistics.
func (c *DocumentCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return Stats{
		Size:      len(c.cache),
		MaxSize:   c.maxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}

// CachedRenderer wraps metadata rendering with caching.
type CachedRenderer struct {
	opts  metadata.Options
	cache *DocumentCache
}

// NewCachedRenderer creates a renderer with built-in caching.
func NewCachedRenderer(opts metadata.Options, cacheSize int) *CachedRenderer {
	return &CachedRenderer{
		opts:  opts,
		cache: NewDocumentCache(cacheSize),
	}
}

// Render produces the metadata document for a record, serving repeated
// requests for an unchanged record from cache.
func (r *CachedRenderer) Render(rec *token.Record, now uint64) ([]byte, error) {
	digest := commit.Record(rec)
	state := rec.Lifecycle.StateAt(now)
	return r.cache.GetOrCompute(digest, state, func() ([]byte, error) {
		return metadata.Render(rec, now, r.opts)
	})
}

// Cache returns the underlying cache for inspection.
func (r *CachedRenderer) Cache() *DocumentCache {
	return r.cache
}

// ClearCache clears the cache.
func (r *CachedRenderer) ClearCache() {
	r.cache.Clear()
}
