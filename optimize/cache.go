package optimize

import (
	"sync"

	"github.com/canvas-contracts/go-canvas/graph"
)

// Cache memoizes optimization results keyed by graph fingerprint.
// Entries persist until Clear; there is no TTL and no eviction, which
// suits the editor's workflow of re-analyzing a handful of open graphs.
// All methods are safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	cache  map[string]*Result
	hits   int64
	misses int64
}

// NewCache creates an empty result cache.
func NewCache() *Cache {
	return &Cache{cache: make(map[string]*Result)}
}

// Get retrieves the cached result for the graph, or nil.
func (c *Cache) Get(g *graph.Graph) *Result {
	key := g.Fingerprint()

	c.mu.Lock()
	defer c.mu.Unlock()

	if result, ok := c.cache[key]; ok {
		c.hits++
		return result
	}
	c.misses++
	return nil
}

// Put stores a result for the graph.
func (c *Cache) Put(g *graph.Graph, result *Result) {
	key := g.Fingerprint()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = result
}

// GetOrCompute retrieves from cache or computes and caches the result.
// Two callers racing on the same missing key may both compute; the
// computation is pure, so the duplicate work is harmless.
func (c *Cache) GetOrCompute(g *graph.Graph, compute func() *Result) *Result {
	if result := c.Get(g); result != nil {
		return result
	}

	result := compute()
	c.Put(g, result)
	return result
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*Result)
}

// Size returns the current number of cached entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Stats reports cache effectiveness.
type Stats struct {
	Size    int
	Hits    int64
	Misses  int64
	HitRate float64
}

// Stats returns a snapshot of cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return Stats{
		Size:    len(c.cache),
		Hits:    c.hits,
		Misses:  c.misses,
		HitRate: hitRate,
	}
}
