package enrichment

import "sync"

// attributeSet is the set of enrichment attributes computed for one span
// start. Cached sets are applied as-is on later spans sharing the same
// context, so only values that are stable for the life of the context belong
// in one.
type attributeSet map[string]interface{}

// contextCache maps context identities to their computed attribute sets.
// Eviction is a FIFO-style trim, not strict LRU: once the bound is exceeded
// the oldest 20% of entries are dropped in one sweep. The cache is advisory —
// losing an entry costs a recomputation, never correctness. The trade-off is
// documented on Processor: a context rebound to new baggage without changing
// identity would serve stale attributes.
type contextCache struct {
	mu         sync.Mutex
	entries    map[uintptr]attributeSet
	order      []uintptr
	maxEntries int
}

func newContextCache(maxEntries int) *contextCache {
	return &contextCache{
		entries:    make(map[uintptr]attributeSet),
		maxEntries: maxEntries,
	}
}

// get returns the cached attribute set for key, if any.
func (c *contextCache) get(key uintptr) (attributeSet, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	attrs, ok := c.entries[key]
	return attrs, ok
}

// put stores the attribute set for key and trims the oldest fifth of the
// cache once the bound is exceeded. Returns the number of evicted entries.
func (c *contextCache) put(key uintptr, attrs attributeSet) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = attrs

	if len(c.entries) <= c.maxEntries {
		return 0
	}

	trim := c.maxEntries / 5
	if trim < 1 {
		trim = 1
	}
	for _, old := range c.order[:trim] {
		delete(c.entries, old)
	}
	c.order = append(c.order[:0], c.order[trim:]...)
	return trim
}

// size returns the current number of cached entries.
func (c *contextCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// clear drops every entry.
func (c *contextCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uintptr]attributeSet)
	c.order = nil
}
