package translation

import "sync"

// Cache maps (target language, source string) to a completed translation.
// It is scoped to one run, populated only on success, and safe for
// concurrent use by the dispatcher's workers.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]string
}

type cacheKey struct {
	lang   string
	source string
}

// NewCache creates an empty run-scoped cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]string)}
}

// Get retrieves a cached translation.
func (c *Cache) Get(lang, source string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[cacheKey{lang, source}]
	return v, ok
}

// Put stores a successful translation.
func (c *Cache) Put(lang, source, translated string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{lang, source}] = translated
}

// Len returns the number of cached translations.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
