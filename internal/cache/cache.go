// Package cache provides thread-safe generic caching for rendered
// content, syntax CSS, and static asset hashes.
package cache

import "sync"

type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.items[key]
	return val, ok
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]V)
}

func (c *Cache[K, V]) SetTo(items map[K]V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
}

// Rendered post bodies, keyed by content hash and syntax theme so a
// collection change or a theme switch misses cleanly.
var renderedPostCache = NewCache[string, []byte]()

func GetRenderedPost(contentHash, syntaxTheme string) ([]byte, bool) {
	return renderedPostCache.Get(contentHash + ":" + syntaxTheme)
}

func SetRenderedPost(contentHash, syntaxTheme string, html []byte) {
	renderedPostCache.Set(contentHash+":"+syntaxTheme, html)
}

func ClearRenderedPostCache() {
	renderedPostCache.Clear()
}
