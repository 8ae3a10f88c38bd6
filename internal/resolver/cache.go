package resolver

import "sync"

// Cache key prefixes distinguish the two single-field prompt kinds so the same
// question never collides across prompt templates.
const (
	SubjectivePrefix = "subjective:"
	InferencePrefix  = "inference:"
	BulkPrefix       = "bulk:"
)

// Cache stores generative answers for the lifetime of a page. It survives
// across fill passes, is explicitly clearable, and is never persisted.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

// Get returns the cached answer for a key.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores an answer.
func (c *Cache) Put(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
}

// Len returns the number of cached answers.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
