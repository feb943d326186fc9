package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aretw0/timescript/pkg/domain"
)

// Cache implements ports.DocumentCache in memory.
// Entries are stored encoded so callers never share nodes with the cache.
// Safe for concurrent use.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewCache creates an empty in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get decodes the entry stored under key.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Compilation, error) {
	c.mu.RLock()
	data, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, domain.ErrCacheMiss
	}

	var out domain.Compilation
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode cached compilation: %w", err)
	}
	return &out, nil
}

// Put stores a copy of comp.
func (c *Cache) Put(ctx context.Context, key string, comp *domain.Compilation) error {
	data, err := json.Marshal(comp)
	if err != nil {
		return fmt.Errorf("failed to encode compilation: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

// Delete removes the entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
