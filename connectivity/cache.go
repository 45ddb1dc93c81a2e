package connectivity

import (
	"fmt"
	"strconv"
	"sync"
)

// Cache stores layer labelings. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get returns the ids stored under key and whether they were found.
	Get(key string) ([]int32, bool, error)

	// Put stores ids under key.
	Put(key string, ids []int32) error
}

// cacheKey identifies the labeling of layer k of a grid at a tolerance.
func cacheKey(fingerprint uint64, tol float64, k int) string {
	return fmt.Sprintf("faultblocks/%016x/%s/%d", fingerprint, strconv.FormatFloat(tol, 'g', -1, 64), k)
}

// MemoryCache is an in-process Cache.
type MemoryCache struct {
	mu     sync.RWMutex
	layers map[string][]int32
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{layers: make(map[string][]int32)}
}

func (c *MemoryCache) Get(key string) ([]int32, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids, ok := c.layers[key]
	if !ok {
		return nil, false, nil
	}
	return append([]int32(nil), ids...), true, nil
}

func (c *MemoryCache) Put(key string, ids []int32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers[key] = append([]int32(nil), ids...)
	return nil
}

// Len returns the number of cached layers.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.layers)
}
