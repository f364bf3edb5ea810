package modular

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"github.com/agbru/modcalc/internal/bignum"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

// DefaultCacheSize is the number of Montgomery contexts kept by the default
// cache.
const DefaultCacheSize = 128

// ContextCache memoizes Montgomery contexts per modulus with least-recently
// used eviction. It is safe for concurrent use.
type ContextCache struct {
	contexts *lru.Cache
	hits     atomic.Uint64
	misses   atomic.Uint64
}

// CacheStats is a snapshot of ContextCache counters.
type CacheStats struct {
	Hits   uint64
	Misses uint64
	Len    int
}

// NewContextCache creates a cache holding up to size contexts.
func NewContextCache(size int) (*ContextCache, error) {
	if size <= 0 {
		return nil, apperrors.NewArithmeticError("context_cache", apperrors.ErrInvalidInput, "size must be positive, got %d", size)
	}
	l, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &ContextCache{contexts: l}, nil
}

// Get returns the Montgomery context for m, building it on a miss. Moduli
// without a Montgomery form are not cached; their error is returned as is.
func (c *ContextCache) Get(m bignum.Int) (*Montgomery, error) {
	key := m.String()
	if v, ok := c.contexts.Get(key); ok {
		c.hits.Add(1)
		return v.(*Montgomery), nil
	}
	c.misses.Add(1)
	mt, err := NewMontgomery(m)
	if err != nil {
		return nil, err
	}
	c.contexts.Add(key, mt)
	return mt, nil
}

// Stats returns the current counters.
func (c *ContextCache) Stats() CacheStats {
	return CacheStats{Hits: c.hits.Load(), Misses: c.misses.Load(), Len: c.contexts.Len()}
}

// Purge drops every cached context.
func (c *ContextCache) Purge() { c.contexts.Purge() }

var (
	defaultCache     atomic.Pointer[ContextCache]
	defaultCacheOnce sync.Once
)

// DefaultCache returns the process-wide cache used by Pow.
func DefaultCache() *ContextCache {
	defaultCacheOnce.Do(func() {
		if defaultCache.Load() == nil {
			c, _ := NewContextCache(DefaultCacheSize)
			defaultCache.CompareAndSwap(nil, c)
		}
	})
	return defaultCache.Load()
}

// SetDefaultCacheSize replaces the default cache with an empty one of the
// given size.
func SetDefaultCacheSize(size int) error {
	c, err := NewContextCache(size)
	if err != nil {
		return err
	}
	defaultCacheOnce.Do(func() {})
	defaultCache.Store(c)
	return nil
}
