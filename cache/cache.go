// Package cache memoizes compiled patterns in a bounded, concurrency-safe
// LRU.
//
// Lookups that miss are deduplicated: when several goroutines ask for the
// same key at once, exactly one of them runs the compile function and the
// others wait for and share its result. Entries are immutable once stored.
package cache

import (
	"sync/atomic"
	"time"

	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// Key identifies a cache entry. String must be injective over the keys in
// use, it names the in-flight compilation of the key.
type Key interface {
	comparable
	String() string
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Compiles  uint64
	Evictions uint64
	Len       int
}

// Cache is a bounded LRU from K to V with single-flight compilation.
type Cache[K Key, V any] struct {
	lru   *lru.Cache[K, V]
	group singleflight.Group

	hits      atomic.Uint64
	misses    atomic.Uint64
	compiles  atomic.Uint64
	evictions atomic.Uint64

	// compileTime has no unit until it is registered and must not be
	// updated before that.
	compileTime *tricorder.CumulativeDistribution
	registered  atomic.Bool
}

var bucketer = tricorder.NewGeometricBucketer(0.1, 1e5)

// New creates a cache holding at most size entries.
func New[K Key, V any](size int) (*Cache[K, V], error) {
	c := &Cache[K, V]{
		compileTime: bucketer.NewCumulativeDistribution(),
	}
	l, err := lru.NewWithEvict[K, V](size, func(K, V) {
		c.evictions.Add(1)
	})
	if err != nil {
		return nil, err
	}
	c.lru = l
	return c, nil
}

// Get returns the cached value for key without compiling.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.lru.Get(key)
	if ok {
		c.hits.Add(1)
	}
	return v, ok
}

// GetOrCompute returns the value cached for key, calling compile on a miss.
// cached reports whether the value came from the cache, including a value
// computed concurrently by another caller. A compile error is returned to
// every waiting caller and nothing is stored.
func (c *Cache[K, V]) GetOrCompute(key K, compile func() (V, error)) (v V, cached bool, err error) {
	if v, ok := c.lru.Get(key); ok {
		c.hits.Add(1)
		return v, true, nil
	}
	c.misses.Add(1)

	hit := false
	res, err, shared := c.group.Do(key.String(), func() (interface{}, error) {
		// Another flight may have stored the key after our miss.
		if v, ok := c.lru.Peek(key); ok {
			hit = true
			return v, nil
		}
		start := time.Now()
		v, err := compile()
		if c.registered.Load() {
			c.compileTime.Add(time.Since(start))
		}
		c.compiles.Add(1)
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), shared || hit, nil
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}

// Purge drops every entry. Counters are kept.
func (c *Cache[K, V]) Purge() {
	c.lru.Purge()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Compiles:  c.compiles.Load(),
		Evictions: c.evictions.Load(),
		Len:       c.lru.Len(),
	}
}
