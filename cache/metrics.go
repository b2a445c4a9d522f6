package cache

import (
	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	"github.com/Cloud-Foundations/tricorder/go/tricorder/units"
)

// RegisterMetrics publishes the cache counters and the compile latency
// distribution under dir.
func (c *Cache[K, V]) RegisterMetrics(dir *tricorder.DirectorySpec) error {
	counters := []struct {
		name    string
		value   func() uint64
		comment string
	}{
		{"hits", c.hits.Load, "number of lookups served from the cache"},
		{"misses", c.misses.Load, "number of lookups that missed"},
		{"compiles", c.compiles.Load, "number of compilations"},
		{"evictions", c.evictions.Load, "number of entries evicted"},
		{"entries", func() uint64 { return uint64(c.lru.Len()) }, "number of cached entries"},
	}
	for _, m := range counters {
		if err := dir.RegisterMetric(m.name, m.value, units.None, m.comment); err != nil {
			return err
		}
	}
	if err := dir.RegisterMetric("compile-time", c.compileTime, units.Millisecond,
		"time spent compiling missed entries"); err != nil {
		return err
	}
	c.registered.Store(true)
	return nil
}
