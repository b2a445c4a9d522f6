package jscompat

import (
	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	"github.com/Cloud-Foundations/tricorder/go/tricorder/units"
)

func (e *Engine) registerMetrics(path string) error {
	dir, err := tricorder.RegisterDirectory(path)
	if err != nil {
		return err
	}
	cacheDir, err := dir.RegisterDirectory("cache")
	if err != nil {
		return err
	}
	if err := e.cache.RegisterMetrics(cacheDir); err != nil {
		return err
	}
	if err := dir.RegisterMetric("fallbacks", e.fallbacks.Load, units.None,
		"number of operations rerun on the fallback engine"); err != nil {
		return err
	}
	if err := dir.RegisterMetric("fallback-failures", e.fallbackFailures.Load,
		units.None, "number of fallback reruns that failed"); err != nil {
		return err
	}
	return dir.RegisterMetric("never-matching", e.neverMatching.Load,
		units.None, "number of patterns the host engine rejected")
}
