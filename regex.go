// Package jscompat runs regular expressions written in a JavaScript-style
// dialect on Go regex engines, reproducing the dialect's observable
// behavior.
//
// Patterns are transpiled once into the syntax of the host engine
// (github.com/dlclark/regexp2) and cached. The match, search and replace
// operations then follow the dialect's conventions:
//   - Capture groups are numbered as the dialect numbers them
//   - The global flag iterates over all matches
//   - Replacement templates expand $$, $&, $`, $' and $n
//   - Every successful operation records the legacy match state
//     (RegExp.lastMatch, RegExp.$1 and friends) in a per-realm MatchState
//
// Nothing fails at this layer. A pattern the host rejects never matches and
// a search that makes the host backtrack catastrophically is rerun on a
// dialect-native fallback engine.
//
// Basic usage:
//
//	engine := jscompat.Default()
//	realm := jscompat.NewRealm()
//
//	re := engine.CompileRegExp(`(\w+)@(\w+)\.com`, jscompat.Global)
//	out := engine.Replace(realm, "bob@example.com", re, "$2:$1")
//	fmt.Println(out)                     // "example:bob"
//	fmt.Println(realm.State().Parens[0]) // "bob"
//
// Custom configuration:
//
//	config := jscompat.DefaultConfig()
//	config.MatchTimeout = 100 * time.Millisecond
//	engine, err := jscompat.New(config)
//
// Positions (MatchResult.Index, Search results) count Unicode code points.
package jscompat

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/coregx/jscompat/cache"
	"github.com/coregx/jscompat/meta"
)

// Config controls engine behavior. See meta.Config for the fields.
type Config = meta.Config

// Logger is the logging interface used by the engine. *log.Logger satisfies
// it.
type Logger = meta.Logger

// Flags is a set of pattern flags.
type Flags = meta.Flags

// Strategy identifies the searcher that runs a pattern.
type Strategy = meta.Strategy

// FlagError is returned by ParseFlags for an invalid flag string.
type FlagError = meta.FlagError

// CompileError is reported by Regexp.Err for a pattern the host rejected.
type CompileError = meta.CompileError

// Pattern flags.
const (
	Global     = meta.Global
	IgnoreCase = meta.IgnoreCase
	Multiline  = meta.Multiline
)

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// ParseFlags parses a flag string such as "gi".
func ParseFlags(s string) (Flags, error) {
	return meta.ParseFlags(s)
}

// patternKey identifies a compiled pattern. Flags never contain '/', so the
// last '/' of the string form separates source from flags.
type patternKey struct {
	source string
	flags  Flags
}

func (k patternKey) String() string {
	return "/" + k.source + "/" + k.flags.String()
}

// Engine compiles and runs dialect patterns. It owns the pattern cache
// shared by every realm that uses it.
//
// An Engine is safe for concurrent use. The Realm passed to each operation
// is not, and belongs to a single goroutine at a time.
type Engine struct {
	config Config
	logger Logger
	cache  *cache.Cache[patternKey, *Regexp]

	fallbacks        atomic.Uint64
	fallbackFailures atomic.Uint64
	neverMatching    atomic.Uint64
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Cache cache.Stats

	// Fallbacks counts operations rerun on the fallback engine.
	Fallbacks uint64

	// FallbackFailures counts reruns that failed too and degraded to no
	// match.
	FallbackFailures uint64

	// NeverMatching counts compiled patterns the host rejected.
	NeverMatching uint64
}

// New creates an Engine. It returns a *meta.ConfigError for an invalid
// config, or the metrics registration error when MetricsDirectory is set.
func New(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	c, err := cache.New[patternKey, *Regexp](config.CacheSize)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		config: config,
		logger: config.Log(),
		cache:  c,
	}
	if config.MetricsDirectory != "" {
		if err := e.registerMetrics(config.MetricsDirectory); err != nil {
			return nil, fmt.Errorf("jscompat: registering metrics: %w", err)
		}
	}
	return e, nil
}

// MustNew is like New but panics on error.
func MustNew(config Config) *Engine {
	e, err := New(config)
	if err != nil {
		panic(err)
	}
	return e
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns a process-wide Engine with the default configuration.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = MustNew(DefaultConfig())
	})
	return defaultEngine
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// CompileRegExp returns the compiled pattern for source and flags, from the
// cache when possible. It never fails: a pattern the host rejects is logged
// and compiled to one that never matches, with Err reporting the rejection.
//
// Concurrent calls with the same source and flags compile once and return
// the same *Regexp.
func (e *Engine) CompileRegExp(source string, flags Flags) *Regexp {
	key := patternKey{source: source, flags: flags}
	// The compile function cannot fail, so neither can the lookup.
	re, _, _ := e.cache.GetOrCompute(key, func() (*Regexp, error) {
		m := meta.Compile(source, flags, e.config)
		if m.Err() != nil {
			e.neverMatching.Add(1)
		}
		return &Regexp{engine: m}, nil
	})
	return re
}

// Compile parses flags and compiles source. The only error is a
// *FlagError.
func (e *Engine) Compile(source, flags string) (*Regexp, error) {
	f, err := ParseFlags(flags)
	if err != nil {
		return nil, err
	}
	return e.CompileRegExp(source, f), nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Cache:            e.cache.Stats(),
		Fallbacks:        e.fallbacks.Load(),
		FallbackFailures: e.fallbackFailures.Load(),
		NeverMatching:    e.neverMatching.Load(),
	}
}

// Purge empties the pattern cache.
func (e *Engine) Purge() {
	e.cache.Purge()
}
