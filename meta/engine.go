// Package meta implements the meta-engine orchestrator.
//
// engine.go contains the Engine struct definition and core API methods.

package meta

import (
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"

	"github.com/dlclark/regexp2"
)

// Engine runs one compiled dialect pattern.
//
// The Engine:
//  1. Transpiles the dialect source for the host
//  2. Selects the strategy (literal, host, or never on host rejection)
//  3. Coordinates searches, reporting catastrophic host failures
//  4. Builds the dialect-native fallback searcher on first demand
//
// Thread safety: an Engine is immutable after Compile apart from its
// counters and the lazily built fallback, both of which are synchronized.
// Multiple goroutines may search the same Engine concurrently.
//
// Example:
//
//	engine := meta.Compile(`(a)(b)?\2`, 0, meta.DefaultConfig())
//	m, err := engine.FindAt(meta.NewInput("xab"), 0)
//	if err == nil && m != nil {
//	    println(m.String()) // "ab"
//	}
type Engine struct {
	// Statistics, updated atomically.
	// Kept first for 8-byte alignment of the uint64 fields on 32-bit platforms.
	stats Stats

	source string
	flags  Flags
	host   string
	groups int

	strategy Strategy
	searcher Searcher
	err      error

	config Config

	fallbackOnce sync.Once
	fallback     Searcher
	fallbackErr  error
}

// Stats tracks execution statistics for one Engine.
type Stats struct {
	// Searches counts searches on the primary searcher
	Searches uint64

	// Catastrophic counts primary searches that failed catastrophically
	Catastrophic uint64

	// FallbackSearches counts searches on the fallback searcher
	FallbackSearches uint64
}

// Source returns the dialect source the engine was compiled from.
func (e *Engine) Source() string {
	return e.source
}

// Flags returns the flags the engine was compiled with.
func (e *Engine) Flags() Flags {
	return e.flags
}

// HostSource returns the pattern given to the host, "(?!)" when the host
// rejected it and "" for literal searches.
func (e *Engine) HostSource() string {
	return e.host
}

// NumSubexp returns the number of capturing groups as the dialect numbers
// them.
func (e *Engine) NumSubexp() int {
	return e.groups
}

// Strategy returns the primary search strategy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Err returns the compile error that made the engine never match, or nil.
func (e *Engine) Err() error {
	return e.err
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Searches:         atomic.LoadUint64(&e.stats.Searches),
		Catastrophic:     atomic.LoadUint64(&e.stats.Catastrophic),
		FallbackSearches: atomic.LoadUint64(&e.stats.FallbackSearches),
	}
}

// FindAt returns the leftmost match at or after code point position at.
// The error, if any, is a *SearchError wrapping ErrCatastrophic.
func (e *Engine) FindAt(in *Input, at int) (*Match, error) {
	atomic.AddUint64(&e.stats.Searches, 1)
	m, err := e.searcher.FindAt(in, at)
	if err != nil {
		atomic.AddUint64(&e.stats.Catastrophic, 1)
	}
	return m, err
}

// Fallback returns the dialect-native searcher used to rerun an operation
// after a catastrophic failure. It is built on first call.
func (e *Engine) Fallback() (Searcher, error) {
	e.fallbackOnce.Do(func() {
		e.fallback, e.fallbackErr = e.buildFallback()
	})
	if e.fallbackErr != nil {
		return nil, e.fallbackErr
	}
	return countingSearcher{Searcher: e.fallback, n: &e.stats.FallbackSearches}, nil
}

func (e *Engine) buildFallback() (Searcher, error) {
	if e.strategy == UseLiteral || e.strategy == UseNever {
		return e.searcher, nil
	}
	if re2Safe(e.source) {
		expr := e.source
		if f := e.flags & (IgnoreCase | Multiline); f != 0 {
			expr = fmt.Sprintf("(?%s:%s)", f, expr)
		}
		if re, err := regexp.Compile(expr); err == nil {
			return &re2Searcher{re: re, groups: e.groups}, nil
		}
	}
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	if e.flags.Has(IgnoreCase) {
		opts |= regexp2.IgnoreCase
	}
	if e.flags.Has(Multiline) {
		opts |= regexp2.Multiline
	}
	re, err := compileRegexp2(e.source, opts)
	if err != nil {
		return nil, &CompileError{Pattern: e.source, Host: e.source, Err: err}
	}
	if e.config.FallbackTimeout > 0 {
		re.MatchTimeout = e.config.FallbackTimeout
	}
	return newRegexp2Searcher(re, e.groups, UseECMAScript), nil
}

// countingSearcher counts searches into n.
type countingSearcher struct {
	Searcher
	n *uint64
}

func (s countingSearcher) FindAt(in *Input, at int) (*Match, error) {
	atomic.AddUint64(s.n, 1)
	return s.Searcher.FindAt(in, at)
}
