package meta

import (
	"fmt"

	"github.com/coregx/jscompat/literal"
	"github.com/coregx/jscompat/transpile"
	"github.com/dlclark/regexp2"
)

// neverSource is the host pattern substituted for a rejected one.
const neverSource = "(?!)"

// Compile compiles a dialect pattern into an executable Engine.
//
// Steps:
//  1. Transpile the source for the host and count its groups
//  2. Use the literal searcher if the source is a literal alternation
//  3. Otherwise compile the host pattern with the "i" and "m" flags on
//     regexp2 in ECMAScript mode
//
// Compile never fails. A pattern the host rejects is logged and becomes an
// engine that never matches; Err reports the rejection.
//
// Example:
//
//	engine := meta.Compile(`[^]`, meta.Global, meta.DefaultConfig())
//	println(engine.HostSource()) // `[\s\S]`
func Compile(source string, flags Flags, config Config) *Engine {
	res := transpile.ConvertDetailed(source)
	e := &Engine{
		source: source,
		flags:  flags,
		host:   res.Host,
		groups: res.Groups,
		config: config,
	}

	if config.EnableLiteralSearch && !flags.Has(IgnoreCase) {
		if seq, ok := literal.Extract(source); ok {
			if s, err := literal.NewSearcher(seq); err == nil {
				e.strategy = UseLiteral
				e.searcher = &literalSearcher{s: s}
				e.host = ""
				return e
			}
		}
	}

	// ECMAScript reads \d, \w, \s, \b, $ and unset back-references the way
	// the dialect does.
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	if flags.Has(IgnoreCase) {
		opts |= regexp2.IgnoreCase
	}
	if flags.Has(Multiline) {
		opts |= regexp2.Multiline
	}
	re, err := compileRegexp2(res.Host, opts)
	if err != nil {
		e.err = &CompileError{Pattern: source, Host: res.Host, Err: err}
		config.Log().Printf("%v; using a pattern that never matches", e.err)
		e.strategy = UseNever
		e.searcher = neverSearcher{groups: res.Groups}
		e.host = neverSource
		return e
	}
	if config.MatchTimeout > 0 {
		re.MatchTimeout = config.MatchTimeout
	}
	e.strategy = UseHost
	e.searcher = newRegexp2Searcher(re, res.Groups, UseHost)
	return e
}

// compileRegexp2 compiles with regexp2, turning a parser panic into an
// error.
func compileRegexp2(expr string, opts regexp2.RegexOptions) (re *regexp2.Regexp, err error) {
	defer func() {
		if r := recover(); r != nil {
			re, err = nil, fmt.Errorf("compile panic: %v", r)
		}
	}()
	return regexp2.Compile(expr, opts)
}
