package jscompat

import "github.com/coregx/jscompat/meta"

// Regexp is a compiled dialect pattern, shared through the engine cache.
//
// A Regexp is immutable and safe for concurrent use.
type Regexp struct {
	engine *meta.Engine
}

// Source returns the dialect source of the pattern.
func (re *Regexp) Source() string {
	return re.engine.Source()
}

// Flags returns the pattern flags.
func (re *Regexp) Flags() Flags {
	return re.engine.Flags()
}

// Global reports whether the global flag is set.
func (re *Regexp) Global() bool {
	return re.engine.Flags().Has(Global)
}

// HostSource returns the transpiled source given to the host engine.
func (re *Regexp) HostSource() string {
	return re.engine.HostSource()
}

// NumSubexp returns the number of capturing groups in the pattern.
func (re *Regexp) NumSubexp() int {
	return re.engine.NumSubexp()
}

// Strategy returns the searcher selected for the pattern.
func (re *Regexp) Strategy() Strategy {
	return re.engine.Strategy()
}

// Err returns the *CompileError that made the pattern never match, or nil.
func (re *Regexp) Err() error {
	return re.engine.Err()
}

// SearchStats returns the search counters of the pattern.
func (re *Regexp) SearchStats() meta.Stats {
	return re.engine.Stats()
}

// String returns the pattern in literal form, e.g. "/a+/gi".
func (re *Regexp) String() string {
	return "/" + re.engine.Source() + "/" + re.engine.Flags().String()
}
