package jscompat

import (
	"fmt"
	"strings"

	"github.com/coregx/jscompat/meta"
	"github.com/coregx/jscompat/replace"
)

// Operation is a string operation backed by a pattern.
type Operation int

const (
	// OpMatch is String.prototype.match.
	OpMatch Operation = iota
	// OpSearch is String.prototype.search.
	OpSearch
	// OpReplace is String.prototype.replace.
	OpReplace
)

// String returns the dialect name of the operation.
func (op Operation) String() string {
	switch op {
	case OpMatch:
		return "match"
	case OpSearch:
		return "search"
	case OpReplace:
		return "replace"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// Submatch is one element of a match result.
type Submatch struct {
	Text string
	// Matched is false for a group that did not participate, which the
	// dialect reports as undefined.
	Matched bool
}

// String returns the text, or "undefined" for a group that did not
// participate.
func (s Submatch) String() string {
	if !s.Matched {
		return "undefined"
	}
	return s.Text
}

// MatchResult is the value of a successful match.
//
// For a global pattern only Global and Matches are set: Matches holds every
// whole match in order. Otherwise Groups holds the whole match followed by
// each capturing group, and Index and Input carry the match position and
// the subject.
type MatchResult struct {
	Global  bool
	Matches []string

	Groups []Submatch
	Index  int
	Input  string
}

// Strings returns the result as the dialect array: the whole matches of a
// global match, or the groups of a single match with "undefined" for the
// ones that did not participate.
func (r *MatchResult) Strings() []string {
	if r.Global {
		return r.Matches
	}
	out := make([]string, len(r.Groups))
	for i, g := range r.Groups {
		out[i] = g.String()
	}
	return out
}

// Match runs subject.match(re). It returns nil when nothing matches. realm
// receives the state of the last match and may be nil.
func (e *Engine) Match(realm *Realm, subject string, re *Regexp) *MatchResult {
	in := meta.NewInput(subject)
	ms := e.findAll(re, in, re.Global())
	if len(ms) == 0 {
		return nil
	}
	realm.record(ms[len(ms)-1])

	if re.Global() {
		res := &MatchResult{Global: true, Matches: make([]string, len(ms))}
		for i, m := range ms {
			res.Matches[i] = m.String()
		}
		return res
	}

	m := ms[0]
	res := &MatchResult{
		Groups: make([]Submatch, m.NumGroups()+1),
		Index:  m.Start(),
		Input:  subject,
	}
	for i := range res.Groups {
		text, ok := m.Group(i)
		res.Groups[i] = Submatch{Text: text, Matched: ok}
	}
	return res
}

// Search runs subject.search(re): the code point index of the first match,
// or -1. The global flag is ignored.
func (e *Engine) Search(realm *Realm, subject string, re *Regexp) int {
	ms := e.findAll(re, meta.NewInput(subject), false)
	if len(ms) == 0 {
		return -1
	}
	realm.record(ms[0])
	return ms[0].Start()
}

// Replace runs subject.replace(re, replacement). A global pattern replaces
// every match, any other pattern the first one.
func (e *Engine) Replace(realm *Realm, subject string, re *Regexp, replacement string) string {
	in := meta.NewInput(subject)
	ms := e.findAll(re, in, re.Global())
	if len(ms) == 0 {
		return subject
	}
	realm.record(ms[len(ms)-1])

	tmpl := replace.Parse(replacement)
	expand := tmpl.HasTokens()
	var b []byte
	last := 0
	for _, m := range ms {
		b = append(b, in.Slice(last, m.Start())...)
		if expand {
			b = tmpl.Expand(b, m, e.config.ExpandGroupZero)
		} else {
			b = append(b, replacement...)
		}
		last = m.End()
	}
	b = append(b, in.Slice(last, in.Len())...)
	return string(b)
}

// ReplaceString runs subject.replace(search, replacement) with a string
// search: only the first occurrence of search is replaced, and the template
// sees no capture groups. No realm state is recorded.
func (e *Engine) ReplaceString(subject, search, replacement string) string {
	i := strings.Index(subject, search)
	if i < 0 {
		return subject
	}
	m := stringMatch{subject: subject, start: i, end: i + len(search)}
	return subject[:i] + replace.Expand(replacement, m, e.config.ExpandGroupZero) + subject[m.end:]
}

// stringMatch is a match of a plain search string, in byte offsets.
type stringMatch struct {
	subject    string
	start, end int
}

func (m stringMatch) NumGroups() int { return 0 }

func (m stringMatch) Group(n int) (string, bool) {
	if n != 0 {
		return "", false
	}
	return m.subject[m.start:m.end], true
}

func (m stringMatch) Before() string { return m.subject[:m.start] }
func (m stringMatch) After() string  { return m.subject[m.end:] }

// Perform runs op the way the script engine dispatches it.
//
// target is a *Regexp or a string. For OpReplace, args[0] is the
// replacement (missing means "undefined") and a string target is searched
// literally. For OpMatch and OpSearch a string target is compiled as a
// pattern, with args[0] as its flags if present.
//
// The result is a *MatchResult (nil when nothing matched) for OpMatch, an
// int for OpSearch and a string for OpReplace. Errors report misuse only:
// ErrInvalidTarget, ErrInvalidOperation or a *FlagError.
func (e *Engine) Perform(realm *Realm, op Operation, subject string, target any, args ...string) (any, error) {
	switch op {
	case OpReplace:
		replacement := "undefined"
		if len(args) > 0 {
			replacement = args[0]
		}
		switch t := target.(type) {
		case *Regexp:
			return e.Replace(realm, subject, t, replacement), nil
		case string:
			return e.ReplaceString(subject, t, replacement), nil
		}
		return nil, fmt.Errorf("%w, got %T", ErrInvalidTarget, target)

	case OpMatch, OpSearch:
		re, err := e.coerce(target, args)
		if err != nil {
			return nil, err
		}
		if op == OpSearch {
			return e.Search(realm, subject, re), nil
		}
		return e.Match(realm, subject, re), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidOperation, op)
}

func (e *Engine) coerce(target any, args []string) (*Regexp, error) {
	switch t := target.(type) {
	case *Regexp:
		return t, nil
	case string:
		flags := ""
		if len(args) > 0 {
			flags = args[0]
		}
		return e.Compile(t, flags)
	}
	return nil, fmt.Errorf("%w, got %T", ErrInvalidTarget, target)
}

// findAll returns the first match of re in in, or every match when all is
// set. A catastrophic host failure reruns the whole scan on the fallback
// engine; if that fails as well the operation sees no match.
func (e *Engine) findAll(re *Regexp, in *meta.Input, all bool) []*meta.Match {
	ms, err := scan(re.engine.FindAt, in, all)
	if err == nil {
		return ms
	}
	e.fallbacks.Add(1)
	e.logger.Printf("%v: %v; rerunning on the fallback engine", re, err)
	fb, err := re.engine.Fallback()
	if err == nil {
		ms, err = scan(fb.FindAt, in, all)
	}
	if err != nil {
		e.fallbackFailures.Add(1)
		e.logger.Printf("%v: fallback failed: %v; treating as no match", re, err)
		return nil
	}
	return ms
}

// scan collects matches from position 0. An empty match advances the next
// search by one code point.
func scan(find func(*meta.Input, int) (*meta.Match, error), in *meta.Input, all bool) ([]*meta.Match, error) {
	var ms []*meta.Match
	for at := 0; at <= in.Len(); {
		m, err := find(in, at)
		if err != nil {
			return nil, err
		}
		if m == nil {
			break
		}
		ms = append(ms, m)
		if !all {
			break
		}
		at = m.End()
		if m.IsEmpty() {
			at++
		}
	}
	return ms, nil
}
