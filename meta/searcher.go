package meta

import (
	"regexp"
	"strings"

	"github.com/coregx/jscompat/literal"
	"github.com/dlclark/regexp2"
)

// Searcher finds the leftmost match at or after a code point position.
//
// at may equal in.Len(): an empty match at the end of the subject is a
// valid result. A nil match with a nil error means no match.
type Searcher interface {
	FindAt(in *Input, at int) (*Match, error)
	NumSubexp() int
	Strategy() Strategy
}

// regexp2Searcher runs a regexp2 pattern, in either host or ECMAScript mode.
type regexp2Searcher struct {
	re       *regexp2.Regexp
	groups   int
	strategy Strategy
}

func newRegexp2Searcher(re *regexp2.Regexp, groups int, s Strategy) *regexp2Searcher {
	return &regexp2Searcher{re: re, groups: groups, strategy: s}
}

func (s *regexp2Searcher) FindAt(in *Input, at int) (m *Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, err = nil, catastrophic(s.strategy, r)
		}
	}()
	rm, err := s.re.FindRunesMatchStartingAt(in.Runes(), at)
	if err != nil {
		// regexp2 only fails a search on timeout.
		return nil, catastrophic(s.strategy, err)
	}
	if rm == nil {
		return nil, nil
	}
	spans := make([]int, 2*(s.groups+1))
	spans[0], spans[1] = rm.Index, rm.Index+rm.Length
	for n := 1; n <= s.groups; n++ {
		spans[2*n], spans[2*n+1] = -1, -1
		g := rm.GroupByNumber(n)
		if g == nil || len(g.Captures) == 0 {
			continue
		}
		spans[2*n], spans[2*n+1] = g.Index, g.Index+g.Length
	}
	return NewMatch(in, spans), nil
}

func (s *regexp2Searcher) NumSubexp() int     { return s.groups }
func (s *regexp2Searcher) Strategy() Strategy { return s.strategy }

// re2Searcher runs an RE2-safe dialect pattern on package regexp. RE2-safe
// patterns have no ^ and no word boundaries, so searching from a later
// position is the same as searching the remaining text.
type re2Searcher struct {
	re     *regexp.Regexp
	groups int
}

func (s *re2Searcher) FindAt(in *Input, at int) (*Match, error) {
	off := in.ByteOffset(at)
	loc := s.re.FindStringSubmatchIndex(in.Text()[off:])
	if loc == nil {
		return nil, nil
	}
	spans := make([]int, 2*(s.groups+1))
	for i := range spans {
		spans[i] = -1
		if i < len(loc) && loc[i] >= 0 {
			spans[i] = in.RuneIndex(off + loc[i])
		}
	}
	return NewMatch(in, spans), nil
}

func (s *re2Searcher) NumSubexp() int     { return s.groups }
func (s *re2Searcher) Strategy() Strategy { return UseRE2 }

// literalSearcher adapts an Aho-Corasick searcher.
type literalSearcher struct {
	s *literal.Searcher
}

func (s *literalSearcher) FindAt(in *Input, at int) (*Match, error) {
	start, end, ok := s.s.Find(in.Bytes(), in.ByteOffset(at))
	if !ok {
		return nil, nil
	}
	return NewMatch(in, []int{in.RuneIndex(start), in.RuneIndex(end)}), nil
}

func (s *literalSearcher) NumSubexp() int     { return 0 }
func (s *literalSearcher) Strategy() Strategy { return UseLiteral }

// neverSearcher never matches.
type neverSearcher struct {
	groups int
}

func (neverSearcher) FindAt(*Input, int) (*Match, error) { return nil, nil }
func (s neverSearcher) NumSubexp() int                   { return s.groups }
func (neverSearcher) Strategy() Strategy                 { return UseNever }

// re2SafeEscapes are the letter escapes that mean the same in the dialect and
// in RE2. RE2's \s lacks \v and the Unicode spaces.
const re2SafeEscapes = "dDwWnrtfv"

// re2Safe reports whether RE2 reads a dialect pattern exactly as the dialect
// does, up to details of case folding. It is conservative: anchors, word
// boundaries, the dot, back-references, lookarounds, named groups and every
// escape RE2 reads differently make a pattern unsafe.
func re2Safe(source string) bool {
	inClass := false
	for i := 0; i < len(source); i++ {
		c := source[i]
		switch c {
		case '\\':
			i++
			if i >= len(source) {
				return false
			}
			e := source[i]
			switch {
			case strings.IndexByte(re2SafeEscapes, e) >= 0:
			case e == 'x':
				if i+2 >= len(source) || !isHexByte(source[i+1]) || !isHexByte(source[i+2]) {
					return false
				}
				i += 2
			case e < 0x80 && !isAlnumByte(e):
			default:
				return false
			}
		case '^':
			if !inClass || source[i-1] != '[' {
				return false
			}
		case '.':
			if !inClass {
				return false
			}
		case '[':
			if inClass {
				return false
			}
			inClass = true
			j := i + 1
			if j < len(source) && source[j] == '^' {
				j++
			}
			if j >= len(source) || source[j] == ']' || source[j] == ':' {
				return false
			}
		case ']':
			inClass = false
		case '(':
			if !inClass && i+1 < len(source) && source[i+1] == '?' {
				if i+2 >= len(source) || source[i+2] != ':' {
					return false
				}
			}
		}
	}
	return !inClass
}

func isHexByte(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isAlnumByte(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
