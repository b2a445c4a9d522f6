// Package literal detects dialect patterns that are nothing but a set of
// alternative literal strings and searches for them without a regex engine.
//
// Key concepts:
//   - A Literal is one alternative, already unescaped to the bytes it matches
//   - A Seq is the ordered set of alternatives of one pattern (/foo|bar/)
//   - A Searcher finds the leftmost occurrence of any literal of a Seq
//
// Only infix-free sequences are searched this way. When no literal occurs
// inside another, at most one alternative can match at a given position and
// the earliest-ending match is also the leftmost one, so the alternation
// order of the pattern cannot change the result.
package literal

import "bytes"

// Literal is one alternative of a literal alternation.
//
// Example:
//   - Pattern /foo|b\.r/ gives Literal{"foo"} and Literal{"b.r"}
type Literal struct {
	// Bytes is the UTF-8 text the alternative matches.
	Bytes []byte
}

// NewLiteral creates a Literal from b.
//
// Example:
//
//	lit := literal.NewLiteral([]byte("hello"))
//	fmt.Println(lit.Len()) // Output: 5
func NewLiteral(b []byte) Literal {
	return Literal{Bytes: b}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a debugging representation: "literal{bytes}".
func (l Literal) String() string {
	return "literal{" + string(l.Bytes) + "}"
}

// Seq is the ordered list of alternatives of a literal alternation.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo")),
//	    literal.NewLiteral([]byte("bar")),
//	)
//	fmt.Println(seq.Len(), seq.InfixFree()) // Output: 2 true
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at index i.
// Panics if i is out of range.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty reports whether the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// Strings returns the literals as strings, in pattern order.
func (s *Seq) Strings() []string {
	out := make([]string, s.Len())
	for i := range out {
		out[i] = string(s.literals[i].Bytes)
	}
	return out
}

// InfixFree reports whether no literal occurs inside another one.
// Duplicates count as infixes and an empty literal occurs in everything.
// For an infix-free sequence the match that ends first is also the one that
// starts first, which is what Aho-Corasick reports.
//
// Example:
//
//	literal.NewSeq(literal.NewLiteral([]byte("abcd")), literal.NewLiteral([]byte("bc"))).InfixFree()
//	// false: in "abcd" the automaton finds "bc" before "abcd" ends
func (s *Seq) InfixFree() bool {
	for i := 0; i < s.Len(); i++ {
		if s.literals[i].Len() == 0 {
			return false
		}
		for j := 0; j < s.Len(); j++ {
			if i != j && bytes.Contains(s.literals[j].Bytes, s.literals[i].Bytes) {
				return false
			}
		}
	}
	return true
}

// LongestCommonPrefix returns the longest prefix shared by every literal.
// Returns an empty slice for an empty sequence.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		n := 0
		for n < len(prefix) && n < len(lit.Bytes) && prefix[n] == lit.Bytes[n] {
			n++
		}
		prefix = prefix[:n]
	}
	return prefix
}
