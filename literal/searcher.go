package literal

import "github.com/coregx/ahocorasick"

// Searcher finds the leftmost occurrence of any literal of an infix-free
// sequence using an Aho-Corasick automaton.
//
// A Searcher is immutable after construction and safe for concurrent use.
type Searcher struct {
	auto *ahocorasick.Automaton
	seq  *Seq
}

// NewSearcher builds the automaton for seq.
func NewSearcher(seq *Seq) (*Searcher, error) {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Searcher{auto: auto, seq: seq}, nil
}

// Find returns the byte span of the leftmost match at or after at, or
// ok == false if there is none.
func (s *Searcher) Find(haystack []byte, at int) (start, end int, ok bool) {
	if at >= len(haystack) {
		return 0, 0, false
	}
	m := s.auto.Find(haystack, at)
	if m == nil {
		return 0, 0, false
	}
	return m.Start, m.End, true
}

// IsMatch reports whether any literal occurs in haystack.
func (s *Searcher) IsMatch(haystack []byte) bool {
	return s.auto.IsMatch(haystack)
}

// Seq returns the searched literals.
func (s *Searcher) Seq() *Seq {
	return s.seq
}
