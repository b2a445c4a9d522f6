package jscompat

import "github.com/coregx/jscompat/meta"

// MatchState is the legacy match state of a realm: the values read back
// through RegExp.lastMatch, RegExp.$1 to RegExp.$9, RegExp.lastParen,
// RegExp.leftContext, RegExp.rightContext and RegExp.input.
type MatchState struct {
	LastMatch string
	// Parens holds groups 1 to 9. A group that did not participate, or that
	// the pattern does not have, is "".
	Parens       [9]string
	LastParen    string
	LeftContext  string
	RightContext string
	Input        string
}

// Realm is one scripting execution context. It holds the match state that
// the operations of that context update.
//
// A Realm is not safe for concurrent use; give each goroutine its own.
type Realm struct {
	state MatchState
}

// NewRealm returns a realm with an empty match state.
func NewRealm() *Realm {
	return &Realm{}
}

// State returns a copy of the match state.
func (r *Realm) State() MatchState {
	return r.state
}

// Paren returns RegExp.$n for n in 1..9, and "" for any other n.
func (r *Realm) Paren(n int) string {
	if n < 1 || n > len(r.state.Parens) {
		return ""
	}
	return r.state.Parens[n-1]
}

// Reset clears the match state.
func (r *Realm) Reset() {
	r.state = MatchState{}
}

// record replaces the match state with that of m. A nil realm records
// nothing.
func (r *Realm) record(m *meta.Match) {
	if r == nil {
		return
	}
	s := MatchState{
		LastMatch:    m.String(),
		LeftContext:  m.Before(),
		RightContext: m.After(),
		Input:        m.Input().Text(),
	}
	n := m.NumGroups()
	for i := 1; i <= n && i <= len(s.Parens); i++ {
		s.Parens[i-1], _ = m.Group(i)
	}
	if n > 0 {
		s.LastParen, _ = m.Group(n)
	}
	r.state = s
}
