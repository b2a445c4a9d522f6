package transpile

// groupKind classifies an opening parenthesis.
type groupKind uint8

const (
	// groupCapture is a numbered group: "(" or a degenerate "(?X".
	groupCapture groupKind = iota
	// groupNonCapture is "(?:".
	groupNonCapture
	// groupLookaround is "(?=", "(?!", "(?<=" or "(?<!".
	groupLookaround
)

// subexp records the span of one group on the tape.
//
// start is the position just after the opening delimiter, end is the
// position of the closing ")". Both are kept current across tape edits by
// tracker.shift.
type subexp struct {
	kind     groupKind
	start    int
	end      int
	closed   bool
	optional bool // closing ")" is followed by "?"
	enhanced bool // already rewritten so it always participates
}

// tracker is an arena of subexpressions addressed by index.
//
// Every group ever opened stays in the arena. stack holds the indices of
// groups that are still open (innermost last), numbered holds the indices of
// capturing groups in parse order, so numbered[n-1] is group n.
type tracker struct {
	arena    []subexp
	stack    []int
	numbered []int
}

// open records a new group starting at pos.
func (tr *tracker) open(pos int, kind groupKind) {
	tr.arena = append(tr.arena, subexp{kind: kind, start: pos})
	idx := len(tr.arena) - 1
	tr.stack = append(tr.stack, idx)
	if kind == groupCapture {
		tr.numbered = append(tr.numbered, idx)
	}
}

// close pops the innermost open group. It returns false on an unbalanced ")".
func (tr *tracker) close(pos int, optional bool) bool {
	if len(tr.stack) == 0 {
		return false
	}
	idx := tr.stack[len(tr.stack)-1]
	tr.stack = tr.stack[:len(tr.stack)-1]
	s := &tr.arena[idx]
	s.end = pos
	s.closed = true
	s.optional = optional
	return true
}

// count returns the number of capturing groups opened so far.
func (tr *tracker) count() int {
	return len(tr.numbered)
}

// group returns capturing group n (1-based).
func (tr *tracker) group(n int) *subexp {
	return &tr.arena[tr.numbered[n-1]]
}

// shift adjusts every recorded span after an edit at pos that changed the
// tape length by delta. A start equal to pos belongs to the group whose
// opening delimiter precedes the edit and stays put; an end at pos moves
// with the text that follows it.
func (tr *tracker) shift(pos, delta int) {
	for i := range tr.arena {
		s := &tr.arena[i]
		if s.start > pos {
			s.start = max(s.start+delta, pos)
		}
		if s.closed && s.end >= pos {
			s.end = max(s.end+delta, pos)
		}
	}
}
