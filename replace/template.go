// Package replace expands replacement templates of the scripting dialect.
//
// Template syntax:
//   - $$: literal dollar sign
//   - $&: the whole match
//   - $`: the text before the match
//   - $': the text after the match
//   - $n, $nn: capture group n (1-99), resolved against the group count
//   - $0: the whole match when group zero expansion is enabled, else literal
//   - Everything else, including a lone $: literal text
//
// A group number is read greedily: the two-digit reading wins if that many
// groups exist, otherwise the one-digit reading is tried. A number that does
// not name a group is copied through literally.
package replace

import "strings"

// SegmentType indicates the type of segment in a replacement template.
type SegmentType int

const (
	// SegmentLiteral is literal text, including the "$" of "$$".
	SegmentLiteral SegmentType = iota
	// SegmentMatch is "$&".
	SegmentMatch
	// SegmentBefore is "$`".
	SegmentBefore
	// SegmentAfter is "$'".
	SegmentAfter
	// SegmentGroup is "$" followed by one or two digits. The digits are
	// resolved at expansion time because their meaning depends on the
	// group count.
	SegmentGroup
)

// Segment represents a parsed segment of a replacement template.
type Segment struct {
	Type    SegmentType
	Literal string // SegmentLiteral: the text
	Digits  string // SegmentGroup: one or two ASCII digits
}

// Template represents a parsed replacement template.
type Template struct {
	Original string
	Segments []Segment
}

// Match is the view of one match needed to expand a template.
type Match interface {
	// NumGroups returns the number of capturing groups, not counting the
	// whole match.
	NumGroups() int
	// Group returns the text of group n, with 0 being the whole match.
	// ok is false for a group that did not participate.
	Group(n int) (text string, ok bool)
	// Before returns the subject text before the match.
	Before() string
	// After returns the subject text after the match.
	After() string
}

// Parse splits a template into segments. Parsing never fails: anything that
// is not a recognized token is literal text.
func Parse(template string) *Template {
	t := &Template{
		Original: template,
		Segments: make([]Segment, 0, 4),
	}
	literalStart := 0
	flush := func(end int) {
		if end > literalStart {
			t.Segments = append(t.Segments, Segment{Type: SegmentLiteral, Literal: template[literalStart:end]})
		}
	}

	i := 0
	for i < len(template) {
		if template[i] != '$' || i+1 >= len(template) {
			i++
			continue
		}
		var seg Segment
		consumed := 2
		switch next := template[i+1]; {
		case next == '$':
			seg = Segment{Type: SegmentLiteral, Literal: "$"}
		case next == '&':
			seg = Segment{Type: SegmentMatch}
		case next == '`':
			seg = Segment{Type: SegmentBefore}
		case next == '\'':
			seg = Segment{Type: SegmentAfter}
		case isDigit(next):
			if i+2 < len(template) && isDigit(template[i+2]) {
				consumed = 3
			}
			seg = Segment{Type: SegmentGroup, Digits: template[i+1 : i+consumed]}
		default:
			i++
			continue
		}
		flush(i)
		t.Segments = append(t.Segments, seg)
		i += consumed
		literalStart = i
	}
	flush(len(template))
	return t
}

// Expand appends the expansion of the template for match m to dst.
// groupZero enables "$0" as a reference to the whole match.
func (t *Template) Expand(dst []byte, m Match, groupZero bool) []byte {
	for _, seg := range t.Segments {
		switch seg.Type {
		case SegmentLiteral:
			dst = append(dst, seg.Literal...)
		case SegmentMatch:
			s, _ := m.Group(0)
			dst = append(dst, s...)
		case SegmentBefore:
			dst = append(dst, m.Before()...)
		case SegmentAfter:
			dst = append(dst, m.After()...)
		case SegmentGroup:
			n, used, ok := resolveGroup(seg.Digits, m.NumGroups(), groupZero)
			if !ok {
				dst = append(dst, '$')
				dst = append(dst, seg.Digits...)
				continue
			}
			s, _ := m.Group(n)
			dst = append(dst, s...)
			dst = append(dst, seg.Digits[used:]...)
		}
	}
	return dst
}

// HasTokens reports whether expansion can differ from the template text.
func (t *Template) HasTokens() bool {
	for _, seg := range t.Segments {
		if seg.Type != SegmentLiteral || seg.Literal == "$" {
			return true
		}
	}
	return false
}

// resolveGroup picks the group a run of digits refers to and how many of the
// digits that reference used.
func resolveGroup(digits string, groups int, groupZero bool) (n, used int, ok bool) {
	if len(digits) == 2 {
		nn := int(digits[0]-'0')*10 + int(digits[1]-'0')
		if nn >= 1 && nn <= groups {
			return nn, 2, true
		}
	}
	n = int(digits[0] - '0')
	switch {
	case n == 0:
		return 0, 1, groupZero
	case n <= groups:
		return n, 1, true
	}
	return 0, 0, false
}

// Expand expands template for match m. It is a shortcut for
// Parse(template).Expand.
//
// Example:
//
//	replace.Expand("[$1]", m, false) // "[" + group 1 + "]"
func Expand(template string, m Match, groupZero bool) string {
	if !strings.Contains(template, "$") {
		return template
	}
	return string(Parse(template).Expand(nil, m, groupZero))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
