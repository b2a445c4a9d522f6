package meta

import "github.com/coregx/jscompat/internal/conv"

// Input is a subject string prepared for searching.
//
// regexp2 searches runes, RE2 and Aho-Corasick search bytes, and results are
// reported in code points. Input builds each view on first use and keeps it
// for the following searches of the same operation.
//
// An Input is not safe for concurrent use.
type Input struct {
	text    string
	runes   []rune
	bytes   []byte
	offsets []int
}

// NewInput creates an Input for text.
func NewInput(text string) *Input {
	return &Input{text: text}
}

// Text returns the subject string.
func (in *Input) Text() string {
	return in.text
}

// Runes returns the subject as code points.
func (in *Input) Runes() []rune {
	if in.runes == nil {
		in.runes = []rune(in.text)
	}
	return in.runes
}

// Bytes returns the subject as bytes.
func (in *Input) Bytes() []byte {
	if in.bytes == nil {
		in.bytes = []byte(in.text)
	}
	return in.bytes
}

// Len returns the length of the subject in code points.
func (in *Input) Len() int {
	return len(in.runeOffsets()) - 1
}

// Slice returns the subject text between code point indices start and end.
func (in *Input) Slice(start, end int) string {
	off := in.runeOffsets()
	return in.text[off[start]:off[end]]
}

// ByteOffset returns the byte offset of code point i.
func (in *Input) ByteOffset(i int) int {
	return in.runeOffsets()[i]
}

// RuneIndex returns the code point index of byte offset off.
func (in *Input) RuneIndex(off int) int {
	return conv.RuneIndex(in.runeOffsets(), off)
}

func (in *Input) runeOffsets() []int {
	if in.offsets == nil {
		in.offsets = conv.RuneOffsets(in.text)
	}
	return in.offsets
}

// Match represents a successful match with capture group positions.
//
// spans holds a start/end pair for the whole match followed by one pair per
// capturing group. A group that did not participate has -1 in both slots.
//
// Example:
//
//	// /a(b)?c/ against "xac"
//	m.Start(), m.End()  // 1, 3
//	m.Group(1)          // "", false
type Match struct {
	input *Input
	spans []int
}

// NewMatch creates a Match from code point spans. spans must have an even,
// non-zero length.
func NewMatch(in *Input, spans []int) *Match {
	return &Match{input: in, spans: spans}
}

// Start returns the inclusive start position of the match.
func (m *Match) Start() int {
	return m.spans[0]
}

// End returns the exclusive end position of the match.
func (m *Match) End() int {
	return m.spans[1]
}

// Len returns the length of the match in code points.
func (m *Match) Len() int {
	return m.spans[1] - m.spans[0]
}

// IsEmpty reports whether the match is zero-length.
func (m *Match) IsEmpty() bool {
	return m.Len() == 0
}

// String returns the matched text.
func (m *Match) String() string {
	return m.input.Slice(m.spans[0], m.spans[1])
}

// NumGroups returns the number of capturing groups, excluding the whole
// match.
func (m *Match) NumGroups() int {
	return len(m.spans)/2 - 1
}

// GroupSpan returns the span of group n (0 is the whole match). ok is false
// for a group that did not participate or does not exist.
func (m *Match) GroupSpan(n int) (start, end int, ok bool) {
	if n < 0 || 2*n+1 >= len(m.spans) || m.spans[2*n] < 0 {
		return -1, -1, false
	}
	return m.spans[2*n], m.spans[2*n+1], true
}

// Group returns the text of group n (0 is the whole match). ok is false for a
// group that did not participate or does not exist.
func (m *Match) Group(n int) (string, bool) {
	start, end, ok := m.GroupSpan(n)
	if !ok {
		return "", false
	}
	return m.input.Slice(start, end), true
}

// Before returns the subject text before the match.
func (m *Match) Before() string {
	return m.input.Slice(0, m.spans[0])
}

// After returns the subject text after the match.
func (m *Match) After() string {
	return m.input.Slice(m.spans[1], m.input.Len())
}

// Input returns the searched input.
func (m *Match) Input() *Input {
	return m.input
}
