package literal

import "strings"

// MaxLiterals limits how many alternatives Extract accepts. Larger
// alternations are left to the regex engine.
const MaxLiterals = 1000

// metaChars have a special meaning when unescaped in a dialect pattern.
const metaChars = `\^$.|?*+()[]{}`

// Extract reports whether a dialect pattern is a pure literal alternation
// and returns its alternatives in pattern order.
//
// Accepted: plain characters and backslash-escaped punctuation, separated by
// top-level "|". Rejected: groups, classes, quantifiers, anchors, the dot,
// escapes of letters or digits (those are classes, assertions or
// references), empty alternatives and sequences where one literal occurs
// inside another.
//
// Example:
//
//	seq, ok := literal.Extract(`foo|b\.r`)
//	// ok == true, seq.Strings() == []string{"foo", "b.r"}
//
//	_, ok = literal.Extract(`fo+|bar`)
//	// ok == false
func Extract(pattern string) (*Seq, bool) {
	if pattern == "" {
		return nil, false
	}
	var (
		lits []Literal
		cur  strings.Builder
	)
	flush := func() bool {
		if cur.Len() == 0 || len(lits) == MaxLiterals {
			return false
		}
		lits = append(lits, NewLiteral([]byte(cur.String())))
		cur.Reset()
		return true
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '|':
			if !flush() {
				return nil, false
			}
		case r == '\\':
			if i+1 >= len(runes) || !isEscapablePunct(runes[i+1]) {
				return nil, false
			}
			i++
			cur.WriteRune(runes[i])
		case strings.ContainsRune(metaChars, r):
			return nil, false
		default:
			cur.WriteRune(r)
		}
	}
	if !flush() {
		return nil, false
	}

	seq := NewSeq(lits...)
	if !seq.InfixFree() {
		return nil, false
	}
	return seq, true
}

// isEscapablePunct reports whether \r (r being the escaped rune) means r
// itself in every dialect position.
func isEscapablePunct(r rune) bool {
	if r >= 0x80 {
		return false
	}
	return strings.ContainsRune(metaChars, r) || strings.ContainsRune(`/-,:;=!<>'"#%&@~_`+"`", r)
}
