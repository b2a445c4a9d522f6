// Package transpile converts JavaScript-dialect regular expressions into the
// syntax of the host engine (github.com/dlclark/regexp2 with its ECMAScript
// option) while preserving matching semantics.
//
// The conversion is a single left-to-right pass over a Tape. Most of the
// pattern is copied through untouched; the converter only rewrites
// constructs that the two dialects read differently:
//   - identity escapes of letters (\A, \k, \p, ...) that are special in the host
//   - \b inside a character class (backspace, not a word boundary)
//   - the dot, which must not match any line terminator
//   - empty classes [] and [^]
//   - literal braces that the host could read as a quantifier
//   - \N digit escapes, which are back-references, octal escapes or dropped
//   - optional groups that are referenced by a back-reference
//
// Conversion never fails. Malformed input is passed through and left for the
// host compiler to reject.
package transpile

import "strings"

// Identity escapes of these letters mean the letter itself in the dialect
// but something else (or nothing valid) in the host.
const identityLetters = "ACEFGHIJKLMNOPQRTUVXYZaeghijklmopqyz"

const (
	matchAnything = `[\s\S]`
	matchNothing  = `(?!)`
	// The host dot still matches U+2028 and U+2029.
	matchLine = `[^\n\r\u2028\u2029]`
)

// Result describes one conversion.
type Result struct {
	// Source is the dialect pattern that was converted.
	Source string
	// Host is the host-dialect pattern.
	Host string
	// Groups is the number of capturing groups, numbered as the dialect
	// numbers them. The host pattern has the same numbering.
	Groups int
}

// Convert rewrites a dialect pattern into host syntax.
//
// Example:
//
//	transpile.Convert(`(a)(b)?\2[^]`) // `(a)((?:b)?)\2[\s\S]`
func Convert(source string) string {
	return ConvertDetailed(source).Host
}

// ConvertDetailed is like Convert but also reports the group count.
func ConvertDetailed(source string) Result {
	c := &converter{
		tape:  NewTape(source),
		total: countGroups(source),
	}
	c.run()
	return Result{
		Source: source,
		Host:   c.tape.String(),
		Groups: c.subs.count(),
	}
}

type converter struct {
	tape *Tape
	subs tracker

	// total is the number of capturing groups in the whole pattern.
	total int

	inClass    bool
	classStart int // position of the "[" of the current class
	inRepeat   bool
}

func (c *converter) run() {
	for {
		ch, ok := c.tape.Read()
		if !ok {
			return
		}
		switch ch {
		case '\\':
			c.escape()
		case '[':
			c.openClass()
		case ']':
			c.inClass = false
		case '.':
			if !c.inClass {
				c.tape.Move(-1)
				c.replace(1, matchLine)
			}
		case '{':
			if !c.inClass {
				c.openRepeat()
			}
		case '}':
			if !c.inClass {
				c.closeRepeat()
			}
		case '(':
			if !c.inClass {
				c.openGroup()
			}
		case ')':
			if !c.inClass {
				c.closeGroup()
			}
		}
	}
}

// escape handles the character after a backslash. The cursor is just after
// the backslash.
func (c *converter) escape() {
	ch, ok := c.tape.Read()
	if !ok {
		return
	}
	switch {
	case ch == 'x':
		c.fixedHex(2)
	case ch == 'u':
		c.fixedHex(4)
	case strings.ContainsRune(identityLetters, ch):
		c.dropBackslash()
	case ch == 'b' && c.inClass:
		c.tape.Move(-1)
		c.replace(1, "cH")
	case isDigit(ch):
		c.digitEscape(ch)
	}
}

// fixedHex copies a \xHH or \uHHHH escape verbatim. Without enough hex
// digits the escape is an identity escape of the letter.
func (c *converter) fixedHex(width int) {
	for i := 0; i < width; i++ {
		r, ok := c.tape.Peek(i)
		if !ok || !isHex(r) {
			c.dropBackslash()
			return
		}
	}
	c.tape.Move(width)
}

// dropBackslash removes the backslash two positions before the cursor.
func (c *converter) dropBackslash() {
	c.removeAt(c.tape.Pos()-2, 1)
}

func (c *converter) openClass() {
	if c.inClass {
		c.tape.Move(-1)
		c.replace(1, `\[`)
		return
	}
	start := c.tape.Pos() - 1
	next, ok := c.tape.Peek(0)
	if !ok {
		return
	}
	if next == ']' {
		c.tape.Move(-1)
		c.replace(2, matchNothing)
		return
	}
	if next == '^' {
		if r, ok := c.tape.Peek(1); ok && r == ']' {
			c.tape.Move(-1)
			c.replace(3, matchAnything)
			return
		}
	}
	c.inClass = true
	c.classStart = start
	if next == '^' {
		// [^\N] must resolve the escape first: a dropped back-reference
		// leaves an empty negated class.
		r1, ok1 := c.tape.Peek(1)
		r2, ok2 := c.tape.Peek(2)
		if ok1 && ok2 && r1 == '\\' && isDigit(r2) {
			c.tape.Move(3)
			c.digitEscape(r2)
		}
	}
}

// collapseEmptyClass rewrites a class that became empty after a dropped
// back-reference. The cursor must be just before the closing "]".
func (c *converter) collapseEmptyClass() {
	if r, ok := c.tape.Peek(0); !ok || r != ']' {
		return
	}
	var rep string
	switch c.tape.Slice(c.classStart, c.tape.Pos()) {
	case "[":
		rep = matchNothing
	case "[^":
		rep = matchAnything
	default:
		return
	}
	width := c.tape.Pos() - c.classStart + 1
	c.tape.Move(c.classStart - c.tape.Pos())
	c.replace(width, rep)
	c.inClass = false
}

func (c *converter) openRepeat() {
	if r, ok := c.tape.Peek(0); ok && isDigit(r) {
		c.inRepeat = true
		return
	}
	c.tape.Move(-1)
	c.replace(1, `\{`)
}

func (c *converter) closeRepeat() {
	if c.inRepeat {
		c.inRepeat = false
		return
	}
	c.tape.Move(-1)
	c.replace(1, `\}`)
}

func (c *converter) openGroup() {
	kind, strip := classifyGroup(c.tape)
	if strip > 0 {
		c.removeAt(c.tape.Pos(), strip)
	}
	c.subs.open(c.tape.Pos(), kind)
}

// classifyGroup inspects the text after "(" and reports the group kind and
// how many runes of a group name to strip.
func classifyGroup(t *Tape) (groupKind, int) {
	if r, ok := t.Peek(0); !ok || r != '?' {
		return groupCapture, 0
	}
	r, _ := t.Peek(1)
	switch r {
	case ':':
		return groupNonCapture, 0
	case '=', '!':
		return groupLookaround, 0
	case '<':
		if r2, _ := t.Peek(2); r2 == '=' || r2 == '!' {
			return groupLookaround, 0
		}
		// (?<name> is numbered in place, so it becomes a plain group.
		for i := 2; ; i++ {
			r3, ok := t.Peek(i)
			if !ok {
				return groupCapture, 0
			}
			if r3 == '>' {
				return groupCapture, i + 1
			}
		}
	}
	return groupCapture, 0
}

func (c *converter) closeGroup() {
	end := c.tape.Pos() - 1
	r, ok := c.tape.Peek(0)
	c.subs.close(end, ok && r == '?')
}

// replace replaces count runes at the cursor and keeps the tracker in sync.
func (c *converter) replace(count int, text string) {
	pos := c.tape.Pos()
	before := c.tape.Len()
	c.tape.Replace(count, text)
	if delta := c.tape.Len() - before; delta != 0 {
		c.subs.shift(pos, delta)
	}
}

func (c *converter) insertAt(text string, pos int) {
	before := c.tape.Len()
	c.tape.InsertAt(text, pos)
	c.subs.shift(pos, c.tape.Len()-before)
}

func (c *converter) removeAt(pos, count int) {
	before := c.tape.Len()
	c.tape.RemoveAt(pos, count)
	if delta := c.tape.Len() - before; delta != 0 {
		c.subs.shift(pos, delta)
	}
}

// countGroups counts the capturing groups of a dialect pattern, classifying
// parentheses the same way the converter does.
func countGroups(source string) int {
	t := NewTape(source)
	n := 0
	inClass := false
	for {
		ch, ok := t.Read()
		if !ok {
			return n
		}
		switch ch {
		case '\\':
			t.Move(1)
		case '[':
			if inClass {
				continue
			}
			if r, _ := t.Peek(0); r == ']' {
				t.Move(1)
				continue
			}
			if r0, _ := t.Peek(0); r0 == '^' {
				if r1, _ := t.Peek(1); r1 == ']' {
					t.Move(2)
					continue
				}
			}
			inClass = true
		case ']':
			inClass = false
		case '(':
			if inClass {
				continue
			}
			if kind, _ := classifyGroup(t); kind == groupCapture {
				n++
			}
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHex(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}
