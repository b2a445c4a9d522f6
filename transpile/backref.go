package transpile

import "fmt"

// escapeKind is how a \N escape was resolved.
type escapeKind uint8

const (
	escapeBackRef escapeKind = iota
	escapeDropped
	escapeOctal
	escapeLiteral
)

func (k escapeKind) String() string {
	switch k {
	case escapeBackRef:
		return "backref"
	case escapeDropped:
		return "dropped"
	case escapeOctal:
		return "octal"
	default:
		return "literal"
	}
}

// digitEscape resolves \N. The cursor is just after the first digit.
func (c *converter) digitEscape(first rune) escapeKind {
	start := c.tape.Pos() - 2
	digits := []rune{first}
	for i := 0; i < 2; i++ {
		r, ok := c.tape.Peek(i)
		if !ok || !isDigit(r) {
			break
		}
		digits = append(digits, r)
	}

	if first == '0' {
		return c.octal(start, digits)
	}

	if c.inClass {
		// A class cannot hold a back-reference; a reference to an existing
		// group is dropped, anything else is read as octal.
		if n := int(first - '0'); n <= c.total {
			c.drop(start, 1)
			c.collapseEmptyClass()
			return escapeDropped
		}
		return c.octal(start, digits)
	}

	readings := make([]int, 0, 2)
	if len(digits) >= 2 {
		readings = append(readings, int(digits[0]-'0')*10+int(digits[1]-'0'))
	}
	readings = append(readings, int(digits[0]-'0'))

	for _, n := range readings {
		if n == 0 || n > c.subs.count() {
			continue
		}
		used := numDigits(n)
		g := c.subs.group(n)
		if !g.closed {
			// Reference from inside the group itself always matches empty.
			c.drop(start, used)
			return escapeDropped
		}
		c.backRef(start, n, used)
		return escapeBackRef
	}
	for _, n := range readings {
		if n != 0 && n <= c.total {
			// Forward reference to a group that has not participated yet.
			c.drop(start, numDigits(n))
			return escapeDropped
		}
	}
	return c.octal(start, digits)
}

// backRef keeps \N as a back-reference to group n and makes the group
// participate if it was optional.
func (c *converter) backRef(start, n, used int) {
	if r, ok := c.tape.At(start + 1 + used); ok && isDigit(r) {
		// Keep the host from reading the following digit as part of the
		// group number.
		c.tape.Move(start - c.tape.Pos())
		c.replace(1+used, fmt.Sprintf(`(?:\%d)`, n))
	} else {
		c.tape.Move(start + 1 + used - c.tape.Pos())
	}
	if g := c.subs.group(n); g.optional && !g.enhanced {
		c.enhance(g)
	}
}

// enhance rewrites an optional group (X)? into ((?:X)?). The group then
// always participates, so a back-reference to it matches the empty string
// instead of failing.
func (c *converter) enhance(g *subexp) {
	q := "?"
	if r, ok := c.tape.At(g.end + 2); ok && r == '?' {
		q = "??"
	}
	c.insertAt("(?:", g.start)
	c.insertAt(")"+q, g.end)
	c.removeAt(g.end+1, len(q))
	g.enhanced = true
}

// drop removes the backslash and the used digits. Any remaining digits stay
// on the tape as literals.
func (c *converter) drop(start, used int) {
	c.removeAt(start, 1+used)
	c.tape.Move(start - c.tape.Pos())
}

// octal applies the legacy octal escape rules: up to three octal digits with
// a value of at most 0377. \8 and \9 are the digits themselves.
func (c *converter) octal(start int, digits []rune) escapeKind {
	if !isOctal(digits[0]) {
		c.removeAt(start, 1)
		c.tape.Move(start + 1 - c.tape.Pos())
		return escapeLiteral
	}
	value := int(digits[0] - '0')
	used := 1
	for used < len(digits) && isOctal(digits[used]) {
		next := value*8 + int(digits[used]-'0')
		if next > 0377 {
			break
		}
		value = next
		used++
	}
	c.tape.Move(start - c.tape.Pos())
	c.replace(1+used, fmt.Sprintf(`\x%02X`, value))
	return escapeOctal
}

func isOctal(r rune) bool {
	return r >= '0' && r <= '7'
}

func numDigits(n int) int {
	if n >= 10 {
		return 2
	}
	return 1
}
