package meta

import "strings"

// Flags is the flag set of a dialect pattern.
type Flags uint8

const (
	// Global makes match and replace visit every match.
	Global Flags = 1 << iota
	// IgnoreCase is the "i" flag.
	IgnoreCase
	// Multiline is the "m" flag: ^ and $ match at line boundaries.
	Multiline
)

// ParseFlags parses a flag string such as "gi". Every letter may appear once.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for _, r := range s {
		var bit Flags
		switch r {
		case 'g':
			bit = Global
		case 'i':
			bit = IgnoreCase
		case 'm':
			bit = Multiline
		default:
			return 0, &FlagError{Flags: s, Flag: r}
		}
		if f&bit != 0 {
			return 0, &FlagError{Flags: s, Flag: r, Duplicate: true}
		}
		f |= bit
	}
	return f, nil
}

// Has reports whether every flag in x is set.
func (f Flags) Has(x Flags) bool {
	return f&x == x
}

// String returns the flags in canonical "gim" order.
func (f Flags) String() string {
	var b strings.Builder
	if f.Has(Global) {
		b.WriteByte('g')
	}
	if f.Has(IgnoreCase) {
		b.WriteByte('i')
	}
	if f.Has(Multiline) {
		b.WriteByte('m')
	}
	return b.String()
}
