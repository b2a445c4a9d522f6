// Package conv converts between byte offsets and code point indices.
//
// Searchers report positions in whatever unit their engine uses: regexp2
// works on runes, RE2 and Aho-Corasick on UTF-8 bytes. The action engine
// counts positions in code points, so every byte offset crosses this package
// on the way out.
//
// Invalid UTF-8 is handled the way a range loop handles it: each invalid byte
// is one code point (U+FFFD).
package conv

import "sort"

// RuneOffsets returns the byte offset of every rune in s, followed by len(s).
// The result has one more element than the number of runes, so
// offsets[i] is the byte offset of rune i and offsets[n] == len(s).
func RuneOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

// RuneIndex returns the index of the rune starting at byte offset off.
// An offset inside a multi-byte rune maps to that rune.
func RuneIndex(offsets []int, off int) int {
	i := sort.SearchInts(offsets, off)
	if i < len(offsets) && offsets[i] == off {
		return i
	}
	return i - 1
}
