package transpile

// Tape is a mutable rune buffer with a cursor.
//
// The converter reads the pattern one rune at a time and rewrites it in
// place. Every edit keeps the cursor on the same logical character, so
// scanning resumes after the edited region:
//   - inserting before (or at) the cursor pushes the cursor right
//   - replacing at the cursor leaves the cursor after the new text
//   - removing at the cursor leaves the cursor where it is
//
// The cursor is always within [0, Len()].
type Tape struct {
	buf []rune
	pos int
}

// NewTape creates a tape over src with the cursor at position 0.
func NewTape(src string) *Tape {
	return &Tape{buf: []rune(src)}
}

// Read returns the rune under the cursor and advances the cursor.
// At the end of the tape it returns false and the cursor does not move.
func (t *Tape) Read() (rune, bool) {
	if t.pos >= len(t.buf) {
		return 0, false
	}
	r := t.buf[t.pos]
	t.pos++
	return r, true
}

// Peek returns the rune at cursor+offset without moving the cursor.
func (t *Tape) Peek(offset int) (rune, bool) {
	i := t.pos + offset
	if i < 0 || i >= len(t.buf) {
		return 0, false
	}
	return t.buf[i], true
}

// At returns the rune at absolute position i.
func (t *Tape) At(i int) (rune, bool) {
	if i < 0 || i >= len(t.buf) {
		return 0, false
	}
	return t.buf[i], true
}

// Move shifts the cursor by offset, clamped to [0, Len()].
func (t *Tape) Move(offset int) {
	t.pos = clamp(t.pos+offset, 0, len(t.buf))
}

// Pos returns the cursor position.
func (t *Tape) Pos() int {
	return t.pos
}

// Len returns the number of runes on the tape.
func (t *Tape) Len() int {
	return len(t.buf)
}

// Insert inserts text at cursor+offset.
func (t *Tape) Insert(text string, offset int) {
	t.InsertAt(text, t.pos+offset)
}

// InsertAt inserts text at absolute position pos. If the insertion point is
// at or before the cursor, the cursor moves right by the inserted length.
func (t *Tape) InsertAt(text string, pos int) {
	pos = clamp(pos, 0, len(t.buf))
	ins := []rune(text)
	if len(ins) == 0 {
		return
	}
	buf := make([]rune, 0, len(t.buf)+len(ins))
	buf = append(buf, t.buf[:pos]...)
	buf = append(buf, ins...)
	buf = append(buf, t.buf[pos:]...)
	t.buf = buf
	if pos <= t.pos {
		t.pos += len(ins)
	}
}

// Replace replaces count runes starting at the cursor with text and leaves
// the cursor just after the replacement.
func (t *Tape) Replace(count int, text string) {
	end := clamp(t.pos+count, t.pos, len(t.buf))
	rep := []rune(text)
	buf := make([]rune, 0, len(t.buf)-(end-t.pos)+len(rep))
	buf = append(buf, t.buf[:t.pos]...)
	buf = append(buf, rep...)
	buf = append(buf, t.buf[end:]...)
	t.buf = buf
	t.pos += len(rep)
}

// Remove deletes count runes starting at the cursor.
func (t *Tape) Remove(count int) {
	t.RemoveAt(t.pos, count)
}

// RemoveAt deletes count runes starting at absolute position pos. A cursor
// inside or after the removed range is pulled back accordingly.
func (t *Tape) RemoveAt(pos, count int) {
	pos = clamp(pos, 0, len(t.buf))
	end := clamp(pos+count, pos, len(t.buf))
	if end == pos {
		return
	}
	t.buf = append(t.buf[:pos], t.buf[end:]...)
	switch {
	case t.pos >= end:
		t.pos -= end - pos
	case t.pos > pos:
		t.pos = pos
	}
}

// Slice returns the text between absolute positions start and end.
func (t *Tape) Slice(start, end int) string {
	start = clamp(start, 0, len(t.buf))
	end = clamp(end, start, len(t.buf))
	return string(t.buf[start:end])
}

// String returns the full tape contents.
func (t *Tape) String() string {
	return string(t.buf)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
