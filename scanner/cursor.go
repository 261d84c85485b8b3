// Package scanner provides a byte cursor that tracks line/column position
// and double-quoted string boundaries. It is the low-level building block
// the lexer uses instead of re-implementing position bookkeeping itself —
// adapted from the boundary-tracking cursor the teacher's preprocessor
// used to skip over string literals, generalized here to also report
// (line, col) for diagnostics rather than just a string/code flag.
package scanner

// Cursor iterates byte-by-byte over source text, tracking the current
// (line, col) and whether the position is inside a double-quoted string
// literal (the only quoting form this language has).
type Cursor struct {
	src  string
	pos  int
	line int
	col  int
	inDQ bool
	esc  bool
}

// New creates a Cursor positioned just before the first byte of src.
// Call Next to advance to the first byte.
func New(src string) *Cursor {
	return &Cursor{src: src, pos: -1, line: 1, col: 0}
}

// Next advances to the next byte, updating line/col and string-escape
// state, and returns it. The second return value is false at end of
// input.
func (c *Cursor) Next() (byte, bool) {
	c.pos++
	if c.pos >= len(c.src) {
		return 0, false
	}
	ch := c.src[c.pos]
	if ch == '\n' {
		c.line++
		c.col = 0
	} else {
		c.col++
	}

	if c.esc {
		c.esc = false
		return ch, true
	}
	if ch == '\\' && c.inDQ {
		c.esc = true
		return ch, true
	}
	if ch == '"' {
		c.inDQ = !c.inDQ
	}
	return ch, true
}

// Peek returns the byte at the given offset from the current position
// without advancing, or (0, false) past the end of input. Peek(1) is the
// next byte that Next would return.
func (c *Cursor) Peek(offset int) (byte, bool) {
	i := c.pos + offset
	if i < 0 || i >= len(c.src) {
		return 0, false
	}
	return c.src[i], true
}

// InString reports whether the cursor is currently inside an open
// double-quoted string literal.
func (c *Cursor) InString() bool { return c.inDQ }

// Pos returns the current byte offset, or -1 before the first Next call.
func (c *Cursor) Pos() int { return c.pos }

// Line returns the current 1-based line number.
func (c *Cursor) Line() int { return c.line }

// Col returns the current 1-based column number within the current line.
func (c *Cursor) Col() int { return c.col }

// AtEnd reports whether the cursor has consumed all of src.
func (c *Cursor) AtEnd() bool { return c.pos+1 >= len(c.src) }
