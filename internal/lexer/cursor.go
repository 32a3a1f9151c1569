package lexer

import "unicode/utf8"

// RuneCursor is a bidirectional, byte-aware cursor over a borrowed
// string. It is the UTF-8 iterator of §4.1: every position it reports
// is a byte offset, and Advance/Retreat always land on a code point
// boundary (a lead byte is any byte whose top bits are not "10").
type RuneCursor struct {
	src string
	pos int // byte offset of the cursor
}

// NewRuneCursor returns a cursor positioned at the start of s.
func NewRuneCursor(s string) *RuneCursor {
	return &RuneCursor{src: s}
}

// AtEnd reports whether the cursor has reached the end-of-string
// sentinel (no more code points to read going forward).
func (c *RuneCursor) AtEnd() bool {
	return c.pos >= len(c.src)
}

// ByteOffset returns the cursor's current byte offset.
func (c *RuneCursor) ByteOffset() int {
	return c.pos
}

// SeekByte repositions the cursor to an absolute byte offset. The
// caller is responsible for only seeking to code point boundaries.
func (c *RuneCursor) SeekByte(offset int) {
	c.pos = offset
}

// Peek returns the code point at the cursor without advancing.
// The second result is false at end of string.
func (c *RuneCursor) Peek() (rune, bool) {
	if c.AtEnd() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])
	return r, true
}

// RuneLen returns the byte length of the code point at the cursor, or
// 0 at end of string.
func (c *RuneCursor) RuneLen() int {
	if c.AtEnd() {
		return 0
	}
	_, size := utf8.DecodeRuneInString(c.src[c.pos:])
	return size
}

// Advance reads the code point at the cursor and moves past it.
// Returns (0, false) at end of string.
func (c *RuneCursor) Advance() (rune, bool) {
	if c.AtEnd() {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.src[c.pos:])
	c.pos += size
	return r, true
}

// Retreat moves the cursor back one code point and returns it.
// Returns (0, false) if already at the start of the string. Retreat
// scans backward past UTF-8 continuation bytes (top bits "10") to
// find the preceding lead byte.
func (c *RuneCursor) Retreat() (rune, bool) {
	if c.pos <= 0 {
		return 0, false
	}
	i := c.pos - 1
	for i > 0 && isContinuationByte(c.src[i]) {
		i--
	}
	c.pos = i
	r, _ := utf8.DecodeRuneInString(c.src[c.pos:])
	return r, true
}

func isContinuationByte(b byte) bool {
	return b&0xC0 == 0x80
}

// Slice returns the raw bytes of the underlying string between two
// byte offsets, unchanged (a dereference of a span as a byte slice).
func (c *RuneCursor) Slice(start, end int) string {
	return c.src[start:end]
}

// Substr is an alias for Slice using spec terminology.
func (c *RuneCursor) Substr(start, end int) string {
	return c.Slice(start, end)
}

// Replace returns a new string equal to the cursor's source with the
// byte span [start,end) replaced by s. The cursor's own string is
// borrowed and immutable, so Replace never mutates it in place.
func (c *RuneCursor) Replace(start, end int, s string) string {
	return c.src[:start] + s + c.src[end:]
}

// Len returns the byte length of the underlying string.
func (c *RuneCursor) Len() int {
	return len(c.src)
}
