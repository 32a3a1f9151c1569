package lexer

import "github.com/cutlet-lang/cutlet/pkg/token"

// refillFunc fetches the next chunk of source text for a streamed
// source. It returns ("", false) once no more input is available.
type refillFunc func() (string, bool)

// sourceFrame is one level of the tokenizer's push-down source stack
// (§4.2): "push(string|stream|token) makes that the current source;
// pop restores the previous." A frame owns a growable buffer so that
// stream sources can be refilled mid-token (multi-line braces,
// interactive line continuation) without losing the bytes already
// scanned.
type sourceFrame struct {
	name    string
	buf     string
	pos     int // byte offset into buf
	curLine int
	curCol  int
	origin  token.Position
	refill  refillFunc

	atLineStart bool
}

func newStringFrame(name, text string, origin token.Position) *sourceFrame {
	return &sourceFrame{
		name:        name,
		buf:         text,
		origin:      origin,
		curLine:     origin.Line,
		curCol:      origin.Column,
		atLineStart: true,
	}
}

func newStreamFrame(name string, refill refillFunc) *sourceFrame {
	return &sourceFrame{
		name:        name,
		origin:      token.Position{Line: 1, Column: 1},
		curLine:     1,
		curCol:      1,
		refill:      refill,
		atLineStart: true,
	}
}

// ensureByte guarantees buf[pos] is readable, pulling from refill if
// the frame is stream-backed and currently exhausted.
func (f *sourceFrame) ensureByte() bool {
	for f.pos >= len(f.buf) {
		if f.refill == nil {
			return false
		}
		more, ok := f.refill()
		if !ok {
			return false
		}
		f.buf += more
	}
	return true
}

func (f *sourceFrame) atEOF() bool {
	return !f.ensureByte()
}

// pos0 returns the absolute position of the byte at f.pos.
func (f *sourceFrame) pos0() token.Position {
	return token.Position{
		Offset: f.origin.Offset + f.pos,
		Line:   f.curLine,
		Column: f.curCol,
	}
}

// advanceRune consumes one code point from the buffer, updating line
// and column bookkeeping (a newline resets the column and bumps the
// line, matching the teacher's rune-counted column convention).
func (f *sourceFrame) advanceRune() (rune, bool) {
	if !f.ensureByte() {
		return 0, false
	}
	c := NewRuneCursor(f.buf)
	c.SeekByte(f.pos)
	r, ok := c.Advance()
	if !ok {
		return 0, false
	}
	f.pos = c.ByteOffset()
	if r == '\n' {
		f.curLine++
		f.curCol = 1
	} else {
		f.curCol++
	}
	return r, true
}

func (f *sourceFrame) peekByte() (byte, bool) {
	if !f.ensureByte() {
		return 0, false
	}
	return f.buf[f.pos], true
}

// peekByteAt ensures n+1 bytes are buffered and returns the byte at
// offset pos+n, if any.
func (f *sourceFrame) peekByteAt(n int) (byte, bool) {
	for f.pos+n >= len(f.buf) {
		if f.refill == nil {
			return 0, false
		}
		more, ok := f.refill()
		if !ok {
			return 0, false
		}
		f.buf += more
	}
	return f.buf[f.pos+n], true
}
