// Package lexer implements Cutlet's UTF-8 aware tokenizer (§4.1-§4.2):
// a bidirectional byte-aware rune cursor plus a stream-driven,
// push-down tokenizer that can re-lex nested source (subcommands,
// braced blocks, quoted strings) by pushing and popping sources.
package lexer

import (
	"fmt"
	"strings"

	"github.com/cutlet-lang/cutlet/pkg/token"
)

// SyntaxError reports a lexical error with the position of the
// offending token (an unmatched delimiter names the opener's
// position, per §4.2).
type SyntaxError struct {
	Pos     token.Position
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Message)
}

// Tokenizer is a push-down automaton over sources (§4.2). The current
// source is always the top of the stack and is managed with Push/Pop.
// The parser does not re-enter an active Tokenizer: it re-lexes a
// subcommand's text on a new Tokenizer seeded through PushToken.
type Tokenizer struct {
	stack     []*sourceFrame
	lookahead *token.Token
}

// New returns a Tokenizer with no active source. Callers push a
// source (Push, PushStream, or PushToken) before lexing.
func New() *Tokenizer {
	return &Tokenizer{}
}

// Push makes text the current source. origin anchors absolute
// positions for text that was extracted from a larger document (a
// subcommand body, a block body, a string-interpolation part). Push
// takes no content offset; PushToken adds a token's ContentOffset to
// the origin before pushing its text.
func (t *Tokenizer) Push(text string, origin token.Position) {
	t.stack = append(t.stack, newStringFrame("<source>", text, origin))
	t.lookahead = nil
}

// PushStream makes a chunked, stream-driven source current. refill is
// called whenever the tokenizer needs more bytes than are currently
// buffered; it returns ("", false) at true end of input.
func (t *Tokenizer) PushStream(name string, refill func() (string, bool)) {
	t.stack = append(t.stack, newStreamFrame(name, refill))
	t.lookahead = nil
}

// PushToken re-lexes a previously produced token's text as a new
// source, anchored at the token's own position plus its content
// offset, so nested nodes keep absolute source positions.
func (t *Tokenizer) PushToken(tok token.Token) {
	origin := tok.Pos
	origin.Offset += tok.ContentOffset
	t.Push(tok.Text, origin)
}

// Pop discards the current source and restores the previous one.
func (t *Tokenizer) Pop() {
	if len(t.stack) == 0 {
		return
	}
	t.stack = t.stack[:len(t.stack)-1]
	t.lookahead = nil
}

func (t *Tokenizer) top() *sourceFrame {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

// Front returns the current lookahead token without consuming it,
// lexing it first if necessary.
func (t *Tokenizer) Front() (token.Token, error) {
	if t.lookahead != nil {
		return *t.lookahead, nil
	}
	tok, err := t.lexNext()
	if err != nil {
		return token.Token{}, err
	}
	t.lookahead = &tok
	return tok, nil
}

// GetToken consumes and returns the current (or newly lexed) token.
func (t *Tokenizer) GetToken() (token.Token, error) {
	tok, err := t.Front()
	if err != nil {
		return token.Token{}, err
	}
	t.lookahead = nil
	return tok, nil
}

// Expect consumes the next token, failing if its kind does not match.
func (t *Tokenizer) Expect(k token.Kind) (token.Token, error) {
	tok, err := t.Front()
	if err != nil {
		return token.Token{}, err
	}
	if tok.Kind != k {
		return token.Token{}, &SyntaxError{
			Pos:     tok.Pos,
			Message: fmt.Sprintf("expected %s, found %s %q", k, tok.Kind, tok.Text),
		}
	}
	t.lookahead = nil
	return tok, nil
}

// Permit consumes the next token only if its kind matches, reporting
// whether it did. On a mismatch the token remains buffered.
func (t *Tokenizer) Permit(k token.Kind) (token.Token, bool) {
	tok, err := t.Front()
	if err != nil || tok.Kind != k {
		return token.Token{}, false
	}
	t.lookahead = nil
	return tok, true
}

// IsMore reports whether there is another non-EOF token available.
func (t *Tokenizer) IsMore() bool {
	tok, err := t.Front()
	return err == nil && tok.Kind != token.EOF
}

// lexNext drives the source stack, lexing from the top frame and
// popping exhausted nested frames transparently so callers never see
// an EOF except at the bottom of the stack.
func (t *Tokenizer) lexNext() (token.Token, error) {
	for {
		f := t.top()
		if f == nil {
			return token.Token{Kind: token.EOF}, nil
		}

		t.skipBlanks(f)

		if f.atEOF() {
			if len(t.stack) == 1 {
				return token.Token{Kind: token.EOF, Pos: f.pos0()}, nil
			}
			t.stack = t.stack[:len(t.stack)-1]
			continue
		}

		ch, _ := f.peekByte()

		switch {
		case ch == '\\' && t.isLineContinuation(f):
			t.consumeLineContinuation(f)
			continue
		case ch == '$':
			return t.lexVariable(f)
		case ch == '"':
			return t.lexQuoted(f, '"')
		case ch == '\'':
			return t.lexQuoted(f, '\'')
		case ch == '[':
			return t.lexBracketed(f, '[', ']', token.SUBCOMMAND)
		case ch == '{':
			return t.lexBracketed(f, '{', '}', token.BLOCK)
		case ch == '\n' || ch == ';':
			// ';' is an EOL-equivalent statement separator, letting a
			// block body write several statements on one physical line.
			pos := f.pos0()
			text, _ := f.advanceRune()
			f.atLineStart = true
			return token.Token{Kind: token.EOL, Text: string(text), Pos: pos}, nil
		case ch == '#' && f.atLineStart:
			return t.lexComment(f)
		default:
			return t.lexWord(f)
		}
	}
}

// skipBlanks consumes spaces and tabs (but not newlines) between
// tokens.
func (t *Tokenizer) skipBlanks(f *sourceFrame) {
	for {
		if f.atEOF() {
			return
		}
		b, _ := f.peekByte()
		if b != ' ' && b != '\t' && b != '\r' {
			return
		}
		f.advanceRune()
	}
}

func (t *Tokenizer) isLineContinuation(f *sourceFrame) bool {
	b, ok := f.peekByteAt(1)
	return ok && b == '\n'
}

func (t *Tokenizer) consumeLineContinuation(f *sourceFrame) {
	f.advanceRune() // backslash
	f.advanceRune() // newline
}

func (t *Tokenizer) lexVariable(f *sourceFrame) (token.Token, error) {
	f.atLineStart = false
	pos := f.pos0()
	f.advanceRune() // '$'

	if b, ok := f.peekByte(); ok && b == '{' {
		f.advanceRune() // '{'
		var sb strings.Builder
		for {
			if f.atEOF() {
				return token.Token{}, &SyntaxError{Pos: pos, Message: "unterminated ${ in variable reference"}
			}
			b, _ := f.peekByte()
			if b == '}' {
				f.advanceRune()
				break
			}
			r, _ := f.advanceRune()
			sb.WriteRune(r)
		}
		return token.Token{Kind: token.VARIABLE, Text: sb.String(), Pos: pos, ContentOffset: 2}, nil
	}

	var sb strings.Builder
	for {
		if f.atEOF() {
			break
		}
		b, _ := f.peekByte()
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == ';' {
			break
		}
		r, _ := f.advanceRune()
		sb.WriteRune(r)
	}
	return token.Token{Kind: token.VARIABLE, Text: sb.String(), Pos: pos, ContentOffset: 1}, nil
}

func (t *Tokenizer) lexQuoted(f *sourceFrame, quote byte) (token.Token, error) {
	f.atLineStart = false
	pos := f.pos0()
	f.advanceRune() // opening quote

	var sb strings.Builder
	for {
		if f.atEOF() {
			return token.Token{}, &SyntaxError{Pos: pos, Message: "unterminated string literal"}
		}
		b, _ := f.peekByte()
		if b == '\\' {
			sb.WriteByte(b)
			f.advanceRune()
			if f.atEOF() {
				return token.Token{}, &SyntaxError{Pos: pos, Message: "unterminated escape in string literal"}
			}
			r, _ := f.advanceRune()
			sb.WriteRune(r)
			continue
		}
		if b == quote {
			f.advanceRune()
			break
		}
		if b == '\n' {
			return token.Token{}, &SyntaxError{Pos: pos, Message: "newline in string literal"}
		}
		r, _ := f.advanceRune()
		sb.WriteRune(r)
	}
	return token.Token{Kind: token.STRING, Text: sb.String(), Pos: pos, ContentOffset: 1}, nil
}

// lexBracketed scans a SUBCOMMAND ([...]) or BLOCK ({...}) token,
// tracking nesting of its own delimiter pair. Subcommands additionally
// skip over nested {...} bodies wholesale (newlines are only legal
// there), per §4.2 rule 5. Blocks request more input on exhaustion
// instead of failing, supporting multi-line interactive entry.
func (t *Tokenizer) lexBracketed(f *sourceFrame, open, close byte, kind token.Kind) (token.Token, error) {
	f.atLineStart = false
	pos := f.pos0()
	f.advanceRune() // opening delimiter

	depth := 1
	var sb strings.Builder
	for {
		if f.atEOF() {
			return token.Token{}, &SyntaxError{Pos: pos, Message: fmt.Sprintf("unmatched %q", string(open))}
		}
		b, _ := f.peekByte()

		if kind == token.SUBCOMMAND && b == '{' {
			nested, err := t.lexBracedRegion(f)
			if err != nil {
				return token.Token{}, err
			}
			sb.WriteString(nested)
			continue
		}

		switch b {
		case open:
			depth++
			r, _ := f.advanceRune()
			sb.WriteRune(r)
		case close:
			depth--
			if depth == 0 {
				f.advanceRune()
				return token.Token{Kind: kind, Text: sb.String(), Pos: pos, ContentOffset: 1}, nil
			}
			r, _ := f.advanceRune()
			sb.WriteRune(r)
		case '\n':
			if kind == token.SUBCOMMAND {
				return token.Token{}, &SyntaxError{Pos: pos, Message: "newline not permitted in subcommand outside braces"}
			}
			r, _ := f.advanceRune()
			sb.WriteRune(r)
		default:
			r, _ := f.advanceRune()
			sb.WriteRune(r)
		}
	}
}

// lexBracedRegion consumes one balanced {...} span verbatim (used
// while scanning a subcommand, so the region's newlines and brackets
// don't affect the subcommand's own nesting count).
func (t *Tokenizer) lexBracedRegion(f *sourceFrame) (string, error) {
	pos := f.pos0()
	var sb strings.Builder
	depth := 0
	for {
		if f.atEOF() {
			return "", &SyntaxError{Pos: pos, Message: "unmatched \"{\""}
		}
		b, _ := f.peekByte()
		r, _ := f.advanceRune()
		sb.WriteRune(r)
		switch b {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return sb.String(), nil
			}
		}
	}
}

func (t *Tokenizer) lexComment(f *sourceFrame) (token.Token, error) {
	f.atLineStart = false
	pos := f.pos0()
	f.advanceRune() // '#'
	var sb strings.Builder
	for {
		if f.atEOF() {
			break
		}
		b, _ := f.peekByte()
		if b == '\n' {
			break
		}
		r, _ := f.advanceRune()
		sb.WriteRune(r)
	}
	return token.Token{Kind: token.COMMENT, Text: sb.String(), Pos: pos, ContentOffset: 1}, nil
}

func (t *Tokenizer) lexWord(f *sourceFrame) (token.Token, error) {
	pos := f.pos0()
	f.atLineStart = false
	var sb strings.Builder
	for {
		if f.atEOF() {
			break
		}
		b, _ := f.peekByte()
		if b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == ';' {
			break
		}
		r, _ := f.advanceRune()
		sb.WriteRune(r)
	}
	return token.Token{Kind: token.WORD, Text: sb.String(), Pos: pos}, nil
}
