package lexer

import (
	"testing"

	"github.com/cutlet-lang/cutlet/pkg/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	tok := New()
	tok.Push(src, token.Position{Line: 1, Column: 1})
	var out []token.Token
	for {
		got, err := tok.GetToken()
		if err != nil {
			t.Fatalf("lex error: %v", err)
		}
		out = append(out, got)
		if got.Kind == token.EOF {
			break
		}
	}
	return out
}

func TestTokenizeWordsAndEOL(t *testing.T) {
	toks := lexAll(t, "print hello\n")
	want := []token.Kind{token.WORD, token.WORD, token.EOL, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
	if toks[0].Text != "print" || toks[1].Text != "hello" {
		t.Errorf("unexpected word text: %+v", toks[:2])
	}
}

func TestTokenizeVariable(t *testing.T) {
	toks := lexAll(t, "$name ${other}\n")
	if toks[0].Kind != token.VARIABLE || toks[0].Text != "name" {
		t.Errorf("got %+v, want VARIABLE name", toks[0])
	}
	if toks[1].Kind != token.VARIABLE || toks[1].Text != "other" {
		t.Errorf("got %+v, want VARIABLE other", toks[1])
	}
}

func TestTokenizeString(t *testing.T) {
	toks := lexAll(t, `"Hello, World"` + "\n")
	if toks[0].Kind != token.STRING || toks[0].Text != "Hello, World" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestTokenizeBlockAndSubcommand(t *testing.T) {
	toks := lexAll(t, "{1 2 3} [add 2 3]\n")
	if toks[0].Kind != token.BLOCK || toks[0].Text != "1 2 3" {
		t.Errorf("got %+v", toks[0])
	}
	if toks[1].Kind != token.SUBCOMMAND || toks[1].Text != "add 2 3" {
		t.Errorf("got %+v", toks[1])
	}
}

func TestTokenizeSemicolonAsEOL(t *testing.T) {
	toks := lexAll(t, "local i = 1; print $i\n")
	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	want := []token.Kind{
		token.WORD, token.WORD, token.WORD, token.WORD, token.EOL,
		token.WORD, token.VARIABLE, token.EOL, token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(kinds), kinds, len(want), want)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("token %d kind = %s, want %s", i, kinds[i], k)
		}
	}
}

func TestTokenizeWordWithMidWordSigil(t *testing.T) {
	toks := lexAll(t, "print abc$x\n")
	if toks[0].Kind != token.WORD || toks[0].Text != "print" {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[1].Kind != token.WORD || toks[1].Text != "abc$x" {
		t.Fatalf("expected a single WORD %q, got %+v", "abc$x", toks[1])
	}
}

func TestTokenizeCommentAtLineStart(t *testing.T) {
	toks := lexAll(t, "# a comment\nprint 1\n")
	if toks[0].Kind != token.COMMENT || toks[0].Text != " a comment" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestTokenizeNestedBraceInsideSubcommand(t *testing.T) {
	toks := lexAll(t, "[foreach x {1 2} {print $x}]\n")
	if toks[0].Kind != token.SUBCOMMAND {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[0].Text != "foreach x {1 2} {print $x}" {
		t.Errorf("subcommand text = %q", toks[0].Text)
	}
}

func TestUnmatchedBraceIsSyntaxError(t *testing.T) {
	tok := New()
	tok.Push("{unterminated", token.Position{Line: 1, Column: 1})
	_, err := tok.GetToken()
	if err == nil {
		t.Fatal("expected a syntax error for an unmatched brace")
	}
	if _, ok := err.(*SyntaxError); !ok {
		t.Fatalf("expected *SyntaxError, got %T", err)
	}
}

func TestTokenizationRoundTrip(t *testing.T) {
	src := `print "Hello, World" $x {block body} [sub cmd]` + "\n"
	tok := New()
	tok.Push(src, token.Position{Line: 1, Column: 1})
	for {
		got, err := tok.GetToken()
		if err != nil {
			t.Fatalf("lex error: %v", err)
		}
		if got.Kind == token.EOF {
			break
		}
		start := got.Pos.Offset + got.ContentOffset
		end := start + len(got.Text)
		if end > len(src) || src[start:end] != got.Text {
			t.Errorf("round-trip failed for token %+v: src[%d:%d]=%q", got, start, end, src[start:min(end, len(src))])
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func TestPermitAndExpect(t *testing.T) {
	tok := New()
	tok.Push("print 1\n", token.Position{Line: 1, Column: 1})
	if _, ok := tok.Permit(token.VARIABLE); ok {
		t.Fatal("Permit should not consume a WORD as VARIABLE")
	}
	if _, err := tok.Expect(token.WORD); err != nil {
		t.Fatalf("Expect(WORD) failed: %v", err)
	}
	if _, err := tok.Expect(token.WORD); err != nil {
		t.Fatalf("Expect(WORD) failed: %v", err)
	}
	if _, err := tok.Expect(token.EOL); err != nil {
		t.Fatalf("Expect(EOL) failed: %v", err)
	}
}

func TestPushTokenPreservesAbsolutePosition(t *testing.T) {
	src := "print [add 1 2]\n"
	tok := New()
	tok.Push(src, token.Position{Line: 1, Column: 1})
	_, _ = tok.GetToken() // "print"
	sub, err := tok.GetToken()
	if err != nil || sub.Kind != token.SUBCOMMAND {
		t.Fatalf("expected SUBCOMMAND, got %+v, err=%v", sub, err)
	}

	tok.PushToken(sub)
	inner, err := tok.GetToken()
	if err != nil {
		t.Fatalf("re-lex error: %v", err)
	}
	wantOffset := sub.Pos.Offset + sub.ContentOffset
	if inner.Pos.Offset != wantOffset {
		t.Errorf("inner token offset = %d, want %d", inner.Pos.Offset, wantOffset)
	}
}
