package token

import "testing"

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		EOF:      "EOF",
		WORD:     "WORD",
		VARIABLE: "VARIABLE",
		STRING:   "STRING",
		BLOCK:    "BLOCK",
		Kind(99): "UNKNOWN",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Offset: 12, Line: 2, Column: 5}
	if got, want := p.String(), "2:5"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
}

func TestTokenStringIsText(t *testing.T) {
	tok := Token{Kind: WORD, Text: "hello", Pos: Position{Line: 1, Column: 1}}
	if got := tok.String(); got != "hello" {
		t.Errorf("Token.String() = %q, want %q", got, "hello")
	}
}
