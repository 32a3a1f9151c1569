// Package parser builds Cutlet's AST (§4.3) from a token stream. A
// SUBCOMMAND token is parsed by a new lexer.Tokenizer and a second
// Parser, seeded through PushToken (see parseSubcommand); STRING bodies
// are scanned by parseInterp. Neither path re-enters the Tokenizer that
// produced the outer token.
package parser

import (
	"strconv"
	"strings"

	"github.com/cutlet-lang/cutlet/internal/ast"
	"github.com/cutlet-lang/cutlet/internal/errors"
	"github.com/cutlet-lang/cutlet/internal/lexer"
	"github.com/cutlet-lang/cutlet/pkg/token"
)

// Parser drives a lexer.Tokenizer to build an *ast.Block.
type Parser struct {
	tok *lexer.Tokenizer
}

// New wraps a tokenizer already positioned at the start of a source
// (the caller is responsible for Push/PushStream/PushToken).
func New(tok *lexer.Tokenizer) *Parser {
	return &Parser{tok: tok}
}

// ParseProgram parses statements until end of file (§4.3's top level:
// "a Block containing zero or more Statements separated by EOL").
func (p *Parser) ParseProgram() (*ast.Block, error) {
	return p.parseBlockUntil(token.EOF)
}

// parseBlockUntil parses statements until a token of kind stop (not
// consumed) or EOF is reached. Its only caller is ParseProgram
// (stop = EOF).
func (p *Parser) parseBlockUntil(stop token.Kind) (*ast.Block, error) {
	front, err := p.tok.Front()
	if err != nil {
		return nil, wrapLexErr(err)
	}
	block := &ast.Block{Position: front.Pos}

	for {
		front, err := p.tok.Front()
		if err != nil {
			return nil, wrapLexErr(err)
		}
		if front.Kind == stop || front.Kind == token.EOF {
			break
		}
		if front.Kind == token.EOL {
			p.tok.GetToken()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Children = append(block.Children, stmt)
		}
	}
	return block, nil
}

func (p *Parser) parseStatement() (ast.Node, error) {
	front, err := p.tok.Front()
	if err != nil {
		return nil, wrapLexErr(err)
	}
	if front.Kind == token.COMMENT {
		p.tok.GetToken()
		return &ast.Comment{Tok: front}, nil
	}
	return p.parseCommand()
}

// parseCommand parses "head argument* EOL" (§4.3).
func (p *Parser) parseCommand() (ast.Node, error) {
	head, err := p.parseHead()
	if err != nil {
		return nil, err
	}
	cmd := &ast.Command{Head: head, Position: head.Pos()}

	for {
		front, err := p.tok.Front()
		if err != nil {
			return nil, wrapLexErr(err)
		}
		if front.Kind == token.EOL || front.Kind == token.EOF {
			break
		}
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		cmd.Args = append(cmd.Args, arg)
	}
	// consume the terminating EOL, if present (EOF ends the stream).
	if front, _ := p.tok.Front(); front.Kind == token.EOL {
		p.tok.GetToken()
	}
	return cmd, nil
}

// parseHead accepts the five node kinds spec §4.3 permits as a
// command's head: WORD, BLOCK, VARIABLE, SUBCOMMAND, STRING.
func (p *Parser) parseHead() (ast.Node, error) {
	return p.parseArg()
}

// parseArg builds the node for one command argument (or head), per
// the per-kind mapping in §4.3: WORD/BLOCK -> Value, STRING ->
// StringInterp, VARIABLE -> Variable, SUBCOMMAND -> Command (built by
// recursive re-entry with the tokenizer pushed onto the subcommand
// text).
func (p *Parser) parseArg() (ast.Node, error) {
	tok, err := p.tok.GetToken()
	if err != nil {
		return nil, wrapLexErr(err)
	}
	switch tok.Kind {
	case token.WORD, token.BLOCK:
		return &ast.Value{Tok: tok}, nil
	case token.VARIABLE:
		return &ast.Variable{Tok: tok}, nil
	case token.STRING:
		return parseInterp(tok)
	case token.SUBCOMMAND:
		return p.parseSubcommand(tok)
	default:
		return nil, errors.NewSyntaxError(tok, "unexpected "+tok.Kind.String()+" in command")
	}
}

// parseSubcommand re-enters the grammar over a SUBCOMMAND token's
// text, anchored at its own absolute source position so nested nodes
// keep correct positions (§4.2's content-offset/push-token contract).
func (p *Parser) parseSubcommand(tok token.Token) (ast.Node, error) {
	sub := lexer.New()
	sub.PushToken(tok)
	subParser := New(sub)
	return subParser.parseCommand()
}

func wrapLexErr(err error) error {
	if se, ok := err.(*lexer.SyntaxError); ok {
		return errors.NewSyntaxError(token.Token{Pos: se.Pos}, se.Message)
	}
	return err
}

// parseInterp implements §4.3's second pass over a STRING token's raw
// body: literal runs, $name/${name} substitutions, [...] subcommand
// substitutions, and backslash escapes.
func parseInterp(tok token.Token) (ast.Node, error) {
	raw := tok.Text
	origin := tok.Pos
	origin.Offset += tok.ContentOffset

	node := &ast.StringInterp{Position: tok.Pos}
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			node.Parts = append(node.Parts, ast.InterpPart{Literal: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	n := len(raw)
	for i < n {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < n:
			r, consumed, err := decodeEscape(raw[i+1:])
			if err != nil {
				return nil, errors.NewSyntaxError(tok, err.Error())
			}
			lit.WriteRune(r)
			i += 1 + consumed
		case c == '$':
			flush()
			sub, consumed, err := scanVariableRef(raw[i:])
			if err != nil {
				return nil, errors.NewSyntaxError(tok, err.Error())
			}
			pos := origin
			pos.Offset += i
			node.Parts = append(node.Parts, ast.InterpPart{Node: &ast.Variable{
				Tok: token.Token{Kind: token.VARIABLE, Text: sub, Pos: pos},
			}})
			i += consumed
		case c == '[':
			flush()
			body, consumed, err := scanBracketed(raw[i:])
			if err != nil {
				return nil, errors.NewSyntaxError(tok, err.Error())
			}
			pos := origin
			pos.Offset += i
			subTok := token.Token{Kind: token.SUBCOMMAND, Text: body, Pos: pos, ContentOffset: 1}
			cmdNode, err := (&Parser{}).parseSubcommand(subTok)
			if err != nil {
				return nil, err
			}
			node.Parts = append(node.Parts, ast.InterpPart{Node: cmdNode})
			i += consumed
		default:
			lit.WriteByte(c)
			i++
		}
	}
	flush()
	return node, nil
}

// decodeEscape decodes the escape sequence starting just after the
// backslash (s does not include the backslash itself). Returns the
// decoded rune and how many bytes of s it consumed.
func decodeEscape(s string) (rune, int, error) {
	if len(s) == 0 {
		return 0, 0, errSyntax("unterminated escape sequence")
	}
	switch s[0] {
	case '\\':
		return '\\', 1, nil
	case '"':
		return '"', 1, nil
	case '\'':
		return '\'', 1, nil
	case '$':
		return '$', 1, nil
	case '[':
		return '[', 1, nil
	case ']':
		return ']', 1, nil
	case 'a':
		return '\a', 1, nil
	case 'b':
		return '\b', 1, nil
	case 'e':
		return 0x1b, 1, nil
	case 'f':
		return '\f', 1, nil
	case 'n':
		return '\n', 1, nil
	case 'r':
		return '\r', 1, nil
	case 't':
		return '\t', 1, nil
	case 'v':
		return '\v', 1, nil
	case 'x':
		if len(s) < 3 {
			return 0, 0, errSyntax("incomplete \\xHH escape")
		}
		n, err := strconv.ParseUint(s[1:3], 16, 8)
		if err != nil {
			return 0, 0, errSyntax("invalid \\xHH escape")
		}
		return rune(n), 3, nil
	default:
		return rune(s[0]), 1, nil
	}
}

// scanVariableRef scans a $name or ${name} reference starting at s[0]
// == '$', mirroring internal/lexer's lexVariable rules but stopping at
// any byte that can't be part of a bare name (interpolation runs
// inside an already-delimited string, so it can't rely on whitespace
// the way top-level tokenizing does). An unterminated ${ is a syntax
// error, matching lexVariable's behavior for the same malformed input
// at top level.
func scanVariableRef(s string) (name string, consumed int, err error) {
	if len(s) >= 2 && s[1] == '{' {
		end := strings.IndexByte(s[2:], '}')
		if end < 0 {
			return "", 0, errSyntax("unterminated ${ in variable reference")
		}
		return s[2 : 2+end], 2 + end + 1, nil
	}
	i := 1
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	return s[1:i], i, nil
}

func isNameByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// scanBracketed scans a balanced [...] span starting at s[0] == '[',
// returning its inner text and total bytes consumed including both
// delimiters.
func scanBracketed(s string) (body string, consumed int, err error) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[1:i], i + 1, nil
			}
		}
	}
	return "", 0, errSyntax("unmatched \"[\" in string interpolation")
}

type syntaxErrString string

func (e syntaxErrString) Error() string { return string(e) }

func errSyntax(msg string) error { return syntaxErrString(msg) }
