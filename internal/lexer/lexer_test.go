package lexer

import (
	"testing"

	"github.com/ucodekit/ucls/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `let five = 5;
const pi = 3.14;
if (a != null && type(b) == "int") { b += 1; }
let re = /ab+c/i;
let h = 0x1f;`

	expected := []struct {
		typ token.Type
		lit string
	}{
		{token.LET, "let"}, {token.IDENT, "five"}, {token.ASSIGN, "="}, {token.INT, "5"}, {token.SEMICOLON, ";"},
		{token.CONST, "const"}, {token.IDENT, "pi"}, {token.ASSIGN, "="}, {token.DOUBLE, "3.14"}, {token.SEMICOLON, ";"},
		{token.IF, "if"}, {token.LPAREN, "("}, {token.IDENT, "a"}, {token.NOT_EQ, "!="}, {token.NULL, "null"},
		{token.AND, "&&"}, {token.IDENT, "type"}, {token.LPAREN, "("}, {token.IDENT, "b"}, {token.RPAREN, ")"},
		{token.EQ, "=="}, {token.STRING, "int"}, {token.RPAREN, ")"},
		{token.LBRACE, "{"}, {token.IDENT, "b"}, {token.PLUS_ASSIGN, "+="}, {token.INT, "1"}, {token.SEMICOLON, ";"}, {token.RBRACE, "}"},
		{token.LET, "let"}, {token.IDENT, "re"}, {token.ASSIGN, "="}, {token.REGEX, "/ab+c/i"}, {token.SEMICOLON, ";"},
		{token.LET, "let"}, {token.IDENT, "h"}, {token.ASSIGN, "="}, {token.INT, "0x1f"}, {token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, want := range expected {
		tok := l.Next()
		if tok.Type != want.typ {
			t.Fatalf("token %d: type = %q, want %q (literal %q)", i, tok.Type, want.typ, tok.Literal)
		}
		if tok.Literal != want.lit {
			t.Fatalf("token %d: literal = %q, want %q", i, tok.Literal, want.lit)
		}
	}
}

func TestOffsetsAreByteAccurate(t *testing.T) {
	input := "let abc = 42;"
	l := New(input)

	tok := l.Next() // let
	if tok.Start != 0 || tok.End != 3 {
		t.Errorf("let span = [%d,%d), want [0,3)", tok.Start, tok.End)
	}
	tok = l.Next() // abc
	if tok.Start != 4 || tok.End != 7 {
		t.Errorf("abc span = [%d,%d), want [4,7)", tok.Start, tok.End)
	}
	if input[tok.Start:tok.End] != "abc" {
		t.Errorf("span slice = %q", input[tok.Start:tok.End])
	}
}

func TestDivisionVsRegex(t *testing.T) {
	l := New("a / b")
	l.Next() // a
	if tok := l.Next(); tok.Type != token.SLASH {
		t.Errorf("expected division after identifier, got %q %q", tok.Type, tok.Literal)
	}

	l = New("match(s, /x/)")
	for _, want := range []token.Type{token.IDENT, token.LPAREN, token.IDENT, token.COMMA} {
		if tok := l.Next(); tok.Type != want {
			t.Fatalf("unexpected token %q, want %q", tok.Type, want)
		}
	}
	if tok := l.Next(); tok.Type != token.REGEX {
		t.Errorf("expected regex literal after comma, got %q %q", tok.Type, tok.Literal)
	}
}

func TestCommentsAndShebangSkipped(t *testing.T) {
	input := "#!/usr/bin/env ucode\n// line comment\n/* block */ let x = 1;"
	l := New(input)
	if tok := l.Next(); tok.Type != token.LET {
		t.Fatalf("expected let after comments, got %q", tok.Type)
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\t\"c\""`)
	tok := l.Next()
	if tok.Type != token.STRING {
		t.Fatalf("expected string, got %q", tok.Type)
	}
	if tok.Literal != "a\nb\t\"c\"" {
		t.Errorf("escape handling wrong: %q", tok.Literal)
	}
}
