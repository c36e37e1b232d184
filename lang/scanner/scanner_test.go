package scanner_test

import (
	"testing"

	"github.com/mna/loxvm/lang/scanner"
	"github.com/mna/loxvm/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()

	var s scanner.Scanner
	s.Init([]byte(src))

	var toks []token.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "(){},.-+;*/?:!!====<<=>>=")
	require.Equal(t, []token.Kind{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.MINUS, token.PLUS, token.SEMI, token.STAR, token.SLASH,
		token.QMARK, token.COLON, token.BANG, token.BANG_EQ, token.EQ_EQ,
		token.LT, token.LT_EQ, token.GT, token.GT_EQ, token.EOF,
	}, kinds(toks))
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "and class else false for fun if nil or print return super this true var while orchid")
	want := []token.Kind{
		token.AND, token.CLASS, token.ELSE, token.FALSE, token.FOR, token.FUN,
		token.IF, token.NIL, token.OR, token.PRINT, token.RETURN, token.SUPER,
		token.THIS, token.TRUE, token.VAR, token.WHILE, token.IDENT, token.EOF,
	}
	require.Equal(t, want, kinds(toks))
	require.Equal(t, "orchid", toks[len(toks)-2].Lexeme)
}

func TestScanNumbers(t *testing.T) {
	toks := scanAll(t, "123 1.5 0.25")
	require.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))

	n, err := scanner.ParseNumber(toks[1].Lexeme)
	require.NoError(t, err)
	require.Equal(t, 1.5, n)
}

func TestScanNumberDotWithoutFractionalDigitIsTwoTokens(t *testing.T) {
	// A trailing '.' with no digit after it is not part of the number.
	toks := scanAll(t, "123.")
	require.Equal(t, []token.Kind{token.NUMBER, token.DOT, token.EOF}, kinds(toks))
}

func TestScanStrings(t *testing.T) {
	toks := scanAll(t, `"hello" "multi
line"`)
	require.Equal(t, []token.Kind{token.STRING, token.STRING, token.EOF}, kinds(toks))
	require.Equal(t, "hello", scanner.StringValue(toks[0]))
	require.Equal(t, "multi\nline", scanner.StringValue(toks[1]))
	// The second string starts on line 1 and the scanner should be on line 2
	// by the time it finishes, tracked via the following EOF's line.
	require.Equal(t, 2, toks[2].Line)
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(t, `"oops`)
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
	require.Contains(t, toks[0].Lexeme, "unterminated string")
}

func TestScanUnterminatedBlockComment(t *testing.T) {
	toks := scanAll(t, "/* never closes")
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
	require.Contains(t, toks[0].Lexeme, "unterminated block comment")
}

func TestScanComments(t *testing.T) {
	toks := scanAll(t, "1 // line comment\n2 /* block\ncomment */ 3")
	require.Equal(t, []token.Kind{token.NUMBER, token.NUMBER, token.NUMBER, token.EOF}, kinds(toks))
	require.Equal(t, "1", toks[0].Lexeme)
	require.Equal(t, "2", toks[1].Lexeme)
	require.Equal(t, "3", toks[2].Lexeme)
	require.Equal(t, 3, toks[2].Line)
}

func TestScanIllegalCharacter(t *testing.T) {
	toks := scanAll(t, "@")
	require.Equal(t, token.ILLEGAL, toks[0].Kind)
	require.Contains(t, toks[0].Lexeme, "unexpected character")
}

func TestScanTracksLineNumbers(t *testing.T) {
	toks := scanAll(t, "var a = 1;\nvar b = 2;\nprint a + b;")
	require.Equal(t, 1, toks[0].Line)
	// "print" keyword is on line 3.
	var printLine int
	for _, tok := range toks {
		if tok.Kind == token.PRINT {
			printLine = tok.Line
		}
	}
	require.Equal(t, 3, printLine)
}
