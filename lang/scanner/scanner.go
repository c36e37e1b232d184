// Some of the scanner package's cursor design is adapted from the nenuphar
// scanner, itself adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner tokenizes Lox source code for the compiler to consume. It
// is a stateful cursor over the source bytes, producing exactly one Token
// per call to Scan.
package scanner

import (
	"fmt"
	"strconv"

	"github.com/mna/loxvm/lang/token"
)

// Scanner is a stateful cursor over a single source file.
type Scanner struct {
	src []byte

	start int // byte offset of the token currently being scanned
	cur   int // byte offset of the next unread byte
	line  int // line of start

	blockCommentUnterminated bool
}

// Init resets the scanner to tokenize src from the beginning.
func (s *Scanner) Init(src []byte) {
	s.src = src
	s.start = 0
	s.cur = 0
	s.line = 1
	s.blockCommentUnterminated = false
}

// Scan skips whitespace and comments, then returns the next token. At end of
// input it returns an EOF token forever after.
func (s *Scanner) Scan() token.Token {
	s.skipWhitespaceAndComments()
	s.start = s.cur
	line := s.line

	if s.blockCommentUnterminated {
		s.blockCommentUnterminated = false
		return s.errorf(line, "unterminated block comment")
	}
	if s.atEnd() {
		return s.make(token.EOF, line)
	}

	c := s.advance()
	switch {
	case isAlpha(c):
		return s.identifier(line)
	case isDigit(c):
		return s.number(line)
	}

	switch c {
	case '(':
		return s.make(token.LPAREN, line)
	case ')':
		return s.make(token.RPAREN, line)
	case '{':
		return s.make(token.LBRACE, line)
	case '}':
		return s.make(token.RBRACE, line)
	case ',':
		return s.make(token.COMMA, line)
	case '.':
		return s.make(token.DOT, line)
	case '-':
		return s.make(token.MINUS, line)
	case '+':
		return s.make(token.PLUS, line)
	case ';':
		return s.make(token.SEMI, line)
	case '*':
		return s.make(token.STAR, line)
	case '/':
		return s.make(token.SLASH, line)
	case '?':
		return s.make(token.QMARK, line)
	case ':':
		return s.make(token.COLON, line)
	case '!':
		if s.matchByte('=') {
			return s.make(token.BANG_EQ, line)
		}
		return s.make(token.BANG, line)
	case '=':
		if s.matchByte('=') {
			return s.make(token.EQ_EQ, line)
		}
		return s.make(token.EQ, line)
	case '<':
		if s.matchByte('=') {
			return s.make(token.LT_EQ, line)
		}
		return s.make(token.LT, line)
	case '>':
		if s.matchByte('=') {
			return s.make(token.GT_EQ, line)
		}
		return s.make(token.GT, line)
	case '"':
		return s.string(line)
	}

	return s.errorf(line, "unexpected character '%c'", c)
}

func (s *Scanner) atEnd() bool { return s.cur >= len(s.src) }

func (s *Scanner) advance() byte {
	c := s.src[s.cur]
	s.cur++
	return c
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.cur]
}

func (s *Scanner) peekNext() byte {
	if s.cur+1 >= len(s.src) {
		return 0
	}
	return s.src[s.cur+1]
}

// matchByte advances and returns true only if the next unread byte is want.
func (s *Scanner) matchByte(want byte) bool {
	if s.atEnd() || s.src[s.cur] != want {
		return false
	}
	s.cur++
	return true
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch c := s.peek(); c {
		case ' ', '\r', '\t':
			s.cur++
		case '\n':
			s.line++
			s.cur++
		case '/':
			if s.cur+1 < len(s.src) && s.src[s.cur+1] == '/' {
				for s.peek() != '\n' && !s.atEnd() {
					s.cur++
				}
			} else if s.cur+1 < len(s.src) && s.src[s.cur+1] == '*' {
				s.skipBlockComment()
				if s.blockCommentUnterminated {
					return
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// skipBlockComment consumes a non-nesting /* ... */ comment, tracking
// newlines. If input ends before the closing "*/", it sets
// blockCommentUnterminated so the next Scan reports an ERROR token.
func (s *Scanner) skipBlockComment() {
	s.cur += 2 // consume "/*"
	for {
		if s.atEnd() {
			s.blockCommentUnterminated = true
			return
		}
		if s.peek() == '*' && s.peekNext() == '/' {
			s.cur += 2
			return
		}
		if s.peek() == '\n' {
			s.line++
		}
		s.cur++
	}
}

func (s *Scanner) identifier(line int) token.Token {
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.cur++
	}
	lit := string(s.src[s.start:s.cur])
	return s.make(token.LookupIdent(lit), line)
}

func (s *Scanner) number(line int) token.Token {
	for isDigit(s.peek()) {
		s.cur++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.cur++ // consume '.'
		for isDigit(s.peek()) {
			s.cur++
		}
	}
	return s.make(token.NUMBER, line)
}

func (s *Scanner) string(line int) token.Token {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.cur++
	}
	if s.atEnd() {
		return s.errorf(line, "unterminated string")
	}
	s.cur++ // closing quote
	return s.make(token.STRING, line)
}

func (s *Scanner) make(kind token.Kind, line int) token.Token {
	return token.Token{Kind: kind, Lexeme: string(s.src[s.start:s.cur]), Line: line}
}

func (s *Scanner) errorf(line int, format string, args ...any) token.Token {
	return token.Token{Kind: token.ILLEGAL, Lexeme: fmt.Sprintf(format, args...), Line: line}
}

// ParseNumber parses a scanned NUMBER token's lexeme as a float64.
func ParseNumber(lexeme string) (float64, error) {
	return strconv.ParseFloat(lexeme, 64)
}

// StringValue returns the decoded contents of a scanned STRING token: the
// lexeme with its surrounding quotes removed. Lox string literals are
// byte-transparent (spec.md §6), so no escape processing is performed.
func StringValue(tok token.Token) string {
	if len(tok.Lexeme) >= 2 {
		return tok.Lexeme[1 : len(tok.Lexeme)-1]
	}
	return tok.Lexeme
}

func isAlpha(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
