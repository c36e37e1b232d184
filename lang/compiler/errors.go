package compiler

import (
	"fmt"

	"github.com/mna/loxvm/lang/token"
)

// CompileError is a single diagnostic produced while compiling, formatted
// the way spec.md §4.3.4 mandates: "[line L] Error<where>: <message>".
type CompileError struct {
	Line    int
	Where   string // "", " at end", or " at '<lexeme>'"
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true

	var where string
	switch tok.Kind {
	case token.EOF:
		where = " at end"
	case token.ILLEGAL:
		// The scanner already embedded a human-readable message as the
		// lexeme; leave where empty as spec.md §4.3.4 requires for ERROR
		// tokens.
	default:
		where = fmt.Sprintf(" at '%s'", tok.Lexeme)
	}

	p.addError(&CompileError{Line: tok.Line, Where: where, Message: msg})
}

func (p *Parser) error(msg string)          { p.errorAt(p.previous, msg) }
func (p *Parser) errorAtCurrent(msg string) { p.errorAt(p.current, msg) }
