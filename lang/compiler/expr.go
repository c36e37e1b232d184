package compiler

import (
	"github.com/mna/loxvm/lang/chunk"
	"github.com/mna/loxvm/lang/scanner"
	"github.com/mna/loxvm/lang/token"
	"github.com/mna/loxvm/lang/value"
)

func (p *Parser) number(_ bool) {
	n, err := scanner.ParseNumber(p.previous.Lexeme)
	if err != nil {
		p.error("Invalid number literal.")
		return
	}
	p.emitConstant(value.Number(n))
}

func (p *Parser) string(_ bool) {
	s := scanner.StringValue(p.previous)
	obj := p.intern(s)
	p.emitConstant(value.FromObject(obj))
}

func (p *Parser) literal(_ bool) {
	switch p.previous.Kind {
	case token.FALSE:
		p.emit(chunk.OpFalse)
	case token.NIL:
		p.emit(chunk.OpNil)
	case token.TRUE:
		p.emit(chunk.OpTrue)
	}
}

func (p *Parser) grouping(_ bool) {
	p.expression()
	p.consume(token.RPAREN, "Expect ')' after expression.")
}

func (p *Parser) unary(_ bool) {
	op := p.previous.Kind

	p.parsePrecedence(precUnary)

	switch op {
	case token.BANG:
		p.emit(chunk.OpNot)
	case token.MINUS:
		p.emit(chunk.OpNegate)
	}
}

func (p *Parser) binary(_ bool) {
	op := p.previous.Kind
	rule := p.rule(op)

	p.parsePrecedence(rule.prec.next())

	switch op {
	case token.BANG_EQ:
		p.emit(chunk.OpEqual)
		p.emit(chunk.OpNot)
	case token.EQ_EQ:
		p.emit(chunk.OpEqual)
	case token.GT:
		p.emit(chunk.OpGreater)
	case token.GT_EQ:
		p.emit(chunk.OpLess)
		p.emit(chunk.OpNot)
	case token.LT:
		p.emit(chunk.OpLess)
	case token.LT_EQ:
		p.emit(chunk.OpGreater)
		p.emit(chunk.OpNot)
	case token.PLUS:
		p.emit(chunk.OpAdd)
	case token.MINUS:
		p.emit(chunk.OpSubtract)
	case token.STAR:
		p.emit(chunk.OpMultiply)
	case token.SLASH:
		p.emit(chunk.OpDivide)
	}
}

// ternary compiles the optional "cond ? then : else" expression, gated by
// Options.EnableTernary. It sits at precTernary, between Assignment and Or,
// the slot the grammar reserved for it but never finished wiring.
func (p *Parser) ternary(_ bool) {
	if !p.opts.EnableTernary {
		p.error("Expect expression.")
		return
	}

	thenJump := p.emitJump(chunk.OpJumpIfFalse)
	p.emit(chunk.OpPop)
	p.parsePrecedence(precTernary)

	elseJump := p.emitJump(chunk.OpJump)
	p.patchJump(thenJump)
	p.emit(chunk.OpPop)

	p.consume(token.COLON, "Expect ':' after then branch of ternary expression.")
	p.parsePrecedence(precTernary)
	p.patchJump(elseJump)
}

func (p *Parser) and(_ bool) {
	endJump := p.emitJump(chunk.OpJumpIfFalse)
	p.emit(chunk.OpPop)
	p.parsePrecedence(precAnd)
	p.patchJump(endJump)
}

func (p *Parser) or(_ bool) {
	elseJump := p.emitJump(chunk.OpJumpIfFalse)
	endJump := p.emitJump(chunk.OpJump)
	p.patchJump(elseJump)
	p.emit(chunk.OpPop)
	p.parsePrecedence(precOr)
	p.patchJump(endJump)
}

func (p *Parser) variable(canAssign bool) { p.namedVariable(p.previous, canAssign) }

func (p *Parser) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp chunk.OpCode
	var arg int

	res := p.fs.resolveLocal(name)
	switch {
	case res.uninitialized:
		p.error("Can't read local variable in its own initializer.")
		return
	case res.found:
		getOp, setOp, arg = chunk.OpGetLocal, chunk.OpSetLocal, res.slot
	default:
		arg = p.identifierConstant(name)
		getOp, setOp = chunk.OpGetGlobal, chunk.OpSetGlobal
	}

	if canAssign && p.match(token.EQ) {
		p.expression()
		p.emitOperand(setOp, arg)
	} else {
		p.emitOperand(getOp, arg)
	}
}

// identifierConstant interns name's lexeme and adds it to the constant
// pool, returning its index, for use as the operand of a Get/Set/Define
// Global instruction.
func (p *Parser) identifierConstant(name token.Token) int {
	obj := p.intern(name.Lexeme)
	idx, err := p.currentChunk().AddConstant(value.FromObject(obj))
	if err != nil {
		p.error("Too many constants in one chunk.")
		return 0
	}
	return idx
}
