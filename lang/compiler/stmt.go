package compiler

import (
	"github.com/mna/loxvm/lang/chunk"
	"github.com/mna/loxvm/lang/token"
)

func (p *Parser) declaration() {
	switch {
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.statement()
	}

	if p.panicMode {
		p.synchronize()
	}
}

func (p *Parser) varDeclaration() {
	global, hasGlobal := p.parseVariable("Expect variable name.")

	if p.match(token.EQ) {
		p.expression()
	} else {
		p.emit(chunk.OpNil)
	}
	p.consume(token.SEMI, "Expect ';' after variable declaration.")

	p.defineVariable(global, hasGlobal)
}

// parseVariable consumes the variable's name and, for a local, declares it
// in the current scope. It returns the constant-pool index of the
// interned name for a global (hasGlobal true), or zero/false for a local,
// which resolves itself by stack position instead.
func (p *Parser) parseVariable(errMsg string) (int, bool) {
	p.consume(token.IDENT, errMsg)
	name := p.previous

	p.declareVariable(name)
	if p.fs.scopeDepth > 0 {
		return 0, false
	}
	return p.identifierConstant(name), true
}

func (p *Parser) declareVariable(name token.Token) {
	if p.fs.scopeDepth == 0 {
		return
	}
	if p.fs.declaredInCurrentScope(name) {
		p.error("Already a variable with this name in this scope.")
		return
	}
	if len(p.fs.locals) >= maxLocals {
		p.error("Too many local variables in function.")
		return
	}
	p.fs.addLocal(name)
}

func (p *Parser) defineVariable(global int, hasGlobal bool) {
	if !hasGlobal {
		p.fs.markInitialized()
		return
	}
	p.emitOperand(chunk.OpDefineGlobal, global)
}

func (p *Parser) statement() {
	switch {
	case p.match(token.PRINT):
		p.printStatement()
	case p.match(token.IF):
		p.ifStatement()
	case p.match(token.WHILE):
		p.whileStatement()
	case p.match(token.FOR):
		p.forStatement()
	case p.match(token.LBRACE):
		p.fs.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

func (p *Parser) printStatement() {
	p.expression()
	p.consume(token.SEMI, "Expect ';' after value.")
	p.emit(chunk.OpPrint)
}

func (p *Parser) expressionStatement() {
	p.expression()
	p.consume(token.SEMI, "Expect ';' after expression.")
	p.emit(chunk.OpPop)
}

func (p *Parser) block() {
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.RBRACE, "Expect '}' after block.")
}

// endScope closes the current scope and emits one OpPop per local that just
// went out of it (spec.md §4.3.1).
func (p *Parser) endScope() {
	n := p.fs.endScope()
	for i := 0; i < n; i++ {
		p.emit(chunk.OpPop)
	}
}

func (p *Parser) ifStatement() {
	p.consume(token.LPAREN, "Expect '(' after 'if'.")
	p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition.")

	thenJump := p.emitJump(chunk.OpJumpIfFalse)
	p.emit(chunk.OpPop)
	p.statement()

	elseJump := p.emitJump(chunk.OpJump)
	p.patchJump(thenJump)
	p.emit(chunk.OpPop)

	if p.match(token.ELSE) {
		p.statement()
	}
	p.patchJump(elseJump)
}

func (p *Parser) whileStatement() {
	loopStart := p.currentChunk().Size()

	p.consume(token.LPAREN, "Expect '(' after 'while'.")
	p.expression()
	p.consume(token.RPAREN, "Expect ')' after condition.")

	exitJump := p.emitJump(chunk.OpJumpIfFalse)
	p.emit(chunk.OpPop)
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emit(chunk.OpPop)
}

func (p *Parser) forStatement() {
	p.fs.beginScope()
	defer p.endScope()

	p.consume(token.LPAREN, "Expect '(' after 'for'.")
	switch {
	case p.match(token.SEMI):
		// No initializer.
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.expressionStatement()
	}

	loopStart := p.currentChunk().Size()
	exitJump := -1
	if !p.match(token.SEMI) {
		p.expression()
		p.consume(token.SEMI, "Expect ';' after loop condition.")
		exitJump = p.emitJump(chunk.OpJumpIfFalse)
		p.emit(chunk.OpPop)
	}

	if !p.match(token.RPAREN) {
		bodyJump := p.emitJump(chunk.OpJump)
		incrStart := p.currentChunk().Size()
		p.expression()
		p.emit(chunk.OpPop)
		p.consume(token.RPAREN, "Expect ')' after for clauses.")

		p.emitLoop(loopStart)
		loopStart = incrStart
		p.patchJump(bodyJump)
	}

	p.statement()
	p.emitLoop(loopStart)

	if exitJump != -1 {
		p.patchJump(exitJump)
		p.emit(chunk.OpPop)
	}
}

// synchronize discards tokens until it reaches a likely statement boundary,
// so a single syntax error doesn't cascade into a wall of spurious ones.
func (p *Parser) synchronize() {
	p.panicMode = false

	for p.current.Kind != token.EOF {
		if p.previous.Kind == token.SEMI {
			return
		}
		switch p.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
