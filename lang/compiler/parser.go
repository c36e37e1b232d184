// Package compiler implements the single-pass Pratt parser/compiler: it
// consumes a token stream and emits bytecode directly into a chunk.Function,
// resolving lexical scope as it goes. There is no intermediate AST.
package compiler

import (
	"github.com/hashicorp/go-multierror"

	"github.com/mna/loxvm/lang/chunk"
	"github.com/mna/loxvm/lang/scanner"
	"github.com/mna/loxvm/lang/token"
	"github.com/mna/loxvm/lang/value"
)

// InternFunc interns s and returns its canonical string object, the same
// way the VM interns runtime-produced strings (spec.md §4.5). The compiler
// has no intern table of its own: string constants must be interned
// through the same table the VM uses at run time, or two equal literals
// would fail the "handle-equality" invariant.
type InternFunc func(s string) *value.ObjString

// Parser drives the token stream one token of lookahead at a time and
// compiles directly into the active function's chunk.
type Parser struct {
	opts   Options
	sc     *scanner.Scanner
	intern InternFunc

	previous, current token.Token

	panicMode bool
	errs      *multierror.Error

	fs *funcState
}

func (p *Parser) addError(err error) {
	p.errs = multierror.Append(p.errs, err)
}

// Compile compiles src into the top-level script function. On success the
// returned error is nil; on a compile error, the returned Function is nil
// (spec.md §7: Compile failures do not produce a usable partial result).
func Compile(src []byte, opts Options, intern InternFunc) (*chunk.Function, error) {
	var sc scanner.Scanner
	sc.Init(src)

	p := &Parser{
		opts:   opts,
		sc:     &sc,
		intern: intern,
		fs:     newFuncState(&chunk.Function{}),
	}

	p.advance()
	for !p.match(token.EOF) {
		p.declaration()
	}
	fn := p.endCompiler()

	if err := p.errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return fn, nil
}

func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.sc.Scan()
		if p.current.Kind != token.ILLEGAL {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *Parser) check(k token.Kind) bool { return p.current.Kind == k }

func (p *Parser) match(k token.Kind) bool {
	if !p.check(k) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(k token.Kind, msg string) {
	if p.check(k) {
		p.advance()
		return
	}
	p.errorAtCurrent(msg)
}

func (p *Parser) currentChunk() *chunk.Chunk { return &p.fs.function.Chunk }

func (p *Parser) emit(op chunk.OpCode) {
	p.currentChunk().Write(op, p.previous.Line)
}

func (p *Parser) emitOperand(op chunk.OpCode, operand int) {
	p.currentChunk().WriteOperand(op, operand, p.previous.Line)
}

func (p *Parser) emitConstant(v value.Value) {
	idx, err := p.currentChunk().AddConstant(v)
	if err != nil {
		p.error("Too many constants in one chunk.")
		return
	}
	p.emitOperand(chunk.OpConstant, idx)
}

// emitJump writes a forward jump with a placeholder operand and returns its
// index, to be fixed up by a later patchJump once the jumped-over region has
// been compiled.
func (p *Parser) emitJump(op chunk.OpCode) int {
	return p.currentChunk().WriteOperand(op, 0, p.previous.Line)
}

// patchJump backpatches the jump at idx so that it lands on the next
// instruction to be emitted (see chunk's package doc for the offset
// convention this and the VM's dispatch loop agree on).
func (p *Parser) patchJump(idx int) {
	offset := p.currentChunk().Size() - (idx + 1)
	if offset < 0 || offset > 0xFFFF {
		p.error("Too much code to jump over.")
		return
	}
	if err := p.currentChunk().PatchJump(idx, offset); err != nil {
		p.error("Too much code to jump over.")
	}
}

// emitLoop emits OpLoop back to loopStart, the chunk index the loop jumps
// back to (the condition's start, or a for loop's increment).
func (p *Parser) emitLoop(loopStart int) {
	idx := p.currentChunk().WriteOperand(chunk.OpLoop, 0, p.previous.Line)
	offset := p.currentChunk().Size() - loopStart
	if offset > 0xFFFF {
		p.error("Loop body too large.")
		return
	}
	if err := p.currentChunk().PatchJump(idx, offset); err != nil {
		p.error("Loop body too large.")
	}
}

func (p *Parser) emitReturn() { p.emit(chunk.OpReturn) }

func (p *Parser) endCompiler() *chunk.Function {
	p.emitReturn()
	return p.fs.function
}
