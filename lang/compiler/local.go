package compiler

import (
	"golang.org/x/exp/slices"

	"github.com/mna/loxvm/lang/chunk"
	"github.com/mna/loxvm/lang/token"
)

// maxLocals bounds the number of locals a single function may declare at
// once; local slots are addressed by a single byte operand.
const maxLocals = 256

// uninitializedDepth marks a local whose initializer has not finished
// compiling yet: it is declared but not readable.
const uninitializedDepth = -1

// local is one entry in a function compiler's lexical scope stack.
type local struct {
	name  token.Token
	depth int
}

// funcState is the per-function compiler state described in spec.md §3:
// the function being filled, its scope depth, and its locals. Lox as
// specified here never compiles more than one function (the top-level
// script; see spec.md §1 Non-goals), so there is no enclosing chain, but
// slot 0 is still reserved the way a callee slot would be, so that a
// future extension adding real calls has a CallFrame-compatible layout to
// build on (spec.md §9).
type funcState struct {
	function   *chunk.Function
	locals     []local
	scopeDepth int
}

func newFuncState(fn *chunk.Function) *funcState {
	return &funcState{
		function: fn,
		// Reserve slot 0 so frame-relative local addressing lines up with the
		// VM's call convention.
		locals: []local{{}},
	}
}

func (f *funcState) beginScope() { f.scopeDepth++ }

// endScope closes the innermost scope and returns the number of locals that
// just went out of scope, so the caller can emit one OpPop per local.
func (f *funcState) endScope() int {
	f.scopeDepth--
	i := len(f.locals)
	for i > 0 && f.locals[i-1].depth > f.scopeDepth {
		i--
	}
	n := len(f.locals) - i
	f.locals = slices.Delete(f.locals, i, len(f.locals))
	return n
}

// addLocal declares name in the current scope as uninitialized. The caller
// must already have verified there is room (see maxLocals) and that name
// does not collide with another local at the same depth.
func (f *funcState) addLocal(name token.Token) {
	f.locals = append(f.locals, local{name: name, depth: uninitializedDepth})
}

// markInitialized sets the most recently declared local's depth to the
// current scope depth, making it readable. A no-op at global scope: globals
// are defined via OpDefineGlobal instead.
func (f *funcState) markInitialized() {
	if f.scopeDepth == 0 {
		return
	}
	f.locals[len(f.locals)-1].depth = f.scopeDepth
}

// resolveLocalResult distinguishes "not found" (global) from "found but
// still initializing" so the caller can turn the latter into a diagnostic
// instead of a silent miss.
type resolveLocalResult struct {
	slot          int
	found         bool
	uninitialized bool
}

func (f *funcState) resolveLocal(name token.Token) resolveLocalResult {
	for i := len(f.locals) - 1; i >= 0; i-- {
		l := f.locals[i]
		if l.name.Lexeme == name.Lexeme {
			if l.depth == uninitializedDepth {
				return resolveLocalResult{uninitialized: true}
			}
			return resolveLocalResult{slot: i, found: true}
		}
	}
	return resolveLocalResult{}
}

// declaredInCurrentScope reports whether name already names a local
// declared at the current scope depth (shadowing an outer scope is fine,
// redeclaring within the same block is not).
func (f *funcState) declaredInCurrentScope(name token.Token) bool {
	for i := len(f.locals) - 1; i >= 0; i-- {
		l := f.locals[i]
		if l.depth != uninitializedDepth && l.depth < f.scopeDepth {
			break
		}
		if l.name.Lexeme == name.Lexeme {
			return true
		}
	}
	return false
}
