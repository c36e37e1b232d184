package vm

import "github.com/mna/loxvm/lang/chunk"

// maxFrames bounds the call-frame stack. Only the script frame is ever
// pushed by this VM (spec.md §1 Non-goals: no user-defined function
// calls), but the cap mirrors the original's recursion guard and gives a
// future extension that adds calls a limit to enforce.
const maxFrames = 64

// CallFrame is one function activation: which function is running, its
// instruction pointer into that function's chunk, and the base index into
// the value stack at which its local slot 0 begins.
type CallFrame struct {
	Function *chunk.Function
	IP       int
	BP       int
}
