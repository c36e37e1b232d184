package chunk

import "github.com/mna/loxvm/lang/value"

// Function is the compiled form of a Lox function: a name, its arity, and
// the Chunk of bytecode compiled for its body. Per spec.md §1 (Non-goals)
// and §9, only the top-level script function is ever called by the
// observed code paths in this implementation; Function nonetheless carries
// Arity and a dedicated Chunk so that a future extension adding real
// function calls has a CallFrame-compatible container to build on, exactly
// as spec.md §9 recommends.
//
// Function implements value.Object so it can be wrapped in a value.Value
// and pushed onto the VM's stack (slot 0 of the call frame, spec.md §4.4).
type Function struct {
	Name  *value.ObjString // nil for the top-level script
	Arity int
	Chunk Chunk
}

func (f *Function) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return "<fn " + f.Name.Value + ">"
}

func (f *Function) TypeName() string { return "function" }

var _ value.Object = (*Function)(nil)
