// Package vm implements the stack-based virtual machine that executes a
// compiled chunk.Function: the value stack, the call-frame stack, the
// globals table, and the string intern table (spec.md §4.4, §4.5).
package vm

import (
	"io"

	"github.com/dolthub/swiss"
	"github.com/sirupsen/logrus"

	"github.com/mna/loxvm/lang/chunk"
	"github.com/mna/loxvm/lang/compiler"
	"github.com/mna/loxvm/lang/value"
)

// maxStack sizes the value stack: maxFrames call frames, each allowed up
// to 256 locals (the compiler's own per-function local cap). It is the
// default initial capacity of the stack, not an enforced limit.
const maxStack = maxFrames * 256

// Options configures a VM instance.
type Options struct {
	// Compiler is threaded through to Interpret's call to compiler.Compile,
	// letting a caller enable or disable grammar extensions like the
	// ternary operator.
	Compiler compiler.Options

	// Tracing turns on per-instruction execution tracing to Log, mirroring
	// the "--tracing" CLI switch (spec.md §6). Off by default: a VM used as
	// a library should be silent unless asked.
	Tracing bool

	// Log receives trace output when Tracing is true. If nil, a default
	// logrus.Logger writing to the stderr passed to New, at Debug level, is
	// used.
	Log *logrus.Logger

	// StackCapacity overrides the initial capacity reserved for the value
	// stack. Zero means maxStack. It is a preallocation hint, not a hard
	// limit: the stack still grows past it like any Go slice. The CLI
	// sources this from the environment (see internal/maincmd/envconfig.go)
	// so a host process can tune it without a recompile.
	StackCapacity int
}

// VM is one instance of the Lox virtual machine. It owns every root: the
// value stack, the frame stack, globals, and the string intern table. A VM
// is single-threaded and synchronous (spec.md §5); create one per
// goroutine that needs to interpret.
type VM struct {
	opts Options
	log  *logrus.Logger

	stdout io.Writer
	stderr io.Writer

	frames []CallFrame
	stack  []value.Value

	globals *swiss.Map[string, value.Value]
	strings *swiss.Map[string, *value.ObjString]

	// objects roots every heap object this VM has allocated, preventing
	// premature collection for as long as the VM is alive (spec.md §3, §5).
	// Lox as specified here has no garbage collector beyond this: objects
	// are freed in bulk when the VM is torn down.
	objects []value.Object
}

// New creates a VM ready to Interpret programs. stdout/stderr receive
// Print output and diagnostics respectively.
func New(stdout, stderr io.Writer, opts Options) *VM {
	log := opts.Log
	if log == nil {
		log = logrus.New()
		log.Out = stderr
		log.SetLevel(logrus.DebugLevel)
	}
	stackCap := opts.StackCapacity
	if stackCap <= 0 {
		stackCap = maxStack
	}
	return &VM{
		opts:    opts,
		log:     log,
		stdout:  stdout,
		stderr:  stderr,
		frames:  make([]CallFrame, 0, maxFrames),
		stack:   make([]value.Value, 0, stackCap),
		globals: swiss.NewMap[string, value.Value](64),
		strings: swiss.NewMap[string, *value.ObjString](64),
	}
}

// Interpret compiles and runs source as the top-level script. It returns a
// *compiler.CompileError-wrapping error (via multierror) for a Compile
// failure, a *RuntimeError for a Runtime failure, or a *InternalError for
// an unreachable condition.
func (vm *VM) Interpret(source []byte) error {
	fn, err := compiler.Compile(source, vm.opts.Compiler, vm.InternString)
	if err != nil {
		return err
	}

	fnVal := value.FromObject(fn)
	vm.push(fnVal)
	vm.frames = append(vm.frames, CallFrame{Function: fn, IP: 0, BP: 0})

	err = vm.run()

	// Leave the VM's roots intact on both success and failure so a caller
	// inspecting globals afterwards (e.g. a REPL) sees the program's
	// effects; only the per-call stack/frame is unwound.
	vm.stack = vm.stack[:0]
	vm.frames = vm.frames[:0]

	return err
}

// InternString returns the canonical *value.ObjString for s, creating and
// rooting one on first sight. Two calls with equal content always return
// the same pointer (spec.md §4.5).
func (vm *VM) InternString(s string) *value.ObjString {
	if obj, ok := vm.strings.Get(s); ok {
		return obj
	}
	obj := &value.ObjString{Value: s, Hash: value.HashString(s)}
	vm.strings.Put(s, obj)
	vm.objects = append(vm.objects, obj)
	return obj
}

func (vm *VM) push(v value.Value) {
	vm.stack = append(vm.stack, v)
}

func (vm *VM) pop() value.Value {
	v := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return v
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[len(vm.stack)-1-distance]
}

// currentFrame returns the active call frame. The script's is the only one
// this VM ever pushes (see frame.go).
func (vm *VM) currentFrame() *CallFrame {
	return &vm.frames[len(vm.frames)-1]
}

func (vm *VM) currentChunk() *chunk.Chunk {
	return &vm.currentFrame().Function.Chunk
}
