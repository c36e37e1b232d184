package vm

import (
	"fmt"

	"github.com/mna/loxvm/lang/chunk"
	"github.com/mna/loxvm/lang/value"
)

// run is the VM's single dispatch loop: read the instruction at ip,
// advance ip, act on the opcode (spec.md §4.4). It returns when the script
// frame returns, or on the first runtime or internal error.
func (vm *VM) run() error {
	frame := vm.currentFrame()
	chk := &frame.Function.Chunk

	for {
		insn := chk.Code[frame.IP]
		line := chk.GetLine(frame.IP)
		frame.IP++

		if vm.opts.Tracing {
			vm.traceInstruction(chk, frame.IP-1)
		}

		switch insn.Op {
		case chunk.OpConstant:
			vm.push(chk.GetConstant(insn.Operand))

		case chunk.OpNil:
			vm.push(value.Nil)
		case chunk.OpTrue:
			vm.push(value.Bool(true))
		case chunk.OpFalse:
			vm.push(value.Bool(false))

		case chunk.OpPop:
			vm.pop()

		case chunk.OpGetLocal:
			vm.push(vm.stack[frame.BP+insn.Operand])
		case chunk.OpSetLocal:
			vm.stack[frame.BP+insn.Operand] = vm.peek(0)

		case chunk.OpGetGlobal:
			name := chk.GetConstant(insn.Operand).AsString()
			v, ok := vm.globals.Get(name.Value)
			if !ok {
				return vm.runtimeError(line, "Undefined variable '%s'.", name.Value)
			}
			vm.push(v)

		case chunk.OpDefineGlobal:
			name := chk.GetConstant(insn.Operand).AsString()
			vm.globals.Put(name.Value, vm.peek(0))
			vm.pop()

		case chunk.OpSetGlobal:
			name := chk.GetConstant(insn.Operand).AsString()
			if !vm.globals.Has(name.Value) {
				return vm.runtimeError(line, "Undefined variable '%s'.", name.Value)
			}
			vm.globals.Put(name.Value, vm.peek(0))

		case chunk.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))

		case chunk.OpGreater:
			b, a := vm.pop(), vm.pop()
			res, err := value.Greater(a, b)
			if err != nil {
				return vm.runtimeError(line, "%s", err)
			}
			vm.push(res)

		case chunk.OpLess:
			b, a := vm.pop(), vm.pop()
			res, err := value.Less(a, b)
			if err != nil {
				return vm.runtimeError(line, "%s", err)
			}
			vm.push(res)

		case chunk.OpAdd:
			b, a := vm.pop(), vm.pop()
			res, err := value.Add(a, b, vm.newInternedString)
			if err != nil {
				return vm.runtimeError(line, "%s", err)
			}
			vm.push(res)

		case chunk.OpSubtract:
			b, a := vm.pop(), vm.pop()
			res, err := value.Subtract(a, b)
			if err != nil {
				return vm.runtimeError(line, "%s", err)
			}
			vm.push(res)

		case chunk.OpMultiply:
			b, a := vm.pop(), vm.pop()
			res, err := value.Multiply(a, b)
			if err != nil {
				return vm.runtimeError(line, "%s", err)
			}
			vm.push(res)

		case chunk.OpDivide:
			b, a := vm.pop(), vm.pop()
			res, err := value.Divide(a, b)
			if err != nil {
				return vm.runtimeError(line, "%s", err)
			}
			vm.push(res)

		case chunk.OpNot:
			vm.push(value.Not(vm.pop()))

		case chunk.OpNegate:
			res, err := value.Negate(vm.pop())
			if err != nil {
				return vm.runtimeError(line, "%s", err)
			}
			vm.push(res)

		case chunk.OpPrint:
			fmt.Fprintln(vm.stdout, vm.pop().String())

		case chunk.OpJump:
			frame.IP += insn.Operand
		case chunk.OpJumpIfFalse:
			if vm.peek(0).IsFalsey() {
				frame.IP += insn.Operand
			}
		case chunk.OpLoop:
			frame.IP -= insn.Operand

		case chunk.OpReturn:
			return nil

		default:
			return &InternalError{Message: fmt.Sprintf("unhandled opcode %s", insn.Op)}
		}
	}
}

func (vm *VM) runtimeError(line int, format string, args ...any) error {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Line: line}
}

// newInternedString is passed to value.Add as its string-concatenation
// constructor, so the value package stays ignorant of how interning works.
func (vm *VM) newInternedString(s string) value.Value {
	return value.FromObject(vm.InternString(s))
}
