// Package chunk defines the bytecode container the compiler emits into and
// the VM executes: an instruction sequence, a parallel source-line table,
// and a capped constant pool (spec.md §3, §4.2).
//
// Jump offset convention: spec.md §9 invites a cleaner convention than the
// original C/Rust "ip += offset - 1 / ip -= offset + 1" scheme, provided the
// emitter and executor agree. This package measures every jump offset from
// the instruction immediately following the jump itself (i.e. from the
// point the VM's ip has already reached by the time it dispatches the jump),
// and the VM applies the offset with no further adjustment: OpJump and
// OpJumpIfFalse add Operand to ip, OpLoop subtracts Operand from ip. See
// PatchJump and the VM's dispatch loop.
package chunk

import (
	"fmt"

	"github.com/mna/loxvm/lang/value"
)

// maxConstants is the largest number of distinct constants a single Chunk
// may hold; constant indices are addressed by a single byte operand
// (spec.md §3).
const maxConstants = 256

// Instruction is one bytecode instruction: an opcode plus its inline operand
// (constant index, local slot, jump offset, depending on Op).
type Instruction struct {
	Op      OpCode
	Operand int
}

// Chunk is a compiled code unit: opcodes, a parallel source-line map, and a
// constant pool.
type Chunk struct {
	Code      []Instruction
	Lines     []int
	Constants []value.Value
}

// Write appends an instruction with no operand to the chunk, associated with
// the given source line, and returns its index (used by the compiler to
// back-patch jumps later).
func (c *Chunk) Write(op OpCode, line int) int {
	return c.write(Instruction{Op: op}, line)
}

// WriteOperand appends an instruction with an operand to the chunk.
func (c *Chunk) WriteOperand(op OpCode, operand int, line int) int {
	return c.write(Instruction{Op: op, Operand: operand}, line)
}

func (c *Chunk) write(insn Instruction, line int) int {
	c.Code = append(c.Code, insn)
	c.Lines = append(c.Lines, line)
	return len(c.Code) - 1
}

// PatchJump overwrites the operand of the jump/branch instruction at index
// with offset, the distance (in instructions) to jump. It reports an error
// if offset does not fit in a uint16, matching spec.md's "Too much code to
// jump over." boundary (§8).
func (c *Chunk) PatchJump(index int, offset int) error {
	if offset < 0 || offset > 0xFFFF {
		return fmt.Errorf("jump offset %d does not fit in 16 bits", offset)
	}
	c.Code[index].Operand = offset
	return nil
}

// AddConstant appends value v to the constant pool and returns its index. It
// reports an error once the pool would exceed maxConstants entries,
// matching spec.md's "Too many constants in one chunk." boundary (§8).
func (c *Chunk) AddConstant(v value.Value) (int, error) {
	if len(c.Constants) >= maxConstants {
		return 0, fmt.Errorf("too many constants in one chunk")
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1, nil
}

// Size returns the number of instructions currently written to the chunk.
// The compiler uses this to compute jump offsets before patching.
func (c *Chunk) Size() int { return len(c.Code) }

// GetConstant returns the constant at idx.
func (c *Chunk) GetConstant(idx int) value.Value { return c.Constants[idx] }

// GetLine returns the source line associated with the instruction at ip.
func (c *Chunk) GetLine(ip int) int {
	if ip < 0 || ip >= len(c.Lines) {
		return 0
	}
	return c.Lines[ip]
}
