package compiler_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/loxvm/lang/chunk"
	"github.com/mna/loxvm/lang/compiler"
	"github.com/mna/loxvm/lang/value"
)

func newInterner() compiler.InternFunc {
	seen := make(map[string]*value.ObjString)
	return func(s string) *value.ObjString {
		if obj, ok := seen[s]; ok {
			return obj
		}
		obj := &value.ObjString{Value: s, Hash: value.HashString(s)}
		seen[s] = obj
		return obj
	}
}

func compile(t *testing.T, src string, opts compiler.Options) (*chunk.Function, error) {
	t.Helper()
	return compiler.Compile([]byte(src), opts, newInterner())
}

func opSeq(fn *chunk.Function) []chunk.OpCode {
	ops := make([]chunk.OpCode, len(fn.Chunk.Code))
	for i, insn := range fn.Chunk.Code {
		ops[i] = insn.Op
	}
	return ops
}

func TestArithmeticPrecedence(t *testing.T) {
	fn, err := compile(t, "1 + 2 * 3;", compiler.DefaultOptions())
	require.NoError(t, err)

	ops := opSeq(fn)
	mulIdx, addIdx := -1, -1
	for i, op := range ops {
		switch op {
		case chunk.OpMultiply:
			mulIdx = i
		case chunk.OpAdd:
			addIdx = i
		}
	}
	require.NotEqual(t, -1, mulIdx)
	require.NotEqual(t, -1, addIdx)
	require.Less(t, mulIdx, addIdx, "multiplication must be emitted before addition")
	require.Contains(t, ops, chunk.OpPop, "expression statement must pop its result")
}

func TestGlobalVarDeclAndUse(t *testing.T) {
	fn, err := compile(t, "var a = 1; print a;", compiler.DefaultOptions())
	require.NoError(t, err)

	ops := opSeq(fn)
	require.Contains(t, ops, chunk.OpDefineGlobal)
	require.Contains(t, ops, chunk.OpGetGlobal)
	require.Contains(t, ops, chunk.OpPrint)
	require.NotContains(t, ops, chunk.OpGetLocal)
}

func TestLocalScopeUsesLocalOps(t *testing.T) {
	fn, err := compile(t, "{ var a = 1; print a; }", compiler.DefaultOptions())
	require.NoError(t, err)

	ops := opSeq(fn)
	require.Contains(t, ops, chunk.OpGetLocal)
	require.NotContains(t, ops, chunk.OpDefineGlobal)
	require.NotContains(t, ops, chunk.OpGetGlobal)
	// One OpPop for the local going out of scope, plus the print statement
	// leaves no pop of its own (OpPrint consumes it).
	require.Contains(t, ops, chunk.OpPop)
}

func TestReadOwnInitializerIsError(t *testing.T) {
	_, err := compile(t, "{ var a = a; }", compiler.DefaultOptions())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Can't read local variable in its own initializer.")
}

func TestRedeclareLocalSameScopeIsError(t *testing.T) {
	_, err := compile(t, "{ var a = 1; var a = 2; }", compiler.DefaultOptions())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Already a variable with this name in this scope.")
}

func TestRedeclareGlobalIsAllowed(t *testing.T) {
	_, err := compile(t, "var a = 1; var a = 2;", compiler.DefaultOptions())
	require.NoError(t, err)
}

func TestShadowingInNestedScopeIsAllowed(t *testing.T) {
	_, err := compile(t, "var a = 1; { var a = 2; }", compiler.DefaultOptions())
	require.NoError(t, err)
}

func TestIfElseEmitsJumps(t *testing.T) {
	fn, err := compile(t, `if (true) print "y"; else print "n";`, compiler.DefaultOptions())
	require.NoError(t, err)
	ops := opSeq(fn)
	require.Contains(t, ops, chunk.OpJumpIfFalse)
	require.Contains(t, ops, chunk.OpJump)
}

func TestWhileLoopEmitsLoop(t *testing.T) {
	fn, err := compile(t, "var i = 0; while (i < 3) { i = i + 1; }", compiler.DefaultOptions())
	require.NoError(t, err)
	require.Contains(t, opSeq(fn), chunk.OpLoop)
}

func TestForLoopEmitsLoop(t *testing.T) {
	fn, err := compile(t, "for (var i = 0; i < 2; i = i + 1) print i;", compiler.DefaultOptions())
	require.NoError(t, err)
	require.Contains(t, opSeq(fn), chunk.OpLoop)
}

func TestTernaryEnabledByDefault(t *testing.T) {
	_, err := compile(t, "print true ? 1 : 2;", compiler.DefaultOptions())
	require.NoError(t, err)
}

func TestTernaryDisabledIsError(t *testing.T) {
	_, err := compile(t, "1 ? 2 : 3;", compiler.Options{EnableTernary: false})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Expect expression.")
}

func TestTooManyConstantsIsError(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&sb, "print %d;\n", i)
	}
	_, err := compile(t, sb.String(), compiler.DefaultOptions())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Too many constants in one chunk.")
}

func TestTooManyLocalsIsError(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("{\n")
	for i := 0; i < 300; i++ {
		fmt.Fprintf(&sb, "var a%d = 0;\n", i)
	}
	sb.WriteString("}\n")
	_, err := compile(t, sb.String(), compiler.DefaultOptions())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Too many local variables in function.")
}

func TestInvalidAssignmentTarget(t *testing.T) {
	_, err := compile(t, "1 + 2 = 3;", compiler.DefaultOptions())
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid assignment target.")
}

func TestSyntaxErrorRecoversAndReportsMultiple(t *testing.T) {
	_, err := compile(t, "var ; var ;", compiler.DefaultOptions())
	require.Error(t, err)
	// synchronize should let the parser find and report the second error too.
	require.GreaterOrEqual(t, strings.Count(err.Error(), "Expect variable name."), 2)
}
