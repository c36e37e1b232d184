package vm_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/loxvm/lang/compiler"
	"github.com/mna/loxvm/lang/vm"
)

func run(t *testing.T, src string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	machine := vm.New(&out, &errOut, vm.Options{Compiler: compiler.DefaultOptions()})
	err = machine.Interpret([]byte(src))
	return out.String(), errOut.String(), err
}

func TestArithmeticAndPrecedence(t *testing.T) {
	out, _, err := run(t, "print 1 + 2 * 3;")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestComparisonAndLogicChain(t *testing.T) {
	out, _, err := run(t, "print !(5 - 4 > 3 * 2 == !nil);")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}

func TestStringConcatenation(t *testing.T) {
	out, _, err := run(t, `var a = "st"; var b = "ring"; print a + b;`)
	require.NoError(t, err)
	require.Equal(t, "string\n", out)
}

func TestLexicalScopeShadowing(t *testing.T) {
	out, _, err := run(t, "var x = 1; { var x = 2; print x; } print x;")
	require.NoError(t, err)
	require.Equal(t, "2\n1\n", out)
}

func TestWhileLoop(t *testing.T) {
	out, _, err := run(t, "var i = 0; while (i < 3) { print i; i = i + 1; }")
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestIfElseWithOr(t *testing.T) {
	out, _, err := run(t, `if (nil or "ok") print "y"; else print "n";`)
	require.NoError(t, err)
	require.Equal(t, "y\n", out)
}

func TestForLoop(t *testing.T) {
	out, _, err := run(t, "for (var i = 0; i < 2; i = i + 1) print i;")
	require.NoError(t, err)
	require.Equal(t, "0\n1\n", out)
}

func TestTernary(t *testing.T) {
	out, _, err := run(t, `print true ? "yes" : "no";`)
	require.NoError(t, err)
	require.Equal(t, "yes\n", out)
}

func TestStringInterningAcrossLiterals(t *testing.T) {
	out, _, err := run(t, `print "hi" == "hi";`)
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}

func TestUndefinedGlobalReadIsRuntimeError(t *testing.T) {
	_, _, err := run(t, "print nope;")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable 'nope'.")
	require.Contains(t, err.Error(), "[line 1] in script")
}

func TestAssignToUndefinedGlobalIsRuntimeError(t *testing.T) {
	_, _, err := run(t, "nope = 1;")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable 'nope'.")
}

func TestDivideByZeroIsRuntimeError(t *testing.T) {
	_, _, err := run(t, "print 1 / 0;")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Illegal divide by zero.")
}

func TestNegateNonNumberIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `print -"a";`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Operand must be a number.")
}

func TestCompareNonNumbersIsRuntimeError(t *testing.T) {
	_, _, err := run(t, `print "a" < 1;`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Operands must be numbers.")
}

func TestCompileErrorDoesNotRun(t *testing.T) {
	out, _, err := run(t, "var ;")
	require.Error(t, err)
	require.Empty(t, out)
}
