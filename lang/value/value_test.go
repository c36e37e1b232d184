package value_test

import (
	"testing"

	"github.com/mna/loxvm/lang/value"
	"github.com/stretchr/testify/require"
)

func TestZeroValueIsNil(t *testing.T) {
	var v value.Value
	require.True(t, v.IsNil())
	require.Equal(t, "nil", v.String())
	require.Equal(t, "nil", v.TypeName())
}

func TestIsFalsey(t *testing.T) {
	require.True(t, value.Nil.IsFalsey())
	require.True(t, value.Bool(false).IsFalsey())
	require.False(t, value.Bool(true).IsFalsey())
	require.False(t, value.Number(0).IsFalsey())
	require.False(t, value.FromObject(&value.ObjString{Value: ""}).IsFalsey())
}

func TestEqualAcrossVariantsIsFalse(t *testing.T) {
	require.False(t, value.Equal(value.Nil, value.Bool(false)))
	require.False(t, value.Equal(value.Number(0), value.Bool(false)))
	require.True(t, value.Equal(value.Nil, value.Nil))
	require.True(t, value.Equal(value.Number(1), value.Number(1)))
	require.False(t, value.Equal(value.Number(1), value.Number(2)))
}

func TestEqualObjectsByIdentity(t *testing.T) {
	s1 := &value.ObjString{Value: "hi"}
	s2 := &value.ObjString{Value: "hi"}
	v1 := value.FromObject(s1)
	v2 := value.FromObject(s1)
	v3 := value.FromObject(s2)

	require.True(t, value.Equal(v1, v2))
	// Distinct, un-interned handles with equal content are NOT equal: the
	// VM's intern table is what guarantees a single handle per content, not
	// this package.
	require.False(t, value.Equal(v1, v3))
}

func TestNumberStringFormatting(t *testing.T) {
	require.Equal(t, "3", value.Number(3).String())
	require.Equal(t, "3.5", value.Number(3.5).String())
}

func TestAsStringOnNonString(t *testing.T) {
	require.Nil(t, value.Number(1).AsString())
	require.Nil(t, value.Nil.AsString())
}

func TestTypeName(t *testing.T) {
	require.Equal(t, "bool", value.Bool(true).TypeName())
	require.Equal(t, "number", value.Number(1).TypeName())
	require.Equal(t, "string", value.FromObject(&value.ObjString{Value: "x"}).TypeName())
}
