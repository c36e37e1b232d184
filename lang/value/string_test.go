package value_test

import (
	"testing"

	"github.com/mna/loxvm/lang/value"
	"github.com/stretchr/testify/require"
)

func TestHashStringDeterministic(t *testing.T) {
	require.Equal(t, value.HashString("hello"), value.HashString("hello"))
	require.NotEqual(t, value.HashString("hello"), value.HashString("world"))
}

func TestObjStringAccessors(t *testing.T) {
	s := &value.ObjString{Value: "abc", Hash: value.HashString("abc")}
	require.Equal(t, "abc", s.String())
	require.Equal(t, "string", s.TypeName())
}
