package compiler_test

import (
	"testing"

	"github.com/mna/simplelisp/lang/compiler"
	"github.com/mna/simplelisp/lang/intern"
	"github.com/stretchr/testify/require"
)

func TestVectorMatches(t *testing.T) {
	exact := compiler.Vector{Items: nil}
	require.True(t, exact.Matches(0))
	require.False(t, exact.Matches(1))

	r := intern.Ident(0)
	variadic := compiler.Vector{Remainder: &r}
	require.True(t, variadic.Matches(0))
	require.True(t, variadic.Matches(5))
}

func TestSingleSignatureMatchArgCount(t *testing.T) {
	sig := compiler.SingleSignature{
		Params:  compiler.Vector{Items: make([]intern.Ident, 2)},
		BodyPtr: compiler.InstructionID(7),
	}

	_, _, ok := sig.MatchArgCount(1)
	require.False(t, ok)

	params, body, ok := sig.MatchArgCount(2)
	require.True(t, ok)
	require.Equal(t, compiler.InstructionID(7), body)
	require.Len(t, params.Items, 2)
}
