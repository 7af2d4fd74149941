package compiler_test

import (
	"errors"
	"testing"

	"github.com/mna/simplelisp/lang/compiler"
	"github.com/mna/simplelisp/lang/intern"
	"github.com/stretchr/testify/require"
)

func TestVarStateDefaultGlobals(t *testing.T) {
	in := intern.New()
	vs := compiler.NewVarState(in)

	plus := in.Intern("+")
	slot, ok := vs.Get(plus)
	require.True(t, ok)
	require.True(t, slot.Global)
}

func TestVarStateInsertLocalShadowsGlobal(t *testing.T) {
	in := intern.New()
	vs := compiler.NewVarState(in)

	vs.PushScope(compiler.InvalidInstructionID)
	name := in.Intern("+") // a default global

	slot, err := vs.Insert(name)
	require.NoError(t, err)
	require.False(t, slot.Global)

	got, ok := vs.Get(name)
	require.True(t, ok)
	require.Equal(t, slot, got)
}

func TestVarStateInsertDuplicateGlobalErrors(t *testing.T) {
	in := intern.New()
	vs := compiler.NewVarState(in)

	name := in.Intern("custom-global")
	_, err := vs.Insert(name)
	require.NoError(t, err)

	_, err = vs.Insert(name)
	require.True(t, errors.Is(err, compiler.ErrDuplicateGlobal))
}

func TestVarStateNestedScopesResolveInnermostFirst(t *testing.T) {
	in := intern.New()
	vs := compiler.NewVarState(in)
	name := in.Intern("x")

	vs.PushScope(compiler.InvalidInstructionID)
	outer, err := vs.Insert(name)
	require.NoError(t, err)

	vs.PushScope(compiler.InvalidInstructionID)
	inner, err := vs.Insert(name)
	require.NoError(t, err)
	require.NotEqual(t, outer, inner)

	got, ok := vs.Get(name)
	require.True(t, ok)
	require.Equal(t, inner, got)

	insID, n := vs.PopScope()
	require.Equal(t, compiler.InvalidInstructionID, insID)
	require.Equal(t, 1, n)

	got, ok = vs.Get(name)
	require.True(t, ok)
	require.Equal(t, outer, got)
}

func TestVarStateResetDropsUserGlobalsAndLocals(t *testing.T) {
	in := intern.New()
	vs := compiler.NewVarState(in)

	custom := in.Intern("custom")
	_, err := vs.Insert(custom)
	require.NoError(t, err)

	vs.PushScope(compiler.InvalidInstructionID)
	local := in.Intern("x")
	_, err = vs.Insert(local)
	require.NoError(t, err)

	vs.Reset()

	_, ok := vs.Get(custom)
	require.False(t, ok)
	_, ok = vs.Get(local)
	require.False(t, ok)

	plus := in.Intern("+")
	_, ok = vs.Get(plus)
	require.True(t, ok)
}

func TestVarStateResetLocalKeepsGlobals(t *testing.T) {
	in := intern.New()
	vs := compiler.NewVarState(in)

	custom := in.Intern("custom")
	_, err := vs.Insert(custom)
	require.NoError(t, err)

	vs.PushScope(compiler.InvalidInstructionID)
	local := in.Intern("x")
	_, err = vs.Insert(local)
	require.NoError(t, err)

	vs.ResetLocal()

	_, ok := vs.Get(local)
	require.False(t, ok)
	_, ok = vs.Get(custom)
	require.True(t, ok)
}

func TestVarStateGetUnresolved(t *testing.T) {
	in := intern.New()
	vs := compiler.NewVarState(in)

	_, ok := vs.Get(in.Intern("nowhere"))
	require.False(t, ok)
}
