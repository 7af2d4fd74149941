package compiler_test

import (
	"errors"
	"testing"

	"github.com/mna/simplelisp/lang/ast"
	"github.com/mna/simplelisp/lang/compiler"
	"github.com/stretchr/testify/require"
)

type stubLoader struct {
	modules map[string][]ast.Expr
}

func (l stubLoader) Load(path string) ([]ast.Expr, error) {
	exprs, ok := l.modules[path]
	if !ok {
		return nil, errors.New("no such module")
	}
	return exprs, nil
}

func TestConvertEmptyProgram(t *testing.T) {
	state, err := compiler.Convert(nil, stubLoader{})
	require.NoError(t, err)
	require.Equal(t, 1, state.Instructions.Len()) // just the trailing Exit
	require.IsType(t, compiler.Exit{}, state.Instructions.Get(0))
}

func TestConvertLiteralsAndDef(t *testing.T) {
	exprs := []ast.Expr{
		ast.Def{Name: "x", Data: ast.Number{Value: 42}},
		ast.Ident{Name: "x"},
	}
	state, err := compiler.Convert(exprs, stubLoader{})
	require.NoError(t, err)

	it := state.Instructions.Iter()
	ins, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, compiler.NumberLit{Value: 42}, ins)

	ins, ok = it.Next()
	require.True(t, ok)
	setVar, isSet := ins.(compiler.SetVar)
	require.True(t, isSet)
	require.True(t, setVar.Slot.Global)

	ins, ok = it.Next()
	require.True(t, ok)
	getVar, isGet := ins.(compiler.GetVar)
	require.True(t, isGet)
	require.Equal(t, setVar.Slot, getVar.Slot)
}

func TestConvertUnknownIdentErrors(t *testing.T) {
	exprs := []ast.Expr{ast.Ident{Name: "nowhere"}}
	_, err := compiler.Convert(exprs, stubLoader{})
	require.ErrorIs(t, err, compiler.ErrUnknownIdent)
}

func TestConvertUnsupportedConstructs(t *testing.T) {
	cases := []ast.Expr{
		ast.Object{},
		ast.Quote{Expr: ast.True{}},
		ast.Vector{},
		ast.Squiggle{Expr: ast.True{}},
		ast.ReplDirective{Text: ":help"},
	}
	for _, e := range cases {
		_, err := compiler.Convert([]ast.Expr{e}, stubLoader{})
		require.ErrorIs(t, err, compiler.ErrUnsupportedConstruct)
	}
}

func TestConvertUnsupportedCaptures(t *testing.T) {
	fn := &ast.Fn{
		Captures: []string{"outer"},
		Signature: ast.SingleSignature{
			Params: ast.Params{},
			Body:   []ast.Expr{ast.None{}},
		},
	}
	_, err := compiler.Convert([]ast.Expr{ast.FnLiteral{Fn: fn}}, stubLoader{})
	require.ErrorIs(t, err, compiler.ErrUnsupportedCaptures)
}

func TestConvertCallArgumentOrder(t *testing.T) {
	// (+ 1 2): the callee `+` is a default global.
	call := ast.Call{Exprs: []ast.Expr{
		ast.Ident{Name: "+"},
		ast.Number{Value: 1},
		ast.Number{Value: 2},
	}}
	state, err := compiler.Convert([]ast.Expr{call}, stubLoader{})
	require.NoError(t, err)

	var literals []int64
	var sawCall bool
	it := state.Instructions.Iter()
	for {
		ins, ok := it.Next()
		if !ok {
			break
		}
		switch v := ins.(type) {
		case compiler.NumberLit:
			literals = append(literals, v.Value)
		case compiler.Call:
			require.Equal(t, 2, v.N)
			sawCall = true
		}
	}
	// Arguments are lowered in reverse order: last argument first.
	require.Equal(t, []int64{2, 1}, literals)
	require.True(t, sawCall)
}

func TestConvertCondBranches(t *testing.T) {
	cond := ast.Cond{
		Conditions: []ast.CondArm{
			{Condition: ast.True{}, Body: ast.Number{Value: 1}},
			{Condition: ast.False{}, Body: ast.Number{Value: 2}},
		},
		Default: ast.Number{Value: 3},
	}
	state, err := compiler.Convert([]ast.Expr{cond}, stubLoader{})
	require.NoError(t, err)

	var sawJumpIfFalse, sawJump int
	it := state.Instructions.Iter()
	for {
		ins, ok := it.Next()
		if !ok {
			break
		}
		switch ins.(type) {
		case compiler.JumpIfFalse:
			sawJumpIfFalse++
		case compiler.Jump:
			sawJump++
		}
	}
	require.Equal(t, 2, sawJumpIfFalse)
	require.Equal(t, 2, sawJump)
}

func TestConvertModuleLoadError(t *testing.T) {
	exprs := []ast.Expr{ast.Module{Name: "missing"}}
	_, err := compiler.Convert(exprs, stubLoader{})
	require.ErrorIs(t, err, compiler.ErrModule)
}

// TestConvertNestedModuleFlatFileDirectory covers a module loaded from a
// flat outer.slp file (no outer/ directory exists) that itself declares a
// nested module: the nested module must resolve under outer/inner.slp, not
// sibling to outer.slp.
func TestConvertNestedModuleFlatFileDirectory(t *testing.T) {
	loader := stubLoader{
		modules: map[string][]ast.Expr{
			"zzz_flat_outer_test_module.slp":       {ast.Module{Name: "inner"}},
			"zzz_flat_outer_test_module/inner.slp": nil,
		},
	}
	exprs := []ast.Expr{ast.Module{Name: "zzz_flat_outer_test_module"}}
	_, err := compiler.Convert(exprs, loader)
	require.NoError(t, err)
}
