package ast_test

import (
	"testing"

	"github.com/mna/simplelisp/lang/ast"
	"github.com/stretchr/testify/require"
)

func TestExprVariantsImplementExpr(t *testing.T) {
	// Compile-time-ish smoke test: every surface node is assignable to Expr.
	var exprs = []ast.Expr{
		ast.True{},
		ast.False{},
		ast.None{},
		ast.Number{Value: 1},
		ast.Float{Value: 1.5},
		ast.String{Value: "s"},
		ast.Char{Value: 'x'},
		ast.Ident{Name: "x"},
		ast.DotIdent{Name: "x"},
		ast.Comment{Text: "c"},
		ast.Module{Name: "m"},
		ast.Def{Name: "x", Data: ast.Number{Value: 1}},
		ast.Set{Name: "x", Data: ast.Number{Value: 1}},
		ast.SetPath{Path: []string{"x", "y"}, Data: ast.Number{Value: 1}},
		ast.Path{Path: []string{"x", "y"}},
		ast.Splat{Expr: ast.Ident{Name: "x"}},
		ast.Begin{Exprs: []ast.Expr{ast.True{}}},
		ast.Call{Exprs: []ast.Expr{ast.Ident{Name: "f"}}},
		ast.Cond{Conditions: []ast.CondArm{{Condition: ast.True{}, Body: ast.Number{Value: 1}}}},
		ast.FnLiteral{Fn: &ast.Fn{}},
		ast.Object{},
		ast.Quote{Expr: ast.True{}},
		ast.Vector{},
		ast.Squiggle{Expr: ast.True{}},
		ast.ReplDirective{Text: ":help"},
	}
	require.Len(t, exprs, 25)
}

func TestParamsHasRemainder(t *testing.T) {
	require.False(t, ast.Params{Items: []string{"x"}}.HasRemainder())
	require.True(t, ast.Params{Remainder: "rest"}.HasRemainder())
}

func TestFnSignatureVariants(t *testing.T) {
	var sig ast.FnSignature = ast.SingleSignature{Params: ast.Params{Items: []string{"x"}}}
	_, ok := sig.(ast.SingleSignature)
	require.True(t, ok)

	sig = ast.MultiSignature{Clauses: []ast.Clause{{Params: ast.Params{}}}}
	_, ok = sig.(ast.MultiSignature)
	require.True(t, ok)
}
