package compiler

import (
	"fmt"

	"github.com/mna/simplelisp/lang/ast"
	"github.com/mna/simplelisp/lang/intern"
)

// convertExprs lowers a sequence of expressions, propagating is_tail only
// to the last one: every earlier expression in a sequence is evaluated for
// effect, only the final one's value escapes the sequence.
func convertExprs(state *ConvertState, td *todos, exprs []ast.Expr, isTail bool) error {
	if len(exprs) == 0 {
		return nil
	}
	last := len(exprs) - 1
	for i, e := range exprs {
		exprIsTail := i == last && isTail
		if err := convertSingleExpr(state, td, e, exprIsTail); err != nil {
			return err
		}
	}
	return nil
}

func convertSingleExpr(state *ConvertState, td *todos, expr ast.Expr, isTail bool) error {
	switch e := expr.(type) {
	case ast.True:
		state.Instructions.Push(BoolLit{Value: true})
	case ast.False:
		state.Instructions.Push(BoolLit{Value: false})
	case ast.None:
		state.Instructions.Push(NoneLit{})
	case ast.Number:
		state.Instructions.Push(NumberLit{Value: e.Value})
	case ast.Float:
		state.Instructions.Push(FloatLit{Value: e.Value})
	case ast.String:
		state.Instructions.Push(StringLit{Value: e.Value})
	case ast.Char:
		state.Instructions.Push(CharLit{Value: e.Value})

	case ast.Ident:
		slot, ok := state.LookupVar(e.Name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownIdent, e.Name)
		}
		state.Instructions.Push(GetVar{Slot: slot})

	case ast.DotIdent:
		id := state.Interner.Intern(e.Name)
		state.Instructions.Push(IdentLit{Value: id})

	case ast.Comment:
		// emits nothing

	case ast.Module:
		id := state.Modules.Reserve()
		state.Instructions.Push(Module{ID: id})
		td.queueModule(id, e.Name)

	case ast.Def:
		if err := convertSingleExpr(state, td, e.Data, false); err != nil {
			return fmt.Errorf("lowering def %s: %w", e.Name, err)
		}
		_, slot, err := state.DefVar(e.Name)
		if err != nil {
			return fmt.Errorf("lowering def %s: %w", e.Name, err)
		}
		state.Instructions.Push(SetVar{Slot: slot})

	case ast.Set:
		if err := convertSingleExpr(state, td, e.Data, false); err != nil {
			return fmt.Errorf("lowering set %s: %w", e.Name, err)
		}
		slot, ok := state.LookupVar(e.Name)
		if !ok {
			return fmt.Errorf("lowering set %s: %w", e.Name, ErrUnknownIdent)
		}
		state.Instructions.Push(SetVar{Slot: slot})

	case ast.SetPath:
		if err := convertSingleExpr(state, td, e.Data, false); err != nil {
			return fmt.Errorf("lowering set path: %w", err)
		}
		root := e.Path[0]
		slot, ok := state.LookupVar(root)
		if !ok {
			return fmt.Errorf("lowering set path %s: %w", root, ErrUnknownIdent)
		}
		path := internPath(state, e.Path[1:])
		state.Instructions.Push(SetPath{Slot: slot, Path: path})

	case ast.Path:
		root := e.Path[0]
		slot, ok := state.LookupVar(root)
		if !ok {
			return fmt.Errorf("lowering path %s: %w", root, ErrUnknownIdent)
		}
		state.Instructions.Push(GetVar{Slot: slot})
		for _, name := range e.Path[1:] {
			id := state.Interner.Intern(name)
			state.Instructions.Push(Field{Name: id})
		}

	case ast.FnLiteral:
		id := state.ReserveFn()
		td.queueFn(id, e.Fn)
		state.Instructions.Push(Func{ID: id})

	case ast.Cond:
		if err := convertCond(state, td, e, isTail); err != nil {
			return fmt.Errorf("lowering cond: %w", err)
		}

	case ast.Splat:
		if err := convertSingleExpr(state, td, e.Expr, false); err != nil {
			return fmt.Errorf("lowering splat: %w", err)
		}
		state.Instructions.Push(Splat{})

	case ast.Begin:
		state.StartScope()
		if err := convertExprs(state, td, e.Exprs, isTail); err != nil {
			return fmt.Errorf("lowering begin: %w", err)
		}
		state.EndScope()

	case ast.Call:
		if err := convertCall(state, td, e, isTail); err != nil {
			return fmt.Errorf("lowering call: %w", err)
		}

	case ast.Object:
		return fmt.Errorf("%w: object literal", ErrUnsupportedConstruct)
	case ast.Quote:
		return fmt.Errorf("%w: quote", ErrUnsupportedConstruct)
	case ast.Vector:
		return fmt.Errorf("%w: vector", ErrUnsupportedConstruct)
	case ast.Squiggle:
		return fmt.Errorf("%w: squiggle", ErrUnsupportedConstruct)
	case ast.ReplDirective:
		return fmt.Errorf("%w: repl directives are not allowed here", ErrUnsupportedConstruct)

	default:
		return fmt.Errorf("compiler: unhandled AST node %T", expr)
	}

	return nil
}

func internPath(state *ConvertState, names []string) []intern.Ident {
	out := make([]intern.Ident, len(names))
	for i, n := range names {
		out[i] = state.Interner.Intern(n)
	}
	return out
}

// convertCall lowers `(f a1 ... an)`. Arguments are pushed in reverse order
// (argument n lowered first, argument 0 lowered last), then the callee, all
// strictly in non-tail position -- only the Call/TailCall instruction
// itself carries the tail-position information. This is a hard contract:
// the dispatch engine expects the callee on top of the operand stack with
// argument 0 just below it, so that argument 0 is on top once the callee
// is popped.
func convertCall(state *ConvertState, td *todos, e ast.Call, isTail bool) error {
	if len(e.Exprs) == 0 {
		return fmt.Errorf("compiler: empty call expression")
	}
	argCount := len(e.Exprs) - 1
	callee := e.Exprs[0]
	args := e.Exprs[1:]

	state.StartScope()

	for i := len(args) - 1; i >= 0; i-- {
		if err := convertSingleExpr(state, td, args[i], false); err != nil {
			return err
		}
	}
	if err := convertSingleExpr(state, td, callee, false); err != nil {
		return err
	}

	state.EndScope()

	if isTail {
		state.Instructions.Push(TailCall{N: argCount})
	} else {
		state.Instructions.Push(Call{N: argCount})
	}
	return nil
}

// convertCond lowers `(cond (c1 b1) ... (ck bk) [default])`. The scope it
// opens is closed on every exit path, unlike a naive port that leaks slot
// numbering into whatever follows (see DESIGN.md).
func convertCond(state *ConvertState, td *todos, e ast.Cond, isTail bool) error {
	state.StartScope()

	var jumpEnds []InstructionID
	var prevJF InstructionID = InvalidInstructionID

	for _, arm := range e.Conditions {
		if prevJF.IsValid() {
			here := state.NextInsID()
			state.Instructions.Set(prevJF, JumpIfFalse{Target: here})
		}

		if err := convertSingleExpr(state, td, arm.Condition, false); err != nil {
			return err
		}

		jf := state.Instructions.Push(Exit{})
		prevJF = jf

		if err := convertSingleExpr(state, td, arm.Body, isTail); err != nil {
			return err
		}

		if isTail {
			state.Instructions.Push(Return{})
		} else {
			end := state.Instructions.Push(Exit{})
			jumpEnds = append(jumpEnds, end)
		}
	}

	if prevJF.IsValid() {
		here := state.NextInsID()
		state.Instructions.Set(prevJF, JumpIfFalse{Target: here})
	}

	if e.Default != nil {
		if err := convertSingleExpr(state, td, e.Default, isTail); err != nil {
			return err
		}
		if isTail {
			state.Instructions.Push(Return{})
		}
	}

	if !isTail {
		after := state.NextInsID()
		for _, loc := range jumpEnds {
			state.Instructions.Set(loc, Jump{Target: after})
		}
	} else if len(jumpEnds) != 0 {
		panic("compiler: tail cond accumulated end-jumps")
	}

	state.EndScope()
	return nil
}
