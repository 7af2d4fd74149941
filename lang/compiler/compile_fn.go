package compiler

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/mna/simplelisp/lang/ast"
	"github.com/mna/simplelisp/lang/intern"
)

func convertFn(state *ConvertState, td *todos, fn *ast.Fn, id FnID) error {
	var name *intern.Ident
	if fn.Name != "" {
		n := state.Interner.Intern(fn.Name)
		name = &n
	}

	if len(fn.Captures) > 0 {
		return ErrUnsupportedCaptures
	}
	var captures []intern.Ident

	sig, err := convertSignature(state, td, fn.Signature, captures)
	if err != nil {
		return fmt.Errorf("lowering function: %w", err)
	}

	state.fillFn(id, &Fn{ID: id, Name: name, Captures: captures, Sig: sig})
	return nil
}

// defFuncCapParams declares captures then params then the remainder, in
// that order, as fresh local slots for the function body about to be
// lowered.
func defFuncCapParams(state *ConvertState, caps []intern.Ident, params Vector) error {
	// Open the function's own local frame first: with no scope open,
	// VarState.Insert would declare the names as globals.
	state.Vars.PushScope(InvalidInstructionID)
	for _, c := range caps {
		if _, err := state.DefVarIdent(c); err != nil {
			return err
		}
	}
	for _, p := range params.Items {
		if _, err := state.DefVarIdent(p); err != nil {
			return err
		}
	}
	if params.Remainder != nil {
		if _, err := state.DefVarIdent(*params.Remainder); err != nil {
			return err
		}
	}
	return nil
}

func convertSignature(state *ConvertState, td *todos, sig ast.FnSignature, captures []intern.Ident) (FnSignature, error) {
	switch s := sig.(type) {
	case ast.SingleSignature:
		params := convertVector(state, s.Params)
		if err := defFuncCapParams(state, captures, params); err != nil {
			return nil, err
		}

		bodyPtr := state.NextInsID()
		if err := convertExprs(state, td, s.Body, true); err != nil {
			return nil, err
		}
		state.Instructions.Push(Return{})

		return SingleSignature{Params: params, BodyPtr: bodyPtr}, nil

	case ast.MultiSignature:
		multi := &MultiSignature{}
		var seenExactArities []int

		for _, clause := range s.Clauses {
			state.Vars.ResetLocal()

			params := convertVector(state, clause.Params)
			if err := defFuncCapParams(state, captures, params); err != nil {
				return nil, err
			}

			if params.Remainder == nil {
				arity := len(params.Items)
				if slices.Contains(seenExactArities, arity) {
					state.warn(fmt.Errorf("compiler: this clause's exact arity %d overwrites an earlier clause for exactly %d argument(s), making it unreachable", arity, arity))
				} else {
					seenExactArities = append(seenExactArities, arity)
				}
			}

			bodyPtr := state.NextInsID()
			if err := convertExprs(state, td, clause.Body, true); err != nil {
				return nil, err
			}
			state.Instructions.Push(Return{})

			multi.addClause(params, bodyPtr)
		}

		return multi, nil

	default:
		return nil, fmt.Errorf("compiler: unhandled function signature %T", sig)
	}
}

func convertVector(state *ConvertState, params ast.Params) Vector {
	items := make([]intern.Ident, 0, len(params.Items))
	for _, p := range params.Items {
		items = append(items, state.Interner.Intern(p))
	}
	var remainder *intern.Ident
	if params.HasRemainder() {
		r := state.Interner.Intern(params.Remainder)
		remainder = &r
	}
	return Vector{Items: items, Remainder: remainder}
}
