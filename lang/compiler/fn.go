package compiler

import "github.com/mna/simplelisp/lang/intern"

// FnID identifies a compiled function. IDs are reserved eagerly (before the
// function's body has been lowered) so that a Func instruction can refer to
// a not-yet-compiled function while it waits in the work queue.
type FnID uint32

// Vector is a compiled parameter list: a fixed sequence of names plus an
// optional remainder (variadic) name, with all names already interned.
type Vector struct {
	Items     []intern.Ident
	Remainder *intern.Ident
}

// Matches reports whether this parameter vector accepts exactly count
// arguments: len(Items) <= count, and either it's an exact match or a
// Remainder is present to soak up the rest.
func (v Vector) Matches(count int) bool {
	if len(v.Items) > count {
		return false
	}
	return len(v.Items) == count || v.Remainder != nil
}

// Fn records a compiled function: its id, optional name, captured free
// variables (must be empty -- see ErrUnsupportedCaptures), and signature.
type Fn struct {
	ID       FnID
	Name     *intern.Ident
	Captures []intern.Ident
	Sig      FnSignature
}

// FnSignature is either a Single clause or a Multi (arity-dispatched) set of
// clauses.
type FnSignature interface {
	// MatchArgCount returns the parameter vector and entry point for the
	// clause that should handle a call with the given argument count, or
	// false if no clause matches.
	MatchArgCount(count int) (Vector, InstructionID, bool)
}

// SingleSignature is a function with exactly one clause.
type SingleSignature struct {
	Params  Vector
	BodyPtr InstructionID
}

// MatchArgCount implements FnSignature.
func (s SingleSignature) MatchArgCount(count int) (Vector, InstructionID, bool) {
	if !s.Params.Matches(count) {
		return Vector{}, InvalidInstructionID, false
	}
	return s.Params, s.BodyPtr, true
}

// arityClause is one clause of a MultiSignature: Arity holds the exact
// arity for Exact clauses, or the minimum arity for AtLeast clauses.
type arityClause struct {
	Arity   int
	Params  Vector
	BodyPtr InstructionID
}

// MultiSignature is a function with several arity-dispatched clauses, e.g.
// `(fn ((x) a) ((x y) b) ((x y & rest) c))`. Matching priority: an
// exact-arity match first (a map keyed by arity, so a later clause with the
// same arity replaces an earlier one, and only attempted when count <=
// maxExact), then an at-least match (scanned in declaration order, first
// clause whose minimum arity is <= count wins), then Any if present.
type MultiSignature struct {
	exact    map[int]arityClause
	maxExact int
	atLeast  []arityClause
	any      *arityClause
}

// MatchArgCount implements FnSignature.
func (m *MultiSignature) MatchArgCount(count int) (Vector, InstructionID, bool) {
	if count <= m.maxExact {
		if c, ok := m.exact[count]; ok {
			return c.Params, c.BodyPtr, true
		}
	}
	for _, c := range m.atLeast {
		if count >= c.Arity {
			return c.Params, c.BodyPtr, true
		}
	}
	if m.any != nil {
		return m.any.Params, m.any.BodyPtr, true
	}
	return Vector{}, InvalidInstructionID, false
}

// addClause classifies one converted clause: no remainder -> exact, keyed
// by arity (a later clause with the same arity overwrites an earlier one);
// remainder with zero fixed params -> any (last one wins); remainder with
// >=1 fixed params -> at_least (appended, scanned in declaration order).
func (m *MultiSignature) addClause(params Vector, bodyPtr InstructionID) {
	if params.Remainder == nil {
		arity := len(params.Items)
		if arity > m.maxExact {
			m.maxExact = arity
		}
		if m.exact == nil {
			m.exact = make(map[int]arityClause)
		}
		m.exact[arity] = arityClause{Arity: arity, Params: params, BodyPtr: bodyPtr}
		return
	}
	if len(params.Items) == 0 {
		m.any = &arityClause{Params: params, BodyPtr: bodyPtr}
		return
	}
	m.atLeast = append(m.atLeast, arityClause{Arity: len(params.Items), Params: params, BodyPtr: bodyPtr})
}
