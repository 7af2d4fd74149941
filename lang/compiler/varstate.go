package compiler

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/mna/simplelisp/lang/intern"
)

// VarSlot identifies a variable's storage: either an index into the flat
// globals table, or an index into the current function's local frame.
type VarSlot struct {
	ID     int
	Global bool
}

// DefaultGlobals is the fixed list of builtin global names seeded into every
// VarState at construction, occupying the leading slot ids so that
// VarState.Reset can truncate back to exactly this prefix. It intentionally
// contains no native *implementation* -- wiring a native function to one of
// these names is a dispatch-loop concern, out of scope here -- but their
// names exist so user code can reference or shadow them.
var DefaultGlobals = []string{
	"+", "-", "*", "/", "//", "%",
	"=", "!=", "<", "<=", ">", ">=",
	"and", "or", "not",
	"print", "println",
	"list", "object",
	"len", "type",
	"stdin", "stdout",
}

// VarScope is one open lexical frame: the instruction id of its Scope(0)
// placeholder (patched on close), the absolute slot id its first local
// occupies, and the names declared so far, in insertion order.
type VarScope struct {
	InsID     InstructionID
	StartSlot int
	names     []intern.Ident
	index     map[intern.Ident]int
}

func newVarScope(insID InstructionID, startSlot int) *VarScope {
	return &VarScope{InsID: insID, StartSlot: startSlot, index: make(map[intern.Ident]int)}
}

// VarState resolves identifiers to VarSlots: innermost scope outward, then
// globals.
type VarState struct {
	globals      []intern.Ident
	globalIndex  *swiss.Map[intern.Ident, int]
	defaultCount int

	scopes        []*VarScope
	scopeVarCount int
}

// NewVarState seeds the globals table with DefaultGlobals, interning each
// name (earlier names get smaller Idents, per the interner's order
// guarantee).
func NewVarState(in *intern.Interner) *VarState {
	vs := &VarState{globalIndex: swiss.NewMap[intern.Ident, int](uint32(len(DefaultGlobals)))}
	for _, name := range DefaultGlobals {
		id := in.Intern(name)
		vs.globalIndex.Put(id, len(vs.globals))
		vs.globals = append(vs.globals, id)
	}
	vs.defaultCount = len(vs.globals)
	return vs
}

// Reset drops all locals and any user-added globals, keeping only the
// default globals. Used between independent compilation units (modules).
func (vs *VarState) Reset() {
	for _, id := range vs.globals[vs.defaultCount:] {
		vs.globalIndex.Delete(id)
	}
	vs.globals = vs.globals[:vs.defaultCount]
	vs.scopes = nil
	vs.scopeVarCount = 0
}

// ResetLocal drops only the local scope stack, keeping globals intact. Used
// between sibling function clauses/bodies in the same compilation unit.
func (vs *VarState) ResetLocal() {
	vs.scopes = nil
	vs.scopeVarCount = 0
}

// Insert declares name in the current scope (or as a global if no scope is
// open). Re-inserting a name already declared in the innermost open scope
// reuses its existing slot instead of allocating a new one; declaring a
// global that already exists is an error.
func (vs *VarState) Insert(name intern.Ident) (VarSlot, error) {
	if len(vs.scopes) == 0 {
		if _, ok := vs.globalIndex.Get(name); ok {
			return VarSlot{}, fmt.Errorf("%w: global already declared", ErrDuplicateGlobal)
		}
		id := len(vs.globals)
		vs.globalIndex.Put(name, id)
		vs.globals = append(vs.globals, name)
		return VarSlot{ID: id, Global: true}, nil
	}

	scope := vs.scopes[len(vs.scopes)-1]
	if offset, ok := scope.index[name]; ok {
		return VarSlot{ID: offset + scope.StartSlot, Global: false}, nil
	}

	vs.scopeVarCount++
	offset := len(scope.names)
	scope.index[name] = offset
	scope.names = append(scope.names, name)
	return VarSlot{ID: offset + scope.StartSlot, Global: false}, nil
}

// PushScope opens a new local scope whose Scope(0) placeholder is at insID,
// seeded with start_slot = the current total live local count.
func (vs *VarState) PushScope(insID InstructionID) {
	vs.scopes = append(vs.scopes, newVarScope(insID, vs.scopeVarCount))
}

// PopScope closes the innermost scope, returning its placeholder id and the
// number of fresh slots it declared, and decrements the live local count by
// that many.
func (vs *VarState) PopScope() (InstructionID, int) {
	n := len(vs.scopes)
	scope := vs.scopes[n-1]
	vs.scopes = vs.scopes[:n-1]
	vs.scopeVarCount -= len(scope.names)
	return scope.InsID, len(scope.names)
}

// Get resolves name to a slot: innermost scope outward, then globals.
// Returns false if unresolved.
func (vs *VarState) Get(name intern.Ident) (VarSlot, bool) {
	for i := len(vs.scopes) - 1; i >= 0; i-- {
		scope := vs.scopes[i]
		if offset, ok := scope.index[name]; ok {
			return VarSlot{ID: offset + scope.StartSlot, Global: false}, true
		}
	}
	if id, ok := vs.globalIndex.Get(name); ok {
		return VarSlot{ID: id, Global: true}, true
	}
	return VarSlot{}, false
}
