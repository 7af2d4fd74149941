package compiler

import "github.com/mna/simplelisp/lang/intern"

// ConvertState is the compiler's accumulated state: the interner, the
// instruction stream being built, the function table, the module tree, and
// the lexical variable resolver. One ConvertState is shared across an
// entire compilation (root unit plus every queued function and module).
type ConvertState struct {
	Interner     *intern.Interner
	Instructions *InstructionStore
	Vars         *VarState
	Modules      *ModuleTree

	fns      []*Fn // index i holds Fn for FnID(i), nil until filled in
	Warnings []error
}

// NewConvertState returns a fresh state with globals seeded from
// DefaultGlobals.
func NewConvertState() *ConvertState {
	in := intern.New()
	return &ConvertState{
		Interner:     in,
		Instructions: NewInstructionStore(),
		Vars:         NewVarState(in),
		Modules:      NewModuleTree(),
	}
}

// Fn returns the compiled function for id. Panics if unreserved or
// unfilled.
func (s *ConvertState) Fn(id FnID) *Fn {
	if int(id) >= len(s.fns) || s.fns[id] == nil {
		panic("compiler: Fn: invalid or unfilled function id")
	}
	return s.fns[id]
}

// ReserveFn allocates a new, as-yet-unfilled FnID.
func (s *ConvertState) ReserveFn() FnID {
	id := FnID(len(s.fns))
	s.fns = append(s.fns, nil)
	return id
}

// FnCount returns the number of functions reserved so far.
func (s *ConvertState) FnCount() int { return len(s.fns) }

func (s *ConvertState) fillFn(id FnID, fn *Fn) {
	if s.fns[id] != nil {
		panic("compiler: fillFn: function already filled")
	}
	s.fns[id] = fn
}

// DefVar interns name and declares it as a new variable, returning its
// ident and slot.
func (s *ConvertState) DefVar(name string) (intern.Ident, VarSlot, error) {
	id := s.Interner.Intern(name)
	slot, err := s.Vars.Insert(id)
	return id, slot, err
}

// DefVarIdent declares an already-interned name as a new variable.
func (s *ConvertState) DefVarIdent(id intern.Ident) (VarSlot, error) {
	return s.Vars.Insert(id)
}

// LookupVar interns name and resolves it to a slot.
func (s *ConvertState) LookupVar(name string) (VarSlot, bool) {
	id := s.Interner.Intern(name)
	return s.Vars.Get(id)
}

func (s *ConvertState) warn(err error) { s.Warnings = append(s.Warnings, err) }

// NextInsID returns the id the next emitted instruction will have.
func (s *ConvertState) NextInsID() InstructionID { return s.Instructions.NextID() }

// CurInsID returns the id of the last emitted instruction.
func (s *ConvertState) CurInsID() InstructionID { return s.Instructions.CurrentID() }

// StartScope opens a lexical scope: pushes a Scope(0) placeholder and a
// matching VarScope frame.
func (s *ConvertState) StartScope() {
	id := s.Instructions.Push(Scope{N: 0})
	s.Vars.PushScope(id)
}

// EndScope closes the innermost open scope: pops its VarScope frame,
// back-patches its Scope(0) placeholder with the final slot count, and
// emits the matching EndScope.
func (s *ConvertState) EndScope() {
	id, count := s.Vars.PopScope()
	s.Instructions.Set(id, Scope{N: count})
	s.Instructions.Push(EndScope{N: count})
}
