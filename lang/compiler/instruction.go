// Package compiler lowers a parsed surface AST (lang/ast) into a flat,
// linear bytecode stream: it resolves lexical variables to slot indices,
// threads function and module compilation through work queues, emits
// control flow via patched forward jumps, and marks tail positions for
// TailCall. Lexing and parsing are out of scope: Convert takes an
// already-built lang/ast tree, and a ModuleLoader supplies the trees of
// declared modules. So is the fetch/execute dispatch loop
// that consumes the resulting InstructionStore, Fns and Modules.
package compiler

import "github.com/mna/simplelisp/lang/intern"

// InstructionID identifies an Instruction in an InstructionStore's backing
// array. InvalidInstructionID is reserved and never produced by push.
type InstructionID uint32

// InvalidInstructionID marks a not-yet-patched or absent reference.
const InvalidInstructionID InstructionID = ^InstructionID(0)

// IsValid reports whether id was produced by InstructionStore.Push (or one
// of its insert variants).
func (id InstructionID) IsValid() bool { return id != InvalidInstructionID }

// Instruction is any opcode in the bytecode stream. Each implementing
// type's doc comment below gives its semantics.
type Instruction interface {
	instruction()
}

// Nop performs no operation.
type Nop struct{}

// Exit halts the interpreter. It also serves as the converter's jump
// placeholder value before a forward jump target is known -- any
// instruction works as a placeholder since it is always overwritten via
// InstructionStore.Set before the program is handed to the dispatch loop.
type Exit struct{}

// Module enters the top-level body of the given module.
type Module struct{ ID ModuleID }

// ReturnModule leaves the current module's top-level body.
type ReturnModule struct{}

// Func pushes a function value for the given function id.
type Func struct{ ID FnID }

// SetVar stores the last evaluated value into the given slot.
type SetVar struct{ Slot VarSlot }

// GetVar loads the given slot's value.
type GetVar struct{ Slot VarSlot }

// SetPath stores the last evaluated value into a nested field path rooted
// at Slot.
type SetPath struct {
	Slot VarSlot
	Path []intern.Ident
}

// Field replaces the top of stack with top.Name.
type Field struct{ Name intern.Ident }

// NumberLit pushes an integer literal.
type NumberLit struct{ Value int64 }

// FloatLit pushes a float literal.
type FloatLit struct{ Value float64 }

// StringLit pushes a string literal.
type StringLit struct{ Value string }

// CharLit pushes a character literal.
type CharLit struct{ Value rune }

// BoolLit pushes a boolean literal.
type BoolLit struct{ Value bool }

// ByteLit pushes a byte literal.
type ByteLit struct{ Value byte }

// IdentLit pushes an identifier literal (a dotted-identifier, not a
// variable load -- that's GetVar).
type IdentLit struct{ Value intern.Ident }

// NoneLit pushes the none value.
type NoneLit struct{}

// Splat marks the top value as a spread argument for the enclosing call.
type Splat struct{}

// Call invokes the callee on top of stack with N arguments, which must
// already be on the operand stack in reverse order (argument N-1 first,
// argument 0 last, callee last of all).
type Call struct{ N int }

// TailCall is like Call but replaces the current call frame instead of
// pushing a new one.
type TailCall struct{ N int }

// Return pops the current call frame.
type Return struct{}

// Scope opens a lexical scope declaring N new slots. Emitted as a
// placeholder Scope{0} and back-patched once the scope's final slot count
// is known.
type Scope struct{ N int }

// EndScope closes a lexical scope declaring N slots.
type EndScope struct{ N int }

// JumpIfTrue jumps to Target if the last result was truthy.
type JumpIfTrue struct{ Target InstructionID }

// JumpIfFalse jumps to Target if the last result was falsy.
type JumpIfFalse struct{ Target InstructionID }

// Jump jumps unconditionally to Target.
type Jump struct{ Target InstructionID }

func (Nop) instruction()          {}
func (Exit) instruction()         {}
func (Module) instruction()       {}
func (ReturnModule) instruction() {}
func (Func) instruction()         {}
func (SetVar) instruction()       {}
func (GetVar) instruction()       {}
func (SetPath) instruction()      {}
func (Field) instruction()        {}
func (NumberLit) instruction()    {}
func (FloatLit) instruction()     {}
func (StringLit) instruction()    {}
func (CharLit) instruction()      {}
func (BoolLit) instruction()      {}
func (ByteLit) instruction()      {}
func (IdentLit) instruction()     {}
func (NoneLit) instruction()      {}
func (Splat) instruction()        {}
func (Call) instruction()         {}
func (TailCall) instruction()     {}
func (Return) instruction()       {}
func (Scope) instruction()        {}
func (EndScope) instruction()     {}
func (JumpIfTrue) instruction()   {}
func (JumpIfFalse) instruction()  {}
func (Jump) instruction()         {}
