// Package asm implements a human-readable/writable form of a compiled
// instruction stream. This is mostly to support testing of the compiler's
// lowering without asserting against the Instruction structs directly, and
// to support testing a future dispatch loop without going through the
// lexer/parser/resolver front end. A disassembler is also implemented.
//
// The text format looks like this (indentation and spacing is arbitrary):
//
//	code:                      # required
//		NOP
//		JUMP 3                   # jump argument refers to a line index in
//		                          # the code section, translated to an
//		                          # InstructionID on assembly
//		CALL 2
//		GETVAR g0                # g<n> is a global slot, l<n> a local one
//		STRING "abc"
package asm

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/simplelisp/lang/compiler"
	"github.com/mna/simplelisp/lang/intern"
)

var sections = map[string]bool{
	"code:": true,
}

// Disassemble renders store's instructions, in execution order, to the
// textual assembly format. Names interned via in are rendered as their
// source text rather than raw Idents.
func Disassemble(store *compiler.InstructionStore, in *intern.Interner) ([]byte, error) {
	d := &dasm{store: store, in: in, buf: new(bytes.Buffer)}
	return d.run()
}

type dasm struct {
	store *compiler.InstructionStore
	in    *intern.Interner
	buf   *bytes.Buffer
	err   error

	// posOf maps an InstructionID to its line index in the code section, so
	// that jump targets can be printed as indices instead of raw ids.
	posOf map[compiler.InstructionID]int
}

func (d *dasm) run() ([]byte, error) {
	d.posOf = make(map[compiler.InstructionID]int)
	it := d.store.Iter()
	var i int
	for {
		id, ok := it.NextInsID()
		if !ok {
			break
		}
		d.posOf[id] = i
		i++
		if _, ok := it.Next(); !ok {
			break
		}
	}

	d.write("code:\n")
	it = d.store.Iter()
	i = 0
	for {
		ins, ok := it.Next()
		if !ok {
			break
		}
		d.writef("\t%s\t# %03d\n", d.render(ins), i)
		i++
	}
	return d.buf.Bytes(), d.err
}

func (d *dasm) render(ins compiler.Instruction) string {
	switch v := ins.(type) {
	case compiler.Nop:
		return "NOP"
	case compiler.Exit:
		return "EXIT"
	case compiler.Module:
		return fmt.Sprintf("MODULE %d", v.ID)
	case compiler.ReturnModule:
		return "RETURNMODULE"
	case compiler.Func:
		return fmt.Sprintf("FUNC %d", v.ID)
	case compiler.SetVar:
		return fmt.Sprintf("SETVAR %s", d.slot(v.Slot))
	case compiler.GetVar:
		return fmt.Sprintf("GETVAR %s", d.slot(v.Slot))
	case compiler.SetPath:
		names := make([]string, len(v.Path))
		for i, id := range v.Path {
			names[i] = d.name(id)
		}
		return fmt.Sprintf("SETPATH %s %s", d.slot(v.Slot), strings.Join(names, "."))
	case compiler.Field:
		return fmt.Sprintf("FIELD %s", d.name(v.Name))
	case compiler.NumberLit:
		return fmt.Sprintf("NUMBER %d", v.Value)
	case compiler.FloatLit:
		return fmt.Sprintf("FLOAT %s", strconv.FormatFloat(v.Value, 'g', -1, 64))
	case compiler.StringLit:
		return fmt.Sprintf("STRING %s", strconv.Quote(v.Value))
	case compiler.CharLit:
		return fmt.Sprintf("CHAR %s", strconv.QuoteRune(v.Value))
	case compiler.BoolLit:
		if v.Value {
			return "BOOL true"
		}
		return "BOOL false"
	case compiler.ByteLit:
		return fmt.Sprintf("BYTE %d", v.Value)
	case compiler.IdentLit:
		return fmt.Sprintf("IDENT %s", d.name(v.Value))
	case compiler.NoneLit:
		return "NONE"
	case compiler.Splat:
		return "SPLAT"
	case compiler.Call:
		return fmt.Sprintf("CALL %d", v.N)
	case compiler.TailCall:
		return fmt.Sprintf("TAILCALL %d", v.N)
	case compiler.Return:
		return "RETURN"
	case compiler.Scope:
		return fmt.Sprintf("SCOPE %d", v.N)
	case compiler.EndScope:
		return fmt.Sprintf("ENDSCOPE %d", v.N)
	case compiler.JumpIfTrue:
		return fmt.Sprintf("JUMPIFTRUE %d", d.target(v.Target))
	case compiler.JumpIfFalse:
		return fmt.Sprintf("JUMPIFFALSE %d", d.target(v.Target))
	case compiler.Jump:
		return fmt.Sprintf("JUMP %d", d.target(v.Target))
	default:
		d.err = fmt.Errorf("asm: unsupported instruction %T", ins)
		return "???"
	}
}

func (d *dasm) slot(s compiler.VarSlot) string {
	if s.Global {
		return fmt.Sprintf("g%d", s.ID)
	}
	return fmt.Sprintf("l%d", s.ID)
}

func (d *dasm) name(id intern.Ident) string {
	if d.in == nil {
		return fmt.Sprintf("#%d", id)
	}
	return d.in.Get(id)
}

func (d *dasm) target(id compiler.InstructionID) int {
	if pos, ok := d.posOf[id]; ok {
		return pos
	}
	d.err = fmt.Errorf("asm: jump target %d not in this stream", id)
	return -1
}

func (d *dasm) write(s string) {
	if d.err != nil {
		return
	}
	_, d.err = d.buf.WriteString(s)
}

func (d *dasm) writef(format string, args ...any) { d.write(fmt.Sprintf(format, args...)) }

// scanFields is shared with the parser: splits a line into whitespace
// fields, dropping anything from a "#" comment marker onward.
func scanFields(line string) []string {
	fields := strings.Fields(line)
	for i, f := range fields {
		if strings.HasPrefix(f, "#") {
			return fields[:i]
		}
	}
	return fields
}
