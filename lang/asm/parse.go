package asm

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/mna/simplelisp/lang/compiler"
	"github.com/mna/simplelisp/lang/intern"
)

// Assemble parses the textual assembly format produced by Disassemble (or
// written by hand in a test) into an InstructionStore. Names are interned
// via in as they're encountered.
func Assemble(src []byte, in *intern.Interner) (*compiler.InstructionStore, error) {
	a := &asm{s: bufio.NewScanner(bytes.NewReader(src)), in: in, store: compiler.NewInstructionStore()}

	fields := a.next()
	if len(fields) == 0 || !strings.EqualFold(fields[0], "code:") {
		return nil, fmt.Errorf("asm: expected code section")
	}

	var pending []pendingJump
	for fields = a.next(); a.err == nil && len(fields) > 0 && !sections[fields[0]]; fields = a.next() {
		ins, jump, err := a.instruction(fields)
		if err != nil {
			return nil, err
		}
		id := a.store.Push(ins)
		if jump != nil {
			jump.id = id
			pending = append(pending, *jump)
		}
	}
	if a.err != nil {
		return nil, a.err
	}

	for _, p := range pending {
		if p.index < 0 || p.index >= a.store.Len() {
			return nil, fmt.Errorf("asm: jump target index %d out of range", p.index)
		}
		target := compiler.InstructionID(p.index)
		a.store.Set(p.id, p.rewrite(target))
	}

	return a.store, nil
}

type pendingJump struct {
	id      compiler.InstructionID
	index   int
	rewrite func(compiler.InstructionID) compiler.Instruction
}

type asm struct {
	s     *bufio.Scanner
	in    *intern.Interner
	store *compiler.InstructionStore
	err   error
}

func (a *asm) next() []string {
	if a.err != nil {
		return nil
	}
	for a.s.Scan() {
		fields := scanFields(a.s.Text())
		if len(fields) != 0 {
			return fields
		}
	}
	a.err = a.s.Err()
	return nil
}

func (a *asm) instruction(fields []string) (compiler.Instruction, *pendingJump, error) {
	op := strings.ToUpper(fields[0])
	args := fields[1:]

	switch op {
	case "NOP":
		return compiler.Nop{}, nil, nil
	case "EXIT":
		return compiler.Exit{}, nil, nil
	case "MODULE":
		id, err := a.uint32(args, 0)
		return compiler.Module{ID: compiler.ModuleID(id)}, nil, err
	case "RETURNMODULE":
		return compiler.ReturnModule{}, nil, nil
	case "FUNC":
		id, err := a.uint32(args, 0)
		return compiler.Func{ID: compiler.FnID(id)}, nil, err
	case "SETVAR":
		slot, err := a.slot(args, 0)
		return compiler.SetVar{Slot: slot}, nil, err
	case "GETVAR":
		slot, err := a.slot(args, 0)
		return compiler.GetVar{Slot: slot}, nil, err
	case "SETPATH":
		slot, err := a.slot(args, 0)
		if err != nil {
			return nil, nil, err
		}
		if len(args) < 2 {
			return nil, nil, fmt.Errorf("asm: SETPATH requires a dotted path")
		}
		var path []intern.Ident
		for _, name := range strings.Split(args[1], ".") {
			path = append(path, a.in.Intern(name))
		}
		return compiler.SetPath{Slot: slot, Path: path}, nil, nil
	case "FIELD":
		if len(args) != 1 {
			return nil, nil, fmt.Errorf("asm: FIELD requires a name")
		}
		return compiler.Field{Name: a.in.Intern(args[0])}, nil, nil
	case "NUMBER":
		n, err := a.int64(args, 0)
		return compiler.NumberLit{Value: n}, nil, err
	case "FLOAT":
		if len(args) != 1 {
			return nil, nil, fmt.Errorf("asm: FLOAT requires a value")
		}
		f, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("asm: invalid float %q: %w", args[0], err)
		}
		return compiler.FloatLit{Value: f}, nil, nil
	case "STRING":
		if len(args) != 1 {
			return nil, nil, fmt.Errorf("asm: STRING requires a quoted value")
		}
		s, err := strconv.Unquote(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("asm: invalid string %q: %w", args[0], err)
		}
		return compiler.StringLit{Value: s}, nil, nil
	case "CHAR":
		if len(args) != 1 {
			return nil, nil, fmt.Errorf("asm: CHAR requires a quoted rune")
		}
		r, _, _, err := strconv.UnquoteChar(strings.Trim(args[0], "'"), '\'')
		if err != nil {
			return nil, nil, fmt.Errorf("asm: invalid char %q: %w", args[0], err)
		}
		return compiler.CharLit{Value: r}, nil, nil
	case "BOOL":
		if len(args) != 1 {
			return nil, nil, fmt.Errorf("asm: BOOL requires true or false")
		}
		return compiler.BoolLit{Value: args[0] == "true"}, nil, nil
	case "BYTE":
		n, err := a.int64(args, 0)
		return compiler.ByteLit{Value: byte(n)}, nil, err
	case "IDENT":
		if len(args) != 1 {
			return nil, nil, fmt.Errorf("asm: IDENT requires a name")
		}
		return compiler.IdentLit{Value: a.in.Intern(args[0])}, nil, nil
	case "NONE":
		return compiler.NoneLit{}, nil, nil
	case "SPLAT":
		return compiler.Splat{}, nil, nil
	case "CALL":
		n, err := a.int(args, 0)
		return compiler.Call{N: n}, nil, err
	case "TAILCALL":
		n, err := a.int(args, 0)
		return compiler.TailCall{N: n}, nil, err
	case "RETURN":
		return compiler.Return{}, nil, nil
	case "SCOPE":
		n, err := a.int(args, 0)
		return compiler.Scope{N: n}, nil, err
	case "ENDSCOPE":
		n, err := a.int(args, 0)
		return compiler.EndScope{N: n}, nil, err
	case "JUMPIFTRUE":
		idx, err := a.int(args, 0)
		if err != nil {
			return nil, nil, err
		}
		j := compiler.JumpIfTrue{}
		return j, &pendingJump{index: idx, rewrite: func(id compiler.InstructionID) compiler.Instruction {
			return compiler.JumpIfTrue{Target: id}
		}}, nil
	case "JUMPIFFALSE":
		idx, err := a.int(args, 0)
		if err != nil {
			return nil, nil, err
		}
		return compiler.JumpIfFalse{}, &pendingJump{index: idx, rewrite: func(id compiler.InstructionID) compiler.Instruction {
			return compiler.JumpIfFalse{Target: id}
		}}, nil
	case "JUMP":
		idx, err := a.int(args, 0)
		if err != nil {
			return nil, nil, err
		}
		return compiler.Jump{}, &pendingJump{index: idx, rewrite: func(id compiler.InstructionID) compiler.Instruction {
			return compiler.Jump{Target: id}
		}}, nil
	default:
		return nil, nil, fmt.Errorf("asm: unknown opcode %q", fields[0])
	}
}

func (a *asm) slot(args []string, i int) (compiler.VarSlot, error) {
	if i >= len(args) {
		return compiler.VarSlot{}, fmt.Errorf("asm: missing slot argument")
	}
	s := args[i]
	if len(s) < 2 || (s[0] != 'g' && s[0] != 'l') {
		return compiler.VarSlot{}, fmt.Errorf("asm: invalid slot %q, want g<n> or l<n>", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return compiler.VarSlot{}, fmt.Errorf("asm: invalid slot %q: %w", s, err)
	}
	return compiler.VarSlot{ID: n, Global: s[0] == 'g'}, nil
}

func (a *asm) int(args []string, i int) (int, error) {
	n, err := a.int64(args, i)
	return int(n), err
}

func (a *asm) int64(args []string, i int) (int64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("asm: missing integer argument")
	}
	n, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("asm: invalid integer %q: %w", args[i], err)
	}
	return n, nil
}

func (a *asm) uint32(args []string, i int) (uint32, error) {
	n, err := a.int64(args, i)
	return uint32(n), err
}
