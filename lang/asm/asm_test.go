package asm_test

import (
	"testing"

	"github.com/mna/simplelisp/lang/asm"
	"github.com/mna/simplelisp/lang/intern"
	"github.com/stretchr/testify/require"
)

func TestAssembleRoundTrip(t *testing.T) {
	cases := []struct {
		desc string
		in   string
	}{
		{"empty", "code:"},
		{"literals", `
			code:
				NUMBER 42
				FLOAT 1.5
				STRING "hi"
				CHAR 'x'
				BOOL true
				BOOL false
				BYTE 7
				NONE
		`},
		{"vars and call", `
			code:
				GETVAR g0
				GETVAR l3
				CALL 1
				TAILCALL 0
				RETURN
		`},
		{"forward jump", `
			code:
				GETVAR g0
				JUMPIFFALSE 3
				NUMBER 1
				JUMP 4
				NUMBER 2
		`},
		{"scopes and fields", `
			code:
				SCOPE 2
				IDENT foo
				FIELD bar
				ENDSCOPE 2
				SETPATH g0 a.b.c
		`},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			in := intern.New()
			store, err := asm.Assemble([]byte(c.in), in)
			require.NoError(t, err)

			out, err := asm.Disassemble(store, in)
			require.NoError(t, err)

			store2, err := asm.Assemble(out, in)
			require.NoError(t, err)
			require.Equal(t, store.Len(), store2.Len())
		})
	}
}

func TestAssembleErrors(t *testing.T) {
	cases := []struct {
		desc string
		in   string
		err  string
	}{
		{"missing code section", "", "expected code section"},
		{"unknown opcode", "code:\n\tfrobnicate", `unknown opcode "frobnicate"`},
		{"bad slot", "code:\n\tGETVAR x3", `invalid slot "x3"`},
		{"jump out of range", "code:\n\tJUMP 9", "jump target index 9 out of range"},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			in := intern.New()
			_, err := asm.Assemble([]byte(c.in), in)
			require.Error(t, err)
			require.ErrorContains(t, err, c.err)
		})
	}
}
