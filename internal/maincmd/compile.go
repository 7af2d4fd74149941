package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"
	"github.com/mna/simplelisp/internal/stats"
	"github.com/mna/simplelisp/lang/asm"
	"github.com/mna/simplelisp/lang/intern"
)

// Compile assembles the instruction stream at args[0] (assembly text, see
// lang/asm) and reports how much was produced. Lexing and parsing SimpleLisp
// source text, and the fetch/execute dispatch loop that would consume the
// resulting stream, are both out of scope here: Compile only exercises the
// converter's output format.
func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	_, err := c.compileFile(stdio, args[0])
	return printError(stdio, err)
}

func (c *Cmd) compileFile(stdio mainer.Stdio, path string) (int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	in := intern.New()
	store, err := asm.Assemble(src, in)
	if err != nil {
		return 0, fmt.Errorf("assembling %s: %w", path, err)
	}

	fmt.Fprintf(stdio.Stdout, "%s: %d instructions\n", path, store.Len())

	if c.Debug {
		out, err := asm.Disassemble(store, in)
		if err != nil {
			return 0, fmt.Errorf("disassembling %s: %w", path, err)
		}
		fmt.Fprintln(stdio.Stdout, string(out))
	}

	if c.StatsForNerds {
		var counters stats.Counters
		counters.InsEmitted = uint64(store.Len())
		counters.Fprint(stdio.Stdout)
	}

	return store.Len(), nil
}
