package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
)

// Run assembles args[0] like Compile, then reports that handing the result
// to the first-generation (tree-walking) dispatch loop is out of scope for
// this module.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return c.runWith(stdio, args[0], "first-generation")
}

// Run2 is Run's counterpart for the second-generation (bytecode) dispatch
// loop, kept as a separate command from the first-generation tree-walking
// one rather than folded into a single flag.
func (c *Cmd) Run2(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return c.runWith(stdio, args[0], "second-generation")
}

func (c *Cmd) runWith(stdio mainer.Stdio, path, gen string) error {
	n, err := c.compileFile(stdio, path)
	if err != nil {
		return printError(stdio, err)
	}
	fmt.Fprintf(stdio.Stdout, "%s: compiled %d instructions; %s execution is not implemented\n", path, n, gen)
	return nil
}

// Repl reports that an interactive front end is out of scope for this
// module: there is no lexer/parser to read a line of source from, and no
// dispatch loop to run it.
func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	fmt.Fprintln(stdio.Stdout, "repl: not implemented (no source front end or dispatch loop in this build)")
	return nil
}
