// Package stats holds the plain counters printed by --stats-for-nerds. It
// has no behavior of its own beyond bookkeeping: a Counters value is filled
// in from a finished compiler.ConvertState (FromConvert) or heap.DataStore
// (FromStore), or set directly by a command, and printed with fmt.Fprintf.
package stats

import (
	"fmt"
	"io"

	"github.com/mna/simplelisp/lang/compiler"
	"github.com/mna/simplelisp/lang/heap"
)

// Counters accumulates compile-pass and heap activity for one compilation.
// Every field is a running total across the whole invocation, not a
// per-call delta.
type Counters struct {
	InsEmitted    uint64
	FnsQueued     uint64
	ModulesQueued uint64
	Warnings      uint64

	Allocations   uint64
	Deallocations uint64
	Collections   uint64
	FreedBytes    uint64
}

// FromConvert fills in the compile-pass fields from a finished compilation.
func (c *Counters) FromConvert(state *compiler.ConvertState) {
	c.InsEmitted = uint64(state.Instructions.Len())
	c.FnsQueued = uint64(state.FnCount())
	c.ModulesQueued = uint64(state.Modules.Len())
	c.Warnings = uint64(len(state.Warnings))
}

// FromStore fills in the heap-activity fields from a store's lifetime
// totals, plus the number of collections run (tracked by the caller, since
// DataStore itself doesn't count invocations of Collect).
func (c *Counters) FromStore(store *heap.DataStore, collections uint64) {
	c.Allocations = store.Allocations()
	c.Deallocations = store.Deallocations()
	c.FreedBytes = store.FreedBytes()
	c.Collections = collections
}

// Fprint writes a human-readable report to w, one "label: value" pair per
// line.
func (c Counters) Fprint(w io.Writer) {
	fmt.Fprintf(w, "instructions:     %d\n", c.InsEmitted)
	fmt.Fprintf(w, "functions queued: %d\n", c.FnsQueued)
	fmt.Fprintf(w, "modules queued:   %d\n", c.ModulesQueued)
	fmt.Fprintf(w, "warnings:         %d\n", c.Warnings)
	fmt.Fprintf(w, "allocations:      %d\n", c.Allocations)
	fmt.Fprintf(w, "deallocations:    %d\n", c.Deallocations)
	fmt.Fprintf(w, "collections run:  %d\n", c.Collections)
	fmt.Fprintf(w, "freed (approx):   %d bytes\n", c.FreedBytes)
}
