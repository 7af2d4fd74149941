// Package intern implements the string interner shared by the compiler: a
// bijection between strings and small integers (Ident) used everywhere an
// identifier appears in the instruction stream, the function table, and the
// module tree.
package intern

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Ident is a small integer index into an Interner. Identical strings always
// intern to identical Idents, indices are stable for the life of the
// Interner, and order of insertion is observable: earlier strings get
// smaller indices. This is relied on by the compiler to seed default
// globals in the leading positions.
type Ident uint32

// String formats the ident as "ident#N" with N its integer value; use
// Interner.Get to recover the text.
func (id Ident) String() string { return fmt.Sprintf("ident#%d", uint32(id)) }

// Interner is a bijection between strings and Idents.
//
// The forward direction (string -> Ident) is backed by a swiss.Map for O(1)
// amortized dedup lookups; the reverse direction (Ident -> string) is an
// ordered slice, since index stability and insertion order are both
// invariants callers rely on (the slice index *is* the Ident).
type Interner struct {
	forward *swiss.Map[string, Ident]
	reverse []string
}

// New returns an empty interner.
func New() *Interner {
	return &Interner{
		forward: swiss.NewMap[string, Ident](16),
	}
}

// Intern inserts s if not already present and returns its Ident. Interning
// the same string twice always returns the same Ident.
func (in *Interner) Intern(s string) Ident {
	if id, ok := in.forward.Get(s); ok {
		return id
	}
	id := Ident(len(in.reverse))
	in.reverse = append(in.reverse, s)
	in.forward.Put(s, id)
	return id
}

// Get returns the string that interned to id. It panics if id was never
// produced by this Interner, mirroring the contract that reverse lookup of
// an invalid ident is a programmer error, not a recoverable one.
func (in *Interner) Get(id Ident) string {
	if int(id) >= len(in.reverse) {
		panic(fmt.Sprintf("intern: invalid ident %d", id))
	}
	return in.reverse[id]
}

// Len returns the number of distinct interned strings.
func (in *Interner) Len() int { return len(in.reverse) }
