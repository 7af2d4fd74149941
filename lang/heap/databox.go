package heap

import "errors"

// ErrBorrowConflict is returned when a caller attempts to borrow a value's
// interior while a conflicting borrow (shared while mutable, or mutable
// while anything else) is already outstanding. The single-threaded
// discipline of this interpreter means this can only happen through
// re-entrant access, e.g. a value mutably borrowed while one of its own
// fields is being read during the same operation.
var ErrBorrowConflict = errors.New("heap: value already borrowed")

// borrowState tracks outstanding borrows of a box's interior, emulating
// RefCell's runtime-checked "shared xor mutable" discipline.
type borrowState int32

const mutBorrow borrowState = -1

// dataBox is the heap-owned allocation behind a DataRef. Its address never
// changes for its lifetime: DataRef holds a pointer to it, never a copy.
type dataBox struct {
	data Data

	borrows borrowState

	pinned     bool
	external   int
	generation uint64
}

// DataRef is a stable, pointer-identity handle to a heap-managed value.
// Cloning a DataRef is free (it is itself a value type wrapping a pointer)
// and produces an alias of the same box, never a copy of the value. Two
// DataRefs compare equal, as Go values, iff they reference the same box --
// hash/compare by box pointer comes for free from Go's pointer-identity
// comparison and hashing instead of a hand-rolled hash function.
type DataRef struct {
	box *dataBox
}

// IsValid reports whether the handle references an allocated box. The zero
// DataRef is invalid.
func (r DataRef) IsValid() bool { return r.box != nil }

// SameAs reports whether r and other reference the identical box.
func (r DataRef) SameAs(other DataRef) bool { return r.box == other.box }

// Pin marks the value as live, regardless of reachability, until Unpin is
// called or the heap itself is closed.
func (r DataRef) Pin() { r.box.pinned = true }

// Unpin clears a previous Pin.
func (r DataRef) Unpin() { r.box.pinned = false }

// IsPinned reports the current pinned flag.
func (r DataRef) IsPinned() bool { return r.box.pinned }

// External acquires a scoped external root on this value and returns a
// handle that releases it; see ExternalData.
func (r DataRef) External() ExternalData {
	r.box.external++
	return ExternalData{ref: r}
}

// IsExternal reports whether the value currently has at least one
// outstanding external root.
func (r DataRef) IsExternal() bool { return r.box.external > 0 }

func (r DataRef) generation() uint64     { return r.box.generation }
func (r DataRef) setGeneration(g uint64) { r.box.generation = g }

// peekData returns the boxed value without going through the borrow
// discipline. Used internally by the collector to size a value being
// swept, where no caller could be concurrently mutating it.
func (r DataRef) peekData() Data { return r.box.data }

// Borrow returns a read guard over the value's data. It fails if the value
// is currently mutably borrowed.
func (r DataRef) Borrow() (*BorrowGuard, error) {
	if r.box.borrows == mutBorrow {
		return nil, ErrBorrowConflict
	}
	r.box.borrows++
	return &BorrowGuard{box: r.box}, nil
}

// BorrowMut returns an exclusive write guard over the value's data. It
// fails if any borrow, shared or exclusive, is already outstanding.
func (r DataRef) BorrowMut() (*BorrowGuardMut, error) {
	if r.box.borrows != 0 {
		return nil, ErrBorrowConflict
	}
	r.box.borrows = mutBorrow
	return &BorrowGuardMut{box: r.box}, nil
}

// BorrowGuard is a live shared borrow of a box's data. Release must be
// called exactly once.
type BorrowGuard struct{ box *dataBox }

// Data returns the borrowed value.
func (g *BorrowGuard) Data() Data { return g.box.data }

// Release ends the borrow.
func (g *BorrowGuard) Release() { g.box.borrows-- }

// BorrowGuardMut is a live exclusive borrow of a box's data.
type BorrowGuardMut struct{ box *dataBox }

// Data returns the borrowed value.
func (g *BorrowGuardMut) Data() Data { return g.box.data }

// Set replaces the borrowed value in place.
func (g *BorrowGuardMut) Set(d Data) { g.box.data = d }

// Release ends the borrow.
func (g *BorrowGuardMut) Release() { g.box.borrows = 0 }
