// Package heap implements the runtime value store and tracing garbage
// collector: a pointer-stable heap of boxed values reachable through
// DataRef handles, with pinning, external-root counting, and generational
// mark-and-sweep over possibly-cyclic object graphs.
package heap

import "github.com/dolthub/swiss"

// DataStore owns every allocated value. Handles (DataRef) are aliases, never
// owners; only the store deallocates, and only during Collect or Close.
type DataStore struct {
	// live preserves insertion order, which Collect's sweep relies on for
	// deterministic iteration; index mirrors it for O(1) membership checks.
	live  []DataRef
	index *swiss.Map[DataRef, int]

	generation uint64

	allocations   uint64
	deallocations uint64
	freedBytes    uint64
}

// New returns an empty store.
func New() *DataStore {
	return &DataStore{
		index: swiss.NewMap[DataRef, int](64),
	}
}

// Insert allocates a new box for data, adds it to the live set, and returns
// a handle to it.
func (s *DataStore) Insert(data Data) DataRef {
	ref := DataRef{box: &dataBox{data: data}}
	s.index.Put(ref, len(s.live))
	s.live = append(s.live, ref)
	s.allocations++
	return ref
}

// Contains reports whether ref is currently a live handle owned by this
// store (false after it has been collected or after Close).
func (s *DataStore) Contains(ref DataRef) bool {
	_, ok := s.index.Get(ref)
	return ok
}

// Len returns the number of currently live allocations.
func (s *DataStore) Len() int { return len(s.live) }

// AllocRem returns the allocations-minus-deallocations count for this
// store: the number of boxes it has allocated but not yet freed.
func (s *DataStore) AllocRem() uint64 { return s.allocations - s.deallocations }

// Allocations returns the total number of boxes ever allocated by this
// store.
func (s *DataStore) Allocations() uint64 { return s.allocations }

// Deallocations returns the total number of boxes ever freed by this
// store, via Collect or Close.
func (s *DataStore) Deallocations() uint64 { return s.deallocations }

// FreedBytes returns the running total of AllocationSize for every box
// this store has freed so far.
func (s *DataStore) FreedBytes() uint64 { return s.freedBytes }

// worklist is the grey set during a trace: handles known reachable but not
// yet scanned for their own children.
type worklist struct {
	store      *DataStore
	generation uint64
	pending    []DataRef
}

func (w *worklist) markRoot(ref DataRef) {
	if ref.generation() == w.generation {
		return
	}
	ref.setGeneration(w.generation)
	w.pending = append(w.pending, ref)
}

// Collect performs one full mark-and-sweep trace and returns the number of
// values freed.
//
// Roots are: every handle in every scope of every frame in callStack, every
// handle in every scope of currentFrame, and every live value with Pin() set
// or an outstanding ExternalData. Everything else unreachable from those
// roots is deallocated.
//
// Collect is not incremental, runs to completion, and is a synchronous
// barrier: once it returns, every surviving handle is still valid and every
// swept handle must never be dereferenced again.
func (s *DataStore) Collect(callStack CallStack, currentFrame Frame) int {
	s.generation++
	w := &worklist{store: s, generation: s.generation}

	for _, frame := range callStack {
		frame.pushChildrenRoots(w)
	}
	currentFrame.pushChildrenRoots(w)

	for _, ref := range s.live {
		if ref.IsPinned() || ref.IsExternal() {
			w.markRoot(ref)
		}
	}

	// Drain the grey set: pop one (already stamped by markRoot when it was
	// enqueued) and enqueue its children. markRoot skips handles that already
	// carry the current generation, so each value is enqueued and scanned at
	// most once and cycles cannot make the pending slice grow unbounded.
	var childBuf []DataRef
	for len(w.pending) > 0 {
		item := w.pending[len(w.pending)-1]
		w.pending = w.pending[:len(w.pending)-1]

		guard, err := item.Borrow()
		if err != nil {
			// A value mid-mutation during a collection triggered from outside
			// the dispatch loop; treat it as already reachable and move on
			// rather than losing the trace.
			continue
		}
		childBuf = guard.Data().Children(childBuf[:0])
		guard.Release()

		for _, child := range childBuf {
			w.markRoot(child)
		}
	}

	freed := 0
	var dealloc uint64
	retained := s.live[:0]
	newIndex := swiss.NewMap[DataRef, int](len(s.live))
	for _, ref := range s.live {
		if ref.generation() == s.generation {
			newIndex.Put(ref, len(retained))
			retained = append(retained, ref)
			continue
		}

		if ref.IsPinned() || ref.IsExternal() {
			panic("heap: collector would sweep a pinned or external value")
		}
		s.freedBytes += uint64(AllocationSize(ref.peekData()))
		dealloc++
		freed++
	}
	s.live = retained
	s.index = newIndex
	s.deallocations += dealloc

	return freed
}

// Close deallocates every remaining box. It returns the number of boxes
// that were still live and not accounted for by a pinned handle: any such
// remainder indicates a leak (a non-pinned value nobody ever collected).
func (s *DataStore) Close() (leaked int) {
	for _, ref := range s.live {
		if !ref.IsPinned() {
			leaked++
		}
		s.freedBytes += uint64(AllocationSize(ref.peekData()))
	}
	s.deallocations += uint64(len(s.live))
	s.live = nil
	s.index = swiss.NewMap[DataRef, int](0)
	return leaked
}
