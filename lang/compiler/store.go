package compiler

// InstructionStore holds two collections: an append-only backing array of
// every Instruction ever emitted, indexed by InstructionID, and an ordered
// set of InstructionIDs giving the execution order. New instructions are
// always appended to the backing array, but InsertBefore/InsertAfter splice
// an id into the order sequence anywhere relative to an existing one,
// without renumbering anything already emitted. (Forward jumps and Scope(0)
// placeholders are not spliced: they are overwritten in place with Set.)
//
// Invariant: each InstructionID appears at most once in the order sequence,
// and the only ways to mutate that sequence are append (Push) and splice
// (InsertBefore/InsertAfter); nothing is ever removed from it.
type InstructionStore struct {
	instructions []Instruction

	order    []InstructionID
	orderPos map[InstructionID]int
}

// NewInstructionStore returns an empty store.
func NewInstructionStore() *InstructionStore {
	return &InstructionStore{
		orderPos: make(map[InstructionID]int),
	}
}

// NextID returns the id the next Push will produce, without emitting
// anything. Used to record a forward jump target before the instruction at
// that target exists yet.
func (s *InstructionStore) NextID() InstructionID {
	return InstructionID(len(s.instructions))
}

// CurrentID returns the id of the last pushed instruction. Panics if
// nothing has been pushed yet.
func (s *InstructionStore) CurrentID() InstructionID {
	if len(s.instructions) == 0 {
		panic("compiler: CurrentID called on empty InstructionStore")
	}
	return InstructionID(len(s.instructions) - 1)
}

// Push appends ins to the backing array and to the end of the execution
// order, and returns its id.
func (s *InstructionStore) Push(ins Instruction) InstructionID {
	id := s.NextID()
	s.instructions = append(s.instructions, ins)
	s.orderPos[id] = len(s.order)
	s.order = append(s.order, id)
	return id
}

// InsertAfter appends ins to the backing array and splices its id into the
// order sequence immediately after afterID.
func (s *InstructionStore) InsertAfter(afterID InstructionID, ins Instruction) InstructionID {
	pos, ok := s.orderPos[afterID]
	if !ok {
		panic("compiler: InsertAfter: invalid id")
	}
	return s.spliceAt(pos+1, ins)
}

// InsertBefore appends ins to the backing array and splices its id into the
// order sequence immediately before atID.
func (s *InstructionStore) InsertBefore(atID InstructionID, ins Instruction) InstructionID {
	pos, ok := s.orderPos[atID]
	if !ok {
		panic("compiler: InsertBefore: invalid id")
	}
	return s.spliceAt(pos, ins)
}

func (s *InstructionStore) spliceAt(pos int, ins Instruction) InstructionID {
	id := s.NextID()
	s.instructions = append(s.instructions, ins)

	s.order = append(s.order, InvalidInstructionID)
	copy(s.order[pos+1:], s.order[pos:len(s.order)-1])
	s.order[pos] = id

	for i := pos; i < len(s.order); i++ {
		s.orderPos[s.order[i]] = i
	}
	return id
}

// Get returns the instruction at id.
func (s *InstructionStore) Get(id InstructionID) Instruction {
	if !id.IsValid() || int(id) >= len(s.instructions) {
		panic("compiler: Get: invalid id")
	}
	return s.instructions[id]
}

// Set overwrites the instruction at id in place. This is how forward jumps
// and Scope(0) placeholders are back-patched once their real value is
// known.
func (s *InstructionStore) Set(id InstructionID, ins Instruction) {
	if !id.IsValid() || int(id) >= len(s.instructions) {
		panic("compiler: Set: invalid id")
	}
	s.instructions[id] = ins
}

// Len returns the number of instructions ever pushed (including any later
// removed from the order sequence, which in practice never happens).
func (s *InstructionStore) Len() int { return len(s.instructions) }

// Iter returns a cursor over the instructions in execution order.
func (s *InstructionStore) Iter() *InstructionIter {
	return &InstructionIter{store: s}
}

// InstructionIter walks an InstructionStore's order sequence with explicit
// cursor control, so a dispatch loop can implement jumps by repositioning
// the cursor rather than re-deriving an index from an InstructionID.
type InstructionIter struct {
	store *InstructionStore
	index int
}

// Jump repositions the cursor so that the next Next() call yields the
// instruction at id.
func (it *InstructionIter) Jump(id InstructionID) {
	pos, ok := it.store.orderPos[id]
	if !ok {
		panic("compiler: Jump: invalid id")
	}
	it.index = pos
}

// NextInsID peeks at the id that the next Next() call will yield, without
// consuming it. Returns false if the iterator is exhausted.
func (it *InstructionIter) NextInsID() (InstructionID, bool) {
	if it.index >= len(it.store.order) {
		return InvalidInstructionID, false
	}
	return it.store.order[it.index], true
}

// CurInsID returns the id of the instruction most recently yielded by
// Next(), or false before the first call.
func (it *InstructionIter) CurInsID() (InstructionID, bool) {
	if it.index == 0 {
		return InvalidInstructionID, false
	}
	return it.store.order[it.index-1], true
}

// Next returns the next instruction in execution order, or false once
// exhausted.
func (it *InstructionIter) Next() (Instruction, bool) {
	if it.index >= len(it.store.order) {
		return nil, false
	}
	id := it.store.order[it.index]
	it.index++
	return it.store.instructions[id], true
}
