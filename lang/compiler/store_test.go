package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstructionStorePushOrder(t *testing.T) {
	s := NewInstructionStore()

	id0 := s.Push(NumberLit{Value: 1})
	id1 := s.Push(NumberLit{Value: 2})

	require.Equal(t, InstructionID(0), id0)
	require.Equal(t, InstructionID(1), id1)
	require.Equal(t, 2, s.Len())

	it := s.Iter()
	ins, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, NumberLit{Value: 1}, ins)

	ins, ok = it.Next()
	require.True(t, ok)
	require.Equal(t, NumberLit{Value: 2}, ins)

	_, ok = it.Next()
	require.False(t, ok)
}

func TestInstructionStoreInsertBeforeAfter(t *testing.T) {
	s := NewInstructionStore()

	a := s.Push(NumberLit{Value: 1})
	c := s.Push(NumberLit{Value: 3})

	b := s.InsertBefore(c, NumberLit{Value: 2})
	d := s.InsertAfter(c, NumberLit{Value: 4})

	var order []InstructionID
	it := s.Iter()
	for {
		id, ok := it.NextInsID()
		if !ok {
			break
		}
		order = append(order, id)
		it.Next()
	}

	require.Equal(t, []InstructionID{a, b, c, d}, order)
}

func TestInstructionStoreSetPatchesInPlace(t *testing.T) {
	s := NewInstructionStore()

	placeholder := s.Push(Exit{})
	target := s.Push(NumberLit{Value: 1})

	s.Set(placeholder, Jump{Target: target})
	require.Equal(t, Jump{Target: target}, s.Get(placeholder))
}

func TestInstructionIterJump(t *testing.T) {
	s := NewInstructionStore()

	s.Push(NumberLit{Value: 1})
	target := s.Push(NumberLit{Value: 2})
	s.Push(NumberLit{Value: 3})

	it := s.Iter()
	it.Next()
	it.Jump(target)

	ins, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, NumberLit{Value: 2}, ins)

	cur, ok := it.CurInsID()
	require.True(t, ok)
	require.Equal(t, target, cur)
}

func TestInstructionStoreGetSetInvalidPanics(t *testing.T) {
	s := NewInstructionStore()
	s.Push(NumberLit{Value: 1})

	require.Panics(t, func() { s.Get(InvalidInstructionID) })
	require.Panics(t, func() { s.Set(InstructionID(99), Nop{}) })
}

func TestInstructionStoreCurrentIDPanicsWhenEmpty(t *testing.T) {
	s := NewInstructionStore()
	require.Panics(t, func() { s.CurrentID() })
}
