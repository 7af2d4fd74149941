package compiler

import (
	"testing"

	"github.com/mna/simplelisp/lang/intern"
	"github.com/stretchr/testify/require"
)

func TestMultiSignatureMatchPriority(t *testing.T) {
	m := &MultiSignature{}

	oneArg := intern.Ident(1)
	twoArgs := []intern.Ident{intern.Ident(1), intern.Ident(2)}
	rest := intern.Ident(9)

	m.addClause(Vector{Items: []intern.Ident{oneArg}}, InstructionID(1))
	m.addClause(Vector{Items: twoArgs}, InstructionID(2))
	m.addClause(Vector{Items: []intern.Ident{oneArg}, Remainder: &rest}, InstructionID(3))
	m.addClause(Vector{Remainder: &rest}, InstructionID(4))

	// Exact arity wins over at-least.
	_, body, ok := m.MatchArgCount(1)
	require.True(t, ok)
	require.Equal(t, InstructionID(1), body)

	_, body, ok = m.MatchArgCount(2)
	require.True(t, ok)
	require.Equal(t, InstructionID(2), body)

	// No exact clause for 3: falls through to the at-least(1) clause.
	_, body, ok = m.MatchArgCount(3)
	require.True(t, ok)
	require.Equal(t, InstructionID(3), body)

	// Zero args: no exact(0), no at-least(1) satisfied (0 < 1), falls to any.
	_, body, ok = m.MatchArgCount(0)
	require.True(t, ok)
	require.Equal(t, InstructionID(4), body)
}

func TestMultiSignatureExactOverwrite(t *testing.T) {
	m := &MultiSignature{}

	oneArg := intern.Ident(1)
	twoArgs := []intern.Ident{intern.Ident(1), intern.Ident(2)}

	m.addClause(Vector{Items: []intern.Ident{oneArg}}, InstructionID(1))
	m.addClause(Vector{Items: twoArgs}, InstructionID(2))
	// Same arity (1) as the first clause: should replace it, not coexist.
	m.addClause(Vector{Items: []intern.Ident{oneArg}}, InstructionID(3))

	_, body, ok := m.MatchArgCount(1)
	require.True(t, ok)
	require.Equal(t, InstructionID(3), body)

	_, body, ok = m.MatchArgCount(2)
	require.True(t, ok)
	require.Equal(t, InstructionID(2), body)
}

func TestMultiSignatureNoMatch(t *testing.T) {
	m := &MultiSignature{}
	m.addClause(Vector{Items: []intern.Ident{intern.Ident(1)}}, InstructionID(1))

	_, _, ok := m.MatchArgCount(2)
	require.False(t, ok)
}
