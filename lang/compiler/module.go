package compiler

import "github.com/mna/simplelisp/lang/intern"

// ModuleID identifies a node in the ModuleTree. Ids are reserved eagerly,
// before the module's source has been read or lowered, so that a Module
// instruction can reference a not-yet-compiled module.
type ModuleID uint32

// RootModuleID is the id always assigned to the top-level compilation unit.
const RootModuleID ModuleID = 0

// ModuleNode is one node of the compiled module tree.
type ModuleNode struct {
	Name     intern.Ident
	Children []ModuleID
	Parent   *ModuleID // nil for the root

	StartIns InstructionID
}

// ModuleTree is the compiled module hierarchy, rooted at RootModuleID.
type ModuleTree struct {
	nodes []*ModuleNode // index i holds the node for ModuleID(i), nil until filled in
}

// NewModuleTree returns an empty tree.
func NewModuleTree() *ModuleTree {
	return &ModuleTree{}
}

// Reserve allocates a new, as-yet-unfilled ModuleID.
func (t *ModuleTree) Reserve() ModuleID {
	id := ModuleID(len(t.nodes))
	t.nodes = append(t.nodes, nil)
	return id
}

// Fill records the node for a previously reserved id. It panics if id is out
// of range or already filled, since that would indicate a compiler bug, not
// a recoverable user-facing error.
func (t *ModuleTree) Fill(id ModuleID, node *ModuleNode) {
	if int(id) >= len(t.nodes) {
		panic("compiler: Fill: module id never reserved")
	}
	if t.nodes[id] != nil {
		panic("compiler: Fill: module already filled")
	}
	t.nodes[id] = node
}

// Len returns the number of modules reserved so far, including the root.
func (t *ModuleTree) Len() int { return len(t.nodes) }

// Get returns the node for id. Panics if id is unreserved or unfilled.
func (t *ModuleTree) Get(id ModuleID) *ModuleNode {
	if int(id) >= len(t.nodes) || t.nodes[id] == nil {
		panic("compiler: Get: invalid or unfilled module id")
	}
	return t.nodes[id]
}
