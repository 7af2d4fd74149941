package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mna/simplelisp/lang/ast"
)

// ModuleLoader resolves and parses a module's source file. Lexing and
// parsing a SimpleLisp source text into []ast.Expr is out of scope for this
// package; a front-end implements ModuleLoader and the converter only
// handles path resolution and work-queue scheduling around it.
type ModuleLoader interface {
	// Load parses the source file at path and returns its top-level
	// expressions.
	Load(path string) ([]ast.Expr, error)
}

// resolveModulePath implements the module resolution rule: a module named
// "name" declared from a file under dir resolves to dir/name/mod.slp if
// dir/name is a directory, else dir/name.slp.
func resolveModulePath(dir, name string) string {
	candidate := filepath.Join(dir, name)
	if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
		return filepath.Join(candidate, "mod.slp")
	}
	return candidate + ".slp"
}

// todoModule is a module queued for compilation, discovered while lowering
// its declaring unit but not yet compiled.
type todoModule struct {
	name   string
	id     ModuleID
	parent ModuleID
	dir    string // directory the declaring unit namespaces its modules under ("" for the root, dir/name for a module), for path resolution
}

// todos holds the per-compilation-unit work queues: functions discovered
// while lowering the current unit (drained LIFO once the unit's top level
// is done), and a reference to the shared, cross-unit module queue (also
// drained LIFO, one compilation unit at a time).
type todos struct {
	fns []queuedFn

	modules *[]todoModule

	newModules    []ModuleID
	currentModule ModuleID
	moduleDir     string
}

type queuedFn struct {
	id FnID
	fn *ast.Fn
}

func newTodos(modules *[]todoModule) *todos {
	return &todos{modules: modules, currentModule: RootModuleID}
}

func (t *todos) queueFn(id FnID, fn *ast.Fn) {
	t.fns = append(t.fns, queuedFn{id: id, fn: fn})
}

func (t *todos) popFn() (queuedFn, bool) {
	n := len(t.fns)
	if n == 0 {
		return queuedFn{}, false
	}
	f := t.fns[n-1]
	t.fns = t.fns[:n-1]
	return f, true
}

func (t *todos) queueModule(id ModuleID, name string) {
	t.newModules = append(t.newModules, id)
	*t.modules = append(*t.modules, todoModule{
		name:   name,
		id:     id,
		parent: t.currentModule,
		dir:    t.moduleDir,
	})
}

func popModule(modules *[]todoModule) (todoModule, bool) {
	n := len(*modules)
	if n == 0 {
		return todoModule{}, false
	}
	m := (*modules)[n-1]
	*modules = (*modules)[:n-1]
	return m, true
}

// Convert compiles a root compilation unit (e.g. the file passed on the
// command line) and everything it transitively pulls in via (module ...)
// declarations, draining the function and module work queues until both are
// empty.
func Convert(exprs []ast.Expr, loader ModuleLoader) (*ConvertState, error) {
	state := NewConvertState()
	var moduleQueue []todoModule
	td := newTodos(&moduleQueue)

	root := state.Modules.Reserve()
	td.currentModule = root

	startIns := state.NextInsID()
	if err := convertExprs(state, td, exprs, false); err != nil {
		return nil, err
	}
	state.Instructions.Push(Exit{})

	if err := drainFns(state, td); err != nil {
		return nil, err
	}

	rootName := state.Interner.Intern("root")
	state.Modules.Fill(root, &ModuleNode{
		Name:     rootName,
		Children: td.newModules,
		Parent:   nil,
		StartIns: startIns,
	})

	for {
		todo, ok := popModule(&moduleQueue)
		if !ok {
			break
		}
		state.Vars.Reset()
		if err := convertModule(state, &moduleQueue, loader, todo); err != nil {
			return nil, err
		}
	}

	return state, nil
}

func drainFns(state *ConvertState, td *todos) error {
	for {
		qf, ok := td.popFn()
		if !ok {
			return nil
		}
		state.Vars.ResetLocal()
		if err := convertFn(state, td, qf.fn, qf.id); err != nil {
			return err
		}
	}
}

func convertModule(state *ConvertState, moduleQueue *[]todoModule, loader ModuleLoader, todo todoModule) error {
	td := newTodos(moduleQueue)

	name := state.Interner.Intern(todo.name)
	path := resolveModulePath(todo.dir, todo.name)
	// The declaring directory for this module's own nested modules is
	// dir/name regardless of whether name resolved to a directory or a flat
	// file: a flat dir/name.slp still namespaces its children under dir/name.
	dir := filepath.Join(todo.dir, todo.name)

	td.moduleDir = dir
	td.currentModule = todo.id

	exprs, err := loader.Load(path)
	if err != nil {
		return fmt.Errorf("%w: loading module %q: %v", ErrModule, todo.name, err)
	}

	startIns := state.NextInsID()
	if err := convertExprs(state, td, exprs, false); err != nil {
		return fmt.Errorf("%w: %v", ErrModule, err)
	}
	state.Instructions.Push(ReturnModule{})

	if err := drainFns(state, td); err != nil {
		return fmt.Errorf("%w: %v", ErrModule, err)
	}

	state.Modules.Fill(todo.id, &ModuleNode{
		Name:     name,
		Parent:   &todo.parent,
		StartIns: startIns,
		Children: td.newModules,
	})

	return nil
}
