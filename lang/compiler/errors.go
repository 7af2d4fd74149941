package compiler

import "errors"

// Compile-time error taxonomy. Every converter error chains context with
// fmt.Errorf("...: %w", err) as it bubbles up; callers compare against
// these sentinels with errors.Is.
var (
	// ErrUnknownIdent is returned when an identifier, set target, or path
	// root does not resolve to any declared variable.
	ErrUnknownIdent = errors.New("compiler: unknown identifier")

	// ErrDuplicateGlobal is returned when a global is declared twice.
	ErrDuplicateGlobal = errors.New("compiler: duplicate global")

	// ErrUnsupportedConstruct is returned for AST forms with no defined
	// lowering: Object, Quote, Vector, Squiggle, and ReplDirective outside
	// of a REPL front-end.
	ErrUnsupportedConstruct = errors.New("compiler: unsupported construct")

	// ErrUnsupportedCaptures is returned when a function literal declares a
	// non-empty capture list; capture support is unimplemented.
	ErrUnsupportedCaptures = errors.New("compiler: non-empty function captures are unimplemented")

	// ErrModule marks a module compilation failure that a lower layer has
	// already reported; outer callers detect it with errors.Is and suppress
	// duplicate printing.
	ErrModule = errors.New("compiler: module error")
)
