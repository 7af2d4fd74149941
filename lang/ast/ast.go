// Package ast defines the surface syntax tree consumed by the compiler.
//
// Building this tree is the job of a lexer and parser, both explicitly out
// of scope for this module (see the compiler package doc comment). A
// front-end feeds a []Expr, produced however it likes, into the compiler.
package ast

// Expr is any SimpleLisp surface expression. It carries no source position:
// error pretty-printing and source mapping are out of scope.
type Expr interface {
	expr()
}

// Literal forms.
type (
	// True is the literal `true`.
	True struct{}
	// False is the literal `false`.
	False struct{}
	// None is the literal `none`.
	None struct{}
	// Number is an integer literal.
	Number struct{ Value int64 }
	// Float is a floating point literal.
	Float struct{ Value float64 }
	// String is a string literal.
	String struct{ Value string }
	// Char is a character literal.
	Char struct{ Value rune }
)

// Ident is a bare identifier reference, e.g. `x`.
type Ident struct{ Name string }

// DotIdent is a single dotted component appearing outside of a path, e.g.
// the `.name` shorthand used for object field literals.
type DotIdent struct{ Name string }

// Comment is a source comment. It lowers to nothing.
type Comment struct{ Text string }

// Module is a `(module name)` declaration.
type Module struct{ Name string }

// Def is `(def name expr)`: declares a new variable in the current scope.
type Def struct {
	Name string
	Data Expr
}

// Set is `(set name expr)`: assigns to an existing variable.
type Set struct {
	Name string
	Data Expr
}

// SetPath is `(set a.b.c expr)`: assigns to a nested field path rooted at a
// variable.
type SetPath struct {
	Path []string // Path[0] is the root variable name, the rest are fields.
	Data Expr
}

// Path is `a.b.c`: reads a nested field path rooted at a variable.
type Path struct {
	Path []string
}

// Splat is `~expr`: marks a value as a spread argument for the enclosing
// call.
type Splat struct{ Expr Expr }

// Begin is `(begin e1 ... en)`: a sequence evaluated in a fresh scope, whose
// value is the value of its last expression.
type Begin struct{ Exprs []Expr }

// Call is `(f a1 ... an)`: a function call. Expr[0] is the callee.
type Call struct{ Exprs []Expr }

// Cond is `(cond (c1 b1) ... (ck bk) [default])`.
type Cond struct {
	Conditions []CondArm
	Default    Expr // nil if absent
}

// CondArm is a single `(condition body)` pair of a Cond.
type CondArm struct {
	Condition Expr
	Body      Expr
}

// FnLiteral is an anonymous or named function literal.
type FnLiteral struct {
	Fn *Fn
}

// Object is the `(object)` literal form. It is recognized by the parser but
// rejected at compile time; see compiler.ErrUnsupportedConstruct.
type Object struct{}

// Quote, Vector and Squiggle are reserved surface forms with no defined
// lowering yet; the converter rejects them with ErrUnsupportedConstruct.
type (
	Quote    struct{ Expr Expr }
	Vector   struct{ Exprs []Expr }
	Squiggle struct{ Expr Expr }
)

// ReplDirective is a REPL-only form (e.g. `:help`); it is only meaningful in
// interactive mode and is rejected when compiling a file or module.
type ReplDirective struct{ Text string }

func (True) expr()          {}
func (False) expr()         {}
func (None) expr()          {}
func (Number) expr()        {}
func (Float) expr()         {}
func (String) expr()        {}
func (Char) expr()          {}
func (Ident) expr()         {}
func (DotIdent) expr()      {}
func (Comment) expr()       {}
func (Module) expr()        {}
func (Def) expr()           {}
func (Set) expr()           {}
func (SetPath) expr()       {}
func (Path) expr()          {}
func (Splat) expr()         {}
func (Begin) expr()         {}
func (Call) expr()          {}
func (Cond) expr()          {}
func (FnLiteral) expr()     {}
func (Object) expr()        {}
func (Quote) expr()         {}
func (Vector) expr()        {}
func (Squiggle) expr()      {}
func (ReplDirective) expr() {}
