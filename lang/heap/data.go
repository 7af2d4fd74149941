package heap

import "github.com/mna/simplelisp/lang/intern"

// Data is the tagged union of every runtime value the heap can store.
// Composite variants (List, Object, Closure) hold DataRefs to further
// values and may form arbitrary, possibly cyclic, graphs; the tracing
// collector walks them through Children.
type Data interface {
	// Type returns a short name for the variant, used in error messages.
	Type() string

	// Children appends the handles this value directly references (for List,
	// Object and Closure) to dst and returns the result. Every other variant
	// returns dst unchanged: it has no children.
	Children(dst []DataRef) []DataRef
}

// FnID identifies a compiled function; see the compiler package.
type FnID uint32

// ArgCount describes a native function's accepted argument count, mirroring
// FnSignature's arity-matching shape for the much simpler native case.
type ArgCount struct {
	Min int
	Max int // -1 means unbounded
}

// List is an ordered, mutable sequence of values.
type List struct {
	Items []DataRef
}

func (*List) Type() string { return "list" }
func (l *List) Children(dst []DataRef) []DataRef {
	return append(dst, l.Items...)
}

// Object is an ordered field->value mapping (insertion order preserved, like
// the interner).
type Object struct {
	order []intern.Ident
	index map[intern.Ident]int
	vals  []DataRef
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: make(map[intern.Ident]int)}
}

func (*Object) Type() string { return "object" }

func (o *Object) Children(dst []DataRef) []DataRef {
	return append(dst, o.vals...)
}

// Get returns the field's value and whether it is present.
func (o *Object) Get(field intern.Ident) (DataRef, bool) {
	i, ok := o.index[field]
	if !ok {
		return DataRef{}, false
	}
	return o.vals[i], true
}

// Set inserts or overwrites a field, preserving first-insertion order.
func (o *Object) Set(field intern.Ident, v DataRef) {
	if i, ok := o.index[field]; ok {
		o.vals[i] = v
		return
	}
	o.index[field] = len(o.order)
	o.order = append(o.order, field)
	o.vals = append(o.vals, v)
}

// Fields returns the field idents in insertion order. The caller must not
// modify the result.
func (o *Object) Fields() []intern.Ident { return o.order }

// IdentVal is a boxed identifier value (distinct from a Go-level variable
// reference: this is the `Ident` literal form of the language, e.g. from a
// dotted-identifier expression).
type IdentVal struct{ Ident intern.Ident }

func (IdentVal) Type() string                     { return "ident" }
func (IdentVal) Children(dst []DataRef) []DataRef { return dst }

// Number is a 64-bit signed integer value.
type Number struct{ Value int64 }

func (Number) Type() string                    { return "number" }
func (Number) Children(dst []DataRef) []DataRef { return dst }

// Float is a 64-bit floating point value.
type Float struct{ Value float64 }

func (Float) Type() string                    { return "float" }
func (Float) Children(dst []DataRef) []DataRef { return dst }

// String is an immutable string value.
type String struct{ Value string }

func (String) Type() string                    { return "string" }
func (String) Children(dst []DataRef) []DataRef { return dst }

// Char is a single character value.
type Char struct{ Value rune }

func (Char) Type() string                    { return "char" }
func (Char) Children(dst []DataRef) []DataRef { return dst }

// Bool is a boolean value.
type Bool struct{ Value bool }

func (Bool) Type() string                    { return "bool" }
func (Bool) Children(dst []DataRef) []DataRef { return dst }

// Byte is a single byte value (e.g. read from a file).
type Byte struct{ Value byte }

func (Byte) Type() string                    { return "byte" }
func (Byte) Children(dst []DataRef) []DataRef { return dst }

// Fn is a reference to a compiled function, by id.
type Fn struct{ ID FnID }

func (Fn) Type() string                    { return "fn" }
func (Fn) Children(dst []DataRef) []DataRef { return dst }

// NativeFn is a reference to a host-provided function. Native I/O builtins
// are a non-goal of this module, but the value shape itself is part of the
// data model.
type NativeFn struct {
	Name  string
	Arity ArgCount
	Fn    func(args []DataRef) (Data, error)
}

func (n *NativeFn) Type() string                    { return "native-fn" }
func (n *NativeFn) Children(dst []DataRef) []DataRef { return dst }

// Capture is a single (name, value) pair captured by a Closure.
type Capture struct {
	Name  intern.Ident
	Value DataRef
}

// Closure is a function value paired with the free variables it captured
// from its enclosing scopes at the time of creation.
type Closure struct {
	ID       FnID
	Captures []Capture
}

func (*Closure) Type() string { return "closure" }
func (c *Closure) Children(dst []DataRef) []DataRef {
	for _, cap := range c.Captures {
		dst = append(dst, cap.Value)
	}
	return dst
}

// NativeData wraps an opaque host resource (file handle, stdin, stdout).
// Equality of two NativeData values compares their underlying resource
// identity, not structurally; the concrete comparison is delegated to
// NativeResource.SameAs.
type NativeData struct {
	Kind NativeKind
	Res  NativeResource
}

func (NativeData) Type() string                    { return "native-data" }
func (NativeData) Children(dst []DataRef) []DataRef { return dst }

// NativeKind distinguishes the flavor of native resource.
type NativeKind uint8

const (
	NativeFile NativeKind = iota
	NativeStdin
	NativeStdout
)

// NativeResource is implemented by the shared, reference-counted resource
// backing a NativeData value (e.g. an *os.File wrapper). Two NativeData
// file values are equal iff their resources report the same SameAs.
type NativeResource interface {
	SameAs(NativeResource) bool
}

// None is the unit/absent value.
type None struct{}

func (None) Type() string                    { return "none" }
func (None) Children(dst []DataRef) []DataRef { return dst }
