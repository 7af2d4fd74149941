package heap

import (
	"unsafe"

	"github.com/mna/simplelisp/lang/intern"
)

// AllocationSize estimates the number of bytes a value occupies: a fixed
// base size from unsafe.Sizeof plus any variable-length payload (string
// bytes, slice backing arrays). It is intentionally approximate -- this
// exists for --stats-for-nerds reporting, not for any accounting the
// collector relies on to make decisions.
func AllocationSize(d Data) uintptr {
	switch v := d.(type) {
	case *List:
		return unsafe.Sizeof(*v) + uintptr(cap(v.Items))*unsafe.Sizeof(DataRef{})
	case *Object:
		n := uintptr(cap(v.order))
		return unsafe.Sizeof(*v) +
			n*unsafe.Sizeof(intern.Ident(0)) +
			n*unsafe.Sizeof(DataRef{}) +
			uintptr(len(v.index))*(unsafe.Sizeof(intern.Ident(0))+unsafe.Sizeof(0))
	case IdentVal:
		return unsafe.Sizeof(v)
	case Number:
		return unsafe.Sizeof(v)
	case Float:
		return unsafe.Sizeof(v)
	case String:
		return unsafe.Sizeof(v) + uintptr(len(v.Value))
	case Char:
		return unsafe.Sizeof(v)
	case Bool:
		return unsafe.Sizeof(v)
	case Byte:
		return unsafe.Sizeof(v)
	case Fn:
		return unsafe.Sizeof(v)
	case *NativeFn:
		return unsafe.Sizeof(*v) + uintptr(len(v.Name))
	case *Closure:
		return unsafe.Sizeof(*v) + uintptr(cap(v.Captures))*unsafe.Sizeof(Capture{})
	case NativeData:
		return unsafe.Sizeof(v)
	case None:
		return unsafe.Sizeof(v)
	default:
		return 0
	}
}
