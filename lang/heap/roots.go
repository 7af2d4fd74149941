package heap

// Scope is the set of handles directly held by one lexical scope (one
// Scope(n)/EndScope(n) pair's worth of local slots, or the global table).
type Scope []DataRef

// Frame is the stack of scopes open in one call-stack frame, outermost
// first.
type Frame []Scope

// CallStack is the stack of frames below the currently executing one,
// bottom to top. The currently executing frame is passed to Collect
// separately, since the dispatch engine (out of scope here) is still in the
// middle of running it.
type CallStack []Frame

func (f Frame) pushChildrenRoots(into *worklist) {
	for _, scope := range f {
		for _, ref := range scope {
			into.markRoot(ref)
		}
	}
}
