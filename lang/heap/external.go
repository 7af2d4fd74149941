package heap

// ExternalData is a scoped increment of a value's external-root count,
// keeping it (and anything it references) alive across collections without
// registering it as a formal GC root. It is meant to guard a value handed
// across an API boundary to a caller the heap doesn't otherwise track.
//
// Call Release when the caller is done with the handle (later calls on the
// same ExternalData have no effect); it is not safe to use the DataRef
// returned by Inner after Release.
type ExternalData struct {
	ref      DataRef
	released bool
}

// Inner returns the guarded handle.
func (e ExternalData) Inner() DataRef { return e.ref }

// Release decrements the external count. Safe to call more than once; only
// the first call has an effect.
func (e *ExternalData) Release() {
	if e.released {
		return
	}
	e.released = true
	e.ref.box.external--
}
