package sjparser

// AutoObject is the object variant whose observable value is the tuple of
// its members' values, assembled at map-end (spec.md §4.5.3 "Auto-object
// node"), grounded on original_source's SAutoObject. Since Go has no
// anonymous-tuple type, the tuple is a caller-supplied T assembled by a
// closure that reads the member children directly — the same children the
// caller declared when building the member table.
type AutoObject[T any] struct {
	Object
	assemble func() (T, error)
	value    T
}

// NewAutoObject builds an auto-object parser. assemble is called once, at
// map-end, after required-member/default checks have passed; it should
// read values off the Node variables the caller closed over (typically via
// Get() or Pop()) and construct T.
func NewAutoObject[T any](members []MemberSpec, assemble func() (T, error), opts ...ObjectOption) *AutoObject[T] {
	return &AutoObject[T]{
		Object:   *NewObject(members, opts...),
		assemble: assemble,
	}
}

// onEvent delegates to Object's state machine, but assembles the tuple
// immediately on the map-end terminal transition rather than waiting for
// finish(): the dispatcher calls a storing parent's childParsed() (which
// pops this node's value) before finish() runs (spec.md §4.3 step 3), so
// assembling in finish() would hand a storing array/map the previous
// iteration's stale tuple. Assembling here, before onEvent reports done,
// guarantees Get()/Pop() see the current element's value the moment the
// dispatcher pops it.
func (a *AutoObject[T]) onEvent(e Event) (bool, bool, error) {
	consumed, done, err := a.Object.onEvent(e)
	if err != nil || !done {
		return consumed, done, err
	}
	v, err := a.assemble()
	if err != nil {
		return consumed, done, parseErr(e.Offset, "", ErrCallbackRejected, "%v", err)
	}
	a.value = v
	return consumed, done, nil
}

func (a *AutoObject[T]) finish() error {
	return a.Object.finish()
}

// Get returns the assembled tuple value without clearing the set flag.
func (a *AutoObject[T]) Get() T {
	return a.value
}

// Pop returns the assembled tuple value and clears the set flag, for use
// as the child of a storing array/map.
func (a *AutoObject[T]) Pop() T {
	v := a.value
	a.set = false
	return v
}

func (a *AutoObject[T]) reset() {
	a.Object.reset()
	var zero T
	a.value = zero
}
