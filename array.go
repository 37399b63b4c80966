package sjparser

type arrState int8

const (
	arrIdle arrState = iota
	arrOpen
	arrDone
)

// Array is the non-storing array parser (spec.md §4.5.1, C5). Its
// elements are all parsed by the same child node, reset between elements;
// the child's value is left in place rather than being accumulated by the
// array itself (spec.md §4.5.5 "non-storing variant"). Array has no
// per-element callback, only a finish callback, so once the array
// completes the child holds the last element's value.
type Array struct {
	base
	child    Node
	state    arrState
	onFinish func(*Array) error
}

// NewArray builds a non-storing array parser over child.
func NewArray(child Node, opts ...func(*Array)) *Array {
	a := &Array{child: child}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OnArrayFinish attaches the array finish-callback.
func OnArrayFinish(cb func(*Array) error) func(*Array) {
	return func(a *Array) { a.onFinish = cb }
}

func (a *Array) onEvent(e Event) (bool, bool, error) {
	switch a.state {
	case arrIdle:
		if e.Kind != ArrayStart {
			return true, false, parseErr(e.Offset, "", ErrSchemaMismatch, "expected array, got %s", e.Kind)
		}
		a.state = arrOpen
		a.markNonEmpty()
		return true, false, nil

	case arrOpen:
		if e.Kind == ArrayEnd {
			a.state = arrDone
			a.set = true
			return true, true, nil
		}
		a.child.reset()
		a.child.setDispatcher(a.dispatcher)
		if err := a.dispatcher.push(a.child); err != nil {
			return true, false, err
		}
		return false, false, nil
	}
	return true, false, parseErr(e.Offset, "", ErrUnexpectedToken, "array already complete")
}

func (a *Array) childParsed(child Node) error {
	return nil
}

func (a *Array) reset() {
	a.resetBase()
	a.state = arrIdle
	a.child.reset()
}

func (a *Array) finish() error {
	if a.onFinish != nil {
		if err := a.onFinish(a); err != nil {
			return parseErr(0, "", ErrCallbackRejected, "%v", err)
		}
	}
	return nil
}

// valuer is implemented by value-producing leaves and containers: anything
// whose popped value a storing container can accumulate (spec.md §4.5.5).
type valuer[T any] interface {
	Node
	Get() T
	Pop() T
}

// StoringArray is the storing array variant (spec.md §4.5.1, §4.5.5): it
// pops its child's value on each element completion and accumulates an
// ordered slice (spec.md invariant 3, insertion order preserved).
type StoringArray[T any] struct {
	Array
	child    valuer[T]
	values   []T
	onFinish func([]T) error
}

// NewStoringArray builds a storing array parser over a value-producing
// child.
func NewStoringArray[T any](child valuer[T], opts ...func(*StoringArray[T])) *StoringArray[T] {
	sa := &StoringArray[T]{
		child:  child,
		values: []T{},
	}
	sa.Array = *NewArray(child)
	for _, opt := range opts {
		opt(sa)
	}
	return sa
}

// OnStoringArrayFinish attaches the storing-array finish callback (spec.md
// §6 "Array finish (storing): (&vec) -> bool").
func OnStoringArrayFinish[T any](cb func([]T) error) func(*StoringArray[T]) {
	return func(sa *StoringArray[T]) { sa.onFinish = cb }
}

func (sa *StoringArray[T]) childParsed(child Node) error {
	sa.values = append(sa.values, sa.child.Pop())
	return nil
}

// Get returns the accumulated elements in input order.
func (sa *StoringArray[T]) Get() []T {
	return sa.values
}

// Pop returns the accumulated elements and clears the set flag, so a
// StoringArray may itself be the child of another storing container.
func (sa *StoringArray[T]) Pop() []T {
	v := sa.values
	sa.set = false
	return v
}

func (sa *StoringArray[T]) reset() {
	sa.Array.reset()
	sa.values = sa.values[:0]
}

func (sa *StoringArray[T]) finish() error {
	if sa.onFinish != nil {
		if err := sa.onFinish(sa.values); err != nil {
			return parseErr(0, "", ErrCallbackRejected, "%v", err)
		}
	}
	return nil
}
