package sjparser

// Node is the contract every parser node in a schema tree implements
// (spec.md §3 "Parser node", §4.2 C2).
//
// onEvent reports whether it consumed e (false means a child was just
// pushed and e must be redelivered to the new stack top) and whether the
// node has reached a terminal state (the dispatcher should pop it).
type Node interface {
	onEvent(e Event) (consumed bool, done bool, err error)
	reset()
	finish() error
	IsEmpty() bool
	IsSet() bool
	setDispatcher(d *Dispatcher)
}

// childNotifier is implemented by container nodes that need to react when
// one of their pushed children reaches a terminal state (spec.md §4.3
// step 3: "calls child_parsed() on the new top").
type childNotifier interface {
	childParsed(child Node) error
}

// base holds the attributes every node carries per spec.md §3: the
// back-pointer to its dispatcher, the empty/set flags.
type base struct {
	dispatcher *Dispatcher
	notEmpty   bool
	set        bool
}

func (b *base) setDispatcher(d *Dispatcher) {
	b.dispatcher = d
}

// IsEmpty reports whether the node has not yet observed any event
// contributing to a value (spec.md §3 "empty-flag").
func (b *base) IsEmpty() bool {
	return !b.notEmpty
}

// IsSet reports whether the node has reached a terminal state with a
// value available (spec.md §3 "set-flag"). Collaborators use this to
// check whether an optional member (or the whole document) was present
// (spec.md §6 "Inspect the root node for its value").
func (b *base) IsSet() bool {
	return b.set
}

func (b *base) markNonEmpty() {
	b.notEmpty = true
}

func (b *base) resetBase() {
	b.notEmpty = false
	b.set = false
}

// finish is a no-op default; most container nodes override it to invoke a
// user finish-callback, matching spec.md §4.2's "finish-callback: optional
// user function invoked when the node terminates".
func (b *base) finish() error {
	return nil
}
