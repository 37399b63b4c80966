package sjparser

import "errors"

// defaultMaxDepth is spec.md §5's configured limit: "implementations should
// guard against adversarial deep nesting with a configurable limit
// (default: 128)". The teacher (mcvoid-json/parser.go) hardcodes a 1024
// mode stack; this engine's default follows spec.md instead and is
// overridable via WithMaxDepth (see facade.go).
const defaultMaxDepth = 128

// Dispatcher owns the LIFO stack of borrowed parser nodes and routes SAX
// events to the active node (spec.md §4.3, C3).
type Dispatcher struct {
	stack    []Node
	maxDepth int
}

// NewDispatcher builds an empty dispatcher with the given depth limit.
func NewDispatcher(maxDepth int) *Dispatcher {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	return &Dispatcher{maxDepth: maxDepth}
}

// push borrows a node onto the stack. The dispatcher never owns the node;
// ownership remains with the parent that pushed it (spec.md §4.2
// "Ownership").
func (d *Dispatcher) push(n Node) error {
	if len(d.stack) >= d.maxDepth {
		return parseErr(0, "", ErrDepthExceeded, "nesting exceeds configured limit of %d", d.maxDepth)
	}
	d.stack = append(d.stack, n)
	return nil
}

func (d *Dispatcher) top() Node {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

func (d *Dispatcher) depth() int {
	return len(d.stack)
}

// dispatch routes a single SAX event to the stack top, per spec.md §4.3:
//  1. empty stack -> UnexpectedToken
//  2. deliver e to the top node
//  3. on completion, pop it, notify the new top's childParsed, then call
//     the popped node's finish()
//  4. composite start events never pop by themselves.
//
// When a container pushes a child without consuming e (a new array
// element, or a nested structural start), onEvent returns consumed=false
// and dispatch loops, redelivering e to the newly pushed top — this is
// how "the next event is delivered to the child, not the parent" (§4.3
// "Push semantics") is realized without a second event being read.
func (d *Dispatcher) dispatch(e Event) error {
	// Errors raised away from an event (callbacks, depth checks) are built
	// with offset 0; give them the offset of the event being dispatched.
	withOffset := func(err error) error {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Offset == 0 {
			pe.Offset = e.Offset
		}
		return err
	}
	for {
		top := d.top()
		if top == nil {
			return parseErr(e.Offset, "", ErrUnexpectedToken, "no active parser for event %s", e.Kind)
		}

		consumed, done, err := top.onEvent(e)
		if err != nil {
			return withOffset(err)
		}
		if !consumed {
			continue
		}
		if done {
			popped := d.stack[len(d.stack)-1]
			d.stack = d.stack[:len(d.stack)-1]
			if newTop := d.top(); newTop != nil {
				if notifier, ok := newTop.(childNotifier); ok {
					if err := notifier.childParsed(popped); err != nil {
						return withOffset(err)
					}
				}
			}
			if err := popped.finish(); err != nil {
				return withOffset(err)
			}
		}
		return nil
	}
}

func (d *Dispatcher) reset() {
	d.stack = d.stack[:0]
}
