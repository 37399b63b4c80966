package sjparser

import "testing"

// fakeNode is a minimal Node used to probe the dispatcher in isolation,
// without routing through the tokenizer.
type fakeNode struct {
	base
	onEventFn    func(e Event) (bool, bool, error)
	finishCalled bool
	finishErr    error
	resetCalled  bool
}

func (f *fakeNode) onEvent(e Event) (bool, bool, error) { return f.onEventFn(e) }
func (f *fakeNode) reset()                              { f.resetCalled = true }
func (f *fakeNode) finish() error {
	f.finishCalled = true
	return f.finishErr
}

func TestDispatcherEmptyStackRejectsEvent(t *testing.T) {
	d := NewDispatcher(0)
	err := d.dispatch(Event{Kind: Int})
	if err == nil {
		t.Fatal("expected error dispatching to an empty stack")
	}
}

func TestDispatcherDepthLimit(t *testing.T) {
	d := NewDispatcher(2)
	n1 := &fakeNode{onEventFn: func(e Event) (bool, bool, error) { return true, false, nil }}
	n2 := &fakeNode{onEventFn: func(e Event) (bool, bool, error) { return true, false, nil }}
	n3 := &fakeNode{onEventFn: func(e Event) (bool, bool, error) { return true, false, nil }}
	if err := d.push(n1); err != nil {
		t.Fatalf("push 1: %v", err)
	}
	if err := d.push(n2); err != nil {
		t.Fatalf("push 2: %v", err)
	}
	if err := d.push(n3); err == nil {
		t.Fatal("expected depth-exceeded error on third push")
	}
}

func TestDispatcherPopAndNotify(t *testing.T) {
	d := NewDispatcher(0)
	var notified Node
	parent := &fakeNode{}
	parent.onEventFn = func(e Event) (bool, bool, error) { return true, false, nil }

	child := &fakeNode{}
	child.onEventFn = func(e Event) (bool, bool, error) { return true, true, nil }

	// notifyingNode wraps parent to record childParsed calls, since
	// childNotifier is an unexported interface checked via type-assertion.
	pn := &notifyingNode{fakeNode: parent, onChildParsed: func(c Node) error {
		notified = c
		return nil
	}}

	if err := d.push(pn); err != nil {
		t.Fatalf("push parent: %v", err)
	}
	if err := d.push(child); err != nil {
		t.Fatalf("push child: %v", err)
	}
	if err := d.dispatch(Event{Kind: Int}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if notified != child {
		t.Error("expected parent to be notified of the completed child")
	}
	if !child.finishCalled {
		t.Error("expected child.finish() to be called on completion")
	}
	if d.depth() != 1 {
		t.Errorf("expected stack depth 1 after popping child, got %d", d.depth())
	}
}

func TestDispatcherConsumedFalseRedelivers(t *testing.T) {
	d := NewDispatcher(0)
	var pushedChild bool
	parent := &fakeNode{}
	parent.onEventFn = func(e Event) (bool, bool, error) {
		if !pushedChild {
			pushedChild = true
			child := &fakeNode{onEventFn: func(e Event) (bool, bool, error) { return true, true, nil }}
			if err := d.push(child); err != nil {
				return true, false, err
			}
			return false, false, nil
		}
		return true, false, nil
	}
	if err := d.push(parent); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := d.dispatch(Event{Kind: Int}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if d.depth() != 1 {
		t.Errorf("expected the pushed-then-completed child to be popped, leaving depth 1, got %d", d.depth())
	}
}

// notifyingNode adds a childParsed method to fakeNode so the dispatcher's
// childNotifier type-assertion succeeds.
type notifyingNode struct {
	*fakeNode
	onChildParsed func(Node) error
}

func (n *notifyingNode) childParsed(child Node) error { return n.onChildParsed(child) }
