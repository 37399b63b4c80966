package sjparser

import (
	"errors"
	"testing"
)

func TestValueAcceptsExactKind(t *testing.T) {
	v := NewValue[int64]()
	v.setDispatcher(NewDispatcher(0))
	consumed, done, err := v.onEvent(Event{Kind: Int, Int: 7})
	if err != nil || !consumed || !done {
		t.Fatalf("expected consumed+done, got %v %v %v", consumed, done, err)
	}
	if v.Get() != 7 {
		t.Errorf("expected 7 got %d", v.Get())
	}
	if !v.IsSet() || v.IsEmpty() {
		t.Error("expected set and non-empty after a matching event")
	}
}

func TestValueWidensWholeNumberDouble(t *testing.T) {
	v := NewValue[int64]()
	_, done, err := v.onEvent(Event{Kind: Double, Double: 4})
	if err != nil || !done {
		t.Fatalf("expected a whole-number double to widen to int64, got done=%v err=%v", done, err)
	}
	if v.Get() != 4 {
		t.Errorf("expected 4 got %d", v.Get())
	}
}

func TestValueRejectsFractionalDoubleForInt(t *testing.T) {
	v := NewValue[int64]()
	_, _, err := v.onEvent(Event{Kind: Double, Double: 4.5})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestValueRejectsWrongKind(t *testing.T) {
	v := NewValue[string]()
	_, _, err := v.onEvent(Event{Kind: Bool, Bool: true})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch got %v", err)
	}
}

func TestValueValidator(t *testing.T) {
	v := NewValue[int64](WithValidator(func(n int64) error {
		if n < 0 {
			return errors.New("must be non-negative")
		}
		return nil
	}))
	if _, _, err := v.onEvent(Event{Kind: Int, Int: -1}); !errors.Is(err, ErrValidationRejected) {
		t.Fatalf("expected ErrValidationRejected got %v", err)
	}
	v.reset()
	if _, _, err := v.onEvent(Event{Kind: Int, Int: 5}); err != nil {
		t.Fatalf("expected valid input to pass, got %v", err)
	}
}

func TestValuePopClearsSetFlag(t *testing.T) {
	v := NewValue[string]()
	v.onEvent(Event{Kind: String, Str: "x"})
	if got := v.Pop(); got != "x" {
		t.Fatalf("expected x got %q", got)
	}
	if v.IsSet() {
		t.Error("Pop should clear the set flag")
	}
	if got := v.Get(); got != "x" {
		t.Errorf("Get after Pop should still report the last value, got %q", got)
	}
}

func TestValueSetValueMaterializesDefault(t *testing.T) {
	v := NewValue[int64]()
	v.setValue(9)
	if !v.IsSet() || v.IsEmpty() {
		t.Error("setValue should leave the leaf set and non-empty")
	}
	if v.Get() != 9 {
		t.Errorf("expected 9 got %d", v.Get())
	}
}

func TestOptionalValueNull(t *testing.T) {
	v := NewOptionalValue[int64]()
	_, done, err := v.onEvent(Event{Kind: Null})
	if err != nil || !done {
		t.Fatalf("expected null to complete the leaf, got done=%v err=%v", done, err)
	}
	if !v.IsSet() {
		t.Error("null should still set the leaf")
	}
	if v.Get() != nil {
		t.Error("expected a nil pointer for an explicit null")
	}
}

func TestOptionalValueScalar(t *testing.T) {
	v := NewOptionalValue[string]()
	v.onEvent(Event{Kind: String, Str: "hi"})
	if got := v.Get(); got == nil || *got != "hi" {
		t.Fatalf("expected pointer to %q, got %v", "hi", got)
	}
}

func TestIgnoreSingleScalar(t *testing.T) {
	g := &Ignore{}
	_, done, err := g.onEvent(Event{Kind: String, Str: "whatever"})
	if err != nil || !done {
		t.Fatalf("a lone scalar should immediately complete Ignore, got done=%v err=%v", done, err)
	}
}

func TestIgnoreNestedSubtree(t *testing.T) {
	g := &Ignore{}
	steps := []Event{
		{Kind: MapStart},
		{Kind: MapKey, Str: "a"},
		{Kind: ArrayStart},
		{Kind: Int, Int: 1},
		{Kind: Int, Int: 2},
		{Kind: ArrayEnd},
		{Kind: MapEnd},
	}
	for i, e := range steps {
		_, done, err := g.onEvent(e)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if i < len(steps)-1 && done {
			t.Fatalf("step %d: should not complete before the subtree closes", i)
		}
	}
	if !g.IsSet() {
		t.Error("expected Ignore to be set after the full subtree closes")
	}
}

func TestFixedValueReportsConstant(t *testing.T) {
	f := NewFixedValue[string]("node")
	_, done, err := f.onEvent(Event{Kind: String, Str: "anything"})
	if err != nil || !done {
		t.Fatalf("expected a lone scalar to complete FixedValue, got done=%v err=%v", done, err)
	}
	if f.Get() != "node" {
		t.Errorf("expected constant %q, got %q", "node", f.Get())
	}
	if got := f.Pop(); got != "node" || f.IsSet() {
		t.Errorf("Pop should return the constant and clear set, got %q set=%v", got, f.IsSet())
	}
}
