package sjparser

import "testing"

type point struct {
	X, Y int64
}

func newPointParser() *AutoObject[point] {
	x := NewValue[int64]()
	y := NewValue[int64]()
	return NewAutoObject(
		[]MemberSpec{Required("x", x), Required("y", y)},
		func() (point, error) {
			return point{X: x.Get(), Y: y.Get()}, nil
		},
	)
}

func TestAutoObjectAssemblesTuple(t *testing.T) {
	root := newPointParser()
	p := New(root)
	if err := p.Parse([]byte(`{"x":1,"y":2}`)); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := p.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if got := root.Get(); got != (point{1, 2}) {
		t.Errorf("expected {1 2} got %+v", got)
	}
}

func TestAutoObjectAsStoringArrayElement(t *testing.T) {
	sa := NewStoringArray[point](newPointParser())
	p := New(sa)
	if err := p.Parse([]byte(`[{"x":1,"y":2},{"x":3,"y":4}]`)); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := p.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	got := sa.Get()
	if len(got) != 2 || got[0] != (point{1, 2}) || got[1] != (point{3, 4}) {
		t.Errorf("unexpected points: %+v", got)
	}
}
