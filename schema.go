package sjparser

// MemberSpec is the declarative description of one member of a fixed
// object (spec.md §4.7 "member descriptor"): name, child parser,
// optional flag, and an optional default-materialization closure.
type MemberSpec struct {
	Name     string
	Child    Node
	Optional bool
	// Default, when non-nil, is invoked at map-end for members that were
	// never seen; it must leave Child in a set (and non-empty) state
	// (spec.md §4.7, §9 "defaults do not mark their owning leaf as
	// empty"). Only permitted for value-producing children.
	Default func()
}

// Required declares a mandatory member with no default.
func Required(name string, child Node) MemberSpec {
	return MemberSpec{Name: name, Child: child}
}

// Optional declares a member that may be absent with no default value
// materialized (the child simply stays unset).
func Optional(name string, child Node) MemberSpec {
	return MemberSpec{Name: name, Child: child, Optional: true}
}

// DefaultValue declares an optional Value[T] member with a default that is
// materialized into the child's value slot when the member is absent.
func DefaultValue[T scalar](name string, child *Value[T], def T) MemberSpec {
	return MemberSpec{
		Name:     name,
		Child:    child,
		Optional: true,
		Default:  func() { child.setValue(def) },
	}
}

// DefaultOptionalValue declares an optional OptionalValue[T] member with a
// default *T (possibly nil) materialized when the member is absent.
func DefaultOptionalValue[T scalar](name string, child *OptionalValue[T], def *T) MemberSpec {
	return MemberSpec{
		Name:     name,
		Child:    child,
		Optional: true,
		Default:  func() { child.setValue(def) },
	}
}
