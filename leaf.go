package sjparser

// scalar is the set of Go types a leaf value node may hold, matching
// spec.md §4.4's T ∈ {int64, bool, double, string}.
type scalar interface {
	~int64 | ~bool | ~float64 | ~string
}

// matchScalar reports whether e carries a value assignable to T,
// including the int/double widening spec.md §3 requires ("integer-typed
// leaves may also accept whole-number doubles when unambiguous").
func matchScalar[T scalar](e Event) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case int64:
		if e.Kind == Int {
			return any(e.Int).(T), true
		}
		if e.Kind == Double && e.Double == float64(int64(e.Double)) {
			return any(int64(e.Double)).(T), true
		}
	case bool:
		if e.Kind == Bool {
			return any(e.Bool).(T), true
		}
	case float64:
		if e.Kind == Double {
			return any(e.Double).(T), true
		}
		if e.Kind == Int {
			return any(float64(e.Int)).(T), true
		}
	case string:
		if e.Kind == String {
			return any(e.Str).(T), true
		}
	}
	return zero, false
}

// Value is a required, single-typed scalar leaf (spec.md §4.4 "Value<T>").
type Value[T scalar] struct {
	base
	value     T
	validator func(T) error
}

// NewValue builds a Value leaf, optionally configured with options such as
// WithValidator.
func NewValue[T scalar](opts ...func(*Value[T])) *Value[T] {
	v := &Value[T]{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithValidator attaches a leaf validator (spec.md §4.4 "Validator hook").
// A validator returning a non-nil error aborts the parse with
// ValidationRejected, carrying the error's text as the rejection message.
func WithValidator[T scalar](f func(T) error) func(*Value[T]) {
	return func(v *Value[T]) { v.validator = f }
}

func (v *Value[T]) onEvent(e Event) (bool, bool, error) {
	val, ok := matchScalar[T](e)
	if !ok {
		return true, false, parseErr(e.Offset, "", ErrSchemaMismatch, "scalar leaf does not accept %s", e.Kind)
	}
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return true, false, parseErr(e.Offset, "", ErrValidationRejected, "%v", err)
		}
	}
	v.value = val
	v.markNonEmpty()
	v.set = true
	return true, true, nil
}

func (v *Value[T]) reset() {
	v.resetBase()
	var zero T
	v.value = zero
}

// Get returns the current value without clearing the set flag (spec.md §3
// invariant 4: "get() does not" clear set-flag).
func (v *Value[T]) Get() T {
	return v.value
}

// Pop returns the current value and clears the set flag (spec.md §3
// invariant 4: "pop() on a storing leaf clears set-flag"). Storing
// containers use this to consume their child's value on each element
// (spec.md §9's one-shot consumption resolution).
func (v *Value[T]) Pop() T {
	val := v.value
	v.set = false
	return val
}

// setValue materializes a default (spec.md §4.7): it must not be
// distinguishable, from the leaf's own perspective, from a value that
// arrived through onEvent — in particular it must leave IsSet() true.
func (v *Value[T]) setValue(t T) {
	v.value = t
	v.markNonEmpty()
	v.set = true
}

// OptionalValue is a scalar leaf whose JSON null explicitly sets the slot
// to empty-but-set (spec.md §4.4 "OptionalValue<T>"). A nil *T means the
// value was JSON null; a non-nil *T holds the parsed scalar.
type OptionalValue[T scalar] struct {
	base
	value     *T
	validator func(T) error
}

func NewOptionalValue[T scalar](opts ...func(*OptionalValue[T])) *OptionalValue[T] {
	v := &OptionalValue[T]{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func WithOptionalValidator[T scalar](f func(T) error) func(*OptionalValue[T]) {
	return func(v *OptionalValue[T]) { v.validator = f }
}

func (v *OptionalValue[T]) onEvent(e Event) (bool, bool, error) {
	if e.Kind == Null {
		v.value = nil
		v.markNonEmpty()
		v.set = true
		return true, true, nil
	}
	val, ok := matchScalar[T](e)
	if !ok {
		return true, false, parseErr(e.Offset, "", ErrSchemaMismatch, "optional scalar leaf does not accept %s", e.Kind)
	}
	if v.validator != nil {
		if err := v.validator(val); err != nil {
			return true, false, parseErr(e.Offset, "", ErrValidationRejected, "%v", err)
		}
	}
	v.value = &val
	v.markNonEmpty()
	v.set = true
	return true, true, nil
}

func (v *OptionalValue[T]) reset() {
	v.resetBase()
	v.value = nil
}

func (v *OptionalValue[T]) Get() *T {
	return v.value
}

func (v *OptionalValue[T]) Pop() *T {
	val := v.value
	v.set = false
	return val
}

func (v *OptionalValue[T]) setValue(t *T) {
	v.value = t
	v.markNonEmpty()
	v.set = true
}

// Ignore accepts any single value, or any nested sub-tree, and discards it
// (spec.md §4.4 "Ignore"). It tracks nesting depth so a whole object or
// array can be swallowed as the value of an unknown key (§4.5.2).
type Ignore struct {
	base
	depth int
}

func (g *Ignore) onEvent(e Event) (bool, bool, error) {
	switch e.Kind {
	case MapStart, ArrayStart:
		g.depth++
		g.markNonEmpty()
		return true, false, nil
	case MapEnd, ArrayEnd:
		g.depth--
		if g.depth == 0 {
			g.set = true
			return true, true, nil
		}
		return true, false, nil
	case MapKey:
		// Keys inside an ignored object subtree pass through untouched;
		// the corresponding value is what changes depth/terminates.
		return true, false, nil
	default:
		g.markNonEmpty()
		if g.depth == 0 {
			g.set = true
			return true, true, nil
		}
		return true, false, nil
	}
}

func (g *Ignore) reset() {
	g.resetBase()
	g.depth = 0
}

// FixedValue is an Ignore-derived leaf that swallows whatever value is in
// the payload but reports a constant in its place. Grounded on
// original_source's sjparser FixedValue<T>, used by collaborators that
// want to pin a member to a known constant while still requiring the key
// to be present.
type FixedValue[T scalar] struct {
	Ignore
	value T
}

func NewFixedValue[T scalar](v T) *FixedValue[T] {
	return &FixedValue[T]{value: v}
}

func (f *FixedValue[T]) Get() T {
	return f.value
}

func (f *FixedValue[T]) Pop() T {
	f.set = false
	return f.value
}
