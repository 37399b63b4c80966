package sjparser

type objState int8

const (
	objIdle objState = iota
	objOpen
	objDone
)

// Object is a fixed-member object parser (spec.md §4.5.2, C5). Unknown
// keys are rejected unless IgnoreUnknownKeys is set, in which case the
// corresponding value subtree is swallowed by a throwaway Ignore node
// (spec.md's unknown-key policy).
type Object struct {
	base
	members       []MemberSpec
	index         map[string]int
	seen          []bool
	ignoreUnknown bool
	curIdx        int
	state         objState
	onFinish      func(*Object) error
}

// ObjectOption configures an Object at construction time.
type ObjectOption func(*Object)

// IgnoreUnknownKeys sets the object's unknown-key policy to "ignore"
// instead of the default "error" (spec.md §3 "unknown-key policy").
func IgnoreUnknownKeys() ObjectOption {
	return func(o *Object) { o.ignoreUnknown = true }
}

// OnObjectFinish attaches the object finish-callback (spec.md §6 "Object
// finish: (node_ref) -> bool"). Returning a non-nil error aborts the parse
// with CallbackRejected.
func OnObjectFinish(cb func(*Object) error) ObjectOption {
	return func(o *Object) { o.onFinish = cb }
}

// NewObject builds a fixed-member object parser from its member table.
func NewObject(members []MemberSpec, opts ...ObjectOption) *Object {
	o := &Object{
		members: members,
		index:   make(map[string]int, len(members)),
		seen:    make([]bool, len(members)),
	}
	for i, m := range members {
		o.index[m.Name] = i
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Member returns the child parser registered for name, or nil if name is
// not a declared member. Used by finish-callbacks to read decoded values
// off the completed object (spec.md §6).
func (o *Object) Member(name string) Node {
	idx, ok := o.index[name]
	if !ok {
		return nil
	}
	return o.members[idx].Child
}

func (o *Object) onEvent(e Event) (bool, bool, error) {
	switch o.state {
	case objIdle:
		if e.Kind != MapStart {
			return true, false, parseErr(e.Offset, "", ErrSchemaMismatch, "expected object, got %s", e.Kind)
		}
		o.state = objOpen
		o.markNonEmpty()
		return true, false, nil

	case objOpen:
		switch e.Kind {
		case MapEnd:
			for i, m := range o.members {
				if o.seen[i] {
					continue
				}
				if !m.Optional {
					return true, false, parseErr(e.Offset, "/"+m.Name, ErrMissingRequired, "missing required member %q", m.Name)
				}
				if m.Default != nil {
					m.Default()
				}
			}
			o.state = objDone
			o.set = true
			return true, true, nil

		case MapKey:
			idx, ok := o.index[e.Str]
			if !ok {
				if o.ignoreUnknown {
					ig := &Ignore{}
					ig.setDispatcher(o.dispatcher)
					if err := o.dispatcher.push(ig); err != nil {
						return true, false, err
					}
					o.curIdx = -1
					return true, false, nil
				}
				return true, false, parseErr(e.Offset, "/"+e.Str, ErrUnknownKey, "unknown key %q", e.Str)
			}
			o.curIdx = idx
			o.seen[idx] = true
			child := o.members[idx].Child
			child.reset()
			child.setDispatcher(o.dispatcher)
			if err := o.dispatcher.push(child); err != nil {
				return true, false, err
			}
			return true, false, nil

		default:
			return true, false, parseErr(e.Offset, "", ErrSchemaMismatch, "expected a key or end of object, got %s", e.Kind)
		}
	}
	return true, false, parseErr(e.Offset, "", ErrUnexpectedToken, "object already complete")
}

func (o *Object) reset() {
	o.resetBase()
	o.state = objIdle
	o.curIdx = 0
	for i := range o.seen {
		o.seen[i] = false
	}
	for _, m := range o.members {
		m.Child.reset()
	}
}

func (o *Object) finish() error {
	if o.onFinish != nil {
		if err := o.onFinish(o); err != nil {
			return parseErr(0, "", ErrCallbackRejected, "%v", err)
		}
	}
	return nil
}
