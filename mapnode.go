package sjparser

type mapState int8

const (
	mapIdle mapState = iota
	mapOpen
	mapDone
)

// KV is one ordered key/value pair accumulated by a StoringMap, grounded
// on the teacher's pair/objectValue []pair representation (json.go),
// reused here to preserve input insertion order (spec.md invariant 5).
type KV[T any] struct {
	Key   string
	Value T
}

// Map is the non-storing dynamic-keyed object parser (spec.md §4.5.4,
// C5). Every key/value pair is parsed by the same child node; the element
// callback is handed the current key and the live child reference so the
// caller can consume it before it gets reset for the next pair.
type Map struct {
	base
	child     Node
	curKey    string
	elementCB func(key string, child Node) error
	onFinish  func(*Map) error
	state     mapState
}

// NewMap builds a non-storing map parser over child, with a required
// per-pair element callback (spec.md §6 "Map element (per pair): (key,
// child_ref) -> bool").
func NewMap(child Node, elementCB func(key string, child Node) error, opts ...func(*Map)) *Map {
	m := &Map{child: child, elementCB: elementCB}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnMapFinish attaches the map finish-callback.
func OnMapFinish(cb func(*Map) error) func(*Map) {
	return func(m *Map) { m.onFinish = cb }
}

func (m *Map) onEvent(e Event) (bool, bool, error) {
	switch m.state {
	case mapIdle:
		if e.Kind != MapStart {
			return true, false, parseErr(e.Offset, "", ErrSchemaMismatch, "expected map, got %s", e.Kind)
		}
		m.state = mapOpen
		m.markNonEmpty()
		return true, false, nil

	case mapOpen:
		switch e.Kind {
		case MapEnd:
			m.state = mapDone
			m.set = true
			return true, true, nil
		case MapKey:
			m.curKey = e.Str
			m.child.reset()
			m.child.setDispatcher(m.dispatcher)
			if err := m.dispatcher.push(m.child); err != nil {
				return true, false, err
			}
			return true, false, nil
		default:
			return true, false, parseErr(e.Offset, "", ErrSchemaMismatch, "expected a key or end of map, got %s", e.Kind)
		}
	}
	return true, false, parseErr(e.Offset, "", ErrUnexpectedToken, "map already complete")
}

func (m *Map) childParsed(child Node) error {
	if m.elementCB != nil {
		if err := m.elementCB(m.curKey, child); err != nil {
			return parseErr(0, "/"+m.curKey, ErrCallbackRejected, "%v", err)
		}
	}
	return nil
}

func (m *Map) reset() {
	m.resetBase()
	m.state = mapIdle
	m.curKey = ""
	m.child.reset()
}

func (m *Map) finish() error {
	if m.onFinish != nil {
		if err := m.onFinish(m); err != nil {
			return parseErr(0, "", ErrCallbackRejected, "%v", err)
		}
	}
	return nil
}

// StoringMap is the storing dynamic-keyed object parser (spec.md §4.5.4,
// §4.5.5): each pair's popped value is appended to an ordered container
// preserving first-insertion order, and an optional element callback is
// still invoked with the typed value.
type StoringMap[T any] struct {
	base
	child     valuer[T]
	elementCB func(key string, value T) error
	onFinish  func([]KV[T]) error
	pairs     []KV[T]
	curKey    string
	state     mapState
}

// NewStoringMap builds a storing map parser over a value-producing child.
func NewStoringMap[T any](child valuer[T], opts ...func(*StoringMap[T])) *StoringMap[T] {
	m := &StoringMap[T]{child: child, pairs: []KV[T]{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// OnStoringMapElement attaches a per-pair element callback.
func OnStoringMapElement[T any](cb func(key string, value T) error) func(*StoringMap[T]) {
	return func(m *StoringMap[T]) { m.elementCB = cb }
}

// OnStoringMapFinish attaches the map finish callback, receiving the
// ordered accumulated pairs.
func OnStoringMapFinish[T any](cb func([]KV[T]) error) func(*StoringMap[T]) {
	return func(m *StoringMap[T]) { m.onFinish = cb }
}

func (m *StoringMap[T]) onEvent(e Event) (bool, bool, error) {
	switch m.state {
	case mapIdle:
		if e.Kind != MapStart {
			return true, false, parseErr(e.Offset, "", ErrSchemaMismatch, "expected map, got %s", e.Kind)
		}
		m.state = mapOpen
		m.markNonEmpty()
		return true, false, nil

	case mapOpen:
		switch e.Kind {
		case MapEnd:
			m.state = mapDone
			m.set = true
			return true, true, nil
		case MapKey:
			m.curKey = e.Str
			m.child.reset()
			m.child.setDispatcher(m.dispatcher)
			if err := m.dispatcher.push(m.child); err != nil {
				return true, false, err
			}
			return true, false, nil
		default:
			return true, false, parseErr(e.Offset, "", ErrSchemaMismatch, "expected a key or end of map, got %s", e.Kind)
		}
	}
	return true, false, parseErr(e.Offset, "", ErrUnexpectedToken, "map already complete")
}

func (m *StoringMap[T]) childParsed(child Node) error {
	val := m.child.Pop()
	m.pairs = append(m.pairs, KV[T]{Key: m.curKey, Value: val})
	if m.elementCB != nil {
		if err := m.elementCB(m.curKey, val); err != nil {
			return parseErr(0, "/"+m.curKey, ErrCallbackRejected, "%v", err)
		}
	}
	return nil
}

func (m *StoringMap[T]) reset() {
	m.resetBase()
	m.state = mapIdle
	m.curKey = ""
	m.pairs = m.pairs[:0]
	m.child.reset()
}

func (m *StoringMap[T]) finish() error {
	if m.onFinish != nil {
		if err := m.onFinish(m.pairs); err != nil {
			return parseErr(0, "", ErrCallbackRejected, "%v", err)
		}
	}
	return nil
}

// Get returns the accumulated key/value pairs in input order.
func (m *StoringMap[T]) Get() []KV[T] {
	return m.pairs
}

// Pop returns the accumulated pairs and clears the set flag.
func (m *StoringMap[T]) Pop() []KV[T] {
	v := m.pairs
	m.set = false
	return v
}
