package sjparser

import "fmt"

// Kind identifies the variant carried by an Event.
type Kind int8

// Event kinds, per spec.md §3.
const (
	MapStart Kind = iota
	MapEnd
	MapKey
	ArrayStart
	ArrayEnd
	Null
	Bool
	Int
	Double
	String
	numKinds
)

var kindStrings = [numKinds]string{
	"map-start", "map-end", "map-key", "array-start", "array-end",
	"null", "bool", "int", "double", "string",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "<unknown>"
	}
	return kindStrings[k]
}

// Event is a single SAX notification produced by the tokenizer.
//
// A whole number without a fractional part or exponent is emitted as Int
// (the "exact" form); anything with a fraction or exponent, or too large
// for int64, is emitted as Double (the "widened" form). Leaf value nodes
// perform the reverse widening themselves — an int64 leaf accepts a Double
// event when it is an exact whole number, and a float64 leaf accepts an
// Int event — so the Event itself only ever carries one numeric
// representation (spec.md §3, §4.1 "Numeric policy").
type Event struct {
	Kind   Kind
	Offset int
	Bool   bool
	Int    int64
	Double float64
	Str    string
}

func (e Event) String() string {
	switch e.Kind {
	case MapKey, String:
		return fmt.Sprintf("%s(%q)@%d", e.Kind, e.Str, e.Offset)
	case Bool:
		return fmt.Sprintf("%s(%v)@%d", e.Kind, e.Bool, e.Offset)
	case Int:
		return fmt.Sprintf("%s(%d)@%d", e.Kind, e.Int, e.Offset)
	case Double:
		return fmt.Sprintf("%s(%v)@%d", e.Kind, e.Double, e.Offset)
	default:
		return fmt.Sprintf("%s@%d", e.Kind, e.Offset)
	}
}

// isScalar reports whether the event carries a leaf value rather than a
// structural transition.
func (e Event) isScalar() bool {
	switch e.Kind {
	case Null, Bool, Int, Double, String:
		return true
	default:
		return false
	}
}
