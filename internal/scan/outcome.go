package scan

// Kind is the arm of a navigation Outcome.
type Kind uint8

const (
	// NotFound means the path does not resolve: a missing key, an out of range
	// index, a key applied to an array (or the reverse), or descent into a scalar.
	NotFound Kind = iota
	// Malformed means the bytes visited are not valid JSON.
	Malformed
	// Scalar means the path addressed null, a boolean, a number or a string.
	Scalar
	// Container means the path addressed an object or an array.
	Container
)

var kindNames = [...]string{
	NotFound:  "not_found",
	Malformed: "malformed",
	Scalar:    "scalar",
	Container: "container",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Type is the JSON type of a located value.
type Type uint8

const (
	TypeNone Type = iota
	TypeNull
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeObject
	TypeArray
)

var typeNames = [...]string{
	TypeNone:   "none",
	TypeNull:   "null",
	TypeBool:   "bool",
	TypeInt:    "int",
	TypeFloat:  "float",
	TypeString: "string",
	TypeObject: "object",
	TypeArray:  "array",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Outcome is the result of one navigation. Exactly one arm is populated:
// Kind selects it, Type refines Scalar and Container, and only the payload
// field matching Type is meaningful.
type Outcome struct {
	Kind Kind
	Type Type

	Bool  bool
	Int   int64
	Float float64
	Str   string

	// Raw is the exact source text of the located value (scalar or container).
	// It aliases the document passed to Find.
	Raw []byte
}

// Found reports whether the path resolved to a value.
func (o Outcome) Found() bool {
	return o.Kind == Scalar || o.Kind == Container
}

// IsNull reports whether the path resolved to a JSON null.
func (o Outcome) IsNull() bool {
	return o.Kind == Scalar && o.Type == TypeNull
}

func notFound() Outcome  { return Outcome{Kind: NotFound} }
func malformed() Outcome { return Outcome{Kind: Malformed} }
