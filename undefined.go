package refson

// undefinedValue is the type of Undefined. It is unexported so Undefined is
// the only value of it.
type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Undefined is the distinguished "present but undefined" value. It is
// distinct from nil: a field holding Undefined round-trips as Undefined,
// a field holding nil round-trips as nil, and an absent field stays absent.
var Undefined undefinedValue

// IsUndefined reports whether v is the Undefined value.
func IsUndefined(v any) bool {
	_, ok := v.(undefinedValue)
	return ok
}
