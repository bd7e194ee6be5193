package mapper

import "strconv"

// ValueKind discriminates the small set of shapes a raw CSV cell (or a
// transformed result) can take.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindText
	KindNumber
	KindBool
)

// Value is a tagged union for cell values flowing through the transform
// pipeline. CSV cells arrive as text; number and bool cover already-typed
// values handed over by collaborators (JSON previews, re-imports, tests).
//
// The zero Value is null. Transforms that cannot parse their input return
// null rather than a zero of the target type, so "0" and "unparseable" stay
// distinguishable downstream.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
	Bool   bool
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Text wraps a string. An empty or all-whitespace string is still a text
// value here; emptiness handling belongs to the individual transforms.
func Text(s string) Value { return Value{Kind: KindText, Text: s} }

// Number wraps a float64.
func Number(f float64) Value { return Value{Kind: KindNumber, Number: f} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// AsText renders the value as a string for parsing or display.
// Null renders as the empty string. Numbers use the shortest representation
// that round-trips (1250000 renders as "1250000", not "1.25e+06").
func (v Value) AsText() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}
