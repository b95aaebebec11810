package raceline

import "strconv"

// Kind tells which member of a Value is set.
type Kind uint8

const (
	KindString Kind = iota
	KindNumber
)

// Value is one cell of a waypoint record: either opaque text or a number.
// Numbers parsed from a file remember their original text so an unedited
// cell is written back exactly as it was read.
type Value struct {
	kind Kind
	text string
	num  float64
}

// StringValue returns an opaque text cell.
func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

// NumberValue returns a numeric cell with no source text.
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

func parsedNumber(raw string, f float64) Value {
	return Value{kind: KindNumber, text: raw, num: f}
}

func (v Value) Kind() Kind {
	return v.kind
}

// Number returns the numeric content and whether the cell is numeric.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String returns the cell as it is written to disk.
func (v Value) String() string {
	if v.kind == KindString || v.text != "" {
		return v.text
	}
	return FormatNumber(v.num)
}

// FormatNumber renders a coordinate in the shortest decimal form that parses
// back to the same float64.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
