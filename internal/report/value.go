package report

import "strconv"

// Kind classifies the state of a report cell.
type Kind uint8

const (
	// KindNumber is an ordinary numeric measurement.
	KindNumber Kind = iota
	// KindBelowFloor marks a signal whose SNR fell below the noise
	// floor: the value is undetectable, not missing through error.
	KindBelowFloor
	// KindNulled marks a value removed by fault injection.
	KindNulled
	// KindToken holds malformed or placeholder text injected by a
	// corruption rule ("ERR-&^%", "?", "N/A", ...).
	KindToken
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBelowFloor:
		return "below_floor"
	case KindNulled:
		return "null"
	case KindToken:
		return "token"
	}
	return "unknown"
}

// Value is a single corruptible report cell. Below-floor signals and
// fault-nulled values both export as an empty field but stay distinct
// states, so the generator never conflates undetectable signals with
// injected corruption.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Num returns a numeric cell.
func Num(v float64) Value { return Value{kind: KindNumber, num: v} }

// BelowFloor returns the invalid-signal sentinel cell.
func BelowFloor() Value { return Value{kind: KindBelowFloor} }

// Nulled returns a fault-injected missing cell.
func Nulled() Value { return Value{kind: KindNulled} }

// Token returns a malformed-text cell.
func Token(s string) Value { return Value{kind: KindToken, text: s} }

// Kind reports the cell state.
func (v Value) Kind() Kind { return v.kind }

// Float returns the numeric value and whether the cell holds one.
func (v Value) Float() (float64, bool) { return v.num, v.kind == KindNumber }

// Export renders the cell for tabular output. Numbers use the shortest
// exact decimal form; below-floor and nulled cells render empty, the
// same way the upstream tooling serialised NaN.
func (v Value) Export() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindToken:
		return v.text
	}
	return ""
}
