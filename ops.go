// ops.go — truthiness, ToNumber/ToString coercions, canonical number
// formatting, and safe loose equality.
//
// The coercions are ECMAScript-aligned for primitives and refuse
// non-primitives outright: no conversion-to-primitive protocol exists, so no
// host method can ever run during coercion or comparison.
package exp

import (
	"math"
	"strconv"
	"strings"
)

// truthy implements the usual predicate: false, null, undefined, NaN, zero
// and the empty string are falsy; everything else is truthy.
func truthy(v Value) bool {
	switch v.Tag {
	case VTUndefined, VTNull:
		return false
	case VTBool:
		return v.Data.(bool)
	case VTNum:
		f := v.Data.(float64)
		return f != 0 && !math.IsNaN(f)
	case VTStr:
		return v.Data.(string) != ""
	default:
		return true
	}
}

// toNumber converts a primitive to a number. The second result is false when
// the value is non-primitive; the caller raises ExpectedPrimitive.
func toNumber(v Value) (float64, bool) {
	switch v.Tag {
	case VTNum:
		return v.Data.(float64), true
	case VTBool:
		if v.Data.(bool) {
			return 1, true
		}
		return 0, true
	case VTNull:
		return 0, true
	case VTUndefined:
		return math.NaN(), true
	case VTStr:
		return stringToNumber(v.Data.(string)), true
	default:
		return 0, false
	}
}

// stringToNumber parses a decimal number after trimming whitespace. The empty
// string is zero; anything unparseable is NaN. Accepted are decimal forms
// with an optional sign and an optional exponent ("1e3"), plus "Infinity":
// hex floats and Go's "inf" shorthands are not numbers here.
func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if strings.ContainsAny(s, "xXpPiInN_") {
		// Rejects hex/binary forms, "inf", "NaN" spellings and digit
		// separators that strconv would otherwise accept.
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// toString converts a primitive to text. The second result is false when the
// value is non-primitive.
func toString(v Value) (string, bool) {
	switch v.Tag {
	case VTStr:
		return v.Data.(string), true
	case VTNum:
		return formatNumber(v.Data.(float64)), true
	case VTBool:
		if v.Data.(bool) {
			return "true", true
		}
		return "false", true
	case VTNull:
		return "null", true
	case VTUndefined:
		return "undefined", true
	default:
		return "", false
	}
}

// formatNumber renders the canonical decimal form: the shortest text that
// round-trips, plain decimal notation within [1e-6, 1e21), exponential
// outside, "NaN"/"Infinity" for the non-finite values, and "0" for both
// zeros.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent normalizes Go's two-digit exponent ("1e-07") to the canonical
// form without leading zeros ("1e-7").
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 {
		return s
	}
	mant, exp := s[:i], s[i+1:]
	sign := ""
	if len(exp) > 0 && (exp[0] == '+' || exp[0] == '-') {
		sign, exp = string(exp[0]), exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		exp = "0"
	}
	return mant + "e" + sign + exp
}

// floatMod is the % operator: the IEEE remainder with the sign of the
// dividend (Go's math.Mod, which matches the ECMAScript operator).
func floatMod(a, b float64) float64 { return math.Mod(a, b) }

// strictEq is ===-style equality: same kind and same primitive value, or the
// same reference for non-primitives. NaN is not equal to itself.
func strictEq(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case VTUndefined, VTNull:
		return true
	case VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case VTNum:
		return a.Data.(float64) == b.Data.(float64)
	case VTStr:
		return a.Data.(string) == b.Data.(string)
	default:
		return a.Data == b.Data
	}
}

// looseEq implements the safe == operator. Primitive pairs follow
// conventional loose equality; any pair with a non-primitive side compares by
// reference identity only, with no conversion and no host calls.
func looseEq(a, b Value) bool {
	if !a.isPrimitive() || !b.isPrimitive() {
		ra, rb := a.refOf(), b.refOf()
		return ra != nil && rb != nil && ra == rb
	}

	if a.Tag == b.Tag {
		switch a.Tag {
		case VTUndefined, VTNull:
			return true
		case VTBool:
			return a.Data.(bool) == b.Data.(bool)
		case VTNum:
			return a.Data.(float64) == b.Data.(float64)
		case VTStr:
			return a.Data.(string) == b.Data.(string)
		}
	}

	if (a.Tag == VTNull && b.Tag == VTUndefined) || (a.Tag == VTUndefined && b.Tag == VTNull) {
		return true
	}

	// Booleans coerce to numbers before any further comparison.
	if a.Tag == VTBool {
		n, _ := toNumber(a)
		return looseEq(Num(n), b)
	}
	if b.Tag == VTBool {
		n, _ := toNumber(b)
		return looseEq(a, Num(n))
	}

	// Mixed string/number compares numerically.
	if a.Tag == VTNum && b.Tag == VTStr {
		return a.Data.(float64) == stringToNumber(b.Data.(string))
	}
	if a.Tag == VTStr && b.Tag == VTNum {
		return stringToNumber(a.Data.(string)) == b.Data.(float64)
	}

	return false
}
