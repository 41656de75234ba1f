// std.go — the fixed standard library exposed under the reserved name std.
//
// The table is built once at initialization and never mutated. Every function
// is deterministic and side-effect-free, validates its arguments, and fails
// with a descriptive message when misapplied.
package exp

import (
	"fmt"
	"math"
	"strings"
)

const stdName = "std"

// stdValue is the immutable std object bound ahead of the host environment.
var stdValue = buildStd()

func buildStd() Value {
	entries := map[string]Value{}
	register := func(name string, fn func(args []Value) (Value, error)) {
		entries[name] = FuncVal("std."+name, func(_ Value, args []Value) (Value, error) {
			return fn(args)
		})
	}

	register("len", stdLen)

	// numeric
	register("abs", numFn1("abs", math.Abs))
	register("floor", numFn1("floor", math.Floor))
	register("ceil", numFn1("ceil", math.Ceil))
	register("round", numFn1("round", func(x float64) float64 {
		// Half-up toward +Inf, as Math.round does.
		return math.Floor(x + 0.5)
	}))
	register("trunc", numFn1("trunc", math.Trunc))
	register("sqrt", numFn1("sqrt", math.Sqrt))
	register("pow", numFn2("pow", math.Pow))
	register("min", numFn2("min", math.Min))
	register("max", numFn2("max", math.Max))
	register("clamp", stdClamp)

	// strings
	register("lower", strFn1("lower", strings.ToLower))
	register("upper", strFn1("upper", strings.ToUpper))
	register("trim", strFn1("trim", strings.TrimSpace))
	register("startsWith", strPred2("startsWith", strings.HasPrefix))
	register("endsWith", strPred2("endsWith", strings.HasSuffix))
	register("includes", stdIncludes)
	register("slice", stdSlice)

	return Obj(entries)
}

func stdArity(name string, args []Value, n int) error {
	if len(args) != n {
		return fmt.Errorf("std.%s: expected %d argument(s), got %d", name, n, len(args))
	}
	return nil
}

func stdNumArg(name string, args []Value, i int) (float64, error) {
	if args[i].Tag != VTNum {
		return 0, fmt.Errorf("std.%s: argument %d must be a number, got %s", name, i+1, args[i].String())
	}
	return args[i].Data.(float64), nil
}

func stdStrArg(name string, args []Value, i int) (string, error) {
	if args[i].Tag != VTStr {
		return "", fmt.Errorf("std.%s: argument %d must be a string, got %s", name, i+1, args[i].String())
	}
	return args[i].Data.(string), nil
}

func numFn1(name string, fn func(float64) float64) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if err := stdArity(name, args, 1); err != nil {
			return Undefined, err
		}
		x, err := stdNumArg(name, args, 0)
		if err != nil {
			return Undefined, err
		}
		return Num(fn(x)), nil
	}
}

func numFn2(name string, fn func(a, b float64) float64) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if err := stdArity(name, args, 2); err != nil {
			return Undefined, err
		}
		a, err := stdNumArg(name, args, 0)
		if err != nil {
			return Undefined, err
		}
		b, err := stdNumArg(name, args, 1)
		if err != nil {
			return Undefined, err
		}
		return Num(fn(a, b)), nil
	}
}

func strFn1(name string, fn func(string) string) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if err := stdArity(name, args, 1); err != nil {
			return Undefined, err
		}
		s, err := stdStrArg(name, args, 0)
		if err != nil {
			return Undefined, err
		}
		return Str(fn(s)), nil
	}
}

func strPred2(name string, fn func(s, affix string) bool) func([]Value) (Value, error) {
	return func(args []Value) (Value, error) {
		if err := stdArity(name, args, 2); err != nil {
			return Undefined, err
		}
		s, err := stdStrArg(name, args, 0)
		if err != nil {
			return Undefined, err
		}
		affix, err := stdStrArg(name, args, 1)
		if err != nil {
			return Undefined, err
		}
		return Bool(fn(s, affix)), nil
	}
}

// stdLen: length of a string (in code points) or an array. Other shapes are
// rejected.
func stdLen(args []Value) (Value, error) {
	if err := stdArity("len", args, 1); err != nil {
		return Undefined, err
	}
	switch args[0].Tag {
	case VTStr:
		n := 0
		for range args[0].Data.(string) {
			n++
		}
		return Num(float64(n)), nil
	case VTArray:
		return Num(float64(len(args[0].Data.(*Array).Elems))), nil
	default:
		return Undefined, fmt.Errorf("std.len: expected a string or array, got %s", args[0].String())
	}
}

// stdClamp returns min(hi, max(lo, x)).
func stdClamp(args []Value) (Value, error) {
	if err := stdArity("clamp", args, 3); err != nil {
		return Undefined, err
	}
	x, err := stdNumArg("clamp", args, 0)
	if err != nil {
		return Undefined, err
	}
	lo, err := stdNumArg("clamp", args, 1)
	if err != nil {
		return Undefined, err
	}
	hi, err := stdNumArg("clamp", args, 2)
	if err != nil {
		return Undefined, err
	}
	return Num(math.Min(hi, math.Max(lo, x))), nil
}

// stdIncludes: substring containment on strings, strict value membership on
// arrays.
func stdIncludes(args []Value) (Value, error) {
	if err := stdArity("includes", args, 2); err != nil {
		return Undefined, err
	}
	switch args[0].Tag {
	case VTStr:
		needle, err := stdStrArg("includes", args, 1)
		if err != nil {
			return Undefined, err
		}
		return Bool(strings.Contains(args[0].Data.(string), needle)), nil
	case VTArray:
		for _, e := range args[0].Data.(*Array).Elems {
			if strictEq(e, args[1]) {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	default:
		return Undefined, fmt.Errorf("std.includes: expected a string or array, got %s", args[0].String())
	}
}

// stdSlice: the standard substring operation over code points. Negative
// indices count from the end; out-of-range indices clamp.
func stdSlice(args []Value) (Value, error) {
	if len(args) != 2 && len(args) != 3 {
		return Undefined, fmt.Errorf("std.slice: expected 2 or 3 arguments, got %d", len(args))
	}
	s, err := stdStrArg("slice", args, 0)
	if err != nil {
		return Undefined, err
	}
	runes := []rune(s)
	n := len(runes)

	start, err := stdNumArg("slice", args, 1)
	if err != nil {
		return Undefined, err
	}
	end := float64(n)
	if len(args) == 3 {
		end, err = stdNumArg("slice", args, 2)
		if err != nil {
			return Undefined, err
		}
	}

	lo := sliceIndex(start, n)
	hi := sliceIndex(end, n)
	if lo >= hi {
		return Str(""), nil
	}
	return Str(string(runes[lo:hi])), nil
}

// sliceIndex resolves one slice bound: truncate toward zero, count negatives
// from the end, clamp into [0, n]. NaN resolves to 0.
func sliceIndex(f float64, n int) int {
	if math.IsNaN(f) {
		return 0
	}
	f = math.Trunc(f)
	if f < 0 {
		f += float64(n)
	}
	if f < 0 {
		return 0
	}
	if f > float64(n) {
		return n
	}
	return int(f)
}
