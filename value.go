// value.go — the closed runtime value model and its validator.
//
// A Value is exactly one of: undefined, null, boolean, number (IEEE-754
// double, including NaN and the infinities), string, array, object, or
// function. Arrays, objects and functions are boxed behind pointers so that
// the safe loose-equality rules can compare non-primitives by reference
// alone. No other shapes are admissible; the validator rejects everything
// else before evaluation begins.
package exp

import (
	"fmt"
	"strconv"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTUndefined ValueTag = iota // no payload
	VTNull                      // no payload
	VTBool                      // bool
	VTNum                       // float64
	VTStr                       // string
	VTArray                     // *Array
	VTObject                    // *Object
	VTFunc                      // *Func
)

// Value is the universal runtime carrier. Tag determines which Go type Data
// holds (see ValueTag). Use the constructors below; a Value whose Data does
// not match its Tag is inadmissible and rejected by validation.
type Value struct {
	Tag  ValueTag
	Data any
}

// Array is an ordered sequence of values. Its length is the data itself, not
// a derived property; the evaluator exposes it as the sole member "length".
type Array struct {
	Elems []Value
}

// Object is a mapping from string keys to values with no inherited members.
// Key order carries no semantics.
type Object struct {
	Entries map[string]Value
}

// Func is an invocable host callable. Functions are opaque to expressions:
// member access on a function value yields undefined (after the forbidden
// name check), and equality is identity only.
//
// Fn receives the bound receiver (the object of a member call, or Undefined
// for a free call) and the evaluated arguments in source order. A returned
// error aborts evaluation as a HostError with the message wrapped unchanged;
// the returned Value must be admissible or evaluation fails with
// UnsupportedReturn.
type Func struct {
	Name string
	Fn   func(recv Value, args []Value) (Value, error)
}

// Undefined and Null are the singleton instances of their kinds.
var (
	Undefined = Value{Tag: VTUndefined}
	Null      = Value{Tag: VTNull}
)

func Bool(b bool) Value   { return Value{Tag: VTBool, Data: b} }
func Num(f float64) Value { return Value{Tag: VTNum, Data: f} }
func Str(s string) Value  { return Value{Tag: VTStr, Data: s} }

// Arr boxes elems into a fresh array value. The slice is used as-is, not
// copied.
func Arr(elems []Value) Value { return Value{Tag: VTArray, Data: &Array{Elems: elems}} }

// Obj boxes entries into a fresh object value. The map is used as-is, not
// copied. A nil map behaves as an empty object.
func Obj(entries map[string]Value) Value {
	if entries == nil {
		entries = map[string]Value{}
	}
	return Value{Tag: VTObject, Data: &Object{Entries: entries}}
}

// FuncVal wraps a host callable. The name appears in error messages and the
// debug rendering only.
func FuncVal(name string, fn func(recv Value, args []Value) (Value, error)) Value {
	return Value{Tag: VTFunc, Data: &Func{Name: name, Fn: fn}}
}

// String renders a short debug representation. Drivers wanting full output
// use FormatValue.
func (v Value) String() string {
	switch v.Tag {
	case VTUndefined:
		return "undefined"
	case VTNull:
		return "null"
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTNum:
		return formatNumber(v.Data.(float64))
	case VTStr:
		return fmt.Sprintf("%q", v.Data.(string))
	case VTArray:
		return fmt.Sprintf("<array len=%d>", len(v.Data.(*Array).Elems))
	case VTObject:
		return "<object>"
	case VTFunc:
		f := v.Data.(*Func)
		if f.Name != "" {
			return "<function " + f.Name + ">"
		}
		return "<function>"
	default:
		return "<invalid>"
	}
}

func (v Value) isPrimitive() bool {
	switch v.Tag {
	case VTUndefined, VTNull, VTBool, VTNum, VTStr:
		return true
	default:
		return false
	}
}

// refOf returns the identity pointer of a non-primitive value, or nil.
func (v Value) refOf() any {
	switch v.Tag {
	case VTArray, VTObject, VTFunc:
		return v.Data
	default:
		return nil
	}
}

// validateValue checks admissibility recursively: tags match payload types,
// and arrays/objects form finite trees. seen holds the boxed pointers on the
// current descent path; revisiting one means the data is cyclic, which the
// value model forbids.
func validateValue(v Value, seen map[any]bool) error {
	switch v.Tag {
	case VTUndefined, VTNull:
		if v.Data != nil {
			return fmt.Errorf("%s value carries a payload", v.String())
		}
		return nil
	case VTBool:
		if _, ok := v.Data.(bool); !ok {
			return fmt.Errorf("boolean value with non-bool payload %T", v.Data)
		}
		return nil
	case VTNum:
		if _, ok := v.Data.(float64); !ok {
			return fmt.Errorf("number value with non-float64 payload %T", v.Data)
		}
		return nil
	case VTStr:
		if _, ok := v.Data.(string); !ok {
			return fmt.Errorf("string value with non-string payload %T", v.Data)
		}
		return nil
	case VTArray:
		a, ok := v.Data.(*Array)
		if !ok || a == nil {
			return fmt.Errorf("array value with payload %T", v.Data)
		}
		if seen[a] {
			return fmt.Errorf("cyclic array")
		}
		seen[a] = true
		for _, e := range a.Elems {
			if err := validateValue(e, seen); err != nil {
				return err
			}
		}
		delete(seen, a)
		return nil
	case VTObject:
		o, ok := v.Data.(*Object)
		if !ok || o == nil {
			return fmt.Errorf("object value with payload %T", v.Data)
		}
		if seen[o] {
			return fmt.Errorf("cyclic object")
		}
		seen[o] = true
		for k, e := range o.Entries {
			if err := validateValue(e, seen); err != nil {
				return fmt.Errorf("member %q: %w", k, err)
			}
		}
		delete(seen, o)
		return nil
	case VTFunc:
		f, ok := v.Data.(*Func)
		if !ok || f == nil || f.Fn == nil {
			return fmt.Errorf("function value with no callable")
		}
		return nil
	default:
		return fmt.Errorf("inadmissible value tag %d", int(v.Tag))
	}
}

// validateEnv checks the host environment before evaluation begins: it must
// be a plain mapping, every reachable value must be admissible, and the
// reserved name std must not be bound. No host code runs during validation.
func validateEnv(env map[string]Value) *EvalError {
	if _, ok := env[stdName]; ok {
		return &EvalError{
			Kind:    ErrEnvInvalid,
			Message: fmt.Sprintf("environment redefines reserved name %q", stdName),
		}
	}
	seen := map[any]bool{}
	for k, v := range env {
		if err := validateValue(v, seen); err != nil {
			return &EvalError{
				Kind:    ErrEnvInvalid,
				Message: fmt.Sprintf("environment binding %q: %s", k, err),
			}
		}
	}
	return nil
}
