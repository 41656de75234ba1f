package exp

import (
	"strings"
	"testing"
)

func TestConstructorsAreAdmissible(t *testing.T) {
	values := []Value{
		Undefined, Null, Bool(true), Num(1.5), Str("x"),
		Arr([]Value{Num(1), Str("two")}),
		Obj(map[string]Value{"k": Arr(nil)}),
		FuncVal("f", func(Value, []Value) (Value, error) { return Null, nil }),
	}
	for _, v := range values {
		if err := validateValue(v, map[any]bool{}); err != nil {
			t.Fatalf("constructor produced inadmissible %s: %v", v.String(), err)
		}
	}
}

func TestValidateRejectsBadPayloads(t *testing.T) {
	bad := []Value{
		{Tag: VTBool, Data: 1},
		{Tag: VTNum, Data: int64(1)},
		{Tag: VTStr, Data: []byte("x")},
		{Tag: VTArray, Data: []Value{}},
		{Tag: VTObject, Data: map[string]Value{}},
		{Tag: VTFunc, Data: &Func{Name: "f"}}, // nil Fn
		{Tag: VTNull, Data: "payload"},
		{Tag: ValueTag(42)},
	}
	for _, v := range bad {
		if err := validateValue(v, map[any]bool{}); err == nil {
			t.Fatalf("validation accepted %#v", v)
		}
	}
}

func TestValidateNestedFailure(t *testing.T) {
	v := Obj(map[string]Value{
		"ok":  Num(1),
		"bad": Arr([]Value{{Tag: VTNum, Data: "nope"}}),
	})
	err := validateValue(v, map[any]bool{})
	if err == nil {
		t.Fatal("nested inadmissible value accepted")
	}
}

func TestValidateRejectsCycles(t *testing.T) {
	o := &Object{Entries: map[string]Value{}}
	o.Entries["self"] = Value{Tag: VTObject, Data: o}
	if err := validateValue(Value{Tag: VTObject, Data: o}, map[any]bool{}); err == nil {
		t.Fatal("cyclic object accepted")
	}

	a := &Array{}
	a.Elems = append(a.Elems, Value{Tag: VTArray, Data: a})
	if err := validateValue(Value{Tag: VTArray, Data: a}, map[any]bool{}); err == nil {
		t.Fatal("cyclic array accepted")
	}
}

func TestValidateAllowsSharing(t *testing.T) {
	shared := Arr([]Value{Num(1)})
	v := Obj(map[string]Value{"a": shared, "b": shared})
	if err := validateValue(v, map[any]bool{}); err != nil {
		t.Fatalf("diamond sharing rejected: %v", err)
	}
}

func TestValidateEnvReservedName(t *testing.T) {
	err := validateEnv(map[string]Value{"std": Obj(nil)})
	if err == nil || err.Kind != ErrEnvInvalid {
		t.Fatalf("want EnvInvalid, got %v", err)
	}
	if !strings.Contains(err.Message, `"std"`) {
		t.Fatalf("message %q does not quote the reserved name", err.Message)
	}
}

func TestValueDebugStrings(t *testing.T) {
	cases := map[string]Value{
		"undefined":      Undefined,
		"null":           Null,
		"true":           Bool(true),
		"1.5":            Num(1.5),
		`"hi"`:           Str("hi"),
		"<array len=2>":  Arr([]Value{Null, Null}),
		"<object>":       Obj(nil),
		"<function f>":   FuncVal("f", func(Value, []Value) (Value, error) { return Null, nil }),
	}
	for want, v := range cases {
		if got := v.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
	}
}
