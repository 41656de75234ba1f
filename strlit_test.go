package exp

import "testing"

func wantStringLit(t *testing.T, src, decoded string) {
	t.Helper()
	e := mustParse(t, src)
	lit, ok := e.(*StringLit)
	if !ok {
		t.Fatalf("Parse(%q): want *StringLit, got %T", src, e)
	}
	if lit.Value != decoded {
		t.Fatalf("Parse(%q): decoded %q, want %q", src, lit.Value, decoded)
	}
}

func TestStringQuoting(t *testing.T) {
	wantStringLit(t, `"hello"`, "hello")
	wantStringLit(t, `'hello'`, "hello")
	wantStringLit(t, `'say "hi"'`, `say "hi"`)
	wantStringLit(t, `"it's"`, "it's")
	wantStringLit(t, `''`, "")
}

func TestSimpleEscapes(t *testing.T) {
	wantStringLit(t, `'a\nb'`, "a\nb")
	wantStringLit(t, `'a\rb'`, "a\rb")
	wantStringLit(t, `'a\tb'`, "a\tb")
	wantStringLit(t, `'a\bb'`, "a\bb")
	wantStringLit(t, `'a\fb'`, "a\fb")
	wantStringLit(t, `'a\vb'`, "a\vb")
	wantStringLit(t, `'a\\b'`, `a\b`)
	wantStringLit(t, `'a\'b'`, "a'b")
	wantStringLit(t, `"a\"b"`, `a"b`)
	wantStringLit(t, `'a\0b'`, "a\x00b")
}

func TestIdentityEscapes(t *testing.T) {
	wantStringLit(t, `'\q'`, "q")
	wantStringLit(t, `'\/'`, "/")
	wantStringLit(t, "'\\é'", "é")
}

func TestHexEscapes(t *testing.T) {
	wantStringLit(t, `'\x41'`, "A")
	wantStringLit(t, `'\x7A'`, "z")
	wantStringLit(t, `'\x00'`, "\x00")
	wantStringLit(t, `'\xff'`, "ÿ")
}

func TestUnicodeEscapes(t *testing.T) {
	wantStringLit(t, `'\u0041'`, "A")
	wantStringLit(t, `'\u00e9'`, "é")
	wantStringLit(t, `'\u{41}'`, "A")
	wantStringLit(t, `'\u{2028}'`, "\u2028")
	wantStringLit(t, `'\u{1F600}'`, "\U0001F600")
	wantStringLit(t, `'\u{10000}'`, "\U00010000")
	wantStringLit(t, `'\u{10FFFF}'`, "\U0010FFFF")
}

func TestSurrogatePairEscapes(t *testing.T) {
	// Adjacent high/low surrogate escapes pair into one code point.
	wantStringLit(t, `'\uD83D\uDE00'`, "\U0001F600")
	wantStringLit(t, `'\uD834\uDD1E'`, "\U0001D11E")
}

func TestLineContinuations(t *testing.T) {
	wantStringLit(t, "'a\\\nb'", "ab")
	wantStringLit(t, "'a\\\rb'", "ab")
	wantStringLit(t, "'a\\\r\nb'", "ab")
	wantStringLit(t, "'a\\\u2028b'", "ab")
	wantStringLit(t, "'a\\\u2029b'", "ab")
}

func TestStringLiteralErrors(t *testing.T) {
	// Offending escape's opening backslash.
	wantParseErr(t, `'\1'`, 1)
	wantParseErr(t, `'\9'`, 1)
	wantParseErr(t, `'\07'`, 1)
	wantParseErr(t, `'ab\3'`, 3)

	// First invalid hex digit.
	wantParseErr(t, `'\xZ1'`, 3)
	wantParseErr(t, `'\x4'`, 4)
	wantParseErr(t, `'\u12'`, 5)
	wantParseErr(t, `'\uX'`, 3)
	wantParseErr(t, `'\u{}'`, 4)
	wantParseErr(t, `'\u{110000}'`, 1)
	wantParseErr(t, `'\u{1234567}'`, 1)
	wantParseErr(t, `'\u{41'`, 6)

	// Bare line terminators and termination.
	wantParseErr(t, "'a\nb'", 2)
	wantParseErr(t, "'a\rb'", 2)
	wantParseErr(t, "'a\u2028b'", 2)
	wantParseErr(t, "'abc", 4)
	wantParseErr(t, `'abc\`, 4)
}
