package diag

import (
	"strings"
	"testing"
)

func TestPosition(t *testing.T) {
	src := "ab\ncdé\nf"
	cases := []struct {
		offset, line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},  // the newline itself
		{3, 2, 1},
		{5, 2, 3},  // é starts at byte 5
		{8, 3, 1},  // past é (2 bytes) and newline
		{-1, 1, 1}, // clamped
		{99, 3, 2}, // clamped to just past the end
	}
	for _, c := range cases {
		line, col := Position(src, c.offset)
		if line != c.line || col != c.col {
			t.Fatalf("Position(%d) = %d:%d, want %d:%d", c.offset, line, col, c.line, c.col)
		}
	}
}

func TestSnippetCaret(t *testing.T) {
	src := "1 + * 2"
	out := Snippet(src, "parse error", "expected expression", 4, 4, Plain())
	if !strings.Contains(out, "parse error at 1:5: expected expression") {
		t.Fatalf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "   1 | 1 + * 2") {
		t.Fatalf("missing source line:\n%s", out)
	}
	if !strings.Contains(out, "     |     ^") {
		t.Fatalf("caret misplaced:\n%s", out)
	}
}

func TestSnippetUnderline(t *testing.T) {
	src := "a + obj.__proto__"
	out := Snippet(src, "eval error", "forbidden member", 4, len(src), Plain())
	if !strings.Contains(out, strings.Repeat("^", len("obj.__proto__"))) {
		t.Fatalf("underline not widened:\n%s", out)
	}
}

func TestSnippetContextLines(t *testing.T) {
	src := "first\nsec ond\nthird"
	out := Snippet(src, "err", "msg", 10, 10, Plain())
	for _, want := range []string{"   1 | first", "   2 | sec ond", "   3 | third"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestSnippetClampsOutOfRange(t *testing.T) {
	out := Snippet("x", "err", "msg", 40, 50, Plain())
	if out == "" || !strings.Contains(out, "err") {
		t.Fatalf("clamped rendering failed:\n%s", out)
	}
}
