// Package diag renders caret-annotated source snippets for parse and
// evaluation diagnostics.
//
// The core library exports only byte indices and spans; this package turns
// them into line/column coordinates and terminal-ready snippets:
//
//	parse error at 1:14: expected ")"
//
//	   1 | (1 + 2) * (3 4)
//	     |              ^
//
// Multi-byte source is handled by counting columns in runes. Out-of-range
// offsets are clamped so rendering never fails.
package diag

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the render styles. The zero value renders plain text.
type Styles struct {
	Header lipgloss.Style
	Gutter lipgloss.Style
	Caret  lipgloss.Style
}

// Plain returns styles that add no color.
func Plain() Styles { return Styles{} }

// Colored returns the default terminal styles: red headers and carets, dim
// gutters.
func Colored() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Gutter: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Caret:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
}

// Position maps a byte offset into 1-based (line, column). Columns count
// runes. Offsets past the end of src resolve to just past the last rune.
func Position(src string, offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for i, r := range src {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

// Snippet renders a header plus a caret-annotated excerpt for the half-open
// byte range [start, end). A zero-width range (start == end) renders a
// single caret; a wider range that ends on the start line underlines every
// column it covers. A range that ends on a later line renders a single caret.
func Snippet(src, header, msg string, start, end int, st Styles) string {
	line, col := Position(src, start)
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		line = len(lines)
	}
	lineText := lines[line-1]

	width := 1
	if end > start {
		endLine, endCol := Position(src, end)
		if endLine == line && endCol > col {
			width = endCol - col
		}
	}

	var b strings.Builder
	b.WriteString(st.Header.Render(fmt.Sprintf("%s at %d:%d: %s", header, line, col, msg)))
	b.WriteString("\n\n")
	if line > 1 {
		b.WriteString(st.Gutter.Render(fmt.Sprintf("%4d | ", line-1)))
		b.WriteString(lines[line-2])
		b.WriteByte('\n')
	}
	b.WriteString(st.Gutter.Render(fmt.Sprintf("%4d | ", line)))
	b.WriteString(lineText)
	b.WriteByte('\n')
	b.WriteString(st.Gutter.Render("     | "))
	b.WriteString(strings.Repeat(" ", col-1))
	b.WriteString(st.Caret.Render(strings.Repeat("^", width)))
	b.WriteByte('\n')
	if line < len(lines) {
		b.WriteString(st.Gutter.Render(fmt.Sprintf("%4d | ", line+1)))
		b.WriteString(lines[line])
		b.WriteByte('\n')
	}
	return b.String()
}
