// format.go — value rendering for drivers (REPL, run).
package exp

import (
	"sort"
	"strconv"
	"strings"
)

// FormatValue renders a value as expression-like source text: primitives
// bare, strings quoted inside composites, arrays in brackets, objects in
// braces with keys sorted (key order carries no semantics). Functions render
// as an opaque tag.
func FormatValue(v Value) string {
	var b strings.Builder
	writeValue(&b, v, true)
	return b.String()
}

func writeValue(b *strings.Builder, v Value, topLevel bool) {
	switch v.Tag {
	case VTUndefined:
		b.WriteString("undefined")
	case VTNull:
		b.WriteString("null")
	case VTBool:
		b.WriteString(strconv.FormatBool(v.Data.(bool)))
	case VTNum:
		b.WriteString(formatNumber(v.Data.(float64)))
	case VTStr:
		if topLevel {
			b.WriteString(v.Data.(string))
		} else {
			b.WriteString(strconv.Quote(v.Data.(string)))
		}
	case VTArray:
		b.WriteByte('[')
		for i, e := range v.Data.(*Array).Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, e, false)
		}
		b.WriteByte(']')
	case VTObject:
		entries := v.Data.(*Object).Entries
		keys := make([]string, 0, len(entries))
		for k := range entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			writeValue(b, entries[k], false)
		}
		b.WriteByte('}')
	case VTFunc:
		b.WriteString(v.String())
	default:
		b.WriteString("<invalid>")
	}
}
