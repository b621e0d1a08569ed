package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

// PrintString renders a value using the textual syntax of spec.md §6:
// integers in decimal, symbols as their text, strings double-quoted, the
// empty list as `'()`, proper lists as `(a b c)`, improper lists (only
// producible via set-cdr!/cons, never by the reader) as `(a b . c)`,
// closures as `<closure>`, primitives as `<function>`, and vectors as
// `<vector N>`.
func PrintString(v *Object) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v *Object) {
	if IsNil(v) {
		b.WriteString("'()")
		return
	}
	switch v.Kind {
	case KindInteger:
		b.WriteString(strconv.FormatInt(v.Integer, 10))
	case KindSymbol:
		b.WriteString(v.Text)
	case KindString:
		b.WriteString(strconv.Quote(v.Text))
	case KindPrimitive:
		b.WriteString("<function>")
	case KindVector:
		fmt.Fprintf(b, "<vector %d>", len(v.Vector))
	case KindPair:
		writePair(b, v)
	default:
		b.WriteString("<unknown>")
	}
}

// writePair handles both proper and improper lists, and recognizes the
// (procedure params body env) closure shape so it prints as <closure>
// rather than spelling out the captured environment.
func writePair(b *strings.Builder, v *Object) {
	if Car(v) != nil && Car(v).Kind == KindSymbol && Car(v).Text == "procedure" {
		b.WriteString("<closure>")
		return
	}
	b.WriteByte('(')
	first := true
	for {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		writeValue(b, v.Car)
		cdr := v.Cdr
		if IsNil(cdr) {
			break
		}
		if cdr.Kind != KindPair {
			b.WriteString(" . ")
			writeValue(b, cdr)
			break
		}
		v = cdr
	}
	b.WriteByte(')')
}
