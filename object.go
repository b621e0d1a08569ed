package lisp

import "fmt"

// Kind tags the variant a *Object currently holds.
type Kind int

const (
	KindInteger Kind = iota
	KindSymbol
	KindString
	KindPair
	KindVector
	KindPrimitive
	// KindEmptyList is the reader's end-of-list marker (spec.md §3's
	// EMPTY_LIST sentinel, distinct from NIL). It is never linked onto the
	// heap and never appears in a value returned from eval; it only ever
	// flows through the reader while a list is being accumulated.
	KindEmptyList
)

func (k Kind) String() string {
	switch k {
	case KindEmptyList:
		return "empty-list"
	case KindInteger:
		return "integer"
	case KindSymbol:
		return "symbol"
	case KindString:
		return "string"
	case KindPair:
		return "list"
	case KindVector:
		return "vector"
	case KindPrimitive:
		return "primitive"
	}
	return "unknown"
}

// PrimitiveFunc is the native implementation behind a primitive Value. It
// receives the already-evaluated argument list as a proper list (or nil).
type PrimitiveFunc func(in *Interpreter, args *Object) (*Object, error)

// Object is the single tagged-variant value representation used across the
// interpreter: integers, interned symbols, strings, pairs, vectors and
// primitives are all *Object, distinguished by Kind. Using one pointer type
// (rather than one Go type per Kind) keeps set-car!/set-cdr!/vector-set and
// the GC's intrusive all-objects list working off plain pointer identity,
// mirroring the `struct object` tagged union of the original C
// implementation (see DESIGN.md).
//
// NIL (the empty list and canonical false value) is represented by a plain
// Go nil *Object rather than an allocated sentinel, following the original
// C's `#define null(x) ((x) == NULL || (x) == NIL)` conflation of "no
// object" with "the empty list" — there is nothing a dedicated NIL object
// would carry that an untyped nil pointer doesn't already give for free.
type Object struct {
	Kind Kind

	// gc bookkeeping
	marked bool
	gcNext *Object

	// KindInteger
	Integer int64

	// KindSymbol / KindString
	Text string

	// KindPair
	Car, Cdr *Object

	// KindVector
	Vector []*Object

	// KindPrimitive
	Name      string
	Primitive PrimitiveFunc
}

// EmptyList is the reader's end-of-list marker. It is a single static
// instance, never routed through Heap.alloc, so it is never linked into the
// GC's all-objects list and never swept.
var EmptyList = &Object{Kind: KindEmptyList}

// IsNil reports whether v is the empty list / false value.
func IsNil(v *Object) bool {
	return v == nil
}

// IsAtom reports whether v is anything other than a (non-nil) pair.
func IsAtom(v *Object) bool {
	return IsNil(v) || v.Kind != KindPair
}

// Car returns the car of a pair, or nil for anything else (spec.md §4.1's
// "out-of-bounds access yields NIL, never undefined behavior" discipline
// extends to car/cdr on non-pairs).
func Car(v *Object) *Object {
	if IsNil(v) || v.Kind != KindPair {
		return nil
	}
	return v.Car
}

// Cdr returns the cdr of a pair, or nil for anything else.
func Cdr(v *Object) *Object {
	if IsNil(v) || v.Kind != KindPair {
		return nil
	}
	return v.Cdr
}

func Cadr(v *Object) *Object   { return Car(Cdr(v)) }
func Cddr(v *Object) *Object   { return Cdr(Cdr(v)) }
func Caddr(v *Object) *Object  { return Car(Cddr(v)) }
func Cdddr(v *Object) *Object  { return Cdr(Cddr(v)) }
func Cadddr(v *Object) *Object { return Car(Cdddr(v)) }

// IsTagged reports whether v is a pair whose car is the symbol tag.
func IsTagged(v *Object, tag *Object) bool {
	if IsNil(v) || v.Kind != KindPair {
		return false
	}
	return Eq(v.Car, tag)
}

// Length returns the length of a proper list, 0 for anything else.
func Length(v *Object) int {
	n := 0
	for !IsNil(v) && v.Kind == KindPair {
		n++
		v = v.Cdr
	}
	return n
}

// Eq implements the `eq?` identity rule: pointer identity for compound
// values, value equality for integers, and text equality for interned
// symbols (which are also pointer-identical post-interning, but comparing
// text is harmless and mirrors the original `is_equal`).
func Eq(a, b *Object) bool {
	if a == b {
		return true
	}
	if IsNil(a) || IsNil(b) {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInteger:
		return a.Integer == b.Integer
	case KindSymbol, KindString:
		return a.Text == b.Text
	default:
		return false
	}
}

// Equal implements `equal?`: structural equality over lists and vectors,
// Eq elsewhere.
func Equal(a, b *Object) bool {
	if Eq(a, b) {
		return true
	}
	if IsNil(a) || IsNil(b) {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindPair:
		for !IsNil(a) && !IsNil(b) {
			if a.Kind != KindPair || b.Kind != KindPair {
				return Equal(a, b)
			}
			if !Equal(a.Car, b.Car) {
				return false
			}
			a, b = a.Cdr, b.Cdr
		}
		return IsNil(a) && IsNil(b)
	case KindVector:
		if len(a.Vector) != len(b.Vector) {
			return false
		}
		for i := range a.Vector {
			if !Equal(a.Vector[i], b.Vector[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func (o *Object) GoString() string {
	if o == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Object{Kind: %s}", o.Kind)
}
