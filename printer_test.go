package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintAtoms(t *testing.T) {
	heap := NewHeap(255, nil)
	symtab := NewSymbolTable(16)

	assert.Equal(t, "'()", PrintString(nil))
	assert.Equal(t, "42", PrintString(heap.NewInteger(42)))
	assert.Equal(t, "-5", PrintString(heap.NewInteger(-5)))
	assert.Equal(t, "foo", PrintString(symtab.Intern(heap, "foo")))
	assert.Equal(t, `"hi"`, PrintString(symtab.NewString(heap, "hi")))
}

func TestPrintProperList(t *testing.T) {
	heap := NewHeap(255, nil)
	list := heap.NewPair(heap.NewInteger(1), heap.NewPair(heap.NewInteger(2), heap.NewPair(heap.NewInteger(3), nil)))
	assert.Equal(t, "(1 2 3)", PrintString(list))
}

func TestPrintImproperList(t *testing.T) {
	heap := NewHeap(255, nil)
	pair := heap.NewPair(heap.NewInteger(1), heap.NewInteger(2))
	assert.Equal(t, "(1 . 2)", PrintString(pair))
}

func TestPrintVector(t *testing.T) {
	heap := NewHeap(255, nil)
	v := heap.NewVector(3)
	assert.Equal(t, "<vector 3>", PrintString(v))
}

func TestPrintClosure(t *testing.T) {
	in := NewInterpreter(nil)
	closure := in.makeClosure(nil, nil, in.Global)
	assert.Equal(t, "<closure>", PrintString(closure))
}

func TestPrintPrimitive(t *testing.T) {
	heap := NewHeap(255, nil)
	prim := heap.NewPrimitive("car", primCar)
	assert.Equal(t, "<function>", PrintString(prim))
}

func TestPrintRoundTripThroughReader(t *testing.T) {
	src := "(1 2 (3 . 4) foo \"bar\")"
	assert.Equal(t, src, PrintString(read(t, src)))
}
