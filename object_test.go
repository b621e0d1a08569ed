package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEq(t *testing.T) {
	heap := NewHeap(255, nil)
	symtab := NewSymbolTable(0)

	tests := []struct {
		Name     string
		A, B     *Object
		Expected bool
	}{
		{"same interned symbol", symtab.Intern(heap, "foo"), symtab.Intern(heap, "foo"), true},
		{"equal integers", heap.NewInteger(3), heap.NewInteger(3), true},
		{"different integers", heap.NewInteger(3), heap.NewInteger(4), false},
		{"two nils", nil, nil, true},
		{"nil vs integer", nil, heap.NewInteger(0), false},
		{"equal-text strings", symtab.NewString(heap, "x"), symtab.NewString(heap, "x"), true},
		{"different-kind equal text", symtab.Intern(heap, "x"), symtab.NewString(heap, "x"), false},
	}
	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, Eq(tc.A, tc.B))
		})
	}
}

func TestEqual(t *testing.T) {
	heap := NewHeap(255, nil)
	symtab := NewSymbolTable(0)

	list1 := heap.NewPair(heap.NewInteger(1), heap.NewPair(heap.NewInteger(2), nil))
	list2 := heap.NewPair(heap.NewInteger(1), heap.NewPair(heap.NewInteger(2), nil))
	list3 := heap.NewPair(heap.NewInteger(1), heap.NewPair(heap.NewInteger(3), nil))

	require.True(t, Equal(list1, list2))
	require.False(t, Equal(list1, list3))
	require.True(t, Equal(nil, nil))
	require.False(t, Equal(list1, nil))

	v1 := heap.NewVector(2)
	v1.Vector[0] = symtab.Intern(heap, "a")
	v2 := heap.NewVector(2)
	v2.Vector[0] = symtab.Intern(heap, "a")
	require.True(t, Equal(v1, v2))
}

func TestCarCdr(t *testing.T) {
	heap := NewHeap(255, nil)
	pair := heap.NewPair(heap.NewInteger(1), heap.NewInteger(2))

	assert.Equal(t, int64(1), Car(pair).Integer)
	assert.Equal(t, int64(2), Cdr(pair).Integer)
	assert.Nil(t, Car(nil))
	assert.Nil(t, Cdr(heap.NewInteger(5)))
}

func TestLength(t *testing.T) {
	heap := NewHeap(255, nil)
	list := heap.NewPair(heap.NewInteger(1), heap.NewPair(heap.NewInteger(2), heap.NewPair(heap.NewInteger(3), nil)))
	assert.Equal(t, 3, Length(list))
	assert.Equal(t, 0, Length(nil))
}
