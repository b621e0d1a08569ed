package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimConsCarCdr(t *testing.T) {
	assert.Equal(t, int64(1), evalAll(t, "(car (cons 1 2))").Integer)
	assert.Equal(t, int64(2), evalAll(t, "(cdr (cons 1 2))").Integer)
}

func TestPrimPredicates(t *testing.T) {
	assert.Equal(t, "#t", PrintString(evalAll(t, "(null? '())")))
	assert.Equal(t, "#f", PrintString(evalAll(t, "(null? 1)")))
	assert.Equal(t, "#t", PrintString(evalAll(t, "(pair? (cons 1 2))")))
	assert.Equal(t, "#f", PrintString(evalAll(t, "(pair? 1)")))
	assert.Equal(t, "#t", PrintString(evalAll(t, "(list? (list 1 2 3))")))
	assert.Equal(t, "#f", PrintString(evalAll(t, "(list? (cons 1 2))")))
	assert.Equal(t, "#t", PrintString(evalAll(t, "(atom? 1)")))
	assert.Equal(t, "#f", PrintString(evalAll(t, "(atom? (cons 1 2))")))
}

func TestPrimEqVsEqual(t *testing.T) {
	assert.Equal(t, "#t", PrintString(evalAll(t, "(eq? 'a 'a)")))
	assert.Equal(t, "#f", PrintString(evalAll(t, "(eq? (list 1 2) (list 1 2))")))
	assert.Equal(t, "#t", PrintString(evalAll(t, "(equal? (list 1 2) (list 1 2))")))
}

func TestPrimArithmetic(t *testing.T) {
	assert.Equal(t, int64(10), evalAll(t, "(+ 1 2 3 4)").Integer)
	assert.Equal(t, int64(-8), evalAll(t, "(- 2 10)").Integer)
	assert.Equal(t, int64(100), evalAll(t, "(* 10 10)").Integer)
	assert.Equal(t, int64(4), evalAll(t, "(/ 20 5)").Integer)
}

func TestPrimComparison(t *testing.T) {
	assert.Equal(t, "#t", PrintString(evalAll(t, "(< 1 2)")))
	assert.Equal(t, "#f", PrintString(evalAll(t, "(< 2 1)")))
	assert.Equal(t, "#t", PrintString(evalAll(t, "(> 2 1)")))
	assert.Equal(t, "#t", PrintString(evalAll(t, "(= 5 5)")))
}

func TestPrimListLengthAppendReverse(t *testing.T) {
	assert.Equal(t, int64(3), evalAll(t, "(length (list 1 2 3))").Integer)
	assert.Equal(t, "(1 2 3 4)", PrintString(evalAll(t, "(append (list 1 2) (list 3 4))")))
	assert.Equal(t, "(3 2 1)", PrintString(evalAll(t, "(reverse (list 1 2 3))")))
}

func TestPrimNot(t *testing.T) {
	assert.Equal(t, "#t", PrintString(evalAll(t, "(not #f)")))
	assert.Equal(t, "#f", PrintString(evalAll(t, "(not 1)")))
}

func TestPrimType(t *testing.T) {
	assert.Equal(t, "integer", PrintString(evalAll(t, "(type 1)")))
	assert.Equal(t, "list", PrintString(evalAll(t, "(type (cons 1 2))")))
}

func TestPrimVector(t *testing.T) {
	src := `
		(define v (vector 3))
		(vector-set v 0 10)
		(vector-set v 1 20)
		(vector-set v 2 30)
		(+ (vector-get v 0) (vector-get v 1) (vector-get v 2))
	`
	assert.Equal(t, int64(60), evalAll(t, src).Integer)
}

func TestPrimGCIntrospection(t *testing.T) {
	before := evalAll(t, "(current-allocated)")
	assert.NotNil(t, before)
	assert.GreaterOrEqual(t, evalAll(t, "(total-allocated)").Integer, int64(0))
}

func TestPrimDivisionByZeroIsNonFatalInPermissiveMode(t *testing.T) {
	val := evalAll(t, "(/ 1 0)")
	assert.Nil(t, val)
}

func TestPrimTypeErrorFatalInStrictMode(t *testing.T) {
	in := NewInterpreter(nil)
	in.SetStrict(true)

	_, err := primCar(in, in.Heap.NewPair(in.Heap.NewInteger(1), nil))
	assert.Error(t, err)
	var terr TypeError
	assert.ErrorAs(t, err, &terr)
}
