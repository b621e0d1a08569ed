package lisp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalAll reads and evaluates every form in src against a fresh
// interpreter's global environment, returning the value of the last form.
func evalAll(t *testing.T, src string) *Object {
	t.Helper()
	in := NewInterpreter(nil)
	reader := NewReader(in.Heap, in.Symtab, strings.NewReader(src), "<test>")
	var result *Object
	for {
		exp, err := reader.Read()
		require.NoError(t, err)
		if exp == nil {
			break
		}
		result, err = in.Eval(exp, in.Global)
		require.NoError(t, err)
	}
	return result
}

func TestEvalArithmetic(t *testing.T) {
	assert.Equal(t, int64(6), evalAll(t, "(+ 1 2 3)").Integer)
	assert.Equal(t, int64(1), evalAll(t, "(- 4 3)").Integer)
	assert.Equal(t, int64(24), evalAll(t, "(* 2 3 4)").Integer)
}

func TestEvalFactorial(t *testing.T) {
	src := `
		(define (fact n)
		  (if (= n 0) 1 (* n (fact (- n 1)))))
		(fact 10)
	`
	assert.Equal(t, int64(3628800), evalAll(t, src).Integer)
}

func TestEvalClosuresCaptureLexicalScope(t *testing.T) {
	src := `
		(define (make-adder n)
		  (lambda (x) (+ x n)))
		(define add5 (make-adder 5))
		(add5 10)
	`
	assert.Equal(t, int64(15), evalAll(t, src).Integer)
}

func TestEvalNamedLetSumsZeroToOneHundred(t *testing.T) {
	src := `
		(let loop ((i 0) (acc 0))
		  (if (> i 100) acc (loop (+ i 1) (+ acc i))))
	`
	assert.Equal(t, int64(5050), evalAll(t, src).Integer)
}

func TestEvalNamedLetNameDoesNotLeakToOuterEnv(t *testing.T) {
	in := NewInterpreter(nil)
	reader := NewReader(in.Heap, in.Symtab, strings.NewReader(`(let loop ((i 0)) i)`), "<test>")
	exp, err := reader.Read()
	require.NoError(t, err)
	_, err = in.Eval(exp, in.Global)
	require.NoError(t, err)

	loop := in.Symtab.Intern(in.Heap, "loop")
	assert.Nil(t, Lookup(loop, in.Global), "the loop name must be scoped to the let, not leaked into the global frame")
}

func TestEvalVectorGetSet(t *testing.T) {
	src := `
		(define v (vector 3))
		(vector-set v 1 99)
		(vector-get v 1)
	`
	assert.Equal(t, int64(99), evalAll(t, src).Integer)
}

func TestEvalSetCarProducesImproperListPrinting(t *testing.T) {
	src := `
		(define p (cons 1 2))
		(set-car! p 9)
		p
	`
	v := evalAll(t, src)
	assert.Equal(t, "(9 . 2)", PrintString(v))
}

func TestEvalOrShortCircuitsVariadic(t *testing.T) {
	assert.Equal(t, int64(1), evalAll(t, "(or #f 1 2)").Integer)
	assert.Equal(t, "#f", PrintString(evalAll(t, "(or #f #f)")))
}

func TestEvalCondElseFallthrough(t *testing.T) {
	src := `(cond (#f 1) (#f 2) (else 3))`
	assert.Equal(t, int64(3), evalAll(t, src).Integer)
}

func TestEvalOrdinaryLetShadowsOuterBinding(t *testing.T) {
	src := `
		(define x 1)
		(let ((x 2)) x)
	`
	assert.Equal(t, int64(2), evalAll(t, src).Integer)
}

func TestEvalTailRecursionConstantStackDepth(t *testing.T) {
	src := `
		(define (count n)
		  (if (= n 0) 'done (count (- n 1))))
		(count 200000)
	`
	assert.Equal(t, "done", evalAll(t, src).Text, "a tail-recursive count must not overflow the Go call stack")
}

func TestEvalUnboundSymbolPermissiveModeSubstitutesNil(t *testing.T) {
	in := NewInterpreter(nil)
	reader := NewReader(in.Heap, in.Symtab, strings.NewReader("undefined-name"), "<test>")
	exp, err := reader.Read()
	require.NoError(t, err)
	val, err := in.Eval(exp, in.Global)
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestEvalInvalidApplicationPermissiveModeSubstitutesNil(t *testing.T) {
	val := evalAll(t, "(1 2 3)")
	assert.Nil(t, val)
}
