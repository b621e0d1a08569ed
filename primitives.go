package lisp

import (
	"bufio"
	"fmt"
	"os"
	"syscall"
)

// registerPrimitives binds every required primitive from spec.md §4.6, plus
// SPEC_FULL.md §4.6's supplemental set, into the global environment as
// ordinary KindPrimitive values — grounded directly on `init_env`'s
// add_prim calls in original_source/scheme/src/scheme.c.
func registerPrimitives(in *Interpreter) {
	add := func(name string, fn PrimitiveFunc) {
		Define(in.Heap, in.Symtab.Intern(in.Heap, name), in.Heap.NewPrimitive(name, fn), in.Global)
	}

	add("cons", primCons)
	add("car", primCar)
	add("cdr", primCdr)
	add("set-car!", primSetCar)
	add("set-cdr!", primSetCdr)
	add("list", primList)
	add("list?", primListP)
	add("null?", primNullP)
	add("pair?", primPairP)
	add("atom?", primAtomP)
	add("eq?", primEqP)
	add("equal?", primEqualP)

	add("+", primAdd)
	add("-", primSub)
	add("*", primMul)
	add("/", primDiv)
	add("=", primNumEq)
	add("<", primLt)
	add(">", primGt)

	add("type", primType)
	add("vector", primVector)
	add("vector-get", primVectorGet)
	add("vector-set", primVectorSet)

	add("print", primPrint)
	add("read", primRead)
	add("load", primLoad)

	add("current-allocated", primCurrentAllocated)
	add("total-allocated", primTotalAllocated)
	add("gc-pass", primGCPass)

	add("get-global-environment", primGetGlobalEnv)
	add("set-global-environment", primSetGlobalEnv)

	// Supplemental primitives (SPEC_FULL.md §4.6).
	add("not", primNot)
	add("length", primLength)
	add("append", primAppend)
	add("reverse", primReverse)
	add("exec", primExec)
	add("exit", primExit)
}

func (in *Interpreter) bool(v bool) *Object {
	if v {
		return in.kw.True
	}
	return in.kw.False
}

func typeError(fn string, expected Kind, got *Object) TypeError {
	return TypeError{Func: fn, Expected: expected, Got: got}
}

func primCons(in *Interpreter, args *Object) (*Object, error) {
	return in.Heap.NewPair(Car(args), Cadr(args)), nil
}

func primCar(in *Interpreter, args *Object) (*Object, error) {
	a := Car(args)
	if IsNil(a) || a.Kind != KindPair {
		if in.strict {
			return nil, typeError("car", KindPair, a)
		}
		return in.HandleError(typeError("car", KindPair, a)), nil
	}
	return a.Car, nil
}

func primCdr(in *Interpreter, args *Object) (*Object, error) {
	a := Car(args)
	if IsNil(a) || a.Kind != KindPair {
		if in.strict {
			return nil, typeError("cdr", KindPair, a)
		}
		return in.HandleError(typeError("cdr", KindPair, a)), nil
	}
	return a.Cdr, nil
}

func primSetCar(in *Interpreter, args *Object) (*Object, error) {
	a := Car(args)
	if IsNil(a) || a.Kind != KindPair {
		if in.strict {
			return nil, typeError("set-car!", KindPair, a)
		}
		return in.HandleError(typeError("set-car!", KindPair, a)), nil
	}
	a.Car = Cadr(args)
	return nil, nil
}

func primSetCdr(in *Interpreter, args *Object) (*Object, error) {
	a := Car(args)
	if IsNil(a) || a.Kind != KindPair {
		if in.strict {
			return nil, typeError("set-cdr!", KindPair, a)
		}
		return in.HandleError(typeError("set-cdr!", KindPair, a)), nil
	}
	a.Cdr = Cadr(args)
	return nil, nil
}

func primList(in *Interpreter, args *Object) (*Object, error) { return args, nil }

func primNullP(in *Interpreter, args *Object) (*Object, error) {
	return in.bool(IsNil(Car(args))), nil
}

func primPairP(in *Interpreter, args *Object) (*Object, error) {
	a := Car(args)
	return in.bool(!IsNil(a) && a.Kind == KindPair), nil
}

func primListP(in *Interpreter, args *Object) (*Object, error) {
	a := Car(args)
	if IsNil(a) {
		return in.kw.True, nil
	}
	if a.Kind != KindPair {
		return in.kw.False, nil
	}
	for !IsNil(a) {
		if a.Kind != KindPair {
			return in.kw.False, nil
		}
		a = a.Cdr
	}
	return in.kw.True, nil
}

func primAtomP(in *Interpreter, args *Object) (*Object, error) {
	return in.bool(IsAtom(Car(args))), nil
}

func primEqP(in *Interpreter, args *Object) (*Object, error) {
	return in.bool(Eq(Car(args), Cadr(args))), nil
}

func primEqualP(in *Interpreter, args *Object) (*Object, error) {
	return in.bool(Equal(Car(args), Cadr(args))), nil
}

// intArg type-checks v as an integer. ok is false when v is not an integer;
// in that case the caller should return (result, err) immediately — result
// is nil in permissive mode (the type error was logged and substituted)
// and err is non-nil in strict mode (the caller should propagate it as a
// fatal error).
func intArg(in *Interpreter, fn string, v *Object) (n int64, ok bool, result *Object, err error) {
	if !IsNil(v) && v.Kind == KindInteger {
		return v.Integer, true, nil, nil
	}
	terr := typeError(fn, KindInteger, v)
	if in.strict {
		return 0, false, nil, terr
	}
	return 0, false, in.HandleError(terr), nil
}

func primAdd(in *Interpreter, args *Object) (*Object, error) {
	total, ok, result, err := intArg(in, "+", Car(args))
	if err != nil || !ok {
		return result, err
	}
	for rest := Cdr(args); !IsNil(rest); rest = Cdr(rest) {
		v, ok, result, err := intArg(in, "+", Car(rest))
		if err != nil || !ok {
			return result, err
		}
		total += v
	}
	return in.Heap.NewInteger(total), nil
}

func primSub(in *Interpreter, args *Object) (*Object, error) {
	total, ok, result, err := intArg(in, "-", Car(args))
	if err != nil || !ok {
		return result, err
	}
	for rest := Cdr(args); !IsNil(rest); rest = Cdr(rest) {
		v, ok, result, err := intArg(in, "-", Car(rest))
		if err != nil || !ok {
			return result, err
		}
		total -= v
	}
	return in.Heap.NewInteger(total), nil
}

func primMul(in *Interpreter, args *Object) (*Object, error) {
	total, ok, result, err := intArg(in, "*", Car(args))
	if err != nil || !ok {
		return result, err
	}
	for rest := Cdr(args); !IsNil(rest); rest = Cdr(rest) {
		v, ok, result, err := intArg(in, "*", Car(rest))
		if err != nil || !ok {
			return result, err
		}
		total *= v
	}
	return in.Heap.NewInteger(total), nil
}

func primDiv(in *Interpreter, args *Object) (*Object, error) {
	total, ok, result, err := intArg(in, "/", Car(args))
	if err != nil || !ok {
		return result, err
	}
	for rest := Cdr(args); !IsNil(rest); rest = Cdr(rest) {
		v, ok, result, err := intArg(in, "/", Car(rest))
		if err != nil || !ok {
			return result, err
		}
		if v == 0 {
			return in.HandleError(fmt.Errorf("division by zero")), nil
		}
		total /= v
	}
	return in.Heap.NewInteger(total), nil
}

func primNumEq(in *Interpreter, args *Object) (*Object, error) {
	a, b := Car(args), Cadr(args)
	if IsNil(a) || IsNil(b) || a.Kind != KindInteger || b.Kind != KindInteger {
		return in.kw.False, nil
	}
	return in.bool(a.Integer == b.Integer), nil
}

func primLt(in *Interpreter, args *Object) (*Object, error) {
	a, ok, result, err := intArg(in, "<", Car(args))
	if err != nil || !ok {
		return result, err
	}
	b, ok, result, err := intArg(in, "<", Cadr(args))
	if err != nil || !ok {
		return result, err
	}
	return in.bool(a < b), nil
}

func primGt(in *Interpreter, args *Object) (*Object, error) {
	a, ok, result, err := intArg(in, ">", Car(args))
	if err != nil || !ok {
		return result, err
	}
	b, ok, result, err := intArg(in, ">", Cadr(args))
	if err != nil || !ok {
		return result, err
	}
	return in.bool(a > b), nil
}

func primType(in *Interpreter, args *Object) (*Object, error) {
	a := Car(args)
	if IsNil(a) {
		return in.Symtab.Intern(in.Heap, "list"), nil
	}
	return in.Symtab.Intern(in.Heap, a.Kind.String()), nil
}

func primVector(in *Interpreter, args *Object) (*Object, error) {
	n, ok, result, err := intArg(in, "vector", Car(args))
	if err != nil || !ok {
		return result, err
	}
	return in.Heap.NewVector(int(n)), nil
}

func primVectorGet(in *Interpreter, args *Object) (*Object, error) {
	v := Car(args)
	if IsNil(v) || v.Kind != KindVector {
		return in.HandleError(typeError("vector-get", KindVector, v)), nil
	}
	idx, ok, result, err := intArg(in, "vector-get", Cadr(args))
	if err != nil || !ok {
		return result, err
	}
	if idx < 0 || int(idx) >= len(v.Vector) {
		return nil, nil
	}
	return v.Vector[idx], nil
}

func primVectorSet(in *Interpreter, args *Object) (*Object, error) {
	v := Car(args)
	if IsNil(v) || v.Kind != KindVector {
		return in.HandleError(typeError("vector-set", KindVector, v)), nil
	}
	idx, ok, result, err := intArg(in, "vector-set", Cadr(args))
	if err != nil || !ok {
		return result, err
	}
	val := Caddr(args)
	if IsNil(val) {
		return nil, nil
	}
	if idx < 0 || int(idx) >= len(v.Vector) {
		return nil, nil
	}
	v.Vector[idx] = val
	return in.kw.Ok, nil
}

func primPrint(in *Interpreter, args *Object) (*Object, error) {
	fmt.Println(PrintString(Car(args)))
	return nil, nil
}

func primRead(in *Interpreter, args *Object) (*Object, error) {
	reader := NewReader(in.Heap, in.Symtab, bufio.NewReader(os.Stdin), "<stdin>")
	return reader.Read()
}

func primLoad(in *Interpreter, args *Object) (*Object, error) {
	a := Car(args)
	if IsNil(a) || (a.Kind != KindString && a.Kind != KindSymbol) {
		return in.HandleError(typeError("load", KindString, a)), nil
	}
	return in.LoadFile(a.Text)
}

func primCurrentAllocated(in *Interpreter, args *Object) (*Object, error) {
	return in.Heap.NewInteger(in.Heap.CurrentAllocated()), nil
}

func primTotalAllocated(in *Interpreter, args *Object) (*Object, error) {
	return in.Heap.NewInteger(in.Heap.TotalAllocated()), nil
}

func primGCPass(in *Interpreter, args *Object) (*Object, error) {
	freed := in.Heap.GCPass(in.Symtab)
	return in.Heap.NewInteger(int64(freed)), nil
}

func primGetGlobalEnv(in *Interpreter, args *Object) (*Object, error) {
	return in.Global, nil
}

func primSetGlobalEnv(in *Interpreter, args *Object) (*Object, error) {
	in.Global = Car(args)
	return nil, nil
}

func primNot(in *Interpreter, args *Object) (*Object, error) {
	return in.bool(!in.IsTruthy(Car(args))), nil
}

func primLength(in *Interpreter, args *Object) (*Object, error) {
	return in.Heap.NewInteger(int64(Length(Car(args)))), nil
}

func primAppend(in *Interpreter, args *Object) (*Object, error) {
	return appendLists(in.Heap, Car(args), Cadr(args)), nil
}

func appendLists(heap *Heap, l1, l2 *Object) *Object {
	if IsNil(l1) {
		return l2
	}
	return heap.NewPair(l1.Car, appendLists(heap, l1.Cdr, l2))
}

func primReverse(in *Interpreter, args *Object) (*Object, error) {
	return reverseList(in.Heap, Car(args)), nil
}

// primExec replaces the current process image via syscall.Exec, mirroring
// `prim_exec`'s host process collaboration. Gated by strict mode like any
// other primitive whose argument shape is wrong.
func primExec(in *Interpreter, args *Object) (*Object, error) {
	path := Car(args)
	if IsNil(path) || path.Kind != KindString {
		return in.HandleError(typeError("exec", KindString, path)), nil
	}
	var argv []string
	for rest := Cdr(args); !IsNil(rest); rest = Cdr(rest) {
		argv = append(argv, PrintString(Car(rest)))
	}
	env := os.Environ()
	if err := syscall.Exec(path.Text, append([]string{path.Text}, argv...), env); err != nil {
		return in.HandleError(err), nil
	}
	return nil, nil
}

func primExit(in *Interpreter, args *Object) (*Object, error) {
	code := 0
	if a := Car(args); !IsNil(a) && a.Kind == KindInteger {
		code = int(a.Integer)
	}
	os.Exit(code)
	return nil, nil
}
