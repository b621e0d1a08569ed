package lisp

// Eval is the evaluator's single entry point. It dispatches on the shape
// of exp and loops by rewriting exp/env in place (spec.md §4.5) rather
// than recursing, so that tail calls — application of a closure in tail
// position, and every form that rewrites to "evaluate this in my place"
// (begin, if, or, cond, let) — run in constant host-stack depth.
func (in *Interpreter) Eval(exp, env *Object) (*Object, error) {
	// Root exp and env for the lifetime of this call, including every
	// nested (non-tail) in.Eval call still on the Go stack below this
	// one — so a deep non-tail recursion such as (fact n)'s
	// (* n (fact (- n 1))) keeps every enclosing call's live expression
	// and lexical frame reachable for as long as that call hasn't
	// returned, not just the outermost one.
	mark := in.pushRoot(exp)
	in.pushRoot(env)
	defer in.popRootsTo(mark)

	for {
		in.workStack[mark], in.workStack[mark+1] = exp, env
		in.Heap.RunGC(in.Symtab)

		switch {
		case IsNil(exp) || Eq(exp, EmptyList):
			return nil, nil

		case exp.Kind == KindInteger || exp.Kind == KindString:
			return exp, nil

		case exp.Kind == KindSymbol:
			val := Lookup(exp, env)
			if val == nil {
				return in.HandleError(UnboundSymbolError{Symbol: exp.Text}), nil
			}
			return val, nil

		case exp.Kind != KindPair:
			// Vectors and primitives are never produced by the reader, only
			// by evaluation; if one flows back through Eval (e.g. quoted
			// into an application's operand list) it is self-evaluating.
			return exp, nil

		case IsTagged(exp, in.kw.Quote):
			return Cadr(exp), nil

		case IsTagged(exp, in.kw.Lambda):
			params := Cadr(exp)
			body := Cddr(exp)
			return in.makeClosure(params, body, env), nil

		case IsTagged(exp, in.kw.Define):
			target := Cadr(exp)
			if IsAtom(target) {
				val, err := in.Eval(Caddr(exp), env)
				if err != nil {
					return nil, err
				}
				Define(in.Heap, target, val, env)
				return in.kw.Ok, nil
			}
			// (define (name . params) body...) => (define name (lambda params body...))
			name := Car(target)
			params := Cdr(target)
			body := Cddr(exp)
			closure := in.makeClosure(params, body, env)
			Define(in.Heap, name, closure, env)
			return in.kw.Ok, nil

		case IsTagged(exp, in.kw.Set):
			val, err := in.Eval(Caddr(exp), env)
			if err != nil {
				return nil, err
			}
			Set(Cadr(exp), val, env)
			return in.kw.Ok, nil

		case IsTagged(exp, in.kw.Begin):
			body := Cdr(exp)
			if IsNil(body) {
				return nil, nil
			}
			for !IsNil(Cdr(body)) {
				if _, err := in.Eval(Car(body), env); err != nil {
					return nil, err
				}
				body = Cdr(body)
			}
			exp = Car(body)
			continue

		case IsTagged(exp, in.kw.If):
			pred, err := in.Eval(Cadr(exp), env)
			if err != nil {
				return nil, err
			}
			if in.IsTruthy(pred) {
				exp = Caddr(exp)
			} else {
				exp = Cadddr(exp)
			}
			continue

		case IsTagged(exp, in.kw.Or):
			// Standard R7RS variadic `or`: evaluate operands left-to-right,
			// short-circuiting on the first truthy one. Some scheme.c
			// variants treat `or` as a two-branch form identical to `if`,
			// which is a bug relative to standard Scheme; this divergence
			// is deliberate.
			clauses := Cdr(exp)
			if IsNil(clauses) {
				return nil, nil
			}
			for !IsNil(Cdr(clauses)) {
				val, err := in.Eval(Car(clauses), env)
				if err != nil {
					return nil, err
				}
				if in.IsTruthy(val) {
					return val, nil
				}
				clauses = Cdr(clauses)
			}
			exp = Car(clauses)
			continue

		case IsTagged(exp, in.kw.Cond):
			chosen, err := in.chooseCondClause(Cdr(exp), env)
			if err != nil {
				return nil, err
			}
			if chosen == nil {
				return nil, nil
			}
			exp = in.Heap.NewPair(in.kw.Begin, chosen)
			continue

		case IsTagged(exp, in.kw.Let):
			rewritten, newEnv, err := in.rewriteLet(exp, env)
			if err != nil {
				return nil, err
			}
			exp, env = rewritten, newEnv
			continue

		default:
			proc, err := in.Eval(Car(exp), env)
			if err != nil {
				return nil, err
			}
			// proc may be a closure that exists only as this local (an
			// immediately-applied lambda, never bound to a name), so it
			// needs its own root while evlis evaluates the operands —
			// evlis's own nested Eval calls can trigger a collection.
			procMark := in.pushRoot(proc)
			args, err := in.evlis(Cdr(exp), env)
			in.popRootsTo(procMark)
			if err != nil {
				return nil, err
			}
			switch {
			case proc != nil && proc.Kind == KindPrimitive:
				return proc.Primitive(in, args)
			case IsTagged(proc, in.kw.Procedure):
				params := Cadr(proc)
				body := Caddr(proc)
				capturedEnv := Cadddr(proc)
				env = Extend(in.Heap, params, args, capturedEnv)
				exp = in.Heap.NewPair(in.kw.Begin, body)
				continue
			default:
				return in.HandleError(InvalidApplicationError{Value: proc}), nil
			}
		}
	}
}

// makeClosure builds the (procedure params body env) list shape of
// spec.md §3/§4.5. Closures are ordinary list values tagged with the
// interned `procedure` symbol; there is no distinct closure type, per the
// spec's explicit choice to keep the tagged-list representation.
func (in *Interpreter) makeClosure(params, body, env *Object) *Object {
	return in.Heap.NewPair(in.kw.Procedure,
		in.Heap.NewPair(params,
			in.Heap.NewPair(body,
				in.Heap.NewPair(env, nil))))
}

// evlis evaluates a list of operand expressions left-to-right, producing
// a value list in the same order (spec.md §5's "argument evaluation ...
// is left-to-right").
func (in *Interpreter) evlis(list, env *Object) (*Object, error) {
	if IsNil(list) {
		return nil, nil
	}
	head, err := in.Eval(Car(list), env)
	if err != nil {
		return nil, err
	}
	// head is a freshly computed value, not yet part of any expression
	// tree or environment frame a root already covers — root it while
	// evaluating the remaining operands, since that recursion can itself
	// trigger a collection before head is consed onto the result.
	mark := in.pushRoot(head)
	rest, err := in.evlis(Cdr(list), env)
	in.popRootsTo(mark)
	if err != nil {
		return nil, err
	}
	return in.Heap.NewPair(head, rest), nil
}

// chooseCondClause scans cond clauses in order; a clause headed by `else`,
// or whose head evaluates truthy, is chosen and its body returned. Returns
// nil if no clause matches.
func (in *Interpreter) chooseCondClause(clauses, env *Object) (*Object, error) {
	for !IsNil(clauses) {
		clause := Car(clauses)
		test := Car(clause)
		if Eq(test, in.kw.Else) {
			return Cdr(clause), nil
		}
		val, err := in.Eval(test, env)
		if err != nil {
			return nil, err
		}
		if in.IsTruthy(val) {
			return Cdr(clause), nil
		}
		clauses = Cdr(clauses)
	}
	return nil, nil
}

// rewriteLet implements both ordinary and named let (spec.md §4.5 rule
// 12), returning the rewritten expression and environment for the caller
// to loop on.
func (in *Interpreter) rewriteLet(exp, env *Object) (*Object, *Object, error) {
	second := Cadr(exp)
	if second != nil && second.Kind == KindSymbol {
		// Named let: (let name ((v e) ...) body...)
		name := second
		bindings := Caddr(exp)
		body := Cdddr(exp)
		vars, vals, err := in.splitBindings(bindings, env)
		if err != nil {
			return nil, nil, err
		}
		loopEnv := Extend(in.Heap, in.Heap.NewPair(name, nil), in.Heap.NewPair(nil, nil), env)
		closure := in.makeClosure(vars, body, loopEnv)
		Define(in.Heap, name, closure, loopEnv)
		call := in.Heap.NewPair(name, in.quoteEach(vals))
		return call, loopEnv, nil
	}

	// Ordinary let: (let ((v e) ...) body...) => ((lambda (v...) body...) e...)
	bindings := second
	body := Cddr(exp)
	vars, vals, err := in.splitBindings(bindings, env)
	if err != nil {
		return nil, nil, err
	}
	lambda := in.Heap.NewPair(in.kw.Lambda, in.Heap.NewPair(vars, body))
	call := in.Heap.NewPair(lambda, in.quoteEach(vals))
	return call, env, nil
}

// splitBindings evaluates each `e` in a let binding list and returns the
// parallel (vars, vals) lists.
func (in *Interpreter) splitBindings(bindings, env *Object) (*Object, *Object, error) {
	var varsRev, valsRev *Object
	for !IsNil(bindings) {
		binding := Car(bindings)
		v := Car(binding)
		// varsRev/valsRev accumulate newly-consed pairs with no link yet
		// to env or the original bindings list, so they need rooting
		// across this Eval call the same way evlis's head does.
		mark := in.pushRoot(varsRev)
		in.pushRoot(valsRev)
		val, err := in.Eval(Cadr(binding), env)
		in.popRootsTo(mark)
		if err != nil {
			return nil, nil, err
		}
		varsRev = in.Heap.NewPair(v, varsRev)
		valsRev = in.Heap.NewPair(val, valsRev)
		bindings = Cdr(bindings)
	}
	return reverseList(in.Heap, varsRev), reverseList(in.Heap, valsRev), nil
}

// quoteEach wraps every already-evaluated value in `(quote v)` so that
// rewriting let into an application can safely re-evaluate the operand
// list without double-evaluating the original binding expressions.
func (in *Interpreter) quoteEach(vals *Object) *Object {
	if IsNil(vals) {
		return nil
	}
	quoted := in.Heap.NewPair(in.kw.Quote, in.Heap.NewPair(vals.Car, nil))
	return in.Heap.NewPair(quoted, in.quoteEach(vals.Cdr))
}
