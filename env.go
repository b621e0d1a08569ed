package lisp

// Environment is a chain of frames. Each frame is a pair of parallel lists
// (variables . values); a frame's cdr links to the enclosing frame, so the
// whole chain is itself an ordinary list value and is walked/marked by the
// GC like any other pair (spec.md §4.4). The global environment is the
// final frame on the chain.

// Extend conses a new frame (vars . vals) onto env and returns the result.
// Mismatched-length vars/vals are tolerated — Lookup simply fails once it
// runs past the shorter list.
func Extend(heap *Heap, vars, vals, env *Object) *Object {
	frame := heap.NewPair(vars, vals)
	return heap.NewPair(frame, env)
}

// Lookup walks frames innermost-first, comparing by symbol identity, and
// returns the bound value or nil if unbound.
func Lookup(sym, env *Object) *Object {
	for !IsNil(env) {
		frame := Car(env)
		vars, vals := Car(frame), Cdr(frame)
		for !IsNil(vars) && !IsNil(vals) {
			if Eq(Car(vars), sym) {
				return Car(vals)
			}
			vars, vals = Cdr(vars), Cdr(vals)
		}
		env = Cdr(env)
	}
	return nil
}

// Define binds var to val in the innermost frame of env: overwrites the
// value cell if var already appears there, else prepends a new (var, val)
// pair to that frame's parallel lists. Returns val.
func Define(heap *Heap, sym, val, env *Object) *Object {
	frame := Car(env)
	vars, vals := Car(frame), Cdr(frame)
	for v, w := vars, vals; !IsNil(v) && !IsNil(w); v, w = Cdr(v), Cdr(w) {
		if Eq(Car(v), sym) {
			w.Car = val
			return val
		}
	}
	frame.Car = heap.NewPair(sym, vars)
	frame.Cdr = heap.NewPair(val, vals)
	return val
}

// Set walks all frames innermost-first; in the first frame containing var,
// overwrites its value cell. If var is unbound anywhere, Set is a silent
// no-op per spec.md §4.4.
func Set(sym, val, env *Object) {
	for !IsNil(env) {
		frame := Car(env)
		vars, vals := Car(frame), Cdr(frame)
		for !IsNil(vars) && !IsNil(vals) {
			if Eq(Car(vars), sym) {
				vals.Car = val
				return
			}
			vars, vals = Cdr(vars), Cdr(vals)
		}
		env = Cdr(env)
	}
}
