package lisp

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Interpreter owns every piece of process-wide mutable state the original
// C program kept as globals (heap, global environment, symbol table,
// sentinel/keyword table) in one context value, per spec.md §9's "Global
// mutable state" rewrite suggestion. Primitives and the evaluator take an
// *Interpreter instead of reaching into package-level variables.
type Interpreter struct {
	Heap   *Heap
	Symtab *SymbolTable
	Global *Object // the outermost (global) environment frame
	Config *Config
	Log    *logrus.Logger

	kw keywords

	strict bool

	// workStack roots every value a Go-local variable holds live across a
	// call that might trigger a GC pass mid-evaluation — Eval's own
	// in-flight exp/env for every nested (non-tail) call on the Go call
	// stack, plus the partial accumulators evlis and splitBindings build
	// while evaluating the next operand or binding. Without it, a value
	// held only in such a local — never bound into env, never part of the
	// expression tree still pointed to by exp — would be invisible to
	// roots() the instant a nested Eval triggers a collection, and a
	// symbol swept out from under it would re-intern as a distinct object
	// the next time the same text is read.
	workStack []*Object
}

// pushRoot appends v to the root stack and returns the depth just before
// the push, so the caller can pass it to popRootsTo once v no longer
// needs protecting.
func (in *Interpreter) pushRoot(v *Object) int {
	mark := len(in.workStack)
	in.workStack = append(in.workStack, v)
	return mark
}

// popRootsTo truncates the root stack back to mark, releasing every root
// pushed since.
func (in *Interpreter) popRootsTo(mark int) {
	in.workStack = in.workStack[:mark]
}

// NewInterpreter builds a fresh interpreter: an empty heap and symbol
// table, a global environment frame, the sentinel/keyword symbols bound
// into it, and every required and supplemental primitive registered
// (spec.md §4.6, SPEC_FULL.md §4.6).
func NewInterpreter(cfg *Config) *Interpreter {
	if cfg == nil {
		cfg = NewConfig()
	}
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}

	in := &Interpreter{
		Config: cfg,
		Log:    log,
		strict: cfg.Strict,
	}
	in.Heap = NewHeap(cfg.GCThreshold, log)
	in.Heap.SetForced(cfg.GCForced)
	in.Heap.Roots = in.roots
	in.Symtab = NewSymbolTable(cfg.SymtabBuckets)

	in.Global = in.Heap.NewPair(in.Heap.NewPair(nil, nil), nil)
	in.initSentinels()
	registerPrimitives(in)
	return in
}

// roots supplies the GC with every live value: the global environment,
// every interned keyword/sentinel symbol, and the evaluator's active
// working set (spec.md §4.2's root set, which names the evaluator's
// working set alongside the global environment as the two things a root
// set must cover). The working set is in.workStack, which Eval and its
// helpers maintain across every allocating recursive call.
func (in *Interpreter) roots() []*Object {
	rs := []*Object{
		in.Global,
		in.kw.True, in.kw.False,
		in.kw.Quote, in.kw.Lambda, in.kw.Define, in.kw.Set, in.kw.Let,
		in.kw.If, in.kw.Begin, in.kw.Or, in.kw.Cond, in.kw.Else,
		in.kw.Procedure, in.kw.Ok,
	}
	return append(rs, in.workStack...)
}

// initSentinels interns the keyword/sentinel symbols, binds #t/#f to
// themselves and true/false to #t/#f in the global environment, mirroring
// `init_env`'s add_sym calls in the original C.
func (in *Interpreter) initSentinels() {
	sym := func(s string) *Object { return in.Symtab.Intern(in.Heap, s) }

	in.kw.True = sym("#t")
	in.kw.False = sym("#f")
	in.kw.Quote = sym("quote")
	in.kw.Lambda = sym("lambda")
	in.kw.Define = sym("define")
	in.kw.Set = sym("set!")
	in.kw.Let = sym("let")
	in.kw.If = sym("if")
	in.kw.Begin = sym("begin")
	in.kw.Or = sym("or")
	in.kw.Cond = sym("cond")
	in.kw.Else = sym("else")
	in.kw.Procedure = sym("procedure")
	in.kw.Ok = sym("ok")

	Define(in.Heap, in.kw.True, in.kw.True, in.Global)
	Define(in.Heap, in.kw.False, in.kw.False, in.Global)
	Define(in.Heap, sym("true"), in.kw.True, in.Global)
	Define(in.Heap, sym("false"), in.kw.False, in.Global)
}

// IsTruthy implements the truthiness rule of spec.md §4.5 rule 9: a value
// is false iff it is nil, eq? to #f, or the integer 0.
func (in *Interpreter) IsTruthy(v *Object) bool {
	if IsNil(v) {
		return false
	}
	if Eq(v, in.kw.False) {
		return false
	}
	if v.Kind == KindInteger && v.Integer == 0 {
		return false
	}
	return true
}

// Strict reports whether the interpreter runs in strict error-handling
// mode (spec.md §7).
func (in *Interpreter) Strict() bool { return in.strict }

func (in *Interpreter) SetStrict(v bool) { in.strict = v }

// Fatal logs a structured diagnostic and terminates the process, matching
// spec.md §7's "fatal errors print a diagnostic ... and terminate."
func (in *Interpreter) Fatal(err error) {
	in.Log.WithError(err).Error("fatal error")
	os.Exit(1)
}

// Warn logs a non-fatal substitution at Warn level, matching spec.md §7's
// "non-fatal errors substitute NIL and continue."
func (in *Interpreter) Warn(err error) {
	in.Log.WithError(err).Warn("continuing after non-fatal error")
}

// HandleError applies spec.md §7's propagation policy: fatal errors
// terminate the process, everything else is logged and substituted with
// nil. It always returns nil so call sites can write `return in.HandleError(err)`.
func (in *Interpreter) HandleError(err error) *Object {
	if fatal(err, in.strict) {
		in.Fatal(err)
		return nil // unreachable; os.Exit already ran
	}
	in.Warn(err)
	return nil
}

// LoadFile reads and evaluates every expression in path against the
// global environment in order, returning the value of the last one
// (spec.md §4.6's `load`).
func (in *Interpreter) LoadFile(path string) (*Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()

	reader := NewReader(in.Heap, in.Symtab, bufio.NewReader(f), path)
	var result *Object
	for {
		exp, rerr := reader.Read()
		if rerr != nil {
			return nil, rerr
		}
		if exp == nil {
			break
		}
		result, err = in.Eval(exp, in.Global)
		if err != nil {
			return nil, err
		}
		in.Heap.RunGC(in.Symtab)
	}
	return result, nil
}
