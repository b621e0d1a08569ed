package lisp

import "fmt"

// Location pinpoints a position in a source file or REPL stream, used by
// ReadError to report where a malformed token was found.
type Location struct {
	Source string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.Source == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.Source, l.Line, l.Column)
}

// ReadError reports a malformed token during reading (spec.md §7 kind 1:
// unterminated string/symbol, token too long). Read errors are always
// fatal.
type ReadError struct {
	Message  string
	Location Location
}

func (e ReadError) Error() string {
	return fmt.Sprintf("read error: %s @ %s", e.Message, e.Location)
}

// TypeError reports a primitive applied to a value of the wrong tag
// (spec.md §7 kind 2). Fatal in strict mode; the primitive layer
// substitutes nil for it in permissive mode.
type TypeError struct {
	Func     string
	Expected Kind
	Got      *Object
}

func (e TypeError) Error() string {
	got := "nil"
	if e.Got != nil {
		got = e.Got.Kind.String()
	}
	return fmt.Sprintf("invalid argument to %s: expected %s, got %s", e.Func, e.Expected, got)
}

// UnboundSymbolError reports a lookup that found no binding (spec.md §7
// kind 3). Non-fatal: the evaluator logs and substitutes nil.
type UnboundSymbolError struct {
	Symbol string
}

func (e UnboundSymbolError) Error() string {
	return fmt.Sprintf("unbound symbol: %s", e.Symbol)
}

// InvalidApplicationError reports an attempt to apply a non-primitive,
// non-closure value (spec.md §7 kind 4). Non-fatal: the evaluator logs and
// substitutes nil.
type InvalidApplicationError struct {
	Value *Object
}

func (e InvalidApplicationError) Error() string {
	return fmt.Sprintf("invalid application of %s", PrintString(e.Value))
}

// fatal reports whether err should terminate the process under the given
// strict-mode setting, per spec.md §7's propagation policy.
func fatal(err error, strict bool) bool {
	switch err.(type) {
	case ReadError:
		return true
	case TypeError:
		return strict
	default:
		return false
	}
}
