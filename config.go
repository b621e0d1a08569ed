package lisp

// Config is the set of startup-tunable knobs the interpreter needs: the
// GC threshold, whether every collection check runs a pass regardless of
// the threshold (checks happen once per evaluator loop iteration, not on
// every allocation), strict
// vs. permissive error handling, the symbol table's bucket count, and log
// verbosity. Each setting is a concrete, named field rather than a
// string-keyed lookup: the key set is small and fixed at compile time, so
// a typo'd path or a Get of the wrong type would only ever be caught at
// runtime by a generic accessor, where a field access lets the compiler
// catch both.
type Config struct {
	GCThreshold   int
	GCForced      bool
	Strict        bool
	SymtabBuckets int
	LogLevel      string
}

// NewConfig returns the interpreter's default configuration: a
// 255-object GC threshold, permissive error handling, an 8191-bucket
// symbol table, and info-level logging.
func NewConfig() *Config {
	return &Config{
		GCThreshold:   255,
		GCForced:      false,
		Strict:        false,
		SymtabBuckets: 8191,
		LogLevel:      "info",
	}
}
