package lisp

// SymbolTable interns symbol and string text so that two symbols with equal
// text are pointer-identical (spec.md §3 "Symbols are interned"). It is a
// fixed-bucket-count hash table, grounded on the hash table in
// `original_source/scheme/src/scheme.c` (ht_init/ht_insert/ht_lookup), but
// rendered as a Go map-of-slices since the bucket mechanics themselves
// aren't part of the language's observable behavior.
type SymbolTable struct {
	buckets int
	table   map[uint64][]*Object
}

// NewSymbolTable creates a table with the given bucket count. The bucket
// count only affects hash distribution, never correctness.
func NewSymbolTable(buckets int) *SymbolTable {
	if buckets <= 0 {
		buckets = 8191
	}
	return &SymbolTable{buckets: buckets, table: make(map[uint64][]*Object)}
}

func (t *SymbolTable) hash(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = (h*256 + uint64(s[i])) % uint64(t.buckets)
	}
	return h
}

// Intern returns the existing symbol for text if present, else allocates
// one through heap and registers it.
func (t *SymbolTable) Intern(heap *Heap, text string) *Object {
	h := t.hash(text)
	for _, sym := range t.table[h] {
		if sym.Text == text {
			return sym
		}
	}
	sym := heap.alloc(KindSymbol)
	sym.Text = text
	t.table[h] = append(t.table[h], sym)
	return sym
}

// NewString allocates a fresh string object. Unlike symbols, strings are
// not deduplicated in the table — each "..." literal gets its own heap
// cell — but Eq still compares strings by text (mirroring the original
// `is_equal`'s STRING case), so spec.md §8's `(eq? "x" "x")` still holds
// without needing a second hash table.
func (t *SymbolTable) NewString(heap *Heap, text string) *Object {
	s := heap.alloc(KindString)
	s.Text = text
	return s
}

// Delete removes a symbol from the table once the collector determines it
// unreachable, per spec.md §4.1 "Deletion is supported so the collector can
// reclaim dead symbols."
func (t *SymbolTable) Delete(obj *Object) {
	h := t.hash(obj.Text)
	bucket := t.table[h]
	for i, sym := range bucket {
		if sym == obj {
			t.table[h] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// Len reports the number of interned symbols, for diagnostics and tests.
func (t *SymbolTable) Len() int {
	n := 0
	for _, bucket := range t.table {
		n += len(bucket)
	}
	return n
}

// keywords holds every special-form/sentinel symbol an Interpreter binds
// once at startup, so the evaluator's dispatch can compare against a
// pre-interned pointer instead of a string (spec.md §4.5's dispatch runs
// off symbol identity, not text comparison).
type keywords struct {
	True  *Object
	False *Object

	Quote     *Object
	Lambda    *Object
	Define    *Object
	Set       *Object
	Let       *Object
	If        *Object
	Begin     *Object
	Or        *Object
	Cond      *Object
	Else      *Object
	Procedure *Object
	Ok        *Object
}
