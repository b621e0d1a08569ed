package lisp

import "github.com/sirupsen/logrus"

// Heap owns every allocated *Object and runs the mark-and-sweep collector,
// grounded directly on `alloc`/`mark_object`/`gc_sweep`/`gc_pass`/`run_gc`
// in original_source/scheme/src/scheme.c. The collector is intrusive: every
// allocated object is threaded onto a singly linked gcNext chain (gcHead),
// rather than tracked in a separate slice, so sweeping never allocates.
type Heap struct {
	gcHead    *Object
	current   int
	total     int
	threshold int
	forced    bool // if true, every RunGC call collects regardless of threshold; allocation itself never collects

	log *logrus.Logger

	// Roots returns every value the collector must treat as live before a
	// mark. Roots are supplied by the Interpreter (global environment,
	// keyword table, evaluator working set) since the heap itself has no
	// notion of environments or evaluation state.
	Roots func() []*Object
}

// NewHeap creates a heap with the given collection threshold (spec.md
// §4.2's "default 255 object threshold").
func NewHeap(threshold int, log *logrus.Logger) *Heap {
	if threshold <= 0 {
		threshold = 255
	}
	return &Heap{threshold: threshold, log: log}
}

// alloc returns a freshly zeroed object of the given kind, linked onto the
// heap's intrusive all-objects list.
func (h *Heap) alloc(kind Kind) *Object {
	obj := &Object{Kind: kind, gcNext: h.gcHead}
	h.gcHead = obj
	h.total++
	h.current++
	return obj
}

// NewInteger, NewPair, NewVector, NewPrimitive allocate the remaining kinds
// that don't go through symbol/string interning.
func (h *Heap) NewInteger(v int64) *Object {
	o := h.alloc(KindInteger)
	o.Integer = v
	return o
}

func (h *Heap) NewPair(car, cdr *Object) *Object {
	o := h.alloc(KindPair)
	o.Car, o.Cdr = car, cdr
	return o
}

func (h *Heap) NewVector(size int) *Object {
	o := h.alloc(KindVector)
	o.Vector = make([]*Object, size)
	return o
}

func (h *Heap) NewPrimitive(name string, fn PrimitiveFunc) *Object {
	o := h.alloc(KindPrimitive)
	o.Name = name
	o.Primitive = fn
	return o
}

// CurrentAllocated and TotalAllocated back the `current-allocated` and
// `total-allocated` primitives of spec.md §4.6.
func (h *Heap) CurrentAllocated() int64 { return int64(h.current) }
func (h *Heap) TotalAllocated() int64   { return int64(h.total) }

func markObject(obj *Object) {
	if obj == nil || obj.marked {
		return
	}
	obj.marked = true
	switch obj.Kind {
	case KindPair:
		markObject(obj.Car)
		markObject(obj.Cdr)
	case KindVector:
		for _, v := range obj.Vector {
			markObject(v)
		}
	}
}

// sweep walks the intrusive list, reclaiming every unmarked object and
// unmarking every survivor for the next pass. symtab is given the chance
// to forget dead interned symbols, mirroring `collect_hashed`.
func (h *Heap) sweep(symtab *SymbolTable) int {
	var head, prev *Object
	freed := 0
	obj := h.gcHead
	for obj != nil {
		next := obj.gcNext
		if obj.marked {
			obj.marked = false
			if head == nil {
				head = obj
			}
			if prev != nil {
				prev.gcNext = obj
			}
			prev = obj
		} else {
			if obj.Kind == KindSymbol && symtab != nil {
				symtab.Delete(obj)
			}
			h.current--
			freed++
		}
		obj = next
	}
	if prev != nil {
		prev.gcNext = nil
	}
	h.gcHead = head
	return freed
}

// GCPass marks from every root and sweeps. It returns the number of objects
// reclaimed, matching the original `gc_pass`'s return value.
func (h *Heap) GCPass(symtab *SymbolTable) int {
	if h.Roots != nil {
		for _, root := range h.Roots() {
			markObject(root)
		}
	}
	freed := h.sweep(symtab)
	if h.log != nil {
		h.log.WithFields(logrus.Fields{
			"freed":     freed,
			"live":      h.current,
			"threshold": h.threshold,
		}).Debug("gc pass complete")
	}
	return freed
}

// RunGC triggers a collection if the heap is above threshold (or forced
// mode is set), matching `run_gc`'s threshold check.
func (h *Heap) RunGC(symtab *SymbolTable) {
	if h.forced || h.current > h.threshold {
		h.GCPass(symtab)
	}
}

// SetThreshold and SetForced change a live heap's threshold and forced mode;
// NewInterpreter applies Config.GCForced through SetForced. The threshold is
// not bound to any Lisp variable: the global environment has no
// `gc-threshold` binding, so `(set! gc-threshold n)` leaves it unchanged.
func (h *Heap) SetThreshold(n int) { h.threshold = n }
func (h *Heap) Threshold() int     { return h.threshold }
func (h *Heap) SetForced(b bool)   { h.forced = b }
