// Package gc implements component C3: the mark-and-sweep collector and
// its root set. Grounded on the teacher's vm_stack.go `stack` type — a
// slice-backed push/pop/top stack used there for parser backtracking
// frames — repurposed here for GC root registration, since spec.md
// §4.3's "Roots" section describes exactly the same shape: a LIFO
// registry that mirrors lexical scoping, where entering a scope pushes
// slots and leaving it pops them back off.
package gc

import (
	"github.com/nikhilkalige/elunar/arena"
	"github.com/nikhilkalige/elunar/object"
)

// Slot is one registered root: a stable address the collector treats
// as a reachability source. Handing out *Slot (not an index) keeps a
// slot valid across intervening pushes, mirroring how the teacher's
// frame entries are addressed by value but read back by reference at
// pop time.
type Slot struct {
	value object.Value
}

// Get reads the slot's current value.
func (s *Slot) Get() object.Value { return s.value }

// Set updates the slot's value in place — used when a root's binding
// changes without changing its scope (e.g. `setq` on a let-bound
// variable).
func (s *Slot) Set(v object.Value) { s.value = v }

// Bind is spec.md §4.3's "Lifetime rebinding" primitive:
// `bind(slot, ctx) -> handle@ctx` returns a fresh handle tied to ctx's
// validity scope, so the evaluator can keep working with the value
// without carrying the slot itself around. The root set is what keeps
// the underlying body alive across a collection (the generation-counter
// fence spec.md mentions as an alternative is unnecessary in Go: any
// reference the caller holds, including the Value Bind returns, keeps
// the runtime's own GC from reclaiming the body regardless of our mark
// bits); Bind's job is purely this re-handle, not re-validation.
func (s *Slot) Bind(ctx *arena.Context) object.Value {
	return s.value
}

// RootSet is the LIFO registry of root slots. One RootSet is shared by
// a whole interpreter; Collect walks every slot currently registered.
type RootSet struct {
	slots []*Slot
}

// NewRootSet returns an empty root set.
func NewRootSet() *RootSet {
	return &RootSet{}
}

// Push registers a new root bound to v and returns its slot. Callers
// entering a lexical scope push one slot per binding, in the same
// order vm_stack.go's stack.push enters a new frame.
func (r *RootSet) Push(v object.Value) *Slot {
	s := &Slot{value: v}
	r.slots = append(r.slots, s)
	return s
}

// Mark is a checkpoint into the root stack, returned by Checkpoint and
// consumed by TruncateTo — the same "remember a high-water mark, pop
// back to it on scope exit" discipline as vm_stack.go's
// dropUncommittedValues.
type Mark int

// Checkpoint returns a Mark at the current top of the root stack.
func (r *RootSet) Checkpoint() Mark { return Mark(len(r.slots)) }

// TruncateTo pops every slot pushed since m was taken, the bulk
// equivalent of popping one slot per Unregister call when a whole
// lexical scope (not just one binding) exits at once.
func (r *RootSet) TruncateTo(m Mark) {
	r.slots = r.slots[:m]
}

// Unregister removes a single slot, wherever it is in the stack. Used
// when a binding's scope ends independently of the slots pushed after
// it (e.g. a dynamically-unwound `unwind-protect` cleanup).
func (r *RootSet) Unregister(s *Slot) {
	for i, existing := range r.slots {
		if existing == s {
			r.slots = append(r.slots[:i], r.slots[i+1:]...)
			return
		}
	}
}

// Len reports how many roots are currently registered.
func (r *RootSet) Len() int { return len(r.slots) }

// each calls f with every currently-registered root value — Collect's
// only use of the slot stack.
func (r *RootSet) each(f func(object.Value)) {
	for _, s := range r.slots {
		f(s.value)
	}
}
