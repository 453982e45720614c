// Package env provides the Environment scaffolding spec.md's "remaining
// ~20%" calls out: a place for symbols to carry a value binding and a
// property list, bridging the object model to the (out-of-scope)
// evaluator. Ported field-for-field from src/data.rs's
// Environment{vars: HashMap<Symbol, GcRoot>, props: HashMap<Symbol,
// Vec<(Symbol, GcRoot)>>}; the #[defun]-annotated builtins built
// around it there (fset, eq, equal, get/put, symbol-value, ...) are
// explicitly out of scope (spec.md §1) and are not ported — only the
// storage they'd operate on.
package env

import (
	"github.com/nikhilkalige/elunar/gc"
	"github.com/nikhilkalige/elunar/object"
)

// Environment holds the dynamic (global) bindings: a symbol's current
// value cell and its property list, each rooted so the collector
// never reclaims a live binding.
type Environment struct {
	roots *gc.RootSet
	vars  map[int64]*gc.Slot
	props map[int64]*gc.Slot
}

// New creates an empty environment rooted against the given root set.
func New(roots *gc.RootSet) *Environment {
	return &Environment{
		roots: roots,
		vars:  make(map[int64]*gc.Slot),
		props: make(map[int64]*gc.Slot),
	}
}

// SetVar binds sym's value cell to v, rooting v for the first time if
// sym had no prior binding.
func (e *Environment) SetVar(sym object.Value, v object.Value) {
	id := sym.SymbolID()
	if slot, ok := e.vars[id]; ok {
		slot.Set(v)
		return
	}
	e.vars[id] = e.roots.Push(v)
}

// GetVar returns sym's current value binding, or object.Nil with ok
// false if unbound.
func (e *Environment) GetVar(sym object.Value) (object.Value, bool) {
	slot, ok := e.vars[sym.SymbolID()]
	if !ok {
		return object.Nil, false
	}
	return slot.Get(), true
}

// MustGetVar is GetVar's error-returning counterpart: spec.md §7
// describes a reference to an unbound variable as a VoidVariableError,
// not a bare "not found" bool, so this constructs one instead of
// leaving the taxonomy unwired.
func (e *Environment) MustGetVar(sym object.Value) (object.Value, error) {
	v, ok := e.GetVar(sym)
	if !ok {
		return object.Nil, &object.VoidVariableError{Symbol: sym.SymbolName()}
	}
	return v, nil
}

// Unbind removes sym's value binding entirely (`makunbound`'s
// storage-layer half).
func (e *Environment) Unbind(sym object.Value) {
	id := sym.SymbolID()
	if slot, ok := e.vars[id]; ok {
		e.roots.Unregister(slot)
		delete(e.vars, id)
	}
}

// Put sets sym's property list slot to plist (`put`'s storage-layer
// half — the accessor builtin itself is out of scope).
func (e *Environment) Put(sym object.Value, plist object.Value) {
	id := sym.SymbolID()
	if slot, ok := e.props[id]; ok {
		slot.Set(plist)
		return
	}
	e.props[id] = e.roots.Push(plist)
}

// Get returns sym's property list, or object.Nil if it has none.
func (e *Environment) Get(sym object.Value) object.Value {
	slot, ok := e.props[sym.SymbolID()]
	if !ok {
		return object.Nil
	}
	return slot.Get()
}
