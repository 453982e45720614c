// Package symtab owns the process-wide symbol intern table: the one
// piece of global mutable state in the interpreter core (spec.md §5).
// No close precedent in the teacher's own domain (a parser generator
// has no need for a global mutable table), so this package's shape —
// a name -> id map guarded by a single sync.RWMutex, read-heavy and
// write-rare — follows spec.md's own policy description directly
// rather than a pack source.
package symtab

import (
	"sync"

	"github.com/nikhilkalige/elunar/object"
)

// Table is an intern table. A running interpreter has exactly one,
// created with New.
type Table struct {
	mu     sync.RWMutex
	byName map[string]int64
	byID   map[int64]*object.SymbolBody
	nextID int64
}

// New returns a fresh table pre-populated with the nil symbol at id 0,
// matching tag.go's invariant that the zero Value is nil.
func New() *Table {
	t := &Table{
		byName: make(map[string]int64),
		byID:   make(map[int64]*object.SymbolBody),
	}
	nilBody := object.NewSymbolBody(0, "nil")
	t.byName["nil"] = 0
	t.byID[0] = nilBody
	t.nextID = 1
	object.SymbolLookup = t.resolve
	return t
}

// resolve is installed as object.SymbolLookup so the object package
// can render and dispatch on symbols without importing symtab.
func (t *Table) resolve(id int64) *object.SymbolBody {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.byID[id]
}

// Intern returns the Value for name, allocating a fresh id (and
// SymbolBody) on first use.
func (t *Table) Intern(name string) object.Value {
	t.mu.RLock()
	if id, ok := t.byName[name]; ok {
		t.mu.RUnlock()
		return object.NewSymbolValue(id)
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	// Re-check: another goroutine may have interned name while we
	// waited for the write lock.
	if id, ok := t.byName[name]; ok {
		return object.NewSymbolValue(id)
	}
	id := t.nextID
	t.nextID++
	t.byName[name] = id
	t.byID[id] = object.NewSymbolBody(id, name)
	return object.NewSymbolValue(id)
}

// Lookup returns the Value for name without interning it, and whether
// it was already present.
func (t *Table) Lookup(name string) (object.Value, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	id, ok := t.byName[name]
	if !ok {
		return object.Nil, false
	}
	return object.NewSymbolValue(id), true
}

// Body returns the SymbolBody backing v, or nil if v is not a symbol
// from this table.
func (t *Table) Body(v object.Value) *object.SymbolBody {
	if v.Tag() != object.TagSymbol {
		return nil
	}
	return t.resolve(v.SymbolID())
}

// GetFunction returns sym's function cell, or a VoidFunctionError
// (spec.md §7) if the cell is unset — the "call through a symbol with
// no function cell" case the error taxonomy names.
func (t *Table) GetFunction(sym object.Value) (object.Value, error) {
	body := t.Body(sym)
	if body == nil || body.Function.IsNil() {
		return object.Nil, &object.VoidFunctionError{Symbol: sym.SymbolName()}
	}
	return body.Function, nil
}

// SetFunction sets sym's function cell (`fset`'s storage-layer half —
// the accessor builtin itself is out of scope).
func (t *Table) SetFunction(sym, fn object.Value) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if body, ok := t.byID[sym.SymbolID()]; ok {
		body.Function = fn
	}
}

// Nil is the canonical nil symbol value, always id 0.
func (t *Table) Nil() object.Value { return object.Nil }

// Len reports how many distinct symbols are interned.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byName)
}
