// Package arena implements component C2: an allocation context that
// owns the Lisp bodies created while it is active, grounded on the
// teacher's tree.go (append-only `t.nodes = append(t.nodes, node{...})`
// slabs yielding stable handles) and on arena/store.rs's Gc<T>
// wrapper for context-scoped validity. Go's own memory safety makes
// store.rs's unsafe lifetime transmutes unnecessary: a body's pointer
// stays valid for as long as anything (a root, another body, or this
// Context's own slab) still holds it, exactly as Go's runtime GC
// already guarantees — Context's job is purely the logical layer on
// top: tracking what it allocated so gc.Collect can sweep it, and
// enforcing the const/mutable split spec.md §3.2 and §4.4 describe.
package arena

import "github.com/nikhilkalige/elunar/object"

// Context is one allocation arena. A fresh interpreter has one root
// Context; nested const sub-contexts (spec.md §3.2, e.g. for loaded
// byte-compiled files or quoted literals) are created with Sub and
// sealed with MakeConst.
type Context struct {
	parent   *Context
	constant bool

	cons        []*object.ConsBody
	strings     []*object.StringBody
	byteStrings []*object.ByteStringBody
	vecs        []*object.VecBody
	records     []*object.RecordBody
	hashTables  []*object.HashTableBody
	floats      []*object.FloatBody
	byteFns     []*object.ByteFnBody
	buffers     []*object.BufferBody

	children []*Context
}

// New creates a top-level, mutable allocation context.
func New() *Context {
	return &Context{}
}

// Sub creates a nested context whose bodies are swept together with,
// and whose MakeConst freezes independently of, the parent's.
func (c *Context) Sub() *Context {
	child := &Context{parent: c}
	c.children = append(c.children, child)
	return child
}

// Constant reports whether allocations through c produce immutable
// bodies (spec.md §3.2: "writes to a body in a const sub-context must
// fail").
func (c *Context) Constant() bool { return c.constant }

// MakeConst freezes every body this context (and its sub-contexts)
// has allocated so far, and marks the context itself so that any
// future allocation through it is born frozen too. Mirrors
// Arena::new_const, referenced by object/mod.rs's `mutuality` test.
func (c *Context) MakeConst() {
	c.constant = true
	for _, b := range c.cons {
		object.NewBodyValue(object.TagCons, b).Freeze()
	}
	for _, b := range c.strings {
		object.NewBodyValue(object.TagString, b).Freeze()
	}
	for _, b := range c.byteStrings {
		object.NewBodyValue(object.TagByteString, b).Freeze()
	}
	for _, b := range c.vecs {
		object.NewBodyValue(object.TagVec, b).Freeze()
	}
	for _, b := range c.records {
		object.NewBodyValue(object.TagRecord, b).Freeze()
	}
	for _, b := range c.hashTables {
		object.NewBodyValue(object.TagHashTable, b).Freeze()
	}
	for _, b := range c.byteFns {
		object.NewBodyValue(object.TagByteFn, b).Freeze()
	}
	for _, b := range c.buffers {
		object.NewBodyValue(object.TagBuffer, b).Freeze()
	}
	for _, b := range c.floats {
		object.NewBodyValue(object.TagFloat, b).Freeze()
	}
	for _, child := range c.children {
		child.MakeConst()
	}
}

func (c *Context) freezeIfConst(v object.Value) object.Value {
	if c.constant {
		v.Freeze()
	}
	return v
}

// AllocCons allocates a cons cell and returns its handle.
func (c *Context) AllocCons(car, cdr object.Value) object.Value {
	b := object.NewCons(car, cdr)
	c.cons = append(c.cons, b)
	return c.freezeIfConst(object.NewBodyValue(object.TagCons, b))
}

// AllocString allocates a Unicode string body.
func (c *Context) AllocString(s string) object.Value {
	b := object.NewString(s)
	c.strings = append(c.strings, b)
	return c.freezeIfConst(object.NewBodyValue(object.TagString, b))
}

// AllocByteString allocates a raw byte-string body.
func (c *Context) AllocByteString(data []byte) object.Value {
	b := object.NewByteString(data)
	c.byteStrings = append(c.byteStrings, b)
	return c.freezeIfConst(object.NewBodyValue(object.TagByteString, b))
}

// AllocVec allocates a vector body with the given initial elements.
func (c *Context) AllocVec(elems []object.Value) object.Value {
	b := object.NewVec(elems)
	c.vecs = append(c.vecs, b)
	return c.freezeIfConst(object.NewBodyValue(object.TagVec, b))
}

// AllocRecord allocates a record body.
func (c *Context) AllocRecord(typ object.Value, fields []object.Value) object.Value {
	b := object.NewRecord(typ, fields)
	c.records = append(c.records, b)
	return c.freezeIfConst(object.NewBodyValue(object.TagRecord, b))
}

// AllocHashTable allocates an empty hash table body.
func (c *Context) AllocHashTable() object.Value {
	b := object.NewHashTable()
	c.hashTables = append(c.hashTables, b)
	return c.freezeIfConst(object.NewBodyValue(object.TagHashTable, b))
}

// AllocFloat boxes f.
func (c *Context) AllocFloat(f float64) object.Value {
	b := object.NewFloat(f)
	c.floats = append(c.floats, b)
	return object.NewBodyValue(object.TagFloat, b)
}

// AllocByteFn allocates a compiled-function body.
func (c *Context) AllocByteFn(code []byte, constants []object.Value) object.Value {
	b := object.NewByteFn(code, constants)
	c.byteFns = append(c.byteFns, b)
	return c.freezeIfConst(object.NewBodyValue(object.TagByteFn, b))
}

// AllocBuffer allocates a named buffer body.
func (c *Context) AllocBuffer(name string) object.Value {
	b := object.NewBuffer(name)
	c.buffers = append(c.buffers, b)
	return c.freezeIfConst(object.NewBodyValue(object.TagBuffer, b))
}

// Stats reports how many bodies of each kind this context currently
// holds (live + garbage, pre-sweep) — used by the smoke-test CLI and
// by tests asserting sweep actually shrank the slabs.
type Stats struct {
	Cons, Strings, ByteStrings, Vecs, Records, HashTables, Floats, ByteFns, Buffers int
}

// Sweep reclaims every body in this context (and its sub-contexts)
// whose mark bit is clear, then clears the surviving bodies' mark bits
// so the next gc.Collect cycle starts clean. This is the "unreachable
// bodies are no longer present in the arena" half of spec.md §4.3's
// sweep contract; Go's runtime GC then reclaims the underlying memory
// once the slab itself drops the last reference, nothing here issues
// a raw free.
func (c *Context) Sweep() Stats {
	reclaimed := Stats{}

	c.cons, reclaimed.Cons = sweepSlab(c.cons, object.TagCons)
	c.strings, reclaimed.Strings = sweepSlab(c.strings, object.TagString)
	c.byteStrings, reclaimed.ByteStrings = sweepSlab(c.byteStrings, object.TagByteString)
	c.vecs, reclaimed.Vecs = sweepSlab(c.vecs, object.TagVec)
	c.records, reclaimed.Records = sweepSlab(c.records, object.TagRecord)
	c.hashTables, reclaimed.HashTables = sweepSlab(c.hashTables, object.TagHashTable)
	c.byteFns, reclaimed.ByteFns = sweepSlab(c.byteFns, object.TagByteFn)
	c.buffers, reclaimed.Buffers = sweepSlab(c.buffers, object.TagBuffer)
	c.floats, reclaimed.Floats = sweepSlab(c.floats, object.TagFloat)

	for _, child := range c.children {
		r := child.Sweep()
		reclaimed.Cons += r.Cons
		reclaimed.Strings += r.Strings
		reclaimed.ByteStrings += r.ByteStrings
		reclaimed.Vecs += r.Vecs
		reclaimed.Records += r.Records
		reclaimed.HashTables += r.HashTables
		reclaimed.ByteFns += r.ByteFns
		reclaimed.Buffers += r.Buffers
		reclaimed.Floats += r.Floats
	}
	return reclaimed
}

func sweepSlab[T any](slab []*T, tag object.Tag) ([]*T, int) {
	kept := slab[:0]
	reclaimed := 0
	for _, body := range slab {
		v := object.NewBodyValue(tag, body)
		if v.Marked() {
			v.ClearMark()
			kept = append(kept, body)
		} else {
			reclaimed++
		}
	}
	return kept, reclaimed
}

func (c *Context) Stats() Stats {
	return Stats{
		Cons:        len(c.cons),
		Strings:     len(c.strings),
		ByteStrings: len(c.byteStrings),
		Vecs:        len(c.vecs),
		Records:     len(c.records),
		HashTables:  len(c.hashTables),
		Floats:      len(c.floats),
		ByteFns:     len(c.byteFns),
		Buffers:     len(c.buffers),
	}
}
