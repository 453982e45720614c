package object

import "fmt"

// Bodies are the pointer targets a markable Value's `obj` field holds.
// Each carries its own mark bit and a mutable flag toggled off when the
// owning arena.Context is frozen (spec.md §3.2, "Bodies... record a
// mark bit... and whether they are frozen"). Ported field-for-field
// from core/object/tagged.rs's per-type bodies (ConsObject, LispString,
// LispVec, Record, etc.) and src/object/mod.rs's Object<'ob> payloads.

// header is embedded in every body and carries the bits the collector
// and the const-context checks need, independent of the body's own
// fields.
type header struct {
	marked  bool
	mutable bool
}

func (h *header) Mark()         { h.marked = true }
func (h *header) Marked() bool  { return h.marked }
func (h *header) ClearMark()    { h.marked = false }
func (h *header) Mutable() bool { return h.mutable }
func (h *header) freeze()       { h.mutable = false }

// markable is satisfied by every body through its embedded header;
// package gc drives the mark/sweep phases entirely through this
// interface rather than switching on Tag itself.
type markable interface {
	Mark()
	Marked() bool
	ClearMark()
	Mutable() bool
}

func (v Value) body() (markable, bool) {
	if v.obj == nil {
		return nil, false
	}
	m, ok := v.obj.(markable)
	return m, ok
}

// Mark sets v's body mark bit. No-op for immediate tags (Int) and for
// Symbol, which is process-wide and never swept (spec.md §4.3).
func (v Value) Mark() {
	if m, ok := v.body(); ok {
		m.Mark()
	}
}

// Marked reports v's body mark bit; always true for non-markable tags
// so the sweep phase never reclaims them.
func (v Value) Marked() bool {
	m, ok := v.body()
	if !ok {
		return true
	}
	return m.Marked()
}

// ClearMark resets v's body mark bit, run once per sweep before the
// next mark phase.
func (v Value) ClearMark() {
	if m, ok := v.body(); ok {
		m.ClearMark()
	}
}

// Freeze marks v's body immutable, used by arena.Context.MakeConst to
// seal an entire const sub-context's bodies in one walk.
func (v Value) Freeze() {
	if h, ok := v.obj.(interface{ freeze() }); ok {
		h.freeze()
	}
}

// ConsBody is a single cons cell: spec.md's minimal list building
// block, mirroring tagged.rs's Cons tag / object/mod.rs's Object::Cons.
type ConsBody struct {
	header
	Car, Cdr Value
}

func NewCons(car, cdr Value) *ConsBody {
	return &ConsBody{header: header{mutable: true}, Car: car, Cdr: cdr}
}

func (c *ConsBody) SetCar(v Value) error {
	if !c.mutable {
		return &ConstantError{Op: "setcar"}
	}
	c.Car = v
	return nil
}

func (c *ConsBody) SetCdr(v Value) error {
	if !c.mutable {
		return &ConstantError{Op: "setcdr"}
	}
	c.Cdr = v
	return nil
}

// StringBody holds validated UTF-8 text (tagged.rs's String tag).
type StringBody struct {
	header
	Text string
}

func NewString(s string) *StringBody {
	return &StringBody{header: header{mutable: true}, Text: s}
}

// ByteStringBody holds a raw byte sequence with no text encoding
// (tagged.rs's ByteString tag) — used for binary buffer content.
type ByteStringBody struct {
	header
	Bytes []byte
}

func NewByteString(b []byte) *ByteStringBody {
	return &ByteStringBody{header: header{mutable: true}, Bytes: b}
}

// VecBody is a fixed-length mutable vector of Values.
type VecBody struct {
	header
	Elems    []Value
	borrowed bool
}

func NewVec(elems []Value) *VecBody {
	return &VecBody{header: header{mutable: true}, Elems: elems}
}

func (vec *VecBody) Set(i int, v Value) error {
	if vec.borrowed {
		return &BorrowError{Op: "aset"}
	}
	if !vec.mutable {
		return &ConstantError{Op: "aset"}
	}
	if i < 0 || i >= len(vec.Elems) {
		return &RangeError{Index: i, Length: len(vec.Elems)}
	}
	vec.Elems[i] = v
	return nil
}

// Do calls f once per element, with re-entrant mutation through Set
// rejected for the duration (spec.md §7's BorrowError: "vec/hashtable
// re-entrance"). f returning an error stops the iteration early.
func (vec *VecBody) Do(f func(i int, v Value) error) error {
	vec.borrowed = true
	defer func() { vec.borrowed = false }()
	for i, v := range vec.Elems {
		if err := f(i, v); err != nil {
			return err
		}
	}
	return nil
}

// RecordBody is a tagged aggregate (struct instance in Lisp terms):
// Type names the defining record descriptor symbol, Fields holds the
// slot values in declaration order.
type RecordBody struct {
	header
	Type   Value
	Fields []Value
}

func NewRecord(typ Value, fields []Value) *RecordBody {
	return &RecordBody{header: header{mutable: true}, Type: typ, Fields: fields}
}

// HashTableBody is an open hash table keyed by structural equality
// (tagged.rs's HashTable tag). Keys are stored alongside an
// equal-hash computed at insert time, since Value is not itself a
// valid Go map key for pointer-bearing tags (two structurally-equal
// strings would otherwise collide on obj pointer identity instead of
// content).
type HashTableBody struct {
	header
	buckets  map[uint64][]htEntry
	borrowed bool
}

type htEntry struct {
	key Value
	val Value
}

func NewHashTable() *HashTableBody {
	return &HashTableBody{header: header{mutable: true}, buckets: make(map[uint64][]htEntry)}
}

func (h *HashTableBody) Get(key Value) (Value, bool) {
	h2 := equalHash(key)
	for _, e := range h.buckets[h2] {
		if Equal(e.key, key) {
			return e.val, true
		}
	}
	return Nil, false
}

func (h *HashTableBody) Put(key, val Value) error {
	if h.borrowed {
		return &BorrowError{Op: "puthash"}
	}
	if !h.mutable {
		return &ConstantError{Op: "puthash"}
	}
	h2 := equalHash(key)
	bucket := h.buckets[h2]
	for i, e := range bucket {
		if Equal(e.key, key) {
			bucket[i].val = val
			return nil
		}
	}
	h.buckets[h2] = append(bucket, htEntry{key: key, val: val})
	return nil
}

func (h *HashTableBody) Len() int {
	n := 0
	for _, bucket := range h.buckets {
		n += len(bucket)
	}
	return n
}

// Do calls f once per entry, with re-entrant mutation through Put
// rejected for the duration (spec.md §7's BorrowError: "vec/hashtable
// re-entrance"). f returning an error stops the iteration early.
func (h *HashTableBody) Do(f func(key, val Value) error) error {
	h.borrowed = true
	defer func() { h.borrowed = false }()
	for _, bucket := range h.buckets {
		for _, e := range bucket {
			if err := f(e.key, e.val); err != nil {
				return err
			}
		}
	}
	return nil
}

// FloatBody boxes a float64 (tagged.rs's Float tag, Data<&'ob f64>):
// floats need a body rather than an immediate payload because NaN
// bit patterns and -0.0 must round-trip exactly through eq/ptr_eq.
type FloatBody struct {
	header
	Val float64
}

func NewFloat(f float64) *FloatBody {
	return &FloatBody{Val: f}
}

// SymbolBody is the body a Symbol Value's interned id resolves to via
// package symtab. Name is immutable once interned; Function and Plist
// are the "function cell" and "property list" slots spec.md's env
// package scaffolding bridges to.
type SymbolBody struct {
	header
	ID       int64
	Name     string
	Function Value
	Plist    Value
	Special  bool // dynamically-scoped ("special") variable, vs. lexical
}

func NewSymbolBody(id int64, name string) *SymbolBody {
	return &SymbolBody{header: header{mutable: true, marked: true}, ID: id, Name: name}
}

// SymbolLookup resolves an interned id back to its body. Symbol values
// only carry their id (tag.go keeps `obj` nil for TagSymbol so the
// zero Value stays nil), so display and function-cell dispatch go
// through this indirection; package symtab sets it once at init,
// avoiding an import cycle between object and symtab.
var SymbolLookup func(id int64) *SymbolBody

func (v Value) symbolBody() *SymbolBody {
	if SymbolLookup == nil {
		return nil
	}
	return SymbolLookup(v.num)
}

// SymbolName returns a Symbol-tagged value's interned name, for error
// messages that need to name the unbound/unfbound symbol (spec.md §7's
// Void*Error.Symbol field). Falls back to a numeric placeholder if the
// id can't be resolved (package symtab not yet wired, or a stale id).
func (v Value) SymbolName() string {
	if sym := v.symbolBody(); sym != nil {
		return sym.Name
	}
	return fmt.Sprintf("symbol-%d", v.num)
}

// SubrFnBody wraps a builtin function. Builtin bodies themselves are
// out of scope (spec.md §1); only the body shape — enough to carry a
// name and arity for the function-cell and display machinery — is
// modeled here.
type SubrFnBody struct {
	header
	Name    string
	MinArgs int
	MaxArgs int // -1 means &rest (variadic)
}

func NewSubrFn(name string, minArgs, maxArgs int) *SubrFnBody {
	return &SubrFnBody{header: header{mutable: false, marked: true}, Name: name, MinArgs: minArgs, MaxArgs: maxArgs}
}

// ByteFnBody is a compiled Lisp function: a constants vector plus a
// bytecode string, matching tagged.rs's ByteFn tag. The bytecode
// evaluator that executes Code is out of scope (spec.md §1); this
// only carries the shape the GC and printer need to traverse it.
type ByteFnBody struct {
	header
	Code      []byte
	Constants []Value
	Args      []Value // argument list, parallel to a defun's arglist
	Docstring string
}

func NewByteFn(code []byte, constants []Value) *ByteFnBody {
	return &ByteFnBody{header: header{mutable: true}, Code: code, Constants: constants}
}

// BufferBody backs the text-editing side of spec.md (component C4's
// consumer): Name identifies the buffer, Metrics holds its B-tree
// index. The buffer's text and editing commands are not modeled; only
// the shape needed to root a metric.Tree inside the object graph is here.
type BufferBody struct {
	header
	Name string
	// Metrics is declared as `any` rather than *metric.Tree to avoid an
	// import cycle (package metric has no reason to depend on package
	// object); callers type-assert it to *metric.Tree themselves.
	Metrics any
}

func NewBuffer(name string) *BufferBody {
	return &BufferBody{header: header{mutable: true}, Name: name}
}
