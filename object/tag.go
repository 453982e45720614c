// Package object implements the tagged-pointer value model every Lisp
// value in the interpreter core flows through (component C1), plus the
// object bodies that sit behind pointer-bearing tags (component C1/C2
// boundary) and the structural-equality, display, and error machinery
// built on top of them.
package object

import (
	"fmt"
	"math"
)

// Tag is the low-byte discriminant of a Value. Symbol must stay zero
// so that the zero Value is the canonical nil handle.
type Tag uint8

const (
	TagSymbol Tag = iota
	TagInt
	TagFloat
	TagCons
	TagString
	TagByteString
	TagVec
	TagRecord
	TagHashTable
	TagSubrFn
	TagByteFn
	TagBuffer
)

func (t Tag) String() string {
	switch t {
	case TagSymbol:
		return "symbol"
	case TagInt:
		return "integer"
	case TagFloat:
		return "float"
	case TagCons:
		return "cons"
	case TagString:
		return "string"
	case TagByteString:
		return "byte-string"
	case TagVec:
		return "vector"
	case TagRecord:
		return "record"
	case TagHashTable:
		return "hash-table"
	case TagSubrFn:
		return "subr"
	case TagByteFn:
		return "compiled-function"
	case TagBuffer:
		return "buffer"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}

// MaxFixnum and MinFixnum bound the representable integer payload: a
// 64 bit word with 8 bits reserved for the tag, sign-extended after an
// arithmetic right shift of 8 (spec.md §3.1).
const (
	MaxFixnum = int64(math.MaxInt64) >> 8
	MinFixnum = int64(math.MinInt64) >> 8
)

// Value is a machine-word-sized handle: every Lisp value is one of
// these. It does not literally pack a pointer into the low bits of a
// machine word the way the Rust original does (Gc<T> in
// core/object/tagged.rs) — Go gives us no sound way to hide an object
// pointer from its own GC inside an integer and hand it back later.
// Instead the tag is carried alongside the payload, which is either an
// int64 (Int payload, or interned Symbol id) or a typed body pointer
// boxed in `obj`. This is the "implementation may instead store an
// untagged pointer" rendition spec.md §3.1 explicitly allows.
type Value struct {
	tag Tag
	obj any   // body pointer for Cons/String/ByteString/Vec/Record/HashTable/Float/ByteFn/Buffer/SubrFn; nil for Int and Symbol
	num int64 // Int payload (already clamped) or Symbol intern id
}

// Tag returns the low-byte discriminant of the handle.
func (v Value) Tag() Tag { return v.tag }

// IsNil reports whether v is the canonical nil handle: the all-zero
// Value, which is also the symbol named "nil" (spec.md §3.1).
func (v Value) IsNil() bool {
	return v.tag == TagSymbol && v.obj == nil && v.num == 0
}

// PtrEq compares tag and address bits, the primitive Lisp `eq` is
// built on. Two Int values with the same payload are ptr-equal because
// fixnums are immediate — they don't have independent identities.
func (v Value) PtrEq(other Value) bool {
	if v.tag != other.tag {
		return false
	}
	switch v.tag {
	case TagInt:
		return v.num == other.num
	case TagSymbol:
		return v.num == other.num && v.obj == other.obj
	default:
		return v.obj == other.obj
	}
}

// NewInt clamps i to [MinFixnum, MaxFixnum] rather than truncating or
// wrapping (spec.md §3.1, §8 property 2).
func NewInt(i int64) Value {
	switch {
	case i > MaxFixnum:
		i = MaxFixnum
	case i < MinFixnum:
		i = MinFixnum
	}
	return Value{tag: TagInt, num: i}
}

// IntValue returns the fixnum payload. The caller must have already
// established v.Tag() == TagInt, e.g. via TryAs[int64].
func (v Value) IntValue() int64 { return v.num }

// Nil is the canonical nil handle.
var Nil = Value{}

// NewSymbolValue tags a previously-interned symbol id. Called by
// package symtab, which owns the name->id table (spec.md §5); kept
// here so Value's zero-allocation encoding stays a single place. Id 0
// is reserved for nil itself.
func NewSymbolValue(id int64) Value {
	if id == 0 {
		return Nil
	}
	return Value{tag: TagSymbol, num: id}
}

// SymbolID returns the intern id backing a Symbol-tagged value. The
// nil symbol is id 0 by construction (spec.md §3.1).
func (v Value) SymbolID() int64 { return v.num }

// IsMarkable reports whether v's body lives on the GC-managed heap.
// Integers and subrs are immediate / process-wide and are skipped by
// mark (spec.md §4.3 "Mark").
func (v Value) IsMarkable() bool {
	return v.tag != TagInt && v.tag != TagSubrFn
}

func newBodyValue(tag Tag, body any) Value {
	return Value{tag: tag, obj: body}
}
