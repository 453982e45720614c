package object

import "math"

// Equal is structural equality (Lisp `equal`), grounded on
// core/object/tagged.rs's display_walk cycle-guard pattern: a
// HashSet<*const u8> there becomes a map[[2]any]struct{} visited set
// here, keyed by the pair of body pointers being compared. Floats compare
// within a 2-ULP tolerance per spec.md §3.1's property-based testing
// note on float round-tripping.
func Equal(a, b Value) bool {
	return equalWalk(a, b, make(map[[2]any]struct{}))
}

func equalWalk(a, b Value, seen map[[2]any]struct{}) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case TagInt:
		return a.num == b.num
	case TagSymbol:
		return a.num == b.num
	case TagFloat:
		fa, fb := a.obj.(*FloatBody), b.obj.(*FloatBody)
		if fa == fb {
			return true
		}
		return ulpClose(fa.Val, fb.Val, 2)
	case TagString:
		return a.obj.(*StringBody).Text == b.obj.(*StringBody).Text
	case TagByteString:
		ba, bb := a.obj.(*ByteStringBody), b.obj.(*ByteStringBody)
		return string(ba.Bytes) == string(bb.Bytes)
	case TagSubrFn, TagByteFn:
		return a.obj == b.obj
	case TagBuffer:
		return a.obj == b.obj
	case TagCons:
		ca, cb := a.obj.(*ConsBody), b.obj.(*ConsBody)
		if ca == cb {
			return true
		}
		key := [2]any{ca, cb}
		if _, ok := seen[key]; ok {
			// Both sides have looped back to the same pair of cells:
			// treat as equal rather than recursing forever.
			return true
		}
		seen[key] = struct{}{}
		return equalWalk(ca.Car, cb.Car, seen) && equalWalk(ca.Cdr, cb.Cdr, seen)
	case TagVec:
		va, vb := a.obj.(*VecBody), b.obj.(*VecBody)
		if va == vb {
			return true
		}
		if len(va.Elems) != len(vb.Elems) {
			return false
		}
		key := [2]any{va, vb}
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
		for i := range va.Elems {
			if !equalWalk(va.Elems[i], vb.Elems[i], seen) {
				return false
			}
		}
		return true
	case TagRecord:
		ra, rb := a.obj.(*RecordBody), b.obj.(*RecordBody)
		if ra == rb {
			return true
		}
		if !equalWalk(ra.Type, rb.Type, seen) || len(ra.Fields) != len(rb.Fields) {
			return false
		}
		key := [2]any{ra, rb}
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
		for i := range ra.Fields {
			if !equalWalk(ra.Fields[i], rb.Fields[i], seen) {
				return false
			}
		}
		return true
	case TagHashTable:
		return a.obj == b.obj
	default:
		return false
	}
}

// Children returns v's immediate markable children, the edges the
// collector's mark phase walks (spec.md §4.3 "Mark": "trace into
// Cons.car/cdr, Vec elements, Record fields, a Symbol's function cell
// and plist"). Leaf tags return nil.
func Children(v Value) []Value {
	switch v.tag {
	case TagCons:
		c := v.obj.(*ConsBody)
		return []Value{c.Car, c.Cdr}
	case TagVec:
		return v.obj.(*VecBody).Elems
	case TagRecord:
		r := v.obj.(*RecordBody)
		out := make([]Value, 0, len(r.Fields)+1)
		out = append(out, r.Type)
		return append(out, r.Fields...)
	case TagHashTable:
		h := v.obj.(*HashTableBody)
		out := make([]Value, 0, h.Len()*2)
		for _, bucket := range h.buckets {
			for _, e := range bucket {
				out = append(out, e.key, e.val)
			}
		}
		return out
	case TagSymbol:
		sym := v.symbolBody()
		if sym == nil {
			return nil
		}
		return []Value{sym.Function, sym.Plist}
	case TagByteFn:
		fn := v.obj.(*ByteFnBody)
		out := make([]Value, 0, len(fn.Constants)+len(fn.Args))
		out = append(out, fn.Constants...)
		return append(out, fn.Args...)
	default:
		return nil
	}
}

func ulpClose(x, y float64, ulps int) bool {
	if x == y {
		return true
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return false
	}
	bx := math.Float64bits(x)
	by := math.Float64bits(y)
	var diff uint64
	if bx > by {
		diff = bx - by
	} else {
		diff = by - bx
	}
	return diff <= uint64(ulps)
}

// equalHash computes a hash consistent with Equal, for HashTableBody's
// bucketing. Pointer-bearing composite tags (Cons/Vec/Record) hash
// shallowly on length/arity rather than walking recursively — good
// enough to bucket, Equal still does the exact comparison within a
// bucket.
func equalHash(v Value) uint64 {
	const offset64 = 14695981039346656037
	const prime64 = 1099511628211
	h := uint64(offset64)
	mix := func(b byte) {
		h ^= uint64(b)
		h *= prime64
	}
	mixString := func(s string) {
		for i := 0; i < len(s); i++ {
			mix(s[i])
		}
	}
	mix(byte(v.tag))
	switch v.tag {
	case TagInt, TagSymbol:
		for i := 0; i < 8; i++ {
			mix(byte(v.num >> (8 * i)))
		}
	case TagFloat:
		bits := math.Float64bits(v.obj.(*FloatBody).Val)
		for i := 0; i < 8; i++ {
			mix(byte(bits >> (8 * i)))
		}
	case TagString:
		mixString(v.obj.(*StringBody).Text)
	case TagByteString:
		mixString(string(v.obj.(*ByteStringBody).Bytes))
	case TagCons:
		mix(1)
	case TagVec:
		mix(byte(len(v.obj.(*VecBody).Elems)))
	case TagRecord:
		mix(byte(len(v.obj.(*RecordBody).Fields)))
	default:
		// Functions, hash tables, buffers compare by pointer identity
		// in Equal; the tag byte already mixed in is bucket enough.
	}
	return h
}
