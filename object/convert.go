package object

// TryAs narrows v to a Go type T, grounded on core/object/tagged.rs's
// blanket TryFrom<Object<'ob>> impls (one arm per target type, each
// failing with a typed error carrying the expected type name). Go has
// no `From`/`TryFrom` traits, so this is a single generic function
// dispatching on T via a type switch over T's zero value, which the
// compiler specializes per instantiation.
func TryAs[T any](v Value) (T, error) {
	var zero T
	switch any(zero).(type) {
	case int64:
		if v.tag != TagInt {
			return zero, &TypeError{Expected: "integer", Got: v.tag}
		}
		return any(v.num).(T), nil
	case float64:
		if v.tag != TagFloat {
			return zero, &TypeError{Expected: "float", Got: v.tag}
		}
		return any(v.obj.(*FloatBody).Val).(T), nil
	case string:
		switch v.tag {
		case TagString:
			return any(v.obj.(*StringBody).Text).(T), nil
		case TagByteString:
			return any(string(v.obj.(*ByteStringBody).Bytes)).(T), nil
		default:
			return zero, &TypeError{Expected: "string", Got: v.tag}
		}
	case *ConsBody:
		if v.tag != TagCons {
			return zero, &TypeError{Expected: "cons", Got: v.tag}
		}
		return any(v.obj.(*ConsBody)).(T), nil
	case *StringBody:
		if v.tag != TagString {
			return zero, &TypeError{Expected: "string", Got: v.tag}
		}
		return any(v.obj.(*StringBody)).(T), nil
	case *ByteStringBody:
		if v.tag != TagByteString {
			return zero, &TypeError{Expected: "byte-string", Got: v.tag}
		}
		return any(v.obj.(*ByteStringBody)).(T), nil
	case *VecBody:
		if v.tag != TagVec {
			return zero, &TypeError{Expected: "vector", Got: v.tag}
		}
		return any(v.obj.(*VecBody)).(T), nil
	case *RecordBody:
		if v.tag != TagRecord {
			return zero, &TypeError{Expected: "record", Got: v.tag}
		}
		return any(v.obj.(*RecordBody)).(T), nil
	case *HashTableBody:
		if v.tag != TagHashTable {
			return zero, &TypeError{Expected: "hash-table", Got: v.tag}
		}
		return any(v.obj.(*HashTableBody)).(T), nil
	case *SubrFnBody:
		if v.tag != TagSubrFn {
			return zero, &TypeError{Expected: "subr", Got: v.tag}
		}
		return any(v.obj.(*SubrFnBody)).(T), nil
	case *ByteFnBody:
		if v.tag != TagByteFn {
			return zero, &TypeError{Expected: "compiled-function", Got: v.tag}
		}
		return any(v.obj.(*ByteFnBody)).(T), nil
	case *BufferBody:
		if v.tag != TagBuffer {
			return zero, &TypeError{Expected: "buffer", Got: v.tag}
		}
		return any(v.obj.(*BufferBody)).(T), nil
	case bool:
		// Any non-nil value is truthy in Lisp terms.
		return any(!v.IsNil()).(T), nil
	default:
		return zero, &TypeError{Expected: "unsupported conversion target", Got: v.tag}
	}
}

// MustAs is TryAs without the error return, for call sites that have
// already validated the tag (e.g. inside a switch keyed on v.Tag()).
// It panics on mismatch, matching spec.md §7's "programmer errors
// panic" policy (also used by the teacher's config.go Get* methods).
func MustAs[T any](v Value) T {
	t, err := TryAs[T](v)
	if err != nil {
		panic(err)
	}
	return t
}

// NewBodyValue tags a freshly-allocated body. Package arena is the
// primary caller: it owns body lifetime and calls this once per
// allocation to produce the Value handed back to Lisp code.
func NewBodyValue[T any](tag Tag, body *T) Value {
	return newBodyValue(tag, body)
}
