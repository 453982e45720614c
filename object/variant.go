package object

// Go has no native sum type, so the "view" enums spec.md §3.1
// describes (ObjectType / NumberType / ListType / FunctionType in the
// Rust original, plus the string-like view) come back as small integer
// discriminants, one Kind type per view. A view reports only which
// variant v is; it carries no payload, and the body itself is reached
// through TryAs.

// ObjectKind discriminates the broadest view over a Value.
type ObjectKind uint8

const (
	ObjInt ObjectKind = iota
	ObjFloat
	ObjSymbol
	ObjCons
	ObjString
	ObjByteString
	ObjVec
	ObjRecord
	ObjHashTable
	ObjFunction
	ObjBuffer
)

// AsObject classifies v into the broadest variant. Every Tag maps to
// exactly one ObjectKind; SubrFn and ByteFn both fold into ObjFunction
// (spec.md's FunctionType union).
func (v Value) AsObject() ObjectKind {
	switch v.tag {
	case TagInt:
		return ObjInt
	case TagFloat:
		return ObjFloat
	case TagSymbol:
		return ObjSymbol
	case TagCons:
		return ObjCons
	case TagString:
		return ObjString
	case TagByteString:
		return ObjByteString
	case TagVec:
		return ObjVec
	case TagRecord:
		return ObjRecord
	case TagHashTable:
		return ObjHashTable
	case TagSubrFn, TagByteFn:
		return ObjFunction
	case TagBuffer:
		return ObjBuffer
	default:
		panic("object: unhandled tag in AsObject")
	}
}

// NumberKind narrows the numeric-tower view (spec.md's NumberType).
type NumberKind uint8

const (
	NumInt NumberKind = iota
	NumFloat
)

// AsNumber reports whether v is a number and, if so, which kind. ok is
// false for any non-numeric tag.
func (v Value) AsNumber() (kind NumberKind, ok bool) {
	switch v.tag {
	case TagInt:
		return NumInt, true
	case TagFloat:
		return NumFloat, true
	default:
		return 0, false
	}
}

// ListKind narrows the list view (spec.md's ListType): either nil or a
// cons cell, never anything else.
type ListKind uint8

const (
	ListNil ListKind = iota
	ListCons
)

// AsList reports whether v is list-shaped.
func (v Value) AsList() (kind ListKind, ok bool) {
	if v.IsNil() {
		return ListNil, true
	}
	if v.tag == TagCons {
		return ListCons, true
	}
	return 0, false
}

// FunctionKind narrows the callable view (spec.md's FunctionType:
// `{Cons, Symbol, SubrFn, ByteFn}`).
type FunctionKind uint8

const (
	FnSubr FunctionKind = iota
	FnByteCode
	FnSymbolIndirect
	FnLambda
)

// AsFunction reports whether v can appear in function position. A
// symbol is function-shaped indirectly — callers resolve through its
// function cell. A Cons is function-shaped directly: an uncompiled
// `(lambda ...)` form is itself callable, same as a SubrFn or ByteFn
// body (spec.md §3.1's FunctionType union lists Cons explicitly).
func (v Value) AsFunction() (kind FunctionKind, ok bool) {
	switch v.tag {
	case TagSubrFn:
		return FnSubr, true
	case TagByteFn:
		return FnByteCode, true
	case TagSymbol:
		return FnSymbolIndirect, true
	case TagCons:
		return FnLambda, true
	default:
		return 0, false
	}
}

// StringLikeKind narrows the text view (spec.md's combined String /
// ByteString handling).
type StringLikeKind uint8

const (
	StrUnicode StringLikeKind = iota
	StrBytes
)

// AsStringLike reports whether v holds text, and which representation.
func (v Value) AsStringLike() (kind StringLikeKind, ok bool) {
	switch v.tag {
	case TagString:
		return StrUnicode, true
	case TagByteString:
		return StrBytes, true
	default:
		return 0, false
	}
}
