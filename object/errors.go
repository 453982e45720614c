package object

import "fmt"

// Error taxonomy for the object package, styled after the teacher's
// errors.go: small structs, Error() built with fmt.Sprintf, no
// wrapping library. The shape of the taxonomy itself (type/range/
// constant/borrow/void-function/void-variable) is spec.md §7's.

// TypeError reports that a Value did not have the tag a caller
// required, e.g. via TryAs[T].
type TypeError struct {
	Expected string
	Got      Tag
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("wrong-type-argument: expected %s, got %s", e.Expected, e.Got)
}

// RangeError reports an out-of-bounds index into a Vec/String/Record.
type RangeError struct {
	Index  int
	Length int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("args-out-of-range: index %d, length %d", e.Index, e.Length)
}

// ConstantError reports a mutation attempted against a body whose
// owning arena.Context has been frozen (spec.md §3.2's "writes to a
// body in a const sub-context must fail").
type ConstantError struct {
	Op string
}

func (e *ConstantError) Error() string {
	return fmt.Sprintf("setting-constant: %s on an immutable object", e.Op)
}

// BorrowError reports a structural mutation that would alias a body
// already being traversed (mirrors the Rust original's RefCell-style
// borrow checking, applied where Go's aliasing rules alone don't catch
// the conflict — e.g. in-place vector mutation during iteration).
type BorrowError struct {
	Op string
}

func (e *BorrowError) Error() string {
	return fmt.Sprintf("already borrowed: %s", e.Op)
}

// VoidFunctionError reports a call through a symbol with no function
// cell set.
type VoidFunctionError struct {
	Symbol string
}

func (e *VoidFunctionError) Error() string {
	return fmt.Sprintf("void-function: %s", e.Symbol)
}

// VoidVariableError reports a reference to an unbound variable.
type VoidVariableError struct {
	Symbol string
}

func (e *VoidVariableError) Error() string {
	return fmt.Sprintf("void-variable: %s", e.Symbol)
}
