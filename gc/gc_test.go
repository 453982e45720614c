package gc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilkalige/elunar/arena"
	"github.com/nikhilkalige/elunar/object"
	"github.com/nikhilkalige/elunar/symtab"
)

func TestCollectKeepsRootedGraph(t *testing.T) {
	ctx := arena.New()
	roots := NewRootSet()

	tail := ctx.AllocCons(object.NewInt(2), object.Nil)
	head := ctx.AllocCons(object.NewInt(1), tail)
	slot := roots.Push(head)

	garbage := ctx.AllocCons(object.NewInt(99), object.Nil)
	_ = garbage

	require.Equal(t, 3, ctx.Stats().Cons)
	Collect(roots, ctx)
	assert.Equal(t, 2, ctx.Stats().Cons, "only head and tail are reachable from the root")

	carValue, _ := object.TryAs[*object.ConsBody](slot.Get())
	assert.Equal(t, int64(1), carValue.Car.IntValue())
}

func TestCollectHandlesCycles(t *testing.T) {
	ctx := arena.New()
	roots := NewRootSet()

	a := ctx.AllocCons(object.Nil, object.Nil)
	b := ctx.AllocCons(object.Nil, object.Nil)
	aCons, _ := object.TryAs[*object.ConsBody](a)
	bCons, _ := object.TryAs[*object.ConsBody](b)
	_ = aCons.SetCdr(b)
	_ = bCons.SetCdr(a)

	roots.Push(a)
	require.Equal(t, 2, ctx.Stats().Cons)

	Collect(roots, ctx)

	assert.Equal(t, 2, ctx.Stats().Cons, "cyclic pair rooted via a survives whole")
}

// TestCollectTracesSymbolFunctionCell guards against a symbol's
// function cell going untraced: a Value reachable only through a
// rooted symbol's function cell, with no other root, must survive.
func TestCollectTracesSymbolFunctionCell(t *testing.T) {
	ctx := arena.New()
	roots := NewRootSet()
	table := symtab.New()

	sym := table.Intern("callback")
	body := table.Body(sym)

	fn := ctx.AllocCons(object.NewInt(42), object.Nil)
	body.Function = fn
	roots.Push(sym)

	_ = ctx.AllocCons(object.NewInt(99), object.Nil) // unrooted garbage

	require.Equal(t, 2, ctx.Stats().Cons)
	Collect(roots, ctx)
	assert.Equal(t, 1, ctx.Stats().Cons, "only the cons reachable via the symbol's function cell survives")

	carValue, err := object.TryAs[*object.ConsBody](body.Function)
	require.NoError(t, err)
	assert.Equal(t, int64(42), carValue.Car.IntValue())
}

func TestSlotBindReturnsCurrentValue(t *testing.T) {
	ctx := arena.New()
	roots := NewRootSet()

	v := ctx.AllocCons(object.NewInt(1), object.Nil)
	slot := roots.Push(v)

	bound := slot.Bind(ctx)
	assert.True(t, bound.PtrEq(v))

	v2 := ctx.AllocCons(object.NewInt(2), object.Nil)
	slot.Set(v2)
	assert.True(t, slot.Bind(ctx).PtrEq(v2), "bind reflects the slot's current binding, not a snapshot")
}

func TestRootSetCheckpointTruncate(t *testing.T) {
	roots := NewRootSet()
	roots.Push(object.NewInt(1))
	mark := roots.Checkpoint()
	roots.Push(object.NewInt(2))
	roots.Push(object.NewInt(3))
	assert.Equal(t, 3, roots.Len())
	roots.TruncateTo(mark)
	assert.Equal(t, 1, roots.Len())
}
