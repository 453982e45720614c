package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilkalige/elunar/object"
)

func TestAllocConsIsMutableByDefault(t *testing.T) {
	ctx := New()
	v := ctx.AllocCons(object.NewInt(1), object.Nil)
	c, err := object.TryAs[*object.ConsBody](v)
	require.NoError(t, err)
	assert.NoError(t, c.SetCar(object.NewInt(2)))
}

func TestMakeConstFreezesAllocatedBodies(t *testing.T) {
	ctx := New()
	v := ctx.AllocCons(object.NewInt(1), object.Nil)
	ctx.MakeConst()

	c, _ := object.TryAs[*object.ConsBody](v)
	assert.Error(t, c.SetCar(object.NewInt(9)), "body allocated before MakeConst must freeze")

	// Allocations made after MakeConst are born frozen too.
	v2 := ctx.AllocCons(object.NewInt(3), object.Nil)
	c2, _ := object.TryAs[*object.ConsBody](v2)
	assert.Error(t, c2.SetCar(object.NewInt(9)))
}

func TestMakeConstPropagatesToSubContexts(t *testing.T) {
	parent := New()
	child := parent.Sub()
	v := child.AllocString("x")
	parent.MakeConst()

	s, _ := object.TryAs[*object.StringBody](v)
	assert.False(t, s.Mutable())
}

func TestSweepReclaimsUnmarked(t *testing.T) {
	ctx := New()
	live := ctx.AllocCons(object.NewInt(1), object.Nil)
	_ = ctx.AllocCons(object.NewInt(2), object.Nil) // never rooted

	live.Mark()
	stats := ctx.Stats()
	require.Equal(t, 2, stats.Cons)

	ctx.Sweep()
	assert.Equal(t, 1, ctx.Stats().Cons)
}

func TestSweepReclaimsUnmarkedFloat(t *testing.T) {
	ctx := New()
	live := ctx.AllocFloat(1.5)
	_ = ctx.AllocFloat(2.5) // never rooted

	live.Mark()
	require.Equal(t, 2, ctx.Stats().Floats)

	ctx.Sweep()
	assert.Equal(t, 1, ctx.Stats().Floats, "an unreachable float is reclaimed like any other body")
}
