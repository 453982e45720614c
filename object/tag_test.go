package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilIsZeroValue(t *testing.T) {
	var v Value
	assert.True(t, v.IsNil())
	assert.Equal(t, Nil, v)
	assert.Equal(t, TagSymbol, v.Tag())
}

func TestClampFixnum(t *testing.T) {
	require.Equal(t, MaxFixnum, NewInt(MaxFixnum+1000).IntValue())
	require.Equal(t, MinFixnum, NewInt(MinFixnum-1000).IntValue())
	assert.Equal(t, int64(42), NewInt(42).IntValue())
}

func TestPtrEqIntegersByValue(t *testing.T) {
	assert.True(t, NewInt(7).PtrEq(NewInt(7)))
	assert.False(t, NewInt(7).PtrEq(NewInt(8)))
}

func TestPtrEqConsByIdentity(t *testing.T) {
	a := NewBodyValue(TagCons, NewCons(NewInt(1), Nil))
	b := NewBodyValue(TagCons, NewCons(NewInt(1), Nil))
	assert.False(t, a.PtrEq(b), "structurally-equal but distinct cells must not be ptr-equal")
	assert.True(t, a.PtrEq(a))
}

func TestIsMarkable(t *testing.T) {
	assert.False(t, NewInt(1).IsMarkable())
	assert.False(t, NewBodyValue(TagSubrFn, NewSubrFn("car", 1, 1)).IsMarkable())
	assert.True(t, NewBodyValue(TagCons, NewCons(Nil, Nil)).IsMarkable())
}
