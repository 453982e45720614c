package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsSetCarFailsWhenFrozen(t *testing.T) {
	c := NewCons(NewInt(1), NewInt(2))
	require.NoError(t, c.SetCar(NewInt(9)))

	v := NewBodyValue(TagCons, c)
	v.Freeze()
	err := c.SetCar(NewInt(3))
	assert.Error(t, err)
	var constErr *ConstantError
	assert.ErrorAs(t, err, &constErr)
}

func TestVecSetBoundsCheck(t *testing.T) {
	vec := NewVec([]Value{NewInt(1), NewInt(2)})
	require.NoError(t, vec.Set(0, NewInt(9)))
	err := vec.Set(5, NewInt(1))
	assert.Error(t, err)
	var rangeErr *RangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestHashTablePutGet(t *testing.T) {
	h := NewHashTable()
	key := NewBodyValue(TagString, NewString("k"))
	require.NoError(t, h.Put(key, NewInt(42)))

	key2 := NewBodyValue(TagString, NewString("k"))
	got, ok := h.Get(key2)
	require.True(t, ok)
	assert.Equal(t, int64(42), got.IntValue())
	assert.Equal(t, 1, h.Len())
}

func TestVecSetRejectsReentrantMutation(t *testing.T) {
	vec := NewVec([]Value{NewInt(1), NewInt(2)})
	err := vec.Do(func(i int, v Value) error {
		return vec.Set(0, NewInt(9))
	})
	assert.Error(t, err)
	var borrowErr *BorrowError
	assert.ErrorAs(t, err, &borrowErr)

	// Once Do returns, normal mutation works again.
	assert.NoError(t, vec.Set(0, NewInt(9)))
}

func TestHashTablePutRejectsReentrantMutation(t *testing.T) {
	h := NewHashTable()
	key := NewBodyValue(TagString, NewString("k"))
	require.NoError(t, h.Put(key, NewInt(1)))

	err := h.Do(func(k, v Value) error {
		return h.Put(key, NewInt(2))
	})
	assert.Error(t, err)
	var borrowErr *BorrowError
	assert.ErrorAs(t, err, &borrowErr)

	assert.NoError(t, h.Put(key, NewInt(2)))
}

func TestMarkAndSweepBits(t *testing.T) {
	c := NewCons(Nil, Nil)
	v := NewBodyValue(TagCons, c)
	assert.False(t, v.Marked())
	v.Mark()
	assert.True(t, v.Marked())
	v.ClearMark()
	assert.False(t, v.Marked())
}
