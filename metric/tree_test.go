package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInsertGrowsAndSplits ports metric.rs's test_insert: enough
// inserts to force the root to split at least once, and invariants
// must hold throughout.
func TestInsertGrowsAndSplits(t *testing.T) {
	tree := NewTree()
	for i := 0; i < 32; i++ {
		require.NoError(t, tree.Insert(tree.Len().Bytes, Metric{Bytes: 3, Chars: 1}))
		require.True(t, tree.AssertInvariants())
	}
	assert.Equal(t, uint64(96), tree.Len().Bytes)
	assert.Equal(t, uint64(32), tree.Len().Chars)
}

// TestPushAppendsAtEnd ports metric.rs's test_push.
func TestPushAppendsAtEnd(t *testing.T) {
	tree := NewTree()
	for i := 0; i < 10; i++ {
		require.NoError(t, tree.Insert(tree.Len().Bytes, Metric{Bytes: 2, Chars: 2}))
	}
	assert.Equal(t, uint64(20), tree.Len().Bytes)
	require.True(t, tree.AssertInvariants())
}

// TestSearchBytesToChars ports metric.rs's test_search: translating a
// byte offset that lands exactly on a piece boundary must be exact.
func TestSearchBytesToChars(t *testing.T) {
	tree := NewTree()
	// Pieces: 2 bytes/1 char (e.g. a 2-byte UTF-8 rune) repeated.
	for i := 0; i < 5; i++ {
		require.NoError(t, tree.Insert(tree.Len().Bytes, Metric{Bytes: 2, Chars: 1}))
	}
	for i := 0; i <= 5; i++ {
		got, err := tree.SearchByBytes(uint64(i * 2))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), got)
	}
}

// TestSearchCharsToBytes ports metric.rs's test_search_chars.
func TestSearchCharsToBytes(t *testing.T) {
	tree := NewTree()
	for i := 0; i < 5; i++ {
		require.NoError(t, tree.Insert(tree.Len().Bytes, Metric{Bytes: 3, Chars: 1}))
	}
	for i := 0; i <= 5; i++ {
		got, err := tree.SearchByChars(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, uint64(i*3), got)
	}
}

// TestAddAdjustsInPlace ports metric.rs's test_add.
func TestAddAdjustsInPlace(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Insert(0, Metric{Bytes: 4, Chars: 2}))
	require.NoError(t, tree.Add(0, Metric{Bytes: 2, Chars: 1}))
	assert.Equal(t, Metric{Bytes: 6, Chars: 3}, tree.Len())
}

// TestRemoveAdjustsInPlace ports metric.rs's test_remove.
func TestRemoveAdjustsInPlace(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Insert(0, Metric{Bytes: 4, Chars: 2}))
	require.NoError(t, tree.Remove(0, Metric{Bytes: 1, Chars: 1}))
	assert.Equal(t, Metric{Bytes: 3, Chars: 1}, tree.Len())
}

// TestDeleteLeaf ports metric.rs's test_delete: deleting within a
// single leaf, no rebalancing needed.
func TestDeleteLeaf(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Insert(0, Metric{Bytes: 2, Chars: 1}))
	require.NoError(t, tree.Insert(2, Metric{Bytes: 2, Chars: 1}))
	require.NoError(t, tree.Delete(0))
	assert.Equal(t, uint64(2), tree.Len().Bytes)
	require.True(t, tree.AssertInvariants())
}

// TestDeleteFinalPieceLeavesSentinel resolves the Rust original's
// `todo!("delete final node")`: deleting the only remaining piece
// never leaves an empty tree.
func TestDeleteFinalPieceLeavesSentinel(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Insert(0, Metric{Bytes: 5, Chars: 5}))
	require.NoError(t, tree.Delete(0))
	assert.Equal(t, Metric{}, tree.Len())
	require.True(t, tree.AssertInvariants())
	// Tree is still usable afterwards.
	require.NoError(t, tree.Insert(0, Metric{Bytes: 1, Chars: 1}))
	assert.Equal(t, uint64(1), tree.Len().Bytes)
}

// TestDeleteRangeAcrossLeaves ports metric.rs's
// test_delete_range_leaf.
func TestDeleteRangeAcrossLeaves(t *testing.T) {
	tree := NewTree()
	for i := 0; i < 4; i++ {
		require.NoError(t, tree.Insert(tree.Len().Bytes, Metric{Bytes: 2, Chars: 1}))
	}
	require.NoError(t, tree.DeleteRange(2, 6)) // removes pieces 2 and 3
	assert.Equal(t, uint64(4), tree.Len().Bytes)
	require.True(t, tree.AssertInvariants())
}

// TestDeleteRangeForcesRebalance ports metric.rs's
// test_delete_range_internal: enough pieces that the range spans
// multiple internal nodes and triggers steal/merge.
func TestDeleteRangeForcesRebalance(t *testing.T) {
	tree := NewTree()
	for i := 0; i < 40; i++ {
		require.NoError(t, tree.Insert(tree.Len().Bytes, Metric{Bytes: 2, Chars: 1}))
	}
	require.True(t, tree.AssertInvariants())

	require.NoError(t, tree.DeleteRange(10, 70))
	require.True(t, tree.AssertInvariants())
	assert.Equal(t, uint64(80-60), tree.Len().Bytes)
}

func TestDeleteRangeRejectsInverted(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Insert(0, Metric{Bytes: 4, Chars: 2}))
	assert.Error(t, tree.DeleteRange(3, 1))
}

func TestInsertRejectsOutOfBounds(t *testing.T) {
	tree := NewTree()
	assert.Error(t, tree.Insert(100, Metric{Bytes: 1, Chars: 1}))
}

// TestInsertSplitsMidEntry covers a position that lands strictly
// inside an existing piece rather than on a boundary: the piece must
// split into its leading and trailing portions around the new insert,
// not simply get appended after.
func TestInsertSplitsMidEntry(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Insert(0, Metric{Bytes: 10, Chars: 5}))

	require.NoError(t, tree.Insert(5, Metric{Bytes: 2, Chars: 1}))
	require.True(t, tree.AssertInvariants())

	assert.Equal(t, Metric{Bytes: 12, Chars: 6}, tree.Len())

	// Boundary before the new piece: only the split's leading portion.
	got, err := tree.SearchByBytes(5)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got)

	// Boundary after the new piece: leading + the inserted piece.
	got, err = tree.SearchByBytes(7)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got)

	got, err = tree.SearchByBytes(12)
	require.NoError(t, err)
	assert.Equal(t, uint64(6), got)
}

// TestDeleteRangePartiallyTruncatesEdgeEntries covers a range whose
// start and end both fall strictly inside the pieces at either edge:
// those pieces must shrink in place rather than being deleted whole,
// per spec.md §4.4's boundary rule.
func TestDeleteRangePartiallyTruncatesEdgeEntries(t *testing.T) {
	tree := NewTree()
	for i := 0; i < 3; i++ {
		require.NoError(t, tree.Insert(tree.Len().Bytes, Metric{Bytes: 4, Chars: 4}))
	}
	require.Equal(t, Metric{Bytes: 12, Chars: 12}, tree.Len())

	// Removes the last 2 bytes of piece 0, all of piece 1, and the
	// first 2 bytes of piece 2.
	require.NoError(t, tree.DeleteRange(2, 10))
	require.True(t, tree.AssertInvariants())

	assert.Equal(t, Metric{Bytes: 4, Chars: 4}, tree.Len())
	got, err := tree.SearchByBytes(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got, "the two surviving edge fragments are 2 bytes each")
}

// TestDeleteRangeMidSingleEntry covers start and end both falling
// inside the same piece, with no whole piece between them.
func TestDeleteRangeMidSingleEntry(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Insert(0, Metric{Bytes: 10, Chars: 10}))

	require.NoError(t, tree.DeleteRange(3, 7))
	require.True(t, tree.AssertInvariants())

	assert.Equal(t, Metric{Bytes: 6, Chars: 6}, tree.Len())
}
