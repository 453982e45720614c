package metric

import "fmt"

// Tree is the public B-tree handle, grounded on the teacher's api.go
// (a thin exported wrapper — GrammarFromBytes, GrammarFromFile — over
// unexported grammar machinery): Tree exposes the operations spec.md
// §4.4 names, node.go carries the mechanics. Grounded directly on
// metric.rs's new_root/insert/delete/delete_range/search_byte/
// search_char public functions.
type Tree struct {
	root *node
}

// NewTree returns an empty tree. A brand new buffer still has one
// sentinel leaf entry of metric (0,0) — metric.rs's new_root does the
// same — so Delete never has to special-case "the very last entry",
// resolving the original's `todo!("delete final node")` (spec.md §9).
func NewTree() *Tree {
	return &Tree{root: newLeafNode([]Metric{{}})}
}

// Len returns the tree's total metric.
func (t *Tree) Len() Metric {
	return t.root.metric()
}

// Insert adds a new piece of metric m at byte offset pos
// (0 <= pos <= Len().Bytes). If pos falls strictly inside an existing
// piece, that piece is split into leading and trailing portions around
// the new one (see splitMetric). Mirrors metric.rs's insert/insert_impl: splits propagate up from the
// leaf, and a split at the root grows the tree by one level.
func (t *Tree) Insert(pos uint64, m Metric) error {
	total := t.root.metric()
	if pos > total.Bytes {
		return fmt.Errorf("metric: insert position %d exceeds length %d", pos, total.Bytes)
	}
	right, split := t.root.insert(pos, axisBytes, m)
	if split {
		t.root = newInternalNode([]*node{t.root, right})
	}
	return nil
}

// Delete removes the single piece covering byte offset pos.
func (t *Tree) Delete(pos uint64) error {
	total := t.root.metric()
	if pos >= total.Bytes {
		return fmt.Errorf("metric: delete position %d out of range (length %d)", pos, total.Bytes)
	}
	_, _ = t.root.deleteAt(pos, axisBytes)
	t.shrinkRoot()
	t.ensureSentinel()
	return nil
}

// DeleteRange removes every piece overlapping the byte range
// [start, end). Built out of repeated single-entry operations — each
// one already runs the full steal-before-merge rebalance in node.go —
// so the one-sided-underflow case metric.rs's delete_range left as
// `todo!()` in its internal-node branch never arises here: every
// underflow, whether triggered by a lone Delete or as one step of a
// range, is handled by the same rebalanceChild path (spec.md §9's
// "treat it symmetrically" resolution, realized structurally rather
// than as a special case).
//
// Per spec.md §4.4's boundary rule, an entry wholly inside [start, end)
// is removed outright; an edge entry only partially covered by the
// range keeps its piece but has its metric shrunk by the overlapping
// portion in place (mirroring metric.rs's `self.metrics[idx] -= ...`
// leaf-branch arithmetic), rather than being deleted wholesale.
func (t *Tree) DeleteRange(start, end uint64) error {
	if start > end {
		return fmt.Errorf("metric: invalid range [%d, %d)", start, end)
	}
	if start == end {
		return nil
	}
	for start < end {
		if start >= t.root.metric().Bytes {
			break
		}
		offset, m, found := t.root.searchEntry(start, axisBytes)
		if !found {
			break
		}
		entryEnd := offset + m.Bytes
		rangeEnd := end
		if rangeEnd > entryEnd {
			rangeEnd = entryEnd
		}

		if offset >= start && entryEnd <= end {
			// Wholly contained in [start, end): delete the whole piece.
			t.root.deleteAt(offset, axisBytes)
			t.shrinkRoot()
			// Deleting shifts every later entry down by the piece just
			// removed, so end (still in original coordinates) must shift
			// with it or the loop keeps comparing against a stale bound
			// and deletes past the intended range.
			end -= m.Bytes
			continue
		}

		// Only partially covered: shrink this entry in place by the
		// overlapping portion instead of removing it.
		relStart := uint64(0)
		if start > offset {
			relStart = start - offset
		}
		relEnd := rangeEnd - offset
		_, afterStart := splitMetric(m, relStart, axisBytes)
		deleted, _ := splitMetric(afterStart, relEnd-relStart, axisBytes)
		if !t.root.adjustEntry(offset, axisBytes, deleted, true) {
			break
		}
		end -= deleted.Bytes
	}
	t.ensureSentinel()
	return nil
}

// shrinkRoot collapses a root with exactly one internal child down by
// one level, the mirror image of insert's root-split growth.
func (t *Tree) shrinkRoot() {
	for !t.root.leaf && len(t.root.kids) == 1 {
		t.root = t.root.kids[0]
	}
}

// ensureSentinel guarantees the tree never has zero leaf entries at
// the root, per the Delete/DeleteRange resolution above.
func (t *Tree) ensureSentinel() {
	if t.root.leaf && len(t.root.entries) == 0 {
		t.root.entries = []Metric{{}}
	}
}

// SearchByBytes translates a byte offset to the corresponding char
// offset in O(log n): metric.rs's search_byte (search_impl<CHAR>
// called with a byte position).
func (t *Tree) SearchByBytes(bytePos uint64) (uint64, error) {
	total := t.root.metric()
	if bytePos > total.Bytes {
		return 0, fmt.Errorf("metric: byte position %d exceeds length %d", bytePos, total.Bytes)
	}
	return t.root.translate(bytePos, axisBytes, axisChars), nil
}

// SearchByChars translates a char offset to the corresponding byte
// offset in O(log n): metric.rs's search_char.
func (t *Tree) SearchByChars(charPos uint64) (uint64, error) {
	total := t.root.metric()
	if charPos > total.Chars {
		return 0, fmt.Errorf("metric: char position %d exceeds length %d", charPos, total.Chars)
	}
	return t.root.translate(charPos, axisChars, axisBytes), nil
}

// Add adjusts the metric of the single piece at byte offset pos by
// delta in place, without changing the tree's shape — metric.rs's
// `add`, used when a piece's own content grows without the number of
// pieces changing (e.g. appending to the last inserted run).
func (t *Tree) Add(pos uint64, delta Metric) error {
	return t.adjust(pos, delta, false)
}

// Remove is Add's inverse: metric.rs's `remove`.
func (t *Tree) Remove(pos uint64, delta Metric) error {
	return t.adjust(pos, delta, true)
}

func (t *Tree) adjust(pos uint64, delta Metric, negate bool) error {
	total := t.root.metric()
	if pos >= total.Bytes {
		return fmt.Errorf("metric: adjust position %d out of range (length %d)", pos, total.Bytes)
	}
	if !t.root.adjustEntry(pos, axisBytes, delta, negate) {
		return fmt.Errorf("metric: no piece at position %d", pos)
	}
	return nil
}

// AssertInvariants exposes node.go's structural check for tests and
// the cmd/elunar smoke test.
func (t *Tree) AssertInvariants() bool {
	return t.root.assertInvariants(true)
}
