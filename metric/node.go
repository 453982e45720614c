package metric

// node is either an internal node (children are other nodes) or a
// leaf (children are raw Metric entries, one per inserted piece).
// Ported in spirit from metric.rs's `Children` enum
// (Internal(IntChildren) | Leaf(LeafChildren)): Go has no enum, so the
// split is a bool flag plus two parallel-but-mutually-exclusive
// slices, mirroring the teacher's own preference (tree.go's `node`
// struct) for a flat struct over an interface hierarchy when the set
// of shapes is small and closed.
type node struct {
	leaf bool

	entries []Metric // populated iff leaf

	kids      []*node // populated iff internal
	kidMetric []Metric
}

func newLeafNode(entries []Metric) *node {
	return &node{leaf: true, entries: entries}
}

func newInternalNode(kids []*node) *node {
	n := &node{leaf: false, kids: kids}
	n.recomputeKidMetrics()
	return n
}

func (n *node) recomputeKidMetrics() {
	n.kidMetric = make([]Metric, len(n.kids))
	for i, k := range n.kids {
		n.kidMetric[i] = k.metric()
	}
}

// metric returns the subtree's total, matching metric.rs's pattern of
// recomputing a node's total as the Sum of its children on demand
// rather than caching it redundantly at every level.
func (n *node) metric() Metric {
	if n.leaf {
		return Sum(n.entries)
	}
	return Sum(n.kidMetric)
}

func (n *node) numChildren() int {
	if n.leaf {
		return len(n.entries)
	}
	return len(n.kids)
}

// locateChildIndex finds which child covers pos along axis, and pos's
// offset relative to that child's start. pos == the subtree's total
// along axis routes to the last child (needed so Insert at the very
// end lands there, matching metric.rs's push_leaf fast path).
func (n *node) locateChildIndex(pos uint64, axis searchAxis) (int, uint64) {
	var cum uint64
	for i, m := range n.kidMetric {
		v := axis.of(m)
		if i == len(n.kidMetric)-1 || pos < cum+v {
			return i, pos - cum
		}
		cum += v
	}
	return 0, pos
}

// locateInsertSplitLeaf finds where pos falls among n.entries. If pos
// lands exactly on an existing entry boundary, insertIdx is the index
// to insert before and splitIdx is -1. If pos falls strictly inside an
// entry, splitIdx names that entry and offset is pos's distance (along
// axis) from the entry's own start — the caller must split that entry
// rather than simply inserting before or after it (spec.md §4.4
// "Point insert" step 2).
func (n *node) locateInsertSplitLeaf(pos uint64, axis searchAxis) (insertIdx, splitIdx int, offset uint64) {
	var cum uint64
	for i, m := range n.entries {
		v := axis.of(m)
		if cum == pos {
			return i, -1, 0
		}
		if pos < cum+v {
			return -1, i, pos - cum
		}
		cum += v
	}
	return len(n.entries), -1, 0
}

// splitMetric divides m into a leading and trailing portion at offset
// (measured along axis). The tree only ever sees aggregate (bytes,
// chars) counts, never the underlying text, so it cannot know the
// exact char count up to a given byte offset inside a piece; this
// assumes a uniform distribution across m and interpolates the other
// axis proportionally, the same approximation translate already makes
// for search.
func splitMetric(m Metric, offset uint64, axis searchAxis) (leading, trailing Metric) {
	total := axis.of(m)
	if total == 0 {
		return Metric{}, m
	}
	var other searchAxis
	if axis == axisBytes {
		other = axisChars
	} else {
		other = axisBytes
	}
	otherTotal := other.of(m)
	otherOffset := (offset * otherTotal) / total
	if axis == axisBytes {
		leading = Metric{Bytes: offset, Chars: otherOffset}
	} else {
		leading = Metric{Bytes: otherOffset, Chars: offset}
	}
	return leading, m.Sub(leading)
}

// locateEntryIndex finds the entry containing pos, and that entry's
// starting offset. Returns -1 if pos is at or past the node's total.
func (n *node) locateEntryIndex(pos uint64, axis searchAxis) (int, uint64) {
	var cum uint64
	for i, m := range n.entries {
		v := axis.of(m)
		if pos < cum+v {
			return i, cum
		}
		cum += v
	}
	return -1, cum
}

// insert descends to the leaf covering pos and inserts m there,
// splitting any node that overflows maxChildren on the way back up.
// Mirrors metric.rs's insert_impl / insert_leaf / insert_internal
// triad: a single recursive function playing all three roles, split
// by the leaf/internal flag instead of by separate methods, since
// Go's lack of an enum match makes one function with a branch read
// more naturally than three near-duplicates.
func (n *node) insert(pos uint64, axis searchAxis, m Metric) (right *node, ok bool) {
	if n.leaf {
		insertIdx, splitIdx, offset := n.locateInsertSplitLeaf(pos, axis)
		if splitIdx >= 0 {
			// pos falls strictly inside entries[splitIdx]: split it into
			// its leading and trailing portions, with the new piece m
			// inserted at the boundary the split creates between them.
			leading, trailing := splitMetric(n.entries[splitIdx], offset, axis)
			grown := make([]Metric, 0, len(n.entries)+2)
			grown = append(grown, n.entries[:splitIdx]...)
			grown = append(grown, leading, m, trailing)
			grown = append(grown, n.entries[splitIdx+1:]...)
			n.entries = grown
		} else {
			n.entries = append(n.entries, Metric{})
			copy(n.entries[insertIdx+1:], n.entries[insertIdx:])
			n.entries[insertIdx] = m
		}
		if len(n.entries) <= maxChildren {
			return nil, false
		}
		mid := len(n.entries) / 2
		rightEntries := append([]Metric(nil), n.entries[mid:]...)
		n.entries = n.entries[:mid:mid]
		return newLeafNode(rightEntries), true
	}

	idx, childPos := n.locateChildIndex(pos, axis)
	child := n.kids[idx]
	rightChild, split := child.insert(childPos, axis, m)
	n.kidMetric[idx] = child.metric()
	if !split {
		return nil, false
	}

	n.kids = append(n.kids, nil)
	copy(n.kids[idx+2:], n.kids[idx+1:])
	n.kids[idx+1] = rightChild

	n.kidMetric = append(n.kidMetric, Metric{})
	copy(n.kidMetric[idx+2:], n.kidMetric[idx+1:])
	n.kidMetric[idx+1] = rightChild.metric()

	if len(n.kids) <= maxChildren {
		return nil, false
	}
	mid := len(n.kids) / 2
	rightKids := append([]*node(nil), n.kids[mid:]...)
	n.kids = n.kids[:mid:mid]
	n.kidMetric = n.kidMetric[:mid:mid]
	return newInternalNode(rightKids), true
}

// pushLeaf is the metric.rs push_leaf counterpart: it appends m at the
// very end by inserting at the subtree's total byte length, with
// insert's usual split-on-overflow.
func (n *node) pushLeaf(m Metric) (right *node, ok bool) {
	return n.insert(axisBytes.of(n.metric()), axisBytes, m)
}

// deleteAt removes the single entry covering pos, reporting whether
// anything was found and whether n now has fewer than minChildren
// (and so needs rebalancing by its parent — spec.md §4.4's
// steal-before-merge discipline, applied by the caller one level up).
func (n *node) deleteAt(pos uint64, axis searchAxis) (deleted, underflow bool) {
	if n.leaf {
		idx, _ := n.locateEntryIndex(pos, axis)
		if idx < 0 {
			return false, false
		}
		n.entries = append(n.entries[:idx], n.entries[idx+1:]...)
		return true, len(n.entries) < minChildren
	}

	idx, childPos := n.locateChildIndex(pos, axis)
	child := n.kids[idx]
	deleted, childUnderflow := child.deleteAt(childPos, axis)
	if !deleted {
		return false, false
	}
	n.kidMetric[idx] = child.metric()
	if childUnderflow {
		n.rebalanceChild(idx)
	}
	return true, n.numChildren() < minChildren
}

// rebalanceChild restores the invariant for n.kids[idx] after it fell
// below minChildren: try stealing one element from a sibling that can
// spare it (tryStealLeft, then tryStealRight), merge with a neighbor
// only if neither can. Grounded on metric.rs's
// try_steal_left/try_steal_right/merge_children, same precedence
// order.
func (n *node) rebalanceChild(idx int) {
	if n.tryStealLeft(idx) {
		return
	}
	if n.tryStealRight(idx) {
		return
	}
	n.mergeChildren(idx)
}

func (n *node) tryStealLeft(idx int) bool {
	if idx == 0 {
		return false
	}
	left, child := n.kids[idx-1], n.kids[idx]
	if left.numChildren() <= minChildren {
		return false
	}
	if child.leaf {
		last := left.entries[len(left.entries)-1]
		left.entries = left.entries[:len(left.entries)-1]
		child.entries = append([]Metric{last}, child.entries...)
	} else {
		last := left.kids[len(left.kids)-1]
		left.kids = left.kids[:len(left.kids)-1]
		left.kidMetric = left.kidMetric[:len(left.kidMetric)-1]
		child.kids = append([]*node{last}, child.kids...)
		child.kidMetric = append([]Metric{last.metric()}, child.kidMetric...)
	}
	n.kidMetric[idx-1] = left.metric()
	n.kidMetric[idx] = child.metric()
	return true
}

func (n *node) tryStealRight(idx int) bool {
	if idx == len(n.kids)-1 {
		return false
	}
	child, right := n.kids[idx], n.kids[idx+1]
	if right.numChildren() <= minChildren {
		return false
	}
	if child.leaf {
		first := right.entries[0]
		right.entries = right.entries[1:]
		child.entries = append(child.entries, first)
	} else {
		first := right.kids[0]
		right.kids = right.kids[1:]
		right.kidMetric = right.kidMetric[1:]
		child.kids = append(child.kids, first)
		child.kidMetric = append(child.kidMetric, first.metric())
	}
	n.kidMetric[idx] = child.metric()
	n.kidMetric[idx+1] = right.metric()
	return true
}

// mergeChildren folds n.kids[idx+1] into n.kids[idx] (merging right
// into left, matching metric.rs's merge_children preference) and
// removes the now-empty right slot.
func (n *node) mergeChildren(idx int) {
	if idx == len(n.kids)-1 {
		idx--
	}
	left, right := n.kids[idx], n.kids[idx+1]
	if left.leaf {
		left.entries = append(left.entries, right.entries...)
	} else {
		left.kids = append(left.kids, right.kids...)
		left.kidMetric = append(left.kidMetric, right.kidMetric...)
	}
	n.kids = append(n.kids[:idx+1], n.kids[idx+2:]...)
	n.kidMetric = append(n.kidMetric[:idx+1], n.kidMetric[idx+2:]...)
	n.kidMetric[idx] = left.metric()
}

// searchEntry finds the entry covering pos, returning its absolute
// start offset (along axis) and its metric. found is false once pos
// reaches or passes the subtree's total.
func (n *node) searchEntry(pos uint64, axis searchAxis) (offset uint64, m Metric, found bool) {
	if n.leaf {
		idx, off := n.locateEntryIndex(pos, axis)
		if idx < 0 {
			return 0, Metric{}, false
		}
		return off, n.entries[idx], true
	}
	idx, childPos := n.locateChildIndex(pos, axis)
	var cum uint64
	for i := 0; i < idx; i++ {
		cum += axis.of(n.kidMetric[i])
	}
	off, m, found := n.kids[idx].searchEntry(childPos, axis)
	return cum + off, m, found
}

// translate converts a position measured along `from` into the
// corresponding position along `to`, interpolating proportionally
// within whichever atomic piece pos lands inside. Grounded on
// metric.rs's search_impl<TYPE> const-generic dispatch, collapsed here
// into one function parameterized by two searchAxis values instead of
// two near-identical copies (search_byte / search_char in the
// original).
func (n *node) translate(pos uint64, from, to searchAxis) uint64 {
	if n.leaf {
		idx, off := n.locateEntryIndex(pos, from)
		if idx < 0 {
			return to.of(n.metric())
		}
		var cumTo uint64
		for i := 0; i < idx; i++ {
			cumTo += to.of(n.entries[i])
		}
		entryFrom := from.of(n.entries[idx])
		entryTo := to.of(n.entries[idx])
		if entryFrom == 0 {
			return cumTo
		}
		within := pos - off
		return cumTo + (within*entryTo)/entryFrom
	}
	idx, childPos := n.locateChildIndex(pos, from)
	var cumTo uint64
	for i := 0; i < idx; i++ {
		cumTo += to.of(n.kidMetric[i])
	}
	return cumTo + n.kids[idx].translate(childPos, from, to)
}

// adjustEntry adds (or, if negate, subtracts) delta to/from the single
// piece covering pos, in place, without reshaping the tree. Grounded
// on metric.rs's add/remove, which likewise mutate a leaf's metric
// directly; on the way back up, each internal node on the path
// refreshes its cached kidMetric entry for the child it descended into.
func (n *node) adjustEntry(pos uint64, axis searchAxis, delta Metric, negate bool) bool {
	if n.leaf {
		idx, _ := n.locateEntryIndex(pos, axis)
		if idx < 0 {
			return false
		}
		if negate {
			n.entries[idx] = n.entries[idx].Sub(delta)
		} else {
			n.entries[idx] = n.entries[idx].Add(delta)
		}
		return true
	}
	idx, childPos := n.locateChildIndex(pos, axis)
	if !n.kids[idx].adjustEntry(childPos, axis, delta, negate) {
		return false
	}
	n.kidMetric[idx] = n.kids[idx].metric()
	return true
}

// assertInvariants walks the subtree checking every node's child
// count against [minChildren, maxChildren] (root exempt, checked by
// the caller) and that cached kidMetric entries match their child's
// actual metric. Ported from metric.rs's assert_invariants, used by
// tests and by the cmd/elunar smoke test.
func (n *node) assertInvariants(isRoot bool) bool {
	count := n.numChildren()
	if !isRoot && (count < minChildren || count > maxChildren) {
		return false
	}
	if count > maxChildren {
		return false
	}
	if n.leaf {
		return true
	}
	for i, k := range n.kids {
		if k.metric() != n.kidMetric[i] {
			return false
		}
		if !k.assertInvariants(false) {
			return false
		}
	}
	return true
}
