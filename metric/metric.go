// Package metric implements component C4: a B-tree-structured index
// mapping a flat text buffer's content to cumulative (byte, char)
// positions in O(log n), ported from
// crates/text-buffer/src/metric.rs. MAX/MIN match the Rust original's
// branching factor exactly.
package metric

// Metric is the commutative monoid every node in the tree accumulates:
// the number of bytes and chars spanned by a subtree. Grounded
// directly on metric.rs's Metric{bytes, chars} struct and its
// Add/AddAssign/Sub/SubAssign/Sum impls.
type Metric struct {
	Bytes uint64
	Chars uint64
}

// Add returns the sum of two metrics.
func (m Metric) Add(other Metric) Metric {
	return Metric{Bytes: m.Bytes + other.Bytes, Chars: m.Chars + other.Chars}
}

// Sub returns the difference of two metrics. Callers must ensure
// other does not exceed m component-wise — metric.rs's SubAssign
// carries the same precondition via unsigned wraparound being a bug,
// not a feature.
func (m Metric) Sub(other Metric) Metric {
	return Metric{Bytes: m.Bytes - other.Bytes, Chars: m.Chars - other.Chars}
}

// Sum folds a slice of metrics, mirroring metric.rs's Sum impl used
// when recomputing a node's metric from its children.
func Sum(ms []Metric) Metric {
	var total Metric
	for _, m := range ms {
		total = total.Add(m)
	}
	return total
}

// searchAxis selects which component of a Metric a search descends on,
// the Go rendition of metric.rs's const generic `TYPE: usize` (0 =
// byte, 1 = char) parameter to search_impl.
type searchAxis int

const (
	axisBytes searchAxis = iota
	axisChars
)

func (a searchAxis) of(m Metric) uint64 {
	if a == axisBytes {
		return m.Bytes
	}
	return m.Chars
}

// branching factor, matching metric.rs's MAX/MIN constants exactly.
const (
	maxChildren = 4
	minChildren = 2
)
