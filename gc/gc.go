package gc

import (
	"github.com/nikhilkalige/elunar/arena"
	"github.com/nikhilkalige/elunar/object"
)

// Collect runs one mark-and-sweep cycle over the given contexts (each
// sweep also covers that context's sub-contexts): mark walks every root and its transitive object.Children
// via an explicit work stack (recursion would blow the Go stack on a
// long improper list, same reason the teacher's vm.go dispatch loop is
// an explicit loop rather than mutual recursion), then sweep asks each
// context to reclaim whatever it didn't mark. spec.md §4.3.
func Collect(roots *RootSet, contexts ...*arena.Context) {
	work := make([]object.Value, 0, roots.Len())
	roots.each(func(v object.Value) {
		work = append(work, v)
	})

	// Symbols carry no body in Value.obj (tag.go keeps it nil so the
	// zero Value stays nil), so v.Marked() trivially returns true for
	// them — they need their own visited set here, or their function
	// cell and plist would never get pushed onto the work stack at all.
	seenSymbols := make(map[int64]bool)

	for len(work) > 0 {
		n := len(work) - 1
		v := work[n]
		work = work[:n]

		if v.Tag() == object.TagSymbol {
			id := v.SymbolID()
			if seenSymbols[id] {
				continue
			}
			seenSymbols[id] = true
			work = append(work, object.Children(v)...)
			continue
		}

		if !v.IsMarkable() {
			continue
		}
		if v.Marked() {
			continue // already visited; breaks cycles
		}
		v.Mark()
		work = append(work, object.Children(v)...)
	}

	for _, c := range contexts {
		c.Sweep()
	}
}
