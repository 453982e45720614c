// Command elunar is a smoke test, not a REPL: it exercises allocation,
// rooting, a GC cycle, and a metric-tree round trip end to end, proving
// the four core packages link and cooperate. The (out-of-scope) reader,
// evaluator, and front-end I/O are not implemented here. Styled after
// the teacher's cmd/main.go: flag.Bool/flag.Int wiring and log.Fatalf
// on hard failure.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/nikhilkalige/elunar/arena"
	"github.com/nikhilkalige/elunar/gc"
	"github.com/nikhilkalige/elunar/metric"
	"github.com/nikhilkalige/elunar/object"
	"github.com/nikhilkalige/elunar/symtab"
)

func main() {
	verbose := flag.Bool("v", false, "print each smoke-test step")
	pieces := flag.Int("pieces", 8, "number of metric pieces to insert")
	flag.Parse()

	ctx := arena.New()
	roots := gc.NewRootSet()
	table := symtab.New()

	foo := table.Intern("foo")
	bar := table.Intern("bar")

	list := ctx.AllocCons(foo, ctx.AllocCons(bar, object.Nil))
	root := roots.Push(list)
	garbage := ctx.AllocCons(foo, object.Nil)
	_ = garbage

	if *verbose {
		fmt.Println("before collect:", ctx.Stats())
	}
	gc.Collect(roots, ctx)
	if *verbose {
		fmt.Println("after collect: ", ctx.Stats())
	}

	if root.Get().Tag() != object.TagCons {
		log.Fatalf("elunar: rooted list did not survive collection")
	}

	tree := metric.NewTree()
	for i := 0; i < *pieces; i++ {
		if err := tree.Insert(tree.Len().Bytes, metric.Metric{Bytes: 4, Chars: 2}); err != nil {
			log.Fatalf("elunar: metric insert: %v", err)
		}
	}
	if !tree.AssertInvariants() {
		log.Fatalf("elunar: metric tree invariants violated after insert")
	}

	charPos, err := tree.SearchByBytes(tree.Len().Bytes / 2)
	if err != nil {
		log.Fatalf("elunar: search: %v", err)
	}

	fmt.Printf("elunar: ok — %d symbols interned, tree spans %d bytes / %d chars, midpoint byte -> char %d\n",
		table.Len(), tree.Len().Bytes, tree.Len().Chars, charPos)
}
