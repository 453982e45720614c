package object

import (
	"fmt"
	"strconv"
	"strings"
)

// Display renders v the way the teacher's TreePrinter (tree_printer.go)
// threads visited-node state through recursive descent, except the
// cycle marker follows core/object/tagged.rs's display_walk /
// test_print_circle convention exactly: a back-reference to an
// already-open cons or vector prints as "#N", where N is the order the
// structure was first entered (0-based), e.g. a self-referential cons
// prints as "(1 . #0)".
func Display(v Value) string {
	var b strings.Builder
	w := &displayWalk{seen: make(map[any]int)}
	w.write(&b, v)
	return b.String()
}

type displayWalk struct {
	seen map[any]int
}

func (w *displayWalk) write(b *strings.Builder, v Value) {
	switch v.tag {
	case TagSymbol:
		if v.IsNil() {
			b.WriteString("nil")
			return
		}
		if sym := v.symbolBody(); sym != nil {
			b.WriteString(sym.Name)
			return
		}
		b.WriteString(fmt.Sprintf("symbol-%d", v.num))
	case TagInt:
		b.WriteString(strconv.FormatInt(v.num, 10))
	case TagFloat:
		b.WriteString(strconv.FormatFloat(v.obj.(*FloatBody).Val, 'g', -1, 64))
	case TagString:
		b.WriteString(strconv.Quote(v.obj.(*StringBody).Text))
	case TagByteString:
		b.WriteString(strconv.Quote(string(v.obj.(*ByteStringBody).Bytes)))
	case TagCons:
		w.writeCons(b, v.obj.(*ConsBody))
	case TagVec:
		w.writeVec(b, v.obj.(*VecBody))
	case TagRecord:
		w.writeRecord(b, v.obj.(*RecordBody))
	case TagHashTable:
		b.WriteString("#<hash-table>")
	case TagSubrFn:
		b.WriteString(fmt.Sprintf("#<subr %s>", v.obj.(*SubrFnBody).Name))
	case TagByteFn:
		b.WriteString("#<compiled-function>")
	case TagBuffer:
		b.WriteString(fmt.Sprintf("#<buffer %s>", v.obj.(*BufferBody).Name))
	default:
		b.WriteString("#<unknown>")
	}
}

func (w *displayWalk) writeCons(b *strings.Builder, c *ConsBody) {
	if ref, ok := w.seen[c]; ok {
		fmt.Fprintf(b, "#%d", ref)
		return
	}
	w.seen[c] = len(w.seen)
	b.WriteByte('(')
	w.write(b, c.Car)
	b.WriteString(" . ")
	w.write(b, c.Cdr)
	b.WriteByte(')')
}

func (w *displayWalk) writeVec(b *strings.Builder, vec *VecBody) {
	if ref, ok := w.seen[vec]; ok {
		fmt.Fprintf(b, "#%d", ref)
		return
	}
	w.seen[vec] = len(w.seen)
	b.WriteByte('[')
	for i, e := range vec.Elems {
		if i > 0 {
			b.WriteByte(' ')
		}
		w.write(b, e)
	}
	b.WriteByte(']')
}

func (w *displayWalk) writeRecord(b *strings.Builder, r *RecordBody) {
	if ref, ok := w.seen[r]; ok {
		fmt.Fprintf(b, "#%d", ref)
		return
	}
	w.seen[r] = len(w.seen)
	b.WriteString("#s(")
	w.write(b, r.Type)
	for _, f := range r.Fields {
		b.WriteByte(' ')
		w.write(b, f)
	}
	b.WriteByte(')')
}
