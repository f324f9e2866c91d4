package script

import "strings"

// Render renders any Value back to its textual S-expression form, for
// diagnostics, console echoing and failure payloads. A Pair that loops
// back into the traversal path renders as "..." so cyclic structure
// terminates; acyclic shared substructure renders in full each time.
func (h *Heap) Render(x Handle) string {
	var sb strings.Builder
	h.render(&sb, x, map[Handle]bool{})
	return sb.String()
}

// path holds the pairs of the in-progress traversal only: entries are
// removed again once their rendering completes, so a DAG is never
// mistaken for a cycle
func (h *Heap) render(sb *strings.Builder, x Handle, path map[Handle]bool) {
	switch h.KindOf(x) {
	case NilKind:
		sb.WriteString("()")

	case NumberKind:
		sb.WriteString(nToS(h.NumberOf(x)))

	case SymbolKind:
		sb.WriteString(h.TextOf(x))

	case StringKind:
		sb.WriteByte('"')
		sb.WriteString(strings.ReplaceAll(
			strings.ReplaceAll(h.TextOf(x), "\\", "\\\\"),
			"\"", "\\\""))
		sb.WriteByte('"')

	case NativeKind:
		sb.WriteString("<native " + h.cells[x].name + ">")

	case PairKind:
		sb.WriteByte('(')
		spine := make([]Handle, 0)
		for {
			if path[x] {
				sb.WriteString("...")
				break
			}
			path[x] = true
			spine = append(spine, x)

			h.render(sb, h.Head(x), path)

			tail := h.Tail(x)
			if h.KindOf(tail) == NilKind {
				break
			}
			if h.KindOf(tail) != PairKind {
				sb.WriteString(" . ")
				h.render(sb, tail, path)
				break
			}

			sb.WriteByte(' ')
			x = tail
		}
		for _, p := range spine {
			delete(path, p)
		}
		sb.WriteByte(')')
	}
}
