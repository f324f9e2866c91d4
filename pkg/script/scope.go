package script

// Scope is a lexical environment frame. It is an ordinary heap Value:
// a Pair whose head is the binding list (newest first) and whose tail
// is the parent scope's pair, or Nil at the outermost chain. Because a
// scope lives on the Heap, its Expr handle is exactly the GC root the
// embedder passes to Collect.
type Scope struct {
	Expr Handle
}

// NewScope creates an empty outermost scope.
func NewScope(h *Heap) Scope {
	return Scope{Expr: h.Cons(h.Nil(), h.Nil())}
}

// NewChildScope creates a scope whose lookups fall through to parent.
func NewChildScope(h *Heap, parent Scope) Scope {
	return Scope{Expr: h.Cons(h.Nil(), parent.Expr)}
}

// Bind prepends a (symbol . value) binding to the scope's own binding
// list. A prior binding of the same symbol is shadowed, not replaced:
// it stays in the list but Lookup can no longer reach it.
func (s Scope) Bind(h *Heap, sym, value Handle) {
	binding := h.Cons(sym, value)

	// re-cons the frame in place: (bindings . parent) keeps its handle
	// so existing roots stay valid
	h.cells[s.Expr].head = h.Cons(binding, h.Head(s.Expr))
}

// Lookup resolves a name to its most recently bound value, scanning
// the local binding list first and then the parent chain. The second
// return is false when every chain is exhausted.
func (s Scope) Lookup(h *Heap, name string) (Handle, bool) {
	frame := s.Expr
	for h.KindOf(frame) == PairKind {
		for b := h.Head(frame); h.KindOf(b) == PairKind; b = h.Tail(b) {
			binding := h.Head(b)
			if h.KindOf(h.Head(binding)) == SymbolKind &&
				h.TextOf(h.Head(binding)) == name {
				return h.Tail(binding), true
			}
		}

		frame = h.Tail(frame)
	}

	return NilHandle, false
}
