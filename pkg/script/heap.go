package script

// Heap owns every Value the runtime ever constructs. Allocation hands
// out Handles into an arena of slots; reclamation happens only through
// explicit Collect calls or a wholesale Destroy at shutdown. A Heap is
// not safe for concurrent use: exactly one evaluation is in flight at
// a time, driven by the embedder's single event thread.
type Heap struct {
	// MaxCells bounds the arena when nonzero. Exceeding it is a fatal
	// reported condition, never a silently swallowed failure.
	MaxCells int

	cells []cell
	free  []Handle
}

// NewHeap creates an empty Heap. Slot 0 is reserved for the Nil
// singleton and survives every collection.
func NewHeap() *Heap {
	h := &Heap{}
	h.cells = append(h.cells, cell{kind: NilKind, inUse: true})
	return h
}

// Destroy frees every allocation the heap ever tracked, ignoring
// reachability. Only for embedder teardown; every outstanding Handle
// is invalid afterwards.
func (h *Heap) Destroy() {
	h.cells = nil
	h.free = nil
}

func (h *Heap) alloc(c cell) Handle {
	c.inUse = true

	if n := len(h.free); n > 0 {
		x := h.free[n-1]
		h.free = h.free[:n-1]
		h.cells[x] = c
		return x
	}

	if h.MaxCells > 0 && len(h.cells) >= h.MaxCells {
		LogErrf(ErrSystem, "script heap exhausted at %d cells", h.MaxCells)
	}

	h.cells = append(h.cells, c)
	return Handle(len(h.cells) - 1)
}

// Nil returns the Nil singleton.
func (h *Heap) Nil() Handle {
	return NilHandle
}

// Number allocates a floating-point scalar.
func (h *Heap) Number(f float64) Handle {
	return h.alloc(cell{kind: NumberKind, num: f})
}

// Symbol allocates an identifier, compared by content.
func (h *Heap) Symbol(s string) Handle {
	return h.alloc(cell{kind: SymbolKind, str: s})
}

// String allocates a text literal.
func (h *Heap) String(s string) Handle {
	return h.alloc(cell{kind: StringKind, str: s})
}

// Cons allocates a Pair of two existing Values.
func (h *Heap) Cons(head, tail Handle) Handle {
	return h.alloc(cell{kind: PairKind, head: head, tail: tail})
}

// Native allocates a host callable. The name is only for rendering.
func (h *Heap) Native(name string, exec NativeFunc) Handle {
	return h.alloc(cell{kind: NativeKind, name: name, native: exec})
}

// KindOf reports the variant of a Value.
func (h *Heap) KindOf(x Handle) Kind {
	return h.cells[x].kind
}

// NumberOf returns the scalar payload of a Number.
func (h *Heap) NumberOf(x Handle) float64 {
	return h.cells[x].num
}

// TextOf returns the text payload of a Symbol or String.
func (h *Heap) TextOf(x Handle) string {
	return h.cells[x].str
}

// Head returns the first slot of a Pair.
func (h *Heap) Head(x Handle) Handle {
	return h.cells[x].head
}

// Tail returns the second slot of a Pair.
func (h *Heap) Tail(x Handle) Handle {
	return h.cells[x].tail
}

// Live reports the number of allocations currently tracked as in use.
func (h *Heap) Live() int {
	n := 0
	for i := range h.cells {
		if h.cells[i].inUse {
			n++
		}
	}
	return n
}

// Collect reclaims every allocation not transitively reachable from
// the given roots. Collection is never automatic; the embedder invokes
// it after a bounded unit of work, typically one evaluation round.
//
// Contract invariant: every Value the embedder intends to keep using
// after Collect must be reachable from the passed roots at the time of
// the call. An omitted live root is a use-after-collection hazard, not
// a detected error.
//
// Marking walks an explicit worklist over a visited bitset indexed by
// slot id, so shared substructure is visited once and cyclic graphs
// terminate. The bitset is per-call; survivors carry no mark state
// between collections. Calling Collect twice with the same roots
// changes nothing the second time.
func (h *Heap) Collect(roots ...Handle) {
	marked := make([]bool, len(h.cells))
	marked[NilHandle] = true

	stack := make([]Handle, 0, len(roots))
	for _, r := range roots {
		stack = append(stack, r)
	}

	for len(stack) > 0 {
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if marked[x] || !h.cells[x].inUse {
			continue
		}
		marked[x] = true

		if h.cells[x].kind == PairKind {
			stack = append(stack, h.cells[x].head, h.cells[x].tail)
		}
	}

	for i := range h.cells {
		if h.cells[i].inUse && !marked[i] {
			h.cells[i] = cell{}
			h.free = append(h.free, Handle(i))
		}
	}
}
