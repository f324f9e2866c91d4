package script

import "strconv"

// Handle identifies a Value inside a Heap. Handles are slot indices,
// never Go pointers, so a stale Handle can only ever reach its own
// Heap's arena. The zero Handle is the canonical Nil value.
type Handle int32

// NilHandle is the Handle of the Nil singleton in every Heap.
const NilHandle Handle = 0

// Kind enumerates the variants of the runtime's tagged Value union.
type Kind uint8

const (
	NilKind Kind = iota
	NumberKind
	SymbolKind
	StringKind
	PairKind
	NativeKind
)

func (k Kind) String() string {
	switch k {
	case NilKind:
		return "nil"
	case NumberKind:
		return "number"
	case SymbolKind:
		return "symbol"
	case StringKind:
		return "string"
	case PairKind:
		return "pair"
	case NativeKind:
		return "native"
	default:
		return "unknown"
	}
}

// NativeFunc is a host-supplied callable bound into a scope. It is
// invoked with the raw, unevaluated argument expression list and is
// solely responsible for destructuring its operands and evaluating
// whichever sub-expressions it chooses to, via ctx.EvalIn. Host state
// reaches the callback through ordinary closure capture.
type NativeFunc func(ctx *Context, scope Scope, args Handle) (Handle, error)

// cell is one arena slot. A cell stores the payload for exactly one
// Kind; unused fields stay at their zero values.
type cell struct {
	kind   Kind
	num    float64
	str    string
	head   Handle
	tail   Handle
	name   string
	native NativeFunc
	inUse  bool
}

// Utility func to get a consistent string representation of numbers:
// integral values print without a fractional part.
func nToS(f float64) string {
	if i := int64(f); f == float64(i) {
		return strconv.FormatInt(i, 10)
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}
