package script

// Context is a single, isolated execution context: the heap it
// allocates from, its global scope chain, and its evaluation budget.
// This is the handle embedders hold on to; one evaluation runs to
// completion inside it at a time, with no suspension point and no
// timeout.
type Context struct {
	Heap  *Heap
	Scope Scope

	// MaxSteps bounds the number of application dispatches in a single
	// top-level Eval when nonzero. Zero preserves the faithful,
	// fully blocking behavior: a script that never returns stalls the
	// embedder's frame loop.
	MaxSteps int

	steps int
}

// NewContext creates a Context with a fresh heap, an empty global
// scope and the builtin environment loaded.
func NewContext() *Context {
	h := NewHeap()
	ctx := &Context{
		Heap:  h,
		Scope: NewScope(h),
	}
	ctx.LoadEnvironment()
	return ctx
}

// Eval interprets one expression against the Context's global scope.
// On failure the returned error is an EvalError whose payload is the
// offending expression itself.
func (ctx *Context) Eval(expr Handle) (Handle, error) {
	ctx.steps = 0
	return ctx.EvalIn(ctx.Scope, expr)
}

// EvalIn interprets an expression against an explicit scope. Native
// callbacks use it to evaluate their own operands; the step budget is
// shared with the enclosing top-level Eval.
func (ctx *Context) EvalIn(scope Scope, expr Handle) (Handle, error) {
	h := ctx.Heap

	switch h.KindOf(expr) {
	case NilKind, NumberKind, StringKind, NativeKind:
		// self-evaluating forms
		return expr, nil

	case SymbolKind:
		value, ok := scope.Lookup(h, h.TextOf(expr))
		if !ok {
			return NilHandle, EvalError{h, expr}
		}
		return value, nil

	case PairKind:
		if ctx.MaxSteps > 0 {
			ctx.steps++
			if ctx.steps > ctx.MaxSteps {
				return NilHandle, EvalError{h, expr}
			}
		}

		head := h.Head(expr)
		operator, err := ctx.EvalIn(scope, head)
		if err != nil {
			return NilHandle, err
		}

		if h.KindOf(operator) != NativeKind {
			// a non-callable head fails carrying the head expression
			return NilHandle, EvalError{h, head}
		}

		// fexpr dispatch: the callback receives the raw unevaluated
		// argument list and decides what to evaluate itself
		return h.cells[operator].native(ctx, scope, h.Tail(expr))
	}

	return NilHandle, EvalError{h, expr}
}

// ReadEval parses and evaluates one line of source text, the
// console's submission unit.
func (ctx *Context) ReadEval(text string) (Handle, error) {
	expr, err := Read(ctx.Heap, text)
	if err != nil {
		return NilHandle, err
	}

	return ctx.Eval(expr)
}

// LoadFunc binds a single host-implemented callable into the global
// scope under the given name.
func (ctx *Context) LoadFunc(name string, exec NativeFunc) {
	h := ctx.Heap
	ctx.Scope.Bind(h, h.Symbol(name), h.Native(name, exec))
}
