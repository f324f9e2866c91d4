package script

// LoadEnvironment binds all builtin callables into a Context's global
// scope. Builtins are ordinary fexpr natives: each receives its raw
// argument list and evaluates exactly the operands it chooses to.
func (ctx *Context) LoadEnvironment() {
	ctx.LoadFunc("quote", scriptQuote)
	ctx.LoadFunc("set", scriptSet)

	// pair surgery
	ctx.LoadFunc("car", scriptCar)
	ctx.LoadFunc("cdr", scriptCdr)
	ctx.LoadFunc("cons", scriptCons)
	ctx.LoadFunc("list", scriptList)

	// arithmetic
	ctx.LoadFunc("+", scriptAdd)
	ctx.LoadFunc("-", scriptSubtract)
	ctx.LoadFunc("*", scriptMultiply)
	ctx.LoadFunc("/", scriptDivide)

	ctx.LoadFunc("eq?", scriptEq)
	ctx.LoadFunc("heap-stats", scriptHeapStats)
}

// destructure a raw argument list into exactly n operand expressions;
// fails carrying the whole argument list
func listArgs(h *Heap, args Handle, n int) ([]Handle, error) {
	out := make([]Handle, 0, n)
	x := args
	for h.KindOf(x) == PairKind {
		out = append(out, h.Head(x))
		x = h.Tail(x)
	}

	if len(out) != n || h.KindOf(x) != NilKind {
		return nil, EvalError{h, args}
	}
	return out, nil
}

func scriptQuote(ctx *Context, scope Scope, args Handle) (Handle, error) {
	forms, err := listArgs(ctx.Heap, args, 1)
	if err != nil {
		return NilHandle, err
	}

	return forms[0], nil
}

func scriptSet(ctx *Context, scope Scope, args Handle) (Handle, error) {
	h := ctx.Heap
	forms, err := listArgs(h, args, 2)
	if err != nil {
		return NilHandle, err
	}

	if h.KindOf(forms[0]) != SymbolKind {
		return NilHandle, EvalError{h, forms[0]}
	}

	value, err := ctx.EvalIn(scope, forms[1])
	if err != nil {
		return NilHandle, err
	}

	scope.Bind(h, forms[0], value)
	return value, nil
}

func scriptCar(ctx *Context, scope Scope, args Handle) (Handle, error) {
	h := ctx.Heap
	forms, err := listArgs(h, args, 1)
	if err != nil {
		return NilHandle, err
	}

	pair, err := ctx.EvalIn(scope, forms[0])
	if err != nil {
		return NilHandle, err
	}
	if h.KindOf(pair) != PairKind {
		return NilHandle, EvalError{h, forms[0]}
	}

	return h.Head(pair), nil
}

func scriptCdr(ctx *Context, scope Scope, args Handle) (Handle, error) {
	h := ctx.Heap
	forms, err := listArgs(h, args, 1)
	if err != nil {
		return NilHandle, err
	}

	pair, err := ctx.EvalIn(scope, forms[0])
	if err != nil {
		return NilHandle, err
	}
	if h.KindOf(pair) != PairKind {
		return NilHandle, EvalError{h, forms[0]}
	}

	return h.Tail(pair), nil
}

func scriptCons(ctx *Context, scope Scope, args Handle) (Handle, error) {
	h := ctx.Heap
	forms, err := listArgs(h, args, 2)
	if err != nil {
		return NilHandle, err
	}

	head, err := ctx.EvalIn(scope, forms[0])
	if err != nil {
		return NilHandle, err
	}
	tail, err := ctx.EvalIn(scope, forms[1])
	if err != nil {
		return NilHandle, err
	}

	return h.Cons(head, tail), nil
}

func scriptList(ctx *Context, scope Scope, args Handle) (Handle, error) {
	h := ctx.Heap

	elems := make([]Handle, 0)
	for x := args; h.KindOf(x) == PairKind; x = h.Tail(x) {
		elem, err := ctx.EvalIn(scope, h.Head(x))
		if err != nil {
			return NilHandle, err
		}
		elems = append(elems, elem)
	}

	list := h.Nil()
	for i := len(elems) - 1; i >= 0; i-- {
		list = h.Cons(elems[i], list)
	}
	return list, nil
}

// evaluate every operand of a raw argument list to a number; a
// non-number operand fails carrying that operand's expression
func numberArgs(ctx *Context, scope Scope, args Handle) ([]float64, error) {
	h := ctx.Heap

	out := make([]float64, 0)
	for x := args; h.KindOf(x) == PairKind; x = h.Tail(x) {
		value, err := ctx.EvalIn(scope, h.Head(x))
		if err != nil {
			return nil, err
		}
		if h.KindOf(value) != NumberKind {
			return nil, EvalError{h, h.Head(x)}
		}
		out = append(out, h.NumberOf(value))
	}
	return out, nil
}

func scriptAdd(ctx *Context, scope Scope, args Handle) (Handle, error) {
	nums, err := numberArgs(ctx, scope, args)
	if err != nil {
		return NilHandle, err
	}

	sum := 0.0
	for _, n := range nums {
		sum += n
	}
	return ctx.Heap.Number(sum), nil
}

func scriptSubtract(ctx *Context, scope Scope, args Handle) (Handle, error) {
	nums, err := numberArgs(ctx, scope, args)
	if err != nil {
		return NilHandle, err
	}
	if len(nums) == 0 {
		return NilHandle, EvalError{ctx.Heap, args}
	}
	if len(nums) == 1 {
		return ctx.Heap.Number(-nums[0]), nil
	}

	acc := nums[0]
	for _, n := range nums[1:] {
		acc -= n
	}
	return ctx.Heap.Number(acc), nil
}

func scriptMultiply(ctx *Context, scope Scope, args Handle) (Handle, error) {
	nums, err := numberArgs(ctx, scope, args)
	if err != nil {
		return NilHandle, err
	}

	product := 1.0
	for _, n := range nums {
		product *= n
	}
	return ctx.Heap.Number(product), nil
}

func scriptDivide(ctx *Context, scope Scope, args Handle) (Handle, error) {
	h := ctx.Heap
	nums, err := numberArgs(ctx, scope, args)
	if err != nil {
		return NilHandle, err
	}
	if len(nums) < 2 {
		return NilHandle, EvalError{h, args}
	}

	acc := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return NilHandle, EvalError{h, args}
		}
		acc /= n
	}
	return h.Number(acc), nil
}

// structural content equality of two evaluated operands
func valueEquals(h *Heap, a, b Handle) bool {
	ka, kb := h.KindOf(a), h.KindOf(b)
	if ka != kb {
		return false
	}

	switch ka {
	case NilKind:
		return true
	case NumberKind:
		return h.NumberOf(a) == h.NumberOf(b)
	case SymbolKind, StringKind:
		return h.TextOf(a) == h.TextOf(b)
	case PairKind:
		return valueEquals(h, h.Head(a), h.Head(b)) &&
			valueEquals(h, h.Tail(a), h.Tail(b))
	case NativeKind:
		return a == b
	}
	return false
}

func scriptEq(ctx *Context, scope Scope, args Handle) (Handle, error) {
	h := ctx.Heap
	forms, err := listArgs(h, args, 2)
	if err != nil {
		return NilHandle, err
	}

	a, err := ctx.EvalIn(scope, forms[0])
	if err != nil {
		return NilHandle, err
	}
	b, err := ctx.EvalIn(scope, forms[1])
	if err != nil {
		return NilHandle, err
	}

	if valueEquals(h, a, b) {
		return h.Symbol("t"), nil
	}
	return h.Nil(), nil
}

func scriptHeapStats(ctx *Context, scope Scope, args Handle) (Handle, error) {
	return ctx.Heap.Number(float64(ctx.Heap.Live())), nil
}
