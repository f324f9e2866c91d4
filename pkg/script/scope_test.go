package script

import "testing"

func TestScopeBindAndLookup(t *testing.T) {
	h := NewHeap()
	scope := NewScope(h)

	scope.Bind(h, h.Symbol("x"), h.Number(10))

	v, ok := scope.Lookup(h, "x")
	if !ok {
		t.Fatal("expected x to be bound")
	}
	if h.NumberOf(v) != 10 {
		t.Errorf("expected x = 10, got %s", h.Render(v))
	}

	if _, ok := scope.Lookup(h, "y"); ok {
		t.Error("expected y to be unbound")
	}
}

func TestScopeShadowing(t *testing.T) {
	h := NewHeap()
	scope := NewScope(h)

	a := h.Number(1)
	b := h.Number(2)
	scope.Bind(h, h.Symbol("x"), a)
	scope.Bind(h, h.Symbol("x"), b)

	v, ok := scope.Lookup(h, "x")
	if !ok || v != b {
		t.Errorf("expected lookup to return the newest binding, got %s", h.Render(v))
	}

	// the shadowed binding is still present in the chain
	bindings := h.Head(scope.Expr)
	count := 0
	for x := bindings; h.KindOf(x) == PairKind; x = h.Tail(x) {
		count++
	}
	if count != 2 {
		t.Errorf("expected 2 bindings in the chain, got %d", count)
	}
}

func TestScopeParentChain(t *testing.T) {
	h := NewHeap()
	parent := NewScope(h)
	child := NewChildScope(h, parent)

	parent.Bind(h, h.Symbol("outer"), h.Number(1))
	child.Bind(h, h.Symbol("inner"), h.Number(2))

	if v, ok := child.Lookup(h, "outer"); !ok || h.NumberOf(v) != 1 {
		t.Error("expected child lookup to fall through to parent")
	}
	if _, ok := parent.Lookup(h, "inner"); ok {
		t.Error("expected parent not to see the child's binding")
	}

	// a child binding shadows the parent's without touching it
	child.Bind(h, h.Symbol("outer"), h.Number(3))
	if v, _ := child.Lookup(h, "outer"); h.NumberOf(v) != 3 {
		t.Error("expected the child's shadow to win in the child")
	}
	if v, _ := parent.Lookup(h, "outer"); h.NumberOf(v) != 1 {
		t.Error("expected the parent's binding to be untouched")
	}
}

func TestScopeSurvivesCollection(t *testing.T) {
	h := NewHeap()
	scope := NewScope(h)

	scope.Bind(h, h.Symbol("x"), h.Number(10))
	h.Symbol("garbage")

	h.Collect(scope.Expr)

	v, ok := scope.Lookup(h, "x")
	if !ok || h.NumberOf(v) != 10 {
		t.Error("scope chain did not survive collection with itself as root")
	}
}
