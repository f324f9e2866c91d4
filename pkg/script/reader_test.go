package script

import (
	"strings"
	"testing"
)

func TestReadRenderRoundTrip(t *testing.T) {
	tests := []string{
		"42",
		"-1.5",
		"hello",
		"rect-apply-force",
		"()",
		"(1 2 3)",
		"(rect-apply-force \"player\" (10 0))",
		"(a (b (c)) d)",
		"(1 . 2)",
		"(a b . c)",
		"\"hello world\"",
	}

	for _, text := range tests {
		h := NewHeap()
		expr, err := Read(h, text)
		if err != nil {
			t.Errorf("Read(%q) failed: %s", text, err)
			continue
		}

		if got := h.Render(expr); got != text {
			t.Errorf("round trip of %q produced %q", text, got)
		}
	}
}

func TestReadNormalizesWhitespace(t *testing.T) {
	h := NewHeap()

	expr, err := Read(h, "  ( 1   2\n\t3 )  ")
	if err != nil {
		t.Fatalf("Read failed: %s", err)
	}
	if got := h.Render(expr); got != "(1 2 3)" {
		t.Errorf("expected (1 2 3), got %q", got)
	}
}

func TestReadNumbersAndSymbols(t *testing.T) {
	h := NewHeap()

	expr, err := Read(h, "(x 1 -2.5 1e3 x2)")
	if err != nil {
		t.Fatalf("Read failed: %s", err)
	}

	wantKinds := []Kind{SymbolKind, NumberKind, NumberKind, NumberKind, SymbolKind}
	i := 0
	for x := expr; h.KindOf(x) == PairKind; x = h.Tail(x) {
		if h.KindOf(h.Head(x)) != wantKinds[i] {
			t.Errorf("element %d: expected %s, got %s", i, wantKinds[i], h.KindOf(h.Head(x)))
		}
		i++
	}
	if i != 5 {
		t.Errorf("expected 5 elements, got %d", i)
	}
}

func TestReadStringEscapes(t *testing.T) {
	h := NewHeap()

	expr, err := Read(h, `"a\"b\\c\nd"`)
	if err != nil {
		t.Fatalf("Read failed: %s", err)
	}
	if h.TextOf(expr) != "a\"b\\c\nd" {
		t.Errorf("unexpected string payload %q", h.TextOf(expr))
	}
}

func TestReadComments(t *testing.T) {
	h := NewHeap()

	expr, err := Read(h, "(1 2) ; trailing comment")
	if err != nil {
		t.Fatalf("Read failed: %s", err)
	}
	if got := h.Render(expr); got != "(1 2)" {
		t.Errorf("expected (1 2), got %q", got)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty input", ""},
		{"only whitespace", "   \n\t"},
		{"only a comment", "; nothing here"},
		{"unbalanced open", "(1 2"},
		{"unbalanced close", "1)"},
		{"bare close", ")"},
		{"unterminated string", "\"abc"},
		{"trailing expression", "(1 2) 3"},
		{"dangling dot", "(. 1)"},
		{"dot without close", "(1 . 2 3)"},
	}

	for _, tt := range tests {
		h := NewHeap()
		_, err := Read(h, tt.text)
		if err == nil {
			t.Errorf("%s: expected Read(%q) to fail", tt.name, tt.text)
			continue
		}

		e, isErr := err.(Err)
		if !isErr {
			t.Errorf("%s: expected an Err, got %T", tt.name, err)
			continue
		}
		if e.reason != ErrSyntax || strings.TrimSpace(e.message) == "" {
			t.Errorf("%s: expected a syntax error with a message, got %q", tt.name, e.message)
		}
	}
}
