package script

import (
	"fmt"
	"strconv"
)

// token kinds for the reader; the grammar is small enough that token
// text plus one punctuation flag is all the structure we need
type tokKind uint8

const (
	tokAtom tokKind = iota
	tokString
	tokLeftParen
	tokRightParen
	tokDot
)

type tok struct {
	kind tokKind
	str  string
	pos  int
}

func (t tok) String() string {
	switch t.kind {
	case tokLeftParen:
		return "'('"
	case tokRightParen:
		return "')'"
	case tokDot:
		return "'.'"
	case tokString:
		return fmt.Sprintf("string %q", t.str)
	default:
		return fmt.Sprintf("'%s'", t.str)
	}
}

func tokenize(text string) ([]tok, error) {
	tokens := make([]tok, 0)

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			i++

		case c == ';':
			// comment runs to end of line
			for i < len(text) && text[i] != '\n' {
				i++
			}

		case c == '(':
			tokens = append(tokens, tok{kind: tokLeftParen, pos: i})
			i++

		case c == ')':
			tokens = append(tokens, tok{kind: tokRightParen, pos: i})
			i++

		case c == '"':
			start := i
			i++
			var out []byte
			closed := false
			for i < len(text) {
				if text[i] == '\\' && i+1 < len(text) {
					switch text[i+1] {
					case 'n':
						out = append(out, '\n')
					case 't':
						out = append(out, '\t')
					default:
						out = append(out, text[i+1])
					}
					i += 2
					continue
				}
				if text[i] == '"' {
					closed = true
					i++
					break
				}
				out = append(out, text[i])
				i++
			}
			if !closed {
				return nil, Err{
					ErrSyntax,
					fmt.Sprintf("unterminated string literal at position %d", start),
				}
			}
			tokens = append(tokens, tok{kind: tokString, str: string(out), pos: start})

		default:
			start := i
			for i < len(text) {
				c := text[i]
				if c == ' ' || c == '\t' || c == '\r' || c == '\n' ||
					c == '(' || c == ')' || c == '"' || c == ';' {
					break
				}
				i++
			}

			word := text[start:i]
			if word == "." {
				tokens = append(tokens, tok{kind: tokDot, pos: start})
			} else {
				tokens = append(tokens, tok{kind: tokAtom, str: word, pos: start})
			}
		}
	}

	return tokens, nil
}

// Read parses one expression from text into a heap-allocated Value
// tree. It performs no evaluation and has no effect on the heap beyond
// allocation. Empty input, unbalanced parentheses, or text left over
// after one complete expression return a syntax Err and no expression.
func Read(h *Heap, text string) (Handle, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return NilHandle, err
	}

	if len(tokens) == 0 {
		return NilHandle, Err{ErrSyntax, "unexpected end of input, expected an expression"}
	}

	expr, incr, err := parseExpr(h, tokens)
	if err != nil {
		return NilHandle, err
	}

	if incr < len(tokens) {
		return NilHandle, Err{
			ErrSyntax,
			fmt.Sprintf("unexpected %s after a complete expression", tokens[incr]),
		}
	}

	return expr, nil
}

// parseExpr parses one expression from tokens and reports how many
// tokens it consumed, in the (node, incr, err) shape the rest of the
// reader composes with.
func parseExpr(h *Heap, tokens []tok) (Handle, int, error) {
	if len(tokens) == 0 {
		return NilHandle, 0, Err{ErrSyntax, "unexpected end of input, expected an expression"}
	}

	t := tokens[0]
	switch t.kind {
	case tokAtom:
		if f, err := strconv.ParseFloat(t.str, 64); err == nil {
			return h.Number(f), 1, nil
		}
		return h.Symbol(t.str), 1, nil

	case tokString:
		return h.String(t.str), 1, nil

	case tokLeftParen:
		expr, incr, err := parseList(h, tokens[1:])
		return expr, incr + 1, err

	case tokRightParen:
		return NilHandle, 0, Err{
			ErrSyntax,
			fmt.Sprintf("unexpected ')' at position %d", t.pos),
		}

	default:
		return NilHandle, 0, Err{
			ErrSyntax,
			fmt.Sprintf("unexpected %s at position %d", t, t.pos),
		}
	}
}

// parseList parses everything after a '(' up to and including the
// matching ')'. Elements become a right-nested Pair chain terminated
// by Nil, or by a dotted tail expression.
func parseList(h *Heap, tokens []tok) (Handle, int, error) {
	idx := 0
	elems := make([]Handle, 0)

	for {
		if idx >= len(tokens) {
			return NilHandle, 0, Err{ErrSyntax, "unexpected end of input, expected ')'"}
		}

		switch tokens[idx].kind {
		case tokRightParen:
			idx++

			list := h.Nil()
			for i := len(elems) - 1; i >= 0; i-- {
				list = h.Cons(elems[i], list)
			}
			return list, idx, nil

		case tokDot:
			if len(elems) == 0 {
				return NilHandle, 0, Err{
					ErrSyntax,
					fmt.Sprintf("unexpected '.' at position %d", tokens[idx].pos),
				}
			}
			idx++

			tail, incr, err := parseExpr(h, tokens[idx:])
			if err != nil {
				return NilHandle, 0, err
			}
			idx += incr

			if idx >= len(tokens) || tokens[idx].kind != tokRightParen {
				return NilHandle, 0, Err{ErrSyntax, "expected ')' after a dotted tail"}
			}
			idx++

			list := tail
			for i := len(elems) - 1; i >= 0; i-- {
				list = h.Cons(elems[i], list)
			}
			return list, idx, nil

		default:
			elem, incr, err := parseExpr(h, tokens[idx:])
			if err != nil {
				return NilHandle, 0, err
			}
			idx += incr
			elems = append(elems, elem)
		}
	}
}
