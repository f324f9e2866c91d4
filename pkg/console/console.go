// Package console wires the script runtime to a level: it owns the
// heap and the global scope, registers the host's native bindings, and
// drives the read, eval, collect cycle once per submitted line.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/ashmeltin/nothing/pkg/level"
	"github.com/ashmeltin/nothing/pkg/script"
)

// LogCapacity bounds the scroll-back log, oldest lines first out.
const LogCapacity = 10

// Line is one scroll-back entry. Error lines render differently.
type Line struct {
	Text  string
	IsErr bool
}

// Console embeds the script runtime into a running level.
type Console struct {
	ctx   *script.Context
	level *level.Level
	lines []Line

	// HostLog receives host-side diagnostics from native bindings,
	// such as a script naming an entity that does not exist. These do
	// not travel the evaluation failure channel.
	HostLog io.Writer
}

// New creates a console bound to a level, with the host natives
// registered in the global scope.
func New(lvl *level.Level) *Console {
	c := &Console{
		ctx:     script.NewContext(),
		level:   lvl,
		HostLog: os.Stderr,
	}

	c.ctx.LoadFunc("rect-apply-force", c.rectApplyForce)
	c.ctx.LoadFunc("rect-position", c.rectPosition)

	return c
}

// Context exposes the underlying script context, e.g. to set a step
// budget or register further natives.
func (c *Console) Context() *script.Context {
	return c.ctx
}

// Lines returns the current scroll-back, oldest first.
func (c *Console) Lines() []Line {
	return c.lines
}

func (c *Console) push(text string, isErr bool) {
	c.lines = append(c.lines, Line{text, isErr})
	if len(c.lines) > LogCapacity {
		c.lines = c.lines[len(c.lines)-LogCapacity:]
	}
}

// HandleLine runs one console submission to completion: read the
// text, evaluate the expression, render the outcome into the
// scroll-back, then collect garbage with the global scope as the root.
// Neither failure channel is fatal; the console logs and continues.
// It returns the scroll-back lines this submission appended.
func (c *Console) HandleLine(text string) []Line {
	h := c.ctx.Heap

	expr, err := script.Read(h, text)
	if err != nil {
		c.push(text, true)
		c.push(err.Error(), true)
		return c.lines[len(c.lines)-2:]
	}

	result, err := c.ctx.Eval(expr)
	c.push(text, false)
	if err != nil {
		c.push("error: "+err.Error(), true)
	} else {
		c.push(h.Render(result), false)
	}

	// everything to keep must be reachable from here: the outcome has
	// already been rendered to text above
	h.Collect(c.ctx.Scope.Expr)

	return c.lines[len(c.lines)-2:]
}

// rect-apply-force: (rect-apply-force "id" (fx fy)) accumulates a
// force on the named rigid body. The argument list arrives raw; a
// malformed shape fails carrying the argument expression, while a
// missing entity only reports through the host log channel.
func (c *Console) rectApplyForce(ctx *script.Context, scope script.Scope, args script.Handle) (script.Handle, error) {
	h := ctx.Heap

	if h.KindOf(args) != script.PairKind || h.KindOf(h.Head(args)) != script.StringKind {
		return script.NilHandle, script.EvalError{Heap: h, Expr: args}
	}
	id := h.TextOf(h.Head(args))

	rest := h.Tail(args)
	if h.KindOf(rest) != script.PairKind {
		return script.NilHandle, script.EvalError{Heap: h, Expr: args}
	}
	force := h.Head(rest)
	if h.KindOf(force) != script.PairKind ||
		h.KindOf(h.Head(force)) != script.NumberKind ||
		h.KindOf(h.Tail(force)) != script.PairKind ||
		h.KindOf(h.Head(h.Tail(force))) != script.NumberKind {
		return script.NilHandle, script.EvalError{Heap: h, Expr: force}
	}

	f := level.Vec2{
		X: h.NumberOf(h.Head(force)),
		Y: h.NumberOf(h.Head(h.Tail(force))),
	}

	if !c.level.ApplyForce(id, f) {
		fmt.Fprintf(c.HostLog, "couldn't find rigid_rect `%s`\n", id)
	}

	return h.Nil(), nil
}

// rect-position: (rect-position "id") reports a body's position as an
// (x y) list, or nil for a missing entity.
func (c *Console) rectPosition(ctx *script.Context, scope script.Scope, args script.Handle) (script.Handle, error) {
	h := ctx.Heap

	if h.KindOf(args) != script.PairKind || h.KindOf(h.Head(args)) != script.StringKind {
		return script.NilHandle, script.EvalError{Heap: h, Expr: args}
	}

	r := c.level.Rect(h.TextOf(h.Head(args)))
	if r == nil {
		fmt.Fprintf(c.HostLog, "couldn't find rigid_rect `%s`\n", h.TextOf(h.Head(args)))
		return h.Nil(), nil
	}

	return h.Cons(h.Number(r.Position.X), h.Cons(h.Number(r.Position.Y), h.Nil())), nil
}
