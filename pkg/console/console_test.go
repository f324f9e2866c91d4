package console

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/ashmeltin/nothing/pkg/level"
)

func newTestConsole() (*Console, *level.Level) {
	lvl := level.New()
	lvl.AddRect(&level.RigidRect{ID: "player", Mass: 1})
	return New(lvl), lvl
}

func lastLine(c *Console) Line {
	lines := c.Lines()
	return lines[len(lines)-1]
}

func TestRectApplyForce(t *testing.T) {
	c, lvl := newTestConsole()

	c.HandleLine(`(rect-apply-force "player" (10 0))`)

	if l := lastLine(c); l.IsErr {
		t.Fatalf("expected the line to evaluate, got %q", l.Text)
	}

	r := lvl.Rect("player")
	if r.Force.X != 10 || r.Force.Y != 0 {
		t.Errorf("expected force (10 0) on player, got (%v %v)", r.Force.X, r.Force.Y)
	}
}

func TestRectApplyForceMissingEntity(t *testing.T) {
	c, _ := newTestConsole()

	var hostLog bytes.Buffer
	c.HostLog = &hostLog

	c.HandleLine(`(rect-apply-force "ghost" (10 0))`)

	// a missing entity is a host-side report, not an eval failure
	if l := lastLine(c); l.IsErr {
		t.Errorf("expected the eval to succeed, got %q", l.Text)
	}
	if !strings.Contains(hostLog.String(), "ghost") {
		t.Errorf("expected the host log to name the missing entity, got %q", hostLog.String())
	}
}

func TestRectApplyForceMalformedArguments(t *testing.T) {
	c, lvl := newTestConsole()

	c.HandleLine(`(rect-apply-force player (10 0))`)

	if l := lastLine(c); !l.IsErr {
		t.Errorf("expected a malformed call to fail, got %q", l.Text)
	}
	if f := lvl.Rect("player").Force; f.X != 0 || f.Y != 0 {
		t.Error("expected no force applied on a failed call")
	}
}

func TestRectPosition(t *testing.T) {
	c, lvl := newTestConsole()
	lvl.Rect("player").Position = level.Vec2{X: 3, Y: 4}

	c.HandleLine(`(rect-position "player")`)

	if l := lastLine(c); l.IsErr || l.Text != "(3 4)" {
		t.Errorf("expected (3 4), got %q", l.Text)
	}
}

func TestUnboundNameError(t *testing.T) {
	c, _ := newTestConsole()

	c.HandleLine("(unbound-name)")

	l := lastLine(c)
	if !l.IsErr {
		t.Fatal("expected an error line")
	}
	if !strings.Contains(l.Text, "unbound-name") {
		t.Errorf("expected the failure to carry the offending expression, got %q", l.Text)
	}
}

func TestParseErrorLogsMessage(t *testing.T) {
	c, _ := newTestConsole()

	out := c.HandleLine("(1 2")

	if len(out) != 2 {
		t.Fatalf("expected the input echo plus a message, got %d lines", len(out))
	}
	if !out[0].IsErr || out[0].Text != "(1 2" {
		t.Errorf("expected the offending input echoed, got %q", out[0].Text)
	}
	if !out[1].IsErr || strings.TrimSpace(out[1].Text) == "" {
		t.Errorf("expected a non-empty parse message, got %q", out[1].Text)
	}
}

func TestConsoleStateSurvivesCollection(t *testing.T) {
	c, lvl := newTestConsole()

	c.HandleLine("(set target \"player\")")
	for i := 0; i < 20; i++ {
		c.HandleLine("(quote (some garbage to collect))")
	}

	// the binding made 20 collections ago still resolves
	c.HandleLine("(rect-apply-force (quote unused) (1 1))") // exercise failure path too
	c.HandleLine(`(rect-apply-force "player" (2 3))`)

	if f := lvl.Rect("player").Force; f.X != 2 || f.Y != 3 {
		t.Errorf("expected force (2 3), got (%v %v)", f.X, f.Y)
	}

	c.HandleLine("target")
	if l := lastLine(c); l.IsErr || l.Text != "\"player\"" {
		t.Errorf("expected the binding to survive collection, got %q", l.Text)
	}
}

func TestScrollBackCapacity(t *testing.T) {
	c, _ := newTestConsole()

	for i := 0; i < 2*LogCapacity; i++ {
		c.HandleLine(fmt.Sprintf("%d", i))
	}

	lines := c.Lines()
	if len(lines) != LogCapacity {
		t.Fatalf("expected the log capped at %d lines, got %d", LogCapacity, len(lines))
	}

	// newest entries win
	if lines[len(lines)-1].Text != fmt.Sprintf("%d", 2*LogCapacity-1) {
		t.Errorf("expected the newest result last, got %q", lines[len(lines)-1].Text)
	}
}
