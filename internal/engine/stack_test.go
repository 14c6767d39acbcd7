package engine

import (
	"testing"

	"github.com/rexxgo/rexxcore/pkg/ast"
)

func pushCmd(line int, expr *ast.Expr) *ast.Command {
	return &ast.Command{Type: ast.Push, LineNumber: line, StackExpression: expr}
}

func queueCmd(line int, expr *ast.Expr) *ast.Command {
	return &ast.Command{Type: ast.Queue, LineNumber: line, StackExpression: expr}
}

func pullCmd(line int, variable string) *ast.Command {
	return &ast.Command{Type: ast.Pull, LineNumber: line, StackVariable: variable}
}

func TestPushIsLIFO(t *testing.T) {
	e := New()
	commands := []*ast.Command{
		pushCmd(1, lit("first")),
		pushCmd(2, lit("second")),
		pullCmd(3, "A"),
		pullCmd(4, "B"),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Store.Get("A").String(); got != "second" {
		t.Fatalf("A = %q, want second (last pushed, first pulled)", got)
	}
	if got := e.Store.Get("B").String(); got != "first" {
		t.Fatalf("B = %q, want first", got)
	}
}

func TestQueueIsFIFO(t *testing.T) {
	e := New()
	commands := []*ast.Command{
		queueCmd(1, lit("first")),
		queueCmd(2, lit("second")),
		pullCmd(3, "A"),
		pullCmd(4, "B"),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Store.Get("A").String(); got != "first" {
		t.Fatalf("A = %q, want first (queued order)", got)
	}
	if got := e.Store.Get("B").String(); got != "second" {
		t.Fatalf("B = %q, want second", got)
	}
}

func TestPullFromEmptyStackIsEmptyString(t *testing.T) {
	e := New()
	commands := []*ast.Command{pullCmd(1, "X")}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Store.Get("X").String(); got != "" {
		t.Fatalf("X = %q, want empty string", got)
	}
}
