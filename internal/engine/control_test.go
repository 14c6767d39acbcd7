package engine

import (
	"testing"

	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

func doRepeatCmd(line int, count *ast.Expr, body []*ast.Command) *ast.Command {
	return &ast.Command{Type: ast.Do, LineNumber: line, Count: count, Body: body}
}

func doWhileCmd(line int, cond *ast.Expr, isUntil bool, body []*ast.Command) *ast.Command {
	return &ast.Command{Type: ast.Do, LineNumber: line, DoCondition: cond, IsUntil: isUntil, Body: body}
}

func doOverCmd(line int, v string, over *ast.Expr, body []*ast.Command) *ast.Command {
	return &ast.Command{Type: ast.Do, LineNumber: line, DoVariable: v, OverExpression: over, Body: body}
}

func selectCmd(line int, whens []*ast.WhenClause, otherwise []*ast.Command) *ast.Command {
	return &ast.Command{Type: ast.Select, LineNumber: line, Whens: whens, Otherwise: otherwise}
}

func TestDoRepeatRunsExactCount(t *testing.T) {
	e := New()
	commands := []*ast.Command{
		assignCmd(1, "N", lit(int64(0))),
		doRepeatCmd(2, lit(int64(4)), []*ast.Command{
			assignCmd(3, "N", arithE("+", varE("N"), lit(int64(1)))),
		}),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Store.Get("N").String(); got != "4" {
		t.Fatalf("N = %q, want 4", got)
	}
}

func TestDoWhileStopsWhenConditionFalse(t *testing.T) {
	e := New()
	commands := []*ast.Command{
		assignCmd(1, "N", lit(int64(0))),
		doWhileCmd(2, cmpE("<", varE("N"), lit(int64(3))), false, []*ast.Command{
			assignCmd(3, "N", arithE("+", varE("N"), lit(int64(1)))),
		}),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Store.Get("N").String(); got != "3" {
		t.Fatalf("N = %q, want 3", got)
	}
}

func TestDoUntilRunsBodyAtLeastOnce(t *testing.T) {
	e := New()
	commands := []*ast.Command{
		assignCmd(1, "N", lit(int64(0))),
		doWhileCmd(2, cmpE(">=", varE("N"), lit(int64(0))), true, []*ast.Command{
			assignCmd(3, "N", arithE("+", varE("N"), lit(int64(1)))),
		}),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// UNTIL tests after the body, so even though the condition is true from
	// the start, the body must still run exactly once.
	if got := e.Store.Get("N").String(); got != "1" {
		t.Fatalf("N = %q, want 1", got)
	}
}

func TestDoOverSequence(t *testing.T) {
	e := New()
	commands := []*ast.Command{
		assignCmd(1, "TOTAL", lit(int64(0))),
		doOverCmd(2, "ITEM", seqE(lit(int64(2)), lit(int64(4)), lit(int64(6))), []*ast.Command{
			assignCmd(3, "TOTAL", arithE("+", varE("TOTAL"), varE("ITEM"))),
		}),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Store.Get("TOTAL").String(); got != "12" {
		t.Fatalf("TOTAL = %q, want 12", got)
	}
}

func TestDoOverRestoresPriorLoopVariable(t *testing.T) {
	e := New()
	e.Store.Set("ITEM", values.Str{V: "outer"})
	commands := []*ast.Command{
		doOverCmd(1, "ITEM", seqE(lit(int64(1))), nil),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Store.Get("ITEM").String(); got != "outer" {
		t.Fatalf("ITEM = %q, want outer restored", got)
	}
}

func TestSelectFirstMatchingWhenWins(t *testing.T) {
	e := New()
	commands := []*ast.Command{
		assignCmd(1, "X", lit(int64(2))),
		selectCmd(2, []*ast.WhenClause{
			{Condition: cmpE("=", varE("X"), lit(int64(1))), Body: []*ast.Command{assignCmd(3, "LABEL", lit("one"))}},
			{Condition: cmpE("=", varE("X"), lit(int64(2))), Body: []*ast.Command{assignCmd(4, "LABEL", lit("two"))}},
		}, nil),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Store.Get("LABEL").String(); got != "two" {
		t.Fatalf("LABEL = %q, want two", got)
	}
}

func TestSelectFallsThroughToOtherwise(t *testing.T) {
	e := New()
	commands := []*ast.Command{
		assignCmd(1, "X", lit(int64(99))),
		selectCmd(2, []*ast.WhenClause{
			{Condition: cmpE("=", varE("X"), lit(int64(1))), Body: []*ast.Command{assignCmd(3, "LABEL", lit("one"))}},
		}, []*ast.Command{assignCmd(4, "LABEL", lit("other"))}),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Store.Get("LABEL").String(); got != "other" {
		t.Fatalf("LABEL = %q, want other", got)
	}
}
