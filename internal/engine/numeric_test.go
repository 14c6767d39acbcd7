package engine

import (
	"testing"

	"github.com/rexxgo/rexxcore/pkg/ast"
)

func numericDigitsCmd(line int, n *ast.Expr) *ast.Command {
	return &ast.Command{Type: ast.Numeric, LineNumber: line, NumericSetting: "DIGITS", NumericValue: n}
}

func numericFuzzCmd(line int, n *ast.Expr) *ast.Command {
	return &ast.Command{Type: ast.Numeric, LineNumber: line, NumericSetting: "FUZZ", NumericValue: n}
}

func TestNumericDigitsLimitsDivisionPrecision(t *testing.T) {
	e := New()
	commands := []*ast.Command{
		numericDigitsCmd(1, lit(int64(3))),
		assignCmd(2, "X", arithE("/", lit(int64(1)), lit(int64(3)))),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Store.Get("X").String(); got != "0.333" {
		t.Fatalf("X = %q, want 0.333 at 3 digits of precision", got)
	}
}

func TestNumericFuzzWidensComparisonTolerance(t *testing.T) {
	e := New()
	commands := []*ast.Command{
		assignCmd(1, "EXACT", cmpE("=", lit(100.01), lit(100.02))),
		numericFuzzCmd(2, lit(int64(7))),
		assignCmd(3, "FUZZY", cmpE("=", lit(100.01), lit(100.02))),
	}
	if _, err := e.Run(commands, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e.Store.Get("EXACT").String(); got != "0" {
		t.Fatalf("EXACT = %q, want 0 (false, no fuzz)", got)
	}
	if got := e.Store.Get("FUZZY").String(); got != "1" {
		t.Fatalf("FUZZY = %q, want 1 (true, FUZZ 7 widens tolerance to 2 digits)", got)
	}
}
