package engine

import "github.com/rexxgo/rexxcore/pkg/ast"

// Small builders for ast.Command/ast.Expr fixtures, used across this
// package's test files instead of repeating the same struct literals.

func lit(v any) *ast.Expr { return &ast.Expr{Kind: ast.ExprLiteral, Literal: v} }

func varE(name string) *ast.Expr { return &ast.Expr{Kind: ast.ExprVariable, Name: name} }

func arithE(op string, l, r *ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprArithmetic, Operator: op, Left: l, Right: r}
}

func cmpE(op string, l, r *ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprComparison, Operator: op, Left: l, Right: r}
}

func callE(name string, args ...*ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprFunctionCall, FuncName: name, Args: args}
}

func seqE(items ...*ast.Expr) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprSequence, Elements: items}
}

func mapE(pairs ...*ast.Pair) *ast.Expr {
	return &ast.Expr{Kind: ast.ExprMapping, Pairs: pairs}
}

func pairE(key string, v *ast.Expr) *ast.Pair {
	return &ast.Pair{Key: lit(key), Value: v}
}

func assignCmd(line int, name string, expr *ast.Expr) *ast.Command {
	return &ast.Command{Type: ast.Assignment, LineNumber: line, Variable: name, Expression: expr}
}

func sayCmd(line int, expr *ast.Expr) *ast.Command {
	return &ast.Command{Type: ast.Say, LineNumber: line, SayExpression: expr}
}

func returnCmd(line int, expr *ast.Expr) *ast.Command {
	return &ast.Command{Type: ast.Return, LineNumber: line, ReturnValue: expr}
}

func exitCmd(line int, expr *ast.Expr) *ast.Command {
	return &ast.Command{Type: ast.Exit, LineNumber: line, ReturnValue: expr}
}

func labelCmd(line int, name string) *ast.Command {
	return &ast.Command{Type: ast.Label, LineNumber: line, LabelName: name}
}

func callCmd(line int, sub string, args ...*ast.Expr) *ast.Command {
	return &ast.Command{Type: ast.Call, LineNumber: line, Subroutine: sub, Arguments: args}
}

func funcCallCmd(line int, expr *ast.Expr) *ast.Command {
	return &ast.Command{Type: ast.FunctionCall, LineNumber: line, Expr: expr}
}

func ifCmd(line int, cond *ast.Expr, then, els []*ast.Command) *ast.Command {
	return &ast.Command{Type: ast.If, LineNumber: line, Condition: cond, ThenBody: then, ElseBody: els}
}

func doRangeCmd(line int, v string, start, end *ast.Expr, body []*ast.Command) *ast.Command {
	return &ast.Command{Type: ast.Do, LineNumber: line, DoVariable: v, Start: start, End: end, Body: body}
}

func signalOnCmd(line int, cond, label string) *ast.Command {
	return &ast.Command{Type: ast.Signal, LineNumber: line, SignalAction: ast.SignalOn, ConditionName: cond, SignalLabel: label}
}

// stubParser maps a source string to a pre-built command list, standing in
// for the host-supplied parser INTERPRET/REQUIRE need (Parser is out of this
// module's scope; see engine.go's Parser interface).
type stubParser struct {
	byText map[string][]*ast.Command
}

func (p *stubParser) Parse(source string) ([]*ast.Command, error) {
	return p.byText[source], nil
}
