package engine

import (
	"fmt"
	"strings"

	"github.com/rexxgo/rexxcore/internal/registry"
	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

// evaluateExpression implements C2 for the parser's static Expr contract
// (spec.md §4.2).
func (e *Engine) evaluateExpression(expr *ast.Expr) (values.Value, error) {
	if expr == nil {
		return values.Str{V: ""}, nil
	}
	switch expr.Kind {
	case ast.ExprLiteral:
		return literalValue(expr.Literal), nil
	case ast.ExprVariable:
		return e.Store.Get(expr.Name), nil
	case ast.ExprArithmetic:
		return e.evalArithmetic(expr)
	case ast.ExprComparison:
		return e.evalComparison(expr)
	case ast.ExprLogical:
		return e.evalLogical(expr)
	case ast.ExprConcat:
		return e.evalConcat(expr)
	case ast.ExprFunctionCall:
		return e.evalFunctionCall(expr)
	case ast.ExprMethodCall:
		return e.evalMethodCall(expr)
	case ast.ExprSequence:
		items := make([]values.Value, len(expr.Elements))
		for i, el := range expr.Elements {
			v, err := e.evaluateExpression(el)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return values.Seq{Items: items}, nil
	case ast.ExprMapping:
		m := values.NewMap()
		for _, pair := range expr.Pairs {
			k, err := e.evaluateExpression(pair.Key)
			if err != nil {
				return nil, err
			}
			v, err := e.evaluateExpression(pair.Value)
			if err != nil {
				return nil, err
			}
			m.Set(k.String(), v)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q", expr.Kind)
	}
}

func literalValue(lit any) values.Value {
	switch v := lit.(type) {
	case string:
		return values.Str{V: v}
	case int64:
		return values.Int{V: v}
	case int:
		return values.Int{V: int64(v)}
	case float64:
		return values.Float{V: v}
	case bool:
		return values.Bool{V: v}
	case nil:
		return values.Str{V: ""}
	default:
		return values.Str{V: fmt.Sprint(v)}
	}
}

// evalCondition coerces an expression to boolean via REXX truthiness
// (spec.md §4.2 closing paragraph).
func (e *Engine) evalCondition(expr *ast.Expr) (bool, error) {
	v, err := e.evaluateExpression(expr)
	if err != nil {
		return false, err
	}
	return values.Truthy(v), nil
}

func (e *Engine) evalArithmetic(expr *ast.Expr) (values.Value, error) {
	left, err := e.evaluateExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evaluateExpression(expr.Right)
	if err != nil {
		return nil, err
	}
	lf, lok := values.AsNumeric(left)
	rf, rok := values.AsNumeric(right)
	if !lok || !rok {
		return nil, fmt.Errorf("arithmetic on non-numeric operand")
	}

	var result float64
	switch expr.Operator {
	case "+":
		result = lf + rf
	case "-":
		result = lf - rf
	case "*":
		result = lf * rf
	case "/":
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		result = lf / rf
	case "//":
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		result = float64(int64(lf) % int64(rf))
	case "%":
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		result = float64(int64(lf) / int64(rf))
	case "**":
		result = ipow(lf, rf)
	default:
		return nil, fmt.Errorf("unknown arithmetic operator %q", expr.Operator)
	}

	result = round(result, e.Numeric.Digits)
	if result == float64(int64(result)) && expr.Operator != "/" {
		return values.Int{V: int64(result)}, nil
	}
	return values.Float{V: result}, nil
}

func ipow(base, exp float64) float64 {
	result := 1.0
	neg := exp < 0
	if neg {
		exp = -exp
	}
	for i := 0; i < int(exp); i++ {
		result *= base
	}
	if neg {
		return 1 / result
	}
	return result
}

func (e *Engine) evalComparison(expr *ast.Expr) (values.Value, error) {
	left, err := e.evaluateExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evaluateExpression(expr.Right)
	if err != nil {
		return nil, err
	}

	var cmp int
	if values.IsNumericLooking(left) && values.IsNumericLooking(right) {
		lf, _ := values.AsNumeric(left)
		rf, _ := values.AsNumeric(right)
		lf, rf = round(lf, e.Numeric.comparisonDigits()), round(rf, e.Numeric.comparisonDigits())
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		}
	} else {
		ls, rs := left.String(), right.String()
		if expr.Operator == "=" || expr.Operator == "<>" || expr.Operator == "><" {
			ls, rs = strings.TrimSpace(ls), strings.TrimSpace(rs)
		}
		cmp = strings.Compare(ls, rs)
	}

	var result bool
	switch expr.Operator {
	case "=", "==":
		result = cmp == 0
	case "<>", "><", "\\=":
		result = cmp != 0
	case "<":
		result = cmp < 0
	case ">":
		result = cmp > 0
	case "<=":
		result = cmp <= 0
	case ">=":
		result = cmp >= 0
	default:
		return nil, fmt.Errorf("unknown comparison operator %q", expr.Operator)
	}
	return values.Bool{V: result}, nil
}

func (e *Engine) evalLogical(expr *ast.Expr) (values.Value, error) {
	op := strings.ToUpper(expr.Operator)
	if op == "NOT" || op == "¬" {
		right, err := e.evaluateExpression(expr.Right)
		if err != nil {
			return nil, err
		}
		return values.Bool{V: !values.Truthy(right)}, nil
	}

	left, err := e.evaluateExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	leftTruthy := values.Truthy(left)

	switch op {
	case "&", "AND":
		if !leftTruthy {
			return values.Bool{V: false}, nil
		}
		right, err := e.evaluateExpression(expr.Right)
		if err != nil {
			return nil, err
		}
		return values.Bool{V: values.Truthy(right)}, nil
	case "|", "OR":
		if leftTruthy {
			return values.Bool{V: true}, nil
		}
		right, err := e.evaluateExpression(expr.Right)
		if err != nil {
			return nil, err
		}
		return values.Bool{V: values.Truthy(right)}, nil
	default:
		return nil, fmt.Errorf("unknown logical operator %q", expr.Operator)
	}
}

func (e *Engine) evalConcat(expr *ast.Expr) (values.Value, error) {
	left, err := e.evaluateExpression(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.evaluateExpression(expr.Right)
	if err != nil {
		return nil, err
	}
	if expr.Operator == "||" {
		return values.Str{V: left.String() + right.String()}, nil
	}
	return values.Str{V: left.String() + " " + right.String()}, nil
}

// evalFunctionCall implements the resolution order spec.md §4.2 rule 95
// names. REQUIRE is special-cased ahead of every registry lookup so it
// never shadows (or is shadowed by) an ordinary built-in.
func (e *Engine) evalFunctionCall(expr *ast.Expr) (values.Value, error) {
	name := values.CanonicalName(expr.FuncName)
	if name == "REQUIRE" {
		return e.evalRequireCall(expr)
	}

	args, named, err := e.evalCallArgs(expr)
	if err != nil {
		return nil, err
	}

	// (2) built-in functions
	if _, ok := e.Registry.LookupFunction(name); ok {
		if named != nil {
			return e.Registry.CallFunctionNamed(name, named)
		}
		return e.Registry.CallFunction(name, args)
	}

	// (3) built-in operations, receiving the raw named-param mapping
	if info, ok := e.Registry.LookupOperation(name); ok {
		opArgs := named
		if opArgs == nil {
			opArgs = positionalToNamed(info.Params, args)
		}
		return e.Registry.CallOperation(name, opArgs)
	}

	// (5) method on the currently active ADDRESS target
	if v, ok := e.tryAssignmentMethodCall(name); ok {
		return v, nil
	}

	// (8) error with categorized message
	return nil, fmt.Errorf("undefined function: %s", expr.FuncName)
}

func (e *Engine) evalCallArgs(expr *ast.Expr) ([]values.Value, map[string]values.Value, error) {
	if len(expr.NamedArgs) > 0 {
		named := make(map[string]values.Value, len(expr.NamedArgs))
		for k, argExpr := range expr.NamedArgs {
			v, err := e.evaluateExpression(argExpr)
			if err != nil {
				return nil, nil, err
			}
			named[k] = v
		}
		return nil, named, nil
	}
	args := make([]values.Value, len(expr.Args))
	for i, argExpr := range expr.Args {
		v, err := e.evaluateExpression(argExpr)
		if err != nil {
			return nil, nil, err
		}
		args[i] = v
	}
	return args, nil, nil
}

// positionalToNamed zips positional arguments onto an operation's declared
// parameter names, the mirror image of registry.adaptPositional, needed
// because call sites written positionally still must hand an operation a
// named mapping (spec.md §4.7: operations "receive the named-params
// mapping directly").
func positionalToNamed(params []registry.Param, args []values.Value) map[string]values.Value {
	named := make(map[string]values.Value, len(args))
	for i, v := range args {
		if i < len(params) {
			named[params[i].Name] = v
		} else {
			named[fmt.Sprintf("%d", i+1)] = v
		}
	}
	return named
}

func (e *Engine) evalMethodCall(expr *ast.Expr) (values.Value, error) {
	if v, ok := e.tryAssignmentMethodCall(expr.FuncName); ok {
		return v, nil
	}
	return nil, fmt.Errorf("address target %q has no method %q", expr.MethodOn, expr.FuncName)
}
