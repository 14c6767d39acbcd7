package engine

import (
	"fmt"

	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

const maxWhileIterations = 10000

// execIf implements IF/ELSE (spec.md §4.3).
func (e *Engine) execIf(cmd *ast.Command) (ControlResult, error) {
	test, err := e.evalCondition(cmd.Condition)
	if err != nil {
		return Continue, err
	}
	if test {
		return e.execBody(cmd.ThenBody)
	}
	return e.execBody(cmd.ElseBody)
}

// execBody runs a command list, bubbling the first terminating result.
func (e *Engine) execBody(body []*ast.Command) (ControlResult, error) {
	for _, cmd := range body {
		e.execStack.UpdateTop(cmd.LineNumber, e.sourceLine(cmd.LineNumber))
		cr, err := e.execCommand(cmd)
		if err != nil {
			return Continue, err
		}
		if cr.IsTerminating() {
			return cr, nil
		}
	}
	return Continue, nil
}

// execDo implements every DO variant (spec.md §4.3), selected by which
// fields the command carries.
func (e *Engine) execDo(cmd *ast.Command) (ControlResult, error) {
	switch {
	case cmd.DoVariable != "" && cmd.Start != nil:
		return e.execDoRange(cmd)
	case cmd.OverExpression != nil:
		return e.execDoOver(cmd)
	case cmd.Count != nil:
		return e.execDoRepeat(cmd)
	case cmd.DoCondition != nil:
		return e.execDoWhileUntil(cmd)
	default:
		return e.execBody(cmd.Body)
	}
}

func (e *Engine) execDoRange(cmd *ast.Command) (ControlResult, error) {
	startV, err := e.evaluateExpression(cmd.Start)
	if err != nil {
		return Continue, err
	}
	start, ok := values.AsNumeric(startV)
	if !ok {
		return Continue, fmt.Errorf("DO range start is not numeric")
	}

	end := start
	if cmd.End != nil {
		endV, err := e.evaluateExpression(cmd.End)
		if err != nil {
			return Continue, err
		}
		end, ok = values.AsNumeric(endV)
		if !ok {
			return Continue, fmt.Errorf("DO range end is not numeric")
		}
	}

	step := 1.0
	if cmd.Step != nil {
		stepV, err := e.evaluateExpression(cmd.Step)
		if err != nil {
			return Continue, err
		}
		step, ok = values.AsNumeric(stepV)
		if !ok {
			return Continue, fmt.Errorf("DO range step is not numeric")
		}
	}
	if step == 0 {
		return Continue, fmt.Errorf("DO range step of 0 is an error")
	}

	hadPrior := e.Store.Has(cmd.DoVariable)
	var prior values.Value
	if hadPrior {
		prior = e.Store.Get(cmd.DoVariable)
	}
	defer func() {
		if hadPrior {
			e.Store.Set(cmd.DoVariable, prior)
		}
	}()

	i := start
	for (step > 0 && i <= end) || (step < 0 && i >= end) {
		e.Store.Set(cmd.DoVariable, numericValue(i))
		cr, err := e.execBody(cmd.Body)
		if err != nil {
			return Continue, err
		}
		if cr.IsTerminating() {
			return cr, nil
		}
		i += step
	}
	return Continue, nil
}

func (e *Engine) execDoRepeat(cmd *ast.Command) (ControlResult, error) {
	countV, err := e.evaluateExpression(cmd.Count)
	if err != nil {
		return Continue, err
	}
	count, ok := values.AsNumeric(countV)
	if !ok {
		return Continue, fmt.Errorf("DO repeat count is not numeric")
	}
	if count < 0 {
		return Continue, fmt.Errorf("DO repeat count is negative")
	}
	for i := 0; i < int(count); i++ {
		cr, err := e.execBody(cmd.Body)
		if err != nil {
			return Continue, err
		}
		if cr.IsTerminating() {
			return cr, nil
		}
	}
	return Continue, nil
}

func (e *Engine) execDoWhileUntil(cmd *ast.Command) (ControlResult, error) {
	for iterations := 0; ; iterations++ {
		if iterations >= maxWhileIterations {
			return Continue, fmt.Errorf("DO WHILE/UNTIL exceeded %d iterations", maxWhileIterations)
		}
		if !cmd.IsUntil {
			test, err := e.evalCondition(cmd.DoCondition)
			if err != nil {
				return Continue, err
			}
			if !test {
				return Continue, nil
			}
		}
		cr, err := e.execBody(cmd.Body)
		if err != nil {
			return Continue, err
		}
		if cr.IsTerminating() {
			return cr, nil
		}
		if cmd.IsUntil {
			test, err := e.evalCondition(cmd.DoCondition)
			if err != nil {
				return Continue, err
			}
			if test {
				return Continue, nil
			}
		}
	}
}

func (e *Engine) execDoOver(cmd *ast.Command) (ControlResult, error) {
	collection, err := e.evaluateExpression(cmd.OverExpression)
	if err != nil {
		return Continue, err
	}

	items, err := elementsOf(collection)
	if err != nil {
		return Continue, err
	}

	hadPrior := e.Store.Has(cmd.DoVariable)
	var prior values.Value
	if hadPrior {
		prior = e.Store.Get(cmd.DoVariable)
	}
	defer func() {
		if hadPrior {
			e.Store.Set(cmd.DoVariable, prior)
		}
	}()

	for _, item := range items {
		e.Store.Set(cmd.DoVariable, item)
		cr, err := e.execBody(cmd.Body)
		if err != nil {
			return Continue, err
		}
		if cr.IsTerminating() {
			return cr, nil
		}
	}
	return Continue, nil
}

// elementsOf implements DO OVER's collection-shape detection (spec.md
// §4.3): sequence iterates in order, mapping iterates over values, string
// iterates by code unit, a 1-indexed array-like mapping (has key "1" but
// not "0") iterates its values in index order.
func elementsOf(v values.Value) ([]values.Value, error) {
	switch t := v.(type) {
	case values.Seq:
		return t.Items, nil
	case values.Str:
		runes := []rune(t.V)
		out := make([]values.Value, len(runes))
		for i, r := range runes {
			out[i] = values.Str{V: string(r)}
		}
		return out, nil
	case *values.Map:
		if _, hasOne := t.Get("1"); hasOne {
			if _, hasZero := t.Get("0"); !hasZero {
				var out []values.Value
				for i := 1; ; i++ {
					item, ok := t.Get(fmt.Sprint(i))
					if !ok {
						break
					}
					out = append(out, item)
				}
				return out, nil
			}
		}
		out := make([]values.Value, 0, t.Len())
		for _, k := range t.Keys() {
			item, _ := t.Get(k)
			out = append(out, item)
		}
		return out, nil
	case values.Absent:
		return nil, fmt.Errorf("DO OVER: %s is undefined", t.Name)
	default:
		return nil, fmt.Errorf("DO OVER: unsupported collection type %s", v.Kind())
	}
}

func numericValue(f float64) values.Value {
	if f == float64(int64(f)) {
		return values.Int{V: int64(f)}
	}
	return values.Float{V: f}
}

// execSelect implements SELECT/WHEN/OTHERWISE (spec.md §4.3).
func (e *Engine) execSelect(cmd *ast.Command) (ControlResult, error) {
	for _, when := range cmd.Whens {
		test, err := e.evalCondition(when.Condition)
		if err != nil {
			return Continue, err
		}
		if test {
			return e.execBody(when.Body)
		}
	}
	if cmd.Otherwise != nil {
		return e.execBody(cmd.Otherwise)
	}
	return Continue, nil
}
