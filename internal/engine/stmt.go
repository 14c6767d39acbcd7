package engine

import (
	"fmt"

	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

// execAssignment implements ASSIGNMENT (spec.md §6): a plain expression, a
// quoted-string literal, or a nested CALL/function-call target.
func (e *Engine) execAssignment(cmd *ast.Command) (ControlResult, error) {
	var v values.Value
	var err error

	switch {
	case cmd.AssignCommand != nil:
		if _, cerr := e.execCommand(cmd.AssignCommand); cerr != nil {
			return Continue, cerr
		}
		v = e.Store.Get("RESULT")
	case cmd.Value != nil:
		v, err = e.evaluateExpression(cmd.Value)
	case cmd.Expression != nil:
		v, err = e.evaluateExpression(cmd.Expression)
	default:
		v = values.Str{V: ""}
	}
	if err != nil {
		return Continue, err
	}

	e.Store.Set(cmd.Variable, v)
	e.emitTrace(RecordAssignment, fmt.Sprintf("%s = %s", cmd.Variable, v.String()), cmd.LineNumber, v)
	return Continue, nil
}

// execFunctionCall implements a bare FUNCTION_CALL statement (an
// expression evaluated for its side effects; REQUIRE most commonly
// appears this way).
func (e *Engine) execFunctionCall(cmd *ast.Command) (ControlResult, error) {
	v, err := e.evaluateExpression(cmd.Expr)
	if err != nil {
		return Continue, err
	}
	e.Store.Set("RESULT", v)
	e.emitTrace(RecordCall, v.String(), cmd.LineNumber, v)
	return Continue, nil
}

// execReturn implements RETURN.
func (e *Engine) execReturn(cmd *ast.Command) (ControlResult, error) {
	if cmd.ReturnValue == nil {
		return Returned(values.Str{V: ""}), nil
	}
	v, err := e.evaluateExpression(cmd.ReturnValue)
	if err != nil {
		return Continue, err
	}
	return Returned(v), nil
}

// execExit implements EXIT: always terminates the run (spec.md §4.1).
func (e *Engine) execExit(cmd *ast.Command) (ControlResult, error) {
	code := 0
	if cmd.ReturnValue != nil {
		v, err := e.evaluateExpression(cmd.ReturnValue)
		if err != nil {
			return Continue, err
		}
		if n, ok := values.AsNumeric(v); ok {
			code = int(n)
		}
	}
	return Exited(code), nil
}

// execSay implements SAY: write the evaluated expression followed by a
// newline to the engine's configured output.
func (e *Engine) execSay(cmd *ast.Command) (ControlResult, error) {
	v, err := e.evaluateExpression(cmd.SayExpression)
	if err != nil {
		return Continue, err
	}
	fmt.Fprintln(e.Out, v.String())
	return Continue, nil
}

// execSignal implements SIGNAL ON/OFF and the bare jump form (spec.md
// §4.5). A bare jump returns a Jump ControlResult directly; ON/OFF
// mutate the handler table and fall through to the next command.
func (e *Engine) execSignal(cmd *ast.Command) (ControlResult, error) {
	switch cmd.SignalAction {
	case ast.SignalOn:
		e.handlers.On(cmd.ConditionName, cmd.SignalLabel)
		return Continue, nil
	case ast.SignalOff:
		e.handlers.Off(cmd.ConditionName)
		return Continue, nil
	default:
		return Jump(cmd.SignalLabel), nil
	}
}

// execLabel is a no-op when reached by ordinary (non-top-level) control
// flow — e.g. DO/IF bodies that happen to contain a label destined to be a
// SIGNAL target reached via fallthrough inside a nested body. Top-level
// fallthrough avoidance is C14's job (internal/engine/engine.go's Run
// loop), not this handler's.
func (e *Engine) execLabel(*ast.Command) (ControlResult, error) {
	return Continue, nil
}

// execNumeric implements NUMERIC DIGITS/FUZZ/FORM (spec.md §4.12).
func (e *Engine) execNumeric(cmd *ast.Command) (ControlResult, error) {
	v, err := e.evaluateExpression(cmd.NumericValue)
	if err != nil {
		return Continue, err
	}
	switch cmd.NumericSetting {
	case "DIGITS":
		if n, ok := values.AsNumeric(v); ok {
			e.Numeric.Digits = int(n)
		}
	case "FUZZ":
		if n, ok := values.AsNumeric(v); ok {
			e.Numeric.Fuzz = int(n)
		}
	case "FORM":
		e.Numeric.Form = v.String()
	default:
		return Continue, fmt.Errorf("unknown NUMERIC setting %q", cmd.NumericSetting)
	}
	return Continue, nil
}

// execTrace implements TRACE mode switching (spec.md §4.10).
func (e *Engine) execTrace(cmd *ast.Command) (ControlResult, error) {
	e.traceMode = Mode(cmd.TraceMode)
	return Continue, nil
}

// execNoInterpret implements NO-INTERPRET (spec.md §4.9): subsequent
// INTERPRET calls fail immediately until... nothing resets it; this core
// has no statement that clears the flag, matching the one-way latch the
// spec describes.
func (e *Engine) execNoInterpret(*ast.Command) (ControlResult, error) {
	e.noInterpret = true
	return Continue, nil
}
