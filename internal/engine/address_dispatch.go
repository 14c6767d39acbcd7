package engine

import (
	"fmt"

	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

// execAddress handles the ADDRESS and ADDRESS_WITH_STRING command types
// (spec.md §4.6): switch the current target, and for ADDRESS_WITH_STRING,
// immediately dispatch the accompanying command string.
func (e *Engine) execAddress(cmd *ast.Command) (ControlResult, error) {
	e.Addresses.SwitchTo(cmd.Target)
	if cmd.Type != ast.AddressWithString {
		return Continue, nil
	}
	return e.dispatchCommandString(cmd, cmd.CommandString)
}

// execQuotedString handles QUOTED_STRING and HEREDOC_STRING commands
// (spec.md §4.6): SAY it under DEFAULT, otherwise route it to the current
// ADDRESS target.
func (e *Engine) execQuotedString(cmd *ast.Command) (ControlResult, error) {
	return e.dispatchCommandString(cmd, cmd.StringValue)
}

func (e *Engine) dispatchCommandString(cmd *ast.Command, expr *ast.Expr) (ControlResult, error) {
	raw, err := e.renderTemplateExpr(expr)
	if err != nil {
		return Continue, err
	}

	current := e.Addresses.Current()
	if current == DefaultTarget {
		fmt.Fprintln(e.Out, e.interpolateWithStore(raw))
		return Continue, nil
	}

	target, ok := e.Addresses.Lookup(current)
	if !ok || target.Handler == nil {
		return Continue, newFault(CategoryAddress, cmd.LineNumber, e.sourceLine(cmd.LineNumber), e.sourceFilename,
			"ADDRESS target %q has no registered handler", current)
	}

	commandString := raw
	if target.Meta.InterpolationHandledByEngine {
		commandString = e.interpolateWithStore(raw)
	}

	ctxJSON, err := buildContextJSON(e.Store.Snapshot())
	if err != nil {
		return Continue, err
	}
	source := SourceContext{LineNumber: cmd.LineNumber, SourceLine: e.sourceLine(cmd.LineNumber), SourceFilename: e.sourceFilename}

	kind := RecordAddressCommand
	if cmd.Type == ast.HeredocString {
		kind = RecordAddressHeredoc
	}
	e.emitTrace(kind, commandString, cmd.LineNumber, nil)

	resultJSON, err := target.Handler(commandString, ctxJSON, source)
	if err != nil {
		e.Store.Set("RC", values.Int{V: 1})
		e.Store.Set("ERRORTEXT", values.Str{V: err.Error()})
		return Continue, newFault(CategoryAddress, cmd.LineNumber, e.sourceLine(cmd.LineNumber), e.sourceFilename,
			"ADDRESS %s: %v", current, err)
	}

	outcome := parseAddressResponse(resultJSON)
	e.applyAddressOutcome(target, outcome)
	return Continue, nil
}

func (e *Engine) applyAddressOutcome(target *Target, outcome addressOutcome) {
	if outcome.IsScalar {
		e.Store.Set("RC", values.Int{V: 0})
		e.Store.Set("RESULT", outcome.Scalar)
		return
	}

	if outcome.Success {
		e.Store.Set("RC", values.Int{V: 0})
	} else {
		code := outcome.ErrorCode
		if code == 0 {
			code = 1
		}
		e.Store.Set("RC", values.Int{V: int64(code)})
		e.Store.Set("ERRORTEXT", values.Str{V: outcome.ErrorMessage})
	}

	if !target.Meta.SuppressResultVariable {
		e.Store.Set("RESULT", outcome.Scalar)
	}
	for name, v := range outcome.RexxVariables {
		e.Store.Set(name, v)
	}
}

// tryAssignmentMethodCall implements the §4.6 closing paragraph: an
// assignment whose right-hand side names a method the current ADDRESS
// target declares is dispatched as a zero-argument call to that target;
// failure falls back to ordinary expression evaluation silently.
func (e *Engine) tryAssignmentMethodCall(name string) (values.Value, bool) {
	current := e.Addresses.Current()
	if current == DefaultTarget {
		return nil, false
	}
	target, ok := e.Addresses.Lookup(current)
	if !ok || !target.Methods[values.CanonicalName(name)] {
		return nil, false
	}
	ctxJSON, err := buildContextJSON(e.Store.Snapshot())
	if err != nil {
		return nil, false
	}
	resultJSON, err := target.Handler(name, ctxJSON, SourceContext{})
	if err != nil {
		return nil, false
	}
	outcome := parseAddressResponse(resultJSON)
	e.applyAddressOutcome(target, outcome)
	return outcome.Scalar, true
}

func (e *Engine) renderTemplateExpr(expr *ast.Expr) (string, error) {
	if expr == nil {
		return "", nil
	}
	v, err := e.evaluateExpression(expr)
	if err != nil {
		return "", err
	}
	return v.String(), nil
}
