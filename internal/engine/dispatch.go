package engine

import (
	"fmt"

	"github.com/rexxgo/rexxcore/pkg/ast"
)

// dispatch is the raw per-Type switch execCommand wraps with fault
// recovery. One case per ast.Type, each delegating to the concern-specific
// file that owns it.
func (e *Engine) dispatch(cmd *ast.Command) (ControlResult, error) {
	switch cmd.Type {
	case ast.Assignment:
		return e.execAssignment(cmd)
	case ast.FunctionCall:
		return e.execFunctionCall(cmd)
	case ast.If:
		return e.execIf(cmd)
	case ast.Do:
		return e.execDo(cmd)
	case ast.Select:
		return e.execSelect(cmd)
	case ast.Call:
		return e.execCall(cmd)
	case ast.Return:
		return e.execReturn(cmd)
	case ast.Exit:
		return e.execExit(cmd)
	case ast.Say:
		return e.execSay(cmd)
	case ast.Address, ast.AddressWithString:
		return e.execAddress(cmd)
	case ast.QuotedString, ast.HeredocString:
		return e.execQuotedString(cmd)
	case ast.Signal:
		return e.execSignal(cmd)
	case ast.Label:
		return e.execLabel(cmd)
	case ast.Numeric:
		return e.execNumeric(cmd)
	case ast.Parse:
		return e.execParse(cmd)
	case ast.Push:
		return e.execPush(cmd)
	case ast.Pull:
		return e.execPull(cmd)
	case ast.Queue:
		return e.execQueue(cmd)
	case ast.Trace:
		return e.execTrace(cmd)
	case ast.InterpretStatement:
		return e.execInterpret(cmd)
	case ast.NoInterpret:
		return e.execNoInterpret(cmd)
	case ast.RetryOnStale:
		return e.execRetryOnStale(cmd)
	default:
		return Continue, fmt.Errorf("unknown command type %q", cmd.Type)
	}
}
