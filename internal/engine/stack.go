package engine

import (
	"github.com/rexxgo/rexxcore/internal/values"
	"github.com/rexxgo/rexxcore/pkg/ast"
)

// execPush implements PUSH (LIFO): evaluate the expression and push it.
func (e *Engine) execPush(cmd *ast.Command) (ControlResult, error) {
	v, err := e.evaluateExpression(cmd.StackExpression)
	if err != nil {
		return Continue, err
	}
	e.Stack.Push(v)
	return Continue, nil
}

// execQueue implements QUEUE (FIFO): evaluate the expression and enqueue
// it at the far end so PULL still drains from the same (top) end.
func (e *Engine) execQueue(cmd *ast.Command) (ControlResult, error) {
	v, err := e.evaluateExpression(cmd.StackExpression)
	if err != nil {
		return Continue, err
	}
	e.Stack.Queue(v)
	return Continue, nil
}

// execPull implements PULL: pop one value and assign it to StackVariable,
// or the empty string if the stack is drained.
func (e *Engine) execPull(cmd *ast.Command) (ControlResult, error) {
	v, ok := e.Stack.Pull()
	if !ok {
		v = values.Str{V: ""}
	}
	if cmd.StackVariable != "" {
		e.Store.Set(cmd.StackVariable, v)
	}
	return Continue, nil
}
